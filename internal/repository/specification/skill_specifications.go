package specification

import "gorm.io/gorm"

// SkillNameLike matches skill names case-insensitively on a partial term.
type SkillNameLike struct {
	Name string
}

func (s SkillNameLike) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name ILIKE ?", "%"+s.Name+"%")
}

type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

type ByTeaching struct {
	IsTeaching bool
}

func (s ByTeaching) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_teaching = ?", s.IsTeaching)
}
