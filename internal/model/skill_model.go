package model

type Skill struct {
	Id          uint   `gorm:"primaryKey;autoIncrement"`
	UserId      uint   `gorm:"not null;index"`
	Name        string `gorm:"type:varchar(255);not null;index"`
	Category    string `gorm:"type:varchar(64);not null;index"`
	IsTeaching  bool   `gorm:"not null"`
	Proficiency string `gorm:"type:varchar(32);not null"`
}

func (Skill) TableName() string {
	return "skills"
}
