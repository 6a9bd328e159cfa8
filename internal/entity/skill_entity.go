package entity

type SkillCategory string
type ProficiencyLevel string

const (
	CategoryProgramming SkillCategory = "Programming"
	CategoryDesign      SkillCategory = "Design"
	CategoryBusiness    SkillCategory = "Business"
	CategoryMarketing   SkillCategory = "Marketing"
	CategoryLanguages   SkillCategory = "Languages"
	CategoryMusic       SkillCategory = "Music"
	CategoryPhotography SkillCategory = "Photography"
	CategoryWriting     SkillCategory = "Writing"

	ProficiencyBeginner     ProficiencyLevel = "Beginner"
	ProficiencyIntermediate ProficiencyLevel = "Intermediate"
	ProficiencyAdvanced     ProficiencyLevel = "Advanced"
	ProficiencyExpert       ProficiencyLevel = "Expert"
)

// SkillCategories lists every valid category, in display order.
var SkillCategories = []SkillCategory{
	CategoryProgramming,
	CategoryDesign,
	CategoryBusiness,
	CategoryMarketing,
	CategoryLanguages,
	CategoryMusic,
	CategoryPhotography,
	CategoryWriting,
}

// ProficiencyLevels lists every valid proficiency level.
var ProficiencyLevels = []ProficiencyLevel{
	ProficiencyBeginner,
	ProficiencyIntermediate,
	ProficiencyAdvanced,
	ProficiencyExpert,
}

func (c SkillCategory) Valid() bool {
	for _, v := range SkillCategories {
		if c == v {
			return true
		}
	}
	return false
}

func (p ProficiencyLevel) Valid() bool {
	for _, v := range ProficiencyLevels {
		if p == v {
			return true
		}
	}
	return false
}

type Skill struct {
	Id          uint
	UserId      uint
	Name        string
	Category    SkillCategory
	IsTeaching  bool
	Proficiency ProficiencyLevel
}
