package mapper

import (
	"skillswap-be/internal/entity"
	"skillswap-be/internal/model"
)

type SkillMapper struct{}

func NewSkillMapper() *SkillMapper {
	return &SkillMapper{}
}

func (m *SkillMapper) ToEntity(s *model.Skill) *entity.Skill {
	if s == nil {
		return nil
	}
	return &entity.Skill{
		Id:          s.Id,
		UserId:      s.UserId,
		Name:        s.Name,
		Category:    entity.SkillCategory(s.Category),
		IsTeaching:  s.IsTeaching,
		Proficiency: entity.ProficiencyLevel(s.Proficiency),
	}
}

func (m *SkillMapper) ToModel(s *entity.Skill) *model.Skill {
	if s == nil {
		return nil
	}
	return &model.Skill{
		Id:          s.Id,
		UserId:      s.UserId,
		Name:        s.Name,
		Category:    string(s.Category),
		IsTeaching:  s.IsTeaching,
		Proficiency: string(s.Proficiency),
	}
}

func (m *SkillMapper) ToEntities(skills []*model.Skill) []*entity.Skill {
	entities := make([]*entity.Skill, len(skills))
	for i, s := range skills {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
