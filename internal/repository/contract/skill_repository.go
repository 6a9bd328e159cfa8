package contract

import (
	"context"

	"skillswap-be/internal/entity"
	"skillswap-be/internal/repository/specification"
)

type SkillRepository interface {
	Create(ctx context.Context, skill *entity.Skill) error
	Delete(ctx context.Context, id uint) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Skill, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Skill, error)
}
