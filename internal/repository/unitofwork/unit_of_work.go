package unitofwork

import (
	"context"

	"skillswap-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	SkillRepository() contract.SkillRepository
	MessageRepository() contract.MessageRepository
}
