package service

import (
	"context"
	"errors"
	"fmt"

	"skillswap-be/internal/dto"
	"skillswap-be/internal/entity"
	"skillswap-be/internal/repository/specification"
	"skillswap-be/internal/repository/unitofwork"
)

var ErrSkillNotOwned = errors.New("skill does not belong to user")

type ISkillService interface {
	GetUserSkills(ctx context.Context, userId uint) ([]*dto.SkillResponse, error)
	CreateSkill(ctx context.Context, userId uint, req *dto.CreateSkillRequest) (*dto.SkillResponse, error)
	DeleteSkill(ctx context.Context, userId uint, skillId uint) error
	SearchUsers(ctx context.Context, query *dto.SearchUsersQuery) ([]*dto.PublicUserResponse, error)
}

type skillService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewSkillService(uowFactory unitofwork.RepositoryFactory) ISkillService {
	return &skillService{uowFactory: uowFactory}
}

func (s *skillService) GetUserSkills(ctx context.Context, userId uint) ([]*dto.SkillResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	skills, err := uow.SkillRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "id"},
	)
	if err != nil {
		return nil, err
	}

	return toSkillResponses(skills), nil
}

func (s *skillService) CreateSkill(ctx context.Context, userId uint, req *dto.CreateSkillRequest) (*dto.SkillResponse, error) {
	category := entity.SkillCategory(req.Category)
	if !category.Valid() {
		return nil, fmt.Errorf("unknown category %q", req.Category)
	}
	proficiency := entity.ProficiencyLevel(req.Proficiency)
	if !proficiency.Valid() {
		return nil, fmt.Errorf("unknown proficiency %q", req.Proficiency)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	skill := &entity.Skill{
		UserId:      userId,
		Name:        req.Name,
		Category:    category,
		IsTeaching:  *req.IsTeaching,
		Proficiency: proficiency,
	}

	if err := uow.SkillRepository().Create(ctx, skill); err != nil {
		return nil, err
	}

	return toSkillResponse(skill), nil
}

func (s *skillService) DeleteSkill(ctx context.Context, userId uint, skillId uint) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.SkillRepository()

	skill, err := repo.FindOne(ctx, specification.ByID{ID: skillId})
	if err != nil {
		return err
	}
	if skill == nil {
		return fmt.Errorf("skill not found")
	}
	if skill.UserId != userId {
		return ErrSkillNotOwned
	}

	return repo.Delete(ctx, skillId)
}

// SearchUsers finds users owning at least one skill matching the query.
// Each user appears once regardless of how many of their skills match.
func (s *skillService) SearchUsers(ctx context.Context, query *dto.SearchUsersQuery) ([]*dto.PublicUserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.SkillNameLike{Name: query.Skill},
	}
	if query.Category != "" {
		specs = append(specs, specification.ByCategory{Category: query.Category})
	}
	if query.IsTeaching != nil {
		specs = append(specs, specification.ByTeaching{IsTeaching: *query.IsTeaching})
	}

	skills, err := uow.SkillRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool)
	var userIds []uint
	for _, skill := range skills {
		if !seen[skill.UserId] {
			seen[skill.UserId] = true
			userIds = append(userIds, skill.UserId)
		}
	}
	if len(userIds) == 0 {
		return []*dto.PublicUserResponse{}, nil
	}

	users, err := uow.UserRepository().FindAll(ctx, specification.ByIDs{IDs: userIds})
	if err != nil {
		return nil, err
	}

	results := make([]*dto.PublicUserResponse, len(users))
	for i, user := range users {
		results[i] = &dto.PublicUserResponse{
			Id:       user.Id,
			Username: user.Username,
			FullName: user.FullName,
			Email:    user.Email,
			Phone:    user.Phone,
			Avatar:   user.Avatar,
			Bio:      user.Bio,
		}
	}
	return results, nil
}

func toSkillResponse(skill *entity.Skill) *dto.SkillResponse {
	return &dto.SkillResponse{
		Id:          skill.Id,
		UserId:      skill.UserId,
		Name:        skill.Name,
		Category:    string(skill.Category),
		IsTeaching:  skill.IsTeaching,
		Proficiency: string(skill.Proficiency),
	}
}

func toSkillResponses(skills []*entity.Skill) []*dto.SkillResponse {
	responses := make([]*dto.SkillResponse, len(skills))
	for i, skill := range skills {
		responses[i] = toSkillResponse(skill)
	}
	return responses
}
