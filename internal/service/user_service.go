package service

import (
	"context"
	"fmt"
	"time"

	"skillswap-be/internal/dto"
	"skillswap-be/internal/entity"
	"skillswap-be/internal/repository/memory"
	"skillswap-be/internal/repository/specification"
	"skillswap-be/internal/repository/unitofwork"
)

type IUserService interface {
	GetUser(ctx context.Context, id uint) (*dto.PublicUserResponse, error)
	UpdateProfile(ctx context.Context, userId uint, req *dto.UpdateProfileRequest) (*dto.PublicUserResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
	presence   *memory.PresenceRepository
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, presence *memory.PresenceRepository) IUserService {
	return &userService{
		uowFactory: uowFactory,
		presence:   presence,
	}
}

func (s *userService) GetUser(ctx context.Context, id uint) (*dto.PublicUserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Controllers translate the missing profile to a 404.
		return nil, nil
	}

	return s.toPublic(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uint, req *dto.UpdateProfileRequest) (*dto.PublicUserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.UserRepository()

	user, err := repo.FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Phone != "" {
		user.Phone = &req.Phone
	}
	if req.Avatar != "" {
		user.Avatar = &req.Avatar
	}
	if req.Bio != "" {
		user.Bio = &req.Bio
	}
	user.UpdatedAt = time.Now()

	if err := repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.toPublic(user), nil
}

func (s *userService) toPublic(user *entity.User) *dto.PublicUserResponse {
	res := &dto.PublicUserResponse{
		Id:       user.Id,
		Username: user.Username,
		FullName: user.FullName,
		Email:    user.Email,
		Phone:    user.Phone,
		Avatar:   user.Avatar,
		Bio:      user.Bio,
	}

	if s.presence != nil {
		res.Online = s.presence.IsOnline(user.Id)
		if last, ok := s.presence.LastSeen(user.Id); ok {
			res.LastSeen = &last
		}
	}

	return res
}
