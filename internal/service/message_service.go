package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skillswap-be/internal/dto"
	"skillswap-be/internal/entity"
	"skillswap-be/internal/repository/specification"
	"skillswap-be/internal/repository/unitofwork"
)

var (
	ErrEmptyContent    = errors.New("message content must not be empty")
	ErrUnknownReceiver = errors.New("receiver does not exist")
)

type IMessageService interface {
	// Send persists a message and returns it with the database-assigned id
	// and timestamp. Messaging oneself is allowed.
	Send(ctx context.Context, senderId, receiverId uint, content string) (*dto.MessageResponse, error)

	// GetMessages returns every message between the two users in either
	// direction, oldest first (ties broken by id). Empty slice, not an
	// error, when no history exists.
	GetMessages(ctx context.Context, userId, otherId uint) ([]*dto.MessageResponse, error)

	// GetConversations returns every distinct counterparty the user has
	// exchanged at least one message with, most recent pairing first.
	GetConversations(ctx context.Context, userId uint) ([]*dto.PublicUserResponse, error)
}

type messageService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewMessageService(uowFactory unitofwork.RepositoryFactory, publisherService IPublisherService) IMessageService {
	return &messageService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (s *messageService) Send(ctx context.Context, senderId, receiverId uint, content string) (*dto.MessageResponse, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if receiverId == 0 {
		return nil, ErrUnknownReceiver
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	receiver, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: receiverId})
	if err != nil {
		return nil, err
	}
	if receiver == nil {
		return nil, ErrUnknownReceiver
	}

	message := &entity.Message{
		SenderId:   senderId,
		ReceiverId: receiverId,
		Content:    content,
	}
	if err := uow.MessageRepository().Create(ctx, message); err != nil {
		return nil, err
	}

	if s.publisherService != nil {
		payload := dto.ChatMessagePersisted{
			MessageId:  message.Id,
			SenderId:   message.SenderId,
			ReceiverId: message.ReceiverId,
		}
		if err := s.publisherService.PublishMessagePersisted(payload); err != nil {
			// The durable record exists; the event pipeline is best-effort.
			fmt.Printf("[WARN] Failed to publish message-persisted event: %v\n", err)
		}
	}

	return toMessageResponse(message), nil
}

func (s *messageService) GetMessages(ctx context.Context, userId, otherId uint) ([]*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.BetweenUsers{UserA: userId, UserB: otherId},
		specification.OrderBy{Field: "created_at"},
		specification.OrderBy{Field: "id"},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.MessageResponse, len(messages))
	for i, message := range messages {
		responses[i] = toMessageResponse(message)
	}
	return responses, nil
}

// GetConversations uses an explicit plan instead of aggregate SQL: fetch the
// user's messages newest first, keep the first occurrence of each
// counterparty (which is that pairing's latest activity), then load the
// counterparty profiles and restore the activity order.
func (s *messageService) GetConversations(ctx context.Context, userId uint) ([]*dto.PublicUserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByParticipant{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.OrderBy{Field: "id", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool)
	var counterpartyIds []uint
	for _, message := range messages {
		counterparty := message.SenderId
		if counterparty == userId {
			counterparty = message.ReceiverId
		}
		if !seen[counterparty] {
			seen[counterparty] = true
			counterpartyIds = append(counterpartyIds, counterparty)
		}
	}
	if len(counterpartyIds) == 0 {
		return []*dto.PublicUserResponse{}, nil
	}

	users, err := uow.UserRepository().FindAll(ctx, specification.ByIDs{IDs: counterpartyIds})
	if err != nil {
		return nil, err
	}

	byId := make(map[uint]*entity.User, len(users))
	for _, user := range users {
		byId[user.Id] = user
	}

	results := make([]*dto.PublicUserResponse, 0, len(counterpartyIds))
	for _, id := range counterpartyIds {
		user, ok := byId[id]
		if !ok {
			continue
		}
		results = append(results, &dto.PublicUserResponse{
			Id:       user.Id,
			Username: user.Username,
			FullName: user.FullName,
			Email:    user.Email,
			Phone:    user.Phone,
			Avatar:   user.Avatar,
			Bio:      user.Bio,
		})
	}
	return results, nil
}

func toMessageResponse(message *entity.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		Id:         message.Id,
		SenderId:   message.SenderId,
		ReceiverId: message.ReceiverId,
		Content:    message.Content,
		CreatedAt:  message.CreatedAt,
	}
}
