package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"skillswap-be/internal/entity"
	"skillswap-be/internal/repository/contract"
	"skillswap-be/internal/repository/specification"
	"skillswap-be/internal/repository/unitofwork"
)

// fakeStore is a shared in-memory backing store for the fake repositories.
// It interprets the same specifications the GORM implementations translate
// to SQL, so service-level tests exercise the real query plans.
type fakeStore struct {
	users    []*entity.User
	skills   []*entity.Skill
	messages []*entity.Message

	nextUserId    uint
	nextSkillId   uint
	nextMessageId uint
	clock         time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// tick advances the store clock so successive inserts get distinct
// timestamps.
func (s *fakeStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *fakeStore) addUser(username, fullName string) *entity.User {
	s.nextUserId++
	user := &entity.User{
		Id:       s.nextUserId,
		Username: username,
		FullName: fullName,
		Email:    username + "@example.com",
	}
	s.users = append(s.users, user)
	return user
}

func (s *fakeStore) factory() unitofwork.RepositoryFactory {
	return &fakeFactory{store: s}
}

type fakeFactory struct {
	store *fakeStore
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{store: f.store}
}

type fakeUnitOfWork struct {
	store *fakeStore
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository {
	return &fakeUserRepository{store: u.store}
}

func (u *fakeUnitOfWork) SkillRepository() contract.SkillRepository {
	return &fakeSkillRepository{store: u.store}
}

func (u *fakeUnitOfWork) MessageRepository() contract.MessageRepository {
	return &fakeMessageRepository{store: u.store}
}

// --- users ---

type fakeUserRepository struct {
	store *fakeStore
}

func (r *fakeUserRepository) Create(ctx context.Context, user *entity.User) error {
	r.store.nextUserId++
	user.Id = r.store.nextUserId
	user.CreatedAt = r.store.tick()
	clone := *user
	r.store.users = append(r.store.users, &clone)
	return nil
}

func (r *fakeUserRepository) Update(ctx context.Context, user *entity.User) error {
	for i, existing := range r.store.users {
		if existing.Id == user.Id {
			clone := *user
			r.store.users[i] = &clone
			return nil
		}
	}
	return nil
}

func (r *fakeUserRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, user := range r.store.users {
		if matchUser(user, specs) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var out []*entity.User
	for _, user := range r.store.users {
		if matchUser(user, specs) {
			clone := *user
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeUserRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	users, _ := r.FindAll(ctx, specs...)
	return int64(len(users)), nil
}

func matchUser(user *entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if user.Id != s.ID {
				return false
			}
		case specification.ByIDs:
			found := false
			for _, id := range s.IDs {
				if user.Id == id {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case specification.ByUsername:
			if user.Username != s.Username {
				return false
			}
		}
	}
	return true
}

// --- skills ---

type fakeSkillRepository struct {
	store *fakeStore
}

func (r *fakeSkillRepository) Create(ctx context.Context, skill *entity.Skill) error {
	r.store.nextSkillId++
	skill.Id = r.store.nextSkillId
	clone := *skill
	r.store.skills = append(r.store.skills, &clone)
	return nil
}

func (r *fakeSkillRepository) Delete(ctx context.Context, id uint) error {
	for i, skill := range r.store.skills {
		if skill.Id == id {
			r.store.skills = append(r.store.skills[:i], r.store.skills[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeSkillRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Skill, error) {
	for _, skill := range r.store.skills {
		if matchSkill(skill, specs) {
			clone := *skill
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeSkillRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Skill, error) {
	var out []*entity.Skill
	for _, skill := range r.store.skills {
		if matchSkill(skill, specs) {
			clone := *skill
			out = append(out, &clone)
		}
	}
	return out, nil
}

func matchSkill(skill *entity.Skill, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if skill.Id != s.ID {
				return false
			}
		case specification.OwnedBy:
			if skill.UserId != s.UserID {
				return false
			}
		case specification.SkillNameLike:
			if !strings.Contains(strings.ToLower(skill.Name), strings.ToLower(s.Name)) {
				return false
			}
		case specification.ByCategory:
			if string(skill.Category) != s.Category {
				return false
			}
		case specification.ByTeaching:
			if skill.IsTeaching != s.IsTeaching {
				return false
			}
		}
	}
	return true
}

// --- messages ---

type fakeMessageRepository struct {
	store *fakeStore
}

func (r *fakeMessageRepository) Create(ctx context.Context, message *entity.Message) error {
	r.store.nextMessageId++
	message.Id = r.store.nextMessageId
	message.CreatedAt = r.store.tick()
	clone := *message
	r.store.messages = append(r.store.messages, &clone)
	return nil
}

func (r *fakeMessageRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	var out []*entity.Message
	for _, message := range r.store.messages {
		if matchMessage(message, specs) {
			clone := *message
			out = append(out, &clone)
		}
	}
	orderMessages(out, specs)
	return out, nil
}

func (r *fakeMessageRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	messages, _ := r.FindAll(ctx, specs...)
	return int64(len(messages)), nil
}

func matchMessage(message *entity.Message, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.BetweenUsers:
			ab := message.SenderId == s.UserA && message.ReceiverId == s.UserB
			ba := message.SenderId == s.UserB && message.ReceiverId == s.UserA
			if !ab && !ba {
				return false
			}
		case specification.ByParticipant:
			if message.SenderId != s.UserID && message.ReceiverId != s.UserID {
				return false
			}
		}
	}
	return true
}

func orderMessages(messages []*entity.Message, specs []specification.Specification) {
	var orders []specification.OrderBy
	for _, spec := range specs {
		if o, ok := spec.(specification.OrderBy); ok {
			orders = append(orders, o)
		}
	}
	if len(orders) == 0 {
		return
	}

	sort.SliceStable(messages, func(i, j int) bool {
		a, b := messages[i], messages[j]
		for _, o := range orders {
			var cmp int
			switch o.Field {
			case "created_at":
				if a.CreatedAt.Before(b.CreatedAt) {
					cmp = -1
				} else if a.CreatedAt.After(b.CreatedAt) {
					cmp = 1
				}
			case "id":
				if a.Id < b.Id {
					cmp = -1
				} else if a.Id > b.Id {
					cmp = 1
				}
			}
			if cmp == 0 {
				continue
			}
			if o.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}
