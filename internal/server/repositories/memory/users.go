package memory

import (
	"context"
	"time"

	"github.com/dmitrijs2005/jobtrack/internal/common"
	"github.com/dmitrijs2005/jobtrack/internal/server/models"
)

type UsersRepository struct {
	s *Store
}

func NewUsersRepository(s *Store) *UsersRepository {
	return &UsersRepository{s: s}
}

func (r *UsersRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	defer r.s.lockWrite(ctx)()

	for _, u := range r.s.users {
		if u.UserName == user.UserName {
			return nil, common.ErrorAlreadyExists
		}
	}

	user.CreatedAt = time.Now()
	c := *user
	r.s.users[user.ID] = &c
	return user, nil
}

func (r *UsersRepository) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.UserName == login {
			c := *u
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *UsersRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *u
	return &c, nil
}

func (r *UsersRepository) UpdatePassword(ctx context.Context, id string, passwordHash []byte) error {
	defer r.s.lockWrite(ctx)()

	u, ok := r.s.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}
