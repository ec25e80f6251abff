package repository

import (
	"context"
	"fmt"
	"sync"

	userserrors "cinebook/internal/users/errors"
	"cinebook/pkg/model"
	"cinebook/pkg/storage"
)

type usersDocument struct {
	Users []*model.User `json:"users"`
}

type fileUserRepository struct {
	path string

	mu    sync.RWMutex
	users []*model.User
}

func NewFileUserRepository(path string) (UserRepository, error) {
	var doc usersDocument
	if err := storage.LoadJSON(path, &doc); err != nil {
		return nil, fmt.Errorf("failed to load users store: %w", err)
	}

	return &fileUserRepository{
		path:  path,
		users: doc.Users,
	}, nil
}

func (r *fileUserRepository) FindAll(_ context.Context) ([]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.User, len(r.users))
	for i, u := range r.users {
		copied := *u
		out[i] = &copied
	}
	return out, nil
}

func (r *fileUserRepository) FindByID(_ context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, userserrors.ErrNotFound
}
