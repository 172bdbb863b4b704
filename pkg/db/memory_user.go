package db

import (
	"context"
	"sync"

	"treelot/pkg/core/model"
)

// MemoryUserStore is the in-memory reference implementation of UserStore.
type MemoryUserStore struct {
	mu    sync.Mutex
	users map[model.UserID]model.User
}

// NewMemoryUserStore creates an in-memory user store, optionally seeded.
func NewMemoryUserStore(initial ...model.User) *MemoryUserStore {
	s := &MemoryUserStore{users: make(map[model.UserID]model.User)}
	for _, u := range initial {
		s.users[u.ID] = u
	}
	return s
}

func (s *MemoryUserStore) GetUser(_ context.Context, id model.UserID) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (s *MemoryUserStore) GetUsersByRole(_ context.Context, role model.UserRole) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.User
	for _, u := range s.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *MemoryUserStore) ListUsers(_ context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *MemoryUserStore) CreateUser(_ context.Context, u model.User) (model.UserID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[u.ID]; exists {
		return "", model.ErrAlreadyExists
	}
	s.users[u.ID] = u
	return u.ID, nil
}

func (s *MemoryUserStore) UpdateUser(_ context.Context, u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[u.ID]; !exists {
		return model.ErrUserNotFound
	}
	s.users[u.ID] = u
	return nil
}
