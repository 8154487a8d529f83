package auth

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MockUserRepo is a mock implementation of UserRepo for testing
type MockUserRepo struct {
	mu             sync.RWMutex
	users          map[uuid.UUID]*User
	GetFunc        func(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*User, error)
}

func NewMockUserRepo() *MockUserRepo {
	return &MockUserRepo{
		users: make(map[uuid.UUID]*User),
	}
}

func (m *MockUserRepo) Create(ctx context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	return nil
}

func (m *MockUserRepo) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == NormalizeEmail(email) {
			return u, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepo) List(ctx context.Context) ([]*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*User
	for _, u := range m.users {
		result = append(result, u)
	}
	return result, nil
}

func (m *MockUserRepo) Save(ctx context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	return nil
}
