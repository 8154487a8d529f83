package menu

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MockSnackRepo is a mock implementation of SnackRepo for testing
type MockSnackRepo struct {
	mu         sync.RWMutex
	snacks     map[uuid.UUID]*Snack
	CreateFunc func(ctx context.Context, snack *Snack) error
	GetFunc    func(ctx context.Context, id uuid.UUID) (*Snack, error)
	SaveFunc   func(ctx context.Context, snack *Snack) error
	DeleteFunc func(ctx context.Context, id uuid.UUID) error
}

func NewMockSnackRepo() *MockSnackRepo {
	return &MockSnackRepo{
		snacks: make(map[uuid.UUID]*Snack),
	}
}

func (m *MockSnackRepo) Create(ctx context.Context, snack *Snack) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, snack)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snacks[snack.ID] = snack
	return nil
}

func (m *MockSnackRepo) Get(ctx context.Context, id uuid.UUID) (*Snack, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	snack, ok := m.snacks[id]
	if !ok {
		return nil, nil
	}
	return snack, nil
}

func (m *MockSnackRepo) GetByName(ctx context.Context, name string) (*Snack, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.snacks {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, nil
}

func (m *MockSnackRepo) List(ctx context.Context) ([]*Snack, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Snack
	for _, s := range m.snacks {
		result = append(result, s)
	}
	return result, nil
}

func (m *MockSnackRepo) Save(ctx context.Context, snack *Snack) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, snack)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.snacks[snack.ID]; !ok {
		return ErrSnackNotFound
	}
	m.snacks[snack.ID] = snack
	return nil
}

func (m *MockSnackRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.snacks[id]; !ok {
		return ErrSnackNotFound
	}
	delete(m.snacks, id)
	return nil
}
