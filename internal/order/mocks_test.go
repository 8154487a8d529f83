package order

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/snacktrackhq/snacktrack/internal/auth"
)

// MockOrderRepo is a mock implementation of OrderRepo for testing
type MockOrderRepo struct {
	mu         sync.RWMutex
	orders     map[uuid.UUID]*Order
	CreateFunc func(ctx context.Context, order *Order) error
	GetFunc    func(ctx context.Context, id uuid.UUID) (*Order, error)
	SaveFunc   func(ctx context.Context, order *Order) error
	DeleteFunc func(ctx context.Context, id uuid.UUID) error
}

func NewMockOrderRepo() *MockOrderRepo {
	return &MockOrderRepo{
		orders: make(map[uuid.UUID]*Order),
	}
}

func (m *MockOrderRepo) Create(ctx context.Context, order *Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, order)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = order
	return nil
}

func (m *MockOrderRepo) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	order, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	return order, nil
}

func (m *MockOrderRepo) List(ctx context.Context) ([]*Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Order
	for _, o := range m.orders {
		result = append(result, o)
	}
	return newestFirst(result), nil
}

func (m *MockOrderRepo) ListByPayment(ctx context.Context, paid bool) ([]*Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Order
	for _, o := range m.orders {
		if o.PaymentDone == paid {
			result = append(result, o)
		}
	}
	return newestFirst(result), nil
}

func (m *MockOrderRepo) ListRange(ctx context.Context, from, to time.Time) ([]*Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Order
	for _, o := range m.orders {
		if !o.CreatedAt.Before(from) && o.CreatedAt.Before(to) {
			result = append(result, o)
		}
	}
	return newestFirst(result), nil
}

// newestFirst mirrors the created_at descending sort the Mongo repo
// applies to every listing.
func newestFirst(orders []*Order) []*Order {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders
}

func (m *MockOrderRepo) Save(ctx context.Context, order *Order) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, order)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[order.ID]; !ok {
		return ErrOrderNotFound
	}
	m.orders[order.ID] = order
	return nil
}

func (m *MockOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[id]; !ok {
		return ErrOrderNotFound
	}
	delete(m.orders, id)
	return nil
}

// MockUserRepo is a mock implementation of auth.UserRepo for testing
type MockUserRepo struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*auth.User
}

func NewMockUserRepo() *MockUserRepo {
	return &MockUserRepo{
		users: make(map[uuid.UUID]*auth.User),
	}
}

func (m *MockUserRepo) Create(ctx context.Context, u *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	return nil
}

func (m *MockUserRepo) Get(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepo) List(ctx context.Context) ([]*auth.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*auth.User
	for _, u := range m.users {
		result = append(result, u)
	}
	return result, nil
}

func (m *MockUserRepo) Save(ctx context.Context, u *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	return nil
}

// MockSequencer is a mock implementation of Sequencer for testing
type MockSequencer struct {
	mu       sync.Mutex
	counts   map[string]int
	NextFunc func(ctx context.Context, key string) (int, error)
}

func NewMockSequencer() *MockSequencer {
	return &MockSequencer{
		counts: make(map[string]int),
	}
}

func (m *MockSequencer) Next(ctx context.Context, key string) (int, error) {
	if m.NextFunc != nil {
		return m.NextFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[key]++
	return m.counts[key], nil
}

// MockCatalog is a mock implementation of PriceCatalog for testing
type MockCatalog struct {
	mu     sync.RWMutex
	prices map[string]int64
}

func NewMockCatalog() *MockCatalog {
	return &MockCatalog{
		prices: make(map[string]int64),
	}
}

func (m *MockCatalog) SetPrice(name string, price int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prices[name] = price
}

func (m *MockCatalog) ActivePrice(ctx context.Context, name string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	price, ok := m.prices[name]
	if !ok {
		return 0, ErrUnknownSnack
	}
	return price, nil
}

// MockPublisher is a mock implementation of events.Publisher for testing
type MockPublisher struct {
	mu          sync.Mutex
	Topics      []string
	Payloads    [][]byte
	PublishFunc func(ctx context.Context, topic string, msg []byte) error
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, msg)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Topics = append(m.Topics, topic)
	m.Payloads = append(m.Payloads, msg)
	return nil
}

func (m *MockPublisher) Published() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Topics)
}
