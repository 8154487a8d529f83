package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrUnknownSnack  = errors.New("snack not in catalog")
)

type OrderRepo interface {
	Create(ctx context.Context, order *Order) error
	Get(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context) ([]*Order, error)
	ListByPayment(ctx context.Context, paid bool) ([]*Order, error)
	ListRange(ctx context.Context, from, to time.Time) ([]*Order, error)
	Save(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Sequencer hands out monotonically increasing integers for a key.
// The mongo implementation backs this with an atomic upsert counter,
// so two concurrent orders on the same day never share a number.
type Sequencer interface {
	Next(ctx context.Context, key string) (int, error)
}

// PriceCatalog resolves the current unit price of an active snack by
// display name. Returns ErrUnknownSnack when no active snack matches.
type PriceCatalog interface {
	ActivePrice(ctx context.Context, name string) (int64, error)
}
