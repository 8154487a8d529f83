package menu

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/snacktrackhq/snacktrack/internal/order"
)

var ErrSnackNotFound = errors.New("snack not found")

type SnackRepo interface {
	Create(ctx context.Context, snack *Snack) error
	Get(ctx context.Context, id uuid.UUID) (*Snack, error)
	GetByName(ctx context.Context, name string) (*Snack, error)
	List(ctx context.Context) ([]*Snack, error)
	Save(ctx context.Context, snack *Snack) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Catalog adapts a SnackRepo to the price lookup the order store uses
// to recompute totals server-side.
type Catalog struct {
	repo SnackRepo
}

func NewCatalog(repo SnackRepo) *Catalog {
	return &Catalog{repo: repo}
}

// ActivePrice implements order.PriceCatalog.
func (c *Catalog) ActivePrice(ctx context.Context, name string) (int64, error) {
	snack, err := c.repo.GetByName(ctx, name)
	if err != nil {
		return 0, err
	}
	if snack == nil || !snack.Active {
		return 0, order.ErrUnknownSnack
	}
	return snack.Price, nil
}

var _ order.PriceCatalog = (*Catalog)(nil)
