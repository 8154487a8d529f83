package auth

import (
	"context"

	"github.com/google/uuid"
)

type UserRepo interface {
	Create(ctx context.Context, user *User) error
	Get(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Save(ctx context.Context, user *User) error
}
