package menu

import (
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

// Snack is one sellable catalog item. The display name doubles as the
// join key line items use, so it must stay unique among active snacks.
type Snack struct {
	ID        uuid.UUID `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Price     int64     `json:"price" bson:"price"`
	Active    bool      `json:"active" bson:"active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

func (s *Snack) GetID() uuid.UUID {
	return s.ID
}

// ResourceType returns the resource type for URL generation.
func (s *Snack) ResourceType() string {
	return "snack"
}

func NewSnack() *Snack {
	return &Snack{
		ID:     apt.GenerateNewID(),
		Active: true,
	}
}

// EnsureID ensures the aggregate root has a valid ID.
func (s *Snack) EnsureID() {
	if s.ID == uuid.Nil {
		s.ID = apt.GenerateNewID()
	}
}

// BeforeCreate sets creation timestamps.
func (s *Snack) BeforeCreate() {
	s.EnsureID()
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now
}

// BeforeUpdate sets update timestamps.
func (s *Snack) BeforeUpdate() {
	s.UpdatedAt = time.Now()
}
