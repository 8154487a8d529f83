package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

// Role is the capability a signed-in user carries. It is a closed enum:
// anything outside owner/staff is rejected at the edges.
type Role string

const (
	RoleOwner Role = "owner"
	RoleStaff Role = "staff"
)

func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleOwner:
		return RoleOwner, nil
	case RoleStaff:
		return RoleStaff, nil
	default:
		return "", fmt.Errorf("unknown role: %q", s)
	}
}

// User is the aggregate root for the identity domain.
type User struct {
	ID           uuid.UUID `json:"id" bson:"_id"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash []byte    `json:"-" bson:"pass_hash"`
	Role         Role      `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

func (u *User) GetID() uuid.UUID {
	return u.ID
}

// ResourceType returns the resource type for URL generation.
func (u *User) ResourceType() string {
	return "user"
}

func NewUser() *User {
	return &User{
		ID:   apt.GenerateNewID(),
		Role: RoleStaff,
	}
}

// EnsureID ensures the aggregate root has a valid ID.
func (u *User) EnsureID() {
	if u.ID == uuid.Nil {
		u.ID = apt.GenerateNewID()
	}
}

// BeforeCreate sets creation timestamps.
func (u *User) BeforeCreate() {
	u.EnsureID()
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	u.Email = NormalizeEmail(u.Email)
}

// BeforeUpdate sets update timestamps.
func (u *User) BeforeUpdate() {
	u.UpdatedAt = time.Now()
	u.Email = NormalizeEmail(u.Email)
}

// Identity is the authenticated caller attached to a request context.
// It carries no credential material.
type Identity struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  Role      `json:"role"`
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
