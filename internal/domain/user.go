package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a durable user record. DeletedAt is the soft-delete marker
// and is never exposed to clients.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Picture   *string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// IsDeleted reports whether the user has been soft-deleted.
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

// UserInput is the payload for creating a user.
type UserInput struct {
	Name    string  `json:"name" validate:"notblank,max=100"`
	Email   string  `json:"email" validate:"notblank,max=255,contains=@,contains=."`
	Picture *string `json:"picture"`
}

// Validate checks the payload and returns the first violated rule.
func (in UserInput) Validate() error {
	return validateStruct(in)
}

// UserPatch is a partial update of a user. Each nil field is left unchanged
// by the store, which coalesces it against the existing column value.
type UserPatch struct {
	Name    *string `json:"name" validate:"omitnil,notblank,max=100"`
	Email   *string `json:"email" validate:"omitnil,notblank,max=255,contains=@,contains=."`
	Picture *string `json:"picture"`
}

// Validate checks only the fields that are present.
func (p UserPatch) Validate() error {
	return validateStruct(p)
}

// IsEmpty reports whether no field is set.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Picture == nil
}

// NewUser validates the input and builds a User with a fresh ID and
// creation timestamps.
func NewUser(in UserInput) (*User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &User{
		ID:        uuid.New(),
		Name:      in.Name,
		Email:     in.Email,
		Picture:   in.Picture,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
