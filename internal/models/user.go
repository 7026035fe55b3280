package models

import (
	"fmt"
	"strings"
	"time"
)

// User is a local account. Passwords are stored only as bcrypt hashes.
type User struct {
	id           string
	sequence     int
	email        string
	passwordHash string
	createdAt    time.Time
	updatedAt    time.Time
	deletedAt    *time.Time
}

// NewUser creates a User with created and updated timestamps set to now.
func NewUser(sequence int, email, passwordHash string) *User {
	now := time.Now()
	return &User{
		sequence:     sequence,
		email:        email,
		passwordHash: passwordHash,
		createdAt:    now,
		updatedAt:    now,
	}
}

func (u *User) ID() string            { return u.id }
func (u *User) Sequence() int         { return u.sequence }
func (u *User) Email() string         { return u.email }
func (u *User) PasswordHash() string  { return u.passwordHash }
func (u *User) CreatedAt() time.Time  { return u.createdAt }
func (u *User) UpdatedAt() time.Time  { return u.updatedAt }
func (u *User) DeletedAt() *time.Time { return u.deletedAt }

func (u *User) SetID(id string)           { u.id = id }
func (u *User) SetCreatedAt(t time.Time)  { u.createdAt = t }
func (u *User) SetUpdatedAt(t time.Time)  { u.updatedAt = t }
func (u *User) SetDeletedAt(t *time.Time) { u.deletedAt = t }

// SetPasswordHash replaces the stored hash and bumps the updated timestamp.
func (u *User) SetPasswordHash(hash string) {
	u.passwordHash = hash
	u.updatedAt = time.Now()
}

// Validate checks that the account has a plausible email and a stored hash.
func (u *User) Validate() error {
	if u.email == "" || !strings.Contains(u.email, "@") {
		return fmt.Errorf("invalid email %q", u.email)
	}
	if u.passwordHash == "" {
		return fmt.Errorf("user requires a password hash")
	}
	return nil
}
