package domain

import (
	"time"

	"github.com/google/uuid"
)

// Provider is the canonical identity aggregate of the portal.
// The password hash never leaves the service; roster membership lives in a
// separate keyed table so mutations stay atomic at the storage layer.
type Provider struct {
	ProviderID   uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session models a login session issued at authentication time.
// Sessions are persisted so revocation survives restarts and logout is
// enforceable independently of token expiry.
type Session struct {
	SessionID      uuid.UUID
	ProviderID     uuid.UUID
	IPAddress      string
	UserAgent      string
	CreatedAt      time.Time
	LastActivityAt time.Time
	ExpiresAt      time.Time
	RevokedAt      *time.Time
}

// LoginAttempt records authentication outcomes for audit purposes.
type LoginAttempt struct {
	ID            int64
	ProviderID    *uuid.UUID
	AttemptAt     time.Time
	IPAddress     string
	Status        string
	FailureReason string
	UserAgent     string
}
