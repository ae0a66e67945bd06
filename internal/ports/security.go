package ports

import (
	"time"

	"github.com/google/uuid"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// AuthClaims is the resolved provider identity carried by a session token.
type AuthClaims struct {
	ProviderID uuid.UUID `json:"provider_id"`
	Email      string    `json:"email"`
	SessionID  uuid.UUID `json:"session_id"`
	IssuedAt   time.Time `json:"issued_at"`
	ExpiresAt  time.Time `json:"expires_at"`
	KeyID      string    `json:"kid"`
}

type TokenSigner interface {
	Sign(claims AuthClaims) (string, error)
	ParseAndValidate(token string) (AuthClaims, error)
}
