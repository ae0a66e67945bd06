package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionRevocationStore keeps revocation markers with token-aligned TTL.
// This gives logout immediate effect without a database round trip on the
// hot path of every protected call.
type SessionRevocationStore interface {
	MarkRevoked(ctx context.Context, sessionID uuid.UUID, expiresAt time.Time) error
	IsRevoked(ctx context.Context, sessionID uuid.UUID) (bool, error)
}
