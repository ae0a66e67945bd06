package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/carewell/provider-portal/internal/domain"
	"github.com/carewell/provider-portal/internal/ports"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, params ports.SessionCreateParams) (domain.Session, error) {
	row := sessionModel{
		SessionID:      uuid.New(),
		ProviderID:     params.ProviderID,
		IPAddress:      nullableString(params.IPAddress),
		UserAgent:      nullableString(params.UserAgent),
		CreatedAt:      params.LastActivityAt,
		LastActivityAt: params.LastActivityAt,
		ExpiresAt:      params.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return domain.Session{}, fmt.Errorf("insert session: %w", err)
	}
	return toDomainSession(row), nil
}

func (r *SessionRepository) GetByID(ctx context.Context, sessionID uuid.UUID) (domain.Session, error) {
	var row sessionModel
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Session{}, fmt.Errorf("%w: session %s", domain.ErrNotFound, sessionID)
		}
		return domain.Session{}, fmt.Errorf("query session: %w", err)
	}
	return toDomainSession(row), nil
}

// RevokeByID stamps revoked_at once. Re-revoking an already revoked session
// is a no-op so logout stays idempotent down to the storage layer.
func (r *SessionRepository) RevokeByID(ctx context.Context, sessionID uuid.UUID, revokedAt time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&sessionModel{}).
		Where("session_id = ? AND revoked_at IS NULL", sessionID).
		Update("revoked_at", revokedAt).Error
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}
