package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/carewell/provider-portal/internal/domain"
)

type LoginAttemptRepository struct {
	db *gorm.DB
}

func NewLoginAttemptRepository(db *gorm.DB) *LoginAttemptRepository {
	return &LoginAttemptRepository{db: db}
}

func (r *LoginAttemptRepository) Insert(ctx context.Context, attempt domain.LoginAttempt) error {
	row := loginAttemptModel{
		ProviderID:    attempt.ProviderID,
		AttemptAt:     attempt.AttemptAt,
		IPAddress:     nullableString(attempt.IPAddress),
		Status:        attempt.Status,
		FailureReason: nullableString(attempt.FailureReason),
		UserAgent:     nullableString(attempt.UserAgent),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert login attempt: %w", err)
	}
	return nil
}
