package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/carewell/provider-portal/internal/domain"
	"github.com/carewell/provider-portal/internal/ports"
)

// ProviderRepository persists providers with GORM. Duplicate-email detection
// relies on the unique index plus TranslateError rather than a pre-check, so
// concurrent signups cannot both slip through.
type ProviderRepository struct {
	db *gorm.DB
}

func NewProviderRepository(db *gorm.DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

func (r *ProviderRepository) CreateWithOutboxTx(ctx context.Context, params ports.CreateProviderTxParams, event ports.OutboxEvent) (domain.Provider, error) {
	row := providerModel{
		ProviderID:   uuid.New(),
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		CreatedAt:    params.RegisteredAtUTC,
		UpdatedAt:    params.RegisteredAtUTC,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: email already registered", domain.ErrConflict)
			}
			return fmt.Errorf("insert provider: %w", err)
		}
		outboxRow := outboxModel{
			OutboxID:     event.EventID,
			EventType:    event.EventType,
			PartitionKey: event.PartitionKey,
			Payload:      event.Payload,
			CreatedAt:    event.OccurredAt,
		}
		if err := tx.Create(&outboxRow).Error; err != nil {
			return fmt.Errorf("insert outbox event: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Provider{}, err
	}
	return toDomainProvider(row), nil
}

func (r *ProviderRepository) GetByEmail(ctx context.Context, email string) (domain.Provider, error) {
	var row providerModel
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Provider{}, fmt.Errorf("%w: provider by email", domain.ErrNotFound)
		}
		return domain.Provider{}, fmt.Errorf("query provider by email: %w", err)
	}
	return toDomainProvider(row), nil
}

func (r *ProviderRepository) GetByID(ctx context.Context, providerID uuid.UUID) (domain.Provider, error) {
	var row providerModel
	err := r.db.WithContext(ctx).Where("provider_id = ?", providerID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Provider{}, fmt.Errorf("%w: provider %s", domain.ErrNotFound, providerID)
		}
		return domain.Provider{}, fmt.Errorf("query provider by id: %w", err)
	}
	return toDomainProvider(row), nil
}

func (r *ProviderRepository) UpdateProfile(ctx context.Context, params ports.UpdateProviderParams) (domain.Provider, error) {
	updates := map[string]any{"updated_at": params.UpdatedAt}
	if params.FirstName != nil {
		updates["first_name"] = *params.FirstName
	}
	if params.LastName != nil {
		updates["last_name"] = *params.LastName
	}
	if params.PasswordHash != nil {
		updates["password_hash"] = *params.PasswordHash
	}

	res := r.db.WithContext(ctx).
		Model(&providerModel{}).
		Where("provider_id = ?", params.ProviderID).
		Updates(updates)
	if res.Error != nil {
		return domain.Provider{}, fmt.Errorf("update provider: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.Provider{}, fmt.Errorf("%w: provider %s", domain.ErrNotFound, params.ProviderID)
	}
	return r.GetByID(ctx, params.ProviderID)
}
