package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/carewell/provider-portal/internal/ports"
)

// RosterRepository stores assignments as one row per (provider, patient)
// pair. The composite unique index plus ON CONFLICT DO NOTHING makes Add a
// single atomic statement; duplicates simply affect zero rows.
type RosterRepository struct {
	db *gorm.DB
}

func NewRosterRepository(db *gorm.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

var _ ports.RosterRepository = (*RosterRepository)(nil)

func (r *RosterRepository) Add(ctx context.Context, providerID uuid.UUID, patientID string, addedAt time.Time) (bool, error) {
	row := rosterEntryModel{
		EntryID:    uuid.New(),
		ProviderID: providerID,
		PatientID:  patientID,
		AddedAt:    addedAt,
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "provider_id"}, {Name: "patient_id"}},
			DoNothing: true,
		}).
		Create(&row)
	if res.Error != nil {
		return false, fmt.Errorf("insert roster entry: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *RosterRepository) Remove(ctx context.Context, providerID uuid.UUID, patientID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("provider_id = ? AND patient_id = ?", providerID, patientID).
		Delete(&rosterEntryModel{})
	if res.Error != nil {
		return false, fmt.Errorf("delete roster entry: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *RosterRepository) ListPatientIDs(ctx context.Context, providerID uuid.UUID) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&rosterEntryModel{}).
		Where("provider_id = ?", providerID).
		Order("added_at ASC, patient_id ASC").
		Pluck("patient_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list roster entries: %w", err)
	}
	return ids, nil
}
