package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/carewell/provider-portal/internal/domain"
	"github.com/carewell/provider-portal/internal/ports"
)

const (
	defaultDirectoryLimit = 50
	maxDirectoryLimit     = 200
)

// PatientDirectory reads the shared patients table. The portal never writes
// patient records; onboarding happens in a separate system.
type PatientDirectory struct {
	db *gorm.DB
}

func NewPatientDirectory(db *gorm.DB) *PatientDirectory {
	return &PatientDirectory{db: db}
}

var _ ports.PatientDirectory = (*PatientDirectory)(nil)

func (d *PatientDirectory) List(ctx context.Context, q ports.DirectoryQuery) ([]domain.Patient, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultDirectoryLimit
	}
	if limit > maxDirectoryLimit {
		limit = maxDirectoryLimit
	}
	page := q.Page
	if page < 1 {
		page = 1
	}

	tx := d.db.WithContext(ctx).Model(&patientModel{})
	if q.Consented != nil {
		tx = tx.Where("consent = ?", *q.Consented)
	}

	var rows []patientModel
	err := tx.Order("last_name ASC, first_name ASC, patient_id ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}

	patients := make([]domain.Patient, 0, len(rows))
	for _, row := range rows {
		patients = append(patients, toDomainPatient(row))
	}
	return patients, nil
}

func (d *PatientDirectory) GetByID(ctx context.Context, patientID string) (domain.Patient, error) {
	var row patientModel
	err := d.db.WithContext(ctx).Where("patient_id = ?", patientID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Patient{}, fmt.Errorf("%w: patient %s", domain.ErrNotFound, patientID)
		}
		return domain.Patient{}, fmt.Errorf("query patient: %w", err)
	}
	return toDomainPatient(row), nil
}

func (d *PatientDirectory) GetByIDs(ctx context.Context, patientIDs []string) (map[string]domain.Patient, error) {
	if len(patientIDs) == 0 {
		return map[string]domain.Patient{}, nil
	}
	var rows []patientModel
	err := d.db.WithContext(ctx).Where("patient_id IN ?", patientIDs).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query patients by ids: %w", err)
	}
	resolved := make(map[string]domain.Patient, len(rows))
	for _, row := range rows {
		resolved[row.PatientID] = toDomainPatient(row)
	}
	return resolved, nil
}
