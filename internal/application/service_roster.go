package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carewell/provider-portal/internal/domain"
	"github.com/carewell/provider-portal/internal/ports"
)

// ListAllPatients delegates to the shared directory and returns the full
// candidate set. Paging and consent parameters pass through untouched;
// marking already-assigned patients is the console's job.
func (s *Service) ListAllPatients(ctx context.Context, q ports.DirectoryQuery) ([]PatientView, error) {
	patients, err := s.directory.List(ctx, q)
	if err != nil {
		return nil, err
	}
	views := make([]PatientView, 0, len(patients))
	for _, p := range patients {
		views = append(views, toPatientView(p))
	}
	return views, nil
}

// ListMyPatients returns the provider's roster hydrated against the
// directory. Entries whose patient id no longer resolves are dropped
// silently; referential drift is a tolerated state, not an error.
func (s *Service) ListMyPatients(ctx context.Context, providerID uuid.UUID) ([]PatientView, error) {
	ids, err := s.roster.ListPatientIDs(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []PatientView{}, nil
	}

	resolved, err := s.directory.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]PatientView, 0, len(ids))
	for _, id := range ids {
		patient, ok := resolved[id]
		if !ok {
			continue
		}
		views = append(views, toPatientView(patient))
	}
	return views, nil
}

// AddPatient assigns a patient to the provider's roster. Adding an already
// assigned patient is a no-op success; an id that does not resolve in the
// directory is a hard not-found because the caller named an explicit target.
func (s *Service) AddPatient(ctx context.Context, providerID uuid.UUID, patientID string) (PatientView, error) {
	patientID = strings.TrimSpace(patientID)
	if patientID == "" {
		return PatientView{}, fmt.Errorf("%w: patientId is required", domain.ErrInvalidInput)
	}

	patient, err := s.directory.GetByID(ctx, patientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return PatientView{}, fmt.Errorf("%w: patient %s", domain.ErrNotFound, patientID)
		}
		return PatientView{}, err
	}

	now := s.nowFn()
	added, err := s.roster.Add(ctx, providerID, patientID, now)
	if err != nil {
		return PatientView{}, err
	}
	if added {
		s.enqueueRosterEvent(ctx, "roster.patient_added", providerID, patientID)
	}
	return toPatientView(patient), nil
}

// RemovePatient detaches a patient from the provider's own roster.
// Removing an absent id succeeds without effect, and there is no path to
// another provider's roster: scoping comes from the resolved identity.
func (s *Service) RemovePatient(ctx context.Context, providerID uuid.UUID, patientID string) error {
	patientID = strings.TrimSpace(patientID)
	if patientID == "" {
		return fmt.Errorf("%w: patientId is required", domain.ErrInvalidInput)
	}

	removed, err := s.roster.Remove(ctx, providerID, patientID)
	if err != nil {
		return err
	}
	if removed {
		s.enqueueRosterEvent(ctx, "roster.patient_removed", providerID, patientID)
	}
	return nil
}

func (s *Service) enqueueRosterEvent(ctx context.Context, eventType string, providerID uuid.UUID, patientID string) {
	now := s.nowFn()
	payload, _ := json.Marshal(map[string]any{
		"provider_id": providerID,
		"patient_id":  patientID,
		"occurred_at": now,
	})
	_ = s.outbox.Enqueue(ctx, ports.OutboxEvent{
		EventID:      uuid.New(),
		EventType:    eventType,
		PartitionKey: providerID.String(),
		Payload:      payload,
		OccurredAt:   now,
	})
}
