package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/carewell/provider-portal/internal/domain"
	"github.com/carewell/provider-portal/internal/ports"
)

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toDomainProvider(m providerModel) domain.Provider {
	return domain.Provider{
		ProviderID:   m.ProviderID,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toDomainSession(m sessionModel) domain.Session {
	return domain.Session{
		SessionID:      m.SessionID,
		ProviderID:     m.ProviderID,
		IPAddress:      stringOrEmpty(m.IPAddress),
		UserAgent:      stringOrEmpty(m.UserAgent),
		CreatedAt:      m.CreatedAt,
		LastActivityAt: m.LastActivityAt,
		ExpiresAt:      m.ExpiresAt,
		RevokedAt:      m.RevokedAt,
	}
}

func toDomainPatient(m patientModel) domain.Patient {
	return domain.Patient{
		PatientID: m.PatientID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
		Age:       m.Age,
		Gender:    m.Gender,
		Consent:   m.Consent,
	}
}

func toOutboxRecord(m outboxModel) ports.OutboxRecord {
	return ports.OutboxRecord{
		OutboxID:     m.OutboxID,
		EventType:    m.EventType,
		PartitionKey: m.PartitionKey,
		Payload:      m.Payload,
		RetryCount:   m.RetryCount,
		LastError:    m.LastError,
		CreatedAt:    m.CreatedAt,
		PublishedAt:  m.PublishedAt,
		LastErrorAt:  m.LastErrorAt,
	}
}
