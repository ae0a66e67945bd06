package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/carewell/provider-portal/internal/domain"
)

// CreateProviderTxParams captures atomic provider-creation inputs.
// Registration writes the provider row and its outbox event in one
// transaction so downstream consumers never see a phantom signup.
type CreateProviderTxParams struct {
	FirstName       string
	LastName        string
	Email           string
	PasswordHash    string
	RegisteredAtUTC time.Time
}

// UpdateProviderParams carries the mutable profile fields. Nil means
// "leave unchanged" so partial updates stay explicit.
type UpdateProviderParams struct {
	ProviderID   uuid.UUID
	FirstName    *string
	LastName     *string
	PasswordHash *string
	UpdatedAt    time.Time
}

// ProviderRepository is the credential store. Email uniqueness is enforced
// by the storage layer, not just here, to close the concurrent-signup race.
type ProviderRepository interface {
	CreateWithOutboxTx(ctx context.Context, params CreateProviderTxParams, event OutboxEvent) (domain.Provider, error)
	GetByEmail(ctx context.Context, email string) (domain.Provider, error)
	GetByID(ctx context.Context, providerID uuid.UUID) (domain.Provider, error)
	UpdateProfile(ctx context.Context, params UpdateProviderParams) (domain.Provider, error)
}

// SessionCreateParams captures metadata required to create a session record.
type SessionCreateParams struct {
	ProviderID     uuid.UUID
	IPAddress      string
	UserAgent      string
	ExpiresAt      time.Time
	LastActivityAt time.Time
}

// SessionRepository manages persistent session lifecycle. It is separate
// from token parsing so revocation remains source-of-truth driven.
type SessionRepository interface {
	Create(ctx context.Context, params SessionCreateParams) (domain.Session, error)
	GetByID(ctx context.Context, sessionID uuid.UUID) (domain.Session, error)
	RevokeByID(ctx context.Context, sessionID uuid.UUID, revokedAt time.Time) error
}

// RosterRepository persists provider-to-patient assignments as a keyed set.
// Add and Remove are single-statement atomic operations; both report whether
// the call actually changed state so idempotent repeats stay cheap and
// event emission can be limited to real transitions.
type RosterRepository interface {
	Add(ctx context.Context, providerID uuid.UUID, patientID string, addedAt time.Time) (bool, error)
	Remove(ctx context.Context, providerID uuid.UUID, patientID string) (bool, error)
	ListPatientIDs(ctx context.Context, providerID uuid.UUID) ([]string, error)
}

// DirectoryQuery carries optional paging/consent parameters through to the
// patient directory unmodified; the roster service never filters itself.
type DirectoryQuery struct {
	Page      int
	Limit     int
	Consented *bool
}

// PatientDirectory is the read-only view over the shared patient subsystem.
type PatientDirectory interface {
	List(ctx context.Context, q DirectoryQuery) ([]domain.Patient, error)
	GetByID(ctx context.Context, patientID string) (domain.Patient, error)
	GetByIDs(ctx context.Context, patientIDs []string) (map[string]domain.Patient, error)
}

// LoginAttemptRepository stores login outcomes for audit.
type LoginAttemptRepository interface {
	Insert(ctx context.Context, attempt domain.LoginAttempt) error
}

// OutboxEvent is the write-side event payload prior to storage.
type OutboxEvent struct {
	EventID      uuid.UUID
	EventType    string
	PartitionKey string
	Payload      []byte
	OccurredAt   time.Time
}

// OutboxRecord represents durable outbox state, including retry metadata.
type OutboxRecord struct {
	OutboxID     uuid.UUID
	EventType    string
	PartitionKey string
	Payload      []byte
	RetryCount   int
	LastError    *string
	CreatedAt    time.Time
	PublishedAt  *time.Time
	LastErrorAt  *time.Time
}

// OutboxRepository controls the publish-retry workflow for domain events.
type OutboxRepository interface {
	Enqueue(ctx context.Context, event OutboxEvent) error
	FetchUnpublished(ctx context.Context, limit int) ([]OutboxRecord, error)
	MarkPublished(ctx context.Context, outboxID uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, outboxID uuid.UUID, errMsg string, at time.Time) error
}
