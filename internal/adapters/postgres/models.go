package postgres

import (
	"time"

	"github.com/google/uuid"
)

type providerModel struct {
	ProviderID   uuid.UUID `gorm:"column:provider_id;primaryKey"`
	FirstName    string    `gorm:"column:first_name"`
	LastName     string    `gorm:"column:last_name"`
	Email        string    `gorm:"column:email"`
	PasswordHash string    `gorm:"column:password_hash"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (providerModel) TableName() string { return "providers" }

type sessionModel struct {
	SessionID      uuid.UUID  `gorm:"column:session_id;primaryKey"`
	ProviderID     uuid.UUID  `gorm:"column:provider_id"`
	IPAddress      *string    `gorm:"column:ip_address"`
	UserAgent      *string    `gorm:"column:user_agent"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	LastActivityAt time.Time  `gorm:"column:last_activity_at"`
	ExpiresAt      time.Time  `gorm:"column:expires_at"`
	RevokedAt      *time.Time `gorm:"column:revoked_at"`
}

func (sessionModel) TableName() string { return "sessions" }

type rosterEntryModel struct {
	EntryID    uuid.UUID `gorm:"column:entry_id;primaryKey"`
	ProviderID uuid.UUID `gorm:"column:provider_id"`
	PatientID  string    `gorm:"column:patient_id"`
	AddedAt    time.Time `gorm:"column:added_at"`
}

func (rosterEntryModel) TableName() string { return "roster_entries" }

type patientModel struct {
	PatientID string `gorm:"column:patient_id;primaryKey"`
	FirstName string `gorm:"column:first_name"`
	LastName  string `gorm:"column:last_name"`
	Email     string `gorm:"column:email"`
	Age       int    `gorm:"column:age"`
	Gender    string `gorm:"column:gender"`
	Consent   bool   `gorm:"column:consent"`
}

func (patientModel) TableName() string { return "patients" }

type loginAttemptModel struct {
	ID            int64      `gorm:"column:id;primaryKey;autoIncrement"`
	ProviderID    *uuid.UUID `gorm:"column:provider_id"`
	AttemptAt     time.Time  `gorm:"column:attempt_at"`
	IPAddress     *string    `gorm:"column:ip_address"`
	Status        string     `gorm:"column:status"`
	FailureReason *string    `gorm:"column:failure_reason"`
	UserAgent     *string    `gorm:"column:user_agent"`
}

func (loginAttemptModel) TableName() string { return "login_attempts" }

type outboxModel struct {
	OutboxID     uuid.UUID  `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	RetryCount   int        `gorm:"column:retry_count"`
	LastError    *string    `gorm:"column:last_error"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
	LastErrorAt  *time.Time `gorm:"column:last_error_at"`
}

func (outboxModel) TableName() string { return "portal_outbox" }
