package postgres

import "gorm.io/gorm"

// Repositories bundles all storage adapters over one shared connection pool.
type Repositories struct {
	Providers     *ProviderRepository
	Sessions      *SessionRepository
	Roster        *RosterRepository
	Directory     *PatientDirectory
	LoginAttempts *LoginAttemptRepository
	Outbox        *OutboxRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Providers:     NewProviderRepository(db),
		Sessions:      NewSessionRepository(db),
		Roster:        NewRosterRepository(db),
		Directory:     NewPatientDirectory(db),
		LoginAttempts: NewLoginAttemptRepository(db),
		Outbox:        NewOutboxRepository(db),
	}
}
