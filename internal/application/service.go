package application

import (
	"time"

	"github.com/carewell/provider-portal/internal/ports"
)

type Config struct {
	TokenTTL   time.Duration
	SessionTTL time.Duration
}

type Service struct {
	cfg           Config
	providers     ports.ProviderRepository
	sessions      ports.SessionRepository
	roster        ports.RosterRepository
	directory     ports.PatientDirectory
	loginAttempts ports.LoginAttemptRepository
	outbox        ports.OutboxRepository
	revocations   ports.SessionRevocationStore
	hasher        ports.PasswordHasher
	tokenSigner   ports.TokenSigner
	nowFn         func() time.Time
}

type Dependencies struct {
	Config        Config
	Providers     ports.ProviderRepository
	Sessions      ports.SessionRepository
	Roster        ports.RosterRepository
	Directory     ports.PatientDirectory
	LoginAttempts ports.LoginAttemptRepository
	Outbox        ports.OutboxRepository
	Revocations   ports.SessionRevocationStore
	Hasher        ports.PasswordHasher
	TokenSigner   ports.TokenSigner
}

func NewService(deps Dependencies) *Service {
	return &Service{
		cfg:           deps.Config,
		providers:     deps.Providers,
		sessions:      deps.Sessions,
		roster:        deps.Roster,
		directory:     deps.Directory,
		loginAttempts: deps.LoginAttempts,
		outbox:        deps.Outbox,
		revocations:   deps.Revocations,
		hasher:        deps.Hasher,
		tokenSigner:   deps.TokenSigner,
		nowFn:         func() time.Time { return time.Now().UTC() },
	}
}
