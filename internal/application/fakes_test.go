package application_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/carewell/provider-portal/internal/application"
	"github.com/carewell/provider-portal/internal/domain"
	"github.com/carewell/provider-portal/internal/ports"
)

func defaultTestConfig() application.Config {
	return application.Config{
		TokenTTL:   time.Hour,
		SessionTTL: 24 * time.Hour,
	}
}

type fixture struct {
	service     *application.Service
	providers   *fakeProviders
	sessions    *fakeSessions
	roster      *fakeRoster
	directory   *fakeDirectory
	attempts    *fakeLoginAttempts
	outbox      *fakeOutbox
	revocations *fakeRevocations
	hasher      *fakeHasher
	signer      *fakeSigner
}

func newFixture() *fixture {
	providers := &fakeProviders{
		byEmail: map[string]domain.Provider{},
		byID:    map[uuid.UUID]domain.Provider{},
	}
	sessions := &fakeSessions{byID: map[uuid.UUID]domain.Session{}}
	roster := &fakeRoster{entries: map[uuid.UUID][]string{}}
	directory := &fakeDirectory{byID: map[string]domain.Patient{}}
	attempts := &fakeLoginAttempts{}
	outbox := &fakeOutbox{}
	revocations := &fakeRevocations{revoked: map[uuid.UUID]bool{}}
	hasher := &fakeHasher{}
	signer := &fakeSigner{tokens: map[string]ports.AuthClaims{}}

	svc := application.NewService(application.Dependencies{
		Config:        defaultTestConfig(),
		Providers:     providers,
		Sessions:      sessions,
		Roster:        roster,
		Directory:     directory,
		LoginAttempts: attempts,
		Outbox:        outbox,
		Revocations:   revocations,
		Hasher:        hasher,
		TokenSigner:   signer,
	})

	return &fixture{
		service:     svc,
		providers:   providers,
		sessions:    sessions,
		roster:      roster,
		directory:   directory,
		attempts:    attempts,
		outbox:      outbox,
		revocations: revocations,
		hasher:      hasher,
		signer:      signer,
	}
}

func (f *fixture) seedPatient(id, firstName, lastName string, consent bool) {
	f.directory.mu.Lock()
	defer f.directory.mu.Unlock()
	f.directory.byID[id] = domain.Patient{
		PatientID: id,
		FirstName: firstName,
		LastName:  lastName,
		Email:     firstName + "@example.com",
		Consent:   consent,
	}
	f.directory.order = append(f.directory.order, id)
}

type fakeProviders struct {
	mu      sync.Mutex
	byEmail map[string]domain.Provider
	byID    map[uuid.UUID]domain.Provider
	events  []ports.OutboxEvent
}

func (f *fakeProviders) CreateWithOutboxTx(_ context.Context, params ports.CreateProviderTxParams, event ports.OutboxEvent) (domain.Provider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byEmail[params.Email]; ok {
		return domain.Provider{}, domain.ErrConflict
	}
	p := domain.Provider{
		ProviderID:   uuid.New(),
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		CreatedAt:    params.RegisteredAtUTC,
		UpdatedAt:    params.RegisteredAtUTC,
	}
	f.byEmail[p.Email] = p
	f.byID[p.ProviderID] = p
	f.events = append(f.events, event)
	return p, nil
}

func (f *fakeProviders) GetByEmail(_ context.Context, email string) (domain.Provider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byEmail[email]
	if !ok {
		return domain.Provider{}, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakeProviders) GetByID(_ context.Context, providerID uuid.UUID) (domain.Provider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[providerID]
	if !ok {
		return domain.Provider{}, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakeProviders) UpdateProfile(_ context.Context, params ports.UpdateProviderParams) (domain.Provider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[params.ProviderID]
	if !ok {
		return domain.Provider{}, domain.ErrNotFound
	}
	if params.FirstName != nil {
		p.FirstName = *params.FirstName
	}
	if params.LastName != nil {
		p.LastName = *params.LastName
	}
	if params.PasswordHash != nil {
		p.PasswordHash = *params.PasswordHash
	}
	p.UpdatedAt = params.UpdatedAt
	f.byID[p.ProviderID] = p
	f.byEmail[p.Email] = p
	return p, nil
}

type fakeSessions struct {
	mu   sync.Mutex
	byID map[uuid.UUID]domain.Session
}

func (f *fakeSessions) Create(_ context.Context, params ports.SessionCreateParams) (domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := domain.Session{
		SessionID:      uuid.New(),
		ProviderID:     params.ProviderID,
		IPAddress:      params.IPAddress,
		UserAgent:      params.UserAgent,
		CreatedAt:      params.LastActivityAt,
		LastActivityAt: params.LastActivityAt,
		ExpiresAt:      params.ExpiresAt,
	}
	f.byID[s.SessionID] = s
	return s, nil
}

func (f *fakeSessions) GetByID(_ context.Context, sessionID uuid.UUID) (domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byID[sessionID]
	if !ok {
		return domain.Session{}, domain.ErrNotFound
	}
	return s, nil
}

func (f *fakeSessions) RevokeByID(_ context.Context, sessionID uuid.UUID, revokedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byID[sessionID]
	if !ok {
		return domain.ErrNotFound
	}
	s.RevokedAt = &revokedAt
	f.byID[sessionID] = s
	return nil
}

type fakeRoster struct {
	mu      sync.Mutex
	entries map[uuid.UUID][]string
}

func (f *fakeRoster) Add(_ context.Context, providerID uuid.UUID, patientID string, _ time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range f.entries[providerID] {
		if id == patientID {
			return false, nil
		}
	}
	f.entries[providerID] = append(f.entries[providerID], patientID)
	return true, nil
}

func (f *fakeRoster) Remove(_ context.Context, providerID uuid.UUID, patientID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := f.entries[providerID]
	for i, id := range ids {
		if id == patientID {
			f.entries[providerID] = append(ids[:i], ids[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRoster) ListPatientIDs(_ context.Context, providerID uuid.UUID) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.entries[providerID]))
	copy(out, f.entries[providerID])
	return out, nil
}

type fakeDirectory struct {
	mu    sync.Mutex
	byID  map[string]domain.Patient
	order []string
}

func (f *fakeDirectory) List(_ context.Context, q ports.DirectoryQuery) ([]domain.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Patient
	for _, id := range f.order {
		p := f.byID[id]
		if q.Consented != nil && p.Consent != *q.Consented {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeDirectory) GetByID(_ context.Context, patientID string) (domain.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[patientID]
	if !ok {
		return domain.Patient{}, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakeDirectory) GetByIDs(_ context.Context, patientIDs []string) (map[string]domain.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]domain.Patient, len(patientIDs))
	for _, id := range patientIDs {
		if p, ok := f.byID[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type fakeLoginAttempts struct {
	mu       sync.Mutex
	attempts []domain.LoginAttempt
}

func (f *fakeLoginAttempts) Insert(_ context.Context, attempt domain.LoginAttempt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts = append(f.attempts, attempt)
	return nil
}

type fakeOutbox struct {
	mu     sync.Mutex
	events []ports.OutboxEvent
}

func (f *fakeOutbox) Enqueue(_ context.Context, event ports.OutboxEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeOutbox) FetchUnpublished(context.Context, int) ([]ports.OutboxRecord, error) {
	return nil, nil
}

func (f *fakeOutbox) MarkPublished(context.Context, uuid.UUID, time.Time) error { return nil }

func (f *fakeOutbox) MarkFailed(context.Context, uuid.UUID, string, time.Time) error { return nil }

func (f *fakeOutbox) eventTypes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.EventType)
	}
	return out
}

type fakeRevocations struct {
	mu      sync.Mutex
	revoked map[uuid.UUID]bool
}

func (f *fakeRevocations) MarkRevoked(_ context.Context, sessionID uuid.UUID, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked[sessionID] = true
	return nil
}

func (f *fakeRevocations) IsRevoked(_ context.Context, sessionID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.revoked[sessionID], nil
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("hash mismatch")
	}
	return nil
}

type fakeSigner struct {
	mu     sync.Mutex
	tokens map[string]ports.AuthClaims
}

func (f *fakeSigner) Sign(claims ports.AuthClaims) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	token := uuid.NewString()
	f.tokens[token] = claims
	return token, nil
}

func (f *fakeSigner) ParseAndValidate(token string) (ports.AuthClaims, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	claims, ok := f.tokens[token]
	if !ok {
		return ports.AuthClaims{}, domain.ErrUnauthorized
	}
	return claims, nil
}
