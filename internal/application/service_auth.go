package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carewell/provider-portal/internal/domain"
	"github.com/carewell/provider-portal/internal/ports"
)

// dummyBcryptHash is compared against when the email is unknown so that
// rejected logins take the same code path regardless of which credential
// was wrong.
const dummyBcryptHash = "$2a$12$C6UzMDM.H6dfI/f/IKcEeO7ZUxAGQWLKD0dEMQHQkPX6mFzkoVCdS"

func (s *Service) Signup(ctx context.Context, req SignupRequest) (ProviderSummary, error) {
	if err := domain.ValidateName("firstName", req.FirstName); err != nil {
		return ProviderSummary{}, err
	}
	if err := domain.ValidateName("lastName", req.LastName); err != nil {
		return ProviderSummary{}, err
	}
	email, err := domain.NormalizeEmail(req.Email)
	if err != nil {
		return ProviderSummary{}, err
	}
	if err := domain.ValidatePassword(req.Password); err != nil {
		return ProviderSummary{}, err
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return ProviderSummary{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.nowFn()
	payload, _ := json.Marshal(map[string]any{
		"email":         email,
		"registered_at": now,
	})

	provider, err := s.providers.CreateWithOutboxTx(ctx, ports.CreateProviderTxParams{
		FirstName:       strings.TrimSpace(req.FirstName),
		LastName:        strings.TrimSpace(req.LastName),
		Email:           email,
		PasswordHash:    passwordHash,
		RegisteredAtUTC: now,
	}, ports.OutboxEvent{
		EventID:      uuid.New(),
		EventType:    "provider.registered",
		PartitionKey: email,
		Payload:      payload,
		OccurredAt:   now,
	})
	if err != nil {
		return ProviderSummary{}, err
	}
	return toProviderSummary(provider), nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	email, err := domain.NormalizeEmail(req.Email)
	if err != nil {
		return LoginResponse{}, err
	}

	// An empty password takes the same compare-and-reject path as a wrong
	// one, so every credential mismatch has an identical rejection shape.
	provider, lookupErr := s.providers.GetByEmail(ctx, email)
	if lookupErr != nil {
		// Burn a comparison so unknown-email rejections cost the same as
		// wrong-password rejections.
		_ = s.hasher.Compare(dummyBcryptHash, req.Password)
		s.recordFailure(ctx, nil, req, "PROVIDER_NOT_FOUND")
		return LoginResponse{}, domain.ErrInvalidCredentials
	}

	if err := s.hasher.Compare(provider.PasswordHash, req.Password); err != nil {
		s.recordFailure(ctx, &provider.ProviderID, req, "INVALID_PASSWORD")
		return LoginResponse{}, domain.ErrInvalidCredentials
	}

	now := s.nowFn()
	session, err := s.sessions.Create(ctx, ports.SessionCreateParams{
		ProviderID:     provider.ProviderID,
		IPAddress:      req.IPAddress,
		UserAgent:      req.UserAgent,
		ExpiresAt:      now.Add(s.cfg.SessionTTL),
		LastActivityAt: now,
	})
	if err != nil {
		return LoginResponse{}, fmt.Errorf("create session: %w", err)
	}

	_ = s.loginAttempts.Insert(ctx, domain.LoginAttempt{
		ProviderID: &provider.ProviderID,
		AttemptAt:  now,
		IPAddress:  req.IPAddress,
		Status:     "SUCCESS",
		UserAgent:  req.UserAgent,
	})

	token, err := s.tokenSigner.Sign(ports.AuthClaims{
		ProviderID: provider.ProviderID,
		Email:      provider.Email,
		SessionID:  session.SessionID,
		IssuedAt:   now,
		ExpiresAt:  now.Add(s.cfg.TokenTTL),
	})
	if err != nil {
		return LoginResponse{}, fmt.Errorf("sign token: %w", err)
	}

	return LoginResponse{
		Token:     token,
		SessionID: session.SessionID,
		ExpiresIn: int64(s.cfg.TokenTTL.Seconds()),
		Provider:  toProviderSummary(provider),
	}, nil
}

// Logout invalidates the session behind the token. It is idempotent:
// missing, malformed or already-revoked tokens all succeed silently.
func (s *Service) Logout(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	claims, err := s.tokenSigner.ParseAndValidate(token)
	if err != nil {
		return nil
	}
	now := s.nowFn()
	if err := s.sessions.RevokeByID(ctx, claims.SessionID, now); err != nil {
		return err
	}
	return s.revocations.MarkRevoked(ctx, claims.SessionID, now.Add(s.cfg.TokenTTL))
}

// ResolveSession maps a raw token to the provider identity every protected
// operation depends on. Missing, malformed, expired, tampered and revoked
// tokens are all rejected here, before any roster logic runs.
func (s *Service) ResolveSession(ctx context.Context, token string) (Identity, error) {
	claims, err := s.tokenSigner.ParseAndValidate(token)
	if err != nil {
		return Identity{}, domain.ErrUnauthorized
	}
	if revoked, _ := s.revocations.IsRevoked(ctx, claims.SessionID); revoked {
		return Identity{}, domain.ErrSessionRevoked
	}
	session, err := s.sessions.GetByID(ctx, claims.SessionID)
	if err != nil {
		return Identity{}, domain.ErrUnauthorized
	}
	if session.ProviderID != claims.ProviderID {
		return Identity{}, domain.ErrUnauthorized
	}
	if session.RevokedAt != nil {
		return Identity{}, domain.ErrSessionRevoked
	}
	if session.ExpiresAt.Before(s.nowFn()) {
		return Identity{}, domain.ErrSessionExpired
	}
	return claims, nil
}

func (s *Service) recordFailure(ctx context.Context, providerID *uuid.UUID, req LoginRequest, reason string) {
	_ = s.loginAttempts.Insert(ctx, domain.LoginAttempt{
		ProviderID:    providerID,
		AttemptAt:     s.nowFn(),
		IPAddress:     req.IPAddress,
		Status:        "FAILED",
		FailureReason: reason,
		UserAgent:     req.UserAgent,
	})
}
