package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carewell/provider-portal/internal/domain"
	"github.com/carewell/provider-portal/internal/ports"
)

func (s *Service) GetProfile(ctx context.Context, providerID uuid.UUID) (ProviderSummary, error) {
	provider, err := s.providers.GetByID(ctx, providerID)
	if err != nil {
		return ProviderSummary{}, err
	}
	return toProviderSummary(provider), nil
}

func (s *Service) UpdateProfile(ctx context.Context, providerID uuid.UUID, req UpdateProfileRequest) (ProviderSummary, error) {
	params := ports.UpdateProviderParams{
		ProviderID: providerID,
		UpdatedAt:  s.nowFn(),
	}

	if req.FirstName != nil {
		if err := domain.ValidateName("firstName", *req.FirstName); err != nil {
			return ProviderSummary{}, err
		}
		trimmed := strings.TrimSpace(*req.FirstName)
		params.FirstName = &trimmed
	}
	if req.LastName != nil {
		if err := domain.ValidateName("lastName", *req.LastName); err != nil {
			return ProviderSummary{}, err
		}
		trimmed := strings.TrimSpace(*req.LastName)
		params.LastName = &trimmed
	}
	if req.Password != nil {
		if err := domain.ValidatePassword(*req.Password); err != nil {
			return ProviderSummary{}, err
		}
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return ProviderSummary{}, fmt.Errorf("hash password: %w", err)
		}
		params.PasswordHash = &hash
	}

	if params.FirstName == nil && params.LastName == nil && params.PasswordHash == nil {
		return ProviderSummary{}, fmt.Errorf("%w: no updatable fields supplied", domain.ErrInvalidInput)
	}

	provider, err := s.providers.UpdateProfile(ctx, params)
	if err != nil {
		return ProviderSummary{}, err
	}
	return toProviderSummary(provider), nil
}
