package application

import (
	"time"

	"github.com/google/uuid"

	"github.com/carewell/provider-portal/internal/domain"
	"github.com/carewell/provider-portal/internal/ports"
)

type SignupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// ProviderSummary is the outward provider shape. The password hash is
// deliberately absent from the type, not just tagged away.
type ProviderSummary struct {
	ProviderID uuid.UUID `json:"provider_id"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type LoginRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

type LoginResponse struct {
	Token     string          `json:"-"`
	SessionID uuid.UUID       `json:"session_id"`
	ExpiresIn int64           `json:"expires_in"`
	Provider  ProviderSummary `json:"provider"`
}

type UpdateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Password  *string `json:"password"`
}

// PatientView is the hydrated directory record returned by roster reads.
type PatientView struct {
	PatientID string `json:"patient_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Age       int    `json:"age,omitempty"`
	Gender    string `json:"gender,omitempty"`
	Consent   bool   `json:"consent"`
}

func toProviderSummary(p domain.Provider) ProviderSummary {
	return ProviderSummary{
		ProviderID: p.ProviderID,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Email:      p.Email,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func toPatientView(p domain.Patient) PatientView {
	return PatientView{
		PatientID: p.PatientID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Age:       p.Age,
		Gender:    p.Gender,
		Consent:   p.Consent,
	}
}

// Identity re-exports the resolved claims type so HTTP/gRPC adapters do not
// need to import ports directly for the common case.
type Identity = ports.AuthClaims
