package http

import (
	"net/http"
	"time"

	"github.com/carewell/provider-portal/internal/application"
)

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req application.SignupRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "signup", err)
		return
	}

	res, err := h.service.Signup(r.Context(), req)
	if err != nil {
		writeMappedError(r.Context(), w, "signup", err)
		return
	}
	writeSuccess(w, http.StatusCreated, res)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req application.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "login", err)
		return
	}
	req.IPAddress = readIP(r)
	req.UserAgent = r.UserAgent()

	res, err := h.service.Login(r.Context(), req)
	if err != nil {
		writeMappedError(r.Context(), w, "login", err)
		return
	}

	h.setSessionCookie(w, res.Token)
	writeSuccess(w, http.StatusOK, res)
}

// logout clears the session regardless of token state. A missing or stale
// cookie still yields success so clients can always converge on logged-out.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	token, _ := h.sessionToken(r)
	if err := h.service.Logout(r.Context(), token); err != nil {
		writeMappedError(r.Context(), w, "logout", err)
		return
	}
	h.clearSessionCookie(w)
	writeMessage(w, http.StatusOK, "Logged out successfully")
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing session token")
		return
	}
	res, err := h.service.GetProfile(r.Context(), claims.ProviderID)
	if err != nil {
		writeMappedError(r.Context(), w, "get_profile", err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing session token")
		return
	}
	var req application.UpdateProfileRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "update_profile", err)
		return
	}
	res, err := h.service.UpdateProfile(r.Context(), claims.ProviderID, req)
	if err != nil {
		writeMappedError(r.Context(), w, "update_profile", err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookies.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookies.TTL / time.Second),
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookies.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
