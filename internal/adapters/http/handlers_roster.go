package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/carewell/provider-portal/internal/ports"
)

func (h *Handler) listAllPatients(w http.ResponseWriter, r *http.Request) {
	query := ports.DirectoryQuery{
		Page:  parseIntDefault(r.URL.Query().Get("page"), 1),
		Limit: parseIntDefault(r.URL.Query().Get("limit"), 0),
	}
	if raw := r.URL.Query().Get("consented"); raw != "" {
		if consented, err := strconv.ParseBool(raw); err == nil {
			query.Consented = &consented
		}
	}

	items, err := h.service.ListAllPatients(r.Context(), query)
	if err != nil {
		writeMappedError(r.Context(), w, "list_all_patients", err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"patients": items})
}

func (h *Handler) listMyPatients(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing session token")
		return
	}
	items, err := h.service.ListMyPatients(r.Context(), claims.ProviderID)
	if err != nil {
		writeMappedError(r.Context(), w, "list_my_patients", err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"patients": items})
}

func (h *Handler) addPatient(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing session token")
		return
	}
	var req struct {
		PatientID string `json:"patientId"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "add_patient", err)
		return
	}

	patient, err := h.service.AddPatient(r.Context(), claims.ProviderID, req.PatientID)
	if err != nil {
		writeMappedError(r.Context(), w, "add_patient", err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"patient": patient})
}

func (h *Handler) removePatient(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing session token")
		return
	}
	patientID := chi.URLParam(r, "patientId")

	if err := h.service.RemovePatient(r.Context(), claims.ProviderID, patientID); err != nil {
		writeMappedError(r.Context(), w, "remove_patient", err)
		return
	}
	writeMessage(w, http.StatusOK, "Patient removed successfully")
}
