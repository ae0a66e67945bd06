package console

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// stubPortal fakes the portal API with cookie-based sessions and a
// set-semantic roster, enough to exercise the console's sync behavior.
type stubPortal struct {
	mu        sync.Mutex
	directory []Patient
	roster    map[string]bool
	sessions  map[string]bool
}

func newStubPortal() *stubPortal {
	return &stubPortal{
		directory: []Patient{
			{PatientID: "pat-1", FirstName: "Alice", LastName: "Ng", Consent: true},
			{PatientID: "pat-2", FirstName: "Bob", LastName: "Silva", Consent: false},
		},
		roster:   map[string]bool{},
		sessions: map[string]bool{},
	}
}

func (s *stubPortal) authed(r *http.Request) bool {
	c, err := r.Cookie("portal_session")
	if err != nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[c.Value]
}

func (s *stubPortal) handler() http.Handler {
	mux := http.NewServeMux()

	writeEnvelope := func(w http.ResponseWriter, status int, body map[string]any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}

	mux.HandleFunc("POST /providers/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "sunrise7" {
			writeEnvelope(w, http.StatusUnauthorized, map[string]any{
				"status": "error", "code": "INVALID_CREDENTIALS", "message": "invalid email or password",
			})
			return
		}
		s.mu.Lock()
		s.sessions["tok-1"] = true
		s.mu.Unlock()
		http.SetCookie(w, &http.Cookie{Name: "portal_session", Value: "tok-1", Path: "/", HttpOnly: true})
		writeEnvelope(w, http.StatusOK, map[string]any{"status": "success", "data": map[string]any{}})
	})

	mux.HandleFunc("POST /providers/logout", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.sessions = map[string]bool{}
		s.mu.Unlock()
		http.SetCookie(w, &http.Cookie{Name: "portal_session", Value: "", Path: "/", MaxAge: -1})
		writeEnvelope(w, http.StatusOK, map[string]any{"status": "success", "message": "Logged out successfully"})
	})

	mux.HandleFunc("GET /providers/patients/all", func(w http.ResponseWriter, r *http.Request) {
		if !s.authed(r) {
			writeEnvelope(w, http.StatusUnauthorized, map[string]any{"status": "error", "code": "UNAUTHORIZED", "message": "missing session token"})
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		writeEnvelope(w, http.StatusOK, map[string]any{"status": "success", "data": map[string]any{"patients": s.directory}})
	})

	mux.HandleFunc("GET /providers/patients/my-patients", func(w http.ResponseWriter, r *http.Request) {
		if !s.authed(r) {
			writeEnvelope(w, http.StatusUnauthorized, map[string]any{"status": "error", "code": "UNAUTHORIZED", "message": "missing session token"})
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		mine := []Patient{}
		for _, p := range s.directory {
			if s.roster[p.PatientID] {
				mine = append(mine, p)
			}
		}
		writeEnvelope(w, http.StatusOK, map[string]any{"status": "success", "data": map[string]any{"patients": mine}})
	})

	mux.HandleFunc("POST /providers/patients/add", func(w http.ResponseWriter, r *http.Request) {
		if !s.authed(r) {
			writeEnvelope(w, http.StatusUnauthorized, map[string]any{"status": "error", "code": "UNAUTHORIZED", "message": "missing session token"})
			return
		}
		var req struct {
			PatientID string `json:"patientId"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		s.mu.Lock()
		defer s.mu.Unlock()
		known := false
		for _, p := range s.directory {
			if p.PatientID == req.PatientID {
				known = true
			}
		}
		if !known {
			writeEnvelope(w, http.StatusNotFound, map[string]any{"status": "error", "code": "NOT_FOUND", "message": "resource not found"})
			return
		}
		s.roster[req.PatientID] = true
		writeEnvelope(w, http.StatusOK, map[string]any{"status": "success", "data": map[string]any{}})
	})

	mux.HandleFunc("DELETE /providers/patients/remove/", func(w http.ResponseWriter, r *http.Request) {
		if !s.authed(r) {
			writeEnvelope(w, http.StatusUnauthorized, map[string]any{"status": "error", "code": "UNAUTHORIZED", "message": "missing session token"})
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/providers/patients/remove/")
		s.mu.Lock()
		delete(s.roster, id)
		s.mu.Unlock()
		writeEnvelope(w, http.StatusOK, map[string]any{"status": "success", "message": "Patient removed successfully"})
	})

	return mux
}

func TestConsoleSyncsRosterAfterMutations(t *testing.T) {
	t.Parallel()

	portal := newStubPortal()
	srv := httptest.NewServer(portal.handler())
	defer srv.Close()

	ctx := context.Background()
	client, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("init client: %v", err)
	}

	if err := client.Login(ctx, "dana@example.com", "sunrise7"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if len(client.AllPatients()) != 2 {
		t.Fatalf("expected directory snapshot after login, got %d", len(client.AllPatients()))
	}
	if client.IsAssigned("pat-1") {
		t.Fatalf("nothing should be assigned before first add")
	}

	if err := client.AddPatient(ctx, "pat-1"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !client.IsAssigned("pat-1") {
		t.Fatalf("assignment must come from the refreshed roster snapshot")
	}
	if n := client.Notification(); n == nil || n.IsError {
		t.Fatalf("expected success notification, got %+v", n)
	}

	if err := client.RemovePatient(ctx, "pat-1"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if client.IsAssigned("pat-1") {
		t.Fatalf("remove must drop assignment after re-sync")
	}
}

func TestConsoleKeepsLatestNotificationOnly(t *testing.T) {
	t.Parallel()

	portal := newStubPortal()
	srv := httptest.NewServer(portal.handler())
	defer srv.Close()

	ctx := context.Background()
	client, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("init client: %v", err)
	}
	if err := client.Login(ctx, "dana@example.com", "sunrise7"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := client.AddPatient(ctx, "ghost"); err == nil {
		t.Fatalf("expected add of unknown patient to fail")
	}
	if n := client.Notification(); n == nil || !n.IsError {
		t.Fatalf("expected error notification, got %+v", n)
	}

	if err := client.AddPatient(ctx, "pat-1"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	n := client.Notification()
	if n == nil || n.IsError {
		t.Fatalf("latest notification must replace the previous error, got %+v", n)
	}
}

func TestConsoleLoginFailureSetsNotification(t *testing.T) {
	t.Parallel()

	portal := newStubPortal()
	srv := httptest.NewServer(portal.handler())
	defer srv.Close()

	client, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("init client: %v", err)
	}
	if err := client.Login(context.Background(), "dana@example.com", "wrong"); err == nil {
		t.Fatalf("expected login failure")
	}
	if n := client.Notification(); n == nil || !n.IsError {
		t.Fatalf("expected error notification after failed login, got %+v", n)
	}
}
