package console

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// Patient mirrors the portal's outward patient shape.
type Patient struct {
	PatientID string `json:"patient_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Age       int    `json:"age,omitempty"`
	Gender    string `json:"gender,omitempty"`
	Consent   bool   `json:"consent"`
}

// Notification is a single-slot status message. Each mutation overwrites the
// previous one, so the console always shows the latest outcome only.
type Notification struct {
	Text    string
	IsError bool
	At      time.Time
}

// Client is the roster console session. It authenticates once, keeps the
// session cookie in a jar, and maintains a snapshot of the directory and the
// provider's roster. Every successful mutation re-fetches both lists so the
// snapshot always reflects server truth instead of local guesses.
type Client struct {
	baseURL    string
	httpClient *http.Client

	allPatients  []Patient
	myPatients   []Patient
	notification *Notification
}

func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("init cookie jar: %w", err)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: 15 * time.Second,
		},
	}, nil
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Code    string          `json:"code"`
}

func (c *Client) do(ctx context.Context, method, path string, body any) (envelope, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return envelope{}, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return envelope{}, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return envelope{}, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return envelope{}, fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode >= 400 {
		msg := env.Message
		if msg == "" {
			msg = resp.Status
		}
		return env, fmt.Errorf("%s", msg)
	}
	return env, nil
}

// Login authenticates and loads the initial directory and roster snapshots.
func (c *Client) Login(ctx context.Context, email, password string) error {
	_, err := c.do(ctx, http.MethodPost, "/providers/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		c.setNotification("Login failed: "+err.Error(), true)
		return err
	}
	if err := c.Refresh(ctx); err != nil {
		return err
	}
	c.setNotification("Logged in as "+email, false)
	return nil
}

// Logout ends the session. Errors are ignored on purpose; the server treats
// logout as idempotent and the local state is cleared either way.
func (c *Client) Logout(ctx context.Context) {
	_, _ = c.do(ctx, http.MethodPost, "/providers/logout", nil)
	c.allPatients = nil
	c.myPatients = nil
	c.setNotification("Logged out", false)
}

// Refresh re-fetches both lists. The roster snapshot is replaced wholesale;
// assignment state is never derived from the directory list.
func (c *Client) Refresh(ctx context.Context) error {
	all, err := c.fetchPatients(ctx, "/providers/patients/all")
	if err != nil {
		c.setNotification("Could not load patients: "+err.Error(), true)
		return err
	}
	mine, err := c.fetchPatients(ctx, "/providers/patients/my-patients")
	if err != nil {
		c.setNotification("Could not load your patients: "+err.Error(), true)
		return err
	}
	c.allPatients = all
	c.myPatients = mine
	return nil
}

func (c *Client) fetchPatients(ctx context.Context, path string) ([]Patient, error) {
	env, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var data struct {
		Patients []Patient `json:"patients"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("decode patients: %w", err)
	}
	return data.Patients, nil
}

// AddPatient assigns a patient and re-syncs both lists on success.
func (c *Client) AddPatient(ctx context.Context, patientID string) error {
	_, err := c.do(ctx, http.MethodPost, "/providers/patients/add", map[string]string{
		"patientId": patientID,
	})
	if err != nil {
		c.setNotification("Add failed: "+err.Error(), true)
		return err
	}
	if err := c.Refresh(ctx); err != nil {
		return err
	}
	c.setNotification("Patient added to your roster", false)
	return nil
}

// RemovePatient detaches a patient and re-syncs both lists on success.
func (c *Client) RemovePatient(ctx context.Context, patientID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/providers/patients/remove/"+patientID, nil)
	if err != nil {
		c.setNotification("Remove failed: "+err.Error(), true)
		return err
	}
	if err := c.Refresh(ctx); err != nil {
		return err
	}
	c.setNotification("Patient removed from your roster", false)
	return nil
}

// AllPatients returns the last directory snapshot.
func (c *Client) AllPatients() []Patient { return c.allPatients }

// MyPatients returns the last roster snapshot.
func (c *Client) MyPatients() []Patient { return c.myPatients }

// IsAssigned reports membership based solely on the last roster snapshot.
func (c *Client) IsAssigned(patientID string) bool {
	for _, p := range c.myPatients {
		if p.PatientID == patientID {
			return true
		}
	}
	return false
}

// Notification returns the latest status message, if any.
func (c *Client) Notification() *Notification { return c.notification }

func (c *Client) setNotification(text string, isError bool) {
	c.notification = &Notification{Text: text, IsError: isError, At: time.Now()}
}
