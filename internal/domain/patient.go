package domain

// Patient is the read-only directory record consumed by roster operations.
// The patient subsystem owns these records; this service never mutates them,
// and a roster entry pointing at a deleted patient is tolerated, not treated
// as corruption.
type Patient struct {
	PatientID string
	FirstName string
	LastName  string
	Email     string
	Age       int
	Gender    string
	Consent   bool
}
