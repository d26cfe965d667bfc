// Package tracker manages job applications through their Kanban lifecycle.
//
// Valid status graph:
//
//	UNAPPLIED ──► APPLIED ──► OA ──► INTERVIEW ──► OFFER
//	     │            │  └────────────┐  │
//	     │            └──────────────►│  │
//	     └────────────┴───────────────┴──┴──► REJECTED
//
// The online assessment (OA) column is optional: APPLIED may move straight
// to INTERVIEW. OFFER and REJECTED are terminal.
package tracker

import "fmt"

// Status values mirror the application_status check constraint in PostgreSQL.
type Status string

const (
	StatusUnapplied Status = "UNAPPLIED"
	StatusApplied   Status = "APPLIED"
	StatusOA        Status = "OA"
	StatusInterview Status = "INTERVIEW"
	StatusOffer     Status = "OFFER"
	StatusRejected  Status = "REJECTED"
)

// validTransitions lists every allowed (from → to) pair.
var validTransitions = map[Status][]Status{
	StatusUnapplied: {StatusApplied, StatusRejected},
	StatusApplied:   {StatusOA, StatusInterview, StatusRejected},
	StatusOA:        {StatusInterview, StatusRejected},
	StatusInterview: {StatusOffer, StatusRejected},
	// OFFER and REJECTED are terminal — no outgoing transitions
}

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusUnapplied, StatusApplied, StatusOA, StatusInterview, StatusOffer, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// IsTransitionAllowed returns true when moving from → to is permitted.
func IsTransitionAllowed(from, to Status) bool {
	allowed, ok := validTransitions[from]
	if !ok {
		return false // terminal state
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// MarksApplied returns true when entering status should stamp applied_at.
func MarksApplied(s Status) bool { return s == StatusApplied }
