package application

import (
	"fmt"

	"lms-backend/internal/domain/apperr"
)

type Status string

const (
	StatusDraft         Status = "Draft"
	StatusSubmitted     Status = "Submitted"
	StatusUnderReview   Status = "UnderReview"
	StatusInfoRequested Status = "InfoRequested"
	StatusApproved      Status = "Approved"
	StatusRejected      Status = "Rejected"
	StatusDisbursed     Status = "Disbursed"
	StatusInRepayment   Status = "InRepayment"
	StatusClosed        Status = "Closed"
)

// transitions is the closed edge set of the application state machine.
// Self-transitions are handled by callers as no-ops and are not listed.
var transitions = map[Status][]Status{
	StatusDraft:         {StatusSubmitted},
	StatusSubmitted:     {StatusUnderReview, StatusInfoRequested, StatusApproved, StatusRejected},
	StatusUnderReview:   {StatusInfoRequested, StatusApproved, StatusRejected},
	StatusInfoRequested: {StatusSubmitted, StatusUnderReview},
	StatusApproved:      {StatusDisbursed},
	StatusDisbursed:     {StatusInRepayment},
	StatusInRepayment:   {StatusClosed},
}

// CanTransition reports whether from -> to is a legal edge. from == to is
// always legal (idempotent no-op).
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ParseStatus validates a stored string against the closed enumeration.
// Statuses only exist as raw strings at the storage boundary.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusDraft, StatusSubmitted, StatusUnderReview, StatusInfoRequested,
		StatusApproved, StatusRejected, StatusDisbursed, StatusInRepayment, StatusClosed:
		return Status(raw), nil
	}
	return "", fmt.Errorf("%w: unknown application status %q", apperr.ErrValidation, raw)
}
