// Package guard makes the pure authorization decisions: resource access by
// role/ownership and status-transition gating. It performs no I/O; callers
// resolve the actor's roles and the resource projection first.
package guard

import (
	"context"
	"fmt"

	"lms-backend/internal/domain/apperr"
	"lms-backend/internal/domain/application"
)

const (
	RoleClient      = "Client"
	RoleIntern      = "Intern"
	RoleOriginator  = "Originator"
	RoleLoanOfficer = "LoanOfficer"
	RoleAdmin       = "Admin"
)

var (
	staffRoles    = []string{RoleLoanOfficer, RoleAdmin}
	assignedRoles = []string{RoleIntern, RoleOriginator}
)

// RoleResolver looks up an actor's role names from the identity store.
// Roles are resolved explicitly per call, never from ambient session state.
type RoleResolver interface {
	Roles(ctx context.Context, userID string) ([]string, error)
}

// Projection is the minimal ownership read of the target resource. Fields
// are empty when unset.
type Projection struct {
	AssignedToUserID  string
	ClientOwnerUserID string
}

func hasRole(roles []string, want string) bool {
	for _, r := range roles {
		if r == want {
			return true
		}
	}
	return false
}

func hasAny(roles []string, want []string) bool {
	for _, w := range want {
		if hasRole(roles, w) {
			return true
		}
	}
	return false
}

// IsStaff reports whether the role set carries unconditional access.
func IsStaff(roles []string) bool { return hasAny(roles, staffRoles) }

// IsAssignedWorker reports whether the role set only reaches resources
// assigned to the actor.
func IsAssignedWorker(roles []string) bool { return hasAny(roles, assignedRoles) }

// IsClient reports whether the role set only reaches owned resources.
func IsClient(roles []string) bool { return hasRole(roles, RoleClient) }

// CanAccess decides read/mutate access to a resource. A negative result is
// an authorization failure, never a validation failure.
func CanAccess(roles []string, actorID string, p Projection) bool {
	if IsStaff(roles) {
		return true
	}
	if IsAssignedWorker(roles) && p.AssignedToUserID != "" && p.AssignedToUserID == actorID {
		return true
	}
	if IsClient(roles) && p.ClientOwnerUserID != "" && p.ClientOwnerUserID == actorID {
		return true
	}
	return false
}

// CanMutateStatus gates a status transition: the edge must exist in the
// transition table, and every edge except Draft->Submitted requires a staff
// role. Self-transitions are accepted for any role with access.
func CanMutateStatus(roles []string, from, to application.Status) error {
	if !application.CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", apperr.ErrInvalidTransition, from, to)
	}
	if from == to {
		return nil
	}
	if from == application.StatusDraft && to == application.StatusSubmitted {
		return nil
	}
	if !IsStaff(roles) {
		return fmt.Errorf("%w: transition %s -> %s requires LoanOfficer/Admin", apperr.ErrForbidden, from, to)
	}
	return nil
}
