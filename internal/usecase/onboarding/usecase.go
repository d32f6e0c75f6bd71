// Package onboarding creates client profiles on behalf of applicants and
// invites them into the identity store. Self-service profile creation stays
// in the application usecase; this path is for internal users.
package onboarding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"lms-backend/internal/domain/apperr"
	"lms-backend/internal/domain/audit"
	clientDomain "lms-backend/internal/domain/client"
	"lms-backend/internal/guard"
	"lms-backend/pkg/id"
)

// Inviter provisions a user in the identity store and returns the new user
// id plus the invite link the applicant follows to set credentials.
type Inviter interface {
	Invite(ctx context.Context, email, fullName, redirectTo string) (userID, actionLink string, err error)
}

// RoleGranter assigns a named role to a user.
type RoleGranter interface {
	Grant(ctx context.Context, userID, roleName string) error
}

type Usecase struct {
	clients clientDomain.Repository
	roles   guard.RoleResolver
	grants  RoleGranter
	inviter Inviter
	audit   audit.Sink
}

func NewUsecase(
	clients clientDomain.Repository,
	roles guard.RoleResolver,
	grants RoleGranter,
	inviter Inviter,
	auditSink audit.Sink,
) *Usecase {
	return &Usecase{clients: clients, roles: roles, grants: grants, inviter: inviter, audit: auditSink}
}

// CreateAssisted creates a client profile for an applicant who may not have
// a user account yet. With SendInvite the applicant is provisioned in the
// identity store and linked as the profile owner immediately.
func (u *Usecase) CreateAssisted(ctx context.Context, actorID string, in CreateAssistedInput) (*clientDomain.Client, error) {
	if err := u.requireInternal(ctx, actorID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.BusinessName) == "" {
		return nil, fmt.Errorf("%w: business_name is required", apperr.ErrValidation)
	}
	if in.SendInvite && strings.TrimSpace(in.ApplicantEmail) == "" {
		return nil, fmt.Errorf("%w: applicant_email is required when sending an invite", apperr.ErrValidation)
	}

	var ownerID string
	if in.SendInvite {
		userID, _, err := u.inviteApplicant(ctx, in.ApplicantEmail, in.ApplicantFullName, in.RedirectTo)
		if err != nil {
			return nil, err
		}
		ownerID = userID
	}

	c := &clientDomain.Client{
		ClientID:       id.NewID32(),
		UserID:         ownerID,
		BusinessName:   in.BusinessName,
		RegistrationNo: in.RegistrationNo,
		Address:        in.Address,
	}
	if err := u.clients.Create(ctx, c); err != nil {
		return nil, err
	}

	u.audit.Append(ctx, "clients", c.ClientID, "CreateAssistedClient", actorID, map[string]any{
		"businessName":   in.BusinessName,
		"applicantEmail": in.ApplicantEmail,
		"sendInvite":     in.SendInvite,
	})
	return c, nil
}

// SendInvite provisions (or re-invites) the applicant for an existing
// profile and links them as its owner.
func (u *Usecase) SendInvite(ctx context.Context, actorID, clientID string, in SendInviteInput) (*InviteResult, error) {
	if err := u.requireInternal(ctx, actorID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.ApplicantEmail) == "" {
		return nil, fmt.Errorf("%w: applicant_email is required", apperr.ErrValidation)
	}

	c, err := u.clients.GetByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: client", apperr.ErrNotFound)
		}
		return nil, err
	}

	userID, actionLink, err := u.inviteApplicant(ctx, in.ApplicantEmail, in.ApplicantFullName, in.RedirectTo)
	if err != nil {
		return nil, err
	}

	c.UserID = userID
	if err := u.clients.Save(ctx, c); err != nil {
		return nil, err
	}

	u.audit.Append(ctx, "clients", clientID, "SendClientInvite", actorID, map[string]any{
		"applicantEmail": in.ApplicantEmail,
		"redirectTo":     in.RedirectTo,
	})
	return &InviteResult{
		UserID:     userID,
		Email:      in.ApplicantEmail,
		Status:     "InviteLinkGenerated",
		ActionLink: actionLink,
	}, nil
}

func (u *Usecase) List(ctx context.Context, actorID string) ([]clientDomain.Client, error) {
	if err := u.requireInternal(ctx, actorID); err != nil {
		return nil, err
	}
	return u.clients.ListAll(ctx)
}

// inviteApplicant provisions the user and grants the Client role so the
// invited applicant can reach their own resources on first login.
func (u *Usecase) inviteApplicant(ctx context.Context, email, fullName, redirectTo string) (string, string, error) {
	userID, actionLink, err := u.inviter.Invite(ctx, email, fullName, redirectTo)
	if err != nil {
		return "", "", err
	}
	if err := u.grants.Grant(ctx, userID, guard.RoleClient); err != nil {
		return "", "", err
	}
	return userID, actionLink, nil
}

func (u *Usecase) requireInternal(ctx context.Context, actorID string) error {
	roles, err := u.roles.Roles(ctx, actorID)
	if err != nil {
		return err
	}
	if !guard.IsStaff(roles) && !guard.IsAssignedWorker(roles) {
		return fmt.Errorf("%w: assisted onboarding requires an internal role", apperr.ErrForbidden)
	}
	return nil
}
