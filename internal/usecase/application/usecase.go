package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"lms-backend/internal/domain/apperr"
	appDomain "lms-backend/internal/domain/application"
	"lms-backend/internal/domain/audit"
	clientDomain "lms-backend/internal/domain/client"
	loanDomain "lms-backend/internal/domain/loan"
	"lms-backend/internal/domain/notification"
	taskDomain "lms-backend/internal/domain/task"
	"lms-backend/internal/domain/uow"
	"lms-backend/internal/guard"
	"lms-backend/pkg/id"
)

const (
	documentsBucket   = "loan-documents"
	presignExpirySecs = 7200
	infoTaskDueDays   = 7
)

// UploadSigner produces a presigned upload URL from the object store.
type UploadSigner interface {
	SignUpload(ctx context.Context, bucket, path string) (string, error)
}

type Usecase struct {
	apps    appDomain.Repository
	clients clientDomain.Repository
	uow     uow.UnitOfWork
	roles   guard.RoleResolver
	audit   audit.Sink
	notify  notification.Sink
	signer  UploadSigner
}

func NewUsecase(
	apps appDomain.Repository,
	clients clientDomain.Repository,
	tx uow.UnitOfWork,
	roles guard.RoleResolver,
	auditSink audit.Sink,
	notifySink notification.Sink,
	signer UploadSigner,
) *Usecase {
	return &Usecase{apps: apps, clients: clients, uow: tx, roles: roles, audit: auditSink, notify: notifySink, signer: signer}
}

func (u *Usecase) CreateDraft(ctx context.Context, actorID string, in CreateDraftInput) (*appDomain.Application, error) {
	if strings.TrimSpace(in.Purpose) == "" {
		return nil, fmt.Errorf("%w: purpose is required", apperr.ErrValidation)
	}
	if in.RequestedAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: requested amount must be positive", apperr.ErrValidation)
	}
	if in.TermMonths <= 0 {
		return nil, fmt.Errorf("%w: term months must be positive", apperr.ErrValidation)
	}

	roles, err := u.roles.Roles(ctx, actorID)
	if err != nil {
		return nil, err
	}

	var created *appDomain.Application
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		clientID, assignedTo, err := resolveDraftOwnership(ctx, r.Clients, roles, actorID, in)
		if err != nil {
			return err
		}

		app := &appDomain.Application{
			AppID:            id.NewID32(),
			ClientID:         clientID,
			RequestedAmount:  in.RequestedAmount,
			TermMonths:       in.TermMonths,
			Purpose:          in.Purpose,
			Status:           appDomain.StatusDraft,
			AssignedToUserID: assignedTo,
		}
		if err := r.Applications.Create(ctx, app); err != nil {
			return err
		}
		if err := r.Applications.AppendHistory(ctx, &appDomain.StatusHistory{
			AppID:     app.AppID,
			ToStatus:  string(appDomain.StatusDraft),
			ChangedBy: actorID,
		}); err != nil {
			return err
		}
		created = app
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.audit.Append(ctx, "loan_applications", created.AppID, "CreateDraftApplication", actorID, map[string]any{
		"clientId":        created.ClientID,
		"requestedAmount": created.RequestedAmount.String(),
	})
	return created, nil
}

// resolveDraftOwnership applies the role-based clientId resolution rules for
// draft creation.
func resolveDraftOwnership(ctx context.Context, clients clientDomain.Repository, roles []string, actorID string, in CreateDraftInput) (clientID, assignedTo string, err error) {
	switch {
	case guard.IsAssignedWorker(roles):
		if in.AssignedToUserID == "" || in.AssignedToUserID != actorID {
			return "", "", fmt.Errorf("%w: intern/originator can only create applications assigned to themselves", apperr.ErrForbidden)
		}
		if in.ClientID == "" {
			return "", "", fmt.Errorf("%w: client_id is required", apperr.ErrValidation)
		}
		return in.ClientID, in.AssignedToUserID, nil

	case guard.IsClient(roles):
		resolved, err := resolveSelfServiceClient(ctx, clients, actorID, in)
		if err != nil {
			return "", "", err
		}
		return resolved, in.AssignedToUserID, nil

	case guard.IsStaff(roles):
		if in.ClientID == "" {
			return "", "", fmt.Errorf("%w: client_id is required for staff-created applications", apperr.ErrValidation)
		}
		return in.ClientID, in.AssignedToUserID, nil

	default:
		return "", "", fmt.Errorf("%w: role not allowed to create applications", apperr.ErrForbidden)
	}
}

// resolveSelfServiceClient reuses an owned client profile or creates one from
// the supplied business fields.
func resolveSelfServiceClient(ctx context.Context, clients clientDomain.Repository, actorID string, in CreateDraftInput) (string, error) {
	if in.ClientID != "" {
		owns, err := clients.Owns(ctx, actorID, in.ClientID)
		if err != nil {
			return "", err
		}
		if owns {
			return in.ClientID, nil
		}
	}

	existing, err := clients.FirstOwnedBy(ctx, actorID)
	switch {
	case err == nil:
		return existing.ClientID, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return "", err
	}

	if strings.TrimSpace(in.BusinessName) == "" {
		return "", fmt.Errorf("%w: could not resolve client profile, provide business info", apperr.ErrValidation)
	}
	c := &clientDomain.Client{
		ClientID:       id.NewID32(),
		UserID:         actorID,
		BusinessName:   in.BusinessName,
		RegistrationNo: in.RegistrationNo,
		Address:        in.Address,
	}
	if err := clients.Create(ctx, c); err != nil {
		return "", err
	}
	return c.ClientID, nil
}

func (u *Usecase) UpdateDraft(ctx context.Context, actorID, appID string, in UpdateDraftInput) (*appDomain.Application, error) {
	roles, err := u.roles.Roles(ctx, actorID)
	if err != nil {
		return nil, err
	}

	var updated *appDomain.Application
	reassignOnly := false
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		proj, err := loadProjection(ctx, r.Applications, appID)
		if err != nil {
			return err
		}
		if !guard.CanAccess(roles, actorID, ownership(proj)) {
			return fmt.Errorf("%w: cannot access this application", apperr.ErrForbidden)
		}

		app, err := r.Applications.GetByAppID(ctx, appID)
		if err != nil {
			return translateNotFound(err)
		}

		if app.Status != appDomain.StatusDraft {
			// Once submitted only staff may reassign; all other fields are
			// immutable.
			if !guard.IsStaff(roles) {
				return fmt.Errorf("%w: only staff can reassign non-draft applications", apperr.ErrForbidden)
			}
			app.AssignedToUserID = in.AssignedToUserID
			reassignOnly = true
		} else {
			if strings.TrimSpace(in.Purpose) == "" {
				return fmt.Errorf("%w: purpose is required", apperr.ErrValidation)
			}
			if in.RequestedAmount.LessThanOrEqual(decimal.Zero) {
				return fmt.Errorf("%w: requested amount must be positive", apperr.ErrValidation)
			}
			if in.TermMonths <= 0 {
				return fmt.Errorf("%w: term months must be positive", apperr.ErrValidation)
			}
			app.RequestedAmount = in.RequestedAmount
			app.TermMonths = in.TermMonths
			app.Purpose = in.Purpose
			app.AssignedToUserID = in.AssignedToUserID
		}

		if err := r.Applications.Save(ctx, app); err != nil {
			return err
		}
		updated = app
		return nil
	})
	if err != nil {
		return nil, err
	}

	action := "UpdateDraftApplication"
	if reassignOnly {
		action = "ReassignApplication"
	}
	u.audit.Append(ctx, "loan_applications", appID, action, actorID, map[string]any{
		"assignedToUserId": updated.AssignedToUserID,
	})
	return updated, nil
}

// Submit moves a Draft application to Submitted. It shares the generic
// transition path, so a repeated submit is an idempotent no-op.
func (u *Usecase) Submit(ctx context.Context, actorID, appID, note string) (*appDomain.Application, error) {
	return u.ChangeStatus(ctx, actorID, appID, appDomain.StatusSubmitted, note)
}

func (u *Usecase) ChangeStatus(ctx context.Context, actorID, appID string, to appDomain.Status, note string) (*appDomain.Application, error) {
	roles, err := u.roles.Roles(ctx, actorID)
	if err != nil {
		return nil, err
	}

	var (
		result  *appDomain.Application
		from    appDomain.Status
		targets []string
		noop    bool
	)
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		proj, err := loadProjection(ctx, r.Applications, appID)
		if err != nil {
			return err
		}
		if !guard.CanAccess(roles, actorID, ownership(proj)) {
			return fmt.Errorf("%w: cannot access this application", apperr.ErrForbidden)
		}
		if err := guard.CanMutateStatus(roles, proj.Status, to); err != nil {
			return err
		}

		app, err := r.Applications.GetByAppID(ctx, appID)
		if err != nil {
			return translateNotFound(err)
		}
		from = app.Status

		if from == to {
			// Idempotent self-transition: no status write, no history row.
			noop = true
			result = app
			return nil
		}

		app.Status = to
		if to == appDomain.StatusSubmitted && app.SubmittedAt == nil {
			now := time.Now().UTC()
			app.SubmittedAt = &now
		}
		if err := r.Applications.Save(ctx, app); err != nil {
			return err
		}

		if to == appDomain.StatusInfoRequested {
			if err := createInfoRequestedFollowUp(ctx, r, app, proj, actorID, note); err != nil {
				return err
			}
		}

		if err := r.Applications.AppendHistory(ctx, &appDomain.StatusHistory{
			AppID:      appID,
			FromStatus: string(from),
			ToStatus:   string(to),
			ChangedBy:  actorID,
			Note:       note,
		}); err != nil {
			return err
		}

		if to == appDomain.StatusApproved {
			if err := provisionLoan(ctx, r.Loans, app); err != nil {
				return err
			}
		}

		targets = notificationTargets(proj, actorID)
		result = app
		return nil
	})
	if err != nil {
		return nil, err
	}
	if noop {
		return result, nil
	}

	u.audit.Append(ctx, "loan_applications", appID, "ChangeApplicationStatus", actorID, map[string]any{
		"fromStatus": string(from),
		"toStatus":   string(to),
		"note":       note,
	})
	u.fanOutStatusChanged(ctx, appID, to, note, targets)
	return result, nil
}

// createInfoRequestedFollowUp opens a follow-up task due in 7 days and a
// note attributed to the acting staff member. Deliberately not idempotent:
// each InfoRequested transition creates a fresh pair.
func createInfoRequestedFollowUp(ctx context.Context, r uow.Repos, app *appDomain.Application, proj *appDomain.SecurityProjection, actorID, note string) error {
	title := "Info requested from applicant"
	if note != "" {
		title = title + ": " + note
	}
	due := time.Now().UTC().AddDate(0, 0, infoTaskDueDays)
	if err := r.Tasks.Create(ctx, &taskDomain.Task{
		TaskID:     id.NewID32(),
		AppID:      app.AppID,
		Title:      title,
		Status:     taskDomain.StatusOpen,
		AssignedTo: proj.ClientOwnerUserID,
		DueDate:    &due,
	}); err != nil {
		return err
	}

	body := "Additional information has been requested. Please review tasks and provide requested documents/details."
	if note != "" {
		body = body + " Note: " + note
	}
	return r.Applications.CreateNote(ctx, &appDomain.Note{
		NoteID:    id.NewID32(),
		AppID:     app.AppID,
		Body:      body,
		CreatedBy: actorID,
	})
}

// provisionLoan creates the application's loan exactly once. The unique
// index on loans.app_id closes the race between two concurrent approvals: a
// losing insert surfaces as a duplicate key and is treated as success.
func provisionLoan(ctx context.Context, loans loanDomain.Repository, app *appDomain.Application) error {
	_, err := loans.GetByAppID(ctx, app.AppID)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}

	err = loans.Create(ctx, &loanDomain.Loan{
		LoanID:               id.NewID32(),
		AppID:                app.AppID,
		PrincipalAmount:      app.RequestedAmount,
		OutstandingPrincipal: app.RequestedAmount,
		InterestRate:         decimal.Zero, // supplied at disbursement configuration time
		TermMonths:           app.TermMonths,
		Status:               loanDomain.StatusPendingDisbursement,
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

func (u *Usecase) Get(ctx context.Context, actorID, appID string) (*appDomain.Application, error) {
	if _, err := u.authorizeRead(ctx, actorID, appID); err != nil {
		return nil, err
	}
	app, err := u.apps.GetByAppID(ctx, appID)
	if err != nil {
		return nil, translateNotFound(err)
	}
	return app, nil
}

func (u *Usecase) List(ctx context.Context, actorID string) ([]appDomain.Application, error) {
	roles, err := u.roles.Roles(ctx, actorID)
	if err != nil {
		return nil, err
	}
	switch {
	case guard.IsStaff(roles):
		return u.apps.ListAll(ctx)
	case guard.IsAssignedWorker(roles):
		return u.apps.ListByAssignee(ctx, actorID)
	case guard.IsClient(roles):
		return u.apps.ListByClientOwner(ctx, actorID)
	}
	return []appDomain.Application{}, nil
}

func (u *Usecase) History(ctx context.Context, actorID, appID string) ([]appDomain.StatusHistory, error) {
	if _, err := u.authorizeRead(ctx, actorID, appID); err != nil {
		return nil, err
	}
	return u.apps.ListHistory(ctx, appID)
}

func (u *Usecase) ListNotes(ctx context.Context, actorID, appID string) ([]appDomain.Note, error) {
	if _, err := u.authorizeRead(ctx, actorID, appID); err != nil {
		return nil, err
	}
	return u.apps.ListNotes(ctx, appID)
}

func (u *Usecase) PresignUpload(ctx context.Context, actorID, appID string, in PresignUploadInput) (*PresignUploadResult, error) {
	if strings.TrimSpace(in.DocType) == "" || strings.TrimSpace(in.FileName) == "" {
		return nil, fmt.Errorf("%w: doc_type and file_name are required", apperr.ErrValidation)
	}
	if _, err := u.authorizeRead(ctx, actorID, appID); err != nil {
		return nil, err
	}

	safeName := strings.ReplaceAll(in.FileName, " ", "-")
	path := fmt.Sprintf("applications/%s/%s-%s", appID, id.NewID32(), safeName)
	url, err := u.signer.SignUpload(ctx, documentsBucket, path)
	if err != nil {
		return nil, err
	}
	return &PresignUploadResult{
		Bucket:           documentsBucket,
		StoragePath:      path,
		UploadURL:        url,
		ExpiresInSeconds: presignExpirySecs,
	}, nil
}

func (u *Usecase) ConfirmUpload(ctx context.Context, actorID, appID string, in ConfirmUploadInput) (*appDomain.Document, error) {
	if strings.TrimSpace(in.DocType) == "" || strings.TrimSpace(in.StoragePath) == "" {
		return nil, fmt.Errorf("%w: doc_type and storage_path are required", apperr.ErrValidation)
	}
	if _, err := u.authorizeRead(ctx, actorID, appID); err != nil {
		return nil, err
	}

	status := appDomain.DocumentStatus(in.Status)
	if status == "" {
		status = appDomain.DocumentPending
	}
	doc := &appDomain.Document{
		DocumentID:  id.NewID32(),
		AppID:       appID,
		DocType:     in.DocType,
		StoragePath: in.StoragePath,
		Status:      status,
		UploadedBy:  actorID,
	}
	if err := u.apps.CreateDocument(ctx, doc); err != nil {
		return nil, err
	}
	u.audit.Append(ctx, "loan_documents", doc.DocumentID, "ConfirmDocumentUpload", actorID, map[string]any{
		"docType":     in.DocType,
		"storagePath": in.StoragePath,
	})
	return doc, nil
}

func (u *Usecase) ListDocuments(ctx context.Context, actorID, appID string) ([]appDomain.Document, error) {
	if _, err := u.authorizeRead(ctx, actorID, appID); err != nil {
		return nil, err
	}
	return u.apps.ListDocuments(ctx, appID)
}

// authorizeRead resolves roles and checks access without opening a
// transaction; used by the read-only operations.
func (u *Usecase) authorizeRead(ctx context.Context, actorID, appID string) (*appDomain.SecurityProjection, error) {
	roles, err := u.roles.Roles(ctx, actorID)
	if err != nil {
		return nil, err
	}
	proj, err := loadProjection(ctx, u.apps, appID)
	if err != nil {
		return nil, err
	}
	if !guard.CanAccess(roles, actorID, ownership(proj)) {
		return nil, fmt.Errorf("%w: cannot access this application", apperr.ErrForbidden)
	}
	return proj, nil
}

func (u *Usecase) fanOutStatusChanged(ctx context.Context, appID string, to appDomain.Status, note string, targets []string) {
	for _, target := range targets {
		n := &notification.Notification{
			NotificationID: id.NewID32(),
			UserID:         target,
			Channel:        "InApp",
			Title:          "Application status updated",
			Message:        fmt.Sprintf("Application status changed to %s.", to),
			Status:         "Sent",
		}
		if err := n.SetPayload(notification.StatusChangedPayload{AppID: appID, Status: string(to), Note: note}); err != nil {
			continue
		}
		u.notify.Enqueue(ctx, n)
	}
}

// notificationTargets is {client owner, assigned worker} minus the actor,
// deduplicated.
func notificationTargets(proj *appDomain.SecurityProjection, actorID string) []string {
	targets := make([]string, 0, 2)
	for _, t := range []string{proj.ClientOwnerUserID, proj.AssignedToUserID} {
		if t == "" || t == actorID {
			continue
		}
		seen := false
		for _, existing := range targets {
			if existing == t {
				seen = true
				break
			}
		}
		if !seen {
			targets = append(targets, t)
		}
	}
	return targets
}

func ownership(proj *appDomain.SecurityProjection) guard.Projection {
	return guard.Projection{
		AssignedToUserID:  proj.AssignedToUserID,
		ClientOwnerUserID: proj.ClientOwnerUserID,
	}
}

func loadProjection(ctx context.Context, apps appDomain.Repository, appID string) (*appDomain.SecurityProjection, error) {
	proj, err := apps.SecurityProjection(ctx, appID)
	if err != nil {
		return nil, translateNotFound(err)
	}
	return proj, nil
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: application", apperr.ErrNotFound)
	}
	return err
}
