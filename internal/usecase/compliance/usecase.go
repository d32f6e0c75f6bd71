// Package compliance manages the staff-maintained document checklist and
// evaluates applications against it.
package compliance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"lms-backend/internal/domain/apperr"
	appDomain "lms-backend/internal/domain/application"
	"lms-backend/internal/domain/audit"
	"lms-backend/internal/guard"
	"lms-backend/pkg/id"
)

type Usecase struct {
	apps  appDomain.Repository
	roles guard.RoleResolver
	audit audit.Sink
}

func NewUsecase(apps appDomain.Repository, roles guard.RoleResolver, auditSink audit.Sink) *Usecase {
	return &Usecase{apps: apps, roles: roles, audit: auditSink}
}

func (u *Usecase) ListRequirements(ctx context.Context, actorID string) ([]appDomain.DocumentRequirement, error) {
	if err := u.requireStaff(ctx, actorID); err != nil {
		return nil, err
	}
	return u.apps.ListRequirements(ctx)
}

func (u *Usecase) CreateRequirement(ctx context.Context, actorID string, in CreateRequirementInput) (*appDomain.DocumentRequirement, error) {
	if err := u.requireStaff(ctx, actorID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.DocType) == "" {
		return nil, fmt.Errorf("%w: doc_type is required", apperr.ErrValidation)
	}
	status, err := appDomain.ParseStatus(in.RequiredAtStatus)
	if err != nil {
		return nil, err
	}

	dr := &appDomain.DocumentRequirement{
		RequirementID:    id.NewID32(),
		RequiredAtStatus: string(status),
		DocType:          in.DocType,
		IsRequired:       in.IsRequired,
	}
	if err := u.apps.CreateRequirement(ctx, dr); err != nil {
		return nil, err
	}
	u.audit.Append(ctx, "document_requirements", dr.RequirementID, "CreateDocumentRequirement", actorID, map[string]any{
		"requiredAtStatus": dr.RequiredAtStatus,
		"docType":          dr.DocType,
		"isRequired":       dr.IsRequired,
	})
	return dr, nil
}

// VerifyDocument records a staff verification verdict on an uploaded
// document. Only Verified and Rejected are valid verdicts.
func (u *Usecase) VerifyDocument(ctx context.Context, actorID, appID, documentID string, in VerifyDocumentInput) (*appDomain.Document, error) {
	if err := u.requireStaff(ctx, actorID); err != nil {
		return nil, err
	}
	verdict := appDomain.DocumentStatus(in.Status)
	if verdict != appDomain.DocumentVerified && verdict != appDomain.DocumentRejected {
		return nil, fmt.Errorf("%w: verification status must be Verified or Rejected", apperr.ErrValidation)
	}

	doc, err := u.apps.GetDocument(ctx, appID, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: document", apperr.ErrNotFound)
		}
		return nil, err
	}

	now := time.Now().UTC()
	doc.Status = verdict
	doc.VerificationNote = in.Note
	doc.VerifiedBy = actorID
	doc.VerifiedAt = &now
	if err := u.apps.SaveDocument(ctx, doc); err != nil {
		return nil, err
	}

	u.audit.Append(ctx, "loan_documents", documentID, "VerifyDocument", actorID, map[string]any{
		"status": string(verdict),
		"note":   in.Note,
	})
	return doc, nil
}

// Evaluate reports how an application's documents measure up against the
// checklist. A requirement is satisfied by any non-rejected document of the
// matching type; the application is compliant when every required row is
// satisfied. Access follows the application's ownership rules, so clients
// can check their own standing.
func (u *Usecase) Evaluate(ctx context.Context, actorID, appID string) (*Report, error) {
	roles, err := u.roles.Roles(ctx, actorID)
	if err != nil {
		return nil, err
	}
	proj, err := u.apps.SecurityProjection(ctx, appID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: application", apperr.ErrNotFound)
		}
		return nil, err
	}
	if !guard.CanAccess(roles, actorID, guard.Projection{
		AssignedToUserID:  proj.AssignedToUserID,
		ClientOwnerUserID: proj.ClientOwnerUserID,
	}) {
		return nil, fmt.Errorf("%w: cannot access this application", apperr.ErrForbidden)
	}

	reqs, err := u.apps.ListRequirements(ctx)
	if err != nil {
		return nil, err
	}
	docs, err := u.apps.ListDocuments(ctx, appID)
	if err != nil {
		return nil, err
	}

	report := &Report{AppID: appID, Compliant: true, Items: make([]ReportItem, 0, len(reqs))}
	for _, req := range reqs {
		item := ReportItem{
			RequirementID:    req.RequirementID,
			RequiredAtStatus: req.RequiredAtStatus,
			DocType:          req.DocType,
			IsRequired:       req.IsRequired,
		}
		for _, d := range docs {
			if d.DocType != req.DocType || d.Status == appDomain.DocumentRejected {
				continue
			}
			item.Satisfied = true
			item.DocumentID = d.DocumentID
			item.DocumentStatus = string(d.Status)
			break
		}
		if req.IsRequired && !item.Satisfied {
			report.Compliant = false
		}
		report.Items = append(report.Items, item)
	}
	return report, nil
}

func (u *Usecase) requireStaff(ctx context.Context, actorID string) error {
	roles, err := u.roles.Roles(ctx, actorID)
	if err != nil {
		return err
	}
	if !guard.IsStaff(roles) {
		return fmt.Errorf("%w: requires LoanOfficer/Admin", apperr.ErrForbidden)
	}
	return nil
}
