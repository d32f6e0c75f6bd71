package application

import (
	"time"

	"github.com/shopspring/decimal"
)

type Application struct {
	ID               uint64          `gorm:"primaryKey;column:id" json:"-"`
	AppID            string          `gorm:"size:32;uniqueIndex:ux_applications_app_id" json:"application_id"`
	ClientID         string          `gorm:"size:32;index:idx_applications_client" json:"client_id"`
	RequestedAmount  decimal.Decimal `gorm:"type:decimal(18,2)" json:"requested_amount"`
	TermMonths       int             `gorm:"column:term_months" json:"term_months"`
	Purpose          string          `gorm:"type:text" json:"purpose"`
	Status           Status          `gorm:"size:24;index:idx_applications_status" json:"status"`
	AssignedToUserID string          `gorm:"size:32;index:idx_applications_assignee" json:"assigned_to_user_id,omitempty"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	SubmittedAt      *time.Time      `json:"submitted_at,omitempty"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"-"`
}

func (Application) TableName() string { return "loan_applications" }

// StatusHistory is append-only; rows are never updated or deleted.
type StatusHistory struct {
	ID         uint64    `gorm:"primaryKey;column:id" json:"-"`
	AppID      string    `gorm:"size:32;index:idx_history_app" json:"application_id"`
	FromStatus string    `gorm:"size:24" json:"from_status,omitempty"` // empty on the creation entry
	ToStatus   string    `gorm:"size:24" json:"to_status"`
	ChangedBy  string    `gorm:"size:32" json:"changed_by"`
	ChangedAt  time.Time `gorm:"autoCreateTime" json:"changed_at"`
	Note       string    `gorm:"type:text" json:"note,omitempty"`
}

func (StatusHistory) TableName() string { return "application_status_history" }

type Note struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	NoteID    string    `gorm:"size:32;uniqueIndex:ux_notes_note_id" json:"note_id"`
	AppID     string    `gorm:"size:32;index:idx_notes_app" json:"application_id"`
	Body      string    `gorm:"type:text" json:"body"`
	CreatedBy string    `gorm:"size:32" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Note) TableName() string { return "notes" }

type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "Pending"
	DocumentVerified DocumentStatus = "Verified"
	DocumentRejected DocumentStatus = "Rejected"
)

type Document struct {
	ID               uint64         `gorm:"primaryKey;column:id" json:"-"`
	DocumentID       string         `gorm:"size:32;uniqueIndex:ux_documents_document_id" json:"document_id"`
	AppID            string         `gorm:"size:32;index:idx_documents_app" json:"application_id"`
	DocType          string         `gorm:"size:64" json:"doc_type"`
	StoragePath      string         `gorm:"type:text" json:"storage_path"`
	Status           DocumentStatus `gorm:"size:16" json:"status"`
	VerificationNote string         `gorm:"type:text" json:"verification_note,omitempty"`
	VerifiedBy       string         `gorm:"size:32" json:"verified_by,omitempty"`
	VerifiedAt       *time.Time     `json:"verified_at,omitempty"`
	UploadedBy       string         `gorm:"size:32" json:"uploaded_by"`
	UploadedAt       time.Time      `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (Document) TableName() string { return "loan_documents" }

// DocumentRequirement is a staff-managed checklist row: applications passing
// through RequiredAtStatus are expected to carry a document of DocType.
type DocumentRequirement struct {
	ID               uint64    `gorm:"primaryKey;column:id" json:"-"`
	RequirementID    string    `gorm:"size:32;uniqueIndex:ux_requirements_requirement_id" json:"requirement_id"`
	RequiredAtStatus string    `gorm:"size:24;index:idx_requirements_status" json:"required_at_status"`
	DocType          string    `gorm:"size:64" json:"doc_type"`
	IsRequired       bool      `json:"is_required"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (DocumentRequirement) TableName() string { return "document_requirements" }

// SecurityProjection is the minimal read used for authorization decisions.
// Ownership fields are empty when unset.
type SecurityProjection struct {
	AppID             string
	Status            Status
	AssignedToUserID  string
	ClientOwnerUserID string
}
