package application

import (
	"github.com/shopspring/decimal"
)

type CreateDraftInput struct {
	ClientID         string          `json:"client_id"`
	AssignedToUserID string          `json:"assigned_to_user_id"`
	RequestedAmount  decimal.Decimal `json:"requested_amount"`
	TermMonths       int             `json:"term_months"`
	Purpose          string          `json:"purpose"`

	// Business fields used when a Client actor has no profile yet.
	BusinessName   string `json:"business_name"`
	RegistrationNo string `json:"registration_no"`
	Address        string `json:"address"`
}

type UpdateDraftInput struct {
	RequestedAmount  decimal.Decimal `json:"requested_amount"`
	TermMonths       int             `json:"term_months"`
	Purpose          string          `json:"purpose"`
	AssignedToUserID string          `json:"assigned_to_user_id"`
}

type PresignUploadInput struct {
	DocType  string `json:"doc_type"`
	FileName string `json:"file_name"`
}

type PresignUploadResult struct {
	Bucket           string `json:"bucket"`
	StoragePath      string `json:"storage_path"`
	UploadURL        string `json:"upload_url"`
	ExpiresInSeconds int    `json:"expires_in_seconds"`
}

type ConfirmUploadInput struct {
	DocType     string `json:"doc_type"`
	StoragePath string `json:"storage_path"`
	Status      string `json:"status"`
}
