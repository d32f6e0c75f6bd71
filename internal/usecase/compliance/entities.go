package compliance

type CreateRequirementInput struct {
	RequiredAtStatus string `json:"required_at_status"`
	DocType          string `json:"doc_type"`
	IsRequired       bool   `json:"is_required"`
}

type VerifyDocumentInput struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// ReportItem pairs one requirement with the document (if any) satisfying it.
type ReportItem struct {
	RequirementID    string `json:"requirement_id"`
	RequiredAtStatus string `json:"required_at_status"`
	DocType          string `json:"doc_type"`
	IsRequired       bool   `json:"is_required"`
	Satisfied        bool   `json:"satisfied"`
	DocumentID       string `json:"document_id,omitempty"`
	DocumentStatus   string `json:"document_status,omitempty"`
}

type Report struct {
	AppID     string       `json:"application_id"`
	Compliant bool         `json:"compliant"`
	Items     []ReportItem `json:"items"`
}
