package onboarding

type CreateAssistedInput struct {
	BusinessName      string `json:"business_name"`
	RegistrationNo    string `json:"registration_no"`
	Address           string `json:"address"`
	ApplicantFullName string `json:"applicant_full_name"`
	ApplicantEmail    string `json:"applicant_email"`
	SendInvite        bool   `json:"send_invite"`
	RedirectTo        string `json:"redirect_to"`
}

type SendInviteInput struct {
	ApplicantEmail    string `json:"applicant_email"`
	ApplicantFullName string `json:"applicant_full_name"`
	RedirectTo        string `json:"redirect_to"`
}

type InviteResult struct {
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	Status     string `json:"status"`
	ActionLink string `json:"action_link,omitempty"`
}
