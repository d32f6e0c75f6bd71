package notification

import (
	"encoding/json"
	"fmt"
	"time"

	"lms-backend/internal/domain/apperr"
)

// Payload is a closed set of event-kind variants. JSON is only an encoding
// at the storage boundary; in-process code passes the typed value.
type Payload interface {
	Kind() string
}

type StatusChangedPayload struct {
	AppID  string `json:"applicationId"`
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

func (StatusChangedPayload) Kind() string { return "ApplicationStatusChanged" }

type ArrearsReminderPayload struct {
	LoanID string `json:"loanId"`
	AppID  string `json:"applicationId"`
}

func (ArrearsReminderPayload) Kind() string { return "ArrearsReminder" }

type TaskReminderPayload struct {
	TaskID string `json:"taskId"`
	AppID  string `json:"applicationId"`
}

func (TaskReminderPayload) Kind() string { return "TaskReminder" }

type StaleApplicationPayload struct {
	AppID  string `json:"applicationId"`
	Status string `json:"status"`
}

func (StaleApplicationPayload) Kind() string { return "StaleApplicationReminder" }

type Notification struct {
	ID             uint64     `gorm:"primaryKey;column:id" json:"-"`
	NotificationID string     `gorm:"size:32;uniqueIndex:ux_notifications_notification_id" json:"notification_id"`
	UserID         string     `gorm:"size:32;index:idx_notifications_user" json:"user_id"`
	Channel        string     `gorm:"size:16" json:"channel"`
	Type           string     `gorm:"size:48;index:idx_notifications_type" json:"type"`
	Title          string     `gorm:"size:255" json:"title"`
	Message        string     `gorm:"type:text" json:"message"`
	Status         string     `gorm:"size:16" json:"status"`
	RawPayload     string     `gorm:"column:payload;type:text" json:"-"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
}

func (Notification) TableName() string { return "notifications" }

// SetPayload stamps Type from the variant and encodes it.
func (n *Notification) SetPayload(p Payload) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	n.Type = p.Kind()
	n.RawPayload = string(raw)
	return nil
}

// Payload decodes RawPayload into the variant matching Type.
func (n *Notification) Payload() (Payload, error) {
	var p Payload
	switch n.Type {
	case (StatusChangedPayload{}).Kind():
		p = &StatusChangedPayload{}
	case (ArrearsReminderPayload{}).Kind():
		p = &ArrearsReminderPayload{}
	case (TaskReminderPayload{}).Kind():
		p = &TaskReminderPayload{}
	case (StaleApplicationPayload{}).Kind():
		p = &StaleApplicationPayload{}
	default:
		return nil, fmt.Errorf("%w: unknown notification type %q", apperr.ErrValidation, n.Type)
	}
	if err := json.Unmarshal([]byte(n.RawPayload), p); err != nil {
		return nil, err
	}
	return p, nil
}
