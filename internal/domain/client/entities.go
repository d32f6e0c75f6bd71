package client

import "time"

// Client is a business profile, optionally linked to exactly one user
// identity (the owner). UserID is empty for staff-managed profiles.
type Client struct {
	ID             uint64    `gorm:"primaryKey;column:id" json:"-"`
	ClientID       string    `gorm:"size:32;uniqueIndex:ux_clients_client_id" json:"client_id"`
	UserID         string    `gorm:"size:32;index:idx_clients_user" json:"user_id,omitempty"`
	BusinessName   string    `gorm:"size:255" json:"business_name"`
	RegistrationNo string    `gorm:"size:64" json:"registration_no,omitempty"`
	Address        string    `gorm:"type:text" json:"address,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Client) TableName() string { return "clients" }
