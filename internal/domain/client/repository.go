package client

import "context"

type Repository interface {
	Create(ctx context.Context, c *Client) error
	Save(ctx context.Context, c *Client) error
	GetByClientID(ctx context.Context, clientID string) (*Client, error)
	ListAll(ctx context.Context) ([]Client, error)

	// FirstOwnedBy returns the oldest client profile owned by userID.
	FirstOwnedBy(ctx context.Context, userID string) (*Client, error)

	// Owns reports whether clientID is owned by userID.
	Owns(ctx context.Context, userID, clientID string) (bool, error)
}
