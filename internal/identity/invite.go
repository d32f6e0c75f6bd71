// Package identity calls the auth service's admin API to invite new users.
// The engine never stores credentials; it only links the returned user id.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const requestTimeout = 10 * time.Second

// Client talks to a supabase-compatible auth admin API.
type Client struct {
	baseURL    string
	serviceKey string
	httpc      *http.Client
}

func NewClient(baseURL, serviceKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpc:      &http.Client{Timeout: requestTimeout},
	}
}

type generateLinkReq struct {
	Type       string         `json:"type"`
	Email      string         `json:"email"`
	Data       map[string]any `json:"data"`
	RedirectTo string         `json:"redirect_to,omitempty"`
}

type generateLinkResp struct {
	User struct {
		ID string `json:"id"`
	} `json:"user"`
	ActionLink string `json:"action_link"`
}

// Invite generates an invite link for email and returns the provisioned
// user id together with the link. The caller delivers the link.
func (c *Client) Invite(ctx context.Context, email, fullName, redirectTo string) (userID, actionLink string, err error) {
	endpoint := c.baseURL + "/auth/v1/admin/generate_link"

	body, err := json.Marshal(generateLinkReq{
		Type:       "invite",
		Email:      email,
		Data:       map[string]any{"full_name": fullName},
		RedirectTo: redirectTo,
	})
	if err != nil {
		return "", "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("identity: generate invite link: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("identity: generate invite link: unexpected status %d", resp.StatusCode)
	}

	var out generateLinkResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", "", fmt.Errorf("identity: decode invite response: %w", err)
	}
	if out.User.ID == "" {
		return "", "", fmt.Errorf("identity: invite response missing user id")
	}
	return out.User.ID, out.ActionLink, nil
}
