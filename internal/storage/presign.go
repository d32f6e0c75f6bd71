// Package storage signs direct-to-object-store uploads via the storage
// service's signing endpoint. The API never proxies file bytes.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	signExpirySecs = 7200
	requestTimeout = 10 * time.Second
)

// Client talks to a supabase-compatible storage API.
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

type signUploadReq struct {
	ExpiresIn int `json:"expiresIn"`
}

type signUploadResp struct {
	URL string `json:"url"`
}

// SignUpload returns a presigned URL the caller can PUT the object to.
func (c *Client) SignUpload(ctx context.Context, bucket, path string) (string, error) {
	endpoint := fmt.Sprintf("%s/storage/v1/object/upload/sign/%s/%s", c.baseURL, bucket, path)

	body, err := json.Marshal(signUploadReq{ExpiresIn: signExpirySecs})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("storage: sign upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("storage: sign upload: unexpected status %d", resp.StatusCode)
	}

	var out signUploadResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("storage: decode sign response: %w", err)
	}
	if out.URL == "" {
		return "", fmt.Errorf("storage: sign response missing url")
	}

	// the service returns a path relative to the storage API root
	if strings.HasPrefix(out.URL, "/") {
		return c.baseURL + "/storage/v1" + out.URL, nil
	}
	return out.URL, nil
}
