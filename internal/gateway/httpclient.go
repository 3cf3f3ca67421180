package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
)

// HTTPClient talks JSON over HTTP to the sync collaborator.
type HTTPClient struct {
	endpoint string
	token    string
	http     *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient returns a client for the control endpoint. token is the
// long-lived credential from configuration, exchanged for session
// credentials via FetchCredentials.
func NewHTTPClient(endpoint string, token string) *HTTPClient {
	return &HTTPClient{
		endpoint: endpoint,
		token:    token,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, url, token string, in any, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%w: encoding request: %w", common.ErrInternal, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", common.ErrUnauthorized, resp.Status)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: %s", common.ErrUnavailable, resp.Status)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: unexpected status %s", common.ErrInternal, resp.Status)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decoding response: %w", common.ErrInternal, err)
		}
	}
	return nil
}

func (c *HTTPClient) FetchCredentials(ctx context.Context, userID string) (*Credentials, error) {
	in := struct {
		UserID string `json:"user_id"`
	}{UserID: userID}

	var creds Credentials
	if err := c.do(ctx, http.MethodPost, c.endpoint+"/v1/credentials", c.token, &in, &creds); err != nil {
		return nil, err
	}
	if creds.Endpoint == "" {
		creds.Endpoint = c.endpoint
	}
	return &creds, nil
}

func (c *HTTPClient) UploadPendingMutations(ctx context.Context, creds *Credentials, batch *Batch) (*UploadResult, error) {
	var result UploadResult
	if err := c.do(ctx, http.MethodPost, creds.Endpoint+"/v1/mutations", creds.Token, batch, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) Connect(ctx context.Context, creds *Credentials) error {
	return c.do(ctx, http.MethodPost, creds.Endpoint+"/v1/connect", creds.Token, nil, nil)
}

func (c *HTTPClient) Disconnect(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, c.endpoint+"/v1/disconnect", c.token, nil, nil)
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, c.endpoint+"/v1/health", c.token, nil, nil)
}
