package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"aavm-dashboard/models"
)

// AuthClient exchanges OAuth codes against the hosted auth service. The
// login flow itself lives with the identity provider; this client only
// resolves a code to the signed-in identity.
type AuthClient struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

func NewAuthClient(baseURL, serviceKey string) *AuthClient {
	return &AuthClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Identity is the subset of the provider's session payload this system
// cares about.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type exchangeResponse struct {
	User Identity `json:"user"`
}

// ExchangeCode trades an authorization code for the provider identity.
func (c *AuthClient) ExchangeCode(ctx context.Context, code string) (*Identity, error) {
	if c.baseURL == "" || c.serviceKey == "" {
		return nil, models.ConfigurationError{Missing: "auth service URL or key"}
	}

	endpoint := c.baseURL + "/auth/v1/token?grant_type=authorization_code"
	payload := fmt.Sprintf(`{"auth_code":%q}`, code)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, models.UpstreamError{
			Service:    "auth",
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(raw)),
		}
	}

	var parsed exchangeResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if parsed.User.ID == "" {
		return nil, models.UpstreamError{Service: "auth", StatusCode: resp.StatusCode, Message: "no user in session payload"}
	}
	return &parsed.User, nil
}
