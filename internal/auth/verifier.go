package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/wandaazhar007/backend-kansha-2026/internal/config"
)

// ErrInvalidToken is returned when the identity provider rejects the
// credential as missing, malformed, expired or of unknown issuer.
var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is the authenticated caller as reported by the identity provider.
type Identity struct {
	SubjectID string `json:"subjectId"`
	Email     string `json:"email,omitempty"`
}

// Verifier checks a raw bearer credential with the identity provider.
type Verifier interface {
	VerifyToken(ctx context.Context, token string) (*Identity, error)
}

// ProviderClient verifies tokens against the identity provider's HTTP
// verification endpoint. A single client is constructed at startup and
// reused for every request; each verification is one synchronous call
// with no caching and no retry.
type ProviderClient struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// NewProviderClient creates a verifier client for the configured provider.
func NewProviderClient(conf config.Auth) *ProviderClient {
	return &ProviderClient{
		baseURL:    strings.TrimRight(conf.ProviderURL, "/"),
		serviceKey: conf.ServiceKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type verifyRequest struct {
	Token string `json:"token"`
}

// VerifyToken asks the provider to verify the raw credential and returns
// the caller's identity claims. Provider rejections map to
// ErrInvalidToken; transport and provider outages surface as wrapped
// errors for the caller to report generically.
func (p *ProviderClient) VerifyToken(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	body, err := json.Marshal(verifyRequest{Token: token})
	if err != nil {
		return nil, fmt.Errorf("failed to encode verify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/tokens/verify", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.serviceKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.serviceKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusBadRequest:
		return nil, ErrInvalidToken
	default:
		return nil, fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	var identity Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}
	if identity.SubjectID == "" {
		return nil, fmt.Errorf("identity provider returned no subject")
	}
	return &identity, nil
}
