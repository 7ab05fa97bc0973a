package cj

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tanguy-kabore/cjdropshipping-api/internal/metrics"
	"github.com/tanguy-kabore/cjdropshipping-api/internal/tokenstore"
)

const (
	defaultBaseURL = "https://developers.cjdropshipping.com/api2.0/v1"

	authPath    = "/authentication/getAccessToken"
	refreshPath = "/authentication/refreshAccessToken"

	codeSuccess = 200
)

// Credentials is the externally supplied account identity. Never persisted
// alongside the token record.
type Credentials struct {
	Email  string
	APIKey string
}

// Authenticator exchanges credentials or a refresh token for a fresh token
// record against the CJ authentication endpoints. On success the new record
// is persisted before it is returned, so a crash immediately afterwards
// does not lose the token. No retries: a single failure is surfaced to the
// caller (the Guard), which owns the fallback policy.
type Authenticator struct {
	creds   Credentials
	baseURL string
	client  *http.Client
	store   tokenstore.Store
}

// AuthOption configures the Authenticator.
type AuthOption func(*Authenticator)

// WithAuthBaseURL overrides the default CJ API base URL.
func WithAuthBaseURL(u string) AuthOption {
	return func(a *Authenticator) {
		a.baseURL = strings.TrimRight(u, "/")
	}
}

// WithAuthHTTPClient overrides the default HTTP client.
func WithAuthHTTPClient(c *http.Client) AuthOption {
	return func(a *Authenticator) {
		a.client = c
	}
}

// NewAuthenticator creates an Authenticator persisting results to store.
func NewAuthenticator(
	creds Credentials,
	store tokenstore.Store,
	opts ...AuthOption,
) *Authenticator {
	a := &Authenticator{
		creds:   creds,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		store:   store,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type tokenResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		AccessToken           string `json:"accessToken"`
		AccessTokenExpiryDate string `json:"accessTokenExpiryDate"`
		RefreshToken          string `json:"refreshToken"`
	} `json:"data"`
}

// Authenticate exchanges the account credentials for a fresh token record.
func (a *Authenticator) Authenticate(ctx context.Context) (*tokenstore.Record, error) {
	rec, err := a.requestToken(ctx, authPath, map[string]string{
		"email":    a.creds.Email,
		"password": a.creds.APIKey,
	})
	if err != nil {
		return nil, err
	}

	metrics.TokenAuthenticationsTotal.Inc()
	return rec, nil
}

// Refresh exchanges a refresh token for a fresh token record. A vendor
// rejection surfaces as AuthError{invalid_credentials}, signalling the
// refresh token is no longer usable and the caller must fall back to
// Authenticate.
func (a *Authenticator) Refresh(
	ctx context.Context,
	refreshToken string,
) (*tokenstore.Record, error) {
	rec, err := a.requestToken(ctx, refreshPath, map[string]string{
		"refreshToken": refreshToken,
	})
	if err != nil {
		return nil, err
	}

	metrics.TokenRefreshesTotal.Inc()
	return rec, nil
}

func (a *Authenticator) requestToken(
	ctx context.Context,
	path string,
	payload map[string]string,
) (*tokenstore.Record, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &AuthError{
			Kind:    AuthUnexpectedResponse,
			Message: "encoding request payload",
			Err:     err,
		}
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		a.baseURL+path,
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, &AuthError{
			Kind:    AuthUnexpectedResponse,
			Message: "creating token request",
			Err:     err,
		}
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &AuthError{
			Kind:    AuthNetworkFailure,
			Message: "reaching CJ auth endpoint",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &AuthError{
			Kind:    AuthNetworkFailure,
			Message: "reading token response",
			Err:     err,
		}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &AuthError{
			Kind: AuthUnexpectedResponse,
			Message: fmt.Sprintf(
				"token request failed (status %d): %s",
				resp.StatusCode,
				string(respBody),
			),
		}
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(respBody, &tokenResp); err != nil {
		return nil, &AuthError{
			Kind:    AuthUnexpectedResponse,
			Message: "parsing token response",
			Err:     err,
		}
	}

	if tokenResp.Code != codeSuccess {
		return nil, &AuthError{
			Kind: AuthInvalidCredentials,
			Message: fmt.Sprintf(
				"CJ rejected the request (code %d): %s",
				tokenResp.Code,
				tokenResp.Message,
			),
		}
	}

	if tokenResp.Data.AccessToken == "" || tokenResp.Data.RefreshToken == "" {
		return nil, &AuthError{
			Kind:    AuthUnexpectedResponse,
			Message: "token response missing accessToken or refreshToken",
		}
	}

	expiry, err := parseExpiry(tokenResp.Data.AccessTokenExpiryDate)
	if err != nil {
		return nil, &AuthError{
			Kind:    AuthUnexpectedResponse,
			Message: "parsing accessTokenExpiryDate",
			Err:     err,
		}
	}

	rec := &tokenstore.Record{
		AccessToken:  tokenResp.Data.AccessToken,
		Expiry:       expiry,
		RefreshToken: tokenResp.Data.RefreshToken,
	}

	if err := a.store.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("persisting token record: %w", err)
	}

	return rec, nil
}

// expiryLayouts covers the timestamp shapes CJ has been observed to emit:
// RFC3339 with Z or offset, and offset-less forms that must be read as UTC.
var expiryLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseExpiry(s string) (time.Time, error) {
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized expiry timestamp %q", s)
}
