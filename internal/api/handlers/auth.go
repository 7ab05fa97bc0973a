package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tanguy-kabore/cjdropshipping-api/internal/tokenstore"
)

// tokenLoader is the read side of tokenstore.Store.
type tokenLoader interface {
	Load(ctx context.Context) (*tokenstore.Record, error)
}

// reauther forces a full credential exchange.
type reauther interface {
	Authenticate(ctx context.Context) (*tokenstore.Record, error)
}

// AuthHandler exposes the token lifecycle state and a forced re-login.
type AuthHandler struct {
	store  tokenLoader
	source reauther
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(store tokenLoader, source reauther) *AuthHandler {
	return &AuthHandler{store: store, source: source}
}

// AuthStatusOutput is the response body for the auth status endpoint.
type AuthStatusOutput struct {
	Body struct {
		HasToken        bool      `json:"has_token"         doc:"Whether a token record is persisted"`
		Valid           bool      `json:"valid"             doc:"Whether the stored access token is currently unexpired"`
		Expiry          time.Time `json:"expiry,omitempty"  doc:"Access token expiry timestamp (UTC)"`
		HasRefreshToken bool      `json:"has_refresh_token" doc:"Whether a refresh token is available"`
	}
}

// AuthStatus reports the persisted token record's state without contacting
// the vendor.
func (h *AuthHandler) AuthStatus(
	ctx context.Context,
	_ *struct{},
) (*AuthStatusOutput, error) {
	resp := &AuthStatusOutput{}

	rec, err := h.store.Load(ctx)
	if err != nil || rec == nil {
		return resp, nil
	}

	resp.Body.HasToken = true
	resp.Body.Valid = !rec.Expired(time.Now())
	resp.Body.Expiry = rec.Expiry
	resp.Body.HasRefreshToken = rec.RefreshToken != ""

	return resp, nil
}

// AuthRefreshOutput is the response body for a forced re-authentication.
type AuthRefreshOutput struct {
	Body struct {
		Status string    `json:"status" example:"authenticated"`
		Expiry time.Time `json:"expiry" doc:"New access token expiry (UTC)"`
	}
}

// AuthRefresh discards the current token state and performs a full
// credential exchange. The new record is persisted before returning.
func (h *AuthHandler) AuthRefresh(
	ctx context.Context,
	_ *struct{},
) (*AuthRefreshOutput, error) {
	rec, err := h.source.Authenticate(ctx)
	if err != nil {
		return nil, vendorError(err)
	}

	resp := &AuthRefreshOutput{}
	resp.Body.Status = "authenticated"
	resp.Body.Expiry = rec.Expiry

	return resp, nil
}

// RegisterAuthRoutes registers the auth endpoints with the Huma API.
func RegisterAuthRoutes(api huma.API, h *AuthHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-auth-status",
		Method:      http.MethodGet,
		Path:        "/api/v1/auth/status",
		Summary:     "Get token status",
		Description: "Reports whether a CJ token is persisted and still valid, without contacting the vendor.",
		Tags:        []string{"auth"},
	}, h.AuthStatus)

	huma.Register(api, huma.Operation{
		OperationID: "force-auth-refresh",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/refresh",
		Summary:     "Force re-authentication",
		Description: "Performs a full credential exchange against CJ and persists the new token record.",
		Tags:        []string{"auth"},
		Errors:      []int{http.StatusUnauthorized, http.StatusBadGateway},
	}, h.AuthRefresh)
}
