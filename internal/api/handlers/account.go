package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tanguy-kabore/cjdropshipping-api/internal/cj"
)

// AccountHandler proxies CJ account endpoints.
type AccountHandler struct {
	api cj.API
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(api cj.API) *AccountHandler {
	return &AccountHandler{api: api}
}

// GetBalance returns the CJ account balance.
func (h *AccountHandler) GetBalance(
	ctx context.Context,
	_ *struct{},
) (*VendorOutput, error) {
	env, err := h.api.Balance(ctx)
	if err != nil {
		return nil, vendorError(err)
	}
	return vendorOutput(env), nil
}

// GetSettings returns the CJ account settings, including API quota limits.
func (h *AccountHandler) GetSettings(
	ctx context.Context,
	_ *struct{},
) (*VendorOutput, error) {
	env, err := h.api.Settings(ctx)
	if err != nil {
		return nil, vendorError(err)
	}
	return vendorOutput(env), nil
}

// RegisterAccountRoutes registers account endpoints with the Huma API.
func RegisterAccountRoutes(api huma.API, h *AccountHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-balance",
		Method:      http.MethodGet,
		Path:        "/api/v1/account/balance",
		Summary:     "Get account balance",
		Tags:        []string{"account"},
	}, h.GetBalance)

	huma.Register(api, huma.Operation{
		OperationID: "get-settings",
		Method:      http.MethodGet,
		Path:        "/api/v1/account/settings",
		Summary:     "Get account settings",
		Tags:        []string{"account"},
	}, h.GetSettings)
}
