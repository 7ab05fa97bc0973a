package handlers

import (
	"encoding/json"
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tanguy-kabore/cjdropshipping-api/internal/cj"
)

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

// StatusResponse is a generic status response body.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VendorResponse is the pass-through body for proxied CJ calls. Data is the
// vendor payload, forwarded unparsed.
type VendorResponse struct {
	Code    int             `json:"code"    example:"200"`
	Message string          `json:"message" example:"Success"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// VendorOutput wraps a VendorResponse for Huma handlers.
type VendorOutput struct {
	Body VendorResponse
}

func vendorOutput(env *cj.Envelope) *VendorOutput {
	return &VendorOutput{Body: VendorResponse{
		Code:    env.Code,
		Message: env.Message,
		Data:    env.Data,
	}}
}

// vendorError maps a CJ client error onto the HTTP boundary. Vendor business
// rejections are normal outcomes and become 400s with the vendor message;
// credential failures are an operator signal and become 401; everything
// transport-shaped becomes 502.
func vendorError(err error) error {
	var apiErr *cj.APIError
	if errors.As(err, &apiErr) {
		return huma.Error400BadRequest(apiErr.Message)
	}

	var httpErr *cj.HTTPError
	if errors.As(err, &httpErr) {
		return huma.Error502BadGateway("vendor returned an unexpected status")
	}

	var authErr *cj.AuthError
	if errors.As(err, &authErr) {
		if authErr.Kind == cj.AuthInvalidCredentials {
			return huma.Error401Unauthorized(
				"CJ credentials rejected; check CJ_EMAIL and CJ_API_KEY",
			)
		}
		return huma.Error502BadGateway("CJ authentication unreachable")
	}

	if errors.Is(err, cj.ErrDailyLimitReached) {
		return huma.Error429TooManyRequests("daily CJ API quota exhausted")
	}

	if errors.Is(err, cj.ErrMissingIdentifier) {
		return huma.Error422UnprocessableEntity(err.Error())
	}

	return huma.Error502BadGateway("vendor request failed")
}
