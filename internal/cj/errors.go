package cj

import "fmt"

// AuthErrorKind classifies failures of the vendor auth endpoints.
type AuthErrorKind string

const (
	// AuthInvalidCredentials means the vendor rejected the credentials or
	// refresh token. Not retryable without new input.
	AuthInvalidCredentials AuthErrorKind = "invalid_credentials"

	// AuthNetworkFailure is a transport-level failure reaching the vendor
	// auth endpoints. Retryable by the caller after backoff.
	AuthNetworkFailure AuthErrorKind = "network_failure"

	// AuthUnexpectedResponse means the vendor response was malformed or
	// missing required fields.
	AuthUnexpectedResponse AuthErrorKind = "unexpected_response"
)

// AuthError is returned by Authenticator operations and propagated through
// the Guard unchanged. The endpoint layer surfaces these as
// authentication/configuration failures, distinct from normal vendor
// business errors.
type AuthError struct {
	Kind    AuthErrorKind
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cj auth %s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("cj auth %s: %s", e.Kind, e.Message)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// APIError is a business-level failure: the vendor returned HTTP 200 with
// the envelope's success flag false. A normal per-request outcome (out of
// stock, insufficient balance), never retried automatically.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cj api error (code %d): %s", e.Code, e.Message)
}

// HTTPError is a non-200 HTTP status from a CJ business endpoint.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("cj http error (status %d): %s", e.Status, e.Body)
}
