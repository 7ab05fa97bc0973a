package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanguy-kabore/cjdropshipping-api/internal/api/handlers"
	"github.com/tanguy-kabore/cjdropshipping-api/internal/cj"
)

func newAccountAPI(t *testing.T, stub *apiStub) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	handlers.RegisterAccountRoutes(api, handlers.NewAccountHandler(stub))
	return api
}

func TestGetBalance(t *testing.T) {
	t.Parallel()

	stub := &apiStub{
		balance: func(_ context.Context) (*cj.Envelope, error) {
			return okEnvelope(`{"amount":125.50,"currency":"USD"}`), nil
		},
	}

	api := newAccountAPI(t, stub)

	resp := api.Get("/api/v1/account/balance")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "125.5")
}

func TestGetSettings(t *testing.T) {
	t.Parallel()

	stub := &apiStub{
		settings: func(_ context.Context) (*cj.Envelope, error) {
			return okEnvelope(`{"quotaLimits":[{"quotaType":1,"quotaLimit":1000}]}`), nil
		},
	}

	api := newAccountAPI(t, stub)

	resp := api.Get("/api/v1/account/settings")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "quotaLimits")
}

func TestGetBalance_CredentialFailure(t *testing.T) {
	t.Parallel()

	stub := &apiStub{
		balance: func(_ context.Context) (*cj.Envelope, error) {
			return nil, &cj.AuthError{
				Kind:    cj.AuthInvalidCredentials,
				Message: "rejected",
			}
		},
	}

	api := newAccountAPI(t, stub)

	resp := api.Get("/api/v1/account/balance")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
