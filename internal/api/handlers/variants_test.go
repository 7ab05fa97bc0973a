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

func newVariantsAPI(t *testing.T, stub *apiStub) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	handlers.RegisterVariantRoutes(api, handlers.NewVariantsHandler(stub))
	return api
}

func TestGetVariant(t *testing.T) {
	t.Parallel()

	var gotVid string
	stub := &apiStub{
		variantByID: func(_ context.Context, vid string) (*cj.Envelope, error) {
			gotVid = vid
			return okEnvelope(`{"vid":"v-5","variantSku":"SKU-5"}`), nil
		},
	}

	api := newVariantsAPI(t, stub)

	resp := api.Get("/api/v1/variants/v-5")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "v-5", gotVid)
	assert.Contains(t, resp.Body.String(), "SKU-5")
}

func TestGetVariantInventory(t *testing.T) {
	t.Parallel()

	var gotVid string
	stub := &apiStub{
		stockByVid: func(_ context.Context, vid string) (*cj.Envelope, error) {
			gotVid = vid
			return okEnvelope(`[{"areaEn":"China Warehouse","num":120}]`), nil
		},
	}

	api := newVariantsAPI(t, stub)

	resp := api.Get("/api/v1/variants/v-5/inventory")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "v-5", gotVid)
	assert.Contains(t, resp.Body.String(), "China Warehouse")
}

func TestGetInventoryBySku(t *testing.T) {
	t.Parallel()

	var gotSku string
	stub := &apiStub{
		stockBySku: func(_ context.Context, sku string) (*cj.Envelope, error) {
			gotSku = sku
			return okEnvelope("[]"), nil
		},
	}

	api := newVariantsAPI(t, stub)

	resp := api.Get("/api/v1/inventory/SKU-42")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "SKU-42", gotSku)
}

func TestGetVariant_VendorHTTPError(t *testing.T) {
	t.Parallel()

	stub := &apiStub{
		variantByID: func(_ context.Context, _ string) (*cj.Envelope, error) {
			return nil, &cj.HTTPError{Status: http.StatusBadGateway, Body: "oops"}
		},
	}

	api := newVariantsAPI(t, stub)

	resp := api.Get("/api/v1/variants/v-5")
	assert.Equal(t, http.StatusBadGateway, resp.Code)
}
