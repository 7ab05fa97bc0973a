package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tanguy-kabore/cjdropshipping-api/internal/cj"
)

// VariantsHandler proxies variant and inventory lookups.
type VariantsHandler struct {
	api cj.API
}

// NewVariantsHandler creates a new VariantsHandler.
func NewVariantsHandler(api cj.API) *VariantsHandler {
	return &VariantsHandler{api: api}
}

// GetVariantInput identifies a variant by vid.
type GetVariantInput struct {
	Vid string `path:"vid" doc:"CJ variant ID"`
}

// GetInventoryBySkuInput identifies inventory by SKU.
type GetInventoryBySkuInput struct {
	Sku string `path:"sku" doc:"Product or variant SKU"`
}

// GetVariant returns a single variant by its vid.
func (h *VariantsHandler) GetVariant(
	ctx context.Context,
	input *GetVariantInput,
) (*VendorOutput, error) {
	env, err := h.api.VariantByID(ctx, input.Vid)
	if err != nil {
		return nil, vendorError(err)
	}
	return vendorOutput(env), nil
}

// GetVariantInventory returns per-warehouse stock counts for a variant.
func (h *VariantsHandler) GetVariantInventory(
	ctx context.Context,
	input *GetVariantInput,
) (*VendorOutput, error) {
	env, err := h.api.StockByVid(ctx, input.Vid)
	if err != nil {
		return nil, vendorError(err)
	}
	return vendorOutput(env), nil
}

// GetInventoryBySku returns stock counts looked up by SKU.
func (h *VariantsHandler) GetInventoryBySku(
	ctx context.Context,
	input *GetInventoryBySkuInput,
) (*VendorOutput, error) {
	env, err := h.api.StockBySku(ctx, input.Sku)
	if err != nil {
		return nil, vendorError(err)
	}
	return vendorOutput(env), nil
}

// RegisterVariantRoutes registers variant and inventory endpoints with the
// Huma API.
func RegisterVariantRoutes(api huma.API, h *VariantsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-variant",
		Method:      http.MethodGet,
		Path:        "/api/v1/variants/{vid}",
		Summary:     "Get a variant by ID",
		Tags:        []string{"variants"},
		Errors:      []int{http.StatusBadRequest},
	}, h.GetVariant)

	huma.Register(api, huma.Operation{
		OperationID: "get-variant-inventory",
		Method:      http.MethodGet,
		Path:        "/api/v1/variants/{vid}/inventory",
		Summary:     "Get variant inventory",
		Tags:        []string{"variants"},
		Errors:      []int{http.StatusBadRequest},
	}, h.GetVariantInventory)

	huma.Register(api, huma.Operation{
		OperationID: "get-inventory-by-sku",
		Method:      http.MethodGet,
		Path:        "/api/v1/inventory/{sku}",
		Summary:     "Get inventory by SKU",
		Tags:        []string{"variants"},
		Errors:      []int{http.StatusBadRequest},
	}, h.GetInventoryBySku)
}
