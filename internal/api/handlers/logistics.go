package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tanguy-kabore/cjdropshipping-api/internal/cj"
	"github.com/tanguy-kabore/cjdropshipping-api/internal/config"
)

// LogisticsHandler proxies freight calculation and shipment tracking.
type LogisticsHandler struct {
	api      cj.API
	shipping config.ShippingConfig
}

// NewLogisticsHandler creates a new LogisticsHandler. Freight quotes use
// the configured centralized address as the destination.
func NewLogisticsHandler(api cj.API, shipping config.ShippingConfig) *LogisticsHandler {
	return &LogisticsHandler{api: api, shipping: shipping}
}

// FreightInput is the freight calculation request body.
type FreightInput struct {
	Body struct {
		Products []OrderLine `json:"products" doc:"Product lines to quote" required:"true" minItems:"1"`
	}
}

// TrackingInput identifies a shipment by tracking number.
type TrackingInput struct {
	Number string `path:"number" doc:"CJ tracking number"`
}

// CalculateFreight returns shipping options and costs from the CJ origin
// warehouse to the centralized delivery address.
func (h *LogisticsHandler) CalculateFreight(
	ctx context.Context,
	input *FreightInput,
) (*VendorOutput, error) {
	products := make([]cj.FreightProduct, 0, len(input.Body.Products))
	for _, line := range input.Body.Products {
		products = append(products, cj.FreightProduct{
			Vid:      line.Vid,
			Quantity: line.Quantity,
		})
	}

	env, err := h.api.FreightCalculate(ctx, &cj.FreightRequest{
		StartCountryCode: h.shipping.FromCountryCode,
		EndCountryCode:   h.shipping.CountryCode,
		Zip:              h.shipping.Zip,
		Products:         products,
	})
	if err != nil {
		return nil, vendorError(err)
	}
	return vendorOutput(env), nil
}

// TrackShipment returns tracking events for a shipment.
func (h *LogisticsHandler) TrackShipment(
	ctx context.Context,
	input *TrackingInput,
) (*VendorOutput, error) {
	env, err := h.api.TrackInfo(ctx, input.Number, "")
	if err != nil {
		return nil, vendorError(err)
	}
	return vendorOutput(env), nil
}

// RegisterLogisticsRoutes registers logistics endpoints with the Huma API.
func RegisterLogisticsRoutes(api huma.API, h *LogisticsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "calculate-freight",
		Method:      http.MethodPost,
		Path:        "/api/v1/logistics/freight",
		Summary:     "Calculate freight",
		Description: "Quotes shipping options from the CJ origin warehouse to the configured centralized delivery address.",
		Tags:        []string{"logistics"},
		Errors:      []int{http.StatusBadRequest},
	}, h.CalculateFreight)

	huma.Register(api, huma.Operation{
		OperationID: "track-shipment",
		Method:      http.MethodGet,
		Path:        "/api/v1/tracking/{number}",
		Summary:     "Track a shipment",
		Tags:        []string{"logistics"},
		Errors:      []int{http.StatusBadRequest},
	}, h.TrackShipment)
}
