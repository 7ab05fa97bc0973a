// Package cj provides a CJDropshipping API client abstracted behind
// interfaces for testability. It owns the token lifecycle: a persisted
// access/refresh token pair, transparent refresh on expiry, and fallback to
// full credential exchange when the refresh token is no longer usable.
package cj

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/tanguy-kabore/cjdropshipping-api/internal/tokenstore"
)

// Envelope is the wrapper CJ puts around every response body. Data is left
// unparsed; endpoint handlers pass vendor payload shapes through unchanged.
type Envelope struct {
	Code    int             `json:"code"`
	Result  bool            `json:"result"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// OK reports whether the envelope signals a successful business outcome.
func (e *Envelope) OK() bool {
	return e.Result && e.Code == codeSuccess
}

// TokenProvider defines the interface for obtaining a currently-valid
// access token. Implemented by Guard.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// TokenSource performs the two vendor auth operations. Implemented by
// Authenticator; the Guard depends on this interface so tests can count
// calls without a network.
type TokenSource interface {
	Authenticate(ctx context.Context) (*tokenstore.Record, error)
	Refresh(ctx context.Context, refreshToken string) (*tokenstore.Record, error)
}

// Executor dispatches a single authenticated call against the CJ API.
type Executor interface {
	Execute(
		ctx context.Context,
		method, path string,
		query url.Values,
		body any,
	) (*Envelope, error)
}

// API is the full set of typed CJ operations the HTTP layer depends on.
type API interface {
	Categories(ctx context.Context) (*Envelope, error)
	ProductList(ctx context.Context, p ProductListParams) (*Envelope, error)
	ProductQuery(ctx context.Context, p ProductQueryParams) (*Envelope, error)
	VariantQuery(ctx context.Context, p VariantQueryParams) (*Envelope, error)
	VariantByID(ctx context.Context, vid string) (*Envelope, error)
	StockByVid(ctx context.Context, vid string) (*Envelope, error)
	StockBySku(ctx context.Context, sku string) (*Envelope, error)
	ProductReviews(ctx context.Context, p ReviewParams) (*Envelope, error)
	Settings(ctx context.Context) (*Envelope, error)
	CreateOrderV2(ctx context.Context, order *OrderRequest) (*Envelope, error)
	OrderList(ctx context.Context, p OrderListParams) (*Envelope, error)
	OrderDetail(ctx context.Context, orderID string, features []string) (*Envelope, error)
	DeleteOrder(ctx context.Context, orderID string) (*Envelope, error)
	ConfirmOrder(ctx context.Context, orderID string) (*Envelope, error)
	Balance(ctx context.Context) (*Envelope, error)
	PayBalance(ctx context.Context, orderID string) (*Envelope, error)
	FreightCalculate(ctx context.Context, req *FreightRequest) (*Envelope, error)
	TrackInfo(ctx context.Context, trackNumber, orderNumber string) (*Envelope, error)
}
