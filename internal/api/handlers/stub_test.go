package handlers_test

import (
	"context"
	"encoding/json"

	"github.com/tanguy-kabore/cjdropshipping-api/internal/cj"
)

// okEnvelope returns a successful vendor envelope carrying data.
func okEnvelope(data string) *cj.Envelope {
	return &cj.Envelope{
		Code:    200,
		Result:  true,
		Message: "Success",
		Data:    json.RawMessage(data),
	}
}

// apiStub implements cj.API with overridable functions; unset operations
// return an empty success envelope.
type apiStub struct {
	categories    func(ctx context.Context) (*cj.Envelope, error)
	productList   func(ctx context.Context, p cj.ProductListParams) (*cj.Envelope, error)
	productQuery  func(ctx context.Context, p cj.ProductQueryParams) (*cj.Envelope, error)
	variantQuery  func(ctx context.Context, p cj.VariantQueryParams) (*cj.Envelope, error)
	variantByID   func(ctx context.Context, vid string) (*cj.Envelope, error)
	stockByVid    func(ctx context.Context, vid string) (*cj.Envelope, error)
	stockBySku    func(ctx context.Context, sku string) (*cj.Envelope, error)
	reviews       func(ctx context.Context, p cj.ReviewParams) (*cj.Envelope, error)
	settings      func(ctx context.Context) (*cj.Envelope, error)
	createOrderV2 func(ctx context.Context, order *cj.OrderRequest) (*cj.Envelope, error)
	orderList     func(ctx context.Context, p cj.OrderListParams) (*cj.Envelope, error)
	orderDetail   func(ctx context.Context, orderID string, features []string) (*cj.Envelope, error)
	deleteOrder   func(ctx context.Context, orderID string) (*cj.Envelope, error)
	confirmOrder  func(ctx context.Context, orderID string) (*cj.Envelope, error)
	balance       func(ctx context.Context) (*cj.Envelope, error)
	payBalance    func(ctx context.Context, orderID string) (*cj.Envelope, error)
	freight       func(ctx context.Context, req *cj.FreightRequest) (*cj.Envelope, error)
	trackInfo     func(ctx context.Context, trackNumber, orderNumber string) (*cj.Envelope, error)
}

func (s *apiStub) Categories(ctx context.Context) (*cj.Envelope, error) {
	if s.categories != nil {
		return s.categories(ctx)
	}
	return okEnvelope("null"), nil
}

func (s *apiStub) ProductList(ctx context.Context, p cj.ProductListParams) (*cj.Envelope, error) {
	if s.productList != nil {
		return s.productList(ctx, p)
	}
	return okEnvelope("null"), nil
}

func (s *apiStub) ProductQuery(ctx context.Context, p cj.ProductQueryParams) (*cj.Envelope, error) {
	if s.productQuery != nil {
		return s.productQuery(ctx, p)
	}
	return okEnvelope("null"), nil
}

func (s *apiStub) VariantQuery(ctx context.Context, p cj.VariantQueryParams) (*cj.Envelope, error) {
	if s.variantQuery != nil {
		return s.variantQuery(ctx, p)
	}
	return okEnvelope("null"), nil
}

func (s *apiStub) VariantByID(ctx context.Context, vid string) (*cj.Envelope, error) {
	if s.variantByID != nil {
		return s.variantByID(ctx, vid)
	}
	return okEnvelope("null"), nil
}

func (s *apiStub) StockByVid(ctx context.Context, vid string) (*cj.Envelope, error) {
	if s.stockByVid != nil {
		return s.stockByVid(ctx, vid)
	}
	return okEnvelope("null"), nil
}

func (s *apiStub) StockBySku(ctx context.Context, sku string) (*cj.Envelope, error) {
	if s.stockBySku != nil {
		return s.stockBySku(ctx, sku)
	}
	return okEnvelope("null"), nil
}

func (s *apiStub) ProductReviews(ctx context.Context, p cj.ReviewParams) (*cj.Envelope, error) {
	if s.reviews != nil {
		return s.reviews(ctx, p)
	}
	return okEnvelope("null"), nil
}

func (s *apiStub) Settings(ctx context.Context) (*cj.Envelope, error) {
	if s.settings != nil {
		return s.settings(ctx)
	}
	return okEnvelope("null"), nil
}

func (s *apiStub) CreateOrderV2(ctx context.Context, order *cj.OrderRequest) (*cj.Envelope, error) {
	if s.createOrderV2 != nil {
		return s.createOrderV2(ctx, order)
	}
	return okEnvelope("null"), nil
}

func (s *apiStub) OrderList(ctx context.Context, p cj.OrderListParams) (*cj.Envelope, error) {
	if s.orderList != nil {
		return s.orderList(ctx, p)
	}
	return okEnvelope("null"), nil
}

func (s *apiStub) OrderDetail(
	ctx context.Context,
	orderID string,
	features []string,
) (*cj.Envelope, error) {
	if s.orderDetail != nil {
		return s.orderDetail(ctx, orderID, features)
	}
	return okEnvelope("null"), nil
}

func (s *apiStub) DeleteOrder(ctx context.Context, orderID string) (*cj.Envelope, error) {
	if s.deleteOrder != nil {
		return s.deleteOrder(ctx, orderID)
	}
	return okEnvelope("null"), nil
}

func (s *apiStub) ConfirmOrder(ctx context.Context, orderID string) (*cj.Envelope, error) {
	if s.confirmOrder != nil {
		return s.confirmOrder(ctx, orderID)
	}
	return okEnvelope("null"), nil
}

func (s *apiStub) Balance(ctx context.Context) (*cj.Envelope, error) {
	if s.balance != nil {
		return s.balance(ctx)
	}
	return okEnvelope("null"), nil
}

func (s *apiStub) PayBalance(ctx context.Context, orderID string) (*cj.Envelope, error) {
	if s.payBalance != nil {
		return s.payBalance(ctx, orderID)
	}
	return okEnvelope("null"), nil
}

func (s *apiStub) FreightCalculate(ctx context.Context, req *cj.FreightRequest) (*cj.Envelope, error) {
	if s.freight != nil {
		return s.freight(ctx, req)
	}
	return okEnvelope("null"), nil
}

func (s *apiStub) TrackInfo(
	ctx context.Context,
	trackNumber, orderNumber string,
) (*cj.Envelope, error) {
	if s.trackInfo != nil {
		return s.trackInfo(ctx, trackNumber, orderNumber)
	}
	return okEnvelope("null"), nil
}
