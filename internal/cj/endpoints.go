package cj

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ErrMissingIdentifier is returned when a query needs at least one of
// several alternative identifiers and none was supplied.
var ErrMissingIdentifier = errors.New("at least one identifier is required")

const (
	defaultPageNum  = 1
	defaultPageSize = 20
)

// Categories lists the full product category tree.
func (c *Client) Categories(ctx context.Context) (*Envelope, error) {
	return c.Execute(ctx, http.MethodGet, "/product/getCategory", nil, nil)
}

// ProductList pages through the product catalogue with optional category
// and keyword filters.
func (c *Client) ProductList(ctx context.Context, p ProductListParams) (*Envelope, error) {
	query := url.Values{}
	query.Set("pageNum", strconv.Itoa(orDefault(p.PageNum, defaultPageNum)))
	query.Set("pageSize", strconv.Itoa(orDefault(p.PageSize, defaultPageSize)))

	if p.CategoryID != "" {
		query.Set("categoryId", p.CategoryID)
	}
	if p.Keywords != "" {
		query.Set("productNameEn", p.Keywords)
	}

	return c.Execute(ctx, http.MethodGet, "/product/list", query, nil)
}

// ProductQuery fetches product details by pid, product SKU, or variant SKU.
func (c *Client) ProductQuery(ctx context.Context, p ProductQueryParams) (*Envelope, error) {
	query := url.Values{}
	switch {
	case p.Pid != "":
		query.Set("pid", p.Pid)
	case p.ProductSku != "":
		query.Set("productSku", p.ProductSku)
	case p.VariantSku != "":
		query.Set("variantSku", p.VariantSku)
	default:
		return nil, ErrMissingIdentifier
	}

	return c.Execute(ctx, http.MethodGet, "/product/query", query, nil)
}

// VariantQuery lists the variants of a product, optionally filtered by
// destination-country inventory.
func (c *Client) VariantQuery(ctx context.Context, p VariantQueryParams) (*Envelope, error) {
	query := url.Values{}
	switch {
	case p.Pid != "":
		query.Set("pid", p.Pid)
	case p.ProductSku != "":
		query.Set("productSku", p.ProductSku)
	case p.VariantSku != "":
		query.Set("variantSku", p.VariantSku)
	default:
		return nil, ErrMissingIdentifier
	}

	if p.CountryCode != "" {
		query.Set("countryCode", p.CountryCode)
	}

	return c.Execute(ctx, http.MethodGet, "/product/variant/query", query, nil)
}

// VariantByID fetches a single variant by its vid.
func (c *Client) VariantByID(ctx context.Context, vid string) (*Envelope, error) {
	query := url.Values{"vid": {vid}}
	return c.Execute(ctx, http.MethodGet, "/product/variant/queryByVid", query, nil)
}

// StockByVid fetches the inventory of a variant.
func (c *Client) StockByVid(ctx context.Context, vid string) (*Envelope, error) {
	query := url.Values{"vid": {vid}}
	return c.Execute(ctx, http.MethodGet, "/product/stock/queryByVid", query, nil)
}

// StockBySku fetches inventory by product or variant SKU.
func (c *Client) StockBySku(ctx context.Context, sku string) (*Envelope, error) {
	query := url.Values{"sku": {sku}}
	return c.Execute(ctx, http.MethodGet, "/product/stock/queryBySku", query, nil)
}

// ProductReviews pages through the reviews of a product, optionally
// filtered by score.
func (c *Client) ProductReviews(ctx context.Context, p ReviewParams) (*Envelope, error) {
	query := url.Values{}
	query.Set("pid", p.Pid)
	query.Set("pageNum", strconv.Itoa(orDefault(p.PageNum, defaultPageNum)))
	query.Set("pageSize", strconv.Itoa(orDefault(p.PageSize, defaultPageSize)))

	if p.Score != nil {
		query.Set("score", strconv.Itoa(*p.Score))
	}

	return c.Execute(ctx, http.MethodGet, "/product/productComments", query, nil)
}

// Settings fetches the CJ account settings.
func (c *Client) Settings(ctx context.Context) (*Envelope, error) {
	return c.Execute(ctx, http.MethodGet, "/setting/get", nil, nil)
}

// CreateOrderV2 creates an order via the v2 endpoint.
func (c *Client) CreateOrderV2(ctx context.Context, order *OrderRequest) (*Envelope, error) {
	return c.Execute(ctx, http.MethodPost, "/shopping/order/createOrderV2", nil, order)
}

// OrderList pages through the account's orders.
func (c *Client) OrderList(ctx context.Context, p OrderListParams) (*Envelope, error) {
	query := url.Values{}
	query.Set("pageNum", strconv.Itoa(orDefault(p.PageNum, defaultPageNum)))
	query.Set("pageSize", strconv.Itoa(orDefault(p.PageSize, defaultPageSize)))

	if p.Status != "" {
		query.Set("status", p.Status)
	}
	if len(p.OrderIDs) > 0 {
		query.Set("orderIds", strings.Join(p.OrderIDs, ","))
	}
	if p.ShipmentOrderID != "" {
		query.Set("shipmentOrderId", p.ShipmentOrderID)
	}

	return c.Execute(ctx, http.MethodGet, "/shopping/order/list", query, nil)
}

// OrderDetail fetches one order by its CJ or client-supplied identifier.
func (c *Client) OrderDetail(
	ctx context.Context,
	orderID string,
	features []string,
) (*Envelope, error) {
	query := url.Values{"orderId": {orderID}}
	for _, f := range features {
		query.Add("features", f)
	}

	return c.Execute(ctx, http.MethodGet, "/shopping/order/getOrderDetail", query, nil)
}

// DeleteOrder deletes an order.
func (c *Client) DeleteOrder(ctx context.Context, orderID string) (*Envelope, error) {
	query := url.Values{"orderId": {orderID}}
	return c.Execute(ctx, http.MethodDelete, "/shopping/order/deleteOrder", query, nil)
}

// ConfirmOrder confirms an order.
func (c *Client) ConfirmOrder(ctx context.Context, orderID string) (*Envelope, error) {
	body := map[string]string{"orderId": orderID}
	return c.Execute(ctx, http.MethodPatch, "/shopping/order/confirmOrder", nil, body)
}

// Balance fetches the account balance.
func (c *Client) Balance(ctx context.Context) (*Envelope, error) {
	return c.Execute(ctx, http.MethodGet, "/shopping/pay/getBalance", nil, nil)
}

// PayBalance pays an order from the account balance.
func (c *Client) PayBalance(ctx context.Context, orderID string) (*Envelope, error) {
	body := map[string]string{"orderId": orderID}
	return c.Execute(ctx, http.MethodPost, "/shopping/pay/payBalance", nil, body)
}

// FreightCalculate computes shipping options and costs for a product set.
func (c *Client) FreightCalculate(ctx context.Context, req *FreightRequest) (*Envelope, error) {
	return c.Execute(ctx, http.MethodPost, "/logistic/freightCalculate", nil, req)
}

// TrackInfo fetches shipment tracking by tracking number or order number.
// At least one must be supplied.
func (c *Client) TrackInfo(
	ctx context.Context,
	trackNumber, orderNumber string,
) (*Envelope, error) {
	if trackNumber == "" && orderNumber == "" {
		return nil, ErrMissingIdentifier
	}

	query := url.Values{}
	if trackNumber != "" {
		query.Set("trackNumber", trackNumber)
	}
	if orderNumber != "" {
		query.Set("orderNumber", orderNumber)
	}

	return c.Execute(ctx, http.MethodGet, "/logistic/trackInfo", query, nil)
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
