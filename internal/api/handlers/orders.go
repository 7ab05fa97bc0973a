package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/tanguy-kabore/cjdropshipping-api/internal/cj"
	"github.com/tanguy-kabore/cjdropshipping-api/internal/config"
)

// defaultLogisticName is used when the caller does not pick a shipping
// service.
const defaultLogisticName = "CJPacket Ordinary"

// OrdersHandler proxies order management. Every created order ships to the
// configured centralized address; the final customer's own delivery details
// are folded into the order remark for local distribution.
type OrdersHandler struct {
	api      cj.API
	shipping config.ShippingConfig
}

// NewOrdersHandler creates a new OrdersHandler stamping orders with the
// given centralized shipping address.
func NewOrdersHandler(api cj.API, shipping config.ShippingConfig) *OrdersHandler {
	return &OrdersHandler{api: api, shipping: shipping}
}

// --- Input/Output types ---

// OrderLine is one product line in an order creation request.
type OrderLine struct {
	Vid      string `json:"vid"      doc:"CJ variant ID"        required:"true"`
	Quantity int    `json:"quantity" doc:"Units to order"       required:"true" minimum:"1"`
}

// CustomerInfo is the final customer's delivery data, kept out of the
// vendor address fields and recorded in the order remark instead.
type CustomerInfo struct {
	Name    string `json:"name"           doc:"Final customer name"    required:"true"`
	Phone   string `json:"phone"          doc:"Final customer phone"   required:"true"`
	Address string `json:"address"        doc:"Final customer address" required:"true"`
	Note    string `json:"note,omitempty" doc:"Free-form note"`
}

// CreateOrderInput is the order creation request body.
type CreateOrderInput struct {
	Body struct {
		OrderRef     string       `json:"order_ref,omitempty"     doc:"Unique client-side order reference (generated when absent)"`
		LogisticName string       `json:"logistic_name,omitempty" doc:"CJ logistic service name (default CJPacket Ordinary)"`
		Customer     CustomerInfo `json:"customer"                                                         required:"true"`
		Products     []OrderLine  `json:"products"                doc:"Order lines"                        required:"true" minItems:"1"`
	}
}

// ListOrdersInput filters the order listing.
type ListOrdersInput struct {
	Page     int    `query:"page"      doc:"Page number (default 1)"       minimum:"0"`
	PageSize int    `query:"page_size" doc:"Results per page (default 20)" minimum:"0" maximum:"200"`
	Status   string `query:"status"    doc:"Filter by order status"        enum:"CREATED,IN_CART,UNPAID,UNSHIPPED,SHIPPED,DELIVERED,CANCELLED,OTHER,"`
}

// OrderIDInput identifies an order by its CJ or client-supplied ID.
type OrderIDInput struct {
	ID string `path:"id" doc:"Order ID (CJ or client reference)"`
}

// GetOrderInput identifies an order and optional detail features.
type GetOrderInput struct {
	ID       string   `path:"id"        doc:"Order ID (CJ or client reference)"`
	Features []string `query:"features" doc:"Extra detail features, e.g. LOGISTICS_TIMELINESS"`
}

// --- Handlers ---

// CreateOrder creates a CJ order shipped to the centralized address.
func (h *OrdersHandler) CreateOrder(
	ctx context.Context,
	input *CreateOrderInput,
) (*VendorOutput, error) {
	logistic := input.Body.LogisticName
	if logistic == "" {
		logistic = defaultLogisticName
	}

	orderRef := input.Body.OrderRef
	if orderRef == "" {
		orderRef = uuid.NewString()
	}

	products := make([]cj.OrderProduct, 0, len(input.Body.Products))
	for _, line := range input.Body.Products {
		products = append(products, cj.OrderProduct{
			Vid:          line.Vid,
			Quantity:     line.Quantity,
			ShippingName: logistic,
		})
	}

	order := &cj.OrderRequest{
		OrderNumber:          orderRef,
		ShippingZip:          h.shipping.Zip,
		ShippingCountryCode:  h.shipping.CountryCode,
		ShippingCountry:      h.shipping.Country,
		ShippingProvince:     h.shipping.Province,
		ShippingCity:         h.shipping.City,
		ShippingAddress:      h.shipping.Address,
		ShippingCustomerName: h.shipping.CustomerName,
		ShippingPhone:        h.shipping.Phone,
		LogisticName:         logistic,
		FromCountryCode:      h.shipping.FromCountryCode,
		Remark:               customerRemark(input.Body.Customer),
		Products:             products,
	}

	env, err := h.api.CreateOrderV2(ctx, order)
	if err != nil {
		return nil, vendorError(err)
	}
	return vendorOutput(env), nil
}

// customerRemark folds the final customer's delivery data into the vendor
// order remark, the only place it travels.
func customerRemark(c CustomerInfo) string {
	var b strings.Builder
	fmt.Fprintf(
		&b,
		"Final customer: %s, Tel: %s, Address: %s",
		c.Name, c.Phone, c.Address,
	)
	if c.Note != "" {
		fmt.Fprintf(&b, ", Note: %s", c.Note)
	}
	return b.String()
}

// ListOrders pages through the account's orders.
func (h *OrdersHandler) ListOrders(
	ctx context.Context,
	input *ListOrdersInput,
) (*VendorOutput, error) {
	env, err := h.api.OrderList(ctx, cj.OrderListParams{
		PageNum:  input.Page,
		PageSize: input.PageSize,
		Status:   input.Status,
	})
	if err != nil {
		return nil, vendorError(err)
	}
	return vendorOutput(env), nil
}

// GetOrder returns one order's details.
func (h *OrdersHandler) GetOrder(
	ctx context.Context,
	input *GetOrderInput,
) (*VendorOutput, error) {
	env, err := h.api.OrderDetail(ctx, input.ID, input.Features)
	if err != nil {
		return nil, vendorError(err)
	}
	return vendorOutput(env), nil
}

// DeleteOrder deletes an order.
func (h *OrdersHandler) DeleteOrder(
	ctx context.Context,
	input *OrderIDInput,
) (*VendorOutput, error) {
	env, err := h.api.DeleteOrder(ctx, input.ID)
	if err != nil {
		return nil, vendorError(err)
	}
	return vendorOutput(env), nil
}

// ConfirmOrder confirms an order for fulfilment.
func (h *OrdersHandler) ConfirmOrder(
	ctx context.Context,
	input *OrderIDInput,
) (*VendorOutput, error) {
	env, err := h.api.ConfirmOrder(ctx, input.ID)
	if err != nil {
		return nil, vendorError(err)
	}
	return vendorOutput(env), nil
}

// PayOrder pays an order from the account balance.
func (h *OrdersHandler) PayOrder(
	ctx context.Context,
	input *OrderIDInput,
) (*VendorOutput, error) {
	env, err := h.api.PayBalance(ctx, input.ID)
	if err != nil {
		return nil, vendorError(err)
	}
	return vendorOutput(env), nil
}

// RegisterOrderRoutes registers order management endpoints with the Huma API.
func RegisterOrderRoutes(api huma.API, h *OrdersHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-order",
		Method:        http.MethodPost,
		Path:          "/api/v1/orders",
		Summary:       "Create an order",
		Description:   "Creates a CJ order delivered to the configured centralized address; the final customer's details are recorded in the order remark.",
		Tags:          []string{"orders"},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest, http.StatusBadGateway},
	}, h.CreateOrder)

	huma.Register(api, huma.Operation{
		OperationID: "list-orders",
		Method:      http.MethodGet,
		Path:        "/api/v1/orders",
		Summary:     "List orders",
		Tags:        []string{"orders"},
	}, h.ListOrders)

	huma.Register(api, huma.Operation{
		OperationID: "get-order",
		Method:      http.MethodGet,
		Path:        "/api/v1/orders/{id}",
		Summary:     "Get order details",
		Tags:        []string{"orders"},
		Errors:      []int{http.StatusBadRequest},
	}, h.GetOrder)

	huma.Register(api, huma.Operation{
		OperationID: "delete-order",
		Method:      http.MethodDelete,
		Path:        "/api/v1/orders/{id}",
		Summary:     "Delete an order",
		Tags:        []string{"orders"},
		Errors:      []int{http.StatusBadRequest},
	}, h.DeleteOrder)

	huma.Register(api, huma.Operation{
		OperationID: "confirm-order",
		Method:      http.MethodPatch,
		Path:        "/api/v1/orders/{id}/confirm",
		Summary:     "Confirm an order",
		Tags:        []string{"orders"},
		Errors:      []int{http.StatusBadRequest},
	}, h.ConfirmOrder)

	huma.Register(api, huma.Operation{
		OperationID: "pay-order",
		Method:      http.MethodPost,
		Path:        "/api/v1/orders/{id}/pay",
		Summary:     "Pay an order from the account balance",
		Tags:        []string{"orders"},
		Errors:      []int{http.StatusBadRequest},
	}, h.PayOrder)
}
