package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanguy-kabore/cjdropshipping-api/internal/api/handlers"
	"github.com/tanguy-kabore/cjdropshipping-api/internal/cj"
	"github.com/tanguy-kabore/cjdropshipping-api/internal/config"
)

var testShipping = config.ShippingConfig{
	CustomerName:    "Central Warehouse",
	Phone:           "+22670000000",
	Address:         "Avenue Kwame Nkrumah 10",
	City:            "Ouagadougou",
	Province:        "Kadiogo",
	Country:         "Burkina Faso",
	CountryCode:     "BF",
	Zip:             "00226",
	FromCountryCode: "CN",
}

func newOrdersAPI(t *testing.T, stub *apiStub) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	handlers.RegisterOrderRoutes(api, handlers.NewOrdersHandler(stub, testShipping))
	return api
}

func TestCreateOrder_InjectsCentralizedAddress(t *testing.T) {
	t.Parallel()

	var got *cj.OrderRequest
	stub := &apiStub{
		createOrderV2: func(_ context.Context, order *cj.OrderRequest) (*cj.Envelope, error) {
			got = order
			return okEnvelope(`{"orderId":"cj-1"}`), nil
		},
	}

	api := newOrdersAPI(t, stub)

	resp := api.Post("/api/v1/orders", map[string]any{
		"order_ref": "web-42",
		"customer": map[string]any{
			"name":    "Awa Traore",
			"phone":   "+22675000000",
			"address": "Secteur 15, Bobo-Dioulasso",
			"note":    "deliver after 17h",
		},
		"products": []map[string]any{
			{"vid": "v-1", "quantity": 2},
			{"vid": "v-2", "quantity": 1},
		},
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	require.NotNil(t, got)

	// The vendor payload always carries the configured centralized address.
	assert.Equal(t, "web-42", got.OrderNumber)
	assert.Equal(t, "Central Warehouse", got.ShippingCustomerName)
	assert.Equal(t, "+22670000000", got.ShippingPhone)
	assert.Equal(t, "Avenue Kwame Nkrumah 10", got.ShippingAddress)
	assert.Equal(t, "Ouagadougou", got.ShippingCity)
	assert.Equal(t, "Kadiogo", got.ShippingProvince)
	assert.Equal(t, "Burkina Faso", got.ShippingCountry)
	assert.Equal(t, "BF", got.ShippingCountryCode)
	assert.Equal(t, "00226", got.ShippingZip)
	assert.Equal(t, "CN", got.FromCountryCode)

	// The final customer lands in the remark, nowhere else.
	assert.Equal(
		t,
		"Final customer: Awa Traore, Tel: +22675000000, "+
			"Address: Secteur 15, Bobo-Dioulasso, Note: deliver after 17h",
		got.Remark,
	)

	// Default logistic service applied to the order and each line.
	assert.Equal(t, "CJPacket Ordinary", got.LogisticName)
	require.Len(t, got.Products, 2)
	assert.Equal(t, "v-1", got.Products[0].Vid)
	assert.Equal(t, 2, got.Products[0].Quantity)
	assert.Equal(t, "CJPacket Ordinary", got.Products[0].ShippingName)
}

func TestCreateOrder_GeneratesReferenceWhenAbsent(t *testing.T) {
	t.Parallel()

	var got *cj.OrderRequest
	stub := &apiStub{
		createOrderV2: func(_ context.Context, order *cj.OrderRequest) (*cj.Envelope, error) {
			got = order
			return okEnvelope("null"), nil
		},
	}

	api := newOrdersAPI(t, stub)

	resp := api.Post("/api/v1/orders", map[string]any{
		"customer": map[string]any{
			"name":    "Awa Traore",
			"phone":   "+22675000000",
			"address": "Secteur 15, Bobo-Dioulasso",
		},
		"products": []map[string]any{{"vid": "v-1", "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	require.NotNil(t, got)

	// Absent order_ref gets a generated unique reference.
	_, err := uuid.Parse(got.OrderNumber)
	assert.NoError(t, err)
}

func TestCreateOrder_CustomLogisticName(t *testing.T) {
	t.Parallel()

	var got *cj.OrderRequest
	stub := &apiStub{
		createOrderV2: func(_ context.Context, order *cj.OrderRequest) (*cj.Envelope, error) {
			got = order
			return okEnvelope("null"), nil
		},
	}

	api := newOrdersAPI(t, stub)

	resp := api.Post("/api/v1/orders", map[string]any{
		"order_ref":     "web-43",
		"logistic_name": "CJPacket Sensitive",
		"customer": map[string]any{
			"name":    "Issa Ouedraogo",
			"phone":   "+22676000000",
			"address": "Ouaga 2000",
		},
		"products": []map[string]any{
			{"vid": "v-9", "quantity": 1},
		},
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	assert.Equal(t, "CJPacket Sensitive", got.LogisticName)
	assert.Equal(t, "CJPacket Sensitive", got.Products[0].ShippingName)
	assert.NotContains(t, got.Remark, "Note:")
}

func TestCreateOrder_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body map[string]any
	}{
		{
			name: "missing products",
			body: map[string]any{
				"order_ref": "web-44",
				"customer": map[string]any{
					"name":    "x",
					"phone":   "y",
					"address": "z",
				},
			},
		},
		{
			name: "missing customer",
			body: map[string]any{
				"order_ref": "web-44",
				"products":  []map[string]any{{"vid": "v-1", "quantity": 1}},
			},
		},
		{
			name: "zero quantity",
			body: map[string]any{
				"order_ref": "web-44",
				"customer": map[string]any{
					"name":    "x",
					"phone":   "y",
					"address": "z",
				},
				"products": []map[string]any{{"vid": "v-1", "quantity": 0}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			called := false
			stub := &apiStub{
				createOrderV2: func(_ context.Context, _ *cj.OrderRequest) (*cj.Envelope, error) {
					called = true
					return okEnvelope("null"), nil
				},
			}

			api := newOrdersAPI(t, stub)

			resp := api.Post("/api/v1/orders", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
			assert.False(t, called, "vendor must not be contacted on invalid input")
		})
	}
}

func TestCreateOrder_VendorRejection(t *testing.T) {
	t.Parallel()

	stub := &apiStub{
		createOrderV2: func(_ context.Context, _ *cj.OrderRequest) (*cj.Envelope, error) {
			return nil, &cj.APIError{Code: 1700100, Message: "insufficient balance"}
		},
	}

	api := newOrdersAPI(t, stub)

	resp := api.Post("/api/v1/orders", map[string]any{
		"order_ref": "web-45",
		"customer": map[string]any{
			"name":    "x",
			"phone":   "y",
			"address": "z",
		},
		"products": []map[string]any{{"vid": "v-1", "quantity": 1}},
	})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "insufficient balance")
}

func TestListOrders_StatusFilter(t *testing.T) {
	t.Parallel()

	var got cj.OrderListParams
	stub := &apiStub{
		orderList: func(_ context.Context, p cj.OrderListParams) (*cj.Envelope, error) {
			got = p
			return okEnvelope(`{"list":[]}`), nil
		},
	}

	api := newOrdersAPI(t, stub)

	resp := api.Get("/api/v1/orders?status=UNPAID&page=2")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "UNPAID", got.Status)
	assert.Equal(t, 2, got.PageNum)
}

func TestGetOrder_Features(t *testing.T) {
	t.Parallel()

	var gotID string
	var gotFeatures []string
	stub := &apiStub{
		orderDetail: func(_ context.Context, orderID string, features []string) (*cj.Envelope, error) {
			gotID = orderID
			gotFeatures = features
			return okEnvelope(`{"orderId":"o-7"}`), nil
		},
	}

	api := newOrdersAPI(t, stub)

	resp := api.Get("/api/v1/orders/o-7?features=LOGISTICS_TIMELINESS")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "o-7", gotID)
	assert.Equal(t, []string{"LOGISTICS_TIMELINESS"}, gotFeatures)
}

func TestOrderLifecycleOperations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		request func(api humatest.TestAPI) int
		stub    func(recordID *string) *apiStub
	}{
		{
			name: "delete",
			request: func(api humatest.TestAPI) int {
				return api.Delete("/api/v1/orders/o-1").Code
			},
			stub: func(recordID *string) *apiStub {
				return &apiStub{
					deleteOrder: func(_ context.Context, id string) (*cj.Envelope, error) {
						*recordID = id
						return okEnvelope("null"), nil
					},
				}
			},
		},
		{
			name: "confirm",
			request: func(api humatest.TestAPI) int {
				return api.Patch("/api/v1/orders/o-1/confirm").Code
			},
			stub: func(recordID *string) *apiStub {
				return &apiStub{
					confirmOrder: func(_ context.Context, id string) (*cj.Envelope, error) {
						*recordID = id
						return okEnvelope("null"), nil
					},
				}
			},
		},
		{
			name: "pay",
			request: func(api humatest.TestAPI) int {
				return api.Post("/api/v1/orders/o-1/pay").Code
			},
			stub: func(recordID *string) *apiStub {
				return &apiStub{
					payBalance: func(_ context.Context, id string) (*cj.Envelope, error) {
						*recordID = id
						return okEnvelope("null"), nil
					},
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotID string
			api := newOrdersAPI(t, tt.stub(&gotID))

			code := tt.request(api)
			require.Equal(t, http.StatusOK, code)
			assert.Equal(t, "o-1", gotID)
		})
	}
}
