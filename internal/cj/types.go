package cj

// ProductListParams filters the product catalogue listing.
type ProductListParams struct {
	PageNum    int
	PageSize   int
	CategoryID string
	Keywords   string
}

// ProductQueryParams identifies a product by exactly one of its
// identifiers. At least one must be set.
type ProductQueryParams struct {
	Pid        string
	ProductSku string
	VariantSku string
}

// VariantQueryParams identifies a product whose variants are requested,
// optionally filtered by destination-country inventory.
type VariantQueryParams struct {
	Pid         string
	ProductSku  string
	VariantSku  string
	CountryCode string
}

// ReviewParams pages through the reviews of a product.
type ReviewParams struct {
	Pid      string
	Score    *int
	PageNum  int
	PageSize int
}

// OrderListParams filters the order listing. Status values follow the
// vendor vocabulary: CREATED, IN_CART, UNPAID, UNSHIPPED, SHIPPED,
// DELIVERED, CANCELLED, OTHER.
type OrderListParams struct {
	PageNum         int
	PageSize        int
	Status          string
	OrderIDs        []string
	ShipmentOrderID string
}

// OrderProduct is one line of a CJ order.
type OrderProduct struct {
	Vid          string `json:"vid"`
	Quantity     int    `json:"quantity"`
	ShippingName string `json:"shippingName,omitempty"`
}

// OrderRequest is the createOrderV2 payload. The shipping fields always
// carry the configured centralized address; per-customer delivery data goes
// into Remark.
type OrderRequest struct {
	OrderNumber          string         `json:"orderNumber"`
	ShippingZip          string         `json:"shippingZip"`
	ShippingCountryCode  string         `json:"shippingCountryCode"`
	ShippingCountry      string         `json:"shippingCountry"`
	ShippingProvince     string         `json:"shippingProvince"`
	ShippingCity         string         `json:"shippingCity"`
	ShippingAddress      string         `json:"shippingAddress"`
	ShippingCustomerName string         `json:"shippingCustomerName"`
	ShippingPhone        string         `json:"shippingPhone"`
	LogisticName         string         `json:"logisticName"`
	FromCountryCode      string         `json:"fromCountryCode"`
	Remark               string         `json:"remark,omitempty"`
	Products             []OrderProduct `json:"products"`
}

// FreightProduct is one line of a freight calculation request.
type FreightProduct struct {
	Vid      string `json:"vid"`
	Quantity int    `json:"quantity"`
}

// FreightRequest is the logistic/freightCalculate payload.
type FreightRequest struct {
	StartCountryCode string           `json:"startCountryCode"`
	EndCountryCode   string           `json:"endCountryCode"`
	Zip              string           `json:"zip,omitempty"`
	TaxID            string           `json:"taxId,omitempty"`
	HouseNumber      string           `json:"houseNumber,omitempty"`
	IossNumber       string           `json:"iossNumber,omitempty"`
	Products         []FreightProduct `json:"products"`
}
