package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tanguy-kabore/cjdropshipping-api/internal/cj"
)

// minPageSize is the smallest page the vendor serves reliably; smaller
// requests are bumped up rather than rejected.
const minPageSize = 10

// ProductsHandler proxies the CJ product catalogue endpoints.
type ProductsHandler struct {
	api            cj.API
	variantCountry string
}

// NewProductsHandler creates a new ProductsHandler. variantCountry filters
// variant inventory to the configured destination country.
func NewProductsHandler(api cj.API, variantCountry string) *ProductsHandler {
	return &ProductsHandler{api: api, variantCountry: variantCountry}
}

// --- Input types ---

// ListProductsInput is the input for the product catalogue listing.
type ListProductsInput struct {
	Keywords string `query:"keywords"  doc:"Filter by product name (English)"`
	Category string `query:"category"  doc:"Filter by CJ category ID"`
	Page     int    `query:"page"      doc:"Page number (default 1)"        minimum:"0"`
	PageSize int    `query:"page_size" doc:"Results per page (default 20)"  minimum:"0" maximum:"200"`
}

// GetProductInput identifies a product by pid.
type GetProductInput struct {
	Pid string `path:"pid" doc:"CJ product ID"`
}

// ListVariantsInput identifies a product whose variants are requested.
type ListVariantsInput struct {
	Pid     string `path:"pid"      doc:"CJ product ID"`
	Country string `query:"country" doc:"Override the configured inventory country filter"`
}

// ListReviewsInput pages through a product's reviews.
type ListReviewsInput struct {
	Pid      string `path:"pid"       doc:"CJ product ID"`
	Score    int    `query:"score"    doc:"Filter by review score"        minimum:"0" maximum:"5"`
	Page     int    `query:"page"     doc:"Page number (default 1)"       minimum:"0"`
	PageSize int    `query:"page_size" doc:"Results per page (default 20)" minimum:"0" maximum:"200"`
}

// --- Handlers ---

// ListCategories returns the CJ product category tree.
func (h *ProductsHandler) ListCategories(
	ctx context.Context,
	_ *struct{},
) (*VendorOutput, error) {
	env, err := h.api.Categories(ctx)
	if err != nil {
		return nil, vendorError(err)
	}
	return vendorOutput(env), nil
}

// ListProducts pages through the catalogue with optional filters.
func (h *ProductsHandler) ListProducts(
	ctx context.Context,
	input *ListProductsInput,
) (*VendorOutput, error) {
	pageSize := input.PageSize
	if pageSize > 0 && pageSize < minPageSize {
		pageSize = minPageSize
	}

	env, err := h.api.ProductList(ctx, cj.ProductListParams{
		PageNum:    input.Page,
		PageSize:   pageSize,
		CategoryID: input.Category,
		Keywords:   input.Keywords,
	})
	if err != nil {
		return nil, vendorError(err)
	}
	return vendorOutput(env), nil
}

// GetProduct returns the details of a single product.
func (h *ProductsHandler) GetProduct(
	ctx context.Context,
	input *GetProductInput,
) (*VendorOutput, error) {
	env, err := h.api.ProductQuery(ctx, cj.ProductQueryParams{Pid: input.Pid})
	if err != nil {
		return nil, vendorError(err)
	}
	return vendorOutput(env), nil
}

// ListVariants returns a product's variants, filtered to the configured
// destination country unless overridden.
func (h *ProductsHandler) ListVariants(
	ctx context.Context,
	input *ListVariantsInput,
) (*VendorOutput, error) {
	country := input.Country
	if country == "" {
		country = h.variantCountry
	}

	env, err := h.api.VariantQuery(ctx, cj.VariantQueryParams{
		Pid:         input.Pid,
		CountryCode: country,
	})
	if err != nil {
		return nil, vendorError(err)
	}
	return vendorOutput(env), nil
}

// ListReviews pages through a product's reviews.
func (h *ProductsHandler) ListReviews(
	ctx context.Context,
	input *ListReviewsInput,
) (*VendorOutput, error) {
	params := cj.ReviewParams{
		Pid:      input.Pid,
		PageNum:  input.Page,
		PageSize: input.PageSize,
	}
	if input.Score > 0 {
		score := input.Score
		params.Score = &score
	}

	env, err := h.api.ProductReviews(ctx, params)
	if err != nil {
		return nil, vendorError(err)
	}
	return vendorOutput(env), nil
}

// RegisterProductRoutes registers the product catalogue endpoints with the
// Huma API.
func RegisterProductRoutes(api huma.API, h *ProductsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories",
		Summary:     "List product categories",
		Description: "Returns the full CJ product category tree.",
		Tags:        []string{"products"},
	}, h.ListCategories)

	huma.Register(api, huma.Operation{
		OperationID: "list-products",
		Method:      http.MethodGet,
		Path:        "/api/v1/products",
		Summary:     "Search products",
		Description: "Pages through the CJ catalogue with optional keyword and category filters.",
		Tags:        []string{"products"},
	}, h.ListProducts)

	huma.Register(api, huma.Operation{
		OperationID: "get-product",
		Method:      http.MethodGet,
		Path:        "/api/v1/products/{pid}",
		Summary:     "Get product details",
		Tags:        []string{"products"},
		Errors:      []int{http.StatusBadRequest},
	}, h.GetProduct)

	huma.Register(api, huma.Operation{
		OperationID: "list-product-variants",
		Method:      http.MethodGet,
		Path:        "/api/v1/products/{pid}/variants",
		Summary:     "List product variants",
		Description: "Returns a product's variants, filtered to the configured destination country.",
		Tags:        []string{"products"},
		Errors:      []int{http.StatusBadRequest},
	}, h.ListVariants)

	huma.Register(api, huma.Operation{
		OperationID: "list-product-reviews",
		Method:      http.MethodGet,
		Path:        "/api/v1/products/{pid}/reviews",
		Summary:     "List product reviews",
		Tags:        []string{"products"},
	}, h.ListReviews)
}
