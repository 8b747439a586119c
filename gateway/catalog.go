package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"storefront/core"
)

// CatalogClient implements core.CatalogAPI against the product endpoints
type CatalogClient struct {
	*BaseClient
}

// NewCatalogClient creates a catalog gateway sharing the given base client
func NewCatalogClient(base *BaseClient) *CatalogClient {
	return &CatalogClient{BaseClient: base}
}

// List fetches one page of products with the applied filters serialized as
// query parameters. Empty filter values are omitted entirely rather than sent
// as empty strings.
func (c *CatalogClient) List(ctx context.Context, query core.PageQuery) (*core.ProductPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(query.Page))
	params.Set("limit", strconv.Itoa(query.Limit))

	filters := query.Filters
	if filters.SortBy == "" {
		filters.SortBy = core.SortByName
	}
	if filters.Order == "" {
		filters.Order = core.SortAsc
	}
	params.Set("sort_by", string(filters.SortBy))
	params.Set("order", string(filters.Order))

	if filters.Search != "" {
		params.Set("search", filters.Search)
	}
	if filters.MinPrice != nil {
		params.Set("min_price", strconv.FormatFloat(*filters.MinPrice, 'f', -1, 64))
	}
	if filters.MaxPrice != nil {
		params.Set("max_price", strconv.FormatFloat(*filters.MaxPrice, 'f', -1, 64))
	}

	var page core.ProductPage
	if err := c.doJSON(ctx, "catalog.list", "GET", "/api/products/?"+params.Encode(), nil, &page); err != nil {
		return nil, err
	}

	if page.Items == nil {
		page.Items = []core.Product{}
	}
	if page.Pages < 1 {
		page.Pages = 1
	}

	return &page, nil
}

// ListAll fetches the full catalog snapshot used by the lookup read model
func (c *CatalogClient) ListAll(ctx context.Context) ([]core.Product, error) {
	var products []core.Product
	if err := c.doJSON(ctx, "catalog.list_all", "GET", "/api/products/all", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Get fetches a single product by ID
func (c *CatalogClient) Get(ctx context.Context, productID string) (*core.Product, error) {
	var product core.Product
	path := fmt.Sprintf("/api/products/%s", url.PathEscape(productID))
	if err := c.doJSON(ctx, "catalog.get", "GET", path, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}
