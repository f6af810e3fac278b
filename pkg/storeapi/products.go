package storeapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/techhaven/storefront/internal/models"
)

// ListProducts fetches the full product collection.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.doRequest(ctx, http.MethodGet, "/products", nil, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListProductsWhere fetches products with server-side filter parameters,
// e.g. {"category": "Keyboards"} or {"featured": "true"}.
func (c *Client) ListProductsWhere(ctx context.Context, params url.Values) ([]models.Product, error) {
	var products []models.Product
	if err := c.doRequest(ctx, http.MethodGet, "/products", params, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single product by id.
func (c *Client) GetProduct(ctx context.Context, id models.ID) (*models.Product, error) {
	var product models.Product
	if err := c.doRequest(ctx, http.MethodGet, "/products/"+url.PathEscape(id.String()), nil, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct creates a new product in the remote store.
func (c *Client) CreateProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	var created models.Product
	if err := c.doRequest(ctx, http.MethodPost, "/products", nil, product, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct replaces the product with the given id. Partial updates
// send only the fields to change; the store merges them.
func (c *Client) UpdateProduct(ctx context.Context, id models.ID, patch map[string]any) (*models.Product, error) {
	var updated models.Product
	if err := c.doRequest(ctx, http.MethodPut, "/products/"+url.PathEscape(id.String()), nil, patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct removes the product with the given id.
func (c *Client) DeleteProduct(ctx context.Context, id models.ID) error {
	return c.doRequest(ctx, http.MethodDelete, "/products/"+url.PathEscape(id.String()), nil, nil, nil)
}
