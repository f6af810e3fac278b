package storeapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/techhaven/storefront/internal/models"
)

// ListCategories fetches the full category collection.
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.doRequest(ctx, http.MethodGet, "/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategory fetches a single category by id.
func (c *Client) GetCategory(ctx context.Context, id models.ID) (*models.Category, error) {
	var category models.Category
	if err := c.doRequest(ctx, http.MethodGet, "/categories/"+url.PathEscape(id.String()), nil, nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}
