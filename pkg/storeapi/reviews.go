package storeapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/techhaven/storefront/internal/models"
)

// ListReviews fetches the reviews belonging to a product.
func (c *Client) ListReviews(ctx context.Context, productID models.ID) ([]models.Review, error) {
	params := url.Values{"productId": {productID.String()}}
	var reviews []models.Review
	if err := c.doRequest(ctx, http.MethodGet, "/reviews", params, nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// CreateReview posts a new review.
func (c *Client) CreateReview(ctx context.Context, review models.Review) (*models.Review, error) {
	var created models.Review
	if err := c.doRequest(ctx, http.MethodPost, "/reviews", nil, review, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateReview replaces the review with the given id.
func (c *Client) UpdateReview(ctx context.Context, id models.ID, review models.Review) (*models.Review, error) {
	var updated models.Review
	if err := c.doRequest(ctx, http.MethodPut, "/reviews/"+url.PathEscape(id.String()), nil, review, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteReview removes the review with the given id.
func (c *Client) DeleteReview(ctx context.Context, id models.ID) error {
	return c.doRequest(ctx, http.MethodDelete, "/reviews/"+url.PathEscape(id.String()), nil, nil, nil)
}
