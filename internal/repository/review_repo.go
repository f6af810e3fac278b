package repository

import (
	"context"

	"github.com/techhaven/storefront/internal/models"
	"github.com/techhaven/storefront/pkg/storeapi"
)

// ReviewRepository provides reads and writes against the review collection.
// Reviews have no local fallback source; failures propagate.
type ReviewRepository struct {
	api *storeapi.Client
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(api *storeapi.Client) *ReviewRepository {
	return &ReviewRepository{api: api}
}

// GetByProduct returns the reviews for the given product.
func (r *ReviewRepository) GetByProduct(ctx context.Context, productID models.ID) ([]models.Review, error) {
	return r.api.ListReviews(ctx, productID)
}

// Create posts a new review.
func (r *ReviewRepository) Create(ctx context.Context, review models.Review) (*models.Review, error) {
	return r.api.CreateReview(ctx, review)
}

// Update replaces the review with the given id.
func (r *ReviewRepository) Update(ctx context.Context, id models.ID, review models.Review) (*models.Review, error) {
	return r.api.UpdateReview(ctx, id, review)
}

// Delete removes the review with the given id.
func (r *ReviewRepository) Delete(ctx context.Context, id models.ID) error {
	return r.api.DeleteReview(ctx, id)
}
