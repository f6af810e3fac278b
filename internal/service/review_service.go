package service

import (
	"context"

	"github.com/techhaven/storefront/internal/cache"
	"github.com/techhaven/storefront/internal/models"
)

// ReviewsFor returns the reviews of a product.
func (s *CatalogService) ReviewsFor(ctx context.Context, productID models.ID) ([]models.Review, error) {
	return cache.Fetch(ctx, s.cache, cache.ClassList, cache.Key(keyReviews+":list", productID),
		func(ctx context.Context) ([]models.Review, error) {
			return s.reviews.GetByProduct(ctx, productID)
		})
}

// CreateReview posts a review and invalidates review listings.
func (s *CatalogService) CreateReview(ctx context.Context, review models.Review) (*models.Review, error) {
	return cache.MutateWithResult(ctx, s.cache, func(ctx context.Context) (*models.Review, error) {
		return s.reviews.Create(ctx, review)
	}, keyReviews)
}

// UpdateReview replaces a review and invalidates review listings.
func (s *CatalogService) UpdateReview(ctx context.Context, id models.ID, review models.Review) (*models.Review, error) {
	return cache.MutateWithResult(ctx, s.cache, func(ctx context.Context) (*models.Review, error) {
		return s.reviews.Update(ctx, id, review)
	}, keyReviews)
}

// DeleteReview removes a review and invalidates review listings.
func (s *CatalogService) DeleteReview(ctx context.Context, id models.ID) error {
	return s.cache.Mutate(ctx, func(ctx context.Context) error {
		return s.reviews.Delete(ctx, id)
	}, keyReviews)
}
