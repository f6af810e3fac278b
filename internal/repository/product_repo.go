package repository

import (
	"context"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/techhaven/storefront/internal/filter"
	"github.com/techhaven/storefront/internal/models"
	"github.com/techhaven/storefront/pkg/storeapi"
)

// TopRatedMinimum is the rating floor for the top-rated listing.
const TopRatedMinimum = 4.8

// ProductRepository translates domain-level product reads and writes into
// calls against the remote store. Every server-side filtered read degrades
// to fetching the full collection and applying the equivalent predicate
// client-side; the full list itself degrades to the local fallback source.
type ProductRepository struct {
	api      *storeapi.Client
	fallback FallbackSource
}

// NewProductRepository creates a new ProductRepository. fallback may be nil,
// in which case GetAll surfaces remote errors directly.
func NewProductRepository(api *storeapi.Client, fallback FallbackSource) *ProductRepository {
	return &ProductRepository{api: api, fallback: fallback}
}

// GetAll returns the full product collection. When the remote fetch fails it
// attempts one fallback fetch from the secondary source before surfacing the
// original error.
func (r *ProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	products, err := r.api.ListProducts(ctx)
	if err == nil {
		return products, nil
	}
	if r.fallback == nil {
		return nil, err
	}

	fallbackProducts, fbErr := r.fallback.FetchProducts(ctx)
	if fbErr != nil {
		log.Warn().Err(fbErr).Msg("fallback source also failed")
		return nil, err
	}
	log.Warn().Err(err).Msg("remote store unavailable, serving fallback data")
	return fallbackProducts, nil
}

// GetByID returns the product with the given id, or (nil, nil) when no such
// product exists. When the direct fetch fails it scans the full collection,
// comparing stringified ids so numeric and string ids match.
func (r *ProductRepository) GetByID(ctx context.Context, id models.ID) (*models.Product, error) {
	product, err := r.api.GetProduct(ctx, id)
	if err == nil {
		return product, nil
	}

	products, listErr := r.GetAll(ctx)
	if listErr != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID.Equal(id) {
			return &products[i], nil
		}
	}
	return nil, nil
}

// GetByCategory returns products in the given category (case-insensitive).
func (r *ProductRepository) GetByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return r.filteredList(ctx,
		url.Values{"category": {category}},
		models.FilterSpecification{Category: category},
	)
}

// GetFeatured returns products flagged as featured.
func (r *ProductRepository) GetFeatured(ctx context.Context) ([]models.Product, error) {
	return r.filteredList(ctx,
		url.Values{"featured": {"true"}},
		models.FilterSpecification{Featured: models.Bool(true)},
	)
}

// GetBestSelling returns products flagged as best sellers.
func (r *ProductRepository) GetBestSelling(ctx context.Context) ([]models.Product, error) {
	return r.filteredList(ctx,
		url.Values{"isBestSeller": {"true"}},
		models.FilterSpecification{IsBestSeller: models.Bool(true)},
	)
}

// GetNewArrivals returns products flagged as new.
func (r *ProductRepository) GetNewArrivals(ctx context.Context) ([]models.Product, error) {
	return r.filteredList(ctx,
		url.Values{"isNew": {"true"}},
		models.FilterSpecification{IsNew: models.Bool(true)},
	)
}

// GetTopRated returns products rated at or above TopRatedMinimum.
func (r *ProductRepository) GetTopRated(ctx context.Context) ([]models.Product, error) {
	return r.filteredList(ctx,
		url.Values{"rating_gte": {"4.8"}},
		models.FilterSpecification{MinRating: models.Float(TopRatedMinimum)},
	)
}

// Search returns products whose name, description or any tag contains the
// query, case-insensitive.
func (r *ProductRepository) Search(ctx context.Context, query string) ([]models.Product, error) {
	return r.filteredList(ctx,
		url.Values{"search": {query}},
		models.FilterSpecification{Search: query},
	)
}

// filteredList attempts a server-side filtered request and degrades to the
// full collection with the equivalent client-side predicate.
func (r *ProductRepository) filteredList(ctx context.Context, params url.Values, spec models.FilterSpecification) ([]models.Product, error) {
	products, err := r.api.ListProductsWhere(ctx, params)
	if err == nil {
		return products, nil
	}

	all, listErr := r.GetAll(ctx)
	if listErr != nil {
		return nil, err
	}
	return filter.Apply(all, spec), nil
}

// Create adds a new product. Write failures propagate without fallback.
func (r *ProductRepository) Create(ctx context.Context, product models.Product) (*models.Product, error) {
	return r.api.CreateProduct(ctx, product)
}

// Update applies a partial update to the product with the given id.
func (r *ProductRepository) Update(ctx context.Context, id models.ID, patch map[string]any) (*models.Product, error) {
	return r.api.UpdateProduct(ctx, id, patch)
}

// Delete removes the product with the given id.
func (r *ProductRepository) Delete(ctx context.Context, id models.ID) error {
	return r.api.DeleteProduct(ctx, id)
}
