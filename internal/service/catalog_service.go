package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/techhaven/storefront/internal/cache"
	"github.com/techhaven/storefront/internal/filter"
	"github.com/techhaven/storefront/internal/models"
	"github.com/techhaven/storefront/internal/repository"
)

// Cache key prefixes per resource. Invalidation after writes targets these.
const (
	keyProducts   = "products"
	keyCategories = "categories"
	keyReviews    = "reviews"
)

// Page is a filtered, sorted and paginated product listing. Items holds the
// requested page slice while TotalCount counts the whole filtered set, so
// consumers can render page counts.
type Page struct {
	Items      []models.Product
	TotalCount int
	Page       int
	Limit      int
	HasMore    bool
}

// CatalogService provides the read and write operations of the storefront
// catalog. Reads go through the query cache; listings are derived by the
// filter engine from the cached full collection.
type CatalogService struct {
	products   *repository.ProductRepository
	categories *repository.CategoryRepository
	reviews    *repository.ReviewRepository
	cache      *cache.QueryCache
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(
	products *repository.ProductRepository,
	categories *repository.CategoryRepository,
	reviews *repository.ReviewRepository,
	qc *cache.QueryCache,
) *CatalogService {
	return &CatalogService{
		products:   products,
		categories: categories,
		reviews:    reviews,
		cache:      qc,
	}
}

// Products returns the product listing for spec. The filtered and sorted
// (but unpaginated) result is cached under the structural key of the
// specification; pagination is applied per call so page changes never
// trigger a refetch.
func (s *CatalogService) Products(ctx context.Context, spec models.FilterSpecification) (Page, error) {
	// Page and limit do not affect the cached value.
	keySpec := spec
	keySpec.Page = 0
	keySpec.Limit = 0

	class := cache.ClassList
	if spec.Search != "" {
		class = cache.ClassSearch
	}

	filtered, err := cache.Fetch(ctx, s.cache, class, cache.Key(keyProducts+":list", keySpec),
		func(ctx context.Context) ([]models.Product, error) {
			all, err := s.products.GetAll(ctx)
			if err != nil {
				return nil, err
			}
			return filter.Apply(all, spec), nil
		})
	if err != nil {
		return Page{}, err
	}

	page, limit := spec.Page, spec.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = filter.DefaultPageLimit
	}
	items, hasMore := filter.Paginate(filtered, page, limit)

	return Page{
		Items:      items,
		TotalCount: len(filtered),
		Page:       page,
		Limit:      limit,
		HasMore:    hasMore,
	}, nil
}

// Product returns a single product by id, or nil when it does not exist.
func (s *CatalogService) Product(ctx context.Context, id models.ID) (*models.Product, error) {
	return cache.Fetch(ctx, s.cache, cache.ClassDetail, cache.Key(keyProducts+":detail", id),
		func(ctx context.Context) (*models.Product, error) {
			return s.products.GetByID(ctx, id)
		})
}

// ByCategory returns the products of a category.
func (s *CatalogService) ByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return cache.Fetch(ctx, s.cache, cache.ClassList, cache.Key(keyProducts+":list", map[string]string{"category": category}),
		func(ctx context.Context) ([]models.Product, error) {
			return s.products.GetByCategory(ctx, category)
		})
}

// Featured returns the featured products.
func (s *CatalogService) Featured(ctx context.Context) ([]models.Product, error) {
	return cache.Fetch(ctx, s.cache, cache.ClassList, cache.Key(keyProducts+":list", map[string]bool{"featured": true}),
		func(ctx context.Context) ([]models.Product, error) {
			return s.products.GetFeatured(ctx)
		})
}

// BestSelling returns the best-seller products.
func (s *CatalogService) BestSelling(ctx context.Context) ([]models.Product, error) {
	return cache.Fetch(ctx, s.cache, cache.ClassList, cache.Key(keyProducts+":list", map[string]bool{"isBestSeller": true}),
		func(ctx context.Context) ([]models.Product, error) {
			return s.products.GetBestSelling(ctx)
		})
}

// NewArrivals returns the products flagged as new.
func (s *CatalogService) NewArrivals(ctx context.Context) ([]models.Product, error) {
	return cache.Fetch(ctx, s.cache, cache.ClassList, cache.Key(keyProducts+":list", map[string]bool{"isNew": true}),
		func(ctx context.Context) ([]models.Product, error) {
			return s.products.GetNewArrivals(ctx)
		})
}

// TopRated returns products rated at or above the top-rated floor.
func (s *CatalogService) TopRated(ctx context.Context) ([]models.Product, error) {
	return cache.Fetch(ctx, s.cache, cache.ClassList, cache.Key(keyProducts+":list", map[string]float64{"minRating": repository.TopRatedMinimum}),
		func(ctx context.Context) ([]models.Product, error) {
			return s.products.GetTopRated(ctx)
		})
}

// Search returns products matching the query. Search results use the short
// freshness window.
func (s *CatalogService) Search(ctx context.Context, query string) ([]models.Product, error) {
	return cache.Fetch(ctx, s.cache, cache.ClassSearch, cache.Key(keyProducts+":list", map[string]string{"search": query}),
		func(ctx context.Context) ([]models.Product, error) {
			return s.products.Search(ctx, query)
		})
}

// CreateProduct adds a product and invalidates product listings.
func (s *CatalogService) CreateProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	created, err := cache.MutateWithResult(ctx, s.cache, func(ctx context.Context) (*models.Product, error) {
		return s.products.Create(ctx, product)
	}, keyProducts)
	if err != nil {
		return nil, err
	}
	log.Info().Str("product_id", created.ID.String()).Msg("product created")
	return created, nil
}

// UpdateProduct applies a partial update and invalidates product queries.
func (s *CatalogService) UpdateProduct(ctx context.Context, id models.ID, patch map[string]any) (*models.Product, error) {
	return cache.MutateWithResult(ctx, s.cache, func(ctx context.Context) (*models.Product, error) {
		return s.products.Update(ctx, id, patch)
	}, keyProducts)
}

// DeleteProduct removes a product, drops its detail entry and invalidates
// product listings.
func (s *CatalogService) DeleteProduct(ctx context.Context, id models.ID) error {
	err := s.cache.Mutate(ctx, func(ctx context.Context) error {
		return s.products.Delete(ctx, id)
	}, keyProducts)
	if err != nil {
		return err
	}
	s.cache.Remove(cache.Key(keyProducts+":detail", id))
	return nil
}

// OnReconnect propagates a network-reconnect signal to the cache.
func (s *CatalogService) OnReconnect() {
	s.cache.OnReconnect()
}
