package repository

import (
	"context"
	"strings"

	"github.com/techhaven/storefront/internal/models"
	"github.com/techhaven/storefront/pkg/storeapi"
)

// CategoryRepository provides reads against the category collection. When
// the remote collection is unavailable, categories are synthesized from the
// distinct categories of the product collection.
type CategoryRepository struct {
	api      *storeapi.Client
	products *ProductRepository
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(api *storeapi.Client, products *ProductRepository) *CategoryRepository {
	return &CategoryRepository{api: api, products: products}
}

// GetAll returns all categories. The fallback derives them from products,
// assigning ordinal ids and lowercased slugs.
func (r *CategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	categories, err := r.api.ListCategories(ctx)
	if err == nil {
		return categories, nil
	}

	products, listErr := r.products.GetAll(ctx)
	if listErr != nil {
		return nil, err
	}

	// First-seen order, mirroring the distinct categories of the product list.
	seen := make(map[string]bool)
	var names []string
	for _, p := range products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			names = append(names, p.Category)
		}
	}

	derived := make([]models.Category, 0, len(names))
	for i, name := range names {
		derived = append(derived, models.Category{
			ID:   models.IDFromInt(i + 1),
			Name: name,
			Slug: strings.ToLower(name),
		})
	}
	return derived, nil
}

// GetByID returns the category with the given id. There is no fallback for
// single-category reads.
func (r *CategoryRepository) GetByID(ctx context.Context, id models.ID) (*models.Category, error) {
	return r.api.GetCategory(ctx, id)
}
