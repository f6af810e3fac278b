package filter

import "github.com/techhaven/storefront/internal/models"

// DefaultPageLimit is the page size used when the specification does not
// set one.
const DefaultPageLimit = 20

// Paginate returns the 1-based page slice [(page-1)*limit, page*limit) of
// products and whether further pages exist. Non-positive page and limit
// values fall back to 1 and DefaultPageLimit. A page beyond the end yields
// an empty slice, not an error.
func Paginate(products []models.Product, page, limit int) ([]models.Product, bool) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}

	start := (page - 1) * limit
	if start >= len(products) {
		return []models.Product{}, false
	}
	end := start + limit
	if end > len(products) {
		end = len(products)
	}
	return products[start:end], end < len(products)
}
