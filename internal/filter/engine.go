// Package filter implements the product filtering, sorting and pagination
// pipeline as pure functions over an in-memory product collection. It is the
// single canonical implementation of the listing semantics; every consumer
// (repositories, services, controllers) derives listings through it.
package filter

import (
	"strings"

	"github.com/techhaven/storefront/internal/models"
)

// Apply returns the subset of products matching spec, ordered according to
// spec.SortBy. The result is unpaginated so callers retain the total
// filtered count; use Paginate for the page slice.
//
// Dimensions combine with AND; the multi-value dimensions (Features, Tags)
// match when ANY requested value matches. Malformed or "all" values disable
// the dimension instead of failing. The input slice is never mutated.
func Apply(products []models.Product, spec models.FilterSpecification) []models.Product {
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if matches(p, spec) {
			filtered = append(filtered, p)
		}
	}

	if spec.SortBy != "" {
		Sort(filtered, spec.SortBy)
	}
	return filtered
}

func matches(p models.Product, spec models.FilterSpecification) bool {
	if spec.Category != "" && spec.Category != "all" &&
		!strings.EqualFold(p.Category, spec.Category) {
		return false
	}
	if spec.Brand != "" && spec.Brand != "all" &&
		!strings.EqualFold(p.Brand, spec.Brand) {
		return false
	}
	if spec.Search != "" && !matchesSearch(p, spec.Search) {
		return false
	}
	if spec.MinPrice != nil && p.Price < *spec.MinPrice {
		return false
	}
	if spec.MaxPrice != nil && p.Price > *spec.MaxPrice {
		return false
	}
	if spec.MinRating != nil && p.Rating < *spec.MinRating {
		return false
	}
	if spec.Availability != "" && spec.Availability != models.AvailabilityAll &&
		p.Availability != spec.Availability {
		return false
	}
	if spec.Shipping != "" && spec.Shipping != models.ShippingAll &&
		p.Shipping != spec.Shipping {
		return false
	}
	if len(spec.Features) > 0 && !anySubstring(spec.Features, p.Features) {
		return false
	}
	if len(spec.Tags) > 0 && !anySubstring(spec.Tags, p.Tags) {
		return false
	}
	if spec.IsNew != nil && p.IsNew != *spec.IsNew {
		return false
	}
	if spec.IsBestSeller != nil && p.IsBestSeller != *spec.IsBestSeller {
		return false
	}
	if spec.Featured != nil && p.Featured != *spec.Featured {
		return false
	}
	return true
}

// matchesSearch reports whether the search term appears in the product name,
// description or any tag, case-insensitive.
func matchesSearch(p models.Product, term string) bool {
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(p.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), term) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// anySubstring reports whether any wanted value is a case-insensitive
// substring of any of the product's own values.
func anySubstring(wanted, own []string) bool {
	for _, w := range wanted {
		lw := strings.ToLower(w)
		for _, o := range own {
			if strings.Contains(strings.ToLower(o), lw) {
				return true
			}
		}
	}
	return false
}
