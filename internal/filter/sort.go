package filter

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/techhaven/storefront/internal/models"
)

// createdAtLayouts are the accepted createdAt formats, tried in order.
var createdAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Sort orders products in place according to by. Unknown orderings leave
// the slice untouched. All orderings are stable: equal elements keep their
// relative input order.
func Sort(products []models.Product, by models.SortBy) {
	switch by {
	case models.SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case models.SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case models.SortRatingDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	case models.SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return createdAtTime(products[i]).After(createdAtTime(products[j]))
		})
	case models.SortPopularity:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].ReviewCount > products[j].ReviewCount
		})
	case models.SortNameAsc:
		collator := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(products, func(i, j int) bool {
			return collator.CompareString(products[i].Name, products[j].Name) < 0
		})
	case models.SortNameDesc:
		collator := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(products, func(i, j int) bool {
			return collator.CompareString(products[i].Name, products[j].Name) > 0
		})
	}
}

// createdAtTime parses the product's createdAt timestamp. Missing or
// unparseable values sort as the epoch, i.e. oldest.
func createdAtTime(p models.Product) time.Time {
	if p.CreatedAt == "" {
		return time.Unix(0, 0)
	}
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, p.CreatedAt); err == nil {
			return t
		}
	}
	return time.Unix(0, 0)
}
