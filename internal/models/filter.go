package models

// SortBy enumerates the supported product orderings.
type SortBy string

const (
	SortPriceAsc   SortBy = "price-asc"
	SortPriceDesc  SortBy = "price-desc"
	SortRatingDesc SortBy = "rating-desc"
	SortNewest     SortBy = "newest"
	SortPopularity SortBy = "popularity"
	SortNameAsc    SortBy = "name-asc"
	SortNameDesc   SortBy = "name-desc"
)

// ValidSortBy reports whether s is a known ordering.
func ValidSortBy(s SortBy) bool {
	switch s {
	case SortPriceAsc, SortPriceDesc, SortRatingDesc, SortNewest,
		SortPopularity, SortNameAsc, SortNameDesc:
		return true
	}
	return false
}

// FilterSpecification captures the active filter, sort and pagination
// parameters for a product listing. It is a transient value object, fully
// reconstructible from its query-string form.
//
// Pointer fields are tri-state: nil means the dimension is not filtered at
// all, which is distinct from filtering on the zero value. Multi-value
// dimensions (Features, Tags) match products that satisfy ANY entry;
// independent dimensions are combined with AND.
type FilterSpecification struct {
	Category     string
	Brand        string
	Search       string
	MinPrice     *int
	MaxPrice     *int
	MinRating    *float64
	Availability Availability
	Shipping     Shipping
	Features     []string
	Tags         []string
	IsNew        *bool
	IsBestSeller *bool
	Featured     *bool
	SortBy       SortBy
	Page         int
	Limit        int
}

// IsZero reports whether no filtering, sorting or pagination is requested.
func (f FilterSpecification) IsZero() bool {
	return f.Category == "" && f.Brand == "" && f.Search == "" &&
		f.MinPrice == nil && f.MaxPrice == nil && f.MinRating == nil &&
		(f.Availability == "" || f.Availability == AvailabilityAll) &&
		(f.Shipping == "" || f.Shipping == ShippingAll) &&
		len(f.Features) == 0 && len(f.Tags) == 0 &&
		f.IsNew == nil && f.IsBestSeller == nil && f.Featured == nil &&
		f.SortBy == "" && f.Page == 0 && f.Limit == 0
}

// Bool returns a pointer suitable for the tri-state boolean fields.
func Bool(v bool) *bool { return &v }

// Int returns a pointer suitable for the optional numeric fields.
func Int(v int) *int { return &v }

// Float returns a pointer suitable for MinRating.
func Float(v float64) *float64 { return &v }
