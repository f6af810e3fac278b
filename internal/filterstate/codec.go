// Package filterstate keeps a FilterSpecification in sync with its
// query-string form and drives listing fetches on behalf of a presentation
// consumer. The query string is the sole persisted representation of the
// filter state.
package filterstate

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/techhaven/storefront/internal/models"
)

// Encode serializes spec into query parameters. Only defined, non-empty,
// non-default fields are written. Multi-value fields are comma-joined.
// The tri-state booleans are written explicitly as true or false when set,
// so "exclude featured items" (featured=false) survives a round trip and
// remains distinct from "no preference" (key absent).
func Encode(spec models.FilterSpecification) url.Values {
	params := url.Values{}

	setString(params, "category", spec.Category)
	setString(params, "brand", spec.Brand)
	if spec.Search != "" {
		params.Set("search", spec.Search)
	}

	if spec.MinPrice != nil {
		params.Set("minPrice", strconv.Itoa(*spec.MinPrice))
	}
	if spec.MaxPrice != nil {
		params.Set("maxPrice", strconv.Itoa(*spec.MaxPrice))
	}
	if spec.MinRating != nil {
		params.Set("minRating", strconv.FormatFloat(*spec.MinRating, 'f', -1, 64))
	}

	setString(params, "availability", string(spec.Availability))
	setString(params, "shipping", string(spec.Shipping))

	if len(spec.Features) > 0 {
		params.Set("features", strings.Join(spec.Features, ","))
	}
	if len(spec.Tags) > 0 {
		params.Set("tags", strings.Join(spec.Tags, ","))
	}

	setBool(params, "isNew", spec.IsNew)
	setBool(params, "isBestSeller", spec.IsBestSeller)
	setBool(params, "featured", spec.Featured)

	if spec.SortBy != "" {
		params.Set("sortBy", string(spec.SortBy))
	}
	if spec.Page > 1 {
		params.Set("page", strconv.Itoa(spec.Page))
	}
	if spec.Limit > 0 {
		params.Set("limit", strconv.Itoa(spec.Limit))
	}

	return params
}

// Decode is the exact inverse of Encode. Absent keys leave the field unset
// (dimension disabled); numeric fields tolerate invalid input by staying
// unset rather than becoming zero; unknown enum values are dropped.
func Decode(params url.Values) models.FilterSpecification {
	var spec models.FilterSpecification

	spec.Category = params.Get("category")
	spec.Brand = params.Get("brand")
	spec.Search = params.Get("search")

	if v, err := strconv.Atoi(params.Get("minPrice")); err == nil {
		spec.MinPrice = models.Int(v)
	}
	if v, err := strconv.Atoi(params.Get("maxPrice")); err == nil {
		spec.MaxPrice = models.Int(v)
	}
	if v, err := strconv.ParseFloat(params.Get("minRating"), 64); err == nil {
		spec.MinRating = models.Float(v)
	}

	switch a := models.Availability(params.Get("availability")); a {
	case models.AvailabilityInStock, models.AvailabilityOutOfStock, models.AvailabilityAll:
		spec.Availability = a
	}
	switch sh := models.Shipping(params.Get("shipping")); sh {
	case models.ShippingFree, models.ShippingPaid, models.ShippingAll:
		spec.Shipping = sh
	}

	spec.Features = splitList(params.Get("features"))
	spec.Tags = splitList(params.Get("tags"))

	spec.IsNew = parseBool(params.Get("isNew"))
	spec.IsBestSeller = parseBool(params.Get("isBestSeller"))
	spec.Featured = parseBool(params.Get("featured"))

	if by := models.SortBy(params.Get("sortBy")); models.ValidSortBy(by) {
		spec.SortBy = by
	}

	if v, err := strconv.Atoi(params.Get("page")); err == nil && v > 0 {
		spec.Page = v
	}
	if v, err := strconv.Atoi(params.Get("limit")); err == nil && v > 0 {
		spec.Limit = v
	}

	return spec
}

func setString(params url.Values, key, value string) {
	if value != "" && value != "all" {
		params.Set(key, value)
	}
}

func setBool(params url.Values, key string, value *bool) {
	if value != nil {
		params.Set(key, strconv.FormatBool(*value))
	}
}

func parseBool(raw string) *bool {
	switch raw {
	case "true":
		return models.Bool(true)
	case "false":
		return models.Bool(false)
	}
	return nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	values := parts[:0]
	for _, p := range parts {
		if p != "" {
			values = append(values, p)
		}
	}
	if len(values) == 0 {
		return nil
	}
	return values
}
