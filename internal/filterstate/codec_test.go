package filterstate

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techhaven/storefront/internal/models"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	spec := models.FilterSpecification{
		Category:     "Keyboards",
		Brand:        "Keytron",
		Search:       "mechanical",
		MinPrice:     models.Int(5000),
		MaxPrice:     models.Int(20000),
		MinRating:    models.Float(4.5),
		Availability: models.AvailabilityInStock,
		Shipping:     models.ShippingFree,
		Features:     []string{"hot-swap", "rgb"},
		Tags:         []string{"gaming"},
		IsNew:        models.Bool(true),
		Featured:     models.Bool(false),
		SortBy:       models.SortPriceAsc,
		Page:         3,
		Limit:        12,
	}

	assert.Equal(t, spec, Decode(Encode(spec)))
}

func TestEncodeOmitsEmptyAndDefaults(t *testing.T) {
	params := Encode(models.FilterSpecification{})
	assert.Empty(t, params)

	// Page 1 is the default and never written.
	params = Encode(models.FilterSpecification{Page: 1})
	assert.Empty(t, params)
}

func TestEncodeOmitsAllSentinel(t *testing.T) {
	params := Encode(models.FilterSpecification{
		Category:     "all",
		Brand:        "all",
		Availability: models.AvailabilityAll,
		Shipping:     models.ShippingAll,
	})
	assert.Empty(t, params)
}

func TestEncodeKeepsAllAsSearchTerm(t *testing.T) {
	// "all" is a sentinel for selection dimensions but a legitimate search
	// query.
	params := Encode(models.FilterSpecification{Search: "all"})
	assert.Equal(t, "all", params.Get("search"))
}

func TestEncodeTriStateBooleans(t *testing.T) {
	params := Encode(models.FilterSpecification{
		IsNew:    models.Bool(true),
		Featured: models.Bool(false),
	})

	assert.Equal(t, "true", params.Get("isNew"))
	assert.Equal(t, "false", params.Get("featured"))
	// No preference: the key is absent entirely.
	assert.False(t, params.Has("isBestSeller"))
}

func TestDecodeTriStateBooleans(t *testing.T) {
	spec := Decode(url.Values{"featured": {"false"}, "isNew": {"true"}})

	require.NotNil(t, spec.Featured)
	assert.False(t, *spec.Featured)
	require.NotNil(t, spec.IsNew)
	assert.True(t, *spec.IsNew)
	assert.Nil(t, spec.IsBestSeller)

	// Anything but the two literals means no preference.
	assert.Nil(t, Decode(url.Values{"featured": {"1"}}).Featured)
	assert.Nil(t, Decode(url.Values{"featured": {"yes"}}).Featured)
}

func TestDecodeToleratesInvalidNumerics(t *testing.T) {
	spec := Decode(url.Values{
		"minPrice":  {"cheap"},
		"maxPrice":  {""},
		"minRating": {"four-ish"},
		"page":      {"-2"},
		"limit":     {"NaN"},
	})

	assert.Nil(t, spec.MinPrice)
	assert.Nil(t, spec.MaxPrice)
	assert.Nil(t, spec.MinRating)
	assert.Zero(t, spec.Page)
	assert.Zero(t, spec.Limit)
}

func TestDecodeDropsUnknownEnumValues(t *testing.T) {
	spec := Decode(url.Values{
		"availability": {"backordered"},
		"shipping":     {"overnight"},
		"sortBy":       {"price-sideways"},
	})

	assert.Empty(t, spec.Availability)
	assert.Empty(t, spec.Shipping)
	assert.Empty(t, spec.SortBy)
}

func TestDecodeCommaLists(t *testing.T) {
	spec := Decode(url.Values{"features": {"hot-swap,rgb"}, "tags": {"gaming"}})

	assert.Equal(t, []string{"hot-swap", "rgb"}, spec.Features)
	assert.Equal(t, []string{"gaming"}, spec.Tags)

	// Stray empty segments disappear.
	spec = Decode(url.Values{"features": {",hot-swap,,"}})
	assert.Equal(t, []string{"hot-swap"}, spec.Features)
	assert.Nil(t, Decode(url.Values{"features": {","}}).Features)
}
