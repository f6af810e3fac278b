package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techhaven/storefront/internal/models"
)

func numberedProducts(n int) []models.Product {
	products := make([]models.Product, n)
	for i := range products {
		products[i] = models.Product{ID: models.IDFromInt(i + 1)}
	}
	return products
}

func TestPaginateSecondPageOfTwentyFive(t *testing.T) {
	items, hasMore := Paginate(numberedProducts(25), 2, 20)

	require.Len(t, items, 5)
	assert.Equal(t, models.ID("21"), items[0].ID)
	assert.Equal(t, models.ID("25"), items[4].ID)
	assert.False(t, hasMore)
}

func TestPaginateFirstPageHasMore(t *testing.T) {
	items, hasMore := Paginate(numberedProducts(25), 1, 20)

	require.Len(t, items, 20)
	assert.True(t, hasMore)
}

func TestPaginateBeyondLastPageIsEmpty(t *testing.T) {
	items, hasMore := Paginate(numberedProducts(25), 7, 20)

	assert.Empty(t, items)
	assert.False(t, hasMore)
}

func TestPaginateDefaults(t *testing.T) {
	// Non-positive page and limit fall back to page 1 and the default
	// page size.
	items, _ := Paginate(numberedProducts(50), 0, 0)

	require.Len(t, items, DefaultPageLimit)
	assert.Equal(t, models.ID("1"), items[0].ID)
}

func TestPaginateEmptyInput(t *testing.T) {
	items, hasMore := Paginate(nil, 1, 20)
	assert.Empty(t, items)
	assert.False(t, hasMore)
}

func TestPaginateReconstructsWholeList(t *testing.T) {
	products := numberedProducts(47)
	const limit = 10

	var rebuilt []models.Product
	for page := 1; ; page++ {
		items, hasMore := Paginate(products, page, limit)
		rebuilt = append(rebuilt, items...)
		if !hasMore {
			break
		}
	}

	require.Len(t, rebuilt, len(products))
	for i := range products {
		assert.Equal(t, products[i].ID, rebuilt[i].ID)
	}
}
