package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techhaven/storefront/internal/models"
	"github.com/techhaven/storefront/pkg/storeapi"
)

func fastOptions() Options {
	opts := DefaultOptions()
	opts.BaseDelay = time.Millisecond
	opts.MaxDelay = 5 * time.Millisecond
	return opts
}

func TestKeyIsStructural(t *testing.T) {
	specA := models.FilterSpecification{Category: "Keyboards", MinPrice: models.Int(1000)}
	specB := models.FilterSpecification{Category: "Keyboards", MinPrice: models.Int(1000)}

	assert.Equal(t, Key("products", specA), Key("products", specB))
	assert.NotEqual(t, Key("products", specA), Key("products", models.FilterSpecification{Category: "Mice"}))
	assert.NotEqual(t, Key("products", specA), Key("reviews", specA))
}

func TestKeyNormalizesMapOrder(t *testing.T) {
	// encoding/json sorts map keys, so insertion order must not matter.
	a := map[string]string{"category": "Keyboards", "brand": "Keytron"}
	b := map[string]string{"brand": "Keytron", "category": "Keyboards"}
	assert.Equal(t, Key("products", a), Key("products", b))
}

func TestFetchServesFreshValueWithoutRefetching(t *testing.T) {
	qc := New(fastOptions())
	defer qc.Close()

	calls := 0
	fetch := func() ([]string, error) {
		return Fetch(context.Background(), qc, ClassList, Key("products", models.FilterSpecification{Category: "Keyboards"}),
			func(context.Context) ([]string, error) {
				calls++
				return []string{"a", "b"}, nil
			})
	}

	first, err := fetch()
	require.NoError(t, err)

	// Structurally equal key within the freshness window: no second call.
	second, err := fetch()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestFetchRefetchesAfterStale(t *testing.T) {
	opts := fastOptions()
	opts.ListStaleTime = 20 * time.Millisecond
	qc := New(opts)
	defer qc.Close()

	var calls int
	fetch := func() (int, error) {
		return Fetch(context.Background(), qc, ClassList, "products:list",
			func(context.Context) (int, error) {
				calls++
				return calls, nil
			})
	}

	_, err := fetch()
	require.NoError(t, err)
	time.Sleep(40 * time.Millisecond)
	got, err := fetch()
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, got)
}

func TestFetchDeduplicatesConcurrentCallers(t *testing.T) {
	qc := New(fastOptions())
	defer qc.Close()

	var calls atomic.Int32
	release := make(chan struct{})

	const workers = 8
	var wg sync.WaitGroup
	results := make([]string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := Fetch(context.Background(), qc, ClassList, "products:list",
				func(context.Context) (string, error) {
					calls.Add(1)
					<-release
					return "shared", nil
				})
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Equal(t, "shared", r)
	}
}

func TestFetchRetriesServerErrors(t *testing.T) {
	qc := New(fastOptions())
	defer qc.Close()

	calls := 0
	got, err := Fetch(context.Background(), qc, ClassList, "products:list",
		func(context.Context) (string, error) {
			calls++
			if calls < 4 {
				return "", &storeapi.APIError{Status: 503, StatusText: "Service Unavailable"}
			}
			return "eventually", nil
		})

	require.NoError(t, err)
	assert.Equal(t, 4, calls, "three retries after the initial call")
	assert.Equal(t, "eventually", got)
}

func TestFetchGivesUpAfterMaxAttempts(t *testing.T) {
	qc := New(fastOptions())
	defer qc.Close()

	calls := 0
	_, err := Fetch(context.Background(), qc, ClassList, "products:list",
		func(context.Context) (string, error) {
			calls++
			return "", &storeapi.APIError{Status: 500, StatusText: "Internal Server Error"}
		})

	require.Error(t, err)
	// One initial call plus three retries with increasing delay, then the
	// error surfaces.
	assert.Equal(t, 4, calls)
}

func TestFetchDoesNotRetryClientErrors(t *testing.T) {
	qc := New(fastOptions())
	defer qc.Close()

	calls := 0
	_, err := Fetch(context.Background(), qc, ClassDetail, "products:detail:42",
		func(context.Context) (string, error) {
			calls++
			return "", &storeapi.APIError{Status: 404, StatusText: "Not Found"}
		})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestSweeperEvictsUnusedEntries(t *testing.T) {
	opts := fastOptions()
	opts.GCTime = 10 * time.Millisecond
	opts.SweepInterval = 5 * time.Millisecond
	qc := New(opts)
	defer qc.Close()

	_, err := Fetch(context.Background(), qc, ClassList, "products:list",
		func(context.Context) (string, error) { return "v", nil })
	require.NoError(t, err)
	require.Equal(t, 1, qc.Len())

	assert.Eventually(t, func() bool { return qc.Len() == 0 },
		500*time.Millisecond, 5*time.Millisecond)
}

func TestOnReconnectForcesRefetch(t *testing.T) {
	qc := New(fastOptions())
	defer qc.Close()

	calls := 0
	fetch := func() (int, error) {
		return Fetch(context.Background(), qc, ClassOptions, "products:brands",
			func(context.Context) (int, error) {
				calls++
				return calls, nil
			})
	}

	_, err := fetch()
	require.NoError(t, err)

	qc.OnReconnect()

	got, err := fetch()
	require.NoError(t, err)
	assert.Equal(t, 2, got)
}

func TestInvalidatePrefix(t *testing.T) {
	qc := New(fastOptions())
	defer qc.Close()

	productCalls, reviewCalls := 0, 0
	fetchProducts := func() (int, error) {
		return Fetch(context.Background(), qc, ClassList, "products:list",
			func(context.Context) (int, error) { productCalls++; return productCalls, nil })
	}
	fetchReviews := func() (int, error) {
		return Fetch(context.Background(), qc, ClassList, "reviews:list:1",
			func(context.Context) (int, error) { reviewCalls++; return reviewCalls, nil })
	}

	_, _ = fetchProducts()
	_, _ = fetchReviews()

	qc.Invalidate("products")

	_, _ = fetchProducts()
	_, _ = fetchReviews()

	assert.Equal(t, 2, productCalls, "products entries must refetch")
	assert.Equal(t, 1, reviewCalls, "review entries must stay cached")
}

func TestMutateRetriesOnce(t *testing.T) {
	qc := New(fastOptions())
	defer qc.Close()

	calls := 0
	err := qc.Mutate(context.Background(), func(context.Context) error {
		calls++
		if calls == 1 {
			return &storeapi.APIError{Status: 500, StatusText: "Internal Server Error"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestMutateInvalidatesOnSuccessOnly(t *testing.T) {
	qc := New(fastOptions())
	defer qc.Close()

	listCalls := 0
	fetch := func() (int, error) {
		return Fetch(context.Background(), qc, ClassList, "products:list",
			func(context.Context) (int, error) { listCalls++; return listCalls, nil })
	}
	_, _ = fetch()

	// Failed mutation: cache untouched.
	err := qc.Mutate(context.Background(), func(context.Context) error {
		return &storeapi.APIError{Status: 400, StatusText: "Bad Request"}
	}, "products")
	require.Error(t, err)
	_, _ = fetch()
	assert.Equal(t, 1, listCalls)

	// Successful mutation: listings invalidated.
	require.NoError(t, qc.Mutate(context.Background(), func(context.Context) error { return nil }, "products"))
	_, _ = fetch()
	assert.Equal(t, 2, listCalls)
}
