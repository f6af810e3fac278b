package storeapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techhaven/storefront/internal/models"
)

func TestListProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":7,"name":"Numeric ID","price":100},{"id":"abc","name":"String ID","price":200}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	products, err := client.ListProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 2)
	// Numeric and string ids both normalize to strings.
	assert.Equal(t, models.ID("7"), products[0].ID)
	assert.Equal(t, models.ID("abc"), products[1].ID)
}

func TestListProductsWhereSendsQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.ListProductsWhere(context.Background(), map[string][]string{"category": {"Keyboards"}})

	require.NoError(t, err)
	assert.Equal(t, "category=Keyboards", gotQuery)
}

func TestNon2xxBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone fishing", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.ListProducts(context.Background())

	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
	assert.Equal(t, "Service Unavailable", apiErr.StatusText)
}

func TestTransportFailureIsStatusZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewClient(srv.URL)
	_, err := client.ListProducts(context.Background())

	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, 0, apiErr.Status)
	assert.Equal(t, "Network Error", apiErr.StatusText)
}

func TestGetProductNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.GetProduct(context.Background(), "42")

	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsRetryable(err))
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{0, true},    // transport failure
		{400, false}, // client errors are permanent
		{404, false},
		{429, false},
		{499, false},
		{500, true},
		{503, true},
	}
	for _, tc := range tests {
		err := &APIError{Status: tc.status}
		assert.Equal(t, tc.want, IsRetryable(err), "status %d", tc.status)
	}
}

func TestCreateAndDeleteProduct(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		switch r.Method {
		case http.MethodPost:
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			_, _ = w.Write([]byte(`{"id":"100","name":"Created"}`))
		case http.MethodDelete:
			_, _ = w.Write([]byte(`{}`))
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	created, err := client.CreateProduct(context.Background(), models.Product{Name: "Created"})
	require.NoError(t, err)
	assert.Equal(t, models.ID("100"), created.ID)
	assert.Equal(t, http.MethodPost, gotMethod)

	require.NoError(t, client.DeleteProduct(context.Background(), "100"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/products/100", gotPath)
}
