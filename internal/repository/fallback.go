package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/techhaven/storefront/internal/models"
)

// FallbackSource is a secondary read-only source for the full product
// collection, consulted only when the remote product list fetch fails.
type FallbackSource interface {
	FetchProducts(ctx context.Context) ([]models.Product, error)
}

// FileSource reads the product collection from a local JSON file.
type FileSource struct {
	Path string
}

// NewFileSource creates a FileSource for the given path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// FetchProducts loads and decodes the product array from disk.
func (s *FileSource) FetchProducts(_ context.Context) ([]models.Product, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fallback data: %w", err)
	}
	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to decode fallback data: %w", err)
	}
	return products, nil
}

// HTTPSource fetches the product collection from a single read-only
// endpoint returning a JSON array.
type HTTPSource struct {
	URL        string
	httpClient *http.Client
}

// NewHTTPSource creates an HTTPSource for the given endpoint.
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{
		URL:        url,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// FetchProducts requests and decodes the product array.
func (s *HTTPSource) FetchProducts(ctx context.Context) ([]models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create fallback request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fallback request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fallback request failed: %s", resp.Status)
	}

	var products []models.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode fallback response: %w", err)
	}
	return products, nil
}
