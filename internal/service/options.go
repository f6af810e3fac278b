package service

import (
	"context"

	"github.com/techhaven/storefront/internal/cache"
	"github.com/techhaven/storefront/internal/models"
)

// Option enumerations backing the filter UI. These derive from the full
// product collection and change rarely, so they use the long freshness
// window.

// Categories returns the category collection (remote, with the derived
// fallback).
func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	return cache.Fetch(ctx, s.cache, cache.ClassOptions, cache.Key(keyCategories+":list", nil),
		func(ctx context.Context) ([]models.Category, error) {
			return s.categories.GetAll(ctx)
		})
}

// Category returns a single category by id.
func (s *CatalogService) Category(ctx context.Context, id models.ID) (*models.Category, error) {
	return cache.Fetch(ctx, s.cache, cache.ClassDetail, cache.Key(keyCategories+":detail", id),
		func(ctx context.Context) (*models.Category, error) {
			return s.categories.GetByID(ctx, id)
		})
}

// CategoryNames returns the distinct product categories in first-seen order.
func (s *CatalogService) CategoryNames(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, keyProducts+":categories", func(p models.Product) []string {
		if p.Category == "" {
			return nil
		}
		return []string{p.Category}
	})
}

// Brands returns the distinct product brands in first-seen order.
func (s *CatalogService) Brands(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, keyProducts+":brands", func(p models.Product) []string {
		if p.Brand == "" {
			return nil
		}
		return []string{p.Brand}
	})
}

// Features returns the distinct product features in first-seen order.
func (s *CatalogService) Features(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, keyProducts+":features", func(p models.Product) []string {
		return p.Features
	})
}

func (s *CatalogService) distinct(ctx context.Context, key string, extract func(models.Product) []string) ([]string, error) {
	return cache.Fetch(ctx, s.cache, cache.ClassOptions, cache.Key(key, nil),
		func(ctx context.Context) ([]string, error) {
			products, err := s.products.GetAll(ctx)
			if err != nil {
				return nil, err
			}
			seen := make(map[string]bool)
			var values []string
			for _, p := range products {
				for _, v := range extract(p) {
					if v != "" && !seen[v] {
						seen[v] = true
						values = append(values, v)
					}
				}
			}
			return values, nil
		})
}
