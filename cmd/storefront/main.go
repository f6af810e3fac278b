package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/techhaven/storefront/internal/cache"
	"github.com/techhaven/storefront/internal/config"
	"github.com/techhaven/storefront/internal/filterstate"
	"github.com/techhaven/storefront/internal/models"
	"github.com/techhaven/storefront/internal/repository"
	"github.com/techhaven/storefront/internal/service"
	"github.com/techhaven/storefront/pkg/storeapi"
)

// main is the entrypoint for the storefront catalog CLI. It wires the
// remote store client, the query cache and the filter engine together and
// runs a single catalog query described by flags or a raw query string.
func main() {
	flags := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)

	query := flags.String("query", "", "raw filter query string, e.g. \"category=Keyboards&sortBy=price-asc\"")
	category := flags.String("category", "", "filter by category")
	brand := flags.String("brand", "", "filter by brand")
	search := flags.String("search", "", "free-text search")
	minPrice := flags.Int("min-price", 0, "minimum price (minor units)")
	maxPrice := flags.Int("max-price", 0, "maximum price (minor units)")
	minRating := flags.Float64("min-rating", 0, "minimum rating")
	availability := flags.String("availability", "", "in-stock | out-of-stock | all")
	shipping := flags.String("shipping", "", "free | paid | all")
	features := flags.StringSlice("features", nil, "features to match (any)")
	tags := flags.StringSlice("tags", nil, "tags to match (any)")
	isNew := flags.Bool("new", false, "only new arrivals (use --new=false to exclude them)")
	isBestSeller := flags.Bool("best-seller", false, "only best sellers")
	featured := flags.Bool("featured", false, "only featured products")
	sortBy := flags.String("sort", "", "price-asc | price-desc | rating-desc | newest | popularity | name-asc | name-desc")
	page := flags.Int("page", 0, "1-based page number")
	limit := flags.Int("limit", 0, "page size")

	productID := flags.String("id", "", "fetch a single product by id")
	withReviews := flags.Bool("reviews", false, "include reviews with --id")
	listCategories := flags.Bool("categories", false, "list categories and exit")
	listBrands := flags.Bool("brands", false, "list brands and exit")
	listFeatures := flags.Bool("list-features", false, "list known product features and exit")

	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting storefront catalog client")

	client := storeapi.NewClient(cfg.Store.BaseURL)

	var fallback repository.FallbackSource
	switch {
	case cfg.Store.FallbackFile != "":
		fallback = repository.NewFileSource(cfg.Store.FallbackFile)
	case cfg.Store.FallbackURL != "":
		fallback = repository.NewHTTPSource(cfg.Store.FallbackURL)
	}

	productRepo := repository.NewProductRepository(client, fallback)
	categoryRepo := repository.NewCategoryRepository(client, productRepo)
	reviewRepo := repository.NewReviewRepository(client)

	qc := cache.New(cache.Options{
		ListStaleTime:    cfg.Cache.ListStaleTime,
		DetailStaleTime:  cfg.Cache.DetailStaleTime,
		OptionsStaleTime: cfg.Cache.OptionsStaleTime,
		SearchStaleTime:  cfg.Cache.SearchStaleTime,
		GCTime:           cfg.Cache.GCTime,
		SweepInterval:    cfg.Cache.SweepInterval,
		MaxAttempts:      cfg.Cache.MaxAttempts,
		MutationAttempts: cfg.Cache.MutationAttempts,
		BaseDelay:        cfg.Cache.BaseDelay,
		MaxDelay:         cfg.Cache.MaxDelay,
	})
	defer qc.Close()

	catalog := service.NewCatalogService(productRepo, categoryRepo, reviewRepo, qc)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	switch {
	case *productID != "":
		runDetail(ctx, catalog, models.ID(*productID), *withReviews)
	case *listCategories:
		runCategories(ctx, catalog)
	case *listBrands:
		runStrings(ctx, "brands", catalog.Brands)
	case *listFeatures:
		runStrings(ctx, "features", catalog.Features)
	default:
		params, err := url.ParseQuery(*query)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid --query: %v\n", err)
			os.Exit(2)
		}
		spec := filterstate.Decode(params)
		overrideSpec(&spec, flags,
			*category, *brand, *search, *minPrice, *maxPrice, *minRating,
			*availability, *shipping, *features, *tags,
			*isNew, *isBestSeller, *featured, *sortBy, *page, *limit)
		runListing(ctx, catalog, spec)
	}
}

// overrideSpec applies explicitly set flags on top of the parsed query
// string. pflag's Changed distinguishes --new=false from an absent flag,
// preserving the tri-state boolean filters.
func overrideSpec(
	spec *models.FilterSpecification, flags *pflag.FlagSet,
	category, brand, search string, minPrice, maxPrice int, minRating float64,
	availability, shipping string, features, tags []string,
	isNew, isBestSeller, featured bool, sortBy string, page, limit int,
) {
	if flags.Changed("category") {
		spec.Category = category
	}
	if flags.Changed("brand") {
		spec.Brand = brand
	}
	if flags.Changed("search") {
		spec.Search = search
	}
	if flags.Changed("min-price") {
		spec.MinPrice = models.Int(minPrice)
	}
	if flags.Changed("max-price") {
		spec.MaxPrice = models.Int(maxPrice)
	}
	if flags.Changed("min-rating") {
		spec.MinRating = models.Float(minRating)
	}
	if flags.Changed("availability") {
		spec.Availability = models.Availability(availability)
	}
	if flags.Changed("shipping") {
		spec.Shipping = models.Shipping(shipping)
	}
	if flags.Changed("features") {
		spec.Features = features
	}
	if flags.Changed("tags") {
		spec.Tags = tags
	}
	if flags.Changed("new") {
		spec.IsNew = models.Bool(isNew)
	}
	if flags.Changed("best-seller") {
		spec.IsBestSeller = models.Bool(isBestSeller)
	}
	if flags.Changed("featured") {
		spec.Featured = models.Bool(featured)
	}
	if flags.Changed("sort") {
		spec.SortBy = models.SortBy(sortBy)
	}
	if flags.Changed("page") {
		spec.Page = page
	}
	if flags.Changed("limit") {
		spec.Limit = limit
	}
}

func runListing(ctx context.Context, catalog *service.CatalogService, spec models.FilterSpecification) {
	controller := filterstate.NewController(catalog, nil)
	defer controller.Close()

	controller.Init(ctx, filterstate.Encode(spec))

	state := controller.State()
	if state.Err != nil {
		fmt.Fprintf(os.Stderr, "listing failed: %v\n", state.Err)
		os.Exit(1)
	}

	fmt.Printf("query: %s\n", state.Query)
	fmt.Printf("page %d, %d of %d products (more: %v)\n\n",
		state.CurrentPage, len(state.Products), state.TotalCount, state.HasMore)
	for _, p := range state.Products {
		fmt.Printf("%-8s %-40.40s %-16.16s %8d %5.1f\n",
			p.ID, p.Name, p.Category, p.Price, p.Rating)
	}
}

func runDetail(ctx context.Context, catalog *service.CatalogService, id models.ID, withReviews bool) {
	product, err := catalog.Product(ctx, id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "product fetch failed: %v\n", err)
		os.Exit(1)
	}
	if product == nil {
		fmt.Printf("product %s not found\n", id)
		return
	}
	if withReviews && len(product.Reviews) == 0 {
		reviews, err := catalog.ReviewsFor(ctx, id)
		if err != nil {
			log.Warn().Err(err).Msg("failed to fetch reviews")
		} else {
			product.Reviews = reviews
		}
	}
	printJSON(product)
}

func runCategories(ctx context.Context, catalog *service.CatalogService) {
	categories, err := catalog.Categories(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "categories fetch failed: %v\n", err)
		os.Exit(1)
	}
	printJSON(categories)
}

func runStrings(ctx context.Context, what string, fn func(context.Context) ([]string, error)) {
	values, err := fn(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s fetch failed: %v\n", what, err)
		os.Exit(1)
	}
	for _, v := range values {
		fmt.Println(v)
	}
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

// setupLogger configures zerolog: human-readable console output during
// development, JSON elsewhere.
func setupLogger(env string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}
