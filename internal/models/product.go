package models

// Availability enumerates the stock states exposed by the store.
type Availability string

const (
	AvailabilityInStock    Availability = "in-stock"
	AvailabilityOutOfStock Availability = "out-of-stock"
	AvailabilityAll        Availability = "all"
)

// Shipping enumerates the shipping options exposed by the store.
type Shipping string

const (
	ShippingFree Shipping = "free"
	ShippingPaid Shipping = "paid"
	ShippingAll  Shipping = "all"
)

// Product represents a catalog item as returned by the remote store.
// Prices are integers in minor currency units. The discount percentage is
// informational only and is not guaranteed consistent with price and
// originalPrice.
type Product struct {
	ID             ID                `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Category       string            `json:"category"`
	Brand          string            `json:"brand,omitempty"`
	Image          string            `json:"image"`
	Tags           []string          `json:"tags,omitempty"`
	Features       []string          `json:"features"`
	Price          int               `json:"price"`
	OriginalPrice  int               `json:"originalPrice"`
	Discount       int               `json:"discount"`
	Availability   Availability      `json:"availability,omitempty"`
	Shipping       Shipping          `json:"shipping,omitempty"`
	Rating         float64           `json:"rating"`
	ReviewCount    int               `json:"reviewCount"`
	Reviews        []Review          `json:"reviews,omitempty"`
	IsNew          bool              `json:"isNew"`
	IsBestSeller   bool              `json:"isBestSeller"`
	Featured       bool              `json:"featured,omitempty"`
	CreatedAt      string            `json:"createdAt,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
}
