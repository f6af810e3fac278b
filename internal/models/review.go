package models

// Review is a customer review belonging to exactly one product. Reviews are
// stored normalized in the remote store and reference the product by id.
type Review struct {
	ID        ID      `json:"id,omitempty"`
	ProductID ID      `json:"productId,omitempty"`
	User      string  `json:"user"`
	Rating    float64 `json:"rating"`
	Comment   string  `json:"comment"`
	Date      string  `json:"date"`
	Verified  bool    `json:"verified"`
}

// Category is a product grouping. When the remote categories collection is
// unavailable, categories are synthesized from the distinct product
// categories with ordinal ids and a lowercased slug.
type Category struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}
