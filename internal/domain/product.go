package domain

// Product is a read-only projection of the upstream catalog, rebuilt on every
// fetch. The cart subsystem only references it through Merchandise.
type Product struct {
	ID               string           `json:"id"`
	Handle           string           `json:"handle"`
	Title            string           `json:"title"`
	Description      string           `json:"description,omitempty"`
	Tags             []string         `json:"tags,omitempty"`
	AvailableForSale bool             `json:"availableForSale"`
	MinPrice         Money            `json:"minPrice"`
	MaxPrice         Money            `json:"maxPrice"`
	FeaturedImage    *Image           `json:"featuredImage,omitempty"`
	Images           []Image          `json:"images,omitempty"`
	Options          []ProductOption  `json:"options,omitempty"`
	Variants         []ProductVariant `json:"variants,omitempty"`
}

// ProductVariant is a purchasable configuration of a product. Its ID is the
// merchandise identifier accepted by cart mutations.
type ProductVariant struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	AvailableForSale bool             `json:"availableForSale"`
	Price            Money            `json:"price"`
	CompareAtPrice   *Money           `json:"compareAtPrice,omitempty"`
	SelectedOptions  []SelectedOption `json:"selectedOptions,omitempty"`
}

type ProductOption struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}
