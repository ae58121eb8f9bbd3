package domain

// Collection is a named grouping of products in the upstream catalog.
type Collection struct {
	ID          string `json:"id"`
	Handle      string `json:"handle"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Image       *Image `json:"image,omitempty"`
}
