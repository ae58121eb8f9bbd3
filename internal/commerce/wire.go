package commerce

import (
	"github.com/shopspring/decimal"

	"storefront-gateway/internal/domain"
)

// Wire types mirror the nested GraphQL schema (edge/node list wrappers).
// reshape* functions flatten them into the local view models.

type connection[T any] struct {
	Edges []struct {
		Node T `json:"node"`
	} `json:"edges"`
}

func (c connection[T]) nodes() []T {
	if len(c.Edges) == 0 {
		return nil
	}
	out := make([]T, 0, len(c.Edges))
	for _, e := range c.Edges {
		out = append(out, e.Node)
	}
	return out
}

type wireMoney struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
}

type wireImage struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

type wireSelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type wireCart struct {
	ID            string `json:"id"`
	CheckoutURL   string `json:"checkoutUrl"`
	TotalQuantity int    `json:"totalQuantity"`
	Cost          struct {
		SubtotalAmount  wireMoney  `json:"subtotalAmount"`
		TotalAmount     wireMoney  `json:"totalAmount"`
		TotalTaxAmount  *wireMoney `json:"totalTaxAmount"`
		TotalDutyAmount *wireMoney `json:"totalDutyAmount"`
	} `json:"cost"`
	Lines connection[wireCartLine] `json:"lines"`
}

type wireCartLine struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
	Cost     struct {
		TotalAmount wireMoney `json:"totalAmount"`
	} `json:"cost"`
	Merchandise wireVariant `json:"merchandise"`
}

type wireVariant struct {
	ID               string               `json:"id"`
	Title            string               `json:"title"`
	AvailableForSale bool                 `json:"availableForSale"`
	Price            wireMoney            `json:"price"`
	CompareAtPrice   *wireMoney           `json:"compareAtPrice"`
	SelectedOptions  []wireSelectedOption `json:"selectedOptions"`
	Image            *wireImage           `json:"image"`
	Product          struct {
		ID     string `json:"id"`
		Handle string `json:"handle"`
		Title  string `json:"title"`
	} `json:"product"`
}

type wireProduct struct {
	ID               string   `json:"id"`
	Handle           string   `json:"handle"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Tags             []string `json:"tags"`
	AvailableForSale bool     `json:"availableForSale"`
	PriceRange       struct {
		MinVariantPrice wireMoney `json:"minVariantPrice"`
		MaxVariantPrice wireMoney `json:"maxVariantPrice"`
	} `json:"priceRange"`
	FeaturedImage *wireImage              `json:"featuredImage"`
	Images        connection[wireImage]   `json:"images"`
	Options       []domain.ProductOption  `json:"options"`
	Variants      connection[wireVariant] `json:"variants"`
}

type wireCollection struct {
	ID          string     `json:"id"`
	Handle      string     `json:"handle"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Image       *wireImage `json:"image"`
}

type wireUserError struct {
	Field   []string `json:"field"`
	Code    string   `json:"code"`
	Message string   `json:"message"`
}

func reshapeMoney(m wireMoney) domain.Money {
	return domain.Money{Amount: m.Amount, CurrencyCode: m.CurrencyCode}
}

func reshapeMoneyPtr(m *wireMoney) *domain.Money {
	if m == nil {
		return nil
	}
	out := reshapeMoney(*m)
	return &out
}

func reshapeImage(img wireImage) domain.Image {
	return domain.Image{URL: img.URL, AltText: img.AltText, Width: img.Width, Height: img.Height}
}

func reshapeImagePtr(img *wireImage) *domain.Image {
	if img == nil {
		return nil
	}
	out := reshapeImage(*img)
	return &out
}

func reshapeOptions(opts []wireSelectedOption) []domain.SelectedOption {
	if len(opts) == 0 {
		return nil
	}
	out := make([]domain.SelectedOption, 0, len(opts))
	for _, o := range opts {
		out = append(out, domain.SelectedOption{Name: o.Name, Value: o.Value})
	}
	return out
}

func reshapeCart(w *wireCart) *domain.Cart {
	if w == nil {
		return nil
	}
	cart := &domain.Cart{
		ID:            w.ID,
		CheckoutURL:   w.CheckoutURL,
		TotalQuantity: w.TotalQuantity,
		Cost: domain.CartCost{
			Subtotal: reshapeMoney(w.Cost.SubtotalAmount),
			Total:    reshapeMoney(w.Cost.TotalAmount),
			Tax:      reshapeMoneyPtr(w.Cost.TotalTaxAmount),
			Duty:     reshapeMoneyPtr(w.Cost.TotalDutyAmount),
		},
		Lines: []domain.CartLine{},
	}
	for _, node := range w.Lines.nodes() {
		cart.Lines = append(cart.Lines, domain.CartLine{
			ID:       node.ID,
			Quantity: node.Quantity,
			Cost:     reshapeMoney(node.Cost.TotalAmount),
			Merchandise: domain.Merchandise{
				ID:              node.Merchandise.ID,
				Title:           node.Merchandise.Title,
				Price:           reshapeMoney(node.Merchandise.Price),
				CompareAtPrice:  reshapeMoneyPtr(node.Merchandise.CompareAtPrice),
				SelectedOptions: reshapeOptions(node.Merchandise.SelectedOptions),
				Image:           reshapeImagePtr(node.Merchandise.Image),
				Product: domain.ProductRef{
					ID:     node.Merchandise.Product.ID,
					Handle: node.Merchandise.Product.Handle,
					Title:  node.Merchandise.Product.Title,
				},
			},
		})
	}
	return cart
}

func reshapeProduct(w wireProduct) domain.Product {
	p := domain.Product{
		ID:               w.ID,
		Handle:           w.Handle,
		Title:            w.Title,
		Description:      w.Description,
		Tags:             w.Tags,
		AvailableForSale: w.AvailableForSale,
		MinPrice:         reshapeMoney(w.PriceRange.MinVariantPrice),
		MaxPrice:         reshapeMoney(w.PriceRange.MaxVariantPrice),
		FeaturedImage:    reshapeImagePtr(w.FeaturedImage),
		Options:          w.Options,
	}
	for _, img := range w.Images.nodes() {
		p.Images = append(p.Images, reshapeImage(img))
	}
	for _, v := range w.Variants.nodes() {
		p.Variants = append(p.Variants, domain.ProductVariant{
			ID:               v.ID,
			Title:            v.Title,
			AvailableForSale: v.AvailableForSale,
			Price:            reshapeMoney(v.Price),
			CompareAtPrice:   reshapeMoneyPtr(v.CompareAtPrice),
			SelectedOptions:  reshapeOptions(v.SelectedOptions),
		})
	}
	return p
}

func reshapeProducts(conn connection[wireProduct]) []domain.Product {
	nodes := conn.nodes()
	out := make([]domain.Product, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, reshapeProduct(n))
	}
	return out
}

func reshapeCollection(w wireCollection) domain.Collection {
	return domain.Collection{
		ID:          w.ID,
		Handle:      w.Handle,
		Title:       w.Title,
		Description: w.Description,
		Image:       reshapeImagePtr(w.Image),
	}
}
