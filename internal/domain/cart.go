package domain

// Cart is the server-owned shopping cart aggregate. The identifier is
// assigned upstream and immutable; the local copy is replaced wholesale with
// the upstream response after every mutation and is never patched in place.
type Cart struct {
	ID            string     `json:"id"`
	CheckoutURL   string     `json:"checkoutUrl"`
	Cost          CartCost   `json:"cost"`
	Lines         []CartLine `json:"lines"`
	TotalQuantity int        `json:"totalQuantity"`
}

// CartCost is the upstream cost breakdown for the whole cart.
type CartCost struct {
	Subtotal Money  `json:"subtotal"`
	Total    Money  `json:"total"`
	Tax      *Money `json:"tax,omitempty"`
	Duty     *Money `json:"duty,omitempty"`
}

// CartLine is one merchandise selection with a quantity. The line identifier
// is stable across quantity changes on that line.
type CartLine struct {
	ID          string      `json:"id"`
	Quantity    int         `json:"quantity"`
	Cost        Money       `json:"cost"`
	Merchandise Merchandise `json:"merchandise"`
}

// Merchandise is the variant snapshot referenced by a cart line.
type Merchandise struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Price           Money            `json:"price"`
	CompareAtPrice  *Money           `json:"compareAtPrice,omitempty"`
	SelectedOptions []SelectedOption `json:"selectedOptions,omitempty"`
	Image           *Image           `json:"image,omitempty"`
	Product         ProductRef       `json:"product"`
}

// SelectedOption is one chosen option value on a variant (e.g. Weight: 500g).
type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ProductRef is the back-reference from merchandise to its parent product.
type ProductRef struct {
	ID     string `json:"id"`
	Handle string `json:"handle"`
	Title  string `json:"title"`
}

// Clone returns a deep copy of the cart, so readers can hold a snapshot
// without aliasing store-owned state.
func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	out := *c
	out.Cost.Tax = cloneMoney(c.Cost.Tax)
	out.Cost.Duty = cloneMoney(c.Cost.Duty)
	if c.Lines != nil {
		out.Lines = make([]CartLine, len(c.Lines))
		for i, line := range c.Lines {
			line.Merchandise.CompareAtPrice = cloneMoney(line.Merchandise.CompareAtPrice)
			if line.Merchandise.Image != nil {
				img := *line.Merchandise.Image
				line.Merchandise.Image = &img
			}
			if line.Merchandise.SelectedOptions != nil {
				opts := make([]SelectedOption, len(line.Merchandise.SelectedOptions))
				copy(opts, line.Merchandise.SelectedOptions)
				line.Merchandise.SelectedOptions = opts
			}
			out.Lines[i] = line
		}
	}
	return &out
}

func cloneMoney(m *Money) *Money {
	if m == nil {
		return nil
	}
	out := *m
	return &out
}

// LineByID returns the line with the given identifier, or nil.
func (c *Cart) LineByID(lineID string) *CartLine {
	if c == nil {
		return nil
	}
	for i := range c.Lines {
		if c.Lines[i].ID == lineID {
			return &c.Lines[i]
		}
	}
	return nil
}

// LineByMerchandise returns the line holding the given variant, or nil.
func (c *Cart) LineByMerchandise(merchandiseID string) *CartLine {
	if c == nil {
		return nil
	}
	for i := range c.Lines {
		if c.Lines[i].Merchandise.ID == merchandiseID {
			return &c.Lines[i]
		}
	}
	return nil
}
