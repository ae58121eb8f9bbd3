package httpserver

import (
	"storefront-gateway/internal/cartstore"
	"storefront-gateway/internal/domain"
	"storefront-gateway/internal/pricing"
)

// cartView is the consumer-facing cart payload: the snapshot plus every
// derived value the UI is allowed to depend on.
type cartView struct {
	Cart           *domain.Cart          `json:"cart"`
	State          string                `json:"state"`
	Loading        bool                  `json:"loading"`
	Error          string                `json:"error,omitempty"`
	TotalQuantity  int                   `json:"totalQuantity"`
	TotalAmount    domain.Money          `json:"totalAmount"`
	FormattedTotal string                `json:"formattedTotal"`
	Savings        domain.Money          `json:"savings"`
	Shipping       pricing.ShippingQuote `json:"shipping"`
	IsEmpty        bool                  `json:"isEmpty"`
}

func toCartView(st *cartstore.Store, shipping pricing.ShippingPolicy, defaultCurrency string) cartView {
	cart := st.Cart()
	view := cartView{
		Cart:           cart,
		State:          string(st.State()),
		Loading:        st.Loading(),
		TotalQuantity:  st.TotalQuantity(),
		TotalAmount:    st.TotalAmount(),
		FormattedTotal: pricing.FormatTotal(cart, defaultCurrency),
		Savings:        pricing.Savings(cart, defaultCurrency),
		Shipping:       shipping.Quote(cart),
		IsEmpty:        st.IsEmpty(),
	}
	if err := st.Err(); err != nil {
		view.Error = err.Error()
	}
	return view
}
