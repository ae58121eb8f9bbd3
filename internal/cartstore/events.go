package cartstore

// Typed domain events emitted after successful state transitions. Observers
// (analytics, audit logs) subscribe at composition time; the state machine
// itself never talks to third-party trackers.

const (
	EventCartCreated   = "CartCreated"
	EventCartRecreated = "CartRecreated"
	EventCartCleared   = "CartCleared"
	EventLineAdded     = "LineAddedToCart"
	EventLineUpdated   = "LineQuantityChanged"
	EventLineRemoved   = "LineRemovedFromCart"
)

// Event is implemented by every cart domain event.
type Event interface {
	EventName() string
}

type CartCreated struct {
	CartID string `json:"cartId"`
}

// CartRecreated is emitted when an expired cart identifier self-heals into a
// freshly created cart.
type CartRecreated struct {
	PreviousID string `json:"previousId"`
	CartID     string `json:"cartId"`
}

type CartCleared struct {
	CartID string `json:"cartId"`
}

type LineAdded struct {
	CartID        string `json:"cartId"`
	MerchandiseID string `json:"merchandiseId"`
	Quantity      int    `json:"quantity"`
}

type LineUpdated struct {
	CartID   string `json:"cartId"`
	LineID   string `json:"lineId"`
	Quantity int    `json:"quantity"`
}

type LineRemoved struct {
	CartID string `json:"cartId"`
	LineID string `json:"lineId"`
}

func (CartCreated) EventName() string   { return EventCartCreated }
func (CartRecreated) EventName() string { return EventCartRecreated }
func (CartCleared) EventName() string   { return EventCartCleared }
func (LineAdded) EventName() string     { return EventLineAdded }
func (LineUpdated) EventName() string   { return EventLineUpdated }
func (LineRemoved) EventName() string   { return EventLineRemoved }
