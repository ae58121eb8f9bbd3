package cartstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"storefront-gateway/internal/commerce"
	"storefront-gateway/internal/domain"
)

// State describes the store lifecycle. Errored is reachable from any
// transition; Clear returns the store to Uninitialized.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateInitializing  State = "initializing"
	StateReady         State = "ready"
	StateMutating      State = "mutating"
	StateErrored       State = "errored"
)

// CommerceClient is the remote cart surface the store depends on.
type CommerceClient interface {
	CreateCart(ctx context.Context) (*domain.Cart, error)
	GetCart(ctx context.Context, cartID string) (*domain.Cart, error)
	AddLines(ctx context.Context, cartID string, lines []commerce.LineInput) (*domain.Cart, error)
	UpdateLines(ctx context.Context, cartID string, lines []commerce.LineUpdate) (*domain.Cart, error)
	RemoveLines(ctx context.Context, cartID string, lineIDs []string) (*domain.Cart, error)
}

// Options tune a Store at construction time.
type Options struct {
	// Seed is an advisory snapshot from persistence. It is always superseded
	// by the first successful server response and never used for checkout.
	Seed *domain.Cart
	// Timeout bounds each remote call. Zero means no explicit bound beyond
	// the client's own transport timeout.
	Timeout         time.Duration
	DefaultCurrency string
	Logger          logrus.FieldLogger
}

// Store owns the client-visible cart state for one shopper session. The
// remote cart is the single source of truth: every successful mutation
// replaces the whole local snapshot with the server response, never merging
// or incrementing locally. Mutations are serialized through the store mutex,
// so concurrent calls cannot race each other's responses.
type Store struct {
	client          CommerceClient
	log             logrus.FieldLogger
	timeout         time.Duration
	defaultCurrency string

	mu       sync.Mutex
	cart     *domain.Cart
	state    State
	lastErr  error
	onChange []func(*domain.Cart)
	subs     []func(Event)
}

// New builds a Store around the given client. A non-nil seed leaves the
// store readable immediately; Initialize then refreshes instead of creating.
func New(client CommerceClient, opts Options) *Store {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	currency := opts.DefaultCurrency
	if currency == "" {
		currency = "USD"
	}
	s := &Store{
		client:          client,
		log:             log,
		timeout:         opts.Timeout,
		defaultCurrency: currency,
		state:           StateUninitialized,
	}
	if opts.Seed != nil {
		s.cart = opts.Seed.Clone()
		s.state = StateReady
	}
	return s
}

// OnChange registers a hook invoked with a snapshot copy after every cart
// change (nil on clear). Register hooks before the store is shared.
func (s *Store) OnChange(fn func(*domain.Cart)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// Subscribe registers an observer for typed domain events.
func (s *Store) Subscribe(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Initialize makes sure a cart exists: an in-memory cart is refreshed from
// the server rather than recreated, so repeated calls never orphan a remote
// cart; otherwise a new remote cart is created.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initializeLocked(ctx)
}

func (s *Store) initializeLocked(ctx context.Context) error {
	if s.cart != nil {
		return s.refreshLocked(ctx, "initialize cart")
	}

	s.state = StateInitializing
	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	cart, err := s.client.CreateCart(opCtx)
	if err != nil {
		return s.failLocked("initialize cart", err)
	}
	s.replaceLocked(cart)
	s.emitLocked(CartCreated{CartID: cart.ID})
	return nil
}

// Add puts quantity units of the given variant in the cart, initializing a
// cart first if none exists.
func (s *Store) Add(ctx context.Context, merchandiseID string, quantity int) error {
	if strings.TrimSpace(merchandiseID) == "" {
		return errors.New("merchandise id required")
	}
	if quantity <= 0 {
		return errors.New("quantity must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart == nil {
		if err := s.initializeLocked(ctx); err != nil {
			return err
		}
	}

	s.state = StateMutating
	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	cart, err := s.client.AddLines(opCtx, s.cart.ID, []commerce.LineInput{{MerchandiseID: merchandiseID, Quantity: quantity}})
	if err != nil {
		return s.failLocked("add item", err)
	}
	s.replaceLocked(cart)
	s.emitLocked(LineAdded{CartID: cart.ID, MerchandiseID: merchandiseID, Quantity: quantity})
	return nil
}

// UpdateQuantity sets the quantity on an existing line. A non-positive target
// quantity is treated as an implicit removal rather than a rejected request.
func (s *Store) UpdateQuantity(ctx context.Context, lineID string, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, lineID)
	}
	if strings.TrimSpace(lineID) == "" {
		return errors.New("line id required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart == nil {
		return errors.New("no cart to update")
	}

	s.state = StateMutating
	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	cart, err := s.client.UpdateLines(opCtx, s.cart.ID, []commerce.LineUpdate{{ID: lineID, Quantity: quantity}})
	if err != nil {
		return s.failLocked("update item", err)
	}
	s.replaceLocked(cart)
	s.emitLocked(LineUpdated{CartID: cart.ID, LineID: lineID, Quantity: quantity})
	return nil
}

// Remove deletes a line from the cart.
func (s *Store) Remove(ctx context.Context, lineID string) error {
	if strings.TrimSpace(lineID) == "" {
		return errors.New("line id required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart == nil {
		return errors.New("no cart to update")
	}

	s.state = StateMutating
	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	cart, err := s.client.RemoveLines(opCtx, s.cart.ID, []string{lineID})
	if err != nil {
		return s.failLocked("remove item", err)
	}
	s.replaceLocked(cart)
	s.emitLocked(LineRemoved{CartID: cart.ID, LineID: lineID})
	return nil
}

// Refresh re-fetches the cart by identifier. An identifier that no longer
// resolves is expected, not an error: the store transparently creates a
// fresh cart in its place.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cart == nil {
		return s.initializeLocked(ctx)
	}
	return s.refreshLocked(ctx, "refresh cart")
}

func (s *Store) refreshLocked(ctx context.Context, op string) error {
	previousID := s.cart.ID
	s.state = StateMutating
	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	cart, err := s.client.GetCart(opCtx, previousID)
	if errors.Is(err, domain.ErrNotFound) {
		cart, err = s.client.CreateCart(opCtx)
		if err != nil {
			return s.failLocked(op, err)
		}
		s.replaceLocked(cart)
		s.emitLocked(CartRecreated{PreviousID: previousID, CartID: cart.ID})
		return nil
	}
	if err != nil {
		return s.failLocked(op, err)
	}
	s.replaceLocked(cart)
	return nil
}

// Clear discards the in-memory and persisted cart without contacting the
// server; the remote resource simply expires upstream.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var previousID string
	if s.cart != nil {
		previousID = s.cart.ID
	}
	s.cart = nil
	s.state = StateUninitialized
	s.lastErr = nil
	s.notifyLocked()
	s.emitLocked(CartCleared{CartID: previousID})
}

// Cart returns a snapshot copy of the current cart, or nil.
func (s *Store) Cart() *domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Loading reports whether a remote call is in flight.
func (s *Store) Loading() bool {
	st := s.State()
	return st == StateInitializing || st == StateMutating
}

// Err returns the store-level failure from the last operation, nil when the
// last operation succeeded.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// TotalQuantity reads the item count straight off the last snapshot, so it
// can never drift from the authoritative server totals.
func (s *Store) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cart == nil {
		return 0
	}
	return s.cart.TotalQuantity
}

// TotalAmount reads the cart total off the last snapshot; with no cart it is
// a zero amount in the default currency.
func (s *Store) TotalAmount() domain.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cart == nil {
		return domain.Zero(s.defaultCurrency)
	}
	return s.cart.Cost.Total
}

func (s *Store) IsEmpty() bool {
	return s.TotalQuantity() == 0
}

func (s *Store) HasItems() bool {
	return !s.IsEmpty()
}

// LineByID looks up a line by its identifier.
func (s *Store) LineByID(lineID string) (domain.CartLine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if line := s.cart.LineByID(lineID); line != nil {
		return *line, true
	}
	return domain.CartLine{}, false
}

// LineByMerchandise looks up a line by the variant it holds.
func (s *Store) LineByMerchandise(merchandiseID string) (domain.CartLine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if line := s.cart.LineByMerchandise(merchandiseID); line != nil {
		return *line, true
	}
	return domain.CartLine{}, false
}

// replaceLocked applies the authoritative server response wholesale.
func (s *Store) replaceLocked(cart *domain.Cart) {
	s.cart = cart
	s.state = StateReady
	s.lastErr = nil
	s.notifyLocked()
}

// failLocked collapses any failure into the store-level error flag, keeping
// the previous snapshot intact. Missing credentials surface their own
// message; everything else is reduced to a generic operation failure with
// the cause logged.
func (s *Store) failLocked(op string, err error) error {
	s.state = StateErrored
	if errors.Is(err, domain.ErrNotConfigured) {
		s.lastErr = err
	} else {
		s.log.WithError(err).WithField("operation", op).Error("cart operation failed")
		s.lastErr = fmt.Errorf("failed to %s", op)
	}
	return s.lastErr
}

func (s *Store) notifyLocked() {
	if len(s.onChange) == 0 {
		return
	}
	snapshot := s.cart.Clone()
	for _, fn := range s.onChange {
		fn(snapshot)
	}
}

func (s *Store) emitLocked(event Event) {
	for _, fn := range s.subs {
		fn(event)
	}
}

func (s *Store) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}
