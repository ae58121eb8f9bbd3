package cartstore

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"storefront-gateway/internal/domain"
)

// SnapshotRepository persists the last-known cart per shopper session. The
// persisted copy is advisory: it only seeds a freshly built store and is
// superseded by the first server response.
type SnapshotRepository interface {
	Load(ctx context.Context, sessionID string) (*domain.Cart, error)
	Save(ctx context.Context, sessionID string, cart *domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

const persistTimeout = 5 * time.Second

// Manager hands out one Store per shopper session, seeding each from the
// snapshot repository and wiring persistence and event observers at
// construction so the stores themselves stay persistence-agnostic.
type Manager struct {
	client    CommerceClient
	snapshots SnapshotRepository
	log       logrus.FieldLogger
	opts      Options

	mu        sync.Mutex
	stores    map[string]*Store
	observers []func(sessionID string, event Event)
}

// NewManager builds a Manager. snapshots may be nil, in which case carts live
// only in memory for the life of the process.
func NewManager(client CommerceClient, snapshots SnapshotRepository, opts Options, log logrus.FieldLogger) *Manager {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Manager{
		client:    client,
		snapshots: snapshots,
		log:       log,
		opts:      opts,
		stores:    make(map[string]*Store),
	}
}

// OnEvent registers an observer for the domain events of every store the
// manager hands out. Register observers before serving traffic.
func (m *Manager) OnEvent(fn func(sessionID string, event Event)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, fn)
}

// Store returns the cart store for the given session, building and seeding
// it on first use.
func (m *Manager) Store(ctx context.Context, sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if st, ok := m.stores[sessionID]; ok {
		return st
	}

	opts := m.opts
	opts.Logger = m.log.WithField("session", sessionID)
	opts.Seed = m.loadSeed(ctx, sessionID)

	st := New(m.client, opts)
	if m.snapshots != nil {
		st.OnChange(m.persistHook(sessionID))
	}
	for _, obs := range m.observers {
		obs := obs
		st.Subscribe(func(event Event) { obs(sessionID, event) })
	}

	m.stores[sessionID] = st
	return st
}

func (m *Manager) loadSeed(ctx context.Context, sessionID string) *domain.Cart {
	if m.snapshots == nil {
		return nil
	}
	cart, err := m.snapshots.Load(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			m.log.WithError(err).WithField("session", sessionID).Warn("load cart snapshot")
		}
		return nil
	}
	return cart
}

func (m *Manager) persistHook(sessionID string) func(*domain.Cart) {
	return func(cart *domain.Cart) {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		var err error
		if cart == nil {
			err = m.snapshots.Delete(ctx, sessionID)
		} else {
			err = m.snapshots.Save(ctx, sessionID, cart)
		}
		if err != nil {
			m.log.WithError(err).WithField("session", sessionID).Warn("persist cart snapshot")
		}
	}
}
