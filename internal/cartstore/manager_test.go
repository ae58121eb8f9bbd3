package cartstore

import (
	"context"
	"errors"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"

	"storefront-gateway/internal/domain"
	"storefront-gateway/internal/repository/snapshot"
)

func newTestManager(client CommerceClient, snapshots SnapshotRepository) *Manager {
	logger, _ := logtest.NewNullLogger()
	return NewManager(client, snapshots, Options{DefaultCurrency: "USD"}, logger)
}

func TestManagerReusesStorePerSession(t *testing.T) {
	m := newTestManager(&stubClient{}, nil)

	a := m.Store(context.Background(), "s1")
	b := m.Store(context.Background(), "s1")
	c := m.Store(context.Background(), "s2")

	if a != b {
		t.Fatal("same session must map to the same store")
	}
	if a == c {
		t.Fatal("distinct sessions must not share a store")
	}
}

func TestManagerSeedsFromSnapshot(t *testing.T) {
	repo := snapshot.NewMemory()
	seed := cartWithLine("c1", "l1", "v1", 2)
	if err := repo.Save(context.Background(), "s1", seed); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}

	client := &stubClient{}
	m := newTestManager(client, repo)

	st := m.Store(context.Background(), "s1")
	if st.State() != StateReady {
		t.Fatalf("seeded store should start ready, got %s", st.State())
	}
	cart := st.Cart()
	if cart == nil || cart.ID != "c1" || st.TotalQuantity() != 2 {
		t.Fatalf("seed not applied: %+v", cart)
	}
	if client.createCalls+client.getCalls != 0 {
		t.Fatal("seeding must not contact the server")
	}
}

func TestManagerPersistsOnChange(t *testing.T) {
	repo := snapshot.NewMemory()
	updated := cartWithLine("c1", "l1", "v1", 3)
	client := &stubClient{
		createResults: []*domain.Cart{emptyCart("c1")},
		addResult:     updated,
	}
	m := newTestManager(client, repo)

	st := m.Store(context.Background(), "s1")
	if err := st.Add(context.Background(), "v1", 3); err != nil {
		t.Fatalf("add: %v", err)
	}

	persisted, err := repo.Load(context.Background(), "s1")
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if persisted.ID != "c1" || persisted.TotalQuantity != 3 {
		t.Fatalf("unexpected persisted snapshot: %+v", persisted)
	}
}

func TestManagerDeletesSnapshotOnClear(t *testing.T) {
	repo := snapshot.NewMemory()
	if err := repo.Save(context.Background(), "s1", cartWithLine("c1", "l1", "v1", 1)); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}
	m := newTestManager(&stubClient{}, repo)

	st := m.Store(context.Background(), "s1")
	st.Clear()

	if _, err := repo.Load(context.Background(), "s1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected snapshot gone, got %v", err)
	}
}

func TestManagerForwardsEventsWithSession(t *testing.T) {
	client := &stubClient{createResults: []*domain.Cart{emptyCart("c1")}}
	m := newTestManager(client, nil)

	type tracked struct {
		session string
		event   Event
	}
	var seen []tracked
	m.OnEvent(func(sessionID string, event Event) {
		seen = append(seen, tracked{session: sessionID, event: event})
	})

	st := m.Store(context.Background(), "s1")
	if err := st.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	if len(seen) != 1 || seen[0].session != "s1" {
		t.Fatalf("unexpected observations: %+v", seen)
	}
	if _, ok := seen[0].event.(CartCreated); !ok {
		t.Fatalf("expected CartCreated, got %+v", seen[0].event)
	}
}
