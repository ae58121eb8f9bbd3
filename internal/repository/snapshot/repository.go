package snapshot

import (
	"context"

	"storefront-gateway/internal/domain"
)

// Repository stores the last-known cart per shopper session. Load returns
// domain.ErrNotFound when no snapshot exists for the session.
type Repository interface {
	Load(ctx context.Context, sessionID string) (*domain.Cart, error)
	Save(ctx context.Context, sessionID string, cart *domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
}
