package commerce

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront-gateway/internal/domain"
)

// LineInput selects a variant and a positive quantity for cartLinesAdd.
type LineInput struct {
	MerchandiseID string
	Quantity      int
}

// LineUpdate targets an existing line for cartLinesUpdate.
type LineUpdate struct {
	ID       string
	Quantity int
}

type cartMutationPayload struct {
	Cart       *wireCart       `json:"cart"`
	UserErrors []wireUserError `json:"userErrors"`
}

// CreateCart allocates a new remote cart resource.
func (c *Client) CreateCart(ctx context.Context) (*domain.Cart, error) {
	var resp struct {
		CartCreate cartMutationPayload `json:"cartCreate"`
	}
	if err := c.query(ctx, mutationCartCreate, nil, &resp); err != nil {
		return nil, err
	}
	return c.cartFromPayload("cartCreate", resp.CartCreate)
}

// GetCart fetches the current state of an existing cart. It returns
// domain.ErrNotFound when the identifier no longer resolves upstream.
func (c *Client) GetCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	var resp struct {
		Cart *wireCart `json:"cart"`
	}
	if err := c.query(ctx, queryCart, map[string]interface{}{"cartId": cartID}, &resp); err != nil {
		return nil, err
	}
	if resp.Cart == nil {
		return nil, domain.ErrNotFound
	}
	return reshapeCart(resp.Cart), nil
}

// AddLines adds merchandise selections to the cart and returns the full
// updated cart.
func (c *Client) AddLines(ctx context.Context, cartID string, lines []LineInput) (*domain.Cart, error) {
	if len(lines) == 0 {
		return nil, errors.New("lines required")
	}
	payload := make([]map[string]interface{}, 0, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, errors.New("quantity must be positive")
		}
		payload = append(payload, map[string]interface{}{
			"merchandiseId": l.MerchandiseID,
			"quantity":      l.Quantity,
		})
	}

	var resp struct {
		CartLinesAdd cartMutationPayload `json:"cartLinesAdd"`
	}
	vars := map[string]interface{}{"cartId": cartID, "lines": payload}
	if err := c.query(ctx, mutationCartLinesAdd, vars, &resp); err != nil {
		return nil, err
	}
	return c.cartFromPayload("cartLinesAdd", resp.CartLinesAdd)
}

// UpdateLines changes quantities on existing lines and returns the full
// updated cart.
func (c *Client) UpdateLines(ctx context.Context, cartID string, lines []LineUpdate) (*domain.Cart, error) {
	if len(lines) == 0 {
		return nil, errors.New("lines required")
	}
	payload := make([]map[string]interface{}, 0, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, errors.New("quantity must be positive")
		}
		payload = append(payload, map[string]interface{}{
			"id":       l.ID,
			"quantity": l.Quantity,
		})
	}

	var resp struct {
		CartLinesUpdate cartMutationPayload `json:"cartLinesUpdate"`
	}
	vars := map[string]interface{}{"cartId": cartID, "lines": payload}
	if err := c.query(ctx, mutationCartLinesUpdate, vars, &resp); err != nil {
		return nil, err
	}
	return c.cartFromPayload("cartLinesUpdate", resp.CartLinesUpdate)
}

// RemoveLines deletes lines from the cart and returns the full updated cart.
func (c *Client) RemoveLines(ctx context.Context, cartID string, lineIDs []string) (*domain.Cart, error) {
	if len(lineIDs) == 0 {
		return nil, errors.New("lineIds required")
	}
	var resp struct {
		CartLinesRemove cartMutationPayload `json:"cartLinesRemove"`
	}
	vars := map[string]interface{}{"cartId": cartID, "lineIds": lineIDs}
	if err := c.query(ctx, mutationCartLinesRemove, vars, &resp); err != nil {
		return nil, err
	}
	return c.cartFromPayload("cartLinesRemove", resp.CartLinesRemove)
}

func (c *Client) cartFromPayload(op string, payload cartMutationPayload) (*domain.Cart, error) {
	if len(payload.UserErrors) > 0 {
		messages := make([]string, 0, len(payload.UserErrors))
		for _, ue := range payload.UserErrors {
			messages = append(messages, ue.Message)
		}
		if c.log != nil {
			c.log.WithField("operation", op).Warnf("commerce user errors: %s", strings.Join(messages, "; "))
		}
		return nil, fmt.Errorf("%s: %s", op, strings.Join(messages, "; "))
	}
	if payload.Cart == nil {
		return nil, fmt.Errorf("%s returned no cart", op)
	}
	return reshapeCart(payload.Cart), nil
}
