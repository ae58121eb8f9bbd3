package commerce

import (
	"context"
	"strings"

	"storefront-gateway/internal/domain"
)

const defaultPageSize = 24

// ProductByHandle fetches a single product projection by its URL handle.
func (c *Client) ProductByHandle(ctx context.Context, handle string) (*domain.Product, error) {
	var resp struct {
		Product *wireProduct `json:"product"`
	}
	if err := c.query(ctx, queryProductByHandle, map[string]interface{}{"handle": handle}, &resp); err != nil {
		return nil, err
	}
	if resp.Product == nil {
		return nil, domain.ErrNotFound
	}
	product := reshapeProduct(*resp.Product)
	return &product, nil
}

// Products fetches a page of the catalog, optionally filtered by a free-text
// query.
func (c *Client) Products(ctx context.Context, textQuery string, first int) ([]domain.Product, error) {
	if first <= 0 {
		first = defaultPageSize
	}
	vars := map[string]interface{}{"first": first}
	if q := strings.TrimSpace(textQuery); q != "" {
		vars["query"] = q
	}
	var resp struct {
		Products connection[wireProduct] `json:"products"`
	}
	if err := c.query(ctx, queryProducts, vars, &resp); err != nil {
		return nil, err
	}
	return reshapeProducts(resp.Products), nil
}

// CollectionProducts fetches the products of a collection by its handle.
func (c *Client) CollectionProducts(ctx context.Context, handle string, first int) ([]domain.Product, error) {
	if first <= 0 {
		first = defaultPageSize
	}
	var resp struct {
		Collection *struct {
			Products connection[wireProduct] `json:"products"`
		} `json:"collection"`
	}
	vars := map[string]interface{}{"handle": handle, "first": first}
	if err := c.query(ctx, queryCollectionProducts, vars, &resp); err != nil {
		return nil, err
	}
	if resp.Collection == nil {
		return nil, domain.ErrNotFound
	}
	return reshapeProducts(resp.Collection.Products), nil
}

// Collections lists the catalog collections.
func (c *Client) Collections(ctx context.Context, first int) ([]domain.Collection, error) {
	if first <= 0 {
		first = defaultPageSize
	}
	var resp struct {
		Collections connection[wireCollection] `json:"collections"`
	}
	if err := c.query(ctx, queryCollections, map[string]interface{}{"first": first}, &resp); err != nil {
		return nil, err
	}
	nodes := resp.Collections.nodes()
	out := make([]domain.Collection, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, reshapeCollection(n))
	}
	return out, nil
}
