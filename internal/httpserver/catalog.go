package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/domain"
)

// CatalogClient is the read-only catalog surface the handlers depend on.
type CatalogClient interface {
	ProductByHandle(ctx context.Context, handle string) (*domain.Product, error)
	Products(ctx context.Context, textQuery string, first int) ([]domain.Product, error)
	CollectionProducts(ctx context.Context, handle string, first int) ([]domain.Product, error)
	Collections(ctx context.Context, first int) ([]domain.Collection, error)
}

type catalogHandlers struct {
	catalog CatalogClient
}

func (h *catalogHandlers) listProducts(c *gin.Context) {
	products, err := h.catalog.Products(c.Request.Context(), c.Query("q"), pageSize(c))
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *catalogHandlers) getProduct(c *gin.Context) {
	product, err := h.catalog.ProductByHandle(c.Request.Context(), c.Param("handle"))
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *catalogHandlers) listCollections(c *gin.Context) {
	collections, err := h.catalog.Collections(c.Request.Context(), pageSize(c))
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collections": collections})
}

func (h *catalogHandlers) collectionProducts(c *gin.Context) {
	products, err := h.catalog.CollectionProducts(c.Request.Context(), c.Param("handle"), pageSize(c))
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func respondCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
	}
}

func pageSize(c *gin.Context) int {
	raw := c.Query("limit")
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0
	}
	if n > 100 {
		n = 100
	}
	return n
}
