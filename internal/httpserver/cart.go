package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/cartstore"
	"storefront-gateway/internal/domain"
	"storefront-gateway/internal/pricing"
)

type cartHandlers struct {
	manager         *cartstore.Manager
	shipping        pricing.ShippingPolicy
	defaultCurrency string
}

func (h *cartHandlers) store(c *gin.Context) *cartstore.Store {
	return h.manager.Store(c.Request.Context(), sessionID(c))
}

func (h *cartHandlers) render(c *gin.Context, st *cartstore.Store) {
	c.JSON(http.StatusOK, toCartView(st, h.shipping, h.defaultCurrency))
}

// respondError maps a store failure to an HTTP status: missing credentials
// are a 503, remote failures (recorded on the store's error flag) a 502, and
// everything else a local validation error.
func (h *cartHandlers) respondError(c *gin.Context, st *cartstore.Store, err error) {
	switch {
	case errors.Is(err, domain.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case st.Err() != nil && errors.Is(st.Err(), err):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

// getCart renders the current snapshot without contacting the upstream API.
func (h *cartHandlers) getCart(c *gin.Context) {
	h.render(c, h.store(c))
}

func (h *cartHandlers) initializeCart(c *gin.Context) {
	st := h.store(c)
	if err := st.Initialize(c.Request.Context()); err != nil {
		h.respondError(c, st, err)
		return
	}
	h.render(c, st)
}

type addLineRequest struct {
	MerchandiseID string `json:"merchandiseId" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required"`
}

func (h *cartHandlers) addLine(c *gin.Context) {
	var req addLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "merchandiseId and quantity are required"})
		return
	}
	st := h.store(c)
	if err := st.Add(c.Request.Context(), req.MerchandiseID, req.Quantity); err != nil {
		h.respondError(c, st, err)
		return
	}
	h.render(c, st)
}

type updateLineRequest struct {
	// Quantity may be zero or negative; the store treats that as removal.
	Quantity int `json:"quantity"`
}

func (h *cartHandlers) updateLine(c *gin.Context) {
	var req updateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity is required"})
		return
	}
	st := h.store(c)
	if err := st.UpdateQuantity(c.Request.Context(), c.Param("lineID"), req.Quantity); err != nil {
		h.respondError(c, st, err)
		return
	}
	h.render(c, st)
}

func (h *cartHandlers) removeLine(c *gin.Context) {
	st := h.store(c)
	if err := st.Remove(c.Request.Context(), c.Param("lineID")); err != nil {
		h.respondError(c, st, err)
		return
	}
	h.render(c, st)
}

func (h *cartHandlers) clearCart(c *gin.Context) {
	st := h.store(c)
	st.Clear()
	h.render(c, st)
}

func (h *cartHandlers) refreshCart(c *gin.Context) {
	st := h.store(c)
	if err := st.Refresh(c.Request.Context()); err != nil {
		h.respondError(c, st, err)
		return
	}
	h.render(c, st)
}
