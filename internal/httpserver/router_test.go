package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"storefront-gateway/internal/cartstore"
	"storefront-gateway/internal/commerce"
	"storefront-gateway/internal/domain"
	"storefront-gateway/internal/pricing"
	"storefront-gateway/internal/repository/snapshot"
	"storefront-gateway/internal/session"
)

type stubCommerce struct {
	createResult *domain.Cart
	createErr    error
	getResult    *domain.Cart
	getErr       error
	addResult    *domain.Cart
	addErr       error
	updateResult *domain.Cart
	updateErr    error
	removeResult *domain.Cart
	removeErr    error
}

func (s *stubCommerce) CreateCart(context.Context) (*domain.Cart, error) {
	return s.createResult, s.createErr
}

func (s *stubCommerce) GetCart(context.Context, string) (*domain.Cart, error) {
	return s.getResult, s.getErr
}

func (s *stubCommerce) AddLines(context.Context, string, []commerce.LineInput) (*domain.Cart, error) {
	return s.addResult, s.addErr
}

func (s *stubCommerce) UpdateLines(context.Context, string, []commerce.LineUpdate) (*domain.Cart, error) {
	return s.updateResult, s.updateErr
}

func (s *stubCommerce) RemoveLines(context.Context, string, []string) (*domain.Cart, error) {
	return s.removeResult, s.removeErr
}

type stubCatalog struct {
	product     *domain.Product
	products    []domain.Product
	collections []domain.Collection
	err         error
}

func (s *stubCatalog) ProductByHandle(context.Context, string) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubCatalog) Products(context.Context, string, int) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubCatalog) CollectionProducts(context.Context, string, int) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubCatalog) Collections(context.Context, int) ([]domain.Collection, error) {
	return s.collections, s.err
}

func usd(amount string) domain.Money {
	return domain.Money{Amount: decimal.RequireFromString(amount), CurrencyCode: "USD"}
}

func serverCart(id string, quantity int) *domain.Cart {
	cart := &domain.Cart{
		ID:            id,
		CheckoutURL:   "https://shop.example.com/checkout/" + id,
		TotalQuantity: quantity,
		Cost:          domain.CartCost{Subtotal: usd("25.00"), Total: usd("25.00")},
		Lines:         []domain.CartLine{},
	}
	if quantity > 0 {
		cart.Lines = append(cart.Lines, domain.CartLine{
			ID:       "l1",
			Quantity: quantity,
			Cost:     usd("25.00"),
			Merchandise: domain.Merchandise{
				ID:    "v1",
				Price: usd("25.00"),
			},
		})
	}
	return cart
}

func newTestRouter(t *testing.T, client cartstore.CommerceClient, catalog CatalogClient) *gin.Engine {
	t.Helper()
	logger, _ := logtest.NewNullLogger()
	manager := cartstore.NewManager(client, snapshot.NewMemory(), cartstore.Options{DefaultCurrency: "USD"}, logger)
	return buildRouter(logger, nil, Deps{
		Carts:    manager,
		Catalog:  catalog,
		Sessions: session.NewManager(time.Hour),
		Shipping: pricing.ShippingPolicy{
			FreeShippingThreshold: decimal.RequireFromString("149.00"),
			FlatRate:              decimal.RequireFromString("9.90"),
			Currency:              "USD",
		},
		DefaultCurrency: "USD",
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeCartView(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var view map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode response: %v\n%s", err, w.Body.String())
	}
	return view
}

func sessionCookieFrom(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == sessionCookie {
			return ck
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t, &stubCommerce{}, &stubCatalog{})
	w := doJSON(t, router, http.MethodGet, "/healthz", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", w.Code)
	}
}

func TestSessionCookieIssuedAndReused(t *testing.T) {
	router := newTestRouter(t, &stubCommerce{}, &stubCatalog{})

	first := doJSON(t, router, http.MethodGet, "/cart", "", nil)
	if first.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", first.Code)
	}
	cookie := sessionCookieFrom(t, first)
	if !cookie.HttpOnly {
		t.Fatal("session cookie must be http-only")
	}

	second := doJSON(t, router, http.MethodGet, "/cart", "", []*http.Cookie{cookie})
	if second.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", second.Code)
	}
	for _, ck := range second.Result().Cookies() {
		if ck.Name == sessionCookie {
			t.Fatal("a valid cookie must not be reissued")
		}
	}
}

func TestGetCartBeforeInitialize(t *testing.T) {
	router := newTestRouter(t, &stubCommerce{}, &stubCatalog{})

	w := doJSON(t, router, http.MethodGet, "/cart", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", w.Code)
	}
	view := decodeCartView(t, w)
	if view["cart"] != nil {
		t.Fatalf("expected nil cart, got %v", view["cart"])
	}
	if view["state"] != "uninitialized" {
		t.Fatalf("unexpected state %v", view["state"])
	}
	if view["isEmpty"] != true {
		t.Fatal("empty store must report isEmpty")
	}
}

func TestAddLineRoundTrip(t *testing.T) {
	client := &stubCommerce{
		createResult: serverCart("c1", 0),
		addResult:    serverCart("c1", 2),
	}
	router := newTestRouter(t, client, &stubCatalog{})

	issue := doJSON(t, router, http.MethodGet, "/cart", "", nil)
	cookie := sessionCookieFrom(t, issue)

	w := doJSON(t, router, http.MethodPost, "/cart/lines", `{"merchandiseId":"v1","quantity":2}`, []*http.Cookie{cookie})
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", w.Code, w.Body.String())
	}
	view := decodeCartView(t, w)
	if view["totalQuantity"] != float64(2) {
		t.Fatalf("unexpected totalQuantity %v", view["totalQuantity"])
	}
	if view["state"] != "ready" {
		t.Fatalf("unexpected state %v", view["state"])
	}

	shipping, _ := view["shipping"].(map[string]any)
	if shipping == nil || shipping["freeShipping"] != false {
		t.Fatalf("unexpected shipping quote %v", view["shipping"])
	}
}

func TestAddLineValidation(t *testing.T) {
	router := newTestRouter(t, &stubCommerce{}, &stubCatalog{})

	w := doJSON(t, router, http.MethodPost, "/cart/lines", `{}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestUpdateLineZeroQuantityRemoves(t *testing.T) {
	client := &stubCommerce{
		createResult: serverCart("c1", 0),
		addResult:    serverCart("c1", 1),
		removeResult: serverCart("c1", 0),
	}
	router := newTestRouter(t, client, &stubCatalog{})

	issue := doJSON(t, router, http.MethodGet, "/cart", "", nil)
	cookie := sessionCookieFrom(t, issue)

	if w := doJSON(t, router, http.MethodPost, "/cart/lines", `{"merchandiseId":"v1","quantity":1}`, []*http.Cookie{cookie}); w.Code != http.StatusOK {
		t.Fatalf("add failed: %d %s", w.Code, w.Body.String())
	}

	w := doJSON(t, router, http.MethodPatch, "/cart/lines/l1", `{"quantity":0}`, []*http.Cookie{cookie})
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", w.Code, w.Body.String())
	}
	view := decodeCartView(t, w)
	if view["totalQuantity"] != float64(0) || view["isEmpty"] != true {
		t.Fatalf("expected empty cart, got %v", view)
	}
	if view["cart"] == nil {
		t.Fatal("cart must survive removal of its last line")
	}
}

func TestClearCart(t *testing.T) {
	client := &stubCommerce{
		createResult: serverCart("c1", 0),
		addResult:    serverCart("c1", 1),
	}
	router := newTestRouter(t, client, &stubCatalog{})

	issue := doJSON(t, router, http.MethodGet, "/cart", "", nil)
	cookie := sessionCookieFrom(t, issue)

	if w := doJSON(t, router, http.MethodPost, "/cart/lines", `{"merchandiseId":"v1","quantity":1}`, []*http.Cookie{cookie}); w.Code != http.StatusOK {
		t.Fatalf("add failed: %d", w.Code)
	}

	w := doJSON(t, router, http.MethodDelete, "/cart", "", []*http.Cookie{cookie})
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", w.Code)
	}
	view := decodeCartView(t, w)
	if view["cart"] != nil || view["state"] != "uninitialized" {
		t.Fatalf("clear must drop the local cart: %v", view)
	}
}

func TestRemoteFailureMapsTo502(t *testing.T) {
	client := &stubCommerce{
		createResult: serverCart("c1", 0),
		addErr:       errors.New("upstream down"),
	}
	router := newTestRouter(t, client, &stubCatalog{})

	w := doJSON(t, router, http.MethodPost, "/cart/lines", `{"merchandiseId":"v1","quantity":1}`, nil)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", w.Code, w.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "failed to add item" {
		t.Fatalf("raw upstream error must not leak: %v", body["error"])
	}
}

func TestMissingCredentialsMapTo503(t *testing.T) {
	client := &stubCommerce{createErr: domain.ErrNotConfigured}
	router := newTestRouter(t, client, &stubCatalog{})

	w := doJSON(t, router, http.MethodPost, "/cart", "", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestGetProduct(t *testing.T) {
	catalog := &stubCatalog{product: &domain.Product{ID: "p1", Handle: "house-blend", Title: "House Blend"}}
	router := newTestRouter(t, &stubCommerce{}, catalog)

	w := doJSON(t, router, http.MethodGet, "/products/house-blend", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", w.Code)
	}
	var product domain.Product
	if err := json.Unmarshal(w.Body.Bytes(), &product); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if product.Handle != "house-blend" {
		t.Fatalf("unexpected product %+v", product)
	}
}

func TestGetProductNotFound(t *testing.T) {
	router := newTestRouter(t, &stubCommerce{}, &stubCatalog{err: domain.ErrNotFound})

	w := doJSON(t, router, http.MethodGet, "/products/missing", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestCatalogOutageMapsTo502(t *testing.T) {
	router := newTestRouter(t, &stubCommerce{}, &stubCatalog{err: errors.New("timeout")})

	w := doJSON(t, router, http.MethodGet, "/products", "", nil)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}

func TestListCollections(t *testing.T) {
	catalog := &stubCatalog{collections: []domain.Collection{{ID: "col1", Handle: "espresso"}}}
	router := newTestRouter(t, &stubCommerce{}, catalog)

	w := doJSON(t, router, http.MethodGet, "/collections", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", w.Code)
	}
	var body struct {
		Collections []domain.Collection `json:"collections"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Collections) != 1 || body.Collections[0].Handle != "espresso" {
		t.Fatalf("unexpected collections %+v", body.Collections)
	}
}
