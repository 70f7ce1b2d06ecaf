package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/specialdk/rac-artwork/internal/cart"
	"github.com/specialdk/rac-artwork/internal/domain"
)

type mockCartService struct {
	added   bool
	removed bool
	has     bool
	items   []domain.CartLine
	summary cart.Summary
	cleared bool
	err     error
}

func (m *mockCartService) Add(context.Context, string, *domain.CompleteArtwork) (bool, error) {
	return m.added, m.err
}

func (m *mockCartService) Remove(context.Context, string, string) (bool, error) {
	return m.removed, m.err
}

func (m *mockCartService) Items(context.Context, string) ([]domain.CartLine, error) {
	return m.items, m.err
}

func (m *mockCartService) Has(context.Context, string, string) (bool, error) {
	return m.has, m.err
}

func (m *mockCartService) Summary(context.Context, string) (cart.Summary, error) {
	return m.summary, m.err
}

func (m *mockCartService) Clear(context.Context, string) error {
	m.cleared = true
	return m.err
}

func withCartID(r *http.Request) *http.Request {
	ctx := context.WithValue(r.Context(), cartIDKey, "cart-1")
	return r.WithContext(ctx)
}

func cartFixtureSummary() cart.Summary {
	return cart.Summary{
		Count:    1,
		Subtotal: decimal.NewFromInt(130),
		Shipping: decimal.NewFromInt(15),
		Total:    decimal.NewFromInt(145),
	}
}

func TestGetCart_FormatsTotals(t *testing.T) {
	carts := &mockCartService{
		items:   []domain.CartLine{{ArtworkID: "1", Title: "Serpent"}},
		summary: cartFixtureSummary(),
	}
	handler := NewCartHandler(&mockCatalog{}, carts, 5*time.Second, "$")

	recorder := httptest.NewRecorder()
	handler.GetCart(recorder, withCartID(httptest.NewRequest("GET", "/", nil)))

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response CartResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.TotalDisplay != "$145.00" {
		t.Errorf("Expected total display $145.00, got %s", response.TotalDisplay)
	}
	if len(response.Items) != 1 {
		t.Errorf("Expected 1 item, got %d", len(response.Items))
	}
}

func TestAddItem_Success(t *testing.T) {
	catalog := &mockCatalog{
		complete: map[string]*domain.CompleteArtwork{
			"1": {Artwork: domain.Artwork{ID: "1", Title: "Serpent"}},
		},
	}
	carts := &mockCartService{added: true, summary: cartFixtureSummary()}
	handler := NewCartHandler(catalog, carts, 5*time.Second, "$")

	body := bytes.NewBufferString(`{"artwork_id":"1"}`)
	recorder := httptest.NewRecorder()
	handler.AddItem(recorder, withCartID(httptest.NewRequest("POST", "/", body)))

	if recorder.Code != http.StatusCreated {
		t.Errorf("Expected status code %d, got %d", http.StatusCreated, recorder.Code)
	}
}

func TestAddItem_DuplicateConflicts(t *testing.T) {
	catalog := &mockCatalog{
		complete: map[string]*domain.CompleteArtwork{
			"1": {Artwork: domain.Artwork{ID: "1", Title: "Serpent"}},
		},
	}
	carts := &mockCartService{added: false}
	handler := NewCartHandler(catalog, carts, 5*time.Second, "$")

	body := bytes.NewBufferString(`{"artwork_id":"1"}`)
	recorder := httptest.NewRecorder()
	handler.AddItem(recorder, withCartID(httptest.NewRequest("POST", "/", body)))

	if recorder.Code != http.StatusConflict {
		t.Errorf("Expected status code %d, got %d", http.StatusConflict, recorder.Code)
	}

	var response ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Code != "already_in_cart" {
		t.Errorf("Expected code already_in_cart, got %s", response.Code)
	}
}

func TestAddItem_UnknownArtwork(t *testing.T) {
	catalog := &mockCatalog{complete: map[string]*domain.CompleteArtwork{}}
	handler := NewCartHandler(catalog, &mockCartService{}, 5*time.Second, "$")

	body := bytes.NewBufferString(`{"artwork_id":"999"}`)
	recorder := httptest.NewRecorder()
	handler.AddItem(recorder, withCartID(httptest.NewRequest("POST", "/", body)))

	if recorder.Code != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, recorder.Code)
	}
}

func TestAddItem_InvalidBody(t *testing.T) {
	handler := NewCartHandler(&mockCatalog{}, &mockCartService{}, 5*time.Second, "$")

	body := bytes.NewBufferString(`{not json`)
	recorder := httptest.NewRecorder()
	handler.AddItem(recorder, withCartID(httptest.NewRequest("POST", "/", body)))

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestRemoveItem_NotInCart(t *testing.T) {
	handler := NewCartHandler(&mockCatalog{}, &mockCartService{removed: false}, 5*time.Second, "$")

	r := chi.NewRouter()
	r.Delete("/cart/items/{id}", handler.RemoveItem)

	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, withCartID(httptest.NewRequest("DELETE", "/cart/items/1", nil)))

	if recorder.Code != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, recorder.Code)
	}
}

func TestRemoveItem_Removed(t *testing.T) {
	handler := NewCartHandler(&mockCatalog{}, &mockCartService{removed: true}, 5*time.Second, "$")

	r := chi.NewRouter()
	r.Delete("/cart/items/{id}", handler.RemoveItem)

	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, withCartID(httptest.NewRequest("DELETE", "/cart/items/1", nil)))

	if recorder.Code != http.StatusNoContent {
		t.Errorf("Expected status code %d, got %d", http.StatusNoContent, recorder.Code)
	}
}

func TestHasItem(t *testing.T) {
	handler := NewCartHandler(&mockCatalog{}, &mockCartService{has: true}, 5*time.Second, "$")

	r := chi.NewRouter()
	r.Get("/cart/items/{id}", handler.HasItem)

	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, withCartID(httptest.NewRequest("GET", "/cart/items/1", nil)))

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response map[string]bool
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !response["in_cart"] {
		t.Error("Expected in_cart true")
	}
}

func TestClearCart(t *testing.T) {
	carts := &mockCartService{}
	handler := NewCartHandler(&mockCatalog{}, carts, 5*time.Second, "$")

	recorder := httptest.NewRecorder()
	handler.ClearCart(recorder, withCartID(httptest.NewRequest("DELETE", "/", nil)))

	if recorder.Code != http.StatusNoContent {
		t.Errorf("Expected status code %d, got %d", http.StatusNoContent, recorder.Code)
	}
	if !carts.cleared {
		t.Error("Expected clear to reach the cart service")
	}
}
