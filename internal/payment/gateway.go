// Package payment defines the boundary to the external checkout provider.
// Only the contract lives here: line items and a shipping amount go in, a
// session handle comes out. The default implementation is not integrated
// with any provider yet.
package payment

import (
	"context"
	"errors"
)

// LineItem is one purchasable line as the payment provider expects it.
// UnitAmount is in minor currency units (cents).
type LineItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	UnitAmount  int64  `json:"unit_amount"`
	Quantity    int64  `json:"quantity"`
	Currency    string `json:"currency"`
}

// Session is a created checkout session the buyer gets redirected to.
type Session struct {
	ID          string `json:"id"`
	RedirectURL string `json:"redirect_url"`
}

type Gateway interface {
	CreateSession(ctx context.Context, items []LineItem, shippingAmount int64) (*Session, error)
}

var (
	// ErrNotConfigured means no provider key is set at all.
	ErrNotConfigured = errors.New("payment provider is not configured")
	// ErrNotIntegrated means a key is present but the server-side session
	// creation is not implemented.
	ErrNotIntegrated = errors.New("payment backend integration required")
)

// StubGateway stands in for the real provider. Session creation always
// fails: with ErrNotConfigured when no key is set, ErrNotIntegrated
// otherwise.
type StubGateway struct {
	PublishableKey string
}

func NewStubGateway(publishableKey string) *StubGateway {
	return &StubGateway{PublishableKey: publishableKey}
}

func (g *StubGateway) CreateSession(_ context.Context, _ []LineItem, _ int64) (*Session, error) {
	if g.PublishableKey == "" {
		return nil, ErrNotConfigured
	}
	return nil, ErrNotIntegrated
}
