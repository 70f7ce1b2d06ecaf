package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/specialdk/rac-artwork/internal/domain"
	"github.com/specialdk/rac-artwork/internal/payment"
)

// Pricing holds the cart's money rules, loaded once at startup.
type Pricing struct {
	Currency              string
	ShippingFlatRate      decimal.Decimal
	FreeShippingThreshold decimal.Decimal
}

// Summary is the derived money view of a cart.
type Summary struct {
	Count    int             `json:"count"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// Service implements the cart operations over a Store. Every mutation loads
// the persisted document, modifies it and saves it back before returning, so
// there is no state held between calls.
type Service struct {
	store    Store
	notifier Notifier
	pricing  Pricing
	now      func() time.Time
}

func NewService(store Store, notifier Notifier, pricing Pricing) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		pricing:  pricing,
		now:      time.Now,
	}
}

// Add puts an artwork into the cart, capturing its price and artist name at
// add time. Returns false when the artwork is already present; the cart is
// left untouched in that case.
func (s *Service) Add(ctx context.Context, cartID string, artwork *domain.CompleteArtwork) (bool, error) {
	lines, err := s.store.Load(ctx, cartID)
	if err != nil {
		return false, fmt.Errorf("load cart: %w", err)
	}

	for _, line := range lines {
		if line.ArtworkID == artwork.ID {
			return false, nil
		}
	}

	lines = append(lines, domain.CartLine{
		ArtworkID:  artwork.ID,
		Title:      artwork.Title,
		ArtistName: artwork.ArtistName(),
		Price:      artwork.Price,
		ImageURL:   artwork.ImageURL,
		AddedAt:    s.now().UTC(),
	})

	if err := s.store.Save(ctx, cartID, lines); err != nil {
		return false, fmt.Errorf("save cart: %w", err)
	}
	s.notifier.CartChanged(ctx, cartID, len(lines))
	return true, nil
}

// Remove takes an artwork out of the cart, reporting whether a removal
// actually happened.
func (s *Service) Remove(ctx context.Context, cartID, artworkID string) (bool, error) {
	lines, err := s.store.Load(ctx, cartID)
	if err != nil {
		return false, fmt.Errorf("load cart: %w", err)
	}

	idx := -1
	for i, line := range lines {
		if line.ArtworkID == artworkID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	lines = append(lines[:idx], lines[idx+1:]...)
	if err := s.store.Save(ctx, cartID, lines); err != nil {
		return false, fmt.Errorf("save cart: %w", err)
	}
	s.notifier.CartChanged(ctx, cartID, len(lines))
	return true, nil
}

// Items returns the cart lines in insertion order.
func (s *Service) Items(ctx context.Context, cartID string) ([]domain.CartLine, error) {
	return s.store.Load(ctx, cartID)
}

func (s *Service) Count(ctx context.Context, cartID string) (int, error) {
	lines, err := s.store.Load(ctx, cartID)
	if err != nil {
		return 0, err
	}
	return len(lines), nil
}

func (s *Service) Has(ctx context.Context, cartID, artworkID string) (bool, error) {
	lines, err := s.store.Load(ctx, cartID)
	if err != nil {
		return false, err
	}
	for _, line := range lines {
		if line.ArtworkID == artworkID {
			return true, nil
		}
	}
	return false, nil
}

// Summary computes subtotal, shipping and total. Shipping is free at or
// above the configured threshold, a flat rate below it.
func (s *Service) Summary(ctx context.Context, cartID string) (Summary, error) {
	lines, err := s.store.Load(ctx, cartID)
	if err != nil {
		return Summary{}, err
	}
	return s.summarize(lines), nil
}

func (s *Service) summarize(lines []domain.CartLine) Summary {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Price)
	}

	shipping := decimal.Zero
	if subtotal.LessThan(s.pricing.FreeShippingThreshold) {
		shipping = s.pricing.ShippingFlatRate
	}

	return Summary{
		Count:    len(lines),
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal.Add(shipping),
	}
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context, cartID string) error {
	if err := s.store.Delete(ctx, cartID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	s.notifier.CartChanged(ctx, cartID, 0)
	return nil
}

var hundred = decimal.NewFromInt(100)

// PaymentLineItems converts the cart to the payment boundary's shape. Prices
// become minor currency units, rounded to the nearest cent; quantity is
// always 1 because each artwork is a unique piece.
func (s *Service) PaymentLineItems(ctx context.Context, cartID string) ([]payment.LineItem, error) {
	lines, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	items := make([]payment.LineItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, payment.LineItem{
			Name:        line.Title,
			Description: fmt.Sprintf("By %s", line.ArtistName),
			ImageURL:    line.ImageURL,
			UnitAmount:  toMinorUnits(line.Price),
			Quantity:    1,
			Currency:    s.pricing.Currency,
		})
	}
	return items, nil
}

// ShippingMinorUnits returns the shipping charge for the payment boundary.
func (s *Service) ShippingMinorUnits(ctx context.Context, cartID string) (int64, error) {
	summary, err := s.Summary(ctx, cartID)
	if err != nil {
		return 0, err
	}
	return toMinorUnits(summary.Shipping), nil
}

func toMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}
