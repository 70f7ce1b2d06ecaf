package cart

import (
	"context"

	"github.com/specialdk/rac-artwork/internal/domain"
)

// Store persists a cart as one whole document under one durable key.
// Consumers define this interface, not the Redis implementation.
type Store interface {
	// Load returns the persisted lines for a cart, in insertion order. A
	// cart that was never saved loads as empty, not as an error.
	Load(ctx context.Context, cartID string) ([]domain.CartLine, error)
	// Save replaces the whole persisted document.
	Save(ctx context.Context, cartID string, lines []domain.CartLine) error
	// Delete removes the persisted document.
	Delete(ctx context.Context, cartID string) error
}
