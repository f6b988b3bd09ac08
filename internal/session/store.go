package session

import (
	"context"
	"errors"

	"github.com/nerkean/vuzlyk-do-vuzlyka-site/internal/domain"
)

// Store keeps one cart per visitor session. It is the only shared mutable
// state this module writes; reads and writes of a single cart are atomic
// at the store level.
type Store interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Set(ctx context.Context, sessionID string, cart *domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

var ErrCartNotFound = errors.New("cart not found")
