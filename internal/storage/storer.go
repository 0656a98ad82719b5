package storage

import (
	"context"

	"github.com/DjordjeVuckovic/customer-reader/internal/domain"
	"github.com/google/uuid"
)

// Storer is the append side handed to readers. Each call is atomic.
type Storer interface {
	Save(ctx context.Context, customer domain.Customer) (uuid.UUID, error)
	SaveBulk(ctx context.Context, customers []domain.Customer) error
}

// Lister is the read side used once every reader has finished.
type Lister interface {
	All() []domain.Customer
	Len() int
}
