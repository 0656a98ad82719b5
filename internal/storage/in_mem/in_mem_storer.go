package in_mem

import (
	"context"
	"log/slog"
	"sync"

	"github.com/DjordjeVuckovic/customer-reader/internal/domain"
	"github.com/google/uuid"
)

// CustomerStore is an append-only, insertion ordered collection safe for
// concurrent use. The lock covers the append only.
type CustomerStore struct {
	storageLock sync.RWMutex
	storage     []domain.Customer
}

func NewCustomerStore() *CustomerStore {
	return &CustomerStore{}
}

func (s *CustomerStore) Save(ctx context.Context, customer domain.Customer) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}

	s.storageLock.Lock()
	s.storage = append(s.storage, customer)
	s.storageLock.Unlock()

	slog.Debug("Customer added to in-memory storage", "id", customer.ID, "source", customer.Source)
	return customer.ID, nil
}

// SaveBulk appends all customers as one contiguous block.
func (s *CustomerStore) SaveBulk(ctx context.Context, customers []domain.Customer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	batch := make([]domain.Customer, len(customers))
	for i, customer := range customers {
		if customer.ID == uuid.Nil {
			customer.ID = uuid.New()
		}
		batch[i] = customer
	}

	s.storageLock.Lock()
	s.storage = append(s.storage, batch...)
	s.storageLock.Unlock()

	slog.Debug("Customers added to in-memory storage", "count", len(batch))
	return nil
}

// All returns a copy of the collection in insertion order.
func (s *CustomerStore) All() []domain.Customer {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	out := make([]domain.Customer, len(s.storage))
	copy(out, s.storage)
	return out
}

func (s *CustomerStore) Len() int {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()
	return len(s.storage)
}
