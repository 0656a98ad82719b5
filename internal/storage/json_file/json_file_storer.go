package json_file

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/DjordjeVuckovic/customer-reader/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONFileStorer writes every saved customer as one JSON document per line.
type JSONFileStorer struct {
	mu  sync.Mutex
	out io.Writer
}

func NewJSONFileStorer(out io.Writer) *JSONFileStorer {
	return &JSONFileStorer{
		out: out,
	}
}

func (s *JSONFileStorer) Save(ctx context.Context, customer domain.Customer) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}

	line, err := json.Marshal(customer)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to encode customer: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.out.Write(append(line, '\n')); err != nil {
		return uuid.Nil, fmt.Errorf("failed to write customer: %w", err)
	}
	return customer.ID, nil
}

// SaveBulk writes the batch without interleaving lines from concurrent callers.
func (s *JSONFileStorer) SaveBulk(ctx context.Context, customers []domain.Customer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	w := bufio.NewWriter(s.out)
	stream := jsoniter.NewStream(json, w, 4096)
	for _, customer := range customers {
		if customer.ID == uuid.Nil {
			customer.ID = uuid.New()
		}
		stream.WriteVal(customer)
		stream.WriteRaw("\n")
		if stream.Error != nil {
			return fmt.Errorf("failed to encode customer: %w", stream.Error)
		}
	}
	if err := stream.Flush(); err != nil {
		return fmt.Errorf("failed to write customers: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write customers: %w", err)
	}

	slog.Debug("Customers written to json file", "count", len(customers))
	return nil
}
