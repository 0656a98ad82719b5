package collector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/customer-reader/internal/apperr"
	"github.com/DjordjeVuckovic/customer-reader/internal/domain"
	"github.com/DjordjeVuckovic/customer-reader/internal/reader"
	"github.com/DjordjeVuckovic/customer-reader/pkg/apis"
)

// CustomerCollector turns one input file into customers.
// Records decoded before a failure are emitted first, then a single error result.
type CustomerCollector struct {
	Path    string
	Factory reader.Factory
	Mapping *apis.CustomerMapping
	Mapper  reader.Mapper
}

func NewCustomerCollector(path string, factory reader.Factory, mapping *apis.CustomerMapping, mapper reader.Mapper) *CustomerCollector {
	return &CustomerCollector{
		Path:    path,
		Factory: factory,
		Mapping: mapping,
		Mapper:  mapper,
	}
}

func (cc *CustomerCollector) Collect(ctx context.Context) (<-chan CollectionResult[domain.Customer], error) {
	file, err := os.Open(cc.Path)
	if err != nil {
		return nil, apperr.NewFileAccess(cc.Path, err)
	}

	collectionResult := make(chan CollectionResult[domain.Customer])
	go func() {
		defer close(collectionResult)
		defer file.Close()
		defer func() {
			if r := recover(); r != nil {
				send(ctx, collectionResult, CollectionResult[domain.Customer]{
					Err: fmt.Errorf("reader panicked on %s: %v", cc.Path, r),
				})
			}
		}()

		records, readErr := cc.Factory(file, cc.Mapping).Read()
		slog.Debug("File decoded", "file", cc.Path, "records", len(records), "error", readErr)

		for i, record := range records {
			customer, err := cc.Mapper.Map(record)
			if err != nil {
				me := apperr.NewMalformedRecordWrap(i+1, "mapping failed", err)
				me.Path = cc.Path
				send(ctx, collectionResult, CollectionResult[domain.Customer]{Err: me})
				return
			}
			customer.Source = cc.Path

			if !send(ctx, collectionResult, CollectionResult[domain.Customer]{Result: customer}) {
				return
			}
		}

		if readErr != nil {
			send(ctx, collectionResult, CollectionResult[domain.Customer]{Err: cc.classify(readErr)})
		}
	}()

	return collectionResult, nil
}

// classify tags decode errors with the file path; anything else is an I/O failure.
func (cc *CustomerCollector) classify(err error) error {
	var me *apperr.MalformedRecordError
	if errors.As(err, &me) {
		if me.Path == "" {
			me.Path = cc.Path
		}
		return err
	}
	return apperr.NewFileAccess(cc.Path, err)
}

func send[T any](ctx context.Context, ch chan<- CollectionResult[T], res CollectionResult[T]) bool {
	select {
	case ch <- res:
		return true
	case <-ctx.Done():
		return false
	}
}
