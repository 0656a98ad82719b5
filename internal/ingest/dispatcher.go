package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/DjordjeVuckovic/customer-reader/internal/collector"
	"github.com/DjordjeVuckovic/customer-reader/internal/processor"
	"github.com/DjordjeVuckovic/customer-reader/internal/reader"
	"github.com/DjordjeVuckovic/customer-reader/internal/storage"
	"github.com/DjordjeVuckovic/customer-reader/pkg/apis"
)

// Dispatcher runs one import pipeline per input file, all concurrently, and
// waits for every one of them. A failing file never affects the others.
type Dispatcher struct {
	storer   storage.Storer
	mapping  *apis.CustomerMapping
	mapper   reader.Mapper
	workers  int
	bulkSize int
}

type Option func(*Dispatcher)

// WithWorkers caps the number of files read at the same time. Zero or less means no cap.
func WithWorkers(n int) Option {
	return func(d *Dispatcher) {
		d.workers = n
	}
}

// WithBulkSize makes each file append in batches instead of one record at a time.
func WithBulkSize(n int) Option {
	return func(d *Dispatcher) {
		d.bulkSize = n
	}
}

func NewDispatcher(storer storage.Storer, mapping *apis.CustomerMapping, opts ...Option) (*Dispatcher, error) {
	mapper, err := reader.NewCustomerMapper(mapping)
	if err != nil {
		return nil, fmt.Errorf("invalid customer mapping: %w", err)
	}

	d := &Dispatcher{
		storer:  storer,
		mapping: mapping,
		mapper:  mapper,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Execute blocks until every file has been read to completion or failure.
// Results are only visible through the storer.
func (d *Dispatcher) Execute(ctx context.Context, paths []string) {
	start := time.Now()

	var g errgroup.Group
	if d.workers > 0 {
		g.SetLimit(d.workers)
	}

	launched := 0
	for _, path := range paths {
		factory, ok := reader.Lookup(path)
		if !ok {
			slog.Warn("File extension not supported, skipping", "file", path, "extension", reader.Extension(path))
			continue
		}

		launched++
		g.Go(func() error {
			d.importFile(ctx, path, factory)
			return nil
		})
	}
	_ = g.Wait()

	slog.Info("All readers finished", "files", launched, "skipped", len(paths)-launched, "duration", time.Since(start))
}

func (d *Dispatcher) importFile(ctx context.Context, path string, factory reader.Factory) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Reader panicked", "file", path, "panic", r, "stack", string(debug.Stack()))
		}
	}()

	c := collector.NewCustomerCollector(path, factory, d.mapping, d.mapper)
	var p processor.Pipeline = processor.NewPipeline(c, d.storer,
		processor.WithName(path),
		processor.WithBulk(d.bulkSize),
	)

	if err := p.Run(ctx); err != nil {
		slog.Warn("File import stopped early", "file", path, "added", p.Processed(), "error", err)
	}
}
