package processor

import (
	"context"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/customer-reader/internal/collector"
	"github.com/DjordjeVuckovic/customer-reader/internal/domain"
	"github.com/DjordjeVuckovic/customer-reader/internal/storage"
)

const defaultBatchSize = 1000

// Pipeline defines the interface for data processing pipelines
type Pipeline interface {
	// Run executes the pipeline with the given context
	Run(ctx context.Context) error
	// Processed reports how many items reached the store
	Processed() int
}

// BulkOptions defines bulk processing configuration
type BulkOptions struct {
	Enabled bool
	Size    int
}

// PipelineConfig defines configuration for pipelines
type PipelineConfig struct {
	Name string
	Bulk *BulkOptions
}

// CustomerPipeline moves customers from one collector into the store.
type CustomerPipeline struct {
	collector collector.Collector[domain.Customer]
	storer    storage.Storer
	config    *PipelineConfig
	processed int
}

type PipelineOption func(pipeline *CustomerPipeline)

// WithBulk appends in batches of size; a batch is one atomic append.
func WithBulk(size int) PipelineOption {
	return func(pipeline *CustomerPipeline) {
		if size <= 0 {
			return
		}
		if pipeline.config.Bulk == nil {
			pipeline.config.Bulk = &BulkOptions{}
		}
		pipeline.config.Bulk.Enabled = true
		pipeline.config.Bulk.Size = size
	}
}

// WithName labels the pipeline in logs, usually with the input path.
func WithName(name string) PipelineOption {
	return func(pipeline *CustomerPipeline) {
		pipeline.config.Name = name
	}
}

func NewPipeline(c collector.Collector[domain.Customer], storer storage.Storer, opts ...PipelineOption) *CustomerPipeline {
	p := &CustomerPipeline{
		collector: c,
		storer:    storer,
		config: &PipelineConfig{
			Name: "customer-pipeline",
			Bulk: &BulkOptions{
				Enabled: false,
				Size:    defaultBatchSize,
			},
		},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Run drains the collector. Customers collected before a failure stay in the
// store; the failure is logged and returned.
func (p *CustomerPipeline) Run(ctx context.Context) error {
	start := time.Now()
	slog.Debug("Starting pipeline run",
		"pipeline", p.config.Name,
		"bulk_enabled", p.config.Bulk.Enabled,
		"batch_size", p.config.Bulk.Size,
	)

	results, err := p.collector.Collect(ctx)
	if err != nil {
		slog.Error("Error collecting customers", "error", err, "pipeline", p.config.Name)
		return err
	}

	var runErr error
	if p.config.Bulk.Enabled {
		runErr = p.processBatch(ctx, results)
	} else {
		runErr = p.processBasic(ctx, results)
	}

	slog.Info("Pipeline run completed",
		"pipeline", p.config.Name,
		"processed", p.processed,
		"duration", time.Since(start),
		"error", runErr,
	)

	return runErr
}

// Processed returns how many customers reached the store.
func (p *CustomerPipeline) Processed() int {
	return p.processed
}

func (p *CustomerPipeline) processBasic(ctx context.Context, results <-chan collector.CollectionResult[domain.Customer]) error {
	var firstErr error

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res, ok := <-results:
			if !ok {
				return firstErr
			}

			if res.Err != nil {
				slog.Error("Error collecting customer", "error", res.Err, "pipeline", p.config.Name)
				if firstErr == nil {
					firstErr = res.Err
				}
				continue
			}

			id, err := p.storer.Save(ctx, res.Result)
			if err != nil {
				slog.Error("Error saving customer", "error", err, "pipeline", p.config.Name, "email", res.Result.Email)
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			slog.Debug("Customer saved", "id", id, "pipeline", p.config.Name)
			p.processed++
		}
	}
}

func (p *CustomerPipeline) processBatch(ctx context.Context, results <-chan collector.CollectionResult[domain.Customer]) error {
	var customers []domain.Customer
	var firstErr error

	flush := func() {
		if len(customers) == 0 {
			return
		}
		if err := p.storer.SaveBulk(ctx, customers); err != nil {
			slog.Error("Error saving customer batch", "error", err, "count", len(customers), "pipeline", p.config.Name)
			if firstErr == nil {
				firstErr = err
			}
		} else {
			p.processed += len(customers)
		}
		customers = customers[:0]
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res, ok := <-results:
			if !ok {
				flush()
				return firstErr
			}

			if res.Err != nil {
				slog.Error("Error collecting customer", "error", res.Err, "pipeline", p.config.Name)
				if firstErr == nil {
					firstErr = res.Err
				}
				continue
			}

			customers = append(customers, res.Result)
			if len(customers) >= p.config.Bulk.Size {
				flush()
			}
		}
	}
}
