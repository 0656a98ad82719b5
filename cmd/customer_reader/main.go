package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/DjordjeVuckovic/customer-reader/internal/apperr"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		var ve *apperr.ValidationError
		if !errors.As(err, &ve) {
			slog.Error("customer import failed", "error", err)
		}
		cancel()
		os.Exit(1)
	}
}
