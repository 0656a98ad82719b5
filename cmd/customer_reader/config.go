package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/customer-reader/internal/reader"
	"github.com/DjordjeVuckovic/customer-reader/pkg/apis"
	"github.com/DjordjeVuckovic/customer-reader/pkg/config/env"
	"github.com/DjordjeVuckovic/customer-reader/pkg/stringsutil"
)

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type AppConfig struct {
	ENV string
}

type ReaderConfig struct {
	MappingPath string
	ExportPath  string
	CSVColumns  []string
	Workers     int
	BulkSize    int
	LogLevel    string
}

func (as *AppConfig) Load() (*ReaderConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/customer_reader/.env")
	if err != nil {
		slog.Debug("Skipping .env environment variables...", "error", err)
	}

	workers, err := intFromEnv("READER_WORKERS", 0)
	if err != nil {
		return nil, err
	}
	bulkSize, err := intFromEnv("BULK_SIZE", 0)
	if err != nil {
		return nil, err
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	var columns []string
	if raw := os.Getenv("CSV_COLUMNS"); raw != "" {
		parts := strings.Split(raw, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		columns = stringsutil.RemoveEmptyStrings(parts)
	}

	return &ReaderConfig{
		MappingPath: os.Getenv("MAPPING_CONFIG_PATH"),
		ExportPath:  os.Getenv("EXPORT_PATH"),
		CSVColumns:  columns,
		Workers:     workers,
		BulkSize:    bulkSize,
		LogLevel:    logLevel,
	}, nil
}

// Mapping returns the built-in mapping unless a mapping file is configured.
// CSVColumns, when set, replaces the column layout of either.
func (rc *ReaderConfig) Mapping() (*apis.CustomerMapping, error) {
	mapping := reader.DefaultMapping()
	if rc.MappingPath != "" {
		file, err := os.Open(rc.MappingPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open mapping file: %w", err)
		}
		defer file.Close()

		mapping, err = reader.NewYAMLConfigLoader(file).Load(true)
		if err != nil {
			return nil, fmt.Errorf("failed to load mapping file %s: %w", rc.MappingPath, err)
		}
	}

	if len(rc.CSVColumns) > 0 {
		mapping.CSVColumns = rc.CSVColumns
	}
	return mapping, nil
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func intFromEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s environment variable is not a number: %w", key, err)
	}
	return n, nil
}
