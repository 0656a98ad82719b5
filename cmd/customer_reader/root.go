package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DjordjeVuckovic/customer-reader/internal/apperr"
	"github.com/DjordjeVuckovic/customer-reader/internal/ingest"
	"github.com/DjordjeVuckovic/customer-reader/internal/presenter"
	"github.com/DjordjeVuckovic/customer-reader/internal/reader"
	"github.com/DjordjeVuckovic/customer-reader/internal/storage"
	"github.com/DjordjeVuckovic/customer-reader/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/customer-reader/internal/storage/json_file"
)

const appName = "customer-reader"

func newRootCmd() *cobra.Command {
	var (
		workers     int
		bulkSize    int
		mappingPath string
		exportPath  string
		logLevel    string
	)

	cmd := &cobra.Command{
		Use:   appName + " FILE...",
		Short: "Import customers from CSV, XML and JSON files and print them",
		Long: "Reads every given file concurrently, collects the customers they contain\n" +
			"and prints a normalized summary of each one.",
		Example:       "  " + appName + " file1.csv file2.xml file3.json",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFiles(args); err != nil {
				printUsage(cmd.ErrOrStderr(), err)
				return err
			}

			cfg, err := NewAppConfig().Load()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("workers") {
				cfg.Workers = workers
			}
			if flags.Changed("bulk-size") {
				cfg.BulkSize = bulkSize
			}
			if flags.Changed("mapping") {
				cfg.MappingPath = mappingPath
			}
			if flags.Changed("export") {
				cfg.ExportPath = exportPath
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}

			logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)

			mapping, err := cfg.Mapping()
			if err != nil {
				return err
			}

			store := in_mem.NewCustomerStore()
			dispatcher, err := ingest.NewDispatcher(store, mapping,
				ingest.WithWorkers(cfg.Workers),
				ingest.WithBulkSize(cfg.BulkSize),
			)
			if err != nil {
				return err
			}

			dispatcher.Execute(cmd.Context(), args)

			var collection storage.Lister = store
			slog.Debug("Customers collected", "count", collection.Len())
			if cfg.ExportPath != "" {
				if err := export(cmd.Context(), cfg.ExportPath, collection); err != nil {
					return err
				}
			}

			return presenter.New(cmd.OutOrStdout()).Display(collection)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&workers, "workers", "w", 0, "maximum number of files read at once (0 = one per file) [READER_WORKERS]")
	flags.IntVar(&bulkSize, "bulk-size", 0, "append customers in batches of this size (0 = one at a time) [BULK_SIZE]")
	flags.StringVarP(&mappingPath, "mapping", "m", "", "YAML customer mapping file [MAPPING_CONFIG_PATH]")
	flags.StringVar(&exportPath, "export", "", "also write the collected customers to this file as JSON lines [EXPORT_PATH]")
	flags.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error [LOG_LEVEL]")

	return cmd
}

// validateFiles rejects the whole run unless every path exists and has a
// supported extension.
func validateFiles(paths []string) error {
	if len(paths) == 0 {
		return apperr.NewValidation("at least one file is required")
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return apperr.NewValidationWrap("can not locate file: "+path, err)
		}
		if info.IsDir() {
			return apperr.NewValidation("not a file: " + path)
		}
		if _, ok := reader.Lookup(path); !ok {
			return apperr.NewValidation("unsupported file extension: " + path)
		}
	}
	return nil
}

func export(ctx context.Context, path string, collection storage.Lister) error {
	customers := collection.All()
	file, err := os.Create(path)
	if err != nil {
		return apperr.NewFileAccess(path, err)
	}
	defer file.Close()

	if err := json_file.NewJSONFileStorer(file).SaveBulk(ctx, customers); err != nil {
		return apperr.NewFileAccess(path, err)
	}
	slog.Info("Customers exported", "file", path, "count", len(customers))
	return file.Close()
}

func printUsage(w io.Writer, err error) {
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		fmt.Fprintln(w, ve.Message)
	}
	fmt.Fprintln(w, "File(s) must exist and be of valid type.")
	fmt.Fprintln(w, "Valid file extensions are "+strings.Join(reader.Extensions(), ", "))
	fmt.Fprintln(w, "Example usage: "+appName+" file1.csv file2.xml file3.json")
}
