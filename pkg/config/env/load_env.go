package env

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from .env files.
// ENV_PATH, when set, replaces the default paths. Variables already present
// in the environment are never overwritten.
func LoadDotEnv(env string, defaultPaths ...string) error {
	envPaths := defaultPaths
	if p := os.Getenv("ENV_PATH"); p != "" {
		envPaths = []string{p}
	} else {
		slog.Debug("ENV_PATH is not set, using default paths", "defaultPaths", defaultPaths)
	}

	err := godotenv.Load(envPaths...)
	if err != nil {
		if env == "local" || env == "" {
			return err
		}
		slog.Debug("Skipping .env ...", "error", err)
	}

	return nil
}
