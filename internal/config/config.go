package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/goerr/v2"
)

const defaultBaseURL = "https://api.monkeytype.com"

// Config holds the credentials and endpoint for the Monkeytype API.
type Config struct {
	APIKey  string
	User    string
	BaseURL string
}

// Load reads configuration from the environment, after merging in a
// .env file from the working directory or ~/.config/monkeystats/.env
// (first one found wins; absence is not an error). MONKEYTYPE_API_KEY
// and MONKEYTYPE_USER are required.
func Load() (Config, error) {
	for _, path := range envPaths() {
		if _, err := os.Stat(path); err == nil {
			// Does not override variables already set in the environment.
			if err := godotenv.Load(path); err != nil {
				return Config{}, goerr.Wrap(err, "failed to load env file", goerr.V("path", path))
			}
			break
		}
	}

	cfg := Config{
		APIKey:  os.Getenv("MONKEYTYPE_API_KEY"),
		User:    os.Getenv("MONKEYTYPE_USER"),
		BaseURL: os.Getenv("MONKEYTYPE_API_URL"),
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}

	if cfg.APIKey == "" || cfg.User == "" {
		return Config{}, goerr.New("MONKEYTYPE_API_KEY and MONKEYTYPE_USER must be set")
	}

	return cfg, nil
}

func envPaths() []string {
	paths := []string{".env"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "monkeystats", ".env"))
	}
	return paths
}
