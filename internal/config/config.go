// Package config resolves on-disk locations and environment driven settings for cardcol.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v6"
)

const appDirName = "cardcol"

// GetDataDir resolves the base directory for all cardcol storage. CARDCOL_DIR wins,
// then the XDG data home, and finally the user's home directory.
func GetDataDir() string {
	if explicit := os.Getenv("CARDCOL_DIR"); explicit != "" {
		return explicit
	}

	xdg.Reload()

	dataHome := xdg.DataHome
	if dataHome == "" {
		home := xdg.Home
		if home == "" {
			var err error
			home, err = os.UserHomeDir()
			if err != nil {
				return filepath.Join(os.TempDir(), appDirName)
			}
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, appDirName)
}

// GetDBPath returns the absolute path to the SQLite database file.
func GetDBPath() string {
	return filepath.Join(GetDataDir(), "cards.db")
}

// GetExportsDir returns the directory that archives ingestion exports.
func GetExportsDir() string {
	return filepath.Join(GetDataDir(), "exports")
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// EncodeSeriesName turns a series name into something usable as a directory name.
func EncodeSeriesName(name string) string {
	encoded := strings.Trim(unsafeNameChars.ReplaceAllString(name, "-"), "-")
	if encoded == "" {
		return "unnamed"
	}
	return strings.ToLower(encoded)
}

// Server holds settings for the remote store HTTP API.
type Server struct {
	Host        string `env:"CARDCOL_HOST" envDefault:"localhost"`
	Port        string `env:"CARDCOL_PORT" envDefault:"3000"`
	DBPath      string `env:"CARDCOL_DB"`
	CORSOrigins string `env:"CARDCOL_CORS_ORIGINS" envDefault:"*"`
}

// Addr returns the listen address.
func (s Server) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// LoadServer parses server settings from the environment.
func LoadServer() (*Server, error) {
	cfg := &Server{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = GetDBPath()
	}
	return cfg, nil
}

// Client holds settings used to reach the remote store.
type Client struct {
	APIURL  string        `env:"CARDCOL_API_URL" envDefault:"http://localhost:3000/api/v1"`
	Timeout time.Duration `env:"CARDCOL_API_TIMEOUT" envDefault:"10s"`
}

// LoadClient parses client settings from the environment.
func LoadClient() (*Client, error) {
	cfg := &Client{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse client config: %w", err)
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("CARDCOL_API_TIMEOUT must be positive, got %s", cfg.Timeout)
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	return cfg, nil
}
