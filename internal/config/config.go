package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultVaultPath    = "~/Documents/obsidian"
	DefaultClippingsDir = "Clippings"
	DefaultModel        = "sonnet"
)

// Config carries everything the binaries need to wire the pipeline.
type Config struct {
	// VaultPath is the root of the Obsidian vault.
	VaultPath string
	// ClippingsDir is the vault-relative folder watched for new articles.
	ClippingsDir string
	// StateDir holds the watcher state files and the run ledger.
	StateDir string
	// ServerCommand and ServerArgs launch the MCP tool host over stdio.
	ServerCommand string
	ServerArgs    []string
	// Model selects the Claude CLI model alias.
	Model string
}

// Load builds a Config from environment variables with sensible defaults.
func Load() Config {
	cfg := Config{
		VaultPath:     envOr("BREAKDOWN_VAULT", DefaultVaultPath),
		ClippingsDir:  envOr("BREAKDOWN_CLIPPINGS", DefaultClippingsDir),
		Model:         envOr("BREAKDOWN_MODEL", DefaultModel),
		ServerCommand: "breakdown-mcp",
	}

	if server := os.Getenv("BREAKDOWN_MCP_SERVER"); server != "" {
		parts := strings.Fields(server)
		cfg.ServerCommand = parts[0]
		cfg.ServerArgs = parts[1:]
	}

	cfg.StateDir = envOr("BREAKDOWN_STATE_DIR", defaultStateDir())

	return cfg
}

// WatchDir returns the absolute path of the clippings folder.
func (c Config) WatchDir() string {
	return filepath.Join(ExpandHome(c.VaultPath), c.ClippingsDir)
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultStateDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "breakdown")
}
