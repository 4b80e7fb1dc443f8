package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Default directories for the apply tool. Empty means the client must
	// provide them per call.
	DataDir   string
	OutputDir string

	// Default merge keys, comma-delimited, applied when a call omits them.
	MergeKeys string

	// Safety limits.
	MaxInlineSize int64
	DryRunOnly    bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from STRATA_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		DataDir:       os.Getenv("STRATA_DATA_DIR"),
		OutputDir:     os.Getenv("STRATA_OUTPUT_DIR"),
		MergeKeys:     os.Getenv("STRATA_MERGE_KEYS"),
		MaxInlineSize: envInt64("STRATA_MAX_INLINE_SIZE", 10*1024*1024),
		DryRunOnly:    envBool("STRATA_DRY_RUN_ONLY", false),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}
