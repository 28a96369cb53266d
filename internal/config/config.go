package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/tailscale/hujson"

	applog "github.com/Tiliavir/shifttap/internal/log"
)

// Config is the root configuration for shifttap, stored in
// ~/.shifttap/config.json. The file may contain // and /* */ comments and
// trailing commas.
type Config struct {
	// StateFile is the app state snapshot to export from. Relative paths are
	// resolved against the shifttap home directory.
	StateFile string `json:"state_file"`
	// OutputDir receives the generated PDF. Relative paths are resolved
	// against the working directory.
	OutputDir string `json:"output_dir"`
	// PageSize is the paper format: A3, A4, Letter or Legal.
	PageSize string `json:"page_size"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level"`
}

const (
	// DefaultDirName is the folder under the user's home directory.
	DefaultDirName = ".shifttap"
	// DefaultStateFile is the snapshot name inside the home directory.
	DefaultStateFile = "state.json"
	DefaultPageSize  = "A4"
	DefaultLogLevel  = "info"

	// HomeEnv overrides the shifttap home directory.
	HomeEnv = "SHIFTTAP_HOME"
)

// pageSizes are the formats wide enough for the detail table and tall
// enough for a 31-day summary on one page.
var pageSizes = []string{"A3", "A4", "Letter", "Legal"}

// PageSizes returns the accepted page_size values.
func PageSizes() []string {
	return append([]string(nil), pageSizes...)
}

// defaultConfig returns a Config pre-filled with defaults for base.
func defaultConfig(base string) Config {
	return Config{
		StateFile: filepath.Join(base, DefaultStateFile),
		OutputDir: ".",
		PageSize:  DefaultPageSize,
		LogLevel:  DefaultLogLevel,
	}
}

// configTemplate is the annotated config written on first run.
const configTemplate = `// shifttap configuration
//
// All settings are optional. Environment variables override them:
// SHIFTTAP_STATE_FILE, SHIFTTAP_OUTPUT_DIR, SHIFTTAP_PAGE_SIZE,
// SHIFTTAP_LOG_LEVEL. A .env file in the working directory is read too.
{
  // Shift-Tap state export to read entries and settings from.
  // Relative paths are resolved against this directory.
  "state_file": "state.json",

  // Directory that receives Shift-Tap_YYYY-MM-DD.pdf.
  "output_dir": ".",

  // Paper format: "A3", "A4", "Letter" or "Legal".
  "page_size": "A4",

  // debug, info, warn or error. Logs go to stderr.
  "log_level": "info",
}
`

// BaseDir returns the shifttap home directory, ~/.shifttap unless
// SHIFTTAP_HOME is set.
func BaseDir() (string, error) {
	if override := strings.TrimSpace(os.Getenv(HomeEnv)); override != "" {
		return expandHome(override)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, DefaultDirName), nil
}

// Load reads .env (if present) and the config file in the home directory,
// creating the file with annotated defaults on first run, then applies
// environment overrides.
func Load() (Config, error) {
	_ = godotenv.Load()

	base, err := BaseDir()
	if err != nil {
		return Config{}, err
	}
	return LoadFrom(base)
}

// LoadFrom loads base/config.json and applies environment overrides.
func LoadFrom(base string) (Config, error) {
	path := filepath.Join(base, "config.json")
	cfg := defaultConfig(base)

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
	case err != nil:
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	default:
		fileCfg, err := parse(data)
		if err != nil {
			return cfg, fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
		}
		cfg = merge(cfg, fileCfg)
	}

	cfg = merge(cfg, fromEnv())

	if cfg.StateFile, err = resolve(base, cfg.StateFile); err != nil {
		return cfg, err
	}
	if cfg.OutputDir, err = expandHome(cfg.OutputDir); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports every invalid setting in one error.
func (c Config) Validate() error {
	var problems []string

	if c.StateFile == "" {
		problems = append(problems, "state_file cannot be empty")
	}
	if c.OutputDir == "" {
		problems = append(problems, "output_dir cannot be empty")
	}
	if !validPageSize(c.PageSize) {
		problems = append(problems, fmt.Sprintf("invalid page_size %q: must be one of %v", c.PageSize, pageSizes))
	}
	if _, err := applog.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func validPageSize(s string) bool {
	for _, p := range pageSizes {
		if strings.EqualFold(p, s) {
			return true
		}
	}
	return false
}

func parse(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}
	return cfg, nil
}

func fromEnv() Config {
	return Config{
		StateFile: os.Getenv("SHIFTTAP_STATE_FILE"),
		OutputDir: os.Getenv("SHIFTTAP_OUTPUT_DIR"),
		PageSize:  os.Getenv("SHIFTTAP_PAGE_SIZE"),
		LogLevel:  os.Getenv("SHIFTTAP_LOG_LEVEL"),
	}
}

// merge overlays the non-empty fields of overlay onto base.
func merge(base, overlay Config) Config {
	if overlay.StateFile != "" {
		base.StateFile = overlay.StateFile
	}
	if overlay.OutputDir != "" {
		base.OutputDir = overlay.OutputDir
	}
	if overlay.PageSize != "" {
		base.PageSize = overlay.PageSize
	}
	if overlay.LogLevel != "" {
		base.LogLevel = overlay.LogLevel
	}
	return base
}

func resolve(base, path string) (string, error) {
	path, err := expandHome(path)
	if err != nil {
		return "", err
	}
	if path == "" || filepath.IsAbs(path) {
		return path, nil
	}
	return filepath.Join(base, path), nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// writeDefault creates the config directory and writes the annotated
// template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
