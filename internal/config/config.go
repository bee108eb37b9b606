package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the guardian configuration.
type Config struct {
	Provider    string        `json:"provider"`
	Model       string        `json:"model"`
	Format      string        `json:"format"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"topP"`
	MaxTokens   int           `json:"maxTokens"`
	LogLevel    string        `json:"logLevel"`
	Intake      IntakeConfig  `json:"intake"`
	Server      ServerConfig  `json:"server"`
	Cache       CacheConfig   `json:"cache"`
	Privacy     PrivacyConfig `json:"privacy"`
}

// IntakeConfig controls project file selection.
type IntakeConfig struct {
	MaxFiles    int `json:"maxFiles"`
	Concurrency int `json:"concurrency"`
}

// ServerConfig controls the HTTP server behind the browser UI.
type ServerConfig struct {
	Addr           string  `json:"addr"`
	RateLimitRPS   float64 `json:"rateLimitRps"`
	RateLimitBurst int     `json:"rateLimitBurst"`
	TimeoutSeconds int     `json:"timeoutSeconds"`
	MaxUploadBytes int64   `json:"maxUploadBytes"`
}

// CacheConfig controls caching behavior.
type CacheConfig struct {
	Enabled       bool   `json:"enabled"`
	Dir           string `json:"dir,omitempty"`
	TTLSeconds    int    `json:"ttlSeconds"`
	MemoryEntries int    `json:"memoryEntries"`
}

// PrivacyConfig controls privacy/redaction behavior.
type PrivacyConfig struct {
	RedactSecrets bool     `json:"redactSecrets"`
	RedactPaths   []string `json:"redactPaths,omitempty"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Provider:    "gemini",
		Model:       "gemini-2.5-pro",
		Format:      "text",
		Temperature: 0.5,
		TopP:        0.95,
		MaxTokens:   8192,
		LogLevel:    "info",
		Intake: IntakeConfig{
			MaxFiles:    100,
			Concurrency: 8,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			RateLimitRPS:   1,
			RateLimitBurst: 3,
			TimeoutSeconds: 300,
			MaxUploadBytes: 32 << 20,
		},
		Cache: CacheConfig{
			Enabled:       true,
			TTLSeconds:    86400,
			MemoryEntries: 128,
		},
		Privacy: PrivacyConfig{
			RedactSecrets: true,
			RedactPaths:   []string{"**/.env", "**/*secrets*"},
		},
	}
}

// LoadDotEnv loads variables from a .env file in the working directory, if
// present. Variables already set in the environment win.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// ConfigDir returns the platform-appropriate config directory for guardian.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "guardian"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "guardian"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "guardian"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "guardian"), nil
	default:
		return filepath.Join(home, ".config", "guardian"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads config from the config file. Returns zero Config and nil error if file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func mergeFile(dst *Config, src Config) {
	if src.Provider != "" {
		dst.Provider = src.Provider
	}
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.Temperature > 0 {
		dst.Temperature = src.Temperature
	}
	if src.TopP > 0 {
		dst.TopP = src.TopP
	}
	if src.MaxTokens > 0 {
		dst.MaxTokens = src.MaxTokens
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.Intake.MaxFiles > 0 {
		dst.Intake.MaxFiles = src.Intake.MaxFiles
	}
	if src.Intake.Concurrency > 0 {
		dst.Intake.Concurrency = src.Intake.Concurrency
	}
	if src.Server.Addr != "" {
		dst.Server.Addr = src.Server.Addr
	}
	if src.Server.RateLimitRPS > 0 {
		dst.Server.RateLimitRPS = src.Server.RateLimitRPS
	}
	if src.Server.RateLimitBurst > 0 {
		dst.Server.RateLimitBurst = src.Server.RateLimitBurst
	}
	if src.Server.TimeoutSeconds > 0 {
		dst.Server.TimeoutSeconds = src.Server.TimeoutSeconds
	}
	if src.Server.MaxUploadBytes > 0 {
		dst.Server.MaxUploadBytes = src.Server.MaxUploadBytes
	}
	if src.Cache.Dir != "" {
		dst.Cache.Dir = src.Cache.Dir
	}
	if src.Cache.TTLSeconds > 0 {
		dst.Cache.TTLSeconds = src.Cache.TTLSeconds
	}
	if src.Cache.MemoryEntries > 0 {
		dst.Cache.MemoryEntries = src.Cache.MemoryEntries
	}
	if len(src.Privacy.RedactPaths) > 0 {
		dst.Privacy.RedactPaths = src.Privacy.RedactPaths
	}
	// JSON cannot tell an unset bool from false, so booleans are only taken
	// from a file that was actually loaded.
	if !reflect.ValueOf(src).IsZero() {
		dst.Cache.Enabled = src.Cache.Enabled
		dst.Privacy.RedactSecrets = src.Privacy.RedactSecrets
	}
}

func mergeEnv(cfg *Config) error {
	if v := os.Getenv("GUARDIAN_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("GUARDIAN_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("GUARDIAN_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("GUARDIAN_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("GUARDIAN_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("GUARDIAN_MAX_FILES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GUARDIAN_MAX_FILES must be an integer: %w", err)
		}
		cfg.Intake.MaxFiles = n
	}
	return nil
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	for key, value := range overrides {
		if value == "" {
			continue
		}
		if err := SetField(cfg, key, value); err != nil {
			return err
		}
	}
	return nil
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "provider":
		cfg.Provider = value
	case "model":
		cfg.Model = value
	case "format":
		cfg.Format = value
	case "logLevel":
		cfg.LogLevel = value
	case "addr":
		cfg.Server.Addr = value
	case "temperature":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("temperature must be a number: %w", err)
		}
		cfg.Temperature = f
	case "topP":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("topP must be a number: %w", err)
		}
		cfg.TopP = f
	case "maxTokens":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxTokens must be an integer: %w", err)
		}
		cfg.MaxTokens = n
	case "maxFiles":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxFiles must be an integer: %w", err)
		}
		cfg.Intake.MaxFiles = n
	case "cacheEnabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("cacheEnabled must be true or false: %w", err)
		}
		cfg.Cache.Enabled = b
	case "redactSecrets":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("redactSecrets must be true or false: %w", err)
		}
		cfg.Privacy.RedactSecrets = b
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
