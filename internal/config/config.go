package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/yosuke-furukawa/json5/encoding/json5"
)

const (
	DirName            = "jobflow"
	ConfigFileName     = "config.json"
	CredentialFileName = "credential.json"

	DefaultAPIURL     = "http://localhost:3001/"
	DefaultListenAddr = ":8080"
	DefaultTimeout    = 10
	DefaultPageSize   = 10
)

// Config contains the frontend and client settings.
type Config struct {
	APIURL            string `json:"api_url"`
	APITimeoutSeconds int    `json:"api_timeout_seconds"`
	ListenAddr        string `json:"listen_addr"`
	PageSize          int    `json:"page_size"`
	LoginURL          string `json:"login_url"`
	Proxy             string `json:"proxy"`
	CredentialFile    string `json:"credential_file"`
	ContentFile       string `json:"content_file"`
}

func DefaultConfig() Config {
	return Config{
		APIURL:            envString("JOBFLOW_API_URL", DefaultAPIURL),
		APITimeoutSeconds: envInt("JOBFLOW_API_TIMEOUT_SECONDS", DefaultTimeout),
		ListenAddr:        envString("JOBFLOW_LISTEN_ADDR", DefaultListenAddr),
		PageSize:          envInt("JOBFLOW_PAGE_SIZE", DefaultPageSize),
		LoginURL:          envString("JOBFLOW_LOGIN_URL", "/preferences"),
		Proxy:             envString("JOBFLOW_PROXY", ""),
		CredentialFile:    envString("JOBFLOW_CREDENTIAL_FILE", ""),
		ContentFile:       envString("JOBFLOW_CONTENT_FILE", ""),
	}
}

func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// CredentialPath returns the configured credential file, or the default
// location next to config.json.
func (c Config) CredentialPath() (string, error) {
	if path := strings.TrimSpace(c.CredentialFile); path != "" {
		return path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, CredentialFileName), nil
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.APITimeoutSeconds) * time.Second
}

// Validate fills zero values with defaults and rejects unusable settings.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIURL) == "" {
		c.APIURL = DefaultAPIURL
	}
	parsed, err := url.Parse(c.APIURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid api_url: %q", c.APIURL)
	}
	if c.APITimeoutSeconds <= 0 {
		c.APITimeoutSeconds = DefaultTimeout
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if strings.TrimSpace(c.ListenAddr) == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if strings.TrimSpace(c.LoginURL) == "" {
		c.LoginURL = "/preferences"
	}
	return nil
}

func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), err
	}
	return LoadFile(path)
}

// LoadFile reads a json5 config file over the defaults. A missing or empty
// file yields the defaults.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, cfg.Validate()
		}
		return cfg, err
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, cfg.Validate()
	}

	if err := json5.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// Init writes a default config.json if it doesn't already exist.
func Init() ([]string, error) {
	var created []string

	dir, err := ConfigDir()
	if err != nil {
		return created, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return created, err
	}

	configPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := writeConfig(configPath, DefaultConfig()); err != nil {
			return created, err
		}
		created = append(created, configPath)
	}

	return created, nil
}

func writeConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// ResolveProxy prefers the flag value, then the configured proxy.
func ResolveProxy(flagValue string, cfg Config) string {
	if strings.TrimSpace(flagValue) != "" {
		return strings.TrimSpace(flagValue)
	}
	return strings.TrimSpace(cfg.Proxy)
}

func envString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
