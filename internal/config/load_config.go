package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
	"howett.net/plist"

	"github.com/jssimporter/jss-helper/internal/logger"
)

// Preference file locations, in lookup order after the YAML config.
const (
	AutoPkgPreferences   = "~/Library/Preferences/com.github.autopkg.plist"
	PythonJSSPreferences = "~/Library/Preferences/com.github.sheagcraig.python-jss.plist"
)

// ErrNoConfig is returned when none of the preference sources exist.
var ErrNoConfig = errors.New("no jss-helper, AutoPkg or python-jss configuration file")

// DefaultPath returns the default YAML config location: $HOME/.jss-helper.yaml.
func DefaultPath() string {
	return expandHome("~/.jss-helper.yaml")
}

// Load reads connection settings.
// When explicit is true, configFile must exist. Otherwise the YAML file is tried first and
// the AutoPkg and python-jss plists are used as fallbacks, in that order.
// JSS_URL, JSS_USER and JSS_PASSWORD override whatever the file contained.
func Load(configFile string, explicit bool) (*Config, error) {
	candidates := []string{configFile}
	if !explicit {
		candidates = append(candidates, expandHome(AutoPkgPreferences), expandHome(PythonJSSPreferences))
	}

	var (
		cfg *Config
		err error
	)
	for _, path := range candidates {
		if _, statErr := os.Stat(path); statErr != nil {
			logger.Debug("[DEBUG] Preference file %s not usable: %v\n", path, statErr)
			continue
		}
		cfg, err = LoadFile(path)
		if err != nil {
			return nil, err
		}
		break
	}
	if cfg == nil {
		if explicit {
			return nil, fmt.Errorf("read config %s: %w", configFile, os.ErrNotExist)
		}
		return nil, ErrNoConfig
	}

	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Info("[INFO] Preferences: %s\n", cfg.Source)
	logger.Debug("[DEBUG] Server: %s\n", cfg.URL)
	return cfg, nil
}

// LoadFile parses a single preference file, choosing the format by extension.
func LoadFile(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg := defaults()
	cfg.Source = path
	if strings.EqualFold(filepath.Ext(path), ".plist") {
		if err := parsePlist(raw, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.URL = strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	return &cfg, nil
}

// Validate checks the settings needed to reach the server.
func (c *Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("%s: server url is not set", c.Source)
	}
	if !strings.HasPrefix(c.URL, "http://") && !strings.HasPrefix(c.URL, "https://") {
		return fmt.Errorf("%s: server url %q must start with http:// or https://", c.Source, c.URL)
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Retries < 1 {
		c.Retries = DefaultRetries
	}
	return nil
}

// parsePlist fills cfg from either an AutoPkg or a python-jss preferences plist.
// AutoPkg keys win when both are present.
func parsePlist(raw []byte, cfg *Config) error {
	var ap autopkgPrefs
	if _, err := plist.Unmarshal(raw, &ap); err != nil {
		return err
	}
	var pj pythonJSSPrefs
	if _, err := plist.Unmarshal(raw, &pj); err != nil {
		return err
	}

	cfg.URL = firstNonEmpty(ap.URL, pj.URL)
	cfg.Username = firstNonEmpty(ap.User, pj.User)
	cfg.Password = firstNonEmpty(ap.Password, pj.Password)
	switch {
	case ap.VerifySSL != nil:
		cfg.VerifySSL = *ap.VerifySSL
	case pj.Verify != nil:
		cfg.VerifySSL = *pj.Verify
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("JSS_URL"); v != "" {
		cfg.URL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("JSS_USER"); v != "" {
		cfg.Username = v
	}
	if v := os.Getenv("JSS_PASSWORD"); v != "" {
		cfg.Password = v
	}
}

func defaults() Config {
	return Config{
		VerifySSL: true,
		Timeout:   DefaultTimeout,
		Retries:   DefaultRetries,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// expandHome replaces a leading "~" with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
