package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override loaded values.
const (
	EnvConfig   = "PIGMENTO_CONFIG"
	EnvDB       = "PIGMENTO_DB"
	EnvSSHAddr  = "PIGMENTO_SSH_ADDR"
	EnvHTTPAddr = "PIGMENTO_HTTP_ADDR"
	EnvSeed     = "PIGMENTO_SEED"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// LoadEnv reads KEY=VALUE files into the process environment.
// Missing files are ignored; variables already set win.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}
	return nil
}

// Load loads the Pigmento configuration.
// Search order: customPath -> $PIGMENTO_CONFIG -> ~/.pigmento/configs/pigmento.yaml
// -> ./configs/pigmento.yaml -> embedded default.
// Keys missing from a file keep their default values. Environment overrides
// are applied last and the result is validated.
func Load(customPath string) (Config, error) {
	if customPath == "" {
		customPath = os.Getenv(EnvConfig)
	}

	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg := DefaultConfig()
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return DefaultConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("pigmento.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			cfg := DefaultConfig()
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/pigmento.yaml"); err == nil {
		cfg := DefaultConfig()
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	var cfg Config
	if err := yaml.Unmarshal(defaultPigmentoYAML, &cfg); err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvDB); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv(EnvSSHAddr); v != "" {
		cfg.SSH.Address = v
	}
	if v := os.Getenv(EnvHTTPAddr); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvSeed, v, err)
		}
		cfg.Game.Seed = seed
	}
	return nil
}

// Validate checks every field against its constraints.
func Validate(cfg Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}

	var details strings.Builder
	for _, fe := range verrs {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		switch fe.Tag() {
		case "required":
			fmt.Fprintf(&details, "%s is required", field)
		case "min":
			fmt.Fprintf(&details, "%s must be at least %s", field, fe.Param())
		case "max":
			fmt.Fprintf(&details, "%s must be at most %s", field, fe.Param())
		default:
			fmt.Fprintf(&details, "%s failed %s validation", field, fe.Tag())
		}
	}
	return fmt.Errorf("invalid config: %s", details.String())
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pigmento", "configs", filename)
}
