// Package config loads ideaform settings from defaults, an optional YAML
// file, a .env file and IDEAFORM_* environment variables, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-ideaform/pkg/submission"
	"github.com/goliatone/go-ideaform/pkg/theming"
)

// EnvPrefix namespaces environment overrides, e.g. IDEAFORM_SERVER_ADDR.
const EnvPrefix = "IDEAFORM"

type Config struct {
	Server     ServerConfig     `mapstructure:"server" yaml:"server"`
	Submission SubmissionConfig `mapstructure:"submission" yaml:"submission"`
	Backend    BackendConfig    `mapstructure:"backend" yaml:"backend"`
	Theme      ThemeConfig      `mapstructure:"theme" yaml:"theme"`
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
	// Catalog optionally points at a YAML or JSON copy catalog replacing the
	// embedded one.
	Catalog string `mapstructure:"catalog" yaml:"catalog"`
}

type ServerConfig struct {
	Addr          string        `mapstructure:"addr" yaml:"addr"`
	BasePath      string        `mapstructure:"base_path" yaml:"base_path"`
	SessionTTL    time.Duration `mapstructure:"session_ttl" yaml:"session_ttl"`
	SecureCookies bool          `mapstructure:"secure_cookies" yaml:"secure_cookies"`
}

type SubmissionConfig struct {
	Endpoint string        `mapstructure:"endpoint" yaml:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// BackendConfig drives the local development backend.
type BackendConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
	Seed int    `mapstructure:"seed" yaml:"seed"`
	// FailStatus forces every submission to fail with this status when set.
	FailStatus int `mapstructure:"fail_status" yaml:"fail_status"`
}

type ThemeConfig struct {
	Name    string `mapstructure:"name" yaml:"name"`
	Variant string `mapstructure:"variant" yaml:"variant"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Addr:       ":8080",
			BasePath:   "/submit-idea",
			SessionTTL: 30 * time.Minute,
		},
		Submission: SubmissionConfig{
			Endpoint: submission.DefaultEndpoint,
			Timeout:  submission.DefaultTimeout,
		},
		Backend: BackendConfig{
			Addr: ":8787",
			Seed: 1,
		},
		Theme: ThemeConfig{
			Name:    theming.DefaultTheme,
			Variant: theming.DefaultVariant,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path (skipped when empty or missing) and envFiles, then applies
// IDEAFORM_* overrides. Missing env files are ignored.
func Load(path string, envFiles ...string) (*Config, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, Defaults())

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("config: read %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: stat %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg as YAML.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate reports settings that would leave a command unusable.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("config: server.addr is required"))
	}
	if !strings.HasPrefix(c.Server.BasePath, "/") {
		errs = append(errs, fmt.Errorf("config: server.base_path %q must start with /", c.Server.BasePath))
	}
	if c.Server.SessionTTL <= 0 {
		errs = append(errs, errors.New("config: server.session_ttl must be positive"))
	}
	if strings.TrimSpace(c.Submission.Endpoint) == "" {
		errs = append(errs, errors.New("config: submission.endpoint is required"))
	}
	if c.Submission.Timeout <= 0 {
		errs = append(errs, errors.New("config: submission.timeout must be positive"))
	}
	if c.Backend.Seed < 1 {
		errs = append(errs, errors.New("config: backend.seed must be at least 1"))
	}
	if status := c.Backend.FailStatus; status != 0 && (status < 400 || status > 599) {
		errs = append(errs, fmt.Errorf("config: backend.fail_status %d is not an error status", status))
	}
	return errors.Join(errs...)
}

func loadEnvFiles(files []string) error {
	var present []string
	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			present = append(present, file)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("config: load env files: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.base_path", d.Server.BasePath)
	v.SetDefault("server.session_ttl", d.Server.SessionTTL)
	v.SetDefault("server.secure_cookies", d.Server.SecureCookies)
	v.SetDefault("submission.endpoint", d.Submission.Endpoint)
	v.SetDefault("submission.timeout", d.Submission.Timeout)
	v.SetDefault("backend.addr", d.Backend.Addr)
	v.SetDefault("backend.seed", d.Backend.Seed)
	v.SetDefault("backend.fail_status", d.Backend.FailStatus)
	v.SetDefault("theme.name", d.Theme.Name)
	v.SetDefault("theme.variant", d.Theme.Variant)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("catalog", d.Catalog)
}
