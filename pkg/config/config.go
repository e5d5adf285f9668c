package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"Wallboard/pkg/util"
)

type Config struct {
	Environment string `yaml:"environment" default:"development" validate:"required"`
	// Location is the IANA zone used to read naive snapshot timestamps and
	// render clocks. "Local" is the host zone, matching the backend's naive
	// datetime.now(); set Asia/Shanghai explicitly for a remote host.
	Location string `yaml:"location" default:"Local" validate:"required"`
	API      struct {
		BaseURL      string        `yaml:"base_url" default:"http://localhost:8000" validate:"required,url"`
		SnapshotPath string        `yaml:"snapshot_path" default:"/data/latest" validate:"required,startswith=/"`
		ConfigPath   string        `yaml:"config_path" default:"/config" validate:"required,startswith=/"`
		Timeout      time.Duration `yaml:"timeout" default:"10s" validate:"gt=0s"`
	} `yaml:"api"`
	Refresh struct {
		Interval   time.Duration `yaml:"interval" default:"30s" validate:"gt=0s"`
		FreshFor   time.Duration `yaml:"fresh_for" default:"30s" validate:"gt=0s"`
		StaleAfter time.Duration `yaml:"stale_after" default:"60s" validate:"gtfield=FreshFor"`
	} `yaml:"refresh"`
	Carousel struct {
		Interval time.Duration `yaml:"interval" default:"25s" validate:"gt=0s"`
	} `yaml:"carousel"`
	Clock struct {
		Interval time.Duration `yaml:"interval" default:"1s" validate:"gt=0s"`
	} `yaml:"clock"`
	Display struct {
		Mode      string `yaml:"mode" default:"auto" validate:"oneof=auto terminal log none"`
		WebSocket bool   `yaml:"websocket" default:"true"`
	} `yaml:"display"`
	Server struct {
		Enabled         bool          `yaml:"enabled" default:"true"`
		Host            string        `yaml:"host" default:"127.0.0.1"`
		Port            int           `yaml:"port" default:"8090" validate:"gte=1,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"5s"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
		Format string `yaml:"format" default:"console" validate:"oneof=console json"`
		// Output defaults to stderr so the terminal display can own stdout.
		Output string `yaml:"output" default:"stderr" validate:"required"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
}

var validate = validator.New()

// Default returns a configuration holding only default values.
func Default() *Config {
	var c Config
	if err := defaults.Set(&c); err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return &c
}

// Load reads and parses a YAML configuration file on top of the defaults.
// A missing file is not an error: the defaults are used as-is.
func Load(path string) (*Config, error) {
	c := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, c); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("WALLBOARD_API"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("WALLBOARD_SNAPSHOT_PATH"); v != "" {
		c.API.SnapshotPath = v
	}
	if v := os.Getenv("WALLBOARD_DISPLAY"); v != "" {
		c.Display.Mode = v
	}
	c.Server.Port = util.ParseIntDefault(os.Getenv("WALLBOARD_PORT"), c.Server.Port)
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return err
	}
	if _, err := time.LoadLocation(c.Location); err != nil {
		return fmt.Errorf("location %q: %w", c.Location, err)
	}
	return nil
}

// TimeLocation resolves Location. Validate guarantees it loads.
func (c *Config) TimeLocation() *time.Location {
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return time.Local
	}
	return loc
}

// SnapshotURL is the full snapshot endpoint.
func (c *Config) SnapshotURL() string {
	return c.API.BaseURL + c.API.SnapshotPath
}

// ConfigURL is the full admin configuration endpoint.
func (c *Config) ConfigURL() string {
	return c.API.BaseURL + c.API.ConfigPath
}
