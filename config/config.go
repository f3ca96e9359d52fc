package config

import (
	"log/slog"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

const (
	DefaultLocalURL       = "http://localhost:5000"
	DefaultRemoteURL      = "https://libretranslate.com"
	DefaultShortThreshold = 200
	DefaultTarget         = "es"
)

type BackendsConfig struct {
	LocalURL      string `mapstructure:"local_url"`
	RemoteURL     string `mapstructure:"remote_url"`
	LocalTimeout  string `mapstructure:"local_timeout"`
	RemoteTimeout string `mapstructure:"remote_timeout"`
	APIKey        string `mapstructure:"api_key"`
}

type RoutingConfig struct {
	LocalShortThreshold int  `mapstructure:"local_short_threshold"`
	DisableLocalShort   bool `mapstructure:"disable_local_short"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type Config struct {
	Backends BackendsConfig `mapstructure:"backends"`
	Routing  RoutingConfig  `mapstructure:"routing"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// Overrides carries explicit CLI-level settings. A nil field means the flag
// was not given and the loaded value stands; non-nil fields win over both
// defaults and environment variables.
type Overrides struct {
	LocalURL            *string
	RemoteURL           *string
	LocalShortThreshold *int
	DisableLocalShort   *bool
}

// Policy is the resolved routing policy handed to the selector and the
// dispatcher, with timeouts already parsed.
type Policy struct {
	LocalURL       string
	RemoteURL      string
	ShortThreshold int
	PreferLocal    bool
	LocalTimeout   time.Duration
	RemoteTimeout  time.Duration
	APIKey         string
}

func Load() (*Config, error) {
	viper.SetDefault("backends.local_url", DefaultLocalURL)
	viper.SetDefault("backends.remote_url", DefaultRemoteURL)
	viper.SetDefault("backends.local_timeout", "3s")
	viper.SetDefault("backends.remote_timeout", "10s")
	viper.SetDefault("backends.api_key", "")
	viper.SetDefault("routing.local_short_threshold", DefaultShortThreshold)
	viper.SetDefault("routing.disable_local_short", false)
	viper.SetDefault("logging.level", LogLevelWarn)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	// LT_LOCAL_URL, LT_LOCAL_SHORT_THRESHOLD, LT_DISABLE_LOCAL_SHORT, etc.
	viper.SetEnvPrefix("lt")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("BACKENDS.", "", "ROUTING.", "", "LOGGING.", "LOG_", ".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Error("failed to read config file", slog.String("error", err.Error()))
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		slog.Error("failed to unmarshal config", slog.String("error", err.Error()))
		return nil, err
	}

	return &cfg, nil
}

// Apply merges explicit overrides into the loaded configuration.
// Later sources win: defaults, then environment, then these.
func (c *Config) Apply(o Overrides) {
	if o.LocalURL != nil {
		c.Backends.LocalURL = *o.LocalURL
	}
	if o.RemoteURL != nil {
		c.Backends.RemoteURL = *o.RemoteURL
	}
	if o.LocalShortThreshold != nil {
		c.Routing.LocalShortThreshold = *o.LocalShortThreshold
	}
	if o.DisableLocalShort != nil {
		c.Routing.DisableLocalShort = *o.DisableLocalShort
	}
}

// Policy validates the configuration and resolves it into the routing
// policy used by the selector and the dispatcher.
func (c *Config) Policy() (Policy, error) {
	if err := c.Validate(); err != nil {
		return Policy{}, err
	}

	localTimeout, err := time.ParseDuration(c.Backends.LocalTimeout)
	if err != nil {
		return Policy{}, err
	}
	remoteTimeout, err := time.ParseDuration(c.Backends.RemoteTimeout)
	if err != nil {
		return Policy{}, err
	}

	return Policy{
		LocalURL:       strings.TrimRight(c.Backends.LocalURL, "/"),
		RemoteURL:      strings.TrimRight(c.Backends.RemoteURL, "/"),
		ShortThreshold: c.Routing.LocalShortThreshold,
		PreferLocal:    !c.Routing.DisableLocalShort,
		LocalTimeout:   localTimeout,
		RemoteTimeout:  remoteTimeout,
		APIKey:         c.Backends.APIKey,
	}, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Backends,
			validation.Required,
			validation.By(func(value interface{}) error {
				bc, ok := value.(BackendsConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a BackendsConfig")
				}
				return validation.ValidateStruct(&bc,
					validation.Field(&bc.LocalURL,
						validation.Required,
						validation.By(validateServerURL),
					),
					validation.Field(&bc.RemoteURL,
						validation.Required,
						validation.By(validateServerURL),
					),
					validation.Field(&bc.LocalTimeout,
						validation.Required,
						validation.By(validateDuration),
					),
					validation.Field(&bc.RemoteTimeout,
						validation.Required,
						validation.By(validateDuration),
					),
				)
			}),
		),
		validation.Field(&c.Routing,
			validation.By(func(value interface{}) error {
				rc, ok := value.(RoutingConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a RoutingConfig")
				}
				return validation.ValidateStruct(&rc,
					validation.Field(&rc.LocalShortThreshold,
						validation.Required,
						validation.Min(1),
					),
				)
			}),
		),
		validation.Field(&c.Logging,
			validation.Required,
			validation.By(func(value interface{}) error {
				lc, ok := value.(LoggingConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a LoggingConfig")
				}
				return validation.ValidateStruct(&lc,
					validation.Field(&lc.Level,
						validation.Required,
						validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
					),
				)
			}),
		),
	)
}

func validateDuration(value interface{}) error {
	durationStr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	if _, err := time.ParseDuration(durationStr); err != nil {
		return validation.NewError("validation_invalid_duration", "must be a valid duration (e.g., 2s, 5m, 1h)")
	}

	return nil
}

func validateServerURL(value interface{}) error {
	serverURL, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	if serverURL == "" {
		return validation.NewError("validation_empty_url", "server URL cannot be empty")
	}

	parsedURL, err := url.Parse(serverURL)
	if err != nil {
		return validation.NewError("validation_invalid_url", "must be a valid URL")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return validation.NewError("validation_invalid_scheme", "URL must use http or https scheme")
	}

	if parsedURL.Host == "" {
		return validation.NewError("validation_missing_host", "URL must have a host")
	}

	return nil
}
