// Package config defines the client configuration: realm, transport
// endpoint, and retry behavior. Configuration is loaded once from YAML (or
// JSON, which YAML subsumes) during startup and accessed through SafeConfig
// afterwards.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gieseladev/wampio/pkg/retry"
	"github.com/gieseladev/wampio/uri"
)

// Transport kinds accepted in TransportConfig.Kind.
const (
	TransportWebSocket = "websocket"
	TransportNATS      = "nats"
)

// Duration is a time.Duration that unmarshals from strings like "250ms".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// TransportConfig selects and parameterizes the wire transport.
type TransportConfig struct {
	// Kind is one of TransportWebSocket or TransportNATS.
	Kind string `yaml:"kind" json:"kind"`

	// URL is the endpoint to dial: a ws:// or wss:// URL for websocket,
	// a nats:// URL for NATS.
	URL string `yaml:"url" json:"url"`

	// Subject is the peer's subject for the NATS transport; ignored
	// otherwise.
	Subject string `yaml:"subject,omitempty" json:"subject,omitempty"`
}

// RetryConfig controls transport dial retries.
type RetryConfig struct {
	MaxAttempts  int      `yaml:"max_attempts" json:"max_attempts"`
	InitialDelay Duration `yaml:"initial_delay" json:"initial_delay"`
	MaxDelay     Duration `yaml:"max_delay" json:"max_delay"`
	Multiplier   float64  `yaml:"multiplier" json:"multiplier"`
}

// ToRetryConfig converts to the retry framework's config, with jitter
// enabled.
func (rc RetryConfig) ToRetryConfig() retry.Config {
	return retry.Config{
		MaxAttempts:  rc.MaxAttempts,
		InitialDelay: time.Duration(rc.InitialDelay),
		MaxDelay:     time.Duration(rc.MaxDelay),
		Multiplier:   rc.Multiplier,
		AddJitter:    true,
	}
}

// Config is the complete client configuration.
type Config struct {
	// Realm names the routing realm the client joins.
	Realm string `yaml:"realm" json:"realm"`

	Transport TransportConfig `yaml:"transport" json:"transport"`
	Retry     RetryConfig     `yaml:"retry,omitempty" json:"retry,omitempty"`

	// ErrorPrefix is the URI prefix applications use for their own error
	// kinds, e.g. "com.example.myapp.error". Optional.
	ErrorPrefix string `yaml:"error_prefix,omitempty" json:"error_prefix,omitempty"`
}

// Validate checks the configuration and fills in defaults. It must be
// called before the config is used; Load does so automatically.
func (c *Config) Validate() error {
	if c.Realm == "" {
		return fmt.Errorf("realm is required")
	}

	if c.Transport.Kind == "" {
		c.Transport.Kind = TransportWebSocket
	}
	switch c.Transport.Kind {
	case TransportWebSocket:
	case TransportNATS:
		if c.Transport.Subject == "" {
			return fmt.Errorf("transport.subject is required for the nats transport")
		}
	default:
		return fmt.Errorf("unknown transport kind %q", c.Transport.Kind)
	}
	if c.Transport.URL == "" {
		return fmt.Errorf("transport.url is required")
	}

	if c.Retry.MaxAttempts == 0 {
		def := retry.DefaultConfig()
		c.Retry = RetryConfig{
			MaxAttempts:  def.MaxAttempts,
			InitialDelay: Duration(def.InitialDelay),
			MaxDelay:     Duration(def.MaxDelay),
			Multiplier:   def.Multiplier,
		}
	}

	if c.ErrorPrefix != "" {
		if _, err := uri.Parse(c.ErrorPrefix); err != nil {
			return fmt.Errorf("error_prefix: %w", err)
		}
	}

	return nil
}

// Load reads and validates the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// SafeConfig provides thread-safe access to a Config that may be swapped
// at runtime.
type SafeConfig struct {
	mu     sync.RWMutex
	config *Config
}

// NewSafeConfig wraps cfg; a nil cfg starts empty.
func NewSafeConfig(cfg *Config) *SafeConfig {
	if cfg == nil {
		cfg = &Config{}
	}
	return &SafeConfig{config: cfg}
}

// Get returns a copy of the current configuration.
func (sc *SafeConfig) Get() Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return *sc.config
}

// Update validates cfg and makes it the current configuration.
func (sc *SafeConfig) Update(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.config = cfg
	return nil
}
