package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/kode4food/testgen/pkg/api"
)

type (
	// Config holds configuration settings for the builder service and CLI
	Config struct {
		// API Server
		APIHost         string
		APIPort         int
		LogLevel        string
		ShutdownTimeout time.Duration

		Catalog CatalogConfig
		Ticket  TicketConfig
		Session SessionConfig
	}

	// CatalogConfig locates the line-based step and parameter resources
	CatalogConfig struct {
		URL             string
		StepsKey        string
		ParametersKey   string
		MethodsKey      string
		ParamDefault    string
		Timeout         int64
		RetryMaxElapsed int64
	}

	// TicketConfig selects and configures the ticket update client. A relay
	// URL takes precedence over direct Jira access
	TicketConfig struct {
		JiraBaseURL    string
		JiraUsername   string
		JiraAPIToken   string
		JiraAPIVersion string
		RelayURL       string
		Timeout        int64
	}

	// SessionConfig bounds and shapes builder sessions
	SessionConfig struct {
		CacheSize    int
		ExpandPolicy api.ExpandPolicy
	}
)

const (
	Millisecond int64 = 1
	Second            = 1000 * Millisecond
	Minute            = 60 * Second
)

const (
	DefaultShutdownTimeout = 10 * time.Second

	DefaultAPIPort = 8080
	DefaultAPIHost = "0.0.0.0"
	MaxTCPPort     = 65535

	DefaultCatalogURL           = "file:///var/lib/testgen/catalog"
	DefaultCatalogStepsKey      = "step-mappings.csv"
	DefaultCatalogParametersKey = "test-data-fields.csv"
	DefaultCatalogMethodsKey    = "step-methods.csv"
	DefaultCatalogParamDefault  = "default"
	DefaultCatalogTimeout       = 10 * Second
	DefaultCatalogRetryElapsed  = 30 * Second

	DefaultJiraAPIVersion = "2"
	DefaultTicketTimeout  = 30 * Second

	DefaultSessionCacheSize = 1024
	DefaultExpandPolicy     = api.ExpandPolicyExpanded

	MaxCatalogTimeout  = 10 * Minute
	MaxRetryElapsed    = 60 * Minute
	MaxTicketTimeout   = 10 * Minute
	MaxSessionCapacity = 1_000_000
)

var (
	ErrInvalidAPIPort        = errors.New("invalid API port")
	ErrCatalogURLRequired    = errors.New("catalog URL is required")
	ErrCatalogKeyRequired    = errors.New("catalog keys are required")
	ErrInvalidCatalogTimeout = errors.New("catalog timeout must be positive")
	ErrInvalidRetryElapsed   = errors.New(
		"catalog retry max elapsed cannot be negative",
	)
	ErrInvalidTicketTimeout = errors.New("ticket timeout must be positive")
	ErrJiraTokenRequired    = errors.New(
		"jira API token is required when a Jira base URL is set",
	)
	ErrInvalidSessionCacheSize = errors.New(
		"session cache size must be positive",
	)
)

// NewDefaultConfig creates a configuration with sensible defaults for the
// server, catalog source, ticket client, and sessions
func NewDefaultConfig() *Config {
	return &Config{
		APIPort:         DefaultAPIPort,
		APIHost:         DefaultAPIHost,
		LogLevel:        "info",
		ShutdownTimeout: DefaultShutdownTimeout,
		Catalog: CatalogConfig{
			URL:             DefaultCatalogURL,
			StepsKey:        DefaultCatalogStepsKey,
			ParametersKey:   DefaultCatalogParametersKey,
			MethodsKey:      DefaultCatalogMethodsKey,
			ParamDefault:    DefaultCatalogParamDefault,
			Timeout:         DefaultCatalogTimeout,
			RetryMaxElapsed: DefaultCatalogRetryElapsed,
		},
		Ticket: TicketConfig{
			JiraAPIVersion: DefaultJiraAPIVersion,
			Timeout:        DefaultTicketTimeout,
		},
		Session: SessionConfig{
			CacheSize:    DefaultSessionCacheSize,
			ExpandPolicy: DefaultExpandPolicy,
		},
	}
}

// LoadFromEnv populates configuration values from environment variables.
// Returns an error if any env var cannot be parsed.
func (c *Config) LoadFromEnv() error {
	loadEnvString("API_HOST", &c.APIHost)
	loadEnvString("LOG_LEVEL", &c.LogLevel)

	loadEnvString("CATALOG_URL", &c.Catalog.URL)
	loadEnvString("CATALOG_STEPS_KEY", &c.Catalog.StepsKey)
	loadEnvString("CATALOG_PARAMETERS_KEY", &c.Catalog.ParametersKey)
	loadEnvString("CATALOG_METHODS_KEY", &c.Catalog.MethodsKey)
	if v, ok := os.LookupEnv("CATALOG_PARAM_DEFAULT"); ok {
		c.Catalog.ParamDefault = v
	}

	loadEnvString("JIRA_BASE_URL", &c.Ticket.JiraBaseURL)
	loadEnvString("JIRA_USERNAME", &c.Ticket.JiraUsername)
	loadEnvString("JIRA_API_TOKEN", &c.Ticket.JiraAPIToken)
	loadEnvString("JIRA_API_VERSION", &c.Ticket.JiraAPIVersion)
	loadEnvString("TICKET_RELAY_URL", &c.Ticket.RelayURL)

	if policy := os.Getenv("STEP_EXPAND_POLICY"); policy != "" {
		c.Session.ExpandPolicy = api.ExpandPolicy(policy)
	}

	if err := loadEnvInt("API_PORT", &c.APIPort, 0, MaxTCPPort); err != nil {
		return err
	}
	if err := loadEnvInt(
		"CATALOG_TIMEOUT", &c.Catalog.Timeout, 0, MaxCatalogTimeout,
	); err != nil {
		return err
	}
	if err := loadEnvInt(
		"CATALOG_RETRY_MAX_ELAPSED", &c.Catalog.RetryMaxElapsed,
		-1, MaxRetryElapsed,
	); err != nil {
		return err
	}
	if err := loadEnvInt(
		"TICKET_TIMEOUT", &c.Ticket.Timeout, 0, MaxTicketTimeout,
	); err != nil {
		return err
	}
	if err := loadEnvInt(
		"SESSION_CACHE_SIZE", &c.Session.CacheSize, 0, MaxSessionCapacity,
	); err != nil {
		return err
	}

	return nil
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	if c.APIPort <= 0 || c.APIPort > MaxTCPPort {
		return fmt.Errorf("%w: %d", ErrInvalidAPIPort, c.APIPort)
	}

	if c.Catalog.URL == "" {
		return ErrCatalogURLRequired
	}

	if c.Catalog.StepsKey == "" || c.Catalog.ParametersKey == "" {
		return ErrCatalogKeyRequired
	}

	if c.Catalog.Timeout <= 0 {
		return ErrInvalidCatalogTimeout
	}

	if c.Catalog.RetryMaxElapsed < 0 {
		return ErrInvalidRetryElapsed
	}

	if c.Ticket.Timeout <= 0 {
		return ErrInvalidTicketTimeout
	}

	if c.Ticket.JiraBaseURL != "" && c.Ticket.JiraAPIToken == "" {
		return ErrJiraTokenRequired
	}

	if c.Session.CacheSize <= 0 {
		return ErrInvalidSessionCacheSize
	}

	return c.Session.ExpandPolicy.Validate()
}

// CatalogTimeout returns the per-request catalog timeout
func (c *Config) CatalogTimeout() time.Duration {
	return time.Duration(c.Catalog.Timeout) * time.Millisecond
}

// CatalogRetryMaxElapsed returns the total time spent retrying a catalog
// load. Zero disables retries
func (c *Config) CatalogRetryMaxElapsed() time.Duration {
	return time.Duration(c.Catalog.RetryMaxElapsed) * time.Millisecond
}

// TicketTimeout returns the timeout applied to ticket update requests
func (c *Config) TicketTimeout() time.Duration {
	return time.Duration(c.Ticket.Timeout) * time.Millisecond
}

// TicketConfigured returns true if a ticket update client can be built
func (c *Config) TicketConfigured() bool {
	return c.Ticket.RelayURL != "" || c.Ticket.JiraBaseURL != ""
}

func loadEnvString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// loadEnvInt reads key from the environment, parses it as an integer, and
// sets *dst if the value is in the range (min, max]. Returns an error if
// the value cannot be parsed or falls outside the valid range.
func loadEnvInt[T ~int | ~int64](key string, dst *T, min, max T) error {
	s := os.Getenv(key)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", key, s)
	}
	tv := T(v)
	if tv <= min || tv > max {
		return fmt.Errorf("invalid %s: %d out of range [%d, %d]",
			key, tv, min+1, max)
	}
	*dst = tv
	return nil
}
