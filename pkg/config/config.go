package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/acts"
	ConfigFileName    = "acts.yml"
)

// ValidLogLevels is the list of accepted log_level values
var ValidLogLevels = []string{"trace", "debug", "info", "warn", "error"}

// ActsConfig holds all ACTS configuration settings
type ActsConfig struct {
	// CORSAllowedOrigins lists origins allowed to call the API. Empty disables CORS.
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" json:"cors_allowed_origins"`

	// LogLevel is the minimum application log level
	LogLevel string `yaml:"log_level" json:"log_level"`

	// LogPretty enables human-friendly console logs
	LogPretty bool `yaml:"log_pretty" json:"log_pretty"`

	// AuditPersistEnabled writes audit entries to the log_entries table
	AuditPersistEnabled bool `yaml:"audit_persist_enabled" json:"audit_persist_enabled"`

	// AuthRequired rejects API requests without a valid bearer token
	AuthRequired bool `yaml:"auth_required" json:"auth_required"`

	// ServerTimeoutSeconds bounds HTTP read and write time
	ServerTimeoutSeconds int `yaml:"server_timeout_seconds" json:"server_timeout_seconds"`

	// ListLimitMax caps the number of people returned by a listing. Zero,
	// the default, returns everyone.
	ListLimitMax int `yaml:"list_limit_max" json:"list_limit_max"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// fileConfig mirrors ActsConfig with pointers so that explicit false and
// zero values in the file are distinguishable from absent keys.
type fileConfig struct {
	CORSAllowedOrigins   []string `yaml:"cors_allowed_origins"`
	LogLevel             *string  `yaml:"log_level"`
	LogPretty            *bool    `yaml:"log_pretty"`
	AuditPersistEnabled  *bool    `yaml:"audit_persist_enabled"`
	AuthRequired         *bool    `yaml:"auth_required"`
	ServerTimeoutSeconds *int     `yaml:"server_timeout_seconds"`
	ListLimitMax         *int     `yaml:"list_limit_max"`
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// newDefault returns a config with default values
func newDefault() *ActsConfig {
	return &ActsConfig{
		CORSAllowedOrigins:   []string{},
		LogLevel:             "info",
		LogPretty:            false,
		AuditPersistEnabled:  true,
		AuthRequired:         false,
		ServerTimeoutSeconds: 30,
		ListLimitMax:         0,
		sources:              make(map[string]string),
	}
}

// Load loads configuration from file and environment variables
// Environment variables take precedence over file values
func Load() (*ActsConfig, error) {
	config := newDefault()

	// Initialize all sources as "default"
	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	// Determine config file path
	configPath := os.Getenv("ACTS_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	// Try to load from config file
	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var file fileConfig
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&file)
	}

	// Override with environment variables
	if err := config.applyEnvConfig(); err != nil {
		return nil, err
	}

	return config, nil
}

func attributeNames() []string {
	return []string{
		"cors_allowed_origins", "log_level", "log_pretty",
		"audit_persist_enabled", "auth_required",
		"server_timeout_seconds", "list_limit_max",
	}
}

func (c *ActsConfig) applyFileConfig(file *fileConfig) {
	if len(file.CORSAllowedOrigins) > 0 {
		c.CORSAllowedOrigins = file.CORSAllowedOrigins
		c.sources["cors_allowed_origins"] = "file"
	}
	if file.LogLevel != nil {
		c.LogLevel = *file.LogLevel
		c.sources["log_level"] = "file"
	}
	if file.LogPretty != nil {
		c.LogPretty = *file.LogPretty
		c.sources["log_pretty"] = "file"
	}
	if file.AuditPersistEnabled != nil {
		c.AuditPersistEnabled = *file.AuditPersistEnabled
		c.sources["audit_persist_enabled"] = "file"
	}
	if file.AuthRequired != nil {
		c.AuthRequired = *file.AuthRequired
		c.sources["auth_required"] = "file"
	}
	if file.ServerTimeoutSeconds != nil {
		c.ServerTimeoutSeconds = *file.ServerTimeoutSeconds
		c.sources["server_timeout_seconds"] = "file"
	}
	if file.ListLimitMax != nil {
		c.ListLimitMax = *file.ListLimitMax
		c.sources["list_limit_max"] = "file"
	}
}

func (c *ActsConfig) applyEnvConfig() error {
	if val := os.Getenv("ACTS_CORS_ALLOWED_ORIGINS"); val != "" {
		c.CORSAllowedOrigins = splitAndTrim(val)
		c.sources["cors_allowed_origins"] = "environment"
	}
	if val := os.Getenv("ACTS_LOG_LEVEL"); val != "" {
		c.LogLevel = val
		c.sources["log_level"] = "environment"
	}
	if val := os.Getenv("ACTS_LOG_PRETTY"); val != "" {
		c.LogPretty = val == "true" || val == "1"
		c.sources["log_pretty"] = "environment"
	}
	if val := os.Getenv("ACTS_AUDIT_PERSIST_ENABLED"); val != "" {
		c.AuditPersistEnabled = val == "true" || val == "1"
		c.sources["audit_persist_enabled"] = "environment"
	}
	if val := os.Getenv("ACTS_AUTH_REQUIRED"); val != "" {
		c.AuthRequired = val == "true" || val == "1"
		c.sources["auth_required"] = "environment"
	}
	if val := os.Getenv("ACTS_SERVER_TIMEOUT_SECONDS"); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid ACTS_SERVER_TIMEOUT_SECONDS %q: %w", val, err)
		}
		c.ServerTimeoutSeconds = i
		c.sources["server_timeout_seconds"] = "environment"
	}
	if val := os.Getenv("ACTS_LIST_LIMIT_MAX"); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid ACTS_LIST_LIMIT_MAX %q: %w", val, err)
		}
		c.ListLimitMax = i
		c.sources["list_limit_max"] = "environment"
	}
	return nil
}

// ConfigFilePath returns the path to the config file
func (c *ActsConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *ActsConfig) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// ServerTimeout returns the HTTP server timeout as a duration
func (c *ActsConfig) ServerTimeout() time.Duration {
	return time.Duration(c.ServerTimeoutSeconds) * time.Second
}

// IsOriginAllowed checks if a CORS origin is allowed
func (c *ActsConfig) IsOriginAllowed(origin string) bool {
	for _, o := range c.CORSAllowedOrigins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

// Validate validates the configuration
func (c *ActsConfig) Validate() error {
	validLevel := false
	for _, l := range ValidLogLevels {
		if strings.EqualFold(c.LogLevel, l) {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log_level value: %s", c.LogLevel)
	}

	if c.ServerTimeoutSeconds <= 0 {
		return fmt.Errorf("server_timeout_seconds must be positive, got %d", c.ServerTimeoutSeconds)
	}
	if c.ListLimitMax < 0 {
		return fmt.Errorf("list_limit_max must not be negative, got %d", c.ListLimitMax)
	}

	for _, origin := range c.CORSAllowedOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("invalid cors_allowed_origins value: %s", origin)
		}
	}

	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *ActsConfig) Attributes() []Attribute {
	return []Attribute{
		{Name: "cors_allowed_origins", Value: strings.Join(c.CORSAllowedOrigins, ","), Source: c.Source("cors_allowed_origins")},
		{Name: "log_level", Value: c.LogLevel, Source: c.Source("log_level")},
		{Name: "log_pretty", Value: strconv.FormatBool(c.LogPretty), Source: c.Source("log_pretty")},
		{Name: "audit_persist_enabled", Value: strconv.FormatBool(c.AuditPersistEnabled), Source: c.Source("audit_persist_enabled")},
		{Name: "auth_required", Value: strconv.FormatBool(c.AuthRequired), Source: c.Source("auth_required")},
		{Name: "server_timeout_seconds", Value: strconv.Itoa(c.ServerTimeoutSeconds), Source: c.Source("server_timeout_seconds")},
		{Name: "list_limit_max", Value: strconv.Itoa(c.ListLimitMax), Source: c.Source("list_limit_max")},
	}
}

// FormatText returns a text representation of the configuration
func (c *ActsConfig) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *ActsConfig) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
