package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/permauth/config"
	ConfigFileName    = "permauth.yml"
)

// PermauthConfig holds all permauth configuration settings
type PermauthConfig struct {
	// BindAddress is the address the HTTP server listens on
	BindAddress string `yaml:"bind_address" json:"bind_address"`

	// Port is the HTTP server port
	Port int `yaml:"port" json:"port"`

	// JWTIssuer is the iss claim written into issued tokens
	JWTIssuer string `yaml:"jwt_issuer" json:"jwt_issuer"`

	// JWTAudience is the aud claim written into issued tokens
	JWTAudience string `yaml:"jwt_audience" json:"jwt_audience"`

	// JWTSecret is the HMAC signing secret for issued tokens.
	// It is normally supplied via PERMAUTH_JWT_SECRET rather than the file.
	JWTSecret string `yaml:"jwt_secret" json:"-"`

	// TokenTTL is the lifetime of issued tokens in seconds
	TokenTTL int `yaml:"token_ttl" json:"token_ttl"`

	// SyncOnStart runs the permission catalog sync before serving
	SyncOnStart bool `yaml:"sync_on_start" json:"sync_on_start"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *PermauthConfig
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *PermauthConfig {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			// Return defaults on error
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values
func newDefault() *PermauthConfig {
	return &PermauthConfig{
		BindAddress: "0.0.0.0",
		Port:        8000,
		JWTIssuer:   "permauth",
		JWTAudience: "permauth",
		TokenTTL:    28800,
		SyncOnStart: true,
		sources:     make(map[string]string),
	}
}

// Load loads configuration from file and environment variables
// Environment variables take precedence over file values
func Load() (*PermauthConfig, error) {
	config := newDefault()

	// Initialize all sources as "default"
	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	// Determine config file path
	configPath := os.Getenv("PERMAUTH_CONFIG_PATH")
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
	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"bind_address", "port", "jwt_issuer", "jwt_audience",
		"jwt_secret", "token_ttl", "sync_on_start",
	}
}

// fileConfig mirrors PermauthConfig for YAML decoding. SyncOnStart is a
// pointer so an explicit "sync_on_start: false" in the file is
// distinguishable from the key being absent.
type fileConfig struct {
	BindAddress string `yaml:"bind_address"`
	Port        int    `yaml:"port"`
	JWTIssuer   string `yaml:"jwt_issuer"`
	JWTAudience string `yaml:"jwt_audience"`
	JWTSecret   string `yaml:"jwt_secret"`
	TokenTTL    int    `yaml:"token_ttl"`
	SyncOnStart *bool  `yaml:"sync_on_start"`
}

func (c *PermauthConfig) applyFileConfig(file *fileConfig) {
	if file.BindAddress != "" {
		c.BindAddress = file.BindAddress
		c.sources["bind_address"] = "file"
	}
	if file.Port != 0 {
		c.Port = file.Port
		c.sources["port"] = "file"
	}
	if file.JWTIssuer != "" {
		c.JWTIssuer = file.JWTIssuer
		c.sources["jwt_issuer"] = "file"
	}
	if file.JWTAudience != "" {
		c.JWTAudience = file.JWTAudience
		c.sources["jwt_audience"] = "file"
	}
	if file.JWTSecret != "" {
		c.JWTSecret = file.JWTSecret
		c.sources["jwt_secret"] = "file"
	}
	if file.TokenTTL != 0 {
		c.TokenTTL = file.TokenTTL
		c.sources["token_ttl"] = "file"
	}
	if file.SyncOnStart != nil {
		c.SyncOnStart = *file.SyncOnStart
		c.sources["sync_on_start"] = "file"
	}
}

func (c *PermauthConfig) applyEnvConfig() {
	if val := os.Getenv("PERMAUTH_BIND_ADDRESS"); val != "" {
		c.BindAddress = val
		c.sources["bind_address"] = "environment"
	}
	if val := os.Getenv("PERMAUTH_PORT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.Port = i
			c.sources["port"] = "environment"
		}
	}
	if val := os.Getenv("PERMAUTH_JWT_ISSUER"); val != "" {
		c.JWTIssuer = val
		c.sources["jwt_issuer"] = "environment"
	}
	if val := os.Getenv("PERMAUTH_JWT_AUDIENCE"); val != "" {
		c.JWTAudience = val
		c.sources["jwt_audience"] = "environment"
	}
	if val := os.Getenv("PERMAUTH_JWT_SECRET"); val != "" {
		c.JWTSecret = val
		c.sources["jwt_secret"] = "environment"
	}
	if val := os.Getenv("PERMAUTH_TOKEN_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.TokenTTL = i
			c.sources["token_ttl"] = "environment"
		}
	}
	if val := os.Getenv("PERMAUTH_SYNC_ON_START"); val != "" {
		c.SyncOnStart = val == "true" || val == "1"
		c.sources["sync_on_start"] = "environment"
	}
}

// ConfigFilePath returns the path to the config file
func (c *PermauthConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *PermauthConfig) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// TokenDuration returns the token TTL as a duration
func (c *PermauthConfig) TokenDuration() time.Duration {
	return time.Duration(c.TokenTTL) * time.Second
}

// Addr returns the bind address and port joined for http.Server
func (c *PermauthConfig) Addr() string {
	return c.BindAddress + ":" + strconv.Itoa(c.Port)
}

// Validate validates the configuration
func (c *PermauthConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token_ttl must be positive: %d", c.TokenTTL)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("jwt_secret is required (set PERMAUTH_JWT_SECRET)")
	}
	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *PermauthConfig) Attributes() []Attribute {
	secret := ""
	if c.JWTSecret != "" {
		secret = "(set)"
	}
	return []Attribute{
		{Name: "bind_address", Value: c.BindAddress, Source: c.Source("bind_address")},
		{Name: "port", Value: strconv.Itoa(c.Port), Source: c.Source("port")},
		{Name: "jwt_issuer", Value: c.JWTIssuer, Source: c.Source("jwt_issuer")},
		{Name: "jwt_audience", Value: c.JWTAudience, Source: c.Source("jwt_audience")},
		{Name: "jwt_secret", Value: secret, Source: c.Source("jwt_secret")},
		{Name: "token_ttl", Value: strconv.Itoa(c.TokenTTL), Source: c.Source("token_ttl")},
		{Name: "sync_on_start", Value: strconv.FormatBool(c.SyncOnStart), Source: c.Source("sync_on_start")},
	}
}

// FormatText returns a text representation of the configuration
func (c *PermauthConfig) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-20s %-30s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-20s %-30s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-20s %-30s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *PermauthConfig) FormatJSON() (string, error) {
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
