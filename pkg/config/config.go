package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/merchant/config"
	ConfigFileName    = "merchant.yml"
)

// Primary store kinds
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Mirror kinds
const (
	MirrorSurrealDB = "surrealdb"
	MirrorMemory    = "memory"
	MirrorNone      = "none"
)

var (
	validStores  = []string{StorePostgres, StoreMemory}
	validMirrors = []string{MirrorSurrealDB, MirrorMemory, MirrorNone}
	validLevels  = []string{"trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled"}
)

// MerchantConfig holds all server configuration settings
type MerchantConfig struct {
	// PrimaryStore selects the source of truth: postgres or memory
	PrimaryStore string `yaml:"primary_store" json:"primary_store"`

	// Mirror selects the search mirror: surrealdb, memory or none
	Mirror string `yaml:"mirror" json:"mirror"`

	SurrealURL       string `yaml:"surreal_url" json:"surreal_url"`
	SurrealNamespace string `yaml:"surreal_namespace" json:"surreal_namespace"`
	SurrealDatabase  string `yaml:"surreal_database" json:"surreal_database"`
	SurrealUsername  string `yaml:"surreal_username" json:"surreal_username"`
	SurrealPassword  string `yaml:"surreal_password" json:"-"`

	// PageSizeDefault is used when a listing request has no size
	PageSizeDefault int `yaml:"page_size_default" json:"page_size_default"`

	// PageSizeMax caps the size of a listing request
	PageSizeMax int `yaml:"page_size_max" json:"page_size_max"`

	LogLevel  string `yaml:"log_level" json:"log_level"`
	LogFormat string `yaml:"log_format" json:"log_format"`

	// ReindexOnStart rebuilds the mirror from the primary store at server start
	ReindexOnStart *bool `yaml:"reindex_on_start" json:"reindex_on_start"`

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
	globalConfig *MerchantConfig
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *MerchantConfig {
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
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() (*MerchantConfig, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return cfg, nil
}

func newDefault() *MerchantConfig {
	reindex := true
	return &MerchantConfig{
		PrimaryStore:     StorePostgres,
		Mirror:           MirrorMemory,
		SurrealURL:       "ws://localhost:8000/rpc",
		SurrealNamespace: "merchant",
		SurrealDatabase:  "merchant",
		PageSizeDefault:  20,
		PageSizeMax:      1000,
		LogLevel:         "info",
		LogFormat:        "json",
		ReindexOnStart:   &reindex,
		sources:          make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*MerchantConfig, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("MERCHANT_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig MerchantConfig
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"primary_store", "mirror",
		"surreal_url", "surreal_namespace", "surreal_database",
		"surreal_username", "surreal_password",
		"page_size_default", "page_size_max",
		"log_level", "log_format", "reindex_on_start",
	}
}

// stringSetting binds one string attribute to its field.
type stringSetting struct {
	name  string
	field *string
}

func (c *MerchantConfig) stringSettings() []stringSetting {
	return []stringSetting{
		{"primary_store", &c.PrimaryStore},
		{"mirror", &c.Mirror},
		{"surreal_url", &c.SurrealURL},
		{"surreal_namespace", &c.SurrealNamespace},
		{"surreal_database", &c.SurrealDatabase},
		{"surreal_username", &c.SurrealUsername},
		{"surreal_password", &c.SurrealPassword},
		{"log_level", &c.LogLevel},
		{"log_format", &c.LogFormat},
	}
}

func (c *MerchantConfig) applyFileConfig(file *MerchantConfig) {
	fileStrings := file.stringSettings()
	for i, s := range c.stringSettings() {
		if v := *fileStrings[i].field; v != "" {
			*s.field = v
			c.sources[s.name] = "file"
		}
	}
	if file.PageSizeDefault != 0 {
		c.PageSizeDefault = file.PageSizeDefault
		c.sources["page_size_default"] = "file"
	}
	if file.PageSizeMax != 0 {
		c.PageSizeMax = file.PageSizeMax
		c.sources["page_size_max"] = "file"
	}
	if file.ReindexOnStart != nil {
		c.ReindexOnStart = file.ReindexOnStart
		c.sources["reindex_on_start"] = "file"
	}
}

func (c *MerchantConfig) applyEnvConfig() {
	for _, s := range c.stringSettings() {
		if val := os.Getenv(envName(s.name)); val != "" {
			*s.field = val
			c.sources[s.name] = "environment"
		}
	}
	if val := os.Getenv("MERCHANT_PAGE_SIZE_DEFAULT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.PageSizeDefault = i
			c.sources["page_size_default"] = "environment"
		}
	}
	if val := os.Getenv("MERCHANT_PAGE_SIZE_MAX"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.PageSizeMax = i
			c.sources["page_size_max"] = "environment"
		}
	}
	if val := os.Getenv("MERCHANT_REINDEX_ON_START"); val != "" {
		b := val == "true" || val == "1"
		c.ReindexOnStart = &b
		c.sources["reindex_on_start"] = "environment"
	}
}

func envName(attribute string) string {
	return "MERCHANT_" + strings.ToUpper(attribute)
}

// ConfigFilePath returns the path to the config file
func (c *MerchantConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *MerchantConfig) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// Reindex reports whether the mirror is rebuilt at server start
func (c *MerchantConfig) Reindex() bool {
	return c.ReindexOnStart != nil && *c.ReindexOnStart
}

// PageSize clamps a requested page size. Zero or less selects the default.
func (c *MerchantConfig) PageSize(requested int) int {
	if requested <= 0 {
		return c.PageSizeDefault
	}
	if c.PageSizeMax > 0 && requested > c.PageSizeMax {
		return c.PageSizeMax
	}
	return requested
}

// Validate validates the configuration
func (c *MerchantConfig) Validate() error {
	if !slices.Contains(validStores, c.PrimaryStore) {
		return fmt.Errorf("invalid primary_store value: %s", c.PrimaryStore)
	}
	if !slices.Contains(validMirrors, c.Mirror) {
		return fmt.Errorf("invalid mirror value: %s", c.Mirror)
	}
	if c.Mirror == MirrorSurrealDB && c.SurrealURL == "" {
		return fmt.Errorf("surreal_url is required when mirror is %s", MirrorSurrealDB)
	}
	if c.PageSizeDefault <= 0 {
		return fmt.Errorf("page_size_default must be positive: %d", c.PageSizeDefault)
	}
	if c.PageSizeMax < c.PageSizeDefault {
		return fmt.Errorf("page_size_max (%d) must not be less than page_size_default (%d)", c.PageSizeMax, c.PageSizeDefault)
	}
	if !slices.Contains(validLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log_level value: %s", c.LogLevel)
	}
	if f := strings.ToLower(c.LogFormat); f != "json" && f != "console" {
		return fmt.Errorf("invalid log_format value: %s", c.LogFormat)
	}
	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *MerchantConfig) Attributes() []Attribute {
	password := ""
	if c.SurrealPassword != "" {
		password = "********"
	}
	return []Attribute{
		{Name: "primary_store", Value: c.PrimaryStore, Source: c.Source("primary_store")},
		{Name: "mirror", Value: c.Mirror, Source: c.Source("mirror")},
		{Name: "surreal_url", Value: c.SurrealURL, Source: c.Source("surreal_url")},
		{Name: "surreal_namespace", Value: c.SurrealNamespace, Source: c.Source("surreal_namespace")},
		{Name: "surreal_database", Value: c.SurrealDatabase, Source: c.Source("surreal_database")},
		{Name: "surreal_username", Value: c.SurrealUsername, Source: c.Source("surreal_username")},
		{Name: "surreal_password", Value: password, Source: c.Source("surreal_password")},
		{Name: "page_size_default", Value: strconv.Itoa(c.PageSizeDefault), Source: c.Source("page_size_default")},
		{Name: "page_size_max", Value: strconv.Itoa(c.PageSizeMax), Source: c.Source("page_size_max")},
		{Name: "log_level", Value: c.LogLevel, Source: c.Source("log_level")},
		{Name: "log_format", Value: c.LogFormat, Source: c.Source("log_format")},
		{Name: "reindex_on_start", Value: strconv.FormatBool(c.Reindex()), Source: c.Source("reindex_on_start")},
	}
}

// FormatText returns a text representation of the configuration
func (c *MerchantConfig) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-24s %-36s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-24s %-36s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-24s %-36s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *MerchantConfig) FormatJSON() (string, error) {
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
