package config

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mantonx/cinevault/internal/logger"
)

// Config holds the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" json:"server"`
	Database DatabaseConfig `yaml:"database" json:"database"`
	Security SecurityConfig `yaml:"security" json:"security"`
	Admin    AdminConfig    `yaml:"admin" json:"admin"`
	Uploads  UploadConfig   `yaml:"uploads" json:"uploads"`
	Seed     SeedConfig     `yaml:"seed" json:"seed"`
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host          string        `yaml:"host" json:"host" env:"HOST" default:"0.0.0.0"`
	Port          int           `yaml:"port" json:"port" env:"PORT" default:"3000"`
	ReadTimeout   time.Duration `yaml:"read_timeout" json:"read_timeout" env:"READ_TIMEOUT" default:"30s"`
	WriteTimeout  time.Duration `yaml:"write_timeout" json:"write_timeout" env:"WRITE_TIMEOUT" default:"30s"`
	CORSOrigin    string        `yaml:"cors_origin" json:"cors_origin" env:"CORS_ORIGIN" default:"http://localhost:5173"`
	PublicBaseURL string        `yaml:"public_base_url" json:"public_base_url" env:"PUBLIC_BASE_URL"`
}

// DatabaseConfig selects and configures the relational store
type DatabaseConfig struct {
	Type         string        `yaml:"type" json:"type" env:"DATABASE_TYPE" default:"sqlite"`
	SQLitePath   string        `yaml:"sqlite_path" json:"sqlite_path" env:"SQLITE_PATH" default:"./data/app.sqlite"`
	URL          string        `yaml:"url" json:"url" env:"DATABASE_URL"`
	MaxOpenConns int           `yaml:"max_open_conns" json:"max_open_conns" env:"DATABASE_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns int           `yaml:"max_idle_conns" json:"max_idle_conns" env:"DATABASE_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLife  time.Duration `yaml:"conn_max_life" json:"conn_max_life" env:"DATABASE_CONN_MAX_LIFE" default:"1h"`
	LogQueries   bool          `yaml:"log_queries" json:"log_queries" env:"DATABASE_LOG_QUERIES" default:"false"`
}

// SecurityConfig holds token settings
type SecurityConfig struct {
	JWTSecret     string        `yaml:"jwt_secret" json:"-" env:"JWT_SECRET"`
	JWTExpiration time.Duration `yaml:"jwt_expiration" json:"jwt_expiration" env:"JWT_EXPIRATION" default:"24h"`
	BcryptCost    int           `yaml:"bcrypt_cost" json:"bcrypt_cost" env:"BCRYPT_COST" default:"10"`
}

// AdminConfig carries the optional bootstrap admin credentials
type AdminConfig struct {
	Email    string `yaml:"email" json:"email" env:"ADMIN_EMAIL"`
	Password string `yaml:"password" json:"-" env:"ADMIN_PASSWORD"`
	Name     string `yaml:"name" json:"name" env:"ADMIN_NAME"`
}

// UploadConfig controls poster uploads
type UploadConfig struct {
	Dir         string  `yaml:"dir" json:"dir" env:"UPLOAD_DIR" default:"./uploads"`
	MaxFileSize int64   `yaml:"max_file_size" json:"max_file_size" env:"UPLOAD_MAX_FILE_SIZE" default:"10485760"`
	MaxWidth    int     `yaml:"max_width" json:"max_width" env:"UPLOAD_MAX_WIDTH" default:"500"`
	WebPQuality float32 `yaml:"webp_quality" json:"webp_quality" env:"UPLOAD_WEBP_QUALITY" default:"85"`
}

// SeedConfig controls the startup seed
type SeedConfig struct {
	Enabled     bool   `yaml:"enabled" json:"enabled" env:"SEED_ENABLED" default:"true"`
	CatalogPath string `yaml:"catalog_path" json:"catalog_path" env:"SEED_CATALOG_PATH"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string `yaml:"level" json:"level" env:"LOG_LEVEL" default:"info"`
	Format     string `yaml:"format" json:"format" env:"LOG_FORMAT" default:"text"`
	FilePath   string `yaml:"file_path" json:"file_path" env:"LOG_FILE"`
	MaxSizeMB  int    `yaml:"max_size_mb" json:"max_size_mb" env:"LOG_MAX_SIZE_MB" default:"100"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups" env:"LOG_MAX_BACKUPS" default:"3"`
	MaxAgeDays int    `yaml:"max_age_days" json:"max_age_days" env:"LOG_MAX_AGE_DAYS" default:"30"`
}

// ConfigManager manages application configuration with hot-reload support
type ConfigManager struct {
	config     *Config
	configPath string
	watchers   []ConfigWatcher
	mu         sync.RWMutex
}

// ConfigWatcher is called when configuration changes
type ConfigWatcher func(oldConfig, newConfig *Config)

var (
	globalConfigManager *ConfigManager
	configOnce          sync.Once
)

// GetConfigManager returns the global configuration manager instance
func GetConfigManager() *ConfigManager {
	configOnce.Do(func() {
		globalConfigManager = NewConfigManager()
	})
	return globalConfigManager
}

// NewConfigManager creates a new configuration manager
func NewConfigManager() *ConfigManager {
	return &ConfigManager{
		config:   DefaultConfig(),
		watchers: make([]ConfigWatcher, 0),
	}
}

// DefaultConfig returns the default application configuration
func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(reflect.ValueOf(cfg).Elem())
	return cfg
}

// LoadConfig loads configuration from file and environment variables.
// Precedence: environment, then file, then struct defaults.
func (cm *ConfigManager) LoadConfig(configPath string) error {
	cm.mu.Lock()

	oldConfig := *cm.config
	cm.configPath = configPath

	newConfig := DefaultConfig()

	if configPath != "" && fileExists(configPath) {
		if err := loadFromFile(configPath, newConfig); err != nil {
			cm.mu.Unlock()
			return fmt.Errorf("failed to load config from file: %w", err)
		}
		logger.Info("configuration file loaded", "path", configPath)
	}

	if err := loadStructFromEnv(reflect.ValueOf(newConfig).Elem()); err != nil {
		cm.mu.Unlock()
		return fmt.Errorf("failed to load config from environment: %w", err)
	}

	if err := Validate(newConfig); err != nil {
		cm.mu.Unlock()
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	applyDerivedConfig(newConfig)
	cm.config = newConfig
	watchers := append([]ConfigWatcher(nil), cm.watchers...)
	cm.mu.Unlock()

	for _, watcher := range watchers {
		watcher(&oldConfig, newConfig)
	}
	return nil
}

// Reload re-reads the last loaded path.
func (cm *ConfigManager) Reload() error {
	cm.mu.RLock()
	path := cm.configPath
	cm.mu.RUnlock()
	return cm.LoadConfig(path)
}

// GetConfig returns the current configuration (thread-safe)
func (cm *ConfigManager) GetConfig() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	configCopy := *cm.config
	return &configCopy
}

// Path returns the file the configuration was loaded from, if any.
func (cm *ConfigManager) Path() string {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.configPath
}

// AddWatcher adds a configuration change watcher
func (cm *ConfigManager) AddWatcher(watcher ConfigWatcher) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.watchers = append(cm.watchers, watcher)
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if !fileExists(f) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// Helper methods

func loadFromFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, config)
	case ".json":
		return json.Unmarshal(data, config)
	default:
		return fmt.Errorf("unsupported config file format: %s", ext)
	}
}

func applyDefaults(v reflect.Value) {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if field.Kind() == reflect.Struct && field.Type() != reflect.TypeOf(time.Duration(0)) {
			applyDefaults(field)
			continue
		}
		if def := t.Field(i).Tag.Get("default"); def != "" {
			// defaults are compile-time constants; a bad one is a programming error
			if err := setFieldValue(field, def); err != nil {
				panic(fmt.Sprintf("config: bad default for %s: %v", t.Field(i).Name, err))
			}
		}
	}
}

func loadStructFromEnv(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct {
			if err := loadStructFromEnv(field); err != nil {
				return err
			}
			continue
		}

		envTag := fieldType.Tag.Get("env")
		if envTag == "" {
			continue
		}

		envValue, ok := os.LookupEnv(envTag)
		if !ok || envValue == "" {
			continue
		}

		if err := setFieldValue(field, envValue); err != nil {
			return fmt.Errorf("failed to set field %s from %s: %w", fieldType.Name, envTag, err)
		}
	}

	return nil
}

func setFieldValue(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			duration, err := time.ParseDuration(value)
			if err != nil {
				return err
			}
			field.SetInt(int64(duration))
		} else {
			intVal, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return err
			}
			field.SetInt(intVal)
		}
	case reflect.Float32, reflect.Float64:
		floatVal, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		field.SetFloat(floatVal)
	case reflect.Bool:
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(boolVal)
	case reflect.Slice:
		if field.Type().Elem().Kind() == reflect.String {
			values := strings.Split(value, ",")
			for i, v := range values {
				values[i] = strings.TrimSpace(v)
			}
			field.Set(reflect.ValueOf(values))
		}
	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// Validate checks a configuration for values the server cannot start with.
func Validate(config *Config) error {
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	switch config.Database.Type {
	case "sqlite":
		if config.Database.SQLitePath == "" {
			return fmt.Errorf("sqlite path is required")
		}
	case "postgres":
		if config.Database.URL == "" {
			return fmt.Errorf("database url is required for postgres")
		}
	default:
		return fmt.Errorf("unsupported database type: %s", config.Database.Type)
	}

	if config.Security.JWTExpiration <= 0 {
		return fmt.Errorf("invalid jwt expiration: %s", config.Security.JWTExpiration)
	}

	if config.Uploads.MaxFileSize <= 0 {
		return fmt.Errorf("invalid max file size: %d", config.Uploads.MaxFileSize)
	}

	if config.Uploads.WebPQuality <= 0 || config.Uploads.WebPQuality > 100 {
		return fmt.Errorf("invalid webp quality: %v", config.Uploads.WebPQuality)
	}

	return nil
}

func applyDerivedConfig(config *Config) {
	if config.Security.JWTSecret == "" {
		// Tokens signed with this secret do not survive a restart.
		config.Security.JWTSecret = processSecret()
		logger.Warn("JWT_SECRET not set, using a random per-process secret")
	}
	config.Server.PublicBaseURL = strings.TrimRight(config.Server.PublicBaseURL, "/")
}

var (
	generatedSecret     string
	generatedSecretOnce sync.Once
)

// processSecret returns a random signing secret, generated once so that a
// reload keeps issued tokens valid.
func processSecret() string {
	generatedSecretOnce.Do(func() {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			panic(fmt.Sprintf("failed to generate jwt secret: %v", err))
		}
		generatedSecret = hex.EncodeToString(buf)
	})
	return generatedSecret
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Complete reports whether all bootstrap admin credentials are present.
func (a AdminConfig) Complete() bool {
	return a.Email != "" && a.Password != "" && a.Name != ""
}

// Global convenience functions

// Get returns the current global configuration
func Get() *Config {
	return GetConfigManager().GetConfig()
}

// Load loads configuration from the specified path
func Load(configPath string) error {
	return GetConfigManager().LoadConfig(configPath)
}

// AddWatcher adds a global configuration watcher
func AddWatcher(watcher ConfigWatcher) {
	GetConfigManager().AddWatcher(watcher)
}
