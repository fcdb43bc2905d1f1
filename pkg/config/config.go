// Package config loads fgdb.yaml (or fgdb.toml) through viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/hankinsohl/fgdb/pkg/logging"
	"github.com/hankinsohl/fgdb/pkg/types"
)

// EnvPlaceholder is replaced with an environment's relative path in server DSNs.
const EnvPlaceholder = "{env}"

const envPrefix = "FGDB"

// Config captures the catalog tool configuration.
type Config struct {
	GameVariant string           `mapstructure:"game_variant" yaml:"game_variant"`
	RootPath    string           `mapstructure:"root_path" yaml:"root_path"`
	Repository  RepositoryConfig `mapstructure:"repository" yaml:"repository"`
	Database    DatabaseConfig   `mapstructure:"database" yaml:"database"`
	Log         LogConfig        `mapstructure:"log" yaml:"log"`
	Server      ServerConfig     `mapstructure:"server" yaml:"server"`
	Pool        PoolConfig       `mapstructure:"pool" yaml:"pool"`
}

// RepositoryConfig selects where the published catalog archive is fetched from.
type RepositoryConfig struct {
	Kind  string          `mapstructure:"kind" yaml:"kind"`
	Local LocalRepository `mapstructure:"local" yaml:"local"`
	S3    S3Repository    `mapstructure:"s3" yaml:"s3"`
}

// LocalRepository is a directory laid out as <variant>/zip and <variant>/timestamp.
type LocalRepository struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// S3Repository is an S3-compatible bucket with the same layout under Prefix.
type S3Repository struct {
	Endpoint  string `mapstructure:"endpoint" yaml:"endpoint"`
	Region    string `mapstructure:"region" yaml:"region"`
	Bucket    string `mapstructure:"bucket" yaml:"bucket"`
	AccessKey string `mapstructure:"access_key" yaml:"access_key"`
	SecretKey string `mapstructure:"secret_key" yaml:"secret_key"`
	PathStyle bool   `mapstructure:"path_style" yaml:"path_style"`
	Prefix    string `mapstructure:"prefix" yaml:"prefix"`
}

// DatabaseConfig defines the store backing each environment.
type DatabaseConfig struct {
	Driver        string         `mapstructure:"driver" yaml:"driver"`
	MySQL         MySQLConfig    `mapstructure:"mysql" yaml:"mysql"`
	Postgres      PostgresConfig `mapstructure:"postgres" yaml:"postgres"`
	SlowThreshold time.Duration  `mapstructure:"slow_threshold" yaml:"slow_threshold"`
}

// MySQLConfig holds a DSN template; {env} selects the per-environment database.
type MySQLConfig struct {
	DSN string `mapstructure:"dsn" yaml:"dsn"`
}

// PostgresConfig holds a DSN template; {env} selects the per-environment database.
type PostgresConfig struct {
	DSN string `mapstructure:"dsn" yaml:"dsn"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// ServerConfig defines admin HTTP server options.
type ServerConfig struct {
	Address     string     `mapstructure:"address" yaml:"address"`
	MaxBodySize int64      `mapstructure:"max_body_size" yaml:"max_body_size"`
	AdminToken  string     `mapstructure:"admin_token" yaml:"admin_token"`
	CORS        CORSConfig `mapstructure:"cors" yaml:"cors"`
}

// CORSConfig defines Cross-Origin Resource Sharing headers. CORS is off
// unless AllowOrigin is set.
type CORSConfig struct {
	AllowOrigin      string `mapstructure:"allow_origin" yaml:"allow_origin"`
	AllowMethods     string `mapstructure:"allow_methods" yaml:"allow_methods"`
	AllowHeaders     string `mapstructure:"allow_headers" yaml:"allow_headers"`
	AllowCredentials bool   `mapstructure:"allow_credentials" yaml:"allow_credentials"`
}

type PoolConfig struct {
	AcquireTimeout time.Duration `mapstructure:"acquire_timeout" yaml:"acquire_timeout"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		GameVariant: types.Poe1.Code(),
		RootPath:    ".",
		Repository: RepositoryConfig{
			Kind:  "local",
			Local: LocalRepository{Path: "repository"},
			S3:    S3Repository{Region: "us-east-1"},
		},
		Database: DatabaseConfig{
			Driver:        "sqlite",
			SlowThreshold: 200 * time.Millisecond,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Address:     ":8080",
			MaxBodySize: 32 * 1024 * 1024,
		},
		Pool: PoolConfig{
			AcquireTimeout: 30 * time.Second,
		},
	}
}

// Load reads the named configuration file. It searches in the current working
// directory first, then next to the binary executable. FGDB_* environment
// variables override file values; unknown keys are rejected.
func Load(name string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	log := logging.For("config")
	if configPath := findConfigFile(name); configPath != "" {
		log.Info("loading config", "path", configPath)
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		log.Warn("config file not found, using defaults", "name", name)
	}

	var cfg Config
	if err := v.UnmarshalExact(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("game_variant", d.GameVariant)
	v.SetDefault("root_path", d.RootPath)
	v.SetDefault("repository.kind", d.Repository.Kind)
	v.SetDefault("repository.local.path", d.Repository.Local.Path)
	v.SetDefault("repository.s3.endpoint", "")
	v.SetDefault("repository.s3.region", d.Repository.S3.Region)
	v.SetDefault("repository.s3.bucket", "")
	v.SetDefault("repository.s3.access_key", "")
	v.SetDefault("repository.s3.secret_key", "")
	v.SetDefault("repository.s3.path_style", false)
	v.SetDefault("repository.s3.prefix", "")
	v.SetDefault("database.driver", d.Database.Driver)
	v.SetDefault("database.mysql.dsn", "")
	v.SetDefault("database.postgres.dsn", "")
	v.SetDefault("database.slow_threshold", d.Database.SlowThreshold)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("server.address", d.Server.Address)
	v.SetDefault("server.max_body_size", d.Server.MaxBodySize)
	v.SetDefault("server.admin_token", "")
	v.SetDefault("server.cors.allow_origin", "")
	v.SetDefault("server.cors.allow_methods", "")
	v.SetDefault("server.cors.allow_headers", "")
	v.SetDefault("server.cors.allow_credentials", false)
	v.SetDefault("pool.acquire_timeout", d.Pool.AcquireTimeout)
}

func applyDefaults(cfg *Config) {
	d := Default()
	if cfg.GameVariant == "" {
		cfg.GameVariant = d.GameVariant
	}
	if cfg.RootPath == "" {
		cfg.RootPath = d.RootPath
	}
	if cfg.Repository.Kind == "" {
		cfg.Repository.Kind = d.Repository.Kind
	}
	if cfg.Repository.Local.Path == "" {
		cfg.Repository.Local.Path = d.Repository.Local.Path
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = d.Database.Driver
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = d.Server.Address
	}
	if cfg.Server.MaxBodySize <= 0 {
		cfg.Server.MaxBodySize = d.Server.MaxBodySize
	}
}

// Variant returns the configured game variant.
func (c *Config) Variant() (types.GameVariant, error) {
	return types.ParseGameVariant(c.GameVariant)
}

// Validate reports every inconsistent setting.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.Variant(); err != nil {
		errs = append(errs, err)
	}
	switch c.Repository.Kind {
	case "local":
	case "s3":
		if c.Repository.S3.Bucket == "" {
			errs = append(errs, errors.New("repository.s3.bucket is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported repository kind: %s", c.Repository.Kind))
	}
	switch strings.ToLower(c.Database.Driver) {
	case "sqlite", "sqlite3":
	case "mysql":
		errs = append(errs, checkDSN("database.mysql.dsn", c.Database.MySQL.DSN))
	case "postgres", "postgresql":
		errs = append(errs, checkDSN("database.postgres.dsn", c.Database.Postgres.DSN))
	default:
		errs = append(errs, fmt.Errorf("unsupported database driver: %s", c.Database.Driver))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unsupported log format: %s", c.Log.Format))
	}
	if c.Server.CORS.AllowCredentials && c.Server.CORS.AllowOrigin == "*" {
		errs = append(errs, errors.New("server.cors.allow_credentials cannot be combined with a wildcard origin"))
	}
	if c.Pool.AcquireTimeout < 0 {
		errs = append(errs, errors.New("pool.acquire_timeout must not be negative"))
	}
	return errors.Join(errs...)
}

func checkDSN(key, dsn string) error {
	if dsn == "" {
		return fmt.Errorf("%s must be configured", key)
	}
	if !strings.Contains(dsn, EnvPlaceholder) {
		return fmt.Errorf("%s must contain %s to separate environments", key, EnvPlaceholder)
	}
	return nil
}

// WriteDefault writes a starter configuration to path, refusing to overwrite.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer func() { _ = f.Close() }()
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// findConfigFile searches for a config file in the current directory first,
// then next to the binary executable. Returns the full path or empty string.
func findConfigFile(name string) string {
	if _, err := os.Stat(name); err == nil {
		abs, _ := filepath.Abs(name)
		return abs
	}

	exe, err := os.Executable()
	if err == nil {
		candidate := filepath.Join(filepath.Dir(exe), name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}
