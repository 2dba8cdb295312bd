// Package config provides Viper-based configuration loading for the Arena
// server.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig holds top-level server settings.
type ServerConfig struct {
	// Store selects the player store backend: "postgres" or "memory".
	Store string `mapstructure:"store"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// OpsConfig holds the operational listener settings: the HTTP endpoint that
// serves metrics and read-only game queries, and the gRPC health service.
type OpsConfig struct {
	// HTTPHost is the bind address for the ops HTTP listener.
	HTTPHost string `mapstructure:"http_host"`
	// HTTPPort is the TCP port for the ops HTTP listener.
	HTTPPort int `mapstructure:"http_port"`
	// GRPCHost is the bind address for the gRPC health service.
	GRPCHost string `mapstructure:"grpc_host"`
	// GRPCPort is the TCP port for the gRPC health service.
	GRPCPort int `mapstructure:"grpc_port"`
}

// HTTPAddr returns the "host:port" HTTP listen address.
func (o OpsConfig) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", o.HTTPHost, o.HTTPPort)
}

// GRPCAddr returns the "host:port" gRPC listen address.
func (o OpsConfig) GRPCAddr() string {
	return fmt.Sprintf("%s:%d", o.GRPCHost, o.GRPCPort)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// GameConfig holds gameplay tuning.
type GameConfig struct {
	// CombatCooldown is the minimum wait between battles per player.
	CombatCooldown time.Duration `mapstructure:"combat_cooldown"`
	// SearchCooldown is the minimum wait between item searches per player.
	SearchCooldown time.Duration `mapstructure:"search_cooldown"`
	// RoundCap bounds the battle loop.
	RoundCap int `mapstructure:"round_cap"`
	// HistoryLimit bounds the in-memory battle history ring.
	HistoryLimit int `mapstructure:"history_limit"`
	// OpponentsDir optionally overrides the built-in opponent roster with
	// YAML templates from a directory. Empty means built-ins.
	OpponentsDir string `mapstructure:"opponents_dir"`
	// ItemsDir optionally overrides the built-in item catalog with YAML
	// definitions from a directory. Empty means built-ins.
	ItemsDir string `mapstructure:"items_dir"`
	// DailyResetCron is the cron expression for the daily reset job.
	DailyResetCron string `mapstructure:"daily_reset_cron"`
}

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Ops      OpsConfig      `mapstructure:"ops"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Game     GameConfig     `mapstructure:"game"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateServer(c.Server); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateDatabase(c.Database); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateOps(c.Ops); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateServer(s ServerConfig) error {
	validStores := map[string]bool{"postgres": true, "memory": true}
	if !validStores[s.Store] {
		return fmt.Errorf("server.store must be one of [postgres, memory], got %q", s.Store)
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateOps(o OpsConfig) error {
	var errs []string
	if o.HTTPHost == "" {
		errs = append(errs, "ops.http_host must not be empty")
	}
	if o.HTTPPort < 1 || o.HTTPPort > 65535 {
		errs = append(errs, fmt.Sprintf("ops.http_port must be 1-65535, got %d", o.HTTPPort))
	}
	if o.GRPCHost == "" {
		errs = append(errs, "ops.grpc_host must not be empty")
	}
	if o.GRPCPort < 1 || o.GRPCPort > 65535 {
		errs = append(errs, fmt.Sprintf("ops.grpc_port must be 1-65535, got %d", o.GRPCPort))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.CombatCooldown < 0 {
		errs = append(errs, "game.combat_cooldown must not be negative")
	}
	if g.SearchCooldown < 0 {
		errs = append(errs, "game.search_cooldown must not be negative")
	}
	if g.RoundCap < 1 {
		errs = append(errs, fmt.Sprintf("game.round_cap must be >= 1, got %d", g.RoundCap))
	}
	if g.HistoryLimit < 1 {
		errs = append(errs, fmt.Sprintf("game.history_limit must be >= 1, got %d", g.HistoryLimit))
	}
	if g.DailyResetCron == "" {
		errs = append(errs, "game.daily_reset_cron must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with ARENA_ prefix
	v.SetEnvPrefix("ARENA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.store", "postgres")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "arena")
	v.SetDefault("database.password", "arena")
	v.SetDefault("database.name", "arena")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("ops.http_host", "0.0.0.0")
	v.SetDefault("ops.http_port", 8090)
	v.SetDefault("ops.grpc_host", "127.0.0.1")
	v.SetDefault("ops.grpc_port", 50051)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("game.combat_cooldown", "300s")
	v.SetDefault("game.search_cooldown", "600s")
	v.SetDefault("game.round_cap", 20)
	v.SetDefault("game.history_limit", 1000)
	v.SetDefault("game.daily_reset_cron", "0 0 * * *")
}
