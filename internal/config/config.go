/*
 * config.go, part of molsvg.
 *
 * Copyright 2013 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */


//Package config loads the settings of the molsvg command from a YAML file and
//MOLSVG_* environment variables, using github.com/spf13/viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/rmera/molsvg/store"
)

const envPrefix = "MOLSVG"

const (
	DefaultDriver    = store.SQLite
	DefaultDSN       = "molsvg.db"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigParse        = errors.New("config file could not be parsed")
	ErrConfigValidation   = errors.New("invalid configuration")
)

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type StoreConfig struct {
	//AtomicInserts makes each molecule insert a single transaction.
	AtomicInserts bool `mapstructure:"atomic_inserts"`
	//SeedElements stores the built-in element table when the database has none.
	SeedElements bool `mapstructure:"seed_elements"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type RenderConfig struct {
	//MetricsFile, if set, receives the counters of the run in the Prometheus text format.
	MetricsFile string `mapstructure:"metrics_file"`
}

//Config holds every setting of the program.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Store    StoreConfig    `mapstructure:"store"`
	Log      LogConfig      `mapstructure:"log"`
	Render   RenderConfig   `mapstructure:"render"`
}

//newViper returns a viper instance that knows every key, so environment
//variables such as MOLSVG_DATABASE_DSN override them even without a file.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("database.driver", DefaultDriver)
	v.SetDefault("database.dsn", DefaultDSN)
	v.SetDefault("store.atomic_inserts", true)
	v.SetDefault("store.seed_elements", true)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
	v.SetDefault("render.metrics_file", "")
	return v
}

//Load reads the YAML file at path, if path is not empty, applies the
//environment overrides and the defaults, and validates the result.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var perr viper.ConfigParseError
			if errors.As(err, &perr) {
				return nil, fmt.Errorf("config: %w: %q: %v", ErrConfigParse, path, err)
			}
			return nil, fmt.Errorf("config: %w: %q: %v", ErrConfigFileNotFound, path, err)
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w: %v", ErrConfigParse, err)
	}
	ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

//ApplyDefaults fills the empty string fields of cfg. Booleans are left alone,
//their defaults come from Load.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = DefaultDriver
	}
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = DefaultDSN
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}

//Validate checks the values that can't be checked by their type.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case store.SQLite, store.Postgres:
	default:
		return fmt.Errorf("config: %w: database.driver %q, expected %s or %s", ErrConfigValidation, c.Database.Driver, store.SQLite, store.Postgres)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("config: %w: database.dsn is required", ErrConfigValidation)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("config: %w: log.level %q", ErrConfigValidation, c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("config: %w: log.format %q, expected console or json", ErrConfigValidation, c.Log.Format)
	}
	return nil
}
