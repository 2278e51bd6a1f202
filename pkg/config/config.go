// Package config provides a reusable loader for this service's
// configuration files and environment variables. It is versioned so
// applications can depend on a stable API contract.
//
// Version: v0.1.0
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/fractionestate/decentralized-did/pkg/utils"
)

// Version is the semantic version of this configuration package.
const Version = "v0.1.0"

// Config is the unified configuration for an enrollment/verification
// service instance. The fuzzy-extractor, aggregator, and DID builder
// parameters themselves are fixed by the codec and are never
// configurable; only the ambient concerns below are.
type Config struct {
	Storage struct {
		Kind string `mapstructure:"kind" json:"kind"` // "memory" | "filesystem"
		Path string `mapstructure:"path" json:"path"`
	} `mapstructure:"storage" json:"storage"`

	Ledger struct {
		Network string `mapstructure:"network" json:"network"` // mainnet | preprod | preview
		Label   int    `mapstructure:"label" json:"label"`
	} `mapstructure:"ledger" json:"ledger"`

	Logging struct {
		Level  string `mapstructure:"level" json:"level"`
		Format string `mapstructure:"format" json:"format"` // "text" | "json"
	} `mapstructure:"logging" json:"logging"`

	Server struct {
		ListenAddr string `mapstructure:"listen_addr" json:"listen_addr"`
	} `mapstructure:"server" json:"server"`

	Metrics struct {
		Enabled    bool   `mapstructure:"enabled" json:"enabled"`
		ListenAddr string `mapstructure:"listen_addr" json:"listen_addr"`
	} `mapstructure:"metrics" json:"metrics"`
}

// AppConfig holds the configuration loaded via Load or LoadFromEnv.
var AppConfig Config

// Load reads configuration files and merges any environment-specific
// overrides. The resulting configuration is stored in AppConfig and
// returned.
//
// The function uses the provided environment name to merge additional
// config files. If env is empty, only the default configuration is
// loaded.
func Load(env string) (*Config, error) {
	viper.SetConfigName("default")
	viper.AddConfigPath("cmd/config")
	viper.AddConfigPath("config")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, utils.Wrap(err, "load config")
	}

	if env != "" {
		viper.SetConfigName(env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, utils.Wrap(err, fmt.Sprintf("merge %s config", env))
		}
	}

	viper.AutomaticEnv()

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, utils.Wrap(err, "unmarshal config")
	}
	return &AppConfig, nil
}

// LoadFromEnv loads configuration using the DID_SERVICE_ENV environment
// variable.
func LoadFromEnv() (*Config, error) {
	return Load(utils.EnvOrDefault("DID_SERVICE_ENV", ""))
}
