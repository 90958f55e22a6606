package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// InitViper creates and returns a configured *viper.Viper.
// It sets defaults from NewDefaultConfig(), reads config.toml from the
// working directory when present, and binds environment variables.
//
// Config precedence (highest to lowest):
//  1. Environment variables (ATTACHE_AZURE_ENDPOINT etc., plus the
//     canonical AZURE_OPENAI_* names)
//  2. config.toml file values
//  3. Defaults from NewDefaultConfig()
func InitViper() (*viper.Viper, error) {
	v := viper.New()

	// 1. Register all defaults from NewDefaultConfig().
	setViperDefaults(v)

	// 2. Optional config file in the working directory.
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// Config file not found errors are fine, defaults will apply.
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	// 3. Environment variables: ATTACHE_SERVER_LISTEN, ATTACHE_DEBUG, etc.
	v.SetEnvPrefix("ATTACHE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The Azure settings also honor the names the hosted deployment
	// documents, so an existing .env keeps working unchanged.
	bindEnvs := map[string][]string{
		"azure.endpoint":    {"ATTACHE_AZURE_ENDPOINT", "AZURE_OPENAI_ENDPOINT"},
		"azure.api_key":     {"ATTACHE_AZURE_API_KEY", "AZURE_OPENAI_API_KEY"},
		"azure.deployment":  {"ATTACHE_AZURE_DEPLOYMENT", "AZURE_OPENAI_DEPLOYMENT_NAME"},
		"azure.api_version": {"ATTACHE_AZURE_API_VERSION", "AZURE_OPENAI_API_VERSION"},
	}
	for key, names := range bindEnvs {
		args := append([]string{key}, names...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("binding env for %s: %w", key, err)
		}
	}

	return v, nil
}

// Load resolves the full configuration through InitViper.
func Load() (*Config, error) {
	v, err := InitViper()
	if err != nil {
		return nil, err
	}
	return FromViper(v), nil
}

// FromViper materializes a Config from an already-initialized viper.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		Debug: v.GetBool("debug"),
		Azure: AzureConfig{
			Endpoint:   v.GetString("azure.endpoint"),
			APIKey:     v.GetString("azure.api_key"),
			Deployment: v.GetString("azure.deployment"),
			APIVersion: v.GetString("azure.api_version"),
		},
		Server: ServerConfig{
			Listen:      v.GetString("server.listen"),
			CORSOrigins: v.GetStringSlice("server.cors_origins"),
		},
		History: HistoryConfig{
			Cap: v.GetInt("history.cap"),
		},
		Events: EventsConfig{
			Enabled: v.GetBool("events.enabled"),
			Brokers: v.GetStringSlice("events.brokers"),
			Topic:   v.GetString("events.topic"),
		},
	}
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("debug", d.Debug)

	// Azure
	v.SetDefault("azure.endpoint", d.Azure.Endpoint)
	v.SetDefault("azure.api_key", d.Azure.APIKey)
	v.SetDefault("azure.deployment", d.Azure.Deployment)
	v.SetDefault("azure.api_version", d.Azure.APIVersion)

	// Server
	v.SetDefault("server.listen", d.Server.Listen)
	v.SetDefault("server.cors_origins", d.Server.CORSOrigins)

	// History
	v.SetDefault("history.cap", d.History.Cap)

	// Events
	v.SetDefault("events.enabled", d.Events.Enabled)
	v.SetDefault("events.brokers", d.Events.Brokers)
	v.SetDefault("events.topic", d.Events.Topic)
}
