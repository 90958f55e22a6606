// Package config loads and validates the attache service configuration.
package config

// Config is the full service configuration. Values are resolved by viper
// from defaults, an optional config.toml, and environment variables.
type Config struct {
	Debug   bool
	Azure   AzureConfig
	Server  ServerConfig
	History HistoryConfig
	Events  EventsConfig
}

// AzureConfig holds the Azure OpenAI connection settings.
type AzureConfig struct {
	Endpoint   string
	APIKey     string
	Deployment string
	APIVersion string
}

// EndpointConfigured reports whether the endpoint URL is set.
func (a AzureConfig) EndpointConfigured() bool { return a.Endpoint != "" }

// APIKeyConfigured reports whether the API credential is set.
func (a AzureConfig) APIKeyConfigured() bool { return a.APIKey != "" }

// DeploymentConfigured reports whether the deployment name is set.
func (a AzureConfig) DeploymentConfigured() bool { return a.Deployment != "" }

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Listen      string
	CORSOrigins []string
}

// HistoryConfig bounds the in-memory conversation.
type HistoryConfig struct {
	Cap int
}

// EventsConfig controls the optional reply event stream. Disabled by
// default; when enabled, Brokers and Topic select the Kafka destination.
type EventsConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}
