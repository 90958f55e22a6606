// Package azure drives chat completions against an Azure OpenAI deployment,
// including the tool-calling loop.
package azure

import (
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// ClientConfig carries the Azure OpenAI connection settings.
type ClientConfig struct {
	Endpoint   string
	APIKey     string
	Deployment string
	APIVersion string
}

var (
	// ErrMissingEndpoint indicates the Azure endpoint URL is not set.
	ErrMissingEndpoint = errors.New("azure endpoint not configured")

	// ErrMissingAPIKey indicates the Azure API key is not set.
	ErrMissingAPIKey = errors.New("azure api key not configured")

	// ErrMissingDeployment indicates the deployment name is not set.
	ErrMissingDeployment = errors.New("azure deployment not configured")
)

// NewClient builds an Azure OpenAI client. Every model name is mapped to the
// configured deployment, so callers pass the deployment as the model.
func NewClient(cfg ClientConfig) (*openai.Client, error) {
	if cfg.Endpoint == "" {
		return nil, ErrMissingEndpoint
	}
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Deployment == "" {
		return nil, ErrMissingDeployment
	}

	clientConfig := openai.DefaultAzureConfig(cfg.APIKey, cfg.Endpoint)
	if cfg.APIVersion != "" {
		clientConfig.APIVersion = cfg.APIVersion
	}
	clientConfig.AzureModelMapperFunc = func(string) string {
		return cfg.Deployment
	}

	return openai.NewClientWithConfig(clientConfig), nil
}
