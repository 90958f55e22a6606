package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotConfigured indicates required Azure OpenAI settings are missing.
var ErrNotConfigured = errors.New("azure openai configuration is incomplete")

// Validate checks that every setting required to construct the model client
// is present. It returns nil when endpoint, API key, and deployment are all
// non-empty, and an ErrNotConfigured-wrapped error naming the missing
// settings otherwise.
func (c *Config) Validate() error {
	var missing []string
	if !c.Azure.EndpointConfigured() {
		missing = append(missing, "azure.endpoint")
	}
	if !c.Azure.APIKeyConfigured() {
		missing = append(missing, "azure.api_key")
	}
	if !c.Azure.DeploymentConfigured() {
		missing = append(missing, "azure.deployment")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrNotConfigured, strings.Join(missing, ", "))
	}
	return nil
}

// Valid reports whether Validate passes.
func (c *Config) Valid() bool {
	return c.Validate() == nil
}
