package config

import (
	"strings"

	"github.com/spf13/viper"
)

const (
	// EndpointEnvironmentVariable overrides common.api.endpoint.
	EndpointEnvironmentVariable = "OPENAI_ENDPOINT"
	// ModelEnvironmentVariable overrides the model identifier of the default model.
	ModelEnvironmentVariable = "OPENAI_MODEL"
	// DefaultAPIKeyEnvironmentVariable is consulted when common.api.api_key_env is blank.
	DefaultAPIKeyEnvironmentVariable = "OPENAI_KEY"
	// DefaultAPIEndpoint is used when neither the configuration nor the environment names one.
	DefaultAPIEndpoint = "https://api.openai.com/v1"

	endpointKey = "endpoint"
	modelKey    = "model"
)

// Environment reads provider overrides from process environment variables.
type Environment struct {
	store *viper.Viper
}

// NewEnvironment binds the supported override keys to their environment variables.
func NewEnvironment() Environment {
	store := viper.New()
	_ = store.BindEnv(endpointKey, EndpointEnvironmentVariable)
	_ = store.BindEnv(modelKey, ModelEnvironmentVariable)
	return Environment{store: store}
}

// Apply returns a copy of root with environment overrides applied. The model
// override replaces the model_id of the default model only.
func (environment Environment) Apply(root Root) Root {
	resolved := root
	if endpoint := strings.TrimSpace(environment.store.GetString(endpointKey)); endpoint != "" {
		resolved.Common.API.Endpoint = endpoint
	}
	if modelIdentifier := strings.TrimSpace(environment.store.GetString(modelKey)); modelIdentifier != "" {
		resolved.Models = make([]Model, len(root.Models))
		copy(resolved.Models, root.Models)
		for index := range resolved.Models {
			if resolved.Models[index].Default {
				resolved.Models[index].ModelID = modelIdentifier
				break
			}
		}
	}
	return resolved
}

// APIKey resolves the API key from the environment variable named in the configuration.
func (environment Environment) APIKey(root Root) (string, string) {
	variableName := strings.TrimSpace(root.Common.API.APIKeyEnv)
	if variableName == "" {
		variableName = DefaultAPIKeyEnvironmentVariable
	}
	_ = environment.store.BindEnv(apiKeyStoreKey(variableName), variableName)
	return strings.TrimSpace(environment.store.GetString(apiKeyStoreKey(variableName))), variableName
}

// Endpoint returns the configured endpoint or DefaultAPIEndpoint.
func Endpoint(root Root) string {
	endpoint := strings.TrimSpace(root.Common.API.Endpoint)
	if endpoint == "" {
		return DefaultAPIEndpoint
	}
	return endpoint
}

func apiKeyStoreKey(variableName string) string {
	return "api_key_" + strings.ToLower(variableName)
}
