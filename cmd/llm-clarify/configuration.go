package llmclarify

import (
	"fmt"

	"github.com/temirov/llm-clarify/internal/config"
)

// loadRootConfiguration resolves the configuration source, parses it and applies environment overrides.
func loadRootConfiguration(configurationPath string) (config.Root, config.RootConfigurationSource, error) {
	configurationLoader, loaderErr := config.NewDefaultRootConfigurationLoader()
	if loaderErr != nil {
		return config.Root{}, config.RootConfigurationSource{}, fmt.Errorf(configurationLoaderInitError, loaderErr)
	}
	configurationSource, sourceErr := configurationLoader.Load(configurationPath)
	if sourceErr != nil {
		return config.Root{}, config.RootConfigurationSource{}, fmt.Errorf(configurationSourceError, sourceErr)
	}
	rootConfiguration, loadErr := config.LoadRoot(configurationSource)
	if loadErr != nil {
		return config.Root{}, config.RootConfigurationSource{}, fmt.Errorf(rootConfigurationLoadError, configurationSource.Reference, loadErr)
	}
	return config.NewEnvironment().Apply(rootConfiguration), configurationSource, nil
}
