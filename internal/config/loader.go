package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/temirov/llm-clarify/internal/fsops"
)

// Origin names where a configuration source was found.
type Origin string

const (
	OriginExplicit         Origin = "explicit"
	OriginWorkingDirectory Origin = "working_directory"
	OriginHomeDirectory    Origin = "home_directory"
	OriginEmbedded         Origin = "embedded"
)

const (
	// EmbeddedRootConfigurationReference identifies the embedded fallback configuration source.
	EmbeddedRootConfigurationReference = "embedded default configuration"

	configurationFileName     = "config.yaml"
	homeConfigurationDirName  = ".llm-clarify"
	homeEnvironmentVariable   = "HOME"
	explicitReadErrorFormat   = "read explicit configuration %s: %w"
	workingDirectoryErrFormat = "determine working directory: %w"
)

//go:embed default_root_configuration.yaml
var embeddedRootConfiguration []byte

// RootConfigurationSource is the raw YAML of one configuration candidate.
type RootConfigurationSource struct {
	Reference string
	Origin    Origin
	Content   []byte
}

type searchLocation struct {
	origin Origin
	path   string
}

// RootConfigurationLoader resolves config.yaml from an explicit path, the
// working directory, then $HOME/.llm-clarify, and finally the embedded default.
type RootConfigurationLoader struct {
	workingDirectory string
	homeDirectory    string
	fileSystem       fsops.FS
}

func NewRootConfigurationLoader(workingDirectory string, homeDirectory string) RootConfigurationLoader {
	return RootConfigurationLoader{
		workingDirectory: workingDirectory,
		homeDirectory:    homeDirectory,
		fileSystem:       fsops.NewOS(),
	}
}

// WithFileSystem swaps the filesystem candidates are read from.
func (loader RootConfigurationLoader) WithFileSystem(fileSystem fsops.FS) RootConfigurationLoader {
	loader.fileSystem = fileSystem
	return loader
}

// NewDefaultRootConfigurationLoader uses the process working directory and $HOME.
func NewDefaultRootConfigurationLoader() (RootConfigurationLoader, error) {
	workingDirectory, err := os.Getwd()
	if err != nil {
		return RootConfigurationLoader{}, fmt.Errorf(workingDirectoryErrFormat, err)
	}
	return NewRootConfigurationLoader(workingDirectory, os.Getenv(homeEnvironmentVariable)), nil
}

// Load returns the first readable location. A missing or unreadable explicit
// file falls through to the next location; any other explicit read error is fatal.
func (loader RootConfigurationLoader) Load(explicitPath string) (RootConfigurationSource, error) {
	for _, location := range loader.searchLocations(explicitPath) {
		content, err := loader.fileSystem.ReadFile(location.path)
		if err == nil {
			return RootConfigurationSource{Reference: location.path, Origin: location.origin, Content: content}, nil
		}
		if location.origin == OriginExplicit && !skippable(err) {
			return RootConfigurationSource{}, fmt.Errorf(explicitReadErrorFormat, location.path, err)
		}
	}
	return RootConfigurationSource{
		Reference: EmbeddedRootConfigurationReference,
		Origin:    OriginEmbedded,
		Content:   embeddedRootConfiguration,
	}, nil
}

func (loader RootConfigurationLoader) searchLocations(explicitPath string) []searchLocation {
	var locations []searchLocation
	if explicitPath != "" {
		locations = append(locations, searchLocation{origin: OriginExplicit, path: explicitPath})
	}
	if loader.workingDirectory != "" {
		locations = append(locations, searchLocation{
			origin: OriginWorkingDirectory,
			path:   filepath.Join(loader.workingDirectory, configurationFileName),
		})
	}
	if loader.homeDirectory != "" {
		locations = append(locations, searchLocation{
			origin: OriginHomeDirectory,
			path:   filepath.Join(loader.homeDirectory, homeConfigurationDirName, configurationFileName),
		})
	}
	return locations
}

func skippable(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission)
}
