package config_test

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/llm-clarify/internal/config"
	"github.com/temirov/llm-clarify/internal/fsops"
)

const (
	explicitConfigurationFileName       = "explicit.yaml"
	workingDirectoryConfigurationName   = "config.yaml"
	homeDirectoryName                   = ".llm-clarify"
	homeConfigurationFileName           = "config.yaml"
	sampleAPIEndpoint                   = "https://example.test/api"
	sampleAPIKeyEnvironmentVariableName = "EXAMPLE_API_KEY"
	explicitLoggingLevel                = "explicit-level"
	workingLoggingLevel                 = "working-level"
	homeLoggingLevel                    = "home-level"
	embeddedLoggingLevel                = "info"
	missingExplicitFileName             = "missing.yaml"
	workingDirectory                    = "/work"
	homeDirectory                       = "/home/user"
	configurationTemplate               = "common:\n  api:\n    endpoint: %s\n    api_key_env: %s\n  logging:\n    level: %s\n    format: console\n  defaults:\n    attempts: 1\n    timeout_seconds: 2\nmodels:\n  - name: default\n    provider: openai\n    model_id: model\n    default: true\n    max_completion_tokens: 10\nclarify:\n  max_questions: 2\nresearch:\n  breadth: 4\n  depth: 1\n"
	directoryPermissions                = 0o755
	filePermissions                     = 0o644
)

type loaderTestCase struct {
	name                 string
	setup                func(t *testing.T, fileSystem fsops.FS) (string, string)
	expectedLoggingLevel string
	expectedOrigin       config.Origin
}

func TestRootConfigurationLoader_Load(t *testing.T) {
	testCases := []loaderTestCase{
		{
			name: "explicit path used when available",
			setup: func(t *testing.T, fileSystem fsops.FS) (string, string) {
				t.Helper()
				configurationPath := filepath.Join(workingDirectory, explicitConfigurationFileName)
				writeConfiguration(t, fileSystem, configurationPath, explicitLoggingLevel)
				return configurationPath, configurationPath
			},
			expectedLoggingLevel: explicitLoggingLevel,
			expectedOrigin:       config.OriginExplicit,
		},
		{
			name: "explicit path missing falls back to working directory",
			setup: func(t *testing.T, fileSystem fsops.FS) (string, string) {
				t.Helper()
				workingConfigurationPath := filepath.Join(workingDirectory, workingDirectoryConfigurationName)
				writeConfiguration(t, fileSystem, workingConfigurationPath, workingLoggingLevel)
				explicitPath := filepath.Join(workingDirectory, missingExplicitFileName)
				return explicitPath, workingConfigurationPath
			},
			expectedLoggingLevel: workingLoggingLevel,
			expectedOrigin:       config.OriginWorkingDirectory,
		},
		{
			name: "working directory used when explicit path not provided",
			setup: func(t *testing.T, fileSystem fsops.FS) (string, string) {
				t.Helper()
				workingConfigurationPath := filepath.Join(workingDirectory, workingDirectoryConfigurationName)
				writeConfiguration(t, fileSystem, workingConfigurationPath, workingLoggingLevel)
				return "", workingConfigurationPath
			},
			expectedLoggingLevel: workingLoggingLevel,
			expectedOrigin:       config.OriginWorkingDirectory,
		},
		{
			name: "home directory used when other locations missing",
			setup: func(t *testing.T, fileSystem fsops.FS) (string, string) {
				t.Helper()
				configurationPath := filepath.Join(homeDirectory, homeDirectoryName, homeConfigurationFileName)
				writeConfiguration(t, fileSystem, configurationPath, homeLoggingLevel)
				return "", configurationPath
			},
			expectedLoggingLevel: homeLoggingLevel,
			expectedOrigin:       config.OriginHomeDirectory,
		},
		{
			name: "embedded configuration used when no files available",
			setup: func(t *testing.T, fileSystem fsops.FS) (string, string) {
				t.Helper()
				return "", config.EmbeddedRootConfigurationReference
			},
			expectedLoggingLevel: embeddedLoggingLevel,
			expectedOrigin:       config.OriginEmbedded,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			fileSystem := fsops.NewMem()
			loader := config.NewRootConfigurationLoader(workingDirectory, homeDirectory).WithFileSystem(fileSystem)
			explicitPath, expectedReference := testCase.setup(t, fileSystem)

			source, loadErr := loader.Load(explicitPath)
			if loadErr != nil {
				t.Fatalf("load configuration source: %v", loadErr)
			}
			if expectedReference != "" && source.Reference != expectedReference {
				t.Fatalf("expected reference %s, got %s", expectedReference, source.Reference)
			}
			if source.Origin != testCase.expectedOrigin {
				t.Fatalf("expected origin %s, got %s", testCase.expectedOrigin, source.Origin)
			}

			rootConfiguration, parseErr := config.LoadRoot(source)
			if parseErr != nil {
				t.Fatalf("parse root configuration: %v", parseErr)
			}
			if rootConfiguration.Common.Logging.Level != testCase.expectedLoggingLevel {
				t.Fatalf("expected logging level %s, got %s", testCase.expectedLoggingLevel, rootConfiguration.Common.Logging.Level)
			}
		})
	}
}

func TestRootConfigurationLoader_WorkingDirectoryBeatsHome(t *testing.T) {
	fileSystem := fsops.NewMem()
	workingPath := filepath.Join(workingDirectory, workingDirectoryConfigurationName)
	homePath := filepath.Join(homeDirectory, homeDirectoryName, homeConfigurationFileName)
	writeConfiguration(t, fileSystem, workingPath, workingLoggingLevel)
	writeConfiguration(t, fileSystem, homePath, homeLoggingLevel)

	source, err := config.NewRootConfigurationLoader(workingDirectory, homeDirectory).WithFileSystem(fileSystem).Load("")
	if err != nil {
		t.Fatalf("load configuration source: %v", err)
	}
	if source.Reference != workingPath || source.Origin != config.OriginWorkingDirectory {
		t.Fatalf("expected working directory source, got %s (%s)", source.Reference, source.Origin)
	}
}

func TestLoadRoot_EmbeddedDefaults(t *testing.T) {
	loader := config.NewRootConfigurationLoader("", "").WithFileSystem(fsops.NewMem())
	source, err := loader.Load("")
	if err != nil {
		t.Fatalf("load embedded source: %v", err)
	}
	root, err := config.LoadRoot(source)
	if err != nil {
		t.Fatalf("parse embedded configuration: %v", err)
	}

	if root.MaxQuestions() != 3 {
		t.Fatalf("expected 3 max questions, got %d", root.MaxQuestions())
	}
	if root.Research.Breadth != 3 || root.Research.Depth != 2 {
		t.Fatalf("expected breadth=3 depth=2, got breadth=%d depth=%d", root.Research.Breadth, root.Research.Depth)
	}
	defaultModel, ok := root.DefaultModel()
	if !ok {
		t.Fatalf("expected a default model")
	}
	if defaultModel.ModelID != "o3-mini" {
		t.Fatalf("expected default model o3-mini, got %s", defaultModel.ModelID)
	}
	if root.Common.API.APIKeyEnv != config.DefaultAPIKeyEnvironmentVariable {
		t.Fatalf("expected api key env %s, got %s", config.DefaultAPIKeyEnvironmentVariable, root.Common.API.APIKeyEnv)
	}
}

func TestLoadRoot_Validation(t *testing.T) {
	const modelsBlock = "models:\n  - name: m\n    model_id: m\n    default: true\n"

	testCases := []struct {
		name          string
		content       string
		expectedError string
		check         func(t *testing.T, root config.Root)
	}{
		{
			name:          "empty content rejected",
			content:       "",
			expectedError: "is empty",
		},
		{
			name:          "models required",
			content:       "clarify:\n  max_questions: 1\n",
			expectedError: "config.models is empty",
		},
		{
			name:          "default model required",
			content:       "models:\n  - name: m\n    model_id: m\n",
			expectedError: "no default model found",
		},
		{
			name:          "negative max questions rejected",
			content:       modelsBlock + "clarify:\n  max_questions: -1\n",
			expectedError: "clarify.max_questions must be >= 0",
		},
		{
			name:          "negative breadth rejected",
			content:       modelsBlock + "research:\n  breadth: -2\n",
			expectedError: "research.breadth must be > 0",
		},
		{
			name:    "zero max questions kept",
			content: modelsBlock + "clarify:\n  max_questions: 0\n",
			check: func(t *testing.T, root config.Root) {
				if root.MaxQuestions() != 0 {
					t.Fatalf("expected explicit 0 to be kept, got %d", root.MaxQuestions())
				}
			},
		},
		{
			name:    "missing sections defaulted",
			content: modelsBlock,
			check: func(t *testing.T, root config.Root) {
				if root.MaxQuestions() != config.DefaultMaxQuestions {
					t.Fatalf("expected default max questions, got %d", root.MaxQuestions())
				}
				if root.Common.Defaults.Attempts != config.DefaultAttempts {
					t.Fatalf("expected default attempts, got %d", root.Common.Defaults.Attempts)
				}
				if root.Handoff.Mode != config.DefaultHandoffMode {
					t.Fatalf("expected default handoff mode, got %s", root.Handoff.Mode)
				}
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			root, err := config.LoadRoot(config.RootConfigurationSource{Reference: "test", Content: []byte(testCase.content)})
			if testCase.expectedError != "" {
				if err == nil {
					t.Fatalf("expected error containing %q", testCase.expectedError)
				}
				if !strings.Contains(err.Error(), testCase.expectedError) {
					t.Fatalf("expected error containing %q, got %v", testCase.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testCase.check(t, root)
		})
	}
}

func writeConfiguration(t *testing.T, fileSystem fsops.FS, path string, loggingLevel string) {
	t.Helper()
	configurationDirectory := filepath.Dir(path)
	if err := fileSystem.MkdirAll(configurationDirectory, directoryPermissions); err != nil {
		t.Fatalf("create configuration directory: %v", err)
	}
	content := fmt.Sprintf(configurationTemplate, sampleAPIEndpoint, sampleAPIKeyEnvironmentVariableName, loggingLevel)
	if err := fileSystem.WriteFile(path, []byte(content), filePermissions); err != nil {
		t.Fatalf("write configuration file: %v", err)
	}
}
