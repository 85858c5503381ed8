package config

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultMaxQuestions caps the clarifying questions requested when the configuration omits it.
	DefaultMaxQuestions = 3
	// DefaultBreadth is forwarded to the research component when unset.
	DefaultBreadth = 3
	// DefaultDepth is forwarded to the research component when unset.
	DefaultDepth = 2
	// DefaultAttempts is the number of question generation attempts when unset.
	DefaultAttempts = 1
	// DefaultTimeoutSeconds bounds a single question generation attempt when unset.
	DefaultTimeoutSeconds = 60
	// DefaultHandoffMode prints the research request to stdout.
	DefaultHandoffMode = "print"

	emptyModelsErrorMessage                  = "config.models is empty"
	missingDefaultModelErrorMessage          = "no default model found (set models[].default: true)"
	rootConfigurationEmptyContentErrorFormat = "root configuration %s is empty"
	rootConfigurationUnmarshalErrorFormat    = "unmarshal root configuration %s: %w"
	negativeMaxQuestionsErrorFormat          = "clarify.max_questions must be >= 0, got %d"
	nonPositiveResearchValueErrorFormat      = "research.%s must be > 0, got %d"
)

type Root struct {
	Common   Common   `yaml:"common"`
	Models   []Model  `yaml:"models"`
	Clarify  Clarify  `yaml:"clarify"`
	Research Research `yaml:"research"`
	Handoff  Handoff  `yaml:"handoff"`
}

type Common struct {
	API struct {
		Endpoint  string `yaml:"endpoint"`
		APIKeyEnv string `yaml:"api_key_env"`
	} `yaml:"api"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
	Defaults struct {
		Attempts       int `yaml:"attempts"`
		TimeoutSeconds int `yaml:"timeout_seconds"`
	} `yaml:"defaults"`
}

type Model struct {
	Name                string `yaml:"name"`
	Provider            string `yaml:"provider"`
	ModelID             string `yaml:"model_id"`
	Default             bool   `yaml:"default"`
	ReasoningEffort     string `yaml:"reasoning_effort"`
	MaxCompletionTokens int    `yaml:"max_completion_tokens"`
}

// Clarify configures the question generation step. A nil MaxQuestions means
// the key was absent, which is different from an explicit 0 ("ask nothing").
type Clarify struct {
	MaxQuestions *int `yaml:"max_questions"`
}

// Research holds the opaque parameters forwarded to the research component.
type Research struct {
	Breadth int `yaml:"breadth"`
	Depth   int `yaml:"depth"`
}

type Handoff struct {
	Mode       string `yaml:"mode"`
	OutputPath string `yaml:"output_path"`
}

// LoadRoot parses the provided configuration source, applies defaults and validates required fields.
func LoadRoot(source RootConfigurationSource) (Root, error) {
	if len(source.Content) == 0 {
		return Root{}, fmt.Errorf(rootConfigurationEmptyContentErrorFormat, source.Reference)
	}

	var rootConfiguration Root
	if err := yaml.Unmarshal(source.Content, &rootConfiguration); err != nil {
		return Root{}, fmt.Errorf(rootConfigurationUnmarshalErrorFormat, source.Reference, err)
	}

	if len(rootConfiguration.Models) == 0 {
		return Root{}, errors.New(emptyModelsErrorMessage)
	}
	if _, ok := rootConfiguration.DefaultModel(); !ok {
		return Root{}, errors.New(missingDefaultModelErrorMessage)
	}

	rootConfiguration.applyDefaults()
	if err := rootConfiguration.Validate(); err != nil {
		return Root{}, err
	}
	return rootConfiguration, nil
}

func (root *Root) applyDefaults() {
	if root.Clarify.MaxQuestions == nil {
		defaultMaxQuestions := DefaultMaxQuestions
		root.Clarify.MaxQuestions = &defaultMaxQuestions
	}
	if root.Research.Breadth == 0 {
		root.Research.Breadth = DefaultBreadth
	}
	if root.Research.Depth == 0 {
		root.Research.Depth = DefaultDepth
	}
	if root.Common.Defaults.Attempts <= 0 {
		root.Common.Defaults.Attempts = DefaultAttempts
	}
	if root.Common.Defaults.TimeoutSeconds <= 0 {
		root.Common.Defaults.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if strings.TrimSpace(root.Handoff.Mode) == "" {
		root.Handoff.Mode = DefaultHandoffMode
	}
}

// Validate rejects values the clarification pipeline cannot run with.
func (root Root) Validate() error {
	if maxQuestions := root.MaxQuestions(); maxQuestions < 0 {
		return fmt.Errorf(negativeMaxQuestionsErrorFormat, maxQuestions)
	}
	if root.Research.Breadth <= 0 {
		return fmt.Errorf(nonPositiveResearchValueErrorFormat, "breadth", root.Research.Breadth)
	}
	if root.Research.Depth <= 0 {
		return fmt.Errorf(nonPositiveResearchValueErrorFormat, "depth", root.Research.Depth)
	}
	return nil
}

// MaxQuestions returns the configured question cap, falling back to DefaultMaxQuestions.
func (root Root) MaxQuestions() int {
	if root.Clarify.MaxQuestions == nil {
		return DefaultMaxQuestions
	}
	return *root.Clarify.MaxQuestions
}

func (root Root) DefaultModel() (Model, bool) {
	for _, modelConfiguration := range root.Models {
		if modelConfiguration.Default {
			return modelConfiguration, true
		}
	}
	return Model{}, false
}

func (root Root) FindModel(name string) (Model, bool) {
	for _, modelConfiguration := range root.Models {
		if modelConfiguration.Name == name {
			return modelConfiguration, true
		}
	}
	return Model{}, false
}
