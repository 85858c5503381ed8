package llmclarify

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/llm-clarify/internal/clarify"
	"github.com/temirov/llm-clarify/internal/config"
	"github.com/temirov/llm-clarify/internal/fsops"
	"github.com/temirov/llm-clarify/internal/llm"
	"github.com/temirov/llm-clarify/internal/pipeline"
)

type runCommandOptions struct {
	configPath    string
	query         string
	maxQuestions  int
	breadth       int
	depth         int
	attempts      int
	timeout       time.Duration
	modelOverride string
	handoffMode   string
	outputPath    string
}

func newRunCommand() *cobra.Command {
	options := &runCommandOptions{configPath: defaultConfigPath}

	command := &cobra.Command{
		Use:   runCommandUse,
		Short: runCommandShort,
		Args:  cobra.MaximumNArgs(runCommandArgsMax),
		RunE: func(cmd *cobra.Command, args []string) error {
			effectiveOptions := *options
			if len(args) > 0 {
				effectiveOptions.query = args[0]
			}
			return runClarifyCommand(cmd, effectiveOptions)
		},
	}

	command.Flags().StringVar(&options.configPath, configFlagName, defaultConfigPath, configFlagUsage)
	command.Flags().StringVar(&options.query, queryFlagName, "", queryFlagUsage)
	command.Flags().IntVar(&options.maxQuestions, maxQuestionsFlagName, 0, maxQuestionsFlagUsage)
	command.Flags().IntVar(&options.breadth, breadthFlagName, 0, breadthFlagUsage)
	command.Flags().IntVar(&options.depth, depthFlagName, 0, depthFlagUsage)
	command.Flags().IntVar(&options.attempts, attemptsFlagName, 0, attemptsFlagUsage)
	command.Flags().DurationVar(&options.timeout, timeoutFlagName, 0, timeoutFlagUsage)
	command.Flags().StringVar(&options.modelOverride, modelFlagName, "", modelFlagUsage)
	command.Flags().StringVar(&options.handoffMode, handoffFlagName, "", handoffFlagUsage)
	command.Flags().StringVar(&options.outputPath, outputFlagName, "", outputFlagUsage)

	return command
}

func runClarifyCommand(command *cobra.Command, options runCommandOptions) error {
	rootConfiguration, configurationSource, err := loadRootConfiguration(options.configPath)
	if err != nil {
		return err
	}

	logger, loggerErr := newLogger(rootConfiguration, command.ErrOrStderr())
	if loggerErr != nil {
		return loggerErr
	}
	defer func() { _ = logger.Sync() }()
	logger.Debug("configuration loaded",
		zap.String("reference", configurationSource.Reference),
		zap.String("origin", string(configurationSource.Origin)),
	)

	selectedModelName := resolveModelName(options, rootConfiguration)
	modelConfiguration, modelFound := rootConfiguration.FindModel(selectedModelName)
	if !modelFound {
		return fmt.Errorf(unknownModelErrorFormat, selectedModelName)
	}

	apiKey, apiKeyEnvironmentVariable := config.NewEnvironment().APIKey(rootConfiguration)
	if apiKey == "" {
		return fmt.Errorf(missingAPIKeyErrorFormat, apiKeyEnvironmentVariable)
	}

	handoffMode := resolveString(options.handoffMode, rootConfiguration.Handoff.Mode)
	registry := pipeline.NewDefaultRegistry()
	sink, sinkFound := registry.Create(handoffMode, pipeline.SinkOptions{
		Output:     command.OutOrStdout(),
		FileSystem: fsops.NewOS(),
		OutputPath: resolveString(options.outputPath, rootConfiguration.Handoff.OutputPath),
	})
	if !sinkFound {
		return fmt.Errorf(unknownHandoffErrorFormat, handoffMode, strings.Join(registry.Names(), ", "))
	}

	// One buffered reader serves both the query prompt and the answers.
	input := bufio.NewReader(command.InOrStdin())
	output := command.OutOrStdout()

	initialQuery, queryErr := resolveQuery(command, options, input, output)
	if queryErr != nil {
		return queryErr
	}

	provider := llm.NewProvider(llm.ClientConfig{
		HTTPBaseURL: config.Endpoint(rootConfiguration),
		APIKey:      apiKey,
	})

	runner := pipeline.Runner{
		Generator: clarify.QuestionGenerator{
			Provider:        provider,
			Model:           modelConfiguration.ModelID,
			ReasoningEffort: llm.ResolveReasoningEffort(modelConfiguration.ModelID, modelConfiguration.ReasoningEffort),
			MaxTokens:       modelConfiguration.MaxCompletionTokens,
		},
		Refiner: clarify.QueryRefiner{Open: clarify.ConsoleOpener(input, output)},
		Sink:    sink,
		Output:  output,
		Logger:  logger,
		Options: pipeline.RunOptions{
			MaxQuestions: resolveIntFlag(command, maxQuestionsFlagName, options.maxQuestions, rootConfiguration.MaxQuestions()),
			MaxAttempts:  resolveEffectiveAttempts(command, options, rootConfiguration),
			Timeout:      resolveEffectiveTimeout(options, rootConfiguration),
			Breadth:      resolveIntFlag(command, breadthFlagName, options.breadth, rootConfiguration.Research.Breadth),
			Depth:        resolveIntFlag(command, depthFlagName, options.depth, rootConfiguration.Research.Depth),
		},
	}

	if _, runErr := runner.Run(command.Context(), initialQuery); runErr != nil {
		return fmt.Errorf("clarify %q: %w", initialQuery, runErr)
	}
	return nil
}

func resolveQuery(command *cobra.Command, options runCommandOptions, input io.Reader, output io.Writer) (string, error) {
	query := strings.TrimSpace(options.query)
	if query != "" {
		return query, nil
	}
	channel := clarify.NewConsoleChannel(input, output)
	line, err := channel.ReadLine(command.Context(), queryPrompt)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", errors.New(emptyQueryErrorMessage)
		}
		return "", fmt.Errorf(readQueryErrorFormat, err)
	}
	query = strings.TrimSpace(line)
	if query == "" {
		return "", errors.New(emptyQueryErrorMessage)
	}
	return query, nil
}

func resolveModelName(options runCommandOptions, root config.Root) string {
	modelName := strings.TrimSpace(options.modelOverride)
	if modelName != "" {
		return modelName
	}

	defaultModel, ok := root.DefaultModel()
	if ok {
		return defaultModel.Name
	}

	return ""
}

// resolveIntFlag prefers an explicitly set flag, including an explicit 0 or a
// negative value, over the configured one.
func resolveIntFlag(cmd *cobra.Command, flagName string, flagValue int, configured int) int {
	flag := cmd.Flags().Lookup(flagName)
	if flag != nil && flag.Changed {
		return flagValue
	}
	return configured
}

func resolveEffectiveAttempts(cmd *cobra.Command, options runCommandOptions, root config.Root) int {
	attemptFlag := cmd.Flags().Lookup(attemptsFlagName)
	if attemptFlag != nil && attemptFlag.Changed && options.attempts > 0 {
		return options.attempts
	}
	effective := root.Common.Defaults.Attempts
	if effective <= 0 {
		effective = config.DefaultAttempts
	}
	return effective
}

func resolveEffectiveTimeout(options runCommandOptions, root config.Root) time.Duration {
	if options.timeout > 0 {
		return options.timeout
	}
	effective := time.Duration(root.Common.Defaults.TimeoutSeconds) * time.Second
	if effective <= 0 {
		effective = config.DefaultTimeoutSeconds * time.Second
	}
	return effective
}

func resolveString(override string, configured string) string {
	if trimmed := strings.TrimSpace(override); trimmed != "" {
		return trimmed
	}
	return strings.TrimSpace(configured)
}
