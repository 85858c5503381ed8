package llmclarify

import (
	"fmt"

	"github.com/spf13/cobra"
)

type modelsCommandOptions struct {
	configPath string
}

func newModelsCommand() *cobra.Command {
	options := &modelsCommandOptions{configPath: defaultConfigPath}

	command := &cobra.Command{
		Use:   modelsCommandUse,
		Short: modelsCommandShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModelsCommand(cmd, *options)
		},
	}

	command.Flags().StringVar(&options.configPath, configFlagName, defaultConfigPath, configFlagUsage)

	return command
}

func runModelsCommand(command *cobra.Command, options modelsCommandOptions) error {
	rootConfiguration, _, err := loadRootConfiguration(options.configPath)
	if err != nil {
		return err
	}

	outputWriter := command.OutOrStdout()
	for _, model := range rootConfiguration.Models {
		marker := " "
		if model.Default {
			marker = defaultMarker
		}
		_, writeErr := fmt.Fprintf(outputWriter, "%s %s\t(model=%s, provider=%s)\n", marker, model.Name, dashIfEmpty(model.ModelID), dashIfEmpty(model.Provider))
		if writeErr != nil {
			return fmt.Errorf("write model listing: %w", writeErr)
		}
	}

	return nil
}

func dashIfEmpty(value string) string {
	if value == "" {
		return dashPlaceholder
	}
	return value
}
