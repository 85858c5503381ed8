package llmclarify

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// NewRootCommand assembles the llm-clarify command tree.
func NewRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:           applicationName,
		Short:         rootCommandShort,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCommand.AddCommand(newRunCommand())
	rootCommand.AddCommand(newModelsCommand())
	return rootCommand
}

// Execute runs the root command; an interrupt cancels the run before the next question is asked.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}
