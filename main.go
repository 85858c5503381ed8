package main

import (
	"os"

	llmclarify "github.com/temirov/llm-clarify/cmd/llm-clarify"
	"go.uber.org/zap"
)

func main() {
	logger := zap.Must(zap.NewProduction())

	executionErr := llmclarify.Execute()
	if executionErr != nil {
		logger.Error("command execution failed", zap.Error(executionErr))
		_ = logger.Sync()
		os.Exit(1)
	}

	syncErr := logger.Sync()
	if syncErr != nil {
		os.Exit(1)
	}
}
