package clarify

import (
	"context"
	"encoding/json"
)

// ObjectRequest is a single schema-constrained request to a language model.
type ObjectRequest struct {
	SystemPrompt      string
	UserPrompt        string
	SchemaName        string
	SchemaDescription string
	Schema            map[string]any
	Model             string
	ReasoningEffort   string
	MaxTokens         int
}

// ObjectResponse carries the raw JSON object produced by the model.
type ObjectResponse struct {
	Data json.RawMessage
}

// Provider performs one structured-output call. Failures should be returned as
// *ProviderError; any other error is treated as a transport failure.
type Provider interface {
	GenerateObject(ctx context.Context, request ObjectRequest) (ObjectResponse, error)
}

// LineChannel is a blocking prompt/response text channel with a single reader.
type LineChannel interface {
	// ReadLine presents prompt and blocks until a full line is available.
	// It returns io.EOF once no more input can arrive.
	ReadLine(ctx context.Context, prompt string) (string, error)
	// Close releases the channel. Calling it more than once is safe.
	Close() error
}

// ChannelOpener acquires the interactive channel for the duration of one refine loop.
type ChannelOpener func() (LineChannel, error)
