// Package research hands a combined query to the deep-research component.
// Breadth and depth are forwarded unchanged; their meaning belongs to the consumer.
package research

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/temirov/llm-clarify/internal/fsops"
)

const (
	printHeaderLine          = "Printing User Prompt with Q & A..."
	printParametersFormat    = "breadth=%d, depth=%d\n"
	missingOutputPathMessage = "file handoff requires an output path"
	filePermissions          = 0o644
)

// Request is what the research component receives.
type Request struct {
	Query   string `json:"query"`
	Breadth int    `json:"breadth"`
	Depth   int    `json:"depth"`
}

// Sink consumes a research request.
type Sink interface {
	Handoff(ctx context.Context, request Request) error
}

// PrintSink writes the request for a human or a downstream shell pipeline.
type PrintSink struct {
	Output io.Writer
}

func (s PrintSink) Handoff(ctx context.Context, request Request) error {
	var builder strings.Builder
	builder.WriteString(printHeaderLine)
	builder.WriteString("\n")
	builder.WriteString(request.Query)
	builder.WriteString("\n")
	builder.WriteString(fmt.Sprintf(printParametersFormat, request.Breadth, request.Depth))
	if _, err := io.WriteString(s.Output, builder.String()); err != nil {
		return fmt.Errorf("write research request: %w", err)
	}
	return nil
}

// FileSink stores the request as JSON for a research process to pick up.
type FileSink struct {
	Ops        fsops.Ops
	OutputPath string
}

func (s FileSink) Handoff(ctx context.Context, request Request) error {
	outputPath := strings.TrimSpace(s.OutputPath)
	if outputPath == "" {
		return errors.New(missingOutputPathMessage)
	}
	encoded, err := json.MarshalIndent(request, "", "  ")
	if err != nil {
		return fmt.Errorf("encode research request: %w", err)
	}
	encoded = append(encoded, '\n')
	if err := s.Ops.WriteFileAtomic(outputPath, encoded, filePermissions); err != nil {
		return fmt.Errorf("write research request %s: %w", outputPath, err)
	}
	return nil
}
