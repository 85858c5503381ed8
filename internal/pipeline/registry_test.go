package pipeline_test

import (
	"bytes"
	"testing"

	"github.com/temirov/llm-clarify/internal/pipeline"
	"github.com/temirov/llm-clarify/internal/research"
)

func TestDefaultRegistry(t *testing.T) {
	registry := pipeline.NewDefaultRegistry()

	names := registry.Names()
	if len(names) != 2 || names[0] != pipeline.FileHandoffMode || names[1] != pipeline.PrintHandoffMode {
		t.Fatalf("unexpected registry names %v", names)
	}

	var output bytes.Buffer
	sink, ok := registry.Create(pipeline.PrintHandoffMode, pipeline.SinkOptions{Output: &output})
	if !ok {
		t.Fatalf("expected print sink")
	}
	if _, isPrint := sink.(research.PrintSink); !isPrint {
		t.Fatalf("expected research.PrintSink, got %T", sink)
	}

	if _, ok := registry.Create("carrier-pigeon", pipeline.SinkOptions{}); ok {
		t.Fatalf("unknown mode must not resolve")
	}
}
