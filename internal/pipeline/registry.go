package pipeline

import (
	"io"
	"sort"

	"github.com/temirov/llm-clarify/internal/fsops"
	"github.com/temirov/llm-clarify/internal/research"
)

const (
	PrintHandoffMode = "print"
	FileHandoffMode  = "file"
)

// SinkOptions carries what a sink factory may need.
type SinkOptions struct {
	Output     io.Writer
	FileSystem fsops.FS
	OutputPath string
}

type SinkFactory func(options SinkOptions) research.Sink

type Registry struct{ sinks map[string]SinkFactory }

func NewRegistry() *Registry { return &Registry{sinks: map[string]SinkFactory{}} }

// NewDefaultRegistry registers the built-in print and file sinks.
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()
	registry.Register(PrintHandoffMode, func(options SinkOptions) research.Sink {
		return research.PrintSink{Output: options.Output}
	})
	registry.Register(FileHandoffMode, func(options SinkOptions) research.Sink {
		fileSystem := options.FileSystem
		if fileSystem == nil {
			fileSystem = fsops.NewOS()
		}
		return research.FileSink{Ops: fsops.NewOps(fileSystem), OutputPath: options.OutputPath}
	})
	return registry
}

func (r *Registry) Register(name string, factory SinkFactory) { r.sinks[name] = factory }

func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.sinks))
	for k := range r.sinks {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) Create(name string, options SinkOptions) (research.Sink, bool) {
	f, ok := r.sinks[name]
	if !ok {
		return nil, false
	}
	return f(options), true
}
