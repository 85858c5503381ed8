package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/temirov/llm-clarify/internal/clarify"
	"github.com/temirov/llm-clarify/internal/research"
)

const (
	introLine             = "\nTo better understand your research needs, please answer these follow-up questions:\n"
	defaultAttemptTimeout = 60 * time.Second
)

// Runner drives one clarification run: generate questions, refine, hand off.
// It is the caller of the clarification core and owns the retry policy.
type Runner struct {
	Generator QuestionGenerator
	Refiner   QueryRefiner
	Sink      research.Sink
	Output    io.Writer
	Logger    *zap.Logger
	Options   RunOptions
	NewRunID  func() string
}

func (r Runner) Run(ctx context.Context, query string) (Report, error) {
	logger := r.logger()
	runID := r.runID()
	logger = logger.With(zap.String("run_id", runID))
	logger.Info("clarification started",
		zap.Int("max_questions", r.Options.MaxQuestions),
		zap.Int("breadth", r.Options.Breadth),
		zap.Int("depth", r.Options.Depth),
	)

	questions, attempts, genErr := r.generate(ctx, logger, query)
	if genErr != nil {
		return Report{}, fmt.Errorf("generate questions: %w", genErr)
	}
	logger.Info("questions generated", zap.Int("count", len(questions)), zap.Int("attempts", attempts))

	if len(questions) > 0 && r.Output != nil {
		if _, writeErr := io.WriteString(r.Output, introLine); writeErr != nil {
			return Report{}, fmt.Errorf("write intro: %w", writeErr)
		}
	}

	combined, refineErr := r.Refiner.Refine(ctx, query, questions)
	if refineErr != nil {
		return Report{}, fmt.Errorf("refine query: %w", refineErr)
	}

	request := research.Request{Query: combined, Breadth: r.Options.Breadth, Depth: r.Options.Depth}
	if r.Sink != nil {
		if handoffErr := r.Sink.Handoff(ctx, request); handoffErr != nil {
			return Report{}, fmt.Errorf("handoff: %w", handoffErr)
		}
		logger.Info("research request handed off")
	}

	return Report{
		RunID:         runID,
		Questions:     questions,
		CombinedQuery: combined,
		Breadth:       r.Options.Breadth,
		Depth:         r.Options.Depth,
		Attempts:      attempts,
	}, nil
}

type attemptRecord struct {
	Duration time.Duration
	Err      error
}

func (r Runner) generate(ctx context.Context, logger *zap.Logger, query string) ([]string, int, error) {
	var attemptLogs []attemptRecord
	maxAttempts := max(1, r.Options.MaxAttempts)
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, attempt - 1, ctxErr
		}
		started := time.Now()
		attemptCtx, cancel := context.WithTimeout(ctx, r.timeout())
		questions, err := r.Generator.GenerateQuestions(attemptCtx, query, r.Options.MaxQuestions)
		cancel()
		if err == nil {
			return questions, attempt, nil
		}
		attemptLogs = append(attemptLogs, attemptRecord{Duration: time.Since(started), Err: err})
		logger.Warn("question generation attempt failed", zap.Int("attempt", attempt), zap.Error(err))

		if !retryable(ctx, err) {
			return nil, attempt, err
		}
	}
	return nil, maxAttempts, fmt.Errorf("exhausted %d attempts\n%s: %w", maxAttempts, renderAttemptDebug(attemptLogs), attemptLogs[len(attemptLogs)-1].Err)
}

// retryable allows another attempt only for transient provider failures while
// the caller's context is still live.
func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var providerErr *clarify.ProviderError
	if !errors.As(err, &providerErr) {
		return false
	}
	return providerErr.Retryable()
}

func renderAttemptDebug(attempts []attemptRecord) string {
	var sb strings.Builder
	for idx, attempt := range attempts {
		sb.WriteString(fmt.Sprintf("Attempt %d (%s): %v\n", idx+1, attempt.Duration.Round(time.Millisecond), attempt.Err))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (r Runner) timeout() time.Duration {
	if r.Options.Timeout > 0 {
		return r.Options.Timeout
	}
	return defaultAttemptTimeout
}

func (r Runner) logger() *zap.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return zap.NewNop()
}

func (r Runner) runID() string {
	if r.NewRunID != nil {
		return r.NewRunID()
	}
	return uuid.NewString()
}
