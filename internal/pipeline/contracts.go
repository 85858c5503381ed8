package pipeline

import (
	"context"
	"time"
)

// QuestionGenerator produces at most maxQuestions clarifying questions.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, query string, maxQuestions int) ([]string, error)
}

// QueryRefiner turns questions into a combined query through an interactive channel.
type QueryRefiner interface {
	Refine(ctx context.Context, initialQuery string, questions []string) (string, error)
}

type RunOptions struct {
	MaxQuestions int
	MaxAttempts  int
	Timeout      time.Duration
	Breadth      int
	Depth        int
}

// Report summarizes one clarification run.
type Report struct {
	RunID         string
	Questions     []string
	CombinedQuery string
	Breadth       int
	Depth         int
	Attempts      int
}
