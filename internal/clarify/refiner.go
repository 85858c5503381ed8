package clarify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	initialQueryHeaderFormat = "Initial Query: %s\n"
	followUpHeader           = "Follow-up Questions and Answers:\n"
	questionLineFormat       = "Q: %s\n"
	answerLineFormat         = "A: %s"
	openChannelErrorFormat   = "open interactive channel: %w"
	readAnswerErrorFormat    = "read answer %d of %d: %w"
	exhaustedErrorFormat     = "%w (answered %d of %d)"
)

// QueryRefiner collects one answer per question over an interactive channel.
type QueryRefiner struct {
	Open ChannelOpener
}

// Refine asks every question in order and returns the combined query. The
// result is all-or-nothing: on any failure no partial combined query is returned.
func (r QueryRefiner) Refine(ctx context.Context, initialQuery string, questions []string) (combined string, err error) {
	if len(questions) == 0 {
		return FormatCombinedQuery(initialQuery, nil, nil), nil
	}

	channel, openErr := r.Open()
	if openErr != nil {
		return "", fmt.Errorf(openChannelErrorFormat, openErr)
	}
	defer func() {
		closeErr := channel.Close()
		if err == nil && closeErr != nil {
			combined, err = "", fmt.Errorf("close interactive channel: %w", closeErr)
		}
	}()

	answers := make([]string, 0, len(questions))
	for index, question := range questions {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		answer, readErr := channel.ReadLine(ctx, answerPrompt(question))
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return "", fmt.Errorf(exhaustedErrorFormat, ErrInputExhausted, len(answers), len(questions))
			}
			return "", fmt.Errorf(readAnswerErrorFormat, index+1, len(questions), readErr)
		}
		answers = append(answers, answer)
	}

	return FormatCombinedQuery(initialQuery, questions, answers), nil
}

// FormatCombinedQuery renders the initial query followed by one Q/A block per
// question. With no questions it returns the initial query unchanged.
func FormatCombinedQuery(initialQuery string, questions []string, answers []string) string {
	if len(questions) == 0 {
		return initialQuery
	}
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(initialQueryHeaderFormat, initialQuery))
	builder.WriteString(followUpHeader)
	for index, question := range questions {
		if index > 0 {
			builder.WriteString("\n")
		}
		answer := ""
		if index < len(answers) {
			answer = answers[index]
		}
		builder.WriteString(fmt.Sprintf(questionLineFormat, question))
		builder.WriteString(fmt.Sprintf(answerLineFormat, answer))
	}
	return builder.String()
}
