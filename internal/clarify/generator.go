// Package clarify turns an ambiguous research query into a combined query by
// asking a language model for clarifying questions and collecting answers.
package clarify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const maxQuestionsField = "maxQuestions"

// QuestionGenerator asks a Provider for at most MaxQuestions clarifying questions.
type QuestionGenerator struct {
	Provider        Provider
	Model           string
	ReasoningEffort string
	MaxTokens       int
	// Now stamps the system prompt; time.Now when nil.
	Now func() time.Time
}

// GenerateQuestions issues exactly one provider request and returns the decoded
// questions truncated to maxQuestions. A zero maxQuestions asks nothing and
// skips the provider entirely.
func (g QuestionGenerator) GenerateQuestions(ctx context.Context, query string, maxQuestions int) ([]string, error) {
	if maxQuestions < 0 {
		return nil, &ConfigurationError{Field: maxQuestionsField, Value: maxQuestions}
	}
	if maxQuestions == 0 {
		return []string{}, nil
	}

	request := ObjectRequest{
		SystemPrompt:      SystemPrompt(g.now()),
		UserPrompt:        feedbackPrompt(query, maxQuestions),
		SchemaName:        feedbackSchemaName,
		SchemaDescription: fmt.Sprintf(questionsDescriptionFmt, maxQuestions),
		Schema:            feedbackSchema(maxQuestions),
		Model:             g.Model,
		ReasoningEffort:   g.ReasoningEffort,
		MaxTokens:         g.MaxTokens,
	}

	response, err := g.Provider.GenerateObject(ctx, request)
	if err != nil {
		return nil, AsProviderError(err)
	}

	questions, decodeErr := decodeQuestions(response.Data)
	if decodeErr != nil {
		return nil, NewProviderError(FailureSchema, "decode feedback object", decodeErr)
	}
	if len(questions) > maxQuestions {
		questions = questions[:maxQuestions]
	}
	return questions, nil
}

func (g QuestionGenerator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// decodeQuestions accepts exactly {"questions": [string, ...]}. Keys match
// case-sensitively and every element must be a JSON string, so null is rejected.
func decodeQuestions(raw json.RawMessage) ([]string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errors.New("empty response object")
	}
	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	var object map[string]json.RawMessage
	if err := decoder.Decode(&object); err != nil {
		return nil, err
	}
	if decoder.More() {
		return nil, errors.New("trailing data after response object")
	}
	if object == nil {
		return nil, errors.New("response is not an object")
	}
	for key := range object {
		if key != questionsFieldName {
			return nil, fmt.Errorf("unknown field %q", key)
		}
	}
	field, present := object[questionsFieldName]
	if !present {
		return nil, fmt.Errorf("missing required field %q", questionsFieldName)
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(field, &elements); err != nil {
		return nil, fmt.Errorf("field %q: %w", questionsFieldName, err)
	}
	if elements == nil {
		return nil, fmt.Errorf("field %q is null", questionsFieldName)
	}
	questions := make([]string, 0, len(elements))
	for index, element := range elements {
		element = bytes.TrimSpace(element)
		if len(element) == 0 || element[0] != '"' {
			return nil, fmt.Errorf("%s[%d] is not a string: %s", questionsFieldName, index, element)
		}
		var question string
		if err := json.Unmarshal(element, &question); err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", questionsFieldName, index, err)
		}
		questions = append(questions, question)
	}
	return questions, nil
}
