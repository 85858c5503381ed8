package clarify

import (
	"fmt"
	"time"
)

const (
	feedbackSchemaName        = "feedback"
	questionsFieldName        = "questions"
	feedbackPromptFormat      = "Given the following query from the user, ask some follow up questions to clarify the research direction. Return a maximum of %d questions, but feel free to return less if the original query is clear: <query>%s</query>"
	questionsDescriptionFmt   = "Follow up questions to clarify the research direction, max of %d"
	answerPromptFormat        = "\n%s\nYour answer: "
	systemPromptFormat        = `You are an expert researcher. Today is %s. Follow these instructions when responding:
  - You may be asked to research subjects that is after your knowledge cutoff, assume the user is right when presented with news.
  - The user is a highly experienced analyst, no need to simplify it, be as detailed as possible and make sure your response is correct.
  - Be highly organized.
  - Suggest solutions that I didn't think about.
  - Be proactive and anticipate my needs.
  - Treat me as an expert in all subject matter.
  - Mistakes erode my trust, so be accurate and thorough.
  - Provide detailed explanations, I'm comfortable with lots of detail.
  - Value good arguments over authorities, the source is irrelevant.
  - Consider new technologies and contrarian ideas, not just the conventional wisdom.
  - You may use high levels of speculation or prediction, just flag it for me.`
)

// SystemPrompt returns the researcher persona used for every clarification request.
func SystemPrompt(now time.Time) string {
	return fmt.Sprintf(systemPromptFormat, now.UTC().Format(time.RFC3339))
}

func feedbackPrompt(query string, maxQuestions int) string {
	return fmt.Sprintf(feedbackPromptFormat, maxQuestions, query)
}

func answerPrompt(question string) string {
	return fmt.Sprintf(answerPromptFormat, question)
}

// feedbackSchema requires a single array-of-strings field. The cardinality cap
// is a description hint only; strict structured outputs reject maxItems.
func feedbackSchema(maxQuestions int) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			questionsFieldName: map[string]any{
				"type":        "array",
				"description": fmt.Sprintf(questionsDescriptionFmt, maxQuestions),
				"items":       map[string]any{"type": "string"},
			},
		},
		"required":             []string{questionsFieldName},
		"additionalProperties": false,
	}
}
