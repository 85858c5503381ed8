package llm

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/temirov/llm-clarify/internal/clarify"
)

func TestGenerateQuestionsIntegration(t *testing.T) {
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_KEY"))
	if apiKey == "" {
		t.Skip("OPENAI_KEY must be set for integration tests")
	}

	model := strings.TrimSpace(os.Getenv("LLM_CLARIFY_INTEGRATION_MODEL"))
	if model == "" {
		model = "gpt-4o-mini"
	}

	generator := clarify.QuestionGenerator{
		Provider: NewProvider(ClientConfig{HTTPBaseURL: "https://api.openai.com/v1", APIKey: apiKey}),
		Model:    model,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// Live output varies between calls; only the bound is asserted.
	questions, err := generator.GenerateQuestions(ctx, "can pigs fly", 2)
	if err != nil {
		t.Fatalf("GenerateQuestions integration call failed: %v", err)
	}
	if len(questions) > 2 {
		encoded, _ := json.Marshal(questions)
		t.Fatalf("expected at most 2 questions, got %s", encoded)
	}
}
