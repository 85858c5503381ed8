package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/temirov/llm-clarify/internal/clarify"
)

const (
	reasoningModelPrefix   = "o"
	defaultReasoningEffort = "medium"
	responsePreviewLimit   = 512
)

// ClientConfig describes how to reach an OpenAI-compatible endpoint.
type ClientConfig struct {
	HTTPBaseURL string
	APIKey      string
	HTTPClient  *http.Client
}

// Provider implements clarify.Provider with Chat Completions structured outputs.
type Provider struct {
	client openai.Client
}

// NewProvider builds a provider with SDK retries disabled; retry policy belongs to the caller.
func NewProvider(cfg ClientConfig) Provider {
	options := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if strings.TrimSpace(cfg.HTTPBaseURL) != "" {
		options = append(options, option.WithBaseURL(cfg.HTTPBaseURL))
	}
	if cfg.HTTPClient != nil {
		options = append(options, option.WithHTTPClient(cfg.HTTPClient))
	}
	return Provider{client: openai.NewClient(options...)}
}

// ResolveReasoningEffort returns the explicit effort when set, otherwise
// "medium" for o-series models and nothing for the rest.
func ResolveReasoningEffort(modelIdentifier string, explicit string) string {
	if trimmed := strings.TrimSpace(explicit); trimmed != "" {
		return trimmed
	}
	if strings.HasPrefix(strings.TrimSpace(modelIdentifier), reasoningModelPrefix) {
		return defaultReasoningEffort
	}
	return ""
}

func (p Provider) GenerateObject(ctx context.Context, request clarify.ObjectRequest) (clarify.ObjectResponse, error) {
	params := buildChatParams(request)

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return clarify.ObjectResponse{}, classifyError(err)
	}
	if completion == nil || len(completion.Choices) == 0 {
		return clarify.ObjectResponse{}, clarify.NewProviderError(clarify.FailureSchema, "chat completion returned no choices", nil)
	}

	choice := completion.Choices[0]
	content := strings.TrimSpace(choice.Message.Content)
	if content == "" {
		if refusal := strings.TrimSpace(choice.Message.Refusal); refusal != "" {
			return clarify.ObjectResponse{}, clarify.NewProviderError(clarify.FailureSchema, "chat completion refusal: "+truncateForLog(refusal, responsePreviewLimit), nil)
		}
		return clarify.ObjectResponse{}, clarify.NewProviderError(clarify.FailureSchema, fmt.Sprintf("chat completion returned empty message (finish_reason=%s)", choice.FinishReason), nil)
	}
	if !json.Valid([]byte(content)) {
		return clarify.ObjectResponse{}, clarify.NewProviderError(clarify.FailureSchema, "chat completion is not valid JSON: "+truncateForLog(content, responsePreviewLimit), nil)
	}
	return clarify.ObjectResponse{Data: json.RawMessage(content)}, nil
}

func buildChatParams(request clarify.ObjectRequest) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(request.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(strings.TrimSpace(request.SystemPrompt)),
			openai.UserMessage(strings.TrimSpace(request.UserPrompt)),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        request.SchemaName,
					Schema:      request.Schema,
					Strict:      openai.Bool(true),
					Description: openai.String(request.SchemaDescription),
				},
			},
		},
	}
	if request.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(request.MaxTokens))
	}
	if effort := ResolveReasoningEffort(request.Model, request.ReasoningEffort); effort != "" {
		params.ReasoningEffort = shared.ReasoningEffort(effort)
	}
	return params
}

func classifyError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		detail := fmt.Sprintf("llm http error %d", apiErr.StatusCode)
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return clarify.NewProviderError(clarify.FailureAuth, detail, err)
		case http.StatusTooManyRequests:
			return clarify.NewProviderError(clarify.FailureRateLimit, detail, err)
		default:
			return clarify.NewProviderError(clarify.FailureTransport, detail, err)
		}
	}
	return clarify.NewProviderError(clarify.FailureTransport, "chat completion request", err)
}

func truncateForLog(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}
