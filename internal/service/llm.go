package service

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// FinishReason classifies how the model ended its response.
type FinishReason int

const (
	// FinishStop is a normal completion.
	FinishStop FinishReason = iota
	// FinishMaxTokens means the response hit the output-length ceiling.
	FinishMaxTokens
	// FinishSafety means the provider's content filtering blocked the
	// response (includes recitation blocks).
	FinishSafety
	// FinishOther covers any other abnormal termination.
	FinishOther
)

// ModelOutput is the inspected result of one model invocation.
type ModelOutput struct {
	Text         string
	FinishReason FinishReason
}

// TextModel is a client that can turn a prompt into generated text. The
// production implementation talks to Gemini; tests substitute a fake.
type TextModel interface {
	GenerateContent(ctx context.Context, prompt string) (*ModelOutput, error)
}

const defaultGeminiModel = "gemini-2.5-flash"

// geminiModel calls the Gemini API with JSON output enforced.
type geminiModel struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiModel creates a Gemini-backed TextModel. The API key comes from
// GEMINI_API_KEY or, failing that, the file named by GEMINI_API_KEY_FILE.
func NewGeminiModel(ctx context.Context) (TextModel, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKeyFile := os.Getenv("GEMINI_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY or GEMINI_API_KEY_FILE must be set")
		}

		apiKeyBytes, err := os.ReadFile(apiKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read API key file: %w", err)
		}

		apiKey = strings.TrimSpace(string(apiKeyBytes))
		if apiKey == "" {
			return nil, fmt.Errorf("API key file is empty")
		}
	}

	modelName := os.Getenv("GEMINI_MODEL")
	if modelName == "" {
		modelName = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	// Moderate temperature for reproducibility of structure, bounded output,
	// strict JSON body.
	model.SetTemperature(0.7)
	model.SetMaxOutputTokens(65536)
	model.ResponseMIMEType = "application/json"

	return &geminiModel{client: client, model: model}, nil
}

// GenerateContent sends the prompt and inspects the completion status before
// returning the text body.
func (m *geminiModel) GenerateContent(ctx context.Context, prompt string) (*ModelOutput, error) {
	resp, err := m.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no candidates in response", ErrUpstreamUnavailable)
	}

	candidate := resp.Candidates[0]
	out := &ModelOutput{FinishReason: mapFinishReason(candidate.FinishReason)}

	if candidate.Content != nil {
		var b strings.Builder
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
		out.Text = b.String()
	}

	return out, nil
}

func mapFinishReason(reason genai.FinishReason) FinishReason {
	switch reason {
	case genai.FinishReasonStop, genai.FinishReasonUnspecified:
		return FinishStop
	case genai.FinishReasonMaxTokens:
		return FinishMaxTokens
	case genai.FinishReasonSafety, genai.FinishReasonRecitation:
		return FinishSafety
	default:
		return FinishOther
	}
}
