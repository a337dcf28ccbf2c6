package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	jsonrepair "github.com/kaptinlin/jsonrepair"
	openai "github.com/sashabaranov/go-openai"

	"github.com/soundprediction/relex/pkg/types"
)

// OpenAIConfig configures the OpenAI-compatible classifier.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string // empty for api.openai.com; set for compatible servers
	Model   string
	// Categories is the closed label set the model may answer with, not
	// counting the negative sentinel. Encoded inverted forms are derived
	// automatically.
	Categories  []string
	Temperature float32
}

// OpenAI classifies feature vectors with a chat-completion model speaking the
// OpenAI API. It is an adapter over the opaque classifier contract, not a
// trained statistical model; use it where no task-specific model exists yet.
type OpenAI struct {
	client *openai.Client
	config OpenAIConfig
	system string
	logger *slog.Logger
}

// NewOpenAI creates the classifier. A nil logger falls back to slog.Default().
func NewOpenAI(config OpenAIConfig, logger *slog.Logger) (*OpenAI, error) {
	if config.Model == "" {
		return nil, fmt.Errorf("classifier model is required")
	}
	if len(config.Categories) == 0 {
		return nil, fmt.Errorf("classifier requires at least one category")
	}
	if logger == nil {
		logger = slog.Default()
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAI{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
		system: buildSystemPrompt(config.Categories),
		logger: logger,
	}, nil
}

// Classify implements Classifier.
func (c *OpenAI) Classify(ctx context.Context, features []types.Feature) (string, error) {
	payload, err := json.Marshal(features)
	if err != nil {
		return "", fmt.Errorf("failed to encode features: %w", err)
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.config.Model,
		Temperature: c.config.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: c.system},
			{Role: openai.ChatMessageRoleUser, Content: string(payload)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("classification request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("classifier returned no choices")
	}

	category, err := parseCategory(resp.Choices[0].Message.Content)
	if err != nil {
		c.logger.Warn("unparseable classifier response", "error", err)
		return "", err
	}
	return category, nil
}

func buildSystemPrompt(categories []string) string {
	var b strings.Builder
	b.WriteString("You classify the relation between two entity mentions from their extracted features. ")
	b.WriteString("Answer with a JSON object {\"category\": \"...\"} and nothing else. ")
	b.WriteString("Valid categories, where the -1 suffix means the relation holds with the arguments reversed:\n")
	for _, cat := range categories {
		fmt.Fprintf(&b, "  %s, %s%s\n", cat, cat, "-1")
	}
	fmt.Fprintf(&b, "  %s (no relation between the pair)\n", types.NoRelation)
	return b.String()
}

// parseCategory decodes the model's JSON answer, repairing malformed output
// first since chat models routinely emit trailing prose or unquoted keys.
func parseCategory(content string) (string, error) {
	repaired, err := jsonrepair.JSONRepair(content)
	if err != nil {
		repaired = content
	}

	var answer struct {
		Category string `json:"category"`
	}
	if err := json.Unmarshal([]byte(repaired), &answer); err != nil {
		return "", fmt.Errorf("failed to decode classifier answer %q: %w", content, err)
	}
	if answer.Category == "" {
		return "", fmt.Errorf("classifier answer missing category: %q", content)
	}
	return answer.Category, nil
}
