package llm

import (
	"context"
	"fmt"

	"autc/internal/models"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	// Fast model for routing decisions, balanced model for persona replies.
	RouterModel = "google/gemini-2.5-flash"
	WorkerModel = "google/gemini-2.5-flash"
)

// Client wraps the OpenRouter-compatible chat completion API behind the two
// operations the rest of the app needs: intent classification and reply
// generation.
type Client struct {
	api         openai.Client
	routerModel string
	workerModel string
}

func New(apiKey string) *Client {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL("https://openrouter.ai/api/v1"),
		option.WithHeader("X-Title", "AUTC"),
	)
	return &Client{
		api:         client,
		routerModel: RouterModel,
		workerModel: WorkerModel,
	}
}

var routeSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"agentId":   map[string]any{"type": "string"},
		"reasoning": map[string]any{"type": "string"},
	},
	"required":             []string{"agentId", "reasoning"},
	"additionalProperties": false,
}

// ClassifyIntent asks the routing model which agent should answer. It
// requests structured JSON output and returns the raw response text; the
// caller owns parsing and every fallback path.
func (c *Client) ClassifyIntent(ctx context.Context, directive, contextText string) (string, error) {
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.routerModel,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(directive),
			openai.UserMessage(contextText),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   "agent_route",
					Schema: routeSchema,
					Strict: openai.Bool(true),
				},
			},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty response from orchestrator model")
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateReply runs one persona turn: the agent directive as the system
// message, prior turns replayed, then the current utterance with an optional
// image attachment (base64 data URL).
func (c *Client) GenerateReply(ctx context.Context, directive string, prior []models.Message, current string, imageDataURL string) (string, error) {
	history := make([]openai.ChatCompletionMessageParamUnion, 0, len(prior)+2)
	history = append(history, openai.SystemMessage(directive))
	for _, msg := range prior {
		switch msg.Role {
		case models.RoleUser:
			history = append(history, openai.UserMessage(msg.Text))
		case models.RoleModel:
			history = append(history, openai.AssistantMessage(msg.Text))
		}
	}

	if imageDataURL != "" {
		history = append(history, openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
			openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: imageDataURL}),
			openai.TextContentPart(current),
		}))
	} else {
		history = append(history, openai.UserMessage(current))
	}

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    c.workerModel,
		Messages: history,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "I apologize, but I could not generate a response.", nil
	}
	return resp.Choices[0].Message.Content, nil
}
