package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"
)

const defaultModel = "gpt-4o-mini"

// FoodFacts are nutrition facts for one standard portion.
type FoodFacts struct {
	Name         string  `json:"name"`
	PortionSizeG float64 `json:"portionSizeG"`
	Calories     float64 `json:"calories"`
	ProteinG     float64 `json:"proteinG"`
	CarbsG       float64 `json:"carbsG"`
	FatG         float64 `json:"fatG"`
}

type Client struct {
	client *goopenai.Client
	model  string
}

func NewClient(apiKey string) *Client {
	return &Client{
		client: goopenai.NewClient(apiKey),
		model:  defaultModel,
	}
}

// NewClientWithBaseURL points the client at an OpenAI-compatible endpoint.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	cfg := goopenai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &Client{
		client: goopenai.NewClientWithConfig(cfg),
		model:  defaultModel,
	}
}

func (c *Client) WithModel(model string) *Client {
	if strings.TrimSpace(model) != "" {
		c.model = model
	}
	return c
}

const systemPrompt = "You are a nutrition expert. Reply with a single JSON object with the keys " +
	"name (string), portionSizeG, calories, proteinG, carbsG and fatG (numbers) describing one " +
	"standard portion of the requested food. If the food is uncommon, use the closest common food. " +
	"For drinks, use the usual serving size in grams."

func (c *Client) GenerateFoodFacts(ctx context.Context, query string) (FoodFacts, error) {
	req := goopenai.ChatCompletionRequest{
		Model: c.model,
		Messages: []goopenai.ChatCompletionMessage{
			{
				Role:    goopenai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    goopenai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Generate the nutrition facts of the food: %s.", query),
			},
		},
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.2,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return FoodFacts{}, fmt.Errorf("OpenAI chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return FoodFacts{}, fmt.Errorf("no response from OpenAI API")
	}

	var facts FoodFacts
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &facts); err != nil {
		return FoodFacts{}, fmt.Errorf("decode OpenAI food facts: %w", err)
	}
	return facts, nil
}
