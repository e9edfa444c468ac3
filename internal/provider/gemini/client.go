package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultModel   = "gemini-2.5-flash"
)

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
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string         `json:"responseMimeType"`
	ResponseSchema   map[string]any `json:"responseSchema"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

var foodFactsSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"name":         map[string]any{"type": "STRING", "description": "Common name of the food"},
		"portionSizeG": map[string]any{"type": "NUMBER", "description": "Standard portion size in grams"},
		"calories":     map[string]any{"type": "NUMBER", "description": "Calories (kcal) in the standard portion"},
		"proteinG":     map[string]any{"type": "NUMBER", "description": "Protein grams in the standard portion"},
		"carbsG":       map[string]any{"type": "NUMBER", "description": "Carbohydrate grams in the standard portion"},
		"fatG":         map[string]any{"type": "NUMBER", "description": "Fat grams in the standard portion"},
	},
	"required":         []string{"name", "portionSizeG", "calories", "proteinG", "carbsG", "fatG"},
	"propertyOrdering": []string{"name", "portionSizeG", "calories", "proteinG", "carbsG", "fatG"},
}

// GenerateFoodFacts asks the model for structured nutrition facts of query.
func (c *Client) GenerateFoodFacts(ctx context.Context, query string) (FoodFacts, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return FoodFacts{}, fmt.Errorf("missing Gemini API key")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := strings.TrimSpace(c.Model)
	if model == "" {
		model = defaultModel
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: fmt.Sprintf("Generate the nutrition facts of the food: %s.", query)}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   foodFactsSchema,
		},
	})
	if err != nil {
		return FoodFacts{}, fmt.Errorf("marshal Gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", baseURL, model, c.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return FoodFacts{}, fmt.Errorf("create Gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return FoodFacts{}, fmt.Errorf("execute Gemini request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return FoodFacts{}, fmt.Errorf("read Gemini response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return FoodFacts{}, fmt.Errorf("Gemini request failed with status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return FoodFacts{}, fmt.Errorf("decode Gemini response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return FoodFacts{}, fmt.Errorf("empty Gemini response")
	}
	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return FoodFacts{}, fmt.Errorf("empty Gemini response")
	}

	var facts FoodFacts
	if err := json.Unmarshal([]byte(text), &facts); err != nil {
		return FoodFacts{}, fmt.Errorf("decode Gemini food facts: %w", err)
	}
	return facts, nil
}
