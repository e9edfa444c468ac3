package service

import (
	"context"

	"github.com/Jenn623/NutriBuddy/internal/provider/gemini"
	"github.com/Jenn623/NutriBuddy/internal/provider/openai"
)

// GeneratedFacts are nutrition facts for one standard portion of a food.
type GeneratedFacts struct {
	Name         string
	PortionSizeG float64
	Calories     float64
	ProteinG     float64
	CarbsG       float64
	FatG         float64
}

// Generator turns a free-text food name into nutrition facts.
type Generator interface {
	Generate(ctx context.Context, query string) (GeneratedFacts, error)
}

type GeneratorFunc func(ctx context.Context, query string) (GeneratedFacts, error)

func (f GeneratorFunc) Generate(ctx context.Context, query string) (GeneratedFacts, error) {
	return f(ctx, query)
}

func GeminiGenerator(c *gemini.Client) Generator {
	return GeneratorFunc(func(ctx context.Context, query string) (GeneratedFacts, error) {
		f, err := c.GenerateFoodFacts(ctx, query)
		if err != nil {
			return GeneratedFacts{}, err
		}
		return GeneratedFacts{
			Name:         f.Name,
			PortionSizeG: f.PortionSizeG,
			Calories:     f.Calories,
			ProteinG:     f.ProteinG,
			CarbsG:       f.CarbsG,
			FatG:         f.FatG,
		}, nil
	})
}

func OpenAIGenerator(c *openai.Client) Generator {
	return GeneratorFunc(func(ctx context.Context, query string) (GeneratedFacts, error) {
		f, err := c.GenerateFoodFacts(ctx, query)
		if err != nil {
			return GeneratedFacts{}, err
		}
		return GeneratedFacts{
			Name:         f.Name,
			PortionSizeG: f.PortionSizeG,
			Calories:     f.Calories,
			ProteinG:     f.ProteinG,
			CarbsG:       f.CarbsG,
			FatG:         f.FatG,
		}, nil
	})
}
