package recipe

import (
	"context"
	"log/slog"
	"time"

	"github.com/pantrychef/recipegen/internal/config"
	apperrors "github.com/pantrychef/recipegen/internal/errors"
	"github.com/pantrychef/recipegen/internal/logger"
	"github.com/pantrychef/recipegen/internal/metrics"
	"github.com/pantrychef/recipegen/internal/services/ai"
	"github.com/pantrychef/recipegen/internal/services/openai"
	"github.com/pantrychef/recipegen/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = telemetry.Tracer("recipegen/recipe")

// Options tunes a Generator.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
	RecipeCount int
	Timeout     time.Duration

	ImageModel       string
	ImageSize        string
	PlaceholderURL   string
	ImageConcurrency int
	ImageTimeout     time.Duration

	// RequestTimeout bounds the whole pipeline. Images still running when it
	// expires fall back to the placeholder.
	RequestTimeout time.Duration
}

// OptionsFromConfig maps the loaded configuration onto generator options.
func OptionsFromConfig(cfg *config.Config) Options {
	temperature := 0.7
	if cfg.Generation.Temperature != nil {
		temperature = *cfg.Generation.Temperature
	}
	return Options{
		Model:            cfg.Generation.Model,
		Temperature:      temperature,
		MaxTokens:        cfg.Generation.MaxTokens,
		RecipeCount:      cfg.Generation.RecipeCount,
		Timeout:          cfg.Generation.Timeout,
		ImageModel:       cfg.Images.Model,
		ImageSize:        cfg.Images.Size,
		PlaceholderURL:   cfg.Images.PlaceholderURL,
		ImageConcurrency: cfg.Images.Concurrency,
		ImageTimeout:     cfg.Images.Timeout,
		RequestTimeout:   cfg.RequestTimeout(),
	}
}

// Generator turns ingredients into illustrated recipes: one text completion,
// then one image per recipe.
type Generator struct {
	text   TextGenerator
	images ImageGenerator
	opts   Options
}

// NewGenerator creates a Generator. Zero options fall back to the service defaults.
func NewGenerator(text TextGenerator, images ImageGenerator, opts Options) *Generator {
	if opts.Model == "" {
		opts.Model = config.DefaultOpenAIChatModel
	}
	if opts.RecipeCount <= 0 {
		opts.RecipeCount = ai.DefaultRecipeCount
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 120 * time.Second
	}
	if opts.ImageModel == "" {
		opts.ImageModel = "dall-e-2"
	}
	if opts.ImageSize == "" {
		opts.ImageSize = "256x256"
	}
	if opts.PlaceholderURL == "" {
		opts.PlaceholderURL = config.DefaultPlaceholderURL
	}
	if opts.ImageConcurrency <= 0 {
		opts.ImageConcurrency = 5
	}
	if opts.ImageTimeout <= 0 {
		opts.ImageTimeout = 60 * time.Second
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = config.RequestBudget(opts.Timeout, opts.ImageTimeout, opts.RecipeCount, opts.ImageConcurrency)
	}
	return &Generator{text: text, images: images, opts: opts}
}

// NewGeneratorFromConfig wires the configured text and image providers.
func NewGeneratorFromConfig(cfg *config.Config) *Generator {
	return NewGenerator(NewTextProvider(cfg), NewImageProvider(cfg), OptionsFromConfig(cfg))
}

// PlaceholderURL is the image URL used when image generation fails.
func (g *Generator) PlaceholderURL() string {
	return g.opts.PlaceholderURL
}

// Generate runs the full pipeline. Only the text call and parsing can fail the
// request; image failures degrade to the placeholder URL.
func (g *Generator) Generate(ctx context.Context, req Request) (recipes []Recipe, err error) {
	ctx, span := tracer.Start(ctx, "recipe.generate")
	ctx, cancel := context.WithTimeout(ctx, g.opts.RequestTimeout)
	defer cancel()

	start := time.Now()
	defer func() {
		span.SetAttributes(attribute.Int("recipe.count", len(recipes)))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		metrics.RecordGeneration(ctx, start, len(recipes), err)
	}()

	raw, err := g.complete(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "Recipe completion call failed",
			"error", err.Error(),
			"model", g.opts.Model,
			logger.WithTraceContext(ctx))
		return nil, apperrors.NewUpstreamCallError("COMPLETION_FAILED", err)
	}

	recipes, err = ParseRecipes(raw)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to parse model response",
			"error", err.Error(),
			"raw_length", len(raw),
			logger.WithTraceContext(ctx))
		return nil, err
	}

	if len(recipes) != g.opts.RecipeCount {
		slog.WarnContext(ctx, "Model returned unexpected number of recipes",
			"requested", g.opts.RecipeCount,
			"returned", len(recipes))
	}

	outcomes := g.generateImages(ctx, recipes)
	for i := range recipes {
		recipes[i].ImageURL = outcomes[i].URL
	}

	slog.InfoContext(ctx, "Recipes generated",
		"recipes", len(recipes),
		"placeholders", countPlaceholders(outcomes),
		"duration_ms", time.Since(start).Milliseconds())

	return recipes, nil
}

func (g *Generator) complete(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.opts.Timeout)
	defer cancel()

	return g.text.Complete(ctx, openai.ChatRequest{
		Model:       g.opts.Model,
		System:      ai.SystemPrompt(g.opts.RecipeCount),
		User:        ai.UserPrompt(req.Ingredients, req.Filters, g.opts.RecipeCount),
		Temperature: g.opts.Temperature,
		MaxTokens:   g.opts.MaxTokens,
	})
}
