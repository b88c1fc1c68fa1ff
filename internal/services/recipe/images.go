package recipe

import (
	"context"
	"log/slog"

	"github.com/pantrychef/recipegen/internal/metrics"
	"github.com/pantrychef/recipegen/internal/services/ai"
	"github.com/pantrychef/recipegen/internal/services/openai"
	"github.com/pantrychef/recipegen/internal/worker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ImageOutcome is the result of one recipe's image call: either a provider URL,
// or the placeholder URL together with the error that caused it.
type ImageOutcome struct {
	URL string
	Err error
}

// Placeholder reports whether the outcome fell back to the placeholder image.
func (o ImageOutcome) Placeholder() bool {
	return o.Err != nil
}

// generateImages returns one outcome per recipe, in recipe order.
func (g *Generator) generateImages(ctx context.Context, recipes []Recipe) []ImageOutcome {
	return worker.MapOrdered(ctx, recipes, g.opts.ImageConcurrency, func(ctx context.Context, _ int, r Recipe) ImageOutcome {
		outcome := g.generateImage(ctx, r)
		metrics.RecordImage(ctx, outcome.Placeholder())
		return outcome
	})
}

func (g *Generator) generateImage(ctx context.Context, r Recipe) ImageOutcome {
	ctx, span := tracer.Start(ctx, "recipe.image", trace.WithAttributes(attribute.String("recipe.title", r.Title)))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, g.opts.ImageTimeout)
	defer cancel()

	url, err := g.images.GenerateImage(ctx, openai.ImageRequest{
		Model:  g.opts.ImageModel,
		Prompt: ai.ImagePrompt(r.Title),
		Size:   g.opts.ImageSize,
	})
	if err == nil && url == "" {
		err = openai.ErrNoImage
	}
	if err != nil {
		slog.WarnContext(ctx, "Image generation failed, using placeholder",
			"title", r.Title,
			"error", err.Error())
		span.SetAttributes(attribute.Bool("recipe.image.placeholder", true))
		span.RecordError(err)
		return ImageOutcome{URL: g.opts.PlaceholderURL, Err: err}
	}
	return ImageOutcome{URL: url}
}

func countPlaceholders(outcomes []ImageOutcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Placeholder() {
			n++
		}
	}
	return n
}
