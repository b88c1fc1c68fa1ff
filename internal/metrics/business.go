package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter = otel.Meter("recipegen/business")

	// Recipe metrics
	RecipesGeneratedTotal    metric.Int64Counter
	RecipeGenerationDuration metric.Float64Histogram
	RecipeImagesTotal        metric.Int64Counter

	// External API metrics
	ExternalAPICallsTotal metric.Int64Counter
	ExternalAPIDuration   metric.Float64Histogram
)

func Init() error {
	var err error

	// Recipe metrics
	RecipesGeneratedTotal, err = meter.Int64Counter(
		"recipes.generated.total",
		metric.WithDescription("Total number of recipes returned to callers"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	RecipeGenerationDuration, err = meter.Float64Histogram(
		"recipe.generation.duration",
		metric.WithDescription("Duration of a full recipe generation request"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.5, 1, 2, 5, 10, 20, 30, 60, 120),
	)
	if err != nil {
		return err
	}

	RecipeImagesTotal, err = meter.Int64Counter(
		"recipe.images.total",
		metric.WithDescription("Recipe images by outcome (generated or placeholder)"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	// External API metrics
	ExternalAPICallsTotal, err = meter.Int64Counter(
		"external.api.calls.total",
		metric.WithDescription("Total number of external API calls"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	ExternalAPIDuration, err = meter.Float64Histogram(
		"external.api.duration",
		metric.WithDescription("Duration of external API calls"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30, 60),
	)
	if err != nil {
		return err
	}

	return nil
}

// RecordExternalCall records one call to a provider. Safe to call before Init.
func RecordExternalCall(ctx context.Context, provider, operation string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	attrs := metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("operation", operation),
		attribute.String("status", status),
	)
	if ExternalAPIDuration != nil {
		ExternalAPIDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	}
	if ExternalAPICallsTotal != nil {
		ExternalAPICallsTotal.Add(ctx, 1, attrs)
	}
}

// RecordGeneration records a finished generation request. Safe to call before Init.
func RecordGeneration(ctx context.Context, start time.Time, recipes int, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	if RecipeGenerationDuration != nil {
		RecipeGenerationDuration.Record(ctx, time.Since(start).Seconds(),
			metric.WithAttributes(attribute.String("status", status)))
	}
	if RecipesGeneratedTotal != nil && recipes > 0 {
		RecipesGeneratedTotal.Add(ctx, int64(recipes))
	}
}

// RecordImage records the outcome of one recipe image. Safe to call before Init.
func RecordImage(ctx context.Context, placeholder bool) {
	if RecipeImagesTotal == nil {
		return
	}
	outcome := "generated"
	if placeholder {
		outcome = "placeholder"
	}
	RecipeImagesTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
