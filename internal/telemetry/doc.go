// Package telemetry provides OpenTelemetry initialization and helpers
// for tracing, logs and metrics across the recipe generation service.
//
// The package configures OTLP HTTP export for all three signals. When no
// endpoint is configured nothing is installed and the global no-op
// providers stay in place.
package telemetry
