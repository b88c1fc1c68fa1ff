package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/pantrychef/recipegen/internal/errors"
	"github.com/pantrychef/recipegen/internal/logger"
	"github.com/pantrychef/recipegen/internal/middleware"
	"github.com/pantrychef/recipegen/internal/sentry"
	"github.com/pantrychef/recipegen/internal/services/recipe"
	"github.com/pantrychef/recipegen/internal/validation"
)

// MaxRequestBodyBytes caps the size of a generate request body.
const MaxRequestBodyBytes = 1 << 20

// RecipeGenerator produces recipes for a validated request.
type RecipeGenerator interface {
	Generate(ctx context.Context, req recipe.Request) ([]recipe.Recipe, error)
}

type Server struct {
	generator RecipeGenerator
}

func NewServer(generator RecipeGenerator) *Server {
	return &Server{generator: generator}
}

type GenerateRecipesResponse struct {
	Recipes []recipe.Recipe `json:"recipes"`
}

type ErrorResponse struct {
	Error string  `json:"error"`
	Raw   *string `json:"raw,omitempty"`
}

func (s *Server) HandleGenerateRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes)

	var req recipe.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: "Request body too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := validation.ValidateGenerateRequest(&req); err != nil {
		writeError(ctx, w, err)
		return
	}

	slog.InfoContext(ctx, "Generating recipes",
		"ingredients", len(req.Ingredients),
		"filters", len(req.Filters),
		logger.WithTraceContext(ctx))

	recipes, err := s.generator.Generate(ctx, req)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusOK, GenerateRecipesResponse{Recipes: validation.NormalizeRecipes(recipes)})
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	appErr := apperrors.As(err)

	resp := ErrorResponse{Error: appErr.Message}
	if appErr.Type == apperrors.ErrorTypeUpstreamParse {
		raw := appErr.Raw
		resp.Raw = &raw
	}

	if appErr.StatusCode >= http.StatusInternalServerError {
		requestID, _ := middleware.GetRequestID(ctx)
		slog.ErrorContext(ctx, "Request failed",
			"error", err.Error(),
			"error_type", string(appErr.Type),
			"error_code", appErr.Code(),
			"request_id", requestID)
		sentry.CaptureError(ctx, err)
	} else {
		slog.InfoContext(ctx, "Request rejected",
			"error", appErr.Message,
			"error_code", appErr.Code(),
			"recovery", appErr.RecoverySuggestion())
	}

	writeJSON(w, appErr.StatusCode, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
