package openai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	sdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/pantrychef/recipegen/internal/httpclient"
	"github.com/pantrychef/recipegen/internal/metrics"
)

const (
	// GroqBaseURL is Groq's OpenAI-compatible endpoint.
	GroqBaseURL = "https://api.groq.com/openai/v1"

	ProviderNameOpenAI = "OpenAI"
	ProviderNameGroq   = "Groq"
)

var (
	ErrNoResponse = errors.New("no response from provider")
	ErrNoImage    = errors.New("no image returned")
)

// ChatRequest is a two-message completion request.
type ChatRequest struct {
	Model       string
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// ImageRequest asks for a single URL-typed image.
type ImageRequest struct {
	Model  string
	Prompt string
	Size   string
}

// Client talks to an OpenAI-compatible API for chat completions and images.
type Client struct {
	api      sdk.Client
	provider string
}

type clientOptions struct {
	baseURL    string
	httpClient *http.Client
	provider   string
}

// Option configures a Client.
type Option func(*clientOptions)

// WithBaseURL points the client at a different OpenAI-compatible endpoint.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) { o.baseURL = baseURL }
}

// WithHTTPClient replaces the instrumented default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = c }
}

// WithProviderName sets the name used for spans and metrics.
func WithProviderName(name string) Option {
	return func(o *clientOptions) { o.provider = name }
}

// WithTimeout uses an instrumented HTTP client bounded by timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) { o.httpClient = httpclient.NewInstrumentedClient(timeout) }
}

func NewClient(apiKey string, opts ...Option) *Client {
	o := clientOptions{
		httpClient: httpclient.InstrumentedClient,
		provider:   ProviderNameOpenAI,
	}
	for _, opt := range opts {
		opt(&o)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(o.httpClient),
		// no retry policy: one attempt per call
		option.WithMaxRetries(0),
	}
	if o.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(o.baseURL))
	}

	return &Client{
		api:      sdk.NewClient(reqOpts...),
		provider: o.provider,
	}
}

// Provider returns the provider name this client reports.
func (c *Client) Provider() string {
	return c.provider
}

// Complete sends the system and user messages and returns the first choice's text.
func (c *Client) Complete(ctx context.Context, req ChatRequest) (content string, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordExternalCall(ctx, strings.ToLower(c.provider), "chat", start, err)
	}()

	params := sdk.ChatCompletionNewParams{
		Model: sdk.ChatModel(req.Model),
		Messages: []sdk.ChatCompletionMessageParamUnion{
			sdk.SystemMessage(req.System),
			sdk.UserMessage(req.User),
		},
		Temperature: sdk.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = sdk.Int(int64(req.MaxTokens))
	}

	resp, err := c.api.Chat.Completions.New(httpclient.WithProvider(ctx, c.provider), params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoResponse
	}

	return resp.Choices[0].Message.Content, nil
}

// GenerateImage requests one image and returns its URL.
func (c *Client) GenerateImage(ctx context.Context, req ImageRequest) (url string, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordExternalCall(ctx, strings.ToLower(c.provider), "image", start, err)
	}()

	resp, err := c.api.Images.Generate(httpclient.WithProvider(ctx, c.provider), sdk.ImageGenerateParams{
		Model:          sdk.ImageModel(req.Model),
		Prompt:         req.Prompt,
		Size:           sdk.ImageGenerateParamsSize(req.Size),
		ResponseFormat: sdk.ImageGenerateParamsResponseFormatURL,
		N:              sdk.Int(1),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", ErrNoImage
	}

	return resp.Data[0].URL, nil
}
