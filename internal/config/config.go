package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	ProviderOpenAI = "openai"
	ProviderGroq   = "groq"

	DefaultOpenAIChatModel = "gpt-3.5-turbo"
	DefaultGroqChatModel   = "llama-3.3-70b-versatile"
	DefaultPlaceholderURL  = "https://via.placeholder.com/512?text=No+Image"
)

type Config struct {
	Env            string
	ServiceName    string
	ServiceVersion string

	OpenAIKey     string
	OpenAIBaseURL string
	GroqKey       string

	OtelExporterOTLPEndpoint string
	OtelExporterOTLPHeaders  string
	SentryDSN                string

	Port string

	Generation GenerationConfig
	Images     ImageConfig
}

// GenerationConfig controls the recipe text completion call.
type GenerationConfig struct {
	Provider    string        `yaml:"provider"`
	Model       string        `yaml:"model"`
	Temperature *float64      `yaml:"temperature"`
	MaxTokens   int           `yaml:"max_tokens"`
	RecipeCount int           `yaml:"recipe_count"`
	Timeout     time.Duration `yaml:"timeout"`
}

// ImageConfig controls the per-recipe image generation calls.
type ImageConfig struct {
	Model          string        `yaml:"model"`
	Size           string        `yaml:"size"`
	PlaceholderURL string        `yaml:"placeholder_url"`
	Concurrency    int           `yaml:"concurrency"`
	Timeout        time.Duration `yaml:"timeout"`
}

func Load() (*Config, error) {
	return LoadFile("config.yaml")
}

// LoadFile behaves like Load but reads the YAML overrides from path.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{
		Env:                      os.Getenv("ENV"),
		ServiceName:              os.Getenv("SERVICE_NAME"),
		ServiceVersion:           os.Getenv("SERVICE_VERSION"),
		OpenAIKey:                os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:            os.Getenv("OPENAI_BASE_URL"),
		GroqKey:                  os.Getenv("GROQ_API_KEY"),
		OtelExporterOTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OtelExporterOTLPHeaders:  os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"),
		SentryDSN:                os.Getenv("SENTRY_DSN"),
		Port:                     os.Getenv("PORT"),
	}

	// Load from YAML file if available
	if err := cfg.LoadFromYAML(path); err != nil {
		return nil, fmt.Errorf("failed to load YAML config: %w", err)
	}

	// Set defaults
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "recipegen"
	}
	if cfg.ServiceVersion == "" {
		cfg.ServiceVersion = "1.0.0"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	cfg.SetGenerationDefaults()
	cfg.SetImageDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) LoadFromYAML(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File not found is not an error
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var yamlConfig struct {
		Generation GenerationConfig `yaml:"generation"`
		Images     ImageConfig      `yaml:"images"`
	}

	if err := yaml.Unmarshal(data, &yamlConfig); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	g := yamlConfig.Generation
	if g.Provider != "" {
		c.Generation.Provider = g.Provider
	}
	if g.Model != "" {
		c.Generation.Model = g.Model
	}
	if g.Temperature != nil {
		c.Generation.Temperature = g.Temperature
	}
	if g.MaxTokens != 0 {
		c.Generation.MaxTokens = g.MaxTokens
	}
	if g.RecipeCount != 0 {
		c.Generation.RecipeCount = g.RecipeCount
	}
	if g.Timeout != 0 {
		c.Generation.Timeout = g.Timeout
	}

	img := yamlConfig.Images
	if img.Model != "" {
		c.Images.Model = img.Model
	}
	if img.Size != "" {
		c.Images.Size = img.Size
	}
	if img.PlaceholderURL != "" {
		c.Images.PlaceholderURL = img.PlaceholderURL
	}
	if img.Concurrency != 0 {
		c.Images.Concurrency = img.Concurrency
	}
	if img.Timeout != 0 {
		c.Images.Timeout = img.Timeout
	}

	return nil
}

func (c *Config) SetGenerationDefaults() {
	if c.Generation.Provider == "" {
		c.Generation.Provider = ProviderOpenAI
	}
	if c.Generation.Model == "" {
		if c.Generation.Provider == ProviderGroq {
			c.Generation.Model = DefaultGroqChatModel
		} else {
			c.Generation.Model = DefaultOpenAIChatModel
		}
	}
	if c.Generation.Temperature == nil {
		t := 0.7
		c.Generation.Temperature = &t
	}
	if c.Generation.MaxTokens == 0 {
		c.Generation.MaxTokens = 3000
	}
	if c.Generation.RecipeCount == 0 {
		c.Generation.RecipeCount = 5
	}
	if c.Generation.Timeout == 0 {
		c.Generation.Timeout = 120 * time.Second
	}
}

func (c *Config) SetImageDefaults() {
	if c.Images.Model == "" {
		c.Images.Model = "dall-e-2"
	}
	if c.Images.Size == "" {
		c.Images.Size = "256x256"
	}
	if c.Images.PlaceholderURL == "" {
		c.Images.PlaceholderURL = DefaultPlaceholderURL
	}
	if c.Images.Concurrency == 0 {
		c.Images.Concurrency = 5
	}
	if c.Images.Timeout == 0 {
		c.Images.Timeout = 60 * time.Second
	}
}

// RequestTimeout bounds one whole generation: the text call plus one image
// timeout per wave of concurrent image calls.
func (c *Config) RequestTimeout() time.Duration {
	return RequestBudget(c.Generation.Timeout, c.Images.Timeout, c.Generation.RecipeCount, c.Images.Concurrency)
}

// RequestBudget is the time needed for a text call followed by recipes images
// run concurrency at a time.
func RequestBudget(textTimeout, imageTimeout time.Duration, recipes, concurrency int) time.Duration {
	if recipes <= 0 {
		recipes = 1
	}
	if concurrency <= 0 {
		concurrency = recipes
	}
	waves := (recipes + concurrency - 1) / concurrency
	return textTimeout + time.Duration(waves)*imageTimeout
}

func (c *Config) validate() error {
	switch c.Generation.Provider {
	case ProviderOpenAI, ProviderGroq:
	default:
		return fmt.Errorf("generation.provider must be %q or %q, got %q", ProviderOpenAI, ProviderGroq, c.Generation.Provider)
	}
	if t := *c.Generation.Temperature; t < 0 || t > 2 {
		return fmt.Errorf("generation.temperature must be between 0 and 2, got %v", t)
	}
	if c.Generation.MaxTokens < 0 {
		return fmt.Errorf("generation.max_tokens must be positive")
	}
	if c.Generation.RecipeCount < 0 {
		return fmt.Errorf("generation.recipe_count must be positive")
	}
	if c.Generation.Timeout < 0 || c.Images.Timeout < 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	if c.Images.Concurrency < 0 {
		return fmt.Errorf("images.concurrency must be positive")
	}
	return nil
}
