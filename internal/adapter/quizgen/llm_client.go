package quizgen

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// NewModel builds the LangchainGo model selected by cfg.Provider.
func NewModel(ctx context.Context, cfg config.LLMConfig) (llms.Model, error) {
	switch cfg.Provider {
	case "googleai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("Gemini API key cannot be empty")
		}
		return googleai.New(ctx,
			googleai.WithAPIKey(cfg.APIKey),
			googleai.WithDefaultModel(cfg.Model),
		)
	case "ollama":
		if cfg.ServerURL == "" {
			return nil, fmt.Errorf("ollama server URL cannot be empty")
		}
		httpClient := &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     30 * time.Second,
			},
		}
		return ollama.New(
			ollama.WithServerURL(cfg.ServerURL),
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(httpClient),
		)
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai API key cannot be empty")
		}
		return openai.New(
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
		)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", cfg.Provider)
	}
}

// LLMClient implements domain.GenerationClient on top of a LangchainGo model.
// It makes exactly one model call per Generate and never retries.
type LLMClient struct {
	model       llms.Model
	timeout     time.Duration
	callOptions []llms.CallOption
}

// NewLLMClient wraps model. Every call is bounded by cfg.Timeout.
func NewLLMClient(model llms.Model, cfg config.LLMConfig) (*LLMClient, error) {
	if model == nil {
		return nil, fmt.Errorf("LLM model cannot be nil")
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("LLM timeout must be positive, got %s", cfg.Timeout)
	}

	var opts []llms.CallOption
	if cfg.Temperature > 0 {
		opts = append(opts, llms.WithTemperature(cfg.Temperature))
	}
	if cfg.TopP > 0 {
		opts = append(opts, llms.WithTopP(cfg.TopP))
	}
	if cfg.TopK > 0 {
		opts = append(opts, llms.WithTopK(cfg.TopK))
	}
	if cfg.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(cfg.MaxTokens))
	}

	return &LLMClient{
		model:       model,
		timeout:     cfg.Timeout,
		callOptions: opts,
	}, nil
}

// Generate sends prompt to the model and returns its raw text.
func (c *LLMClient) Generate(ctx context.Context, prompt string) (string, error) {
	l := logger.Get()

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	response, err := llms.GenerateFromSinglePrompt(callCtx, c.model, prompt, c.callOptions...)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			l.Error("LLM request timed out", zap.Duration("timeout", c.timeout), zap.Error(err))
			return "", domain.NewGenerationTimeoutError(err)
		}
		l.Error("Failed to get response from LLM", zap.Error(err))
		return "", domain.NewBackendError(err)
	}

	l.Debug("LLM response received",
		zap.Duration("duration", time.Since(start)),
		zap.Int("prompt_length", len(prompt)),
		zap.Int("response_length", len(response)))
	return response, nil
}

var _ domain.GenerationClient = (*LLMClient)(nil)
