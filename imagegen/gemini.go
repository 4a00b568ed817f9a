package imagegen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	genai "google.golang.org/genai"
)

const aspectRatio = "16:9"

var errNoImage = errors.New("response contained no inline image")

// GeminiConfig configures GeminiClient. Zero values fall back to defaults.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	// Timeout bounds one request; zero leaves it to the caller's context.
	Timeout time.Duration
	// PerMinute caps requests per minute; zero disables the limiter.
	PerMinute int
}

// GeminiClient generates images through the Gemini API.
type GeminiClient struct {
	cli     *genai.Client
	model   string
	limiter *rate.Limiter
	log     *zap.Logger
}

func NewGeminiClient(ctx context.Context, cfg GeminiConfig, log *zap.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: api key is required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	cc := &genai.ClientConfig{APIKey: cfg.APIKey, Backend: genai.BackendGeminiAPI}
	if cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		timeout := cfg.Timeout
		cc.HTTPOptions.Timeout = &timeout
	}
	cli, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	g := &GeminiClient{cli: cli, model: model, log: log}
	if cfg.PerMinute > 0 {
		g.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.PerMinute)), 1)
	}
	return g, nil
}

func (g *GeminiClient) Name() string { return "Gemini:" + g.model }

// Generate asks the model for one 16:9 image and returns it as a data URI.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, bool) {
	uri, err := g.generate(ctx, prompt)
	if err != nil {
		g.log.Error("image generation failed", zap.String("model", g.model), zap.Error(err))
		return "", false
	}
	return uri, true
}

func (g *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		prompt = DefaultPrompt
	}
	if g.limiter != nil && !g.limiter.Allow() {
		return "", errors.New("generation rate limit exceeded")
	}

	start := time.Now()
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{ImageConfig: &genai.ImageConfig{AspectRatio: aspectRatio}},
	)
	if err != nil {
		return "", err
	}

	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			g.log.Info("image generated",
				zap.String("model", g.model),
				zap.String("mime", part.InlineData.MIMEType),
				zap.Int("bytes", len(part.InlineData.Data)),
				zap.Duration("took", time.Since(start)))
			return DataURI(part.InlineData.MIMEType, part.InlineData.Data), nil
		}
	}
	return "", errNoImage
}
