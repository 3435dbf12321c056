package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	domai "github.com/bryanwahyu/adpilot/internal/domain/ai"
)

const DefaultModel = "gemini-1.5-pro"

type Config struct {
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int32
}

// Client is created once at startup and shared by every request. A model
// handle is derived per call so concurrent requests never share settings.
type Client struct {
	client *genai.Client
	cfg    Config
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: api key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Client{client: client, cfg: cfg}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// Generate runs a plain single-turn generation when systemPrompt is empty and a
// chat turn carrying the system instruction otherwise.
func (c *Client) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	model := c.client.GenerativeModel(c.cfg.Model)
	if c.cfg.Temperature > 0 {
		model.SetTemperature(c.cfg.Temperature)
	}
	if c.cfg.MaxTokens > 0 {
		model.SetMaxOutputTokens(c.cfg.MaxTokens)
	}

	var (
		resp *genai.GenerateContentResponse
		err  error
	)
	if systemPrompt == "" {
		resp, err = model.GenerateContent(ctx, genai.Text(userPrompt))
	} else {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
		resp, err = model.StartChat().SendMessage(ctx, genai.Text(userPrompt))
	}
	if err != nil {
		return "", classify(err)
	}
	return responseText(resp)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: no content generated", domai.ErrModelInvocation)
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("%w: no text in response", domai.ErrModelInvocation)
	}
	return b.String(), nil
}

func classify(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %v", domai.ErrQuotaExceeded, err)
	}
	if strings.Contains(err.Error(), "RESOURCE_EXHAUSTED") {
		return fmt.Errorf("%w: %v", domai.ErrQuotaExceeded, err)
	}
	return fmt.Errorf("%w: %v", domai.ErrModelInvocation, err)
}
