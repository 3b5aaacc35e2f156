// Package extract turns page markdown into a structured recipe through
// a structured-output chat-completions call. The model is instructed to
// copy text verbatim, never to compose it.
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"recipeclip/internal/recipe"
)

// ErrNotARecipe means the model found no recipe in the input. Callers
// must treat this as a normal outcome, not a failure.
var ErrNotARecipe = errors.New("no recipe found in content")

// Error is a transport, API or parse failure during extraction.
type Error struct {
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("extract recipe: %v", e.Err) }
func (e *Error) Unwrap() error { return e.Err }

// Extractor is the narrow seam the pipeline depends on.
type Extractor interface {
	Extract(ctx context.Context, text string) (recipe.Draft, error)
}

type Config struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
}

// Client calls an OpenAI-compatible chat-completions endpoint.
type Client struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 16000
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg: cfg,
		// Generous ceiling so a hung provider cannot wedge a request
		// forever; the extraction itself can take a while.
		client: &http.Client{Timeout: 3 * time.Minute},
		logger: logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type       string          `json:"type"`
	JSONSchema json.RawMessage `json:"json_schema"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	ResponseFormat responseFormat `json:"response_format"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func buildPrompt(text string) string {
	return `Extract
1. ingredients (substitutions, notes, and images are optional only add them if they are provided and preparation means how to cut or prepare the ingredient for example: diced, cubed, shredded, minced, ...etc; when ingredients are listed under group headings, keep each ingredient with its group)
2. recipe instructions with photos if they are provided
3. prep and cooking times
4. title and title images
5. Serving size: if there is a range, always pick the larger number
from the following blog. Keep the ingredients and instructions the same, do not modify them. Only use text from the blog, do NOT make up your own.

` + text
}

func (c *Client) Extract(ctx context.Context, text string) (recipe.Draft, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		ResponseFormat: responseFormat{
			Type:       "json_schema",
			JSONSchema: json.RawMessage(recipeSchemaJSON),
		},
		Messages:    []chatMessage{{Role: "user", Content: buildPrompt(text)}},
		Temperature: 0,
		MaxTokens:   c.cfg.MaxTokens,
	})
	if err != nil {
		return recipe.Draft{}, &Error{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return recipe.Draft{}, &Error{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return recipe.Draft{}, &Error{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return recipe.Draft{}, &Error{Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("chat completion failed",
			zap.Int("status", resp.StatusCode),
			zap.String("model", c.cfg.Model))
		return recipe.Draft{}, &Error{Err: fmt.Errorf("api status %d: %s", resp.StatusCode, respBody)}
	}

	var chat chatResponse
	if err := json.Unmarshal(respBody, &chat); err != nil {
		return recipe.Draft{}, &Error{Err: fmt.Errorf("parse api response: %w", err)}
	}
	if len(chat.Choices) == 0 || chat.Choices[0].Message.Content == "" {
		return recipe.Draft{}, &Error{Err: errors.New("model returned no content")}
	}

	return ParseDraft([]byte(chat.Choices[0].Message.Content))
}

// ParseDraft validates the model output. A payload without an
// ingredients key is the model's way of saying "this page is not a
// recipe"; that is ErrNotARecipe, everything else malformed is an
// Error.
func ParseDraft(payload []byte) (recipe.Draft, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(payload, &probe); err != nil {
		return recipe.Draft{}, &Error{Err: fmt.Errorf("parse model output: %w", err)}
	}
	if _, ok := probe["ingredients"]; !ok {
		return recipe.Draft{}, ErrNotARecipe
	}

	var draft recipe.Draft
	if err := json.Unmarshal(payload, &draft); err != nil {
		return recipe.Draft{}, &Error{Err: fmt.Errorf("parse model output: %w", err)}
	}
	return draft, nil
}
