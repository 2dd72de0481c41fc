// Package llm wraps the OpenAI chat completions API for structured document
// generation. Callers supply a JSON schema; the model is forced to return a
// document matching it, and the raw JSON is handed back for domain-level
// validation.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

var (
	// ErrCallFailed marks upstream API failures (network, quota, 5xx).
	ErrCallFailed = errors.New("llm call failed")
	// ErrTimeout marks calls that exceeded the configured deadline.
	ErrTimeout = errors.New("llm call timed out")
	// ErrEmptyResponse marks completions with no usable content.
	ErrEmptyResponse = errors.New("llm returned empty response")
	// ErrInvalidJSON marks completions whose content is not valid JSON.
	ErrInvalidJSON = errors.New("llm returned invalid JSON")
)

// Request describes a single structured completion call.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	// SchemaName labels the response schema for the API.
	SchemaName string
	// Schema is the JSON schema the model output must satisfy.
	Schema      map[string]interface{}
	Temperature float64
	MaxTokens   int64
	// Seed is forwarded for best-effort response determinism.
	Seed int64
}

// Result carries the validated raw document and call metadata.
type Result struct {
	Raw        json.RawMessage
	Model      string
	TokensUsed int64
	ElapsedMS  int64
}

// Client is a thin, timeout-enforcing wrapper over the OpenAI SDK.
type Client struct {
	api     openai.Client
	model   string
	timeout time.Duration
}

func NewClient(apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		api:     openai.NewClient(option.WithAPIKey(apiKey)),
		model:   model,
		timeout: timeout,
	}
}

// Complete performs one structured completion. The call runs under the
// client's own deadline derived from ctx, so a generous outer request
// timeout does not extend the model call.
func (c *Client) Complete(ctx context.Context, req Request) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemPrompt),
			openai.UserMessage(req.UserPrompt),
		},
		Temperature: openai.Float(req.Temperature),
		MaxTokens:   openai.Int(req.MaxTokens),
		Seed:        openai.Int(req.Seed),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   req.SchemaName,
					Schema: req.Schema,
					Strict: openai.Bool(true),
				},
			},
		},
	}

	start := time.Now()
	resp, err := c.api.Chat.Completions.New(ctx, params)
	elapsed := time.Since(start)

	if err != nil {
		return nil, classifyErr(ctx, err)
	}

	if len(resp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return nil, ErrEmptyResponse
	}
	if !json.Valid([]byte(content)) {
		return nil, fmt.Errorf("%w: %.120s", ErrInvalidJSON, content)
	}

	return &Result{
		Raw:        json.RawMessage(content),
		Model:      resp.Model,
		TokensUsed: resp.Usage.TotalTokens,
		ElapsedMS:  elapsed.Milliseconds(),
	}, nil
}

// classifyErr distinguishes deadline expiry from other upstream failures.
func classifyErr(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrCallFailed, err)
}
