package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"resty.dev/v3"

	"github.com/alexislara/backend-chat-ia/internal/domain/chat"
	"github.com/alexislara/backend-chat-ia/internal/infrastructure/metrics"
	"github.com/alexislara/backend-chat-ia/internal/utils/platformerrors"
)

const defaultTimeout = 60 * time.Second

// Config holds the upstream connection settings. An empty APIKey yields
// a disabled client.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Client calls the Gemini generateContent endpoint. It implements
// chat.CompletionProvider and is safe for concurrent use.
type Client struct {
	client  *resty.Client
	apiKey  string
	model   string
	baseURL string
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		client:  resty.New().SetTimeout(timeout),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

type generateContentRequest struct {
	Contents []chat.TranscriptEntry `json:"contents"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Role  string `json:"role"`
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata *struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

// Send submits the transcript and normalizes the Gemini reply. The raw
// envelope keeps the candidates and usage blocks so the caller can
// persist them untouched.
func (c *Client) Send(ctx context.Context, transcript []chat.TranscriptEntry) (*chat.ProviderReply, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", c.apiKey).
		SetBody(generateContentRequest{Contents: transcript}).
		Post(c.endpoint("/models/" + c.model + ":generateContent"))
	if err != nil {
		metrics.ProviderErrorsTotal.WithLabelValues("transport").Inc()
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			fmt.Sprintf("gemini request failed: %v", err), err, "")
	}
	if resp.IsError() {
		metrics.ProviderErrorsTotal.WithLabelValues("status").Inc()
		return nil, c.errorFromResponse(ctx, resp, "gemini request failed")
	}

	body := resp.Bytes()

	var parsed generateContentResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		metrics.ProviderErrorsTotal.WithLabelValues("decode").Inc()
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"gemini response could not be decoded", err, "")
	}
	if len(parsed.Candidates) == 0 {
		metrics.ProviderErrorsTotal.WithLabelValues("empty").Inc()
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"gemini response contained no candidates", nil, "")
	}

	var text strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}

	var tokenCount *int
	if parsed.UsageMetadata != nil {
		total := parsed.UsageMetadata.PromptTokenCount + parsed.UsageMetadata.CandidatesTokenCount
		tokenCount = &total
	}

	return &chat.ProviderReply{
		Text:       text.String(),
		TokenCount: tokenCount,
		ModelName:  c.model,
		Raw:        rawEnvelope(body),
	}, nil
}

// rawEnvelope extracts the candidates and usage blocks of the upstream
// body into the opaque map persisted on the model message.
func rawEnvelope(body []byte) map[string]any {
	var envelope map[string]any
	if err := json.Unmarshal(body, &envelope); err != nil {
		return map[string]any{}
	}

	raw := map[string]any{}
	if candidates, ok := envelope["candidates"]; ok {
		raw["candidates"] = candidates
	}
	if usage, ok := envelope["usageMetadata"]; ok {
		raw["usage_metadata"] = usage
	}
	return raw
}

func (c *Client) endpoint(path string) string {
	if strings.HasPrefix(path, "/") {
		return c.baseURL + path
	}
	return c.baseURL + "/" + path
}

func (c *Client) errorFromResponse(ctx context.Context, resp *resty.Response, message string) error {
	trimmed := strings.TrimSpace(resp.String())
	if trimmed == "" {
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			fmt.Sprintf("%s: status %d", message, resp.StatusCode()), nil, "")
	}
	return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
		fmt.Sprintf("%s: %s", message, trimmed), nil, "")
}
