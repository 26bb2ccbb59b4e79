package image

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"scenestudio/internal/infra"
)

const queueProviderName = "queue"

// QueueOptions configures the primary queue-based generation provider.
type QueueOptions struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// QueueAdapter is the primary provider in the chain. It posts a transformed
// prompt-centric request and normalizes the provider's {images:[...]} reply
// into a single URL, assigning a deterministic seed when the provider omits
// one.
type QueueAdapter struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	logger  *infra.Logger
}

type queueRequest struct {
	Prompt              string   `json:"prompt"`
	NumImages           int      `json:"num_images"`
	EnableSafetyChecker bool     `json:"enable_safety_checker"`
	Seed                *int     `json:"seed,omitempty"`
	GuidanceScale       *float64 `json:"guidance_scale,omitempty"`
}

type queueResponse struct {
	Images []struct {
		URL  string `json:"url"`
		Seed int    `json:"seed"`
	} `json:"images"`
	Seed int `json:"seed"`
}

// NewQueueAdapter constructs the primary adapter with sane defaults.
func NewQueueAdapter(opts QueueOptions) *QueueAdapter {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://queue.fal.run"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "fal-ai/flux/schnell"
	}
	return &QueueAdapter{
		apiKey:  strings.TrimSpace(opts.APIKey),
		baseURL: baseURL,
		model:   model,
		client:  client,
		logger:  infra.LoggerOrDiscard(opts.Logger),
	}
}

func (a *QueueAdapter) Name() string { return queueProviderName }

// Attempt fulfils the Adapter contract.
func (a *QueueAdapter) Attempt(ctx context.Context, req Request) (string, error) {
	if a.apiKey == "" {
		return "", &ConfigurationError{
			Provider: queueProviderName,
			Hint:     "set QUEUE_IMAGE_API_KEY with a key from the provider dashboard",
		}
	}
	prompt := req.Prompt()
	if prompt == "" {
		return "", &ProviderError{Provider: queueProviderName, Message: "empty prompt"}
	}

	payload := queueRequest{
		Prompt:              prompt,
		NumImages:           req.Quantity(),
		EnableSafetyChecker: true,
	}
	if req.Seed > 0 {
		seed := req.Seed
		payload.Seed = &seed
	}
	if req.GuidanceScale > 0 {
		g := req.GuidanceScale
		payload.GuidanceScale = &g
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &ProviderError{Provider: queueProviderName, Message: fmt.Sprintf("encode request: %v", err)}
	}
	endpoint := a.baseURL + "/" + a.model
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &ProviderError{Provider: queueProviderName, Message: fmt.Sprintf("build request: %v", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Key "+a.apiKey)

	// Request and response bodies are logged for diagnosis; the API key
	// only ever travels in the header and never reaches the log.
	a.logger.Debug().Str("endpoint", endpoint).RawJSON("request", body).Msg("queue: sending generation request")

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return "", &ProviderError{Provider: queueProviderName, Message: fmt.Sprintf("http request: %v", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProviderError{Provider: queueProviderName, Message: fmt.Sprintf("read response: %v", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &ProviderError{
			Provider: queueProviderName,
			Status:   resp.StatusCode,
			Message:  strings.TrimSpace(string(raw)),
		}
	}

	var decoded queueResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", &ProviderError{Provider: queueProviderName, Message: fmt.Sprintf("decode response: %v", err)}
	}
	if len(decoded.Images) == 0 || strings.TrimSpace(decoded.Images[0].URL) == "" {
		return "", &ProviderError{Provider: queueProviderName, Message: "response contained no image url"}
	}

	seed := decoded.Images[0].Seed
	if seed == 0 {
		seed = decoded.Seed
	}
	if seed == 0 {
		seed = deterministicSeed(req.RequestID, a.model, prompt)
	}
	a.logger.Debug().
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Int("seed", seed).
		RawJSON("response", raw).
		Msg("queue: generation succeeded")

	return decoded.Images[0].URL, nil
}

var _ Adapter = (*QueueAdapter)(nil)
