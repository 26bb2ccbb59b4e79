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

const (
	structuredProviderName = "structured"
	degradedProviderName   = "structured-degraded"
)

// StructuredOptions configures the secondary provider, which accepts the
// full parameter object as its request body.
type StructuredOptions struct {
	APIKey     string
	BaseURL    string
	ProxyPath  bool
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// StructuredAdapter posts the complete GenerationParameters document and
// reads the provider's {result:[{urls:[...]}]} reply. Its auth scheme is a
// plain X-Api-Key header, distinct from the primary provider.
type StructuredAdapter struct {
	apiKey    string
	baseURL   string
	proxyPath bool
	client    *http.Client
	logger    *infra.Logger
}

type structuredResponse struct {
	Result []struct {
		URLs []string `json:"urls"`
	} `json:"result"`
}

// degradedRequest is the minimal payload retried through the backend proxy
// when the richer schema was rejected.
type degradedRequest struct {
	Prompt     string `json:"prompt"`
	NumResults int    `json:"num_results"`
	Sync       bool   `json:"sync"`
}

// NewStructuredAdapter constructs the secondary adapter.
func NewStructuredAdapter(opts StructuredOptions) *StructuredAdapter {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.scenepix.dev/v1/generate"
	}
	return &StructuredAdapter{
		apiKey:    strings.TrimSpace(opts.APIKey),
		baseURL:   baseURL,
		proxyPath: opts.ProxyPath,
		client:    client,
		logger:    infra.LoggerOrDiscard(opts.Logger),
	}
}

func (a *StructuredAdapter) Name() string { return structuredProviderName }

// ProxyPath reports whether requests travel through a backend proxy, which
// makes the degraded minimal retry worthwhile.
func (a *StructuredAdapter) ProxyPath() bool { return a.proxyPath }

// Attempt fulfils the Adapter contract with the full structured payload.
func (a *StructuredAdapter) Attempt(ctx context.Context, req Request) (string, error) {
	body, err := json.Marshal(req.Params)
	if err != nil {
		return "", &ProviderError{Provider: structuredProviderName, Message: fmt.Sprintf("encode request: %v", err)}
	}
	return a.post(ctx, structuredProviderName, req, body)
}

// Degraded returns an adapter that retries with only {prompt, num_results,
// sync} in case the structured schema was rejected upstream.
func (a *StructuredAdapter) Degraded() Adapter {
	return &degradedAdapter{parent: a}
}

type degradedAdapter struct {
	parent *StructuredAdapter
}

func (d *degradedAdapter) Name() string { return degradedProviderName }

func (d *degradedAdapter) Attempt(ctx context.Context, req Request) (string, error) {
	body, err := json.Marshal(degradedRequest{
		Prompt:     req.Prompt(),
		NumResults: 1,
		Sync:       true,
	})
	if err != nil {
		return "", &ProviderError{Provider: degradedProviderName, Message: fmt.Sprintf("encode request: %v", err)}
	}
	return d.parent.post(ctx, degradedProviderName, req, body)
}

func (a *StructuredAdapter) post(ctx context.Context, provider string, req Request, body []byte) (string, error) {
	if a.apiKey == "" {
		return "", &ConfigurationError{
			Provider: provider,
			Hint:     "set STRUCTURED_IMAGE_API_KEY from your account settings page",
		}
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", &ProviderError{Provider: provider, Message: fmt.Sprintf("build request: %v", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", a.apiKey)

	a.logger.Debug().Str("endpoint", a.baseURL).Str("provider", provider).RawJSON("request", body).Msg("structured: sending generation request")

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return "", &ProviderError{Provider: provider, Message: fmt.Sprintf("http request: %v", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProviderError{Provider: provider, Message: fmt.Sprintf("read response: %v", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &ProviderError{
			Provider: provider,
			Status:   resp.StatusCode,
			Message:  strings.TrimSpace(string(raw)),
		}
	}

	var decoded structuredResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", &ProviderError{Provider: provider, Message: fmt.Sprintf("decode response: %v", err)}
	}
	if len(decoded.Result) == 0 || len(decoded.Result[0].URLs) == 0 || strings.TrimSpace(decoded.Result[0].URLs[0]) == "" {
		return "", &ProviderError{Provider: provider, Message: "response contained no image url"}
	}

	a.logger.Debug().
		Str("endpoint", a.baseURL).
		Str("provider", provider).
		Int("status", resp.StatusCode).
		RawJSON("response", raw).
		Msg("structured: generation succeeded")

	return decoded.Result[0].URLs[0], nil
}

var _ Adapter = (*StructuredAdapter)(nil)
