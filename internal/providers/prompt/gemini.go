package prompt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	geminiDefaultTimeout = 15 * time.Second
	geminiProviderName   = "gemini"
)

// GeminiOptions configures the Gemini-backed scene translator.
type GeminiOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// GeminiTranslator asks a Gemini model to convert a free-text instruction
// plus the current scene configuration into a ScenePatch.
type GeminiTranslator struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature      float64 `json:"temperature,omitempty"`
	CandidateCount   int     `json:"candidateCount,omitempty"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// NewGeminiTranslator constructs a translator with sane defaults.
func NewGeminiTranslator(opts GeminiOptions) (*GeminiTranslator, error) {
	if opts.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "gemini-1.5-flash"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: geminiDefaultTimeout}
	}
	return &GeminiTranslator{
		apiKey:  opts.APIKey,
		model:   model,
		baseURL: baseURL,
		client:  client,
	}, nil
}

// Translate fulfils the Translator contract.
func (g *GeminiTranslator) Translate(ctx context.Context, req TranslateRequest) (*ScenePatch, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: buildTranslatePrompt(req)}},
		}},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:      0.2,
			CandidateCount:   1,
			ResponseMimeType: "application/json",
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("gemini: encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, url.QueryEscape(g.apiKey))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gemini: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini: http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("gemini: status %d", resp.StatusCode)
	}
	var decoded geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("gemini: decode response: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("gemini: empty candidate response")
	}

	return parsePatch(decoded.Candidates[0].Content.Parts[0].Text)
}

// parsePatch decodes the model's JSON reply, tolerating markdown fences.
func parsePatch(text string) (*ScenePatch, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}
	var patch ScenePatch
	if err := json.Unmarshal([]byte(text), &patch); err != nil {
		return nil, fmt.Errorf("gemini: malformed patch json: %w", err)
	}
	return &patch, nil
}

func buildTranslatePrompt(req TranslateRequest) string {
	sb := &strings.Builder{}
	sb.WriteString("You translate natural-language edits of a 3D product photography scene into JSON. ")
	sb.WriteString("Respond strictly with JSON matching this schema: ")
	sb.WriteString(`{"lighting":{"ambient_intensity":number,"ambient_color":string,"key":{"intensity":number,"color":string,"position":{"x":number,"y":number,"z":number}},"fill":{...},"rim":{...}},"environment":{"background_color":string,"floor_color":string,"floor_roughness":number,"platform":string,"platform_color":string,"platform_material":string},"moodDescription":string,"objectChange":{"action":"UPDATE"|"CREATE"|"NONE","name":string,"parts":[],"position":{},"rotation":{},"scale":{}}}`)
	sb.WriteString(". Include only the fields the instruction changes; omitted fields keep their current value. ")

	if current, err := json.Marshal(req.Snapshot); err == nil {
		fmt.Fprintf(sb, "Current scene: %s. ", current)
	}
	if req.ActiveObject != nil {
		if active, err := json.Marshal(req.ActiveObject); err == nil {
			fmt.Fprintf(sb, "Active object: %s. ", active)
		}
	}
	fmt.Fprintf(sb, "Instruction: %q.", strings.TrimSpace(req.Instruction))
	return sb.String()
}

var _ Translator = (*GeminiTranslator)(nil)
