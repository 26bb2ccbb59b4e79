package image

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"scenestudio/internal/domain"
	"scenestudio/internal/geometry"
	"scenestudio/internal/params"
)

func testRequest() Request {
	snap := domain.SceneSnapshot{
		Lighting:    domain.DefaultLighting(),
		Environment: domain.DefaultEnvironment(),
		Objects: []domain.SceneObject{{
			ID: "o1", Name: "Mug", Kind: domain.KindPrimitive,
			Shape: domain.ShapeCylinder, Color: "#FFFFFF", Scale: domain.UnitScale,
		}},
	}
	return Request{
		Params:    params.Build(snap, geometry.DefaultClassification(), params.StyleProfessional, ""),
		Count:     1,
		RequestID: "req-1",
	}
}

type stubAdapter struct {
	name  string
	url   string
	err   error
	calls int
}

func (s *stubAdapter) Name() string { return s.name }

func (s *stubAdapter) Attempt(ctx context.Context, req Request) (string, error) {
	s.calls++
	return s.url, s.err
}

func TestOrchestratorReturnsFirstSuccess(t *testing.T) {
	first := &stubAdapter{name: "first", url: "https://cdn.example.com/a.png"}
	second := &stubAdapter{name: "second", url: "https://cdn.example.com/b.png"}
	o := NewOrchestrator(nil, first, second)

	url, err := o.Generate(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if url != first.url {
		t.Fatalf("url = %q, want first adapter's", url)
	}
	if second.calls != 0 {
		t.Fatalf("second adapter called %d times, want 0", second.calls)
	}
}

func TestOrchestratorFallsThroughOnProviderError(t *testing.T) {
	first := &stubAdapter{name: "first", err: &ProviderError{Provider: "first", Status: 500, Message: "boom"}}
	second := &stubAdapter{name: "second", url: "https://cdn.example.com/b.png"}
	o := NewOrchestrator(nil, first, second)

	url, err := o.Generate(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if url != second.url {
		t.Fatalf("url = %q, want second adapter's", url)
	}
	if first.calls != 1 || second.calls != 1 {
		t.Fatalf("calls = %d/%d, want 1/1", first.calls, second.calls)
	}
}

func TestOrchestratorExhaustedChainSurfacesHints(t *testing.T) {
	first := &stubAdapter{name: "first", err: &ConfigurationError{Provider: "first", Hint: "set QUEUE_IMAGE_API_KEY"}}
	second := &stubAdapter{name: "second", err: &ProviderError{Provider: "second", Status: 502, Message: "bad gateway"}}
	o := NewOrchestrator(nil, first, second)

	_, err := o.Generate(context.Background(), testRequest())
	var unavailable *ServiceUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("error = %v, want ServiceUnavailableError", err)
	}
	if len(unavailable.Attempted) != 2 {
		t.Fatalf("attempted = %v, want both providers", unavailable.Attempted)
	}
	if len(unavailable.Hints) != 1 || !strings.Contains(unavailable.Hints[0], "QUEUE_IMAGE_API_KEY") {
		t.Fatalf("hints = %v, want credential remediation", unavailable.Hints)
	}
}

// Full chain over HTTP: primary 500, secondary 500 twice. The secondary must
// receive the complete structured payload first and the minimal degraded
// payload second.
func TestFallbackChainPayloadsOverHTTP(t *testing.T) {
	var primaryBodies, secondaryBodies []map[string]any

	primarySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("primary body: %v", err)
		}
		primaryBodies = append(primaryBodies, body)
		if r.Header.Get("Authorization") != "Key primary-key" {
			t.Errorf("primary auth header = %q", r.Header.Get("Authorization"))
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer primarySrv.Close()

	secondarySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("secondary body: %v", err)
		}
		secondaryBodies = append(secondaryBodies, body)
		if r.Header.Get("X-Api-Key") != "secondary-key" {
			t.Errorf("secondary auth header = %q", r.Header.Get("X-Api-Key"))
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer secondarySrv.Close()

	primary := NewQueueAdapter(QueueOptions{APIKey: "primary-key", BaseURL: primarySrv.URL, Model: "test/model"})
	secondary := NewStructuredAdapter(StructuredOptions{APIKey: "secondary-key", BaseURL: secondarySrv.URL, ProxyPath: true})
	o := NewDefaultChain(nil, primary, secondary)

	req := testRequest()
	_, err := o.Generate(context.Background(), req)
	var unavailable *ServiceUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("error = %v, want ServiceUnavailableError", err)
	}

	if len(primaryBodies) != 1 {
		t.Fatalf("primary attempts = %d, want 1", len(primaryBodies))
	}
	if _, ok := primaryBodies[0]["num_images"]; !ok {
		t.Errorf("primary payload missing num_images: %v", primaryBodies[0])
	}
	if _, ok := primaryBodies[0]["enable_safety_checker"]; !ok {
		t.Errorf("primary payload missing enable_safety_checker: %v", primaryBodies[0])
	}

	if len(secondaryBodies) != 2 {
		t.Fatalf("secondary attempts = %d, want 2 (structured then degraded)", len(secondaryBodies))
	}
	if _, ok := secondaryBodies[0]["camera"]; !ok {
		t.Errorf("structured payload missing camera sub-record: %v", secondaryBodies[0])
	}
	if _, ok := secondaryBodies[0]["color_palette"]; !ok {
		t.Errorf("structured payload missing color_palette sub-record: %v", secondaryBodies[0])
	}

	degraded := secondaryBodies[1]
	if len(degraded) != 3 {
		t.Errorf("degraded payload has %d fields, want exactly prompt/num_results/sync: %v", len(degraded), degraded)
	}
	if degraded["prompt"] != req.Prompt() {
		t.Errorf("degraded prompt mismatch")
	}
	if degraded["num_results"] != float64(1) || degraded["sync"] != true {
		t.Errorf("degraded payload = %v", degraded)
	}
}

func TestQueueAdapterNormalizesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Provider omits the seed; the adapter assigns one internally and
		// still returns the first URL.
		_ = json.NewEncoder(w).Encode(map[string]any{
			"images": []map[string]any{
				{"url": "https://cdn.example.com/one.png"},
				{"url": "https://cdn.example.com/two.png"},
			},
		})
	}))
	defer srv.Close()

	a := NewQueueAdapter(QueueOptions{APIKey: "k", BaseURL: srv.URL, Model: "test/model"})
	url, err := a.Attempt(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("attempt: %v", err)
	}
	if url != "https://cdn.example.com/one.png" {
		t.Fatalf("url = %q, want first image", url)
	}
}

func TestQueueAdapterMissingCredentials(t *testing.T) {
	a := NewQueueAdapter(QueueOptions{})
	_, err := a.Attempt(context.Background(), testRequest())
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error = %v, want ConfigurationError", err)
	}
	if !strings.Contains(cfgErr.Hint, "QUEUE_IMAGE_API_KEY") {
		t.Fatalf("hint = %q, want env var name", cfgErr.Hint)
	}
}

func TestStructuredAdapterParsesResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"result": []map[string]any{{"urls": []string{"https://cdn.example.com/r.png"}}},
		})
	}))
	defer srv.Close()

	a := NewStructuredAdapter(StructuredOptions{APIKey: "k", BaseURL: srv.URL})
	url, err := a.Attempt(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("attempt: %v", err)
	}
	if url != "https://cdn.example.com/r.png" {
		t.Fatalf("url = %q", url)
	}
}

func TestDeterministicSeedIsStableAndPositive(t *testing.T) {
	a := deterministicSeed("req-1", "model", "prompt")
	b := deterministicSeed("req-1", "model", "prompt")
	c := deterministicSeed("req-2", "model", "prompt")
	if a != b {
		t.Fatalf("same inputs produced %d and %d", a, b)
	}
	if a == c {
		t.Fatalf("different inputs produced the same seed %d", a)
	}
	if a <= 0 {
		t.Fatalf("seed = %d, want positive", a)
	}
}
