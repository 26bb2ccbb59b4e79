package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"scenestudio/internal/domain"
	"scenestudio/internal/geometry"
	"scenestudio/internal/middleware"
	"scenestudio/internal/params"
	imageprovider "scenestudio/internal/providers/image"
)

type generateRequest struct {
	// CameraContext is the raw JSON string captured from the renderer.
	// Malformed or absent input falls back to the default viewpoint.
	CameraContext string `json:"camera_context"`
	// Screenshot is the renderer frame capture (PNG data URL). It is
	// advisory reference material and not forwarded to providers.
	Screenshot     string   `json:"screenshot,omitempty"`
	Style          string   `json:"style"`
	Variations     []string `json:"variations,omitempty"`
	Seed           int      `json:"seed,omitempty"`
	GuidanceScale  float64  `json:"guidance_scale,omitempty"`
	ActiveObjectID string   `json:"active_object_id,omitempty"`
}

type generateResponse struct {
	Images   []domain.GeneratedImage `json:"images"`
	Failures []string                `json:"failures,omitempty"`
}

// Generate runs one or more generation prompts for a project. Variants are
// processed strictly in order, one request at a time, and every success is
// appended to the gallery before the next variant starts: a late failure
// never discards earlier images.
func (a *App) Generate(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "id")
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	if !a.beginGeneration(projectID) {
		a.error(w, http.StatusConflict, "generation_in_flight", "a generation for this project is already running")
		return
	}
	defer a.endGeneration(projectID)

	project, err := a.Projects.GetByID(r.Context(), projectID)
	if err != nil {
		a.respondFailure(w, err)
		return
	}

	resp, lastErr := a.runGenerations(r.Context(), project, req, middleware.CountryFromContext(r.Context()), middleware.LocaleFromContext(r.Context()), nil)
	if len(resp.Images) == 0 && lastErr != nil {
		a.respondFailure(w, lastErr)
		return
	}
	a.json(w, http.StatusOK, resp)
}

// runGenerations executes the sequential variant loop shared by the plain
// and streaming endpoints. onImage, when set, is invoked after each gallery
// append so streaming callers can surface partial progress.
func (a *App) runGenerations(ctx context.Context, project *domain.Project, req generateRequest, country, locale string, onImage func(domain.GeneratedImage)) (generateResponse, error) {
	classification := geometry.ClassifyContext(req.CameraContext, subjectRotation(project.Snapshot, req.ActiveObjectID))
	style := params.NormalizeStylePreset(req.Style)

	labels := req.Variations
	if len(labels) == 0 {
		labels = []string{""}
	}

	resp := generateResponse{Images: []domain.GeneratedImage{}}
	var lastErr error
	for _, label := range labels {
		built := params.Build(project.Snapshot, classification, style, label).
			WithConsistency(project.Consistency)

		url, err := a.Generator.Generate(ctx, imageprovider.Request{
			Params:        built,
			Count:         1,
			Seed:          req.Seed,
			GuidanceScale: req.GuidanceScale,
			RequestID:     middleware.RequestIDFromContext(ctx),
			Locale:        locale,
		})
		if err != nil {
			lastErr = err
			a.Logger.Warn().Str("project_id", project.ID).Str("variation", label).Err(err).Msg("generation variant failed")
			resp.Failures = append(resp.Failures, failureMessage(label, err))
			continue
		}

		img := domain.GeneratedImage{
			ID:          uuid.NewString(),
			URL:         url,
			Prompt:      built.Prompt,
			ObjectLabel: built.Scene.Subject,
			Country:     country,
			CreatedAt:   time.Now().UTC(),
		}
		if err := a.Projects.AppendImage(ctx, project.ID, img); err != nil {
			lastErr = err
			resp.Failures = append(resp.Failures, failureMessage(label, err))
			continue
		}
		resp.Images = append(resp.Images, img)
		if onImage != nil {
			onImage(img)
		}
	}

	// Archive the renderer capture next to the batch it belongs to. Failures
	// here never fail the request; the screenshot is reference material only.
	if a.Screenshots != nil && req.Screenshot != "" && len(resp.Images) > 0 {
		if _, err := a.Screenshots.Save(ctx, project.ID, resp.Images[0].ID, req.Screenshot); err != nil {
			a.Logger.Warn().Str("project_id", project.ID).Err(err).Msg("screenshot archive failed")
		}
	}
	return resp, lastErr
}

func subjectRotation(snap domain.SceneSnapshot, activeID string) domain.Vec3 {
	if activeID != "" {
		if obj, ok := snap.ObjectByID(activeID); ok {
			return obj.Rotation
		}
	}
	if len(snap.Objects) > 0 {
		return snap.Objects[0].Rotation
	}
	return domain.Vec3{}
}

func failureMessage(label string, err error) string {
	if strings.TrimSpace(label) == "" {
		return err.Error()
	}
	return label + ": " + err.Error()
}
