package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"scenestudio/internal/domain"
	"scenestudio/internal/middleware"
)

type streamEvent struct {
	Type    string                 `json:"type"`
	Image   *domain.GeneratedImage `json:"image,omitempty"`
	Message string                 `json:"message,omitempty"`
	Done    *streamSummary         `json:"done,omitempty"`
}

type streamSummary struct {
	Generated int `json:"generated"`
	Failed    int `json:"failed"`
}

// GenerateStream is the websocket variant of Generate: the client sends one
// generation request and receives an event per completed variant, so batch
// progress is visible while later variants are still running.
func (a *App) GenerateStream(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "id")

	conn, err := a.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		return
	}
	defer conn.Close()

	var req generateRequest
	if err := conn.ReadJSON(&req); err != nil {
		_ = conn.WriteJSON(streamEvent{Type: "error", Message: "invalid request payload"})
		return
	}

	if !a.beginGeneration(projectID) {
		_ = conn.WriteJSON(streamEvent{Type: "error", Message: "a generation for this project is already running"})
		return
	}
	defer a.endGeneration(projectID)

	project, err := a.Projects.GetByID(r.Context(), projectID)
	if err != nil {
		_ = conn.WriteJSON(streamEvent{Type: "error", Message: err.Error()})
		return
	}

	resp, _ := a.runGenerations(r.Context(), project, req,
		middleware.CountryFromContext(r.Context()),
		middleware.LocaleFromContext(r.Context()),
		func(img domain.GeneratedImage) {
			_ = conn.WriteJSON(streamEvent{Type: "image", Image: &img})
		})

	for _, failure := range resp.Failures {
		_ = conn.WriteJSON(streamEvent{Type: "error", Message: failure})
	}
	_ = conn.WriteJSON(streamEvent{Type: "done", Done: &streamSummary{
		Generated: len(resp.Images),
		Failed:    len(resp.Failures),
	}})
}
