package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"scenestudio/internal/domain"
	"scenestudio/internal/history"
	"scenestudio/internal/infra"
	imageprovider "scenestudio/internal/providers/image"
	"scenestudio/internal/providers/prompt"
	"scenestudio/internal/storage"
)

// App is the handler container wiring repositories, providers and the
// per-project editing sessions.
type App struct {
	Logger     infra.Logger
	Projects   domain.ProjectRepository
	Generator  imageprovider.Generator
	Translator prompt.Translator

	// Screenshots is optional; when nil, renderer captures are discarded.
	Screenshots *storage.ScreenshotStore

	upgrader websocket.Upgrader

	// Scene history is an in-memory editing session per project. The scene
	// state is single-owner: only one editor mutates a project at a time,
	// so the mutex only guards the session map itself.
	histMu    sync.Mutex
	histories map[string]*history.Store

	// In-flight generation guard, one slot per project. The UI disables its
	// generate button; this is the server-side backstop against duplicate
	// concurrent submissions.
	flightMu sync.Mutex
	inflight map[string]struct{}
}

// NewApp builds the handler container.
func NewApp(logger infra.Logger, projects domain.ProjectRepository, generator imageprovider.Generator, translator prompt.Translator) *App {
	return &App{
		Logger:     logger,
		Projects:   projects,
		Generator:  generator,
		Translator: translator,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		histories: make(map[string]*history.Store),
		inflight:  make(map[string]struct{}),
	}
}

// sessionHistory returns the project's undo/redo store, seeding it with the
// given snapshot on first use.
func (a *App) sessionHistory(projectID string, seed domain.SceneSnapshot) *history.Store {
	a.histMu.Lock()
	defer a.histMu.Unlock()
	store, ok := a.histories[projectID]
	if !ok {
		store = history.NewStore()
		store.Push(seed)
		a.histories[projectID] = store
	}
	return store
}

func (a *App) dropSession(projectID string) {
	a.histMu.Lock()
	delete(a.histories, projectID)
	a.histMu.Unlock()
}

// beginGeneration reserves the project's single generation slot.
func (a *App) beginGeneration(projectID string) bool {
	a.flightMu.Lock()
	defer a.flightMu.Unlock()
	if _, busy := a.inflight[projectID]; busy {
		return false
	}
	a.inflight[projectID] = struct{}{}
	return true
}

func (a *App) endGeneration(projectID string) {
	a.flightMu.Lock()
	delete(a.inflight, projectID)
	a.flightMu.Unlock()
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, kind, message string) {
	a.json(w, code, map[string]string{"error": kind, "message": message})
}

// respondFailure maps the error taxonomy onto HTTP statuses.
func (a *App) respondFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrProjectNotFound):
		a.error(w, http.StatusNotFound, "not_found", "project not found")
		return
	}
	var unavailable *imageprovider.ServiceUnavailableError
	if errors.As(err, &unavailable) {
		a.error(w, http.StatusServiceUnavailable, "service_unavailable", unavailable.Error())
		return
	}
	a.Logger.Error().Err(err).Msg("request failed")
	a.error(w, http.StatusInternalServerError, "internal", "internal error")
}
