package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"scenestudio/internal/domain"
	"scenestudio/internal/middleware"
	"scenestudio/internal/providers/prompt"
)

type instructRequest struct {
	Instruction    string `json:"instruction"`
	ActiveObjectID string `json:"active_object_id,omitempty"`
}

type instructResponse struct {
	Snapshot        domain.SceneSnapshot `json:"snapshot"`
	ActiveObjectID  string               `json:"active_object_id,omitempty"`
	MoodDescription string               `json:"mood_description,omitempty"`
	Applied         bool                 `json:"applied"`
}

// Instruct asks the translation collaborator to turn a free-text edit into
// a configuration patch. Translation is best-effort: when the collaborator
// fails or returns garbage, the handler answers with the unchanged scene
// rather than an error, so a bad model reply never corrupts state.
func (a *App) Instruct(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "id")
	var req instructRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Instruction) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "instruction must not be empty")
		return
	}

	project, err := a.Projects.GetByID(r.Context(), projectID)
	if err != nil {
		a.respondFailure(w, err)
		return
	}

	activeID := req.ActiveObjectID
	var active *domain.SceneObject
	if activeID != "" {
		if obj, ok := project.Snapshot.ObjectByID(activeID); ok {
			active = &obj
		}
	}
	if active == nil && len(project.Snapshot.Objects) > 0 {
		obj := project.Snapshot.Objects[0]
		active = &obj
		activeID = obj.ID
	}

	if a.Translator == nil {
		a.json(w, http.StatusOK, instructResponse{Snapshot: project.Snapshot, ActiveObjectID: activeID})
		return
	}

	patch, err := a.Translator.Translate(r.Context(), prompt.TranslateRequest{
		Snapshot:     project.Snapshot,
		ActiveObject: active,
		Instruction:  req.Instruction,
		Locale:       middleware.LocaleFromContext(r.Context()),
	})
	if err != nil {
		a.Logger.Warn().Str("project_id", projectID).Err(err).Msg("instruction translation failed, keeping scene unchanged")
		a.json(w, http.StatusOK, instructResponse{Snapshot: project.Snapshot, ActiveObjectID: activeID})
		return
	}

	next, nextActive := patch.Apply(project.Snapshot, activeID, uuid.NewString)
	a.sessionHistory(projectID, project.Snapshot).Push(next)
	if err := a.Projects.UpdateScene(r.Context(), projectID, next, project.Consistency); err != nil {
		a.respondFailure(w, err)
		return
	}

	a.json(w, http.StatusOK, instructResponse{
		Snapshot:        next,
		ActiveObjectID:  nextActive,
		MoodDescription: patch.MoodDescription,
		Applied:         true,
	})
}
