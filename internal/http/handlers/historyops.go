package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"scenestudio/internal/domain"
	"scenestudio/internal/history"
)

type historyResponse struct {
	Snapshot domain.SceneSnapshot `json:"snapshot"`
	Changed  bool                 `json:"changed"`
	CanUndo  bool                 `json:"can_undo"`
	CanRedo  bool                 `json:"can_redo"`
}

// HistoryUndo steps the project's editing session back one snapshot and
// persists the result. At the boundary it is a no-op reporting the current
// state.
func (a *App) HistoryUndo(w http.ResponseWriter, r *http.Request) {
	a.historyStep(w, r, (*history.Store).Undo)
}

// HistoryRedo steps the project's editing session forward one snapshot and
// persists the result. At the boundary it is a no-op.
func (a *App) HistoryRedo(w http.ResponseWriter, r *http.Request) {
	a.historyStep(w, r, (*history.Store).Redo)
}

func (a *App) historyStep(w http.ResponseWriter, r *http.Request, step func(*history.Store) (domain.SceneSnapshot, bool)) {
	projectID := chi.URLParam(r, "id")
	project, err := a.Projects.GetByID(r.Context(), projectID)
	if err != nil {
		a.respondFailure(w, err)
		return
	}

	store := a.sessionHistory(projectID, project.Snapshot)
	snapshot, changed := step(store)
	if !changed {
		a.json(w, http.StatusOK, historyResponse{
			Snapshot: project.Snapshot,
			Changed:  false,
			CanUndo:  store.CanUndo(),
			CanRedo:  store.CanRedo(),
		})
		return
	}

	if err := a.Projects.UpdateScene(r.Context(), projectID, snapshot, project.Consistency); err != nil {
		a.respondFailure(w, err)
		return
	}
	a.json(w, http.StatusOK, historyResponse{
		Snapshot: snapshot,
		Changed:  true,
		CanUndo:  store.CanUndo(),
		CanRedo:  store.CanRedo(),
	})
}
