package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"scenestudio/internal/domain"
)

type createProjectRequest struct {
	Name string `json:"name"`
}

type updateProjectRequest struct {
	Name        *string                     `json:"name,omitempty"`
	Snapshot    *domain.SceneSnapshot       `json:"snapshot,omitempty"`
	Consistency *domain.ConsistencySettings `json:"consistency,omitempty"`
}

// ProjectsList returns all projects, most recently updated first.
func (a *App) ProjectsList(w http.ResponseWriter, r *http.Request) {
	projects, err := a.Projects.List(r.Context())
	if err != nil {
		a.respondFailure(w, err)
		return
	}
	if projects == nil {
		projects = []domain.Project{}
	}
	a.json(w, http.StatusOK, projects)
}

// ProjectsCreate creates a project seeded with one default object.
func (a *App) ProjectsCreate(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "Untitled Scene"
	}
	project := domain.NewProject(uuid.NewString(), name, uuid.NewString())
	if err := a.Projects.Create(r.Context(), project); err != nil {
		a.respondFailure(w, err)
		return
	}
	a.sessionHistory(project.ID, project.Snapshot)
	a.json(w, http.StatusCreated, project)
}

// ProjectsGet fetches a project with its gallery.
func (a *App) ProjectsGet(w http.ResponseWriter, r *http.Request) {
	project, err := a.Projects.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.respondFailure(w, err)
		return
	}
	a.json(w, http.StatusOK, project)
}

// ProjectsUpdate applies a scene edit or rename. Scene edits are recorded
// in the project's undo history before being persisted.
func (a *App) ProjectsUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req updateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	project, err := a.Projects.GetByID(r.Context(), id)
	if err != nil {
		a.respondFailure(w, err)
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			a.error(w, http.StatusBadRequest, "bad_request", "name must not be empty")
			return
		}
		if err := a.Projects.Rename(r.Context(), id, name); err != nil {
			a.respondFailure(w, err)
			return
		}
		project.Name = name
	}

	if req.Snapshot != nil || req.Consistency != nil {
		snapshot := project.Snapshot
		if req.Snapshot != nil {
			snapshot = normalizeSnapshot(*req.Snapshot)
		}
		consistency := project.Consistency
		if req.Consistency != nil {
			consistency = *req.Consistency
			consistency.Mode = domain.NormalizeConsistencyMode(string(consistency.Mode))
		}
		store := a.sessionHistory(id, project.Snapshot)
		if req.Snapshot != nil {
			store.Push(snapshot)
		}
		if err := a.Projects.UpdateScene(r.Context(), id, snapshot, consistency); err != nil {
			a.respondFailure(w, err)
			return
		}
		project.Snapshot = snapshot
		project.Consistency = consistency
	}

	a.json(w, http.StatusOK, project)
}

// ProjectsDelete removes a project and its editing session.
func (a *App) ProjectsDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := a.Projects.Delete(r.Context(), id); err != nil {
		a.respondFailure(w, err)
		return
	}
	a.dropSession(id)
	w.WriteHeader(http.StatusNoContent)
}

// normalizeSnapshot sanitizes client-supplied enum strings and assigns ids
// to objects that arrived without one.
func normalizeSnapshot(snap domain.SceneSnapshot) domain.SceneSnapshot {
	snap.Environment.Platform = domain.NormalizePlatformType(string(snap.Environment.Platform))
	snap.Environment.PlatformMaterial = domain.NormalizePlatformMaterial(string(snap.Environment.PlatformMaterial))
	for i := range snap.Objects {
		if strings.TrimSpace(snap.Objects[i].ID) == "" {
			snap.Objects[i].ID = uuid.NewString()
		}
		if snap.Objects[i].Kind != domain.KindCompound {
			snap.Objects[i].Kind = domain.KindPrimitive
		}
	}
	return snap
}
