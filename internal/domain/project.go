package domain

import (
	"context"
	"errors"
	"time"
)

// ErrProjectNotFound is returned by repositories for unknown project ids.
var ErrProjectNotFound = errors.New("project not found")

// GeneratedImage is one successful generation result in a project gallery.
type GeneratedImage struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Prompt      string    `json:"prompt"`
	ObjectLabel string    `json:"object_label"`
	Country     string    `json:"country,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Project aggregates one editable scene, its generation gallery and
// consistency settings. Images are ordered newest-first.
type Project struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Snapshot    SceneSnapshot       `json:"snapshot"`
	Consistency ConsistencySettings `json:"consistency"`
	Images      []GeneratedImage    `json:"images"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// ProjectRepository is the persistence contract for projects and their galleries.
type ProjectRepository interface {
	Create(ctx context.Context, p *Project) error
	GetByID(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context) ([]Project, error)
	UpdateScene(ctx context.Context, id string, snap SceneSnapshot, consistency ConsistencySettings) error
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
	AppendImage(ctx context.Context, projectID string, img GeneratedImage) error
}

// NewProject builds a project seeded with one default primitive object.
func NewProject(id, name, objectID string) *Project {
	return &Project{
		ID:   id,
		Name: name,
		Snapshot: SceneSnapshot{
			Lighting:    DefaultLighting(),
			Environment: DefaultEnvironment(),
			Objects: []SceneObject{{
				ID:    objectID,
				Name:  "Product",
				Kind:  KindPrimitive,
				Shape: ShapeCube,
				Color: "#808080",
				Scale: UnitScale,
			}},
		},
		Consistency: ConsistencySettings{Mode: ModeStrictCatalog},
		UpdatedAt:   time.Now().UTC(),
	}
}
