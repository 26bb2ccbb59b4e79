// Package repo provides the PostgreSQL implementations of the domain
// repository contracts.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"scenestudio/internal/domain"
	"scenestudio/internal/sqlinline"
)

// ProjectRepositoryPG implements domain.ProjectRepository. Scene state is
// persisted as JSON documents; the image gallery lives in its own table
// ordered newest-first.
type ProjectRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewProjectRepository creates a new project repository backed by PostgreSQL.
func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepositoryPG {
	return &ProjectRepositoryPG{pool: pool}
}

// EnsureSchema creates the project tables when they do not exist yet. It is
// idempotent and safe to run on every startup.
func (r *ProjectRepositoryPG) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, sqlinline.QEnsureSchema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Create inserts a new project record.
func (r *ProjectRepositoryPG) Create(ctx context.Context, p *domain.Project) error {
	snapshot, consistency, err := encodeScene(p.Snapshot, p.Consistency)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, sqlinline.QInsertProject, p.ID, p.Name, snapshot, consistency, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

// GetByID fetches a project and its gallery.
func (r *ProjectRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.pool.QueryRow(ctx, sqlinline.QGetProject, id)

	var p domain.Project
	var snapshot, consistency []byte
	if err := row.Scan(&p.ID, &p.Name, &snapshot, &consistency, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	if err := decodeScene(snapshot, consistency, &p); err != nil {
		return nil, err
	}

	images, err := r.listImages(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Images = images
	return &p, nil
}

// List returns all projects without their galleries, most recently updated first.
func (r *ProjectRepositoryPG) List(ctx context.Context) ([]domain.Project, error) {
	rows, err := r.pool.Query(ctx, sqlinline.QListProjects)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		var p domain.Project
		var snapshot, consistency []byte
		if err := rows.Scan(&p.ID, &p.Name, &snapshot, &consistency, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		if err := decodeScene(snapshot, consistency, &p); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// UpdateScene persists the latest snapshot and consistency settings.
func (r *ProjectRepositoryPG) UpdateScene(ctx context.Context, id string, snap domain.SceneSnapshot, consistency domain.ConsistencySettings) error {
	snapshot, cons, err := encodeScene(snap, consistency)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, sqlinline.QUpdateProjectScene, id, snapshot, cons, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update scene: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// Rename updates the project name.
func (r *ProjectRepositoryPG) Rename(ctx context.Context, id, name string) error {
	tag, err := r.pool.Exec(ctx, sqlinline.QRenameProject, id, name, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("rename project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// Delete removes a project and, via cascade, its gallery.
func (r *ProjectRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, sqlinline.QDeleteProject, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// AppendImage records a successful generation in the project gallery.
func (r *ProjectRepositoryPG) AppendImage(ctx context.Context, projectID string, img domain.GeneratedImage) error {
	_, err := r.pool.Exec(ctx, sqlinline.QInsertProjectImage, img.ID, projectID, img.URL, img.Prompt, img.ObjectLabel, img.Country, img.CreatedAt)
	if err != nil {
		return fmt.Errorf("append image: %w", err)
	}
	return nil
}

func (r *ProjectRepositoryPG) listImages(ctx context.Context, projectID string) ([]domain.GeneratedImage, error) {
	rows, err := r.pool.Query(ctx, sqlinline.QListProjectImages, projectID)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()

	var images []domain.GeneratedImage
	for rows.Next() {
		var img domain.GeneratedImage
		if err := rows.Scan(&img.ID, &img.URL, &img.Prompt, &img.ObjectLabel, &img.Country, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func encodeScene(snap domain.SceneSnapshot, consistency domain.ConsistencySettings) ([]byte, []byte, error) {
	snapshot, err := json.Marshal(snap)
	if err != nil {
		return nil, nil, fmt.Errorf("encode snapshot: %w", err)
	}
	cons, err := json.Marshal(consistency)
	if err != nil {
		return nil, nil, fmt.Errorf("encode consistency: %w", err)
	}
	return snapshot, cons, nil
}

func decodeScene(snapshot, consistency []byte, p *domain.Project) error {
	if len(snapshot) > 0 {
		if err := json.Unmarshal(snapshot, &p.Snapshot); err != nil {
			return fmt.Errorf("decode snapshot: %w", err)
		}
	}
	if len(consistency) > 0 {
		if err := json.Unmarshal(consistency, &p.Consistency); err != nil {
			return fmt.Errorf("decode consistency: %w", err)
		}
	}
	return nil
}

var _ domain.ProjectRepository = (*ProjectRepositoryPG)(nil)
