// Package storage keeps renderer screenshots on the local filesystem. A
// screenshot is reference material the editor captures alongside each
// generation request; archiving it lets operators compare the live scene
// against the produced images later.
package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ScreenshotStore writes renderer frame captures under a base directory,
// one file per generation, grouped by project.
type ScreenshotStore struct {
	basePath string
}

// NewScreenshotStore initializes a store rooted at basePath.
func NewScreenshotStore(basePath string) (*ScreenshotStore, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("storage: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure base path: %w", err)
	}
	return &ScreenshotStore{basePath: basePath}, nil
}

// BasePath returns the configured root directory.
func (s *ScreenshotStore) BasePath() string {
	if s == nil {
		return ""
	}
	return s.basePath
}

// Save decodes a PNG data URL and writes it as <project>/<name>.png. It
// returns the storage key relative to the base path.
func (s *ScreenshotStore) Save(ctx context.Context, projectID, name, dataURL string) (string, error) {
	if s == nil {
		return "", errors.New("storage: no store configured")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := decodeDataURL(dataURL)
	if err != nil {
		return "", err
	}
	key, err := screenshotKey(projectID, name)
	if err != nil {
		return "", err
	}
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("storage: ensure directory: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write screenshot: %w", err)
	}
	return key, nil
}

// decodeDataURL accepts "data:image/png;base64,..." payloads as well as bare
// base64 strings.
func decodeDataURL(dataURL string) ([]byte, error) {
	payload := strings.TrimSpace(dataURL)
	if payload == "" {
		return nil, errors.New("storage: empty screenshot payload")
	}
	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, ",")
		if idx < 0 {
			return nil, errors.New("storage: malformed data url")
		}
		header := payload[:idx]
		if !strings.Contains(header, ";base64") {
			return nil, errors.New("storage: unsupported data url encoding")
		}
		payload = payload[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("storage: decode screenshot: %w", err)
	}
	return data, nil
}

// screenshotKey builds a clean relative key and rejects anything that could
// escape the storage root.
func screenshotKey(projectID, name string) (string, error) {
	projectID = strings.TrimSpace(projectID)
	name = strings.TrimSpace(name)
	if projectID == "" || name == "" {
		return "", errors.New("storage: project id and name are required")
	}
	key := filepath.Clean(projectID + "/" + name + ".png")
	key = strings.ReplaceAll(key, "\\", "/")
	if key == "." || strings.HasPrefix(key, "../") || strings.Contains(key, "/../") {
		return "", errors.New("storage: invalid screenshot key")
	}
	return key, nil
}
