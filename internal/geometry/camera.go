package geometry

import (
	"encoding/json"
	"strings"

	"scenestudio/internal/domain"
)

// CameraContext mirrors the JSON emitted by the renderer's getCameraContext:
// degrees rounded to integers, distance and position rounded to one decimal.
type CameraContext struct {
	Horizontal    float64     `json:"horizontal"`
	Vertical      float64     `json:"vertical"`
	Distance      float64     `json:"distance"`
	HorizontalDeg int         `json:"horizontalDeg"`
	VerticalDeg   int         `json:"verticalDeg"`
	Position      domain.Vec3 `json:"position"`
}

// ParseCameraContext decodes the renderer payload. Malformed or empty input
// reports ok=false; callers substitute the default classification rather
// than failing the generation.
func ParseCameraContext(raw string) (CameraContext, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return CameraContext{}, false
	}
	var ctx CameraContext
	if err := json.Unmarshal([]byte(raw), &ctx); err != nil {
		return CameraContext{}, false
	}
	return ctx, true
}

// ClassifyContext turns a raw camera-context string and a subject rotation
// into a classification. It never fails: bad input yields the default
// eye-level front viewpoint with the rotation flags still applied.
func ClassifyContext(raw string, rotation domain.Vec3) Classification {
	ctx, ok := ParseCameraContext(raw)
	if !ok {
		c := DefaultClassification()
		c.Tilted, c.Turned = rotationFlags(rotation)
		return c
	}
	return Classify(ctx.Position, rotation)
}
