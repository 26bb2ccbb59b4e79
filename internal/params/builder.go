// Package params composes the structured generation parameters and the
// natural-language prompt from a scene snapshot and a camera classification.
// Clause order inside the prompt is a contract: the generation model weighs
// early clauses more strongly, so subject identity and camera constraints
// always precede style and negative clauses.
package params

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"scenestudio/internal/colorname"
	"scenestudio/internal/domain"
	"scenestudio/internal/geometry"
)

// StylePreset selects between the two supported prompt renditions.
type StylePreset string

const (
	StyleProfessional StylePreset = "professional"
	StylePlain        StylePreset = "plain"
)

// NormalizeStylePreset sanitizes free-form input into a supported preset.
func NormalizeStylePreset(v string) StylePreset {
	if strings.ToLower(strings.TrimSpace(v)) == string(StylePlain) {
		return StylePlain
	}
	return StyleProfessional
}

// SceneSpec identifies the subject and its setting.
type SceneSpec struct {
	Subject            string `json:"subject"`
	SubjectDescription string `json:"subject_description"`
	Background         string `json:"background"`
	Environment        string `json:"environment"`
}

// CameraSpec carries the categorical viewpoint descriptors.
type CameraSpec struct {
	Angle    string `json:"angle"`
	ShotType string `json:"shot_type"`
	Position string `json:"position"`
}

// LightingSpec carries the derived lighting classes.
type LightingSpec struct {
	Type      string `json:"type"`
	Direction string `json:"direction"`
}

// PaletteSpec carries the scene color roles.
type PaletteSpec struct {
	Primary    string `json:"primary"`
	Background string `json:"background"`
	Secondary  string `json:"secondary"`
	Mood       string `json:"mood"`
}

// CompositionSpec is fixed for product photography output.
type CompositionSpec struct {
	Framing     string `json:"framing"`
	Orientation string `json:"orientation"`
}

// StyleSpec carries the rendering style descriptors.
type StyleSpec struct {
	Type    string `json:"type"`
	Quality string `json:"quality"`
}

// ConsistencySpec mirrors the project consistency settings. It is advisory
// metadata for the provider and never alters classification.
type ConsistencySpec struct {
	LockCamera     bool   `json:"lock_camera"`
	LockLighting   bool   `json:"lock_lighting"`
	LockBackground bool   `json:"lock_background"`
	Mode           string `json:"mode"`
}

// GenerationParameters is the structured scene description handed to the
// generation orchestrator, plus the composed prompt.
type GenerationParameters struct {
	Scene        SceneSpec       `json:"scene"`
	Camera       CameraSpec      `json:"camera"`
	Lighting     LightingSpec    `json:"lighting"`
	ColorPalette PaletteSpec     `json:"color_palette"`
	Composition  CompositionSpec `json:"composition"`
	Style        StyleSpec       `json:"style"`
	Consistency  ConsistencySpec `json:"consistency"`
	Prompt       string          `json:"prompt"`
}

var titleCaser = cases.Title(language.English, cases.NoLower)

// Build composes the generation parameters for one prompt. variationLabel
// overrides the subject label when non-empty; otherwise the label joins all
/// object names in scene order. Build is pure and never fails: callers feed
// it a default classification when camera geometry was unusable.
func Build(snap domain.SceneSnapshot, geo geometry.Classification, style StylePreset, variationLabel string) GenerationParameters {
	label := strings.TrimSpace(variationLabel)
	if label == "" {
		label = joinObjectNames(snap.Objects)
	}

	primary := primaryObject(snap.Objects)
	primaryColor := primary.PrimaryColor()

	lightType := lightingType(snap.Lighting.Key.Intensity)
	lightDir := lightingDirection(snap.Lighting.Key.Position)

	quality := "high"
	if style == StyleProfessional {
		quality = "ultra"
	}

	p := GenerationParameters{
		Scene: SceneSpec{
			Subject:            label,
			SubjectDescription: describeSubject(primary),
			Background:         colorname.Name(snap.Environment.BackgroundColor),
			Environment:        "studio",
		},
		Camera: CameraSpec{
			Angle:    geo.Angle.Token(),
			ShotType: string(geo.Shot),
			Position: geo.Position.Token(),
		},
		Lighting: LightingSpec{
			Type:      lightType,
			Direction: lightDir,
		},
		ColorPalette: PaletteSpec{
			Primary:    primaryColor,
			Background: snap.Environment.BackgroundColor,
			Secondary:  snap.Environment.FloorColor,
			Mood:       moodFor(lightType),
		},
		Composition: CompositionSpec{
			Framing:     "centered",
			Orientation: "square",
		},
		Style: StyleSpec{
			Type:    "photorealistic",
			Quality: quality,
		},
	}
	p.Prompt = composePrompt(snap, geo, style, label, primary)
	return p
}

// WithConsistency attaches the project consistency settings as advisory
// payload metadata.
func (p GenerationParameters) WithConsistency(c domain.ConsistencySettings) GenerationParameters {
	p.Consistency = ConsistencySpec{
		LockCamera:     c.LockCamera,
		LockLighting:   c.LockLighting,
		LockBackground: c.LockBackground,
		Mode:           string(c.Mode),
	}
	return p
}

// lightingType classifies the key light intensity.
func lightingType(keyIntensity float64) string {
	switch {
	case keyIntensity > 1.5:
		return "dramatic"
	case keyIntensity < 0.5:
		return "soft"
	default:
		return "studio"
	}
}

// lightingDirection classifies the key light position.
func lightingDirection(pos domain.Vec3) string {
	switch {
	case pos.Y > 4:
		return "top"
	case abs(pos.X) > abs(pos.Z):
		return "side"
	case pos.Z < 0:
		return "back"
	default:
		return "front"
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func moodFor(lightType string) string {
	switch lightType {
	case "dramatic":
		return "bold and high-contrast"
	case "soft":
		return "calm and airy"
	default:
		return "clean and neutral"
	}
}

func primaryObject(objects []domain.SceneObject) domain.SceneObject {
	if len(objects) == 0 {
		return domain.SceneObject{
			Name:  "product",
			Kind:  domain.KindPrimitive,
			Color: "#808080",
		}
	}
	return objects[0]
}

// joinObjectNames renders "A", "A and B" or "A, B and C" in scene order.
func joinObjectNames(objects []domain.SceneObject) string {
	var names []string
	for _, o := range objects {
		if n := strings.TrimSpace(o.Name); n != "" {
			names = append(names, n)
		}
	}
	switch len(names) {
	case 0:
		return "the product"
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}

func describeSubject(o domain.SceneObject) string {
	finish := finishWord(surfaceRoughness(o), surfaceMetalness(o))
	color := colorname.Name(o.PrimaryColor())
	if o.Kind == domain.KindCompound && len(o.Parts) > 0 {
		return fmt.Sprintf("an assembled product of %d parts with a %s %s finish", len(o.Parts), color, finish)
	}
	shape := domain.EffectiveShape(o.Shape)
	return fmt.Sprintf("a %s-shaped product with a %s %s finish", shape, color, finish)
}

func surfaceRoughness(o domain.SceneObject) float64 {
	if o.Kind == domain.KindCompound && len(o.Parts) > 0 {
		return o.Parts[0].SurfaceRoughness()
	}
	if o.Roughness == nil {
		return domain.DefaultSurfaceValue
	}
	return *o.Roughness
}

func surfaceMetalness(o domain.SceneObject) float64 {
	if o.Kind == domain.KindCompound && len(o.Parts) > 0 {
		return o.Parts[0].SurfaceMetalness()
	}
	if o.Metalness == nil {
		return domain.DefaultSurfaceValue
	}
	return *o.Metalness
}

func finishWord(roughness, metalness float64) string {
	if metalness > 0.5 {
		return "metallic"
	}
	switch {
	case roughness < 0.3:
		return "glossy"
	case roughness > 0.7:
		return "matte"
	default:
		return "satin"
	}
}
