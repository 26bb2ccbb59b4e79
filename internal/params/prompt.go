package params

import (
	"fmt"
	"strings"

	"scenestudio/internal/colorname"
	"scenestudio/internal/domain"
	"scenestudio/internal/geometry"
)

// Canned closing paragraphs keyed by style preset.
const (
	professionalLightingClause = "Professional studio product photography lighting: a softbox key light with gentle fill, a controlled rim highlight tracing the silhouette, and a seamless backdrop. Crisp, clean focus across the entire product with natural contact shadows directly beneath it only."

	plainLightingClause = "Simple, even lighting with neutral white balance, soft diffuse shadows, and a plain uncluttered presentation."

	isolationClause = "Only the described product in the frame. No extra objects, no props, no decorations, no text. Centered composition on a clean studio set. No shadows cast on the background."
)

// composePrompt renders the natural-language prompt in the contractual
// clause order: identity, camera constraints, color/material,
// background/floor, style paragraph, isolation constraints.
func composePrompt(snap domain.SceneSnapshot, geo geometry.Classification, style StylePreset, label string, primary domain.SceneObject) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("Professional product photograph of %s.", titleCaser.String(label)))
	lines = append(lines, describeSubject(primary)+".")

	lines = append(lines, cameraClause(geo))
	if geo.Tilted {
		lines = append(lines, "The product is tilted at a dynamic angle rather than resting upright.")
	}
	if geo.Turned {
		lines = append(lines, "The product is turned away from its default facing direction.")
	}

	lines = append(lines, colorClause(snap, primary))
	lines = append(lines, backgroundClause(snap.Environment))

	if style == StylePlain {
		lines = append(lines, plainLightingClause)
	} else {
		lines = append(lines, professionalLightingClause)
	}
	lines = append(lines, isolationClause)

	return strings.Join(lines, "\n")
}

func cameraClause(geo geometry.Classification) string {
	return fmt.Sprintf("Camera: %s, photographed %s, %s.",
		anglePhrase(geo.Angle), positionPhrase(geo.Position), shotPhrase(geo.Shot))
}

func anglePhrase(a geometry.ViewAngle) string {
	switch a {
	case geometry.TopDown:
		return "bird's-eye view looking straight down"
	case geometry.HighAngle:
		return "high angle looking down at the product"
	case geometry.LowAngle:
		return "low angle looking up at the product"
	case geometry.WormEye:
		return "worm's-eye view from below"
	default:
		return "eye-level view"
	}
}

func positionPhrase(p geometry.Position) string {
	switch p {
	case geometry.Back:
		return "from behind the product"
	case geometry.LeftSide:
		return "from the left side"
	case geometry.RightSide:
		return "from the right side"
	case geometry.FrontLeftAngle:
		return "from a front-left three-quarter angle"
	case geometry.FrontRightAngle:
		return "from a front-right three-quarter angle"
	default:
		return "head-on from the front"
	}
}

func shotPhrase(s geometry.ShotType) string {
	switch s {
	case geometry.CloseUp:
		return "close-up framing filling the frame"
	case geometry.MediumShot:
		return "medium shot framing"
	case geometry.WideShot:
		return "wide shot with generous negative space"
	default:
		return "full shot framing the whole product"
	}
}

func colorClause(snap domain.SceneSnapshot, primary domain.SceneObject) string {
	color := colorname.Name(primary.PrimaryColor())
	material := string(snap.Environment.PlatformMaterial)
	if snap.Environment.Platform == domain.PlatformNone {
		return fmt.Sprintf("Dominant product color: %s.", color)
	}
	return fmt.Sprintf("Dominant product color: %s. The product rests on a %s %s display platform in %s.",
		color,
		colorname.Name(snap.Environment.PlatformColor),
		material,
		platformPhrase(snap.Environment.Platform))
}

func platformPhrase(p domain.PlatformType) string {
	switch p {
	case domain.PlatformCylinder:
		return "the shape of a cylinder pedestal"
	case domain.PlatformCube:
		return "the shape of a cube plinth"
	case domain.PlatformRoundTable:
		return "the shape of a round tabletop"
	default:
		return "a simple form"
	}
}

func backgroundClause(env domain.SceneEnvironment) string {
	floorFinish := "matte"
	if env.FloorRoughness < 0.4 {
		floorFinish = "reflective"
	}
	return fmt.Sprintf("Background: %s seamless studio backdrop. Floor: %s with a %s finish.",
		colorname.Name(env.BackgroundColor),
		colorname.Name(env.FloorColor),
		floorFinish)
}
