package params

import (
	"strings"
	"testing"

	"scenestudio/internal/domain"
	"scenestudio/internal/geometry"
)

func testSnapshot() domain.SceneSnapshot {
	return domain.SceneSnapshot{
		Lighting:    domain.DefaultLighting(),
		Environment: domain.DefaultEnvironment(),
		Objects: []domain.SceneObject{{
			ID:    "obj-1",
			Name:  "Cricket Bat",
			Kind:  domain.KindPrimitive,
			Shape: domain.ShapeCylinder,
			Color: "#8B4513",
			Scale: domain.UnitScale,
		}},
	}
}

func TestBuildStructuredFields(t *testing.T) {
	snap := testSnapshot()
	geo := geometry.Classify(domain.Vec3{X: 5}, domain.Vec3{})
	p := Build(snap, geo, StyleProfessional, "")

	if p.Scene.Subject != "Cricket Bat" {
		t.Errorf("subject = %q, want Cricket Bat", p.Scene.Subject)
	}
	if p.Scene.Environment != "studio" {
		t.Errorf("environment = %q, want studio", p.Scene.Environment)
	}
	if p.Camera.Angle != "eye_level" || p.Camera.Position != "left_side" || p.Camera.ShotType != "full_shot" {
		t.Errorf("camera = %+v, want eye_level/left_side/full_shot", p.Camera)
	}
	if p.Composition.Framing != "centered" || p.Composition.Orientation != "square" {
		t.Errorf("composition = %+v", p.Composition)
	}
	if p.Style.Type != "photorealistic" || p.Style.Quality != "ultra" {
		t.Errorf("style = %+v, want photorealistic/ultra", p.Style)
	}
}

func TestBuildUnknownHexStaysInPalette(t *testing.T) {
	// #8B4513 is not in the exact-match palette, so the primary color must
	// pass through untouched.
	p := Build(testSnapshot(), geometry.DefaultClassification(), StyleProfessional, "")
	if p.ColorPalette.Primary != "#8B4513" {
		t.Errorf("palette primary = %q, want #8B4513 unchanged", p.ColorPalette.Primary)
	}
	if p.ColorPalette.Background != "#F5F5F5" || p.ColorPalette.Secondary != "#FFFFFF" {
		t.Errorf("palette = %+v", p.ColorPalette)
	}
}

func TestBuildLightingType(t *testing.T) {
	cases := []struct {
		intensity float64
		want      string
	}{
		{2.0, "dramatic"},
		{1.6, "dramatic"},
		{1.5, "studio"},
		{1.0, "studio"},
		{0.5, "studio"},
		{0.4, "soft"},
		{0.0, "soft"},
	}
	for _, tc := range cases {
		snap := testSnapshot()
		snap.Lighting.Key.Intensity = tc.intensity
		p := Build(snap, geometry.DefaultClassification(), StyleProfessional, "")
		if p.Lighting.Type != tc.want {
			t.Errorf("intensity %v: lighting type = %q, want %q", tc.intensity, p.Lighting.Type, tc.want)
		}
	}
}

func TestBuildLightingDirection(t *testing.T) {
	cases := []struct {
		pos  domain.Vec3
		want string
	}{
		{domain.Vec3{X: 0, Y: 5, Z: 0}, "top"},
		{domain.Vec3{X: 6, Y: 2, Z: 1}, "side"},
		{domain.Vec3{X: -6, Y: 2, Z: 1}, "side"},
		{domain.Vec3{X: 1, Y: 2, Z: -4}, "back"},
		{domain.Vec3{X: 1, Y: 2, Z: 4}, "front"},
	}
	for _, tc := range cases {
		snap := testSnapshot()
		snap.Lighting.Key.Position = tc.pos
		p := Build(snap, geometry.DefaultClassification(), StyleProfessional, "")
		if p.Lighting.Direction != tc.want {
			t.Errorf("pos %+v: direction = %q, want %q", tc.pos, p.Lighting.Direction, tc.want)
		}
	}
}

func TestBuildVariationLabelOverridesNames(t *testing.T) {
	p := Build(testSnapshot(), geometry.DefaultClassification(), StyleProfessional, "hero angle shot")
	if p.Scene.Subject != "hero angle shot" {
		t.Errorf("subject = %q, want variation label", p.Scene.Subject)
	}
}

func TestBuildJoinsObjectNames(t *testing.T) {
	snap := testSnapshot()
	snap.Objects = append(snap.Objects,
		domain.SceneObject{ID: "2", Name: "Ball", Kind: domain.KindPrimitive, Shape: domain.ShapeSphere},
		domain.SceneObject{ID: "3", Name: "Stand", Kind: domain.KindPrimitive, Shape: domain.ShapeCube},
	)
	p := Build(snap, geometry.DefaultClassification(), StyleProfessional, "")
	if p.Scene.Subject != "Cricket Bat, Ball and Stand" {
		t.Errorf("subject = %q", p.Scene.Subject)
	}
}

func TestBuildEmptySceneDoesNotPanic(t *testing.T) {
	p := Build(domain.SceneSnapshot{}, geometry.DefaultClassification(), StylePlain, "")
	if p.Scene.Subject != "the product" {
		t.Errorf("subject = %q, want fallback label", p.Scene.Subject)
	}
	if p.Style.Quality != "high" {
		t.Errorf("quality = %q, want high for plain style", p.Style.Quality)
	}
}

func TestPromptClauseOrder(t *testing.T) {
	snap := testSnapshot()
	snap.Environment.Platform = domain.PlatformCylinder
	p := Build(snap, geometry.Classify(domain.Vec3{Y: 2, Z: 6}, domain.Vec3{}), StyleProfessional, "")

	markers := []string{
		"Professional product photograph of",
		"Camera:",
		"Dominant product color:",
		"Background:",
		"studio product photography lighting",
		"No extra objects",
	}
	last := -1
	for _, m := range markers {
		idx := strings.Index(p.Prompt, m)
		if idx < 0 {
			t.Fatalf("prompt missing clause %q:\n%s", m, p.Prompt)
		}
		if idx <= last {
			t.Fatalf("clause %q out of order in prompt:\n%s", m, p.Prompt)
		}
		last = idx
	}
}

func TestPromptStyleParagraphs(t *testing.T) {
	pro := Build(testSnapshot(), geometry.DefaultClassification(), StyleProfessional, "")
	if !strings.Contains(pro.Prompt, "softbox key light") {
		t.Errorf("professional prompt missing studio paragraph")
	}
	plain := Build(testSnapshot(), geometry.DefaultClassification(), StylePlain, "")
	if !strings.Contains(plain.Prompt, "Simple, even lighting") {
		t.Errorf("plain prompt missing plain paragraph")
	}
	if strings.Contains(plain.Prompt, "softbox") {
		t.Errorf("plain prompt must not carry the professional paragraph")
	}
}

func TestPromptRotationPhrases(t *testing.T) {
	snap := testSnapshot()
	snap.Objects[0].Rotation = domain.Vec3{X: 1.0, Y: 0.5}
	geo := geometry.Classify(domain.Vec3{Z: 6}, snap.Objects[0].Rotation)
	p := Build(snap, geo, StyleProfessional, "")
	if !strings.Contains(p.Prompt, "tilted") {
		t.Errorf("prompt missing tilt phrasing:\n%s", p.Prompt)
	}
	if !strings.Contains(p.Prompt, "turned") {
		t.Errorf("prompt missing turn phrasing:\n%s", p.Prompt)
	}
}

func TestWithConsistencyIsAdvisoryMetadata(t *testing.T) {
	base := Build(testSnapshot(), geometry.DefaultClassification(), StyleProfessional, "")
	locked := base.WithConsistency(domain.ConsistencySettings{
		LockCamera: true, LockLighting: true, LockBackground: true,
		Mode: domain.ModeCreativeCampaign,
	})
	if !locked.Consistency.LockCamera || locked.Consistency.Mode != "creative_campaign" {
		t.Errorf("consistency = %+v", locked.Consistency)
	}
	// Locks ride along as metadata only; the classification output and
	// prompt are untouched.
	if locked.Camera != base.Camera || locked.Prompt != base.Prompt {
		t.Errorf("consistency settings must not alter camera classes or prompt")
	}
}
