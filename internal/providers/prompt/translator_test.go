package prompt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"scenestudio/internal/domain"
)

func baseSnapshot() domain.SceneSnapshot {
	return domain.SceneSnapshot{
		Lighting:    domain.DefaultLighting(),
		Environment: domain.DefaultEnvironment(),
		Objects: []domain.SceneObject{{
			ID: "obj-1", Name: "Bottle", Kind: domain.KindPrimitive,
			Shape: domain.ShapeCylinder, Color: "#87CEEB", Scale: domain.UnitScale,
		}},
	}
}

func TestApplyPartialLightingMerge(t *testing.T) {
	intensity := 2.0
	color := "#FFD27F"
	patch := &ScenePatch{
		Lighting: &domain.LightingPatch{
			Key: &domain.LightPatch{Intensity: &intensity, Color: &color},
		},
	}
	snap := baseSnapshot()
	out, active := patch.Apply(snap, "obj-1", func() string { return "new" })

	if out.Lighting.Key.Intensity != 2.0 || out.Lighting.Key.Color != "#FFD27F" {
		t.Fatalf("key light = %+v", out.Lighting.Key)
	}
	// Unmentioned fields keep their prior values.
	if out.Lighting.Key.Position != snap.Lighting.Key.Position {
		t.Fatalf("key position changed: %+v", out.Lighting.Key.Position)
	}
	if out.Lighting.Fill != snap.Lighting.Fill || out.Lighting.Rim != snap.Lighting.Rim {
		t.Fatalf("untouched lights changed")
	}
	if active != "obj-1" {
		t.Fatalf("active = %q, want unchanged", active)
	}
}

func TestApplyEnvironmentNormalizesEnums(t *testing.T) {
	platform := "Round_Table"
	material := "MARBLE"
	patch := &ScenePatch{
		Environment: &domain.EnvironmentPatch{Platform: &platform, PlatformMaterial: &material},
	}
	out, _ := patch.Apply(baseSnapshot(), "obj-1", func() string { return "new" })
	if out.Environment.Platform != domain.PlatformRoundTable {
		t.Fatalf("platform = %q", out.Environment.Platform)
	}
	if out.Environment.PlatformMaterial != domain.MaterialMarble {
		t.Fatalf("material = %q", out.Environment.PlatformMaterial)
	}
}

func TestApplyObjectUpdate(t *testing.T) {
	pos := domain.Vec3{X: 1, Y: 2, Z: 3}
	patch := &ScenePatch{
		ObjectChange: &ObjectChange{Action: "UPDATE", Name: "Water Bottle", Position: &pos},
	}
	out, active := patch.Apply(baseSnapshot(), "obj-1", func() string { return "new" })
	if active != "obj-1" {
		t.Fatalf("active = %q", active)
	}
	obj := out.Objects[0]
	if obj.Name != "Water Bottle" || obj.Position != pos {
		t.Fatalf("object = %+v", obj)
	}
}

func TestApplyObjectCreateSelectsNewObject(t *testing.T) {
	patch := &ScenePatch{
		ObjectChange: &ObjectChange{
			Action: "CREATE",
			Name:   "Cap",
			Parts:  []domain.ObjectPart{{Shape: domain.PartCone, Color: "#FFA500", Scale: domain.UnitScale}},
		},
	}
	out, active := patch.Apply(baseSnapshot(), "obj-1", func() string { return "obj-2" })
	if active != "obj-2" {
		t.Fatalf("active = %q, want the created object", active)
	}
	if len(out.Objects) != 2 {
		t.Fatalf("objects = %d, want 2", len(out.Objects))
	}
	created := out.Objects[1]
	if created.Kind != domain.KindCompound || len(created.Parts) != 1 {
		t.Fatalf("created = %+v", created)
	}
}

func TestApplyNoneActionLeavesObjectsAlone(t *testing.T) {
	patch := &ScenePatch{ObjectChange: &ObjectChange{Action: "NONE", Name: "ignored"}}
	snap := baseSnapshot()
	out, active := patch.Apply(snap, "obj-1", func() string { return "new" })
	if len(out.Objects) != 1 || out.Objects[0].Name != "Bottle" || active != "obj-1" {
		t.Fatalf("NONE action mutated scene: %+v", out.Objects)
	}
}

func TestApplyNilPatchIsNoOp(t *testing.T) {
	var patch *ScenePatch
	snap := baseSnapshot()
	out, active := patch.Apply(snap, "obj-1", func() string { return "new" })
	if active != "obj-1" || len(out.Objects) != 1 || out.Lighting != snap.Lighting {
		t.Fatalf("nil patch changed state")
	}
}

func TestParsePatchToleratesMarkdownFences(t *testing.T) {
	text := "```json\n{\"moodDescription\":\"warm evening glow\"}\n```"
	patch, err := parsePatch(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if patch.MoodDescription != "warm evening glow" {
		t.Fatalf("mood = %q", patch.MoodDescription)
	}
}

func TestParsePatchRejectsGarbage(t *testing.T) {
	if _, err := parsePatch("the model rambled instead of emitting json"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestGeminiTranslateRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("request decode: %v", err)
		}
		patchJSON := `{"environment":{"background_color":"#000080"},"moodDescription":"deep night"}`
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": patchJSON}},
				},
			}},
		})
	}))
	defer srv.Close()

	tr, err := NewGeminiTranslator(GeminiOptions{APIKey: "k", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new translator: %v", err)
	}
	patch, err := tr.Translate(context.Background(), TranslateRequest{
		Snapshot:    baseSnapshot(),
		Instruction: "make it night time",
	})
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if patch.Environment == nil || patch.Environment.BackgroundColor == nil || *patch.Environment.BackgroundColor != "#000080" {
		t.Fatalf("patch = %+v", patch)
	}
	if patch.MoodDescription != "deep night" {
		t.Fatalf("mood = %q", patch.MoodDescription)
	}
}

func TestGeminiTranslateSurfacesProviderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	tr, err := NewGeminiTranslator(GeminiOptions{APIKey: "k", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new translator: %v", err)
	}
	if _, err := tr.Translate(context.Background(), TranslateRequest{Instruction: "anything"}); err == nil {
		t.Fatal("expected error so the caller can degrade to a no-op patch")
	}
}
