// Package prompt calls an external AI to translate free-text scene
// instructions into a structured configuration patch. Translation is
// best-effort by design: any failure degrades to a no-op patch applied by
// the caller, so a bad model reply can never corrupt scene state.
package prompt

import (
	"context"
	"strings"

	"scenestudio/internal/domain"
)

// ChangeAction tells the caller what to do with the returned object fields.
type ChangeAction string

const (
	ActionUpdate ChangeAction = "UPDATE"
	ActionCreate ChangeAction = "CREATE"
	ActionNone   ChangeAction = "NONE"
)

// NormalizeChangeAction sanitizes model output into a supported action.
func NormalizeChangeAction(v string) ChangeAction {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case string(ActionUpdate):
		return ActionUpdate
	case string(ActionCreate):
		return ActionCreate
	default:
		return ActionNone
	}
}

// ObjectChange describes an object edit requested by the model.
type ObjectChange struct {
	Action   string              `json:"action"`
	Name     string              `json:"name,omitempty"`
	Parts    []domain.ObjectPart `json:"parts,omitempty"`
	Position *domain.Vec3        `json:"position,omitempty"`
	Rotation *domain.Vec3        `json:"rotation,omitempty"`
	Scale    *domain.Vec3        `json:"scale,omitempty"`
}

// ScenePatch is the structured reply of the translation collaborator.
// Missing fields mean "keep the current value".
type ScenePatch struct {
	Lighting        *domain.LightingPatch    `json:"lighting,omitempty"`
	Environment     *domain.EnvironmentPatch `json:"environment,omitempty"`
	MoodDescription string                   `json:"moodDescription,omitempty"`
	ObjectChange    *ObjectChange            `json:"objectChange,omitempty"`
}

// TranslateRequest carries everything the model needs to interpret an
// instruction in context.
type TranslateRequest struct {
	Snapshot     domain.SceneSnapshot
	ActiveObject *domain.SceneObject
	Instruction  string
	Locale       string
}

// Translator is the contract implemented by all translation providers.
type Translator interface {
	Translate(ctx context.Context, req TranslateRequest) (*ScenePatch, error)
}

// Apply merges the patch over the snapshot and returns the result together
// with the id of the object that should become active. Lighting and
// environment merge partially; an UPDATE merges onto the active object and a
// CREATE appends a new object built by newID.
func (p *ScenePatch) Apply(snap domain.SceneSnapshot, activeID string, newID func() string) (domain.SceneSnapshot, string) {
	out := snap.Clone()
	if p == nil {
		return out, activeID
	}
	out.Lighting = p.Lighting.ApplyTo(out.Lighting)
	out.Environment = p.Environment.ApplyTo(out.Environment)

	change := p.ObjectChange
	if change == nil {
		return out, activeID
	}
	switch NormalizeChangeAction(change.Action) {
	case ActionUpdate:
		for i := range out.Objects {
			if out.Objects[i].ID != activeID {
				continue
			}
			applyObjectChange(&out.Objects[i], change)
			break
		}
	case ActionCreate:
		obj := domain.SceneObject{
			ID:    newID(),
			Name:  strings.TrimSpace(change.Name),
			Kind:  domain.KindCompound,
			Scale: domain.UnitScale,
		}
		if obj.Name == "" {
			obj.Name = "New Object"
		}
		if len(change.Parts) == 0 {
			obj.Kind = domain.KindPrimitive
		}
		applyObjectChange(&obj, change)
		out.Objects = append(out.Objects, obj)
		activeID = obj.ID
	}
	return out, activeID
}

func applyObjectChange(obj *domain.SceneObject, change *ObjectChange) {
	if name := strings.TrimSpace(change.Name); name != "" {
		obj.Name = name
	}
	if len(change.Parts) > 0 {
		obj.Kind = domain.KindCompound
		obj.Parts = append([]domain.ObjectPart(nil), change.Parts...)
	}
	if change.Position != nil {
		obj.Position = *change.Position
	}
	if change.Rotation != nil {
		obj.Rotation = *change.Rotation
	}
	if change.Scale != nil {
		obj.Scale = *change.Scale
	}
}
