package domain

import "strings"

// Vec3 is a 3-component tuple used for positions, rotations (radians) and scales.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// UnitScale is the identity scale applied to new objects and parts.
var UnitScale = Vec3{X: 1, Y: 1, Z: 1}

// Light describes a single positional studio light.
type Light struct {
	Intensity float64 `json:"intensity"`
	Color     string  `json:"color"`
	Position  Vec3    `json:"position"`
}

// SceneLighting captures the full lighting state of the virtual studio:
// an ambient term plus a classic key/fill/rim three-point rig.
type SceneLighting struct {
	AmbientIntensity float64 `json:"ambient_intensity"`
	AmbientColor     string  `json:"ambient_color"`
	Key              Light   `json:"key"`
	Fill             Light   `json:"fill"`
	Rim              Light   `json:"rim"`
}

// PlatformType enumerates the supported product platforms.
type PlatformType string

const (
	PlatformNone       PlatformType = "none"
	PlatformCylinder   PlatformType = "cylinder"
	PlatformCube       PlatformType = "cube"
	PlatformRoundTable PlatformType = "round_table"
)

// NormalizePlatformType sanitizes free-form input into a supported platform.
func NormalizePlatformType(v string) PlatformType {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case string(PlatformCylinder):
		return PlatformCylinder
	case string(PlatformCube):
		return PlatformCube
	case string(PlatformRoundTable):
		return PlatformRoundTable
	default:
		return PlatformNone
	}
}

// PlatformMaterial enumerates the supported platform surface finishes.
type PlatformMaterial string

const (
	MaterialMatte  PlatformMaterial = "matte"
	MaterialGlossy PlatformMaterial = "glossy"
	MaterialWood   PlatformMaterial = "wood"
	MaterialMarble PlatformMaterial = "marble"
	MaterialMetal  PlatformMaterial = "metal"
)

// NormalizePlatformMaterial sanitizes free-form input into a supported material.
func NormalizePlatformMaterial(v string) PlatformMaterial {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case string(MaterialGlossy):
		return MaterialGlossy
	case string(MaterialWood):
		return MaterialWood
	case string(MaterialMarble):
		return MaterialMarble
	case string(MaterialMetal):
		return MaterialMetal
	default:
		return MaterialMatte
	}
}

// SceneEnvironment captures backdrop, floor and platform state.
type SceneEnvironment struct {
	BackgroundColor  string           `json:"background_color"`
	FloorColor       string           `json:"floor_color"`
	FloorRoughness   float64          `json:"floor_roughness"`
	Platform         PlatformType     `json:"platform"`
	PlatformColor    string           `json:"platform_color"`
	PlatformMaterial PlatformMaterial `json:"platform_material"`
}

// ObjectKind distinguishes single-mesh objects from assembled ones.
type ObjectKind string

const (
	KindPrimitive ObjectKind = "primitive"
	KindCompound  ObjectKind = "compound"
)

// PrimitiveShape enumerates the meshes available for primitive objects.
// An unset shape falls back to ShapeKnot.
type PrimitiveShape string

const (
	ShapeCube     PrimitiveShape = "cube"
	ShapeSphere   PrimitiveShape = "sphere"
	ShapeCylinder PrimitiveShape = "cylinder"
	ShapeTorus    PrimitiveShape = "torus"
	ShapeKnot     PrimitiveShape = "knot"
)

// EffectiveShape resolves the knot fallback for unset or unknown shapes.
func EffectiveShape(s PrimitiveShape) PrimitiveShape {
	switch s {
	case ShapeCube, ShapeSphere, ShapeCylinder, ShapeTorus:
		return s
	default:
		return ShapeKnot
	}
}

// PartShape enumerates the meshes available for compound-object parts.
type PartShape string

const (
	PartCube     PartShape = "cube"
	PartSphere   PartShape = "sphere"
	PartCylinder PartShape = "cylinder"
	PartTorus    PartShape = "torus"
	PartCone     PartShape = "cone"
)

// DefaultSurfaceValue is applied when roughness or metalness is absent.
const DefaultSurfaceValue = 0.5

// ObjectPart is one building block of a compound object. Its transform is
// local to the owning object's transform.
type ObjectPart struct {
	Shape     PartShape `json:"shape"`
	Position  Vec3      `json:"position"`
	Rotation  Vec3      `json:"rotation"`
	Scale     Vec3      `json:"scale"`
	Color     string    `json:"color"`
	Roughness *float64  `json:"roughness,omitempty"`
	Metalness *float64  `json:"metalness,omitempty"`
}

// SurfaceRoughness returns the part roughness or the default when absent.
func (p ObjectPart) SurfaceRoughness() float64 {
	if p.Roughness == nil {
		return DefaultSurfaceValue
	}
	return *p.Roughness
}

// SurfaceMetalness returns the part metalness or the default when absent.
func (p ObjectPart) SurfaceMetalness() float64 {
	if p.Metalness == nil {
		return DefaultSurfaceValue
	}
	return *p.Metalness
}

// SceneObject is one object placed in the scene. A primitive's form is
// defined solely by Shape; a compound's form is the union of its parts
// positioned relative to the object's own transform.
type SceneObject struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Kind      ObjectKind     `json:"kind"`
	Shape     PrimitiveShape `json:"shape,omitempty"`
	Color     string         `json:"color,omitempty"`
	Roughness *float64       `json:"roughness,omitempty"`
	Metalness *float64       `json:"metalness,omitempty"`
	Parts     []ObjectPart   `json:"parts,omitempty"`
	Position  Vec3           `json:"position"`
	Rotation  Vec3           `json:"rotation"`
	Scale     Vec3           `json:"scale"`
}

// PrimaryColor returns the color that visually dominates the object: the
// object color for primitives, the first part's color for compounds.
func (o SceneObject) PrimaryColor() string {
	if o.Kind == KindCompound && len(o.Parts) > 0 {
		if c := strings.TrimSpace(o.Parts[0].Color); c != "" {
			return c
		}
	}
	if c := strings.TrimSpace(o.Color); c != "" {
		return c
	}
	return "#808080"
}

// Clone returns a deep copy of the object.
func (o SceneObject) Clone() SceneObject {
	out := o
	if o.Roughness != nil {
		r := *o.Roughness
		out.Roughness = &r
	}
	if o.Metalness != nil {
		m := *o.Metalness
		out.Metalness = &m
	}
	if len(o.Parts) > 0 {
		out.Parts = make([]ObjectPart, len(o.Parts))
		for i, p := range o.Parts {
			out.Parts[i] = p.clone()
		}
	}
	return out
}

func (p ObjectPart) clone() ObjectPart {
	out := p
	if p.Roughness != nil {
		r := *p.Roughness
		out.Roughness = &r
	}
	if p.Metalness != nil {
		m := *p.Metalness
		out.Metalness = &m
	}
	return out
}

// SceneSnapshot is one immutable (lighting, environment, objects) tuple.
// Snapshots entering the history store are never mutated, only superseded.
type SceneSnapshot struct {
	Lighting    SceneLighting    `json:"lighting"`
	Environment SceneEnvironment `json:"environment"`
	Objects     []SceneObject    `json:"objects"`
}

// Clone returns a deep copy safe to mutate independently of the original.
func (s SceneSnapshot) Clone() SceneSnapshot {
	out := s
	if len(s.Objects) > 0 {
		out.Objects = make([]SceneObject, len(s.Objects))
		for i, o := range s.Objects {
			out.Objects[i] = o.Clone()
		}
	}
	return out
}

// ObjectByID finds an object in the snapshot by its stable id.
func (s SceneSnapshot) ObjectByID(id string) (SceneObject, bool) {
	for _, o := range s.Objects {
		if o.ID == id {
			return o, true
		}
	}
	return SceneObject{}, false
}

// ConsistencyMode selects how strictly generations should track the catalog look.
type ConsistencyMode string

const (
	ModeStrictCatalog    ConsistencyMode = "strict_catalog"
	ModeCreativeCampaign ConsistencyMode = "creative_campaign"
)

// NormalizeConsistencyMode sanitizes free-form input into a supported mode.
func NormalizeConsistencyMode(v string) ConsistencyMode {
	if strings.ToLower(strings.TrimSpace(v)) == string(ModeCreativeCampaign) {
		return ModeCreativeCampaign
	}
	return ModeStrictCatalog
}

// ConsistencySettings travel with generation requests as advisory metadata.
// They never alter classification or provider selection.
type ConsistencySettings struct {
	LockCamera     bool            `json:"lock_camera"`
	LockLighting   bool            `json:"lock_lighting"`
	LockBackground bool            `json:"lock_background"`
	Mode           ConsistencyMode `json:"mode"`
}

// DefaultLighting is the three-point rig applied to new projects.
func DefaultLighting() SceneLighting {
	return SceneLighting{
		AmbientIntensity: 0.4,
		AmbientColor:     "#FFFFFF",
		Key:              Light{Intensity: 1.0, Color: "#FFFFFF", Position: Vec3{X: 5, Y: 5, Z: 5}},
		Fill:             Light{Intensity: 0.5, Color: "#FFFFFF", Position: Vec3{X: -5, Y: 3, Z: 5}},
		Rim:              Light{Intensity: 0.8, Color: "#FFFFFF", Position: Vec3{X: 0, Y: 5, Z: -5}},
	}
}

// DefaultEnvironment is the neutral studio applied to new projects.
func DefaultEnvironment() SceneEnvironment {
	return SceneEnvironment{
		BackgroundColor:  "#F5F5F5",
		FloorColor:       "#FFFFFF",
		FloorRoughness:   0.8,
		Platform:         PlatformNone,
		PlatformColor:    "#FFFFFF",
		PlatformMaterial: MaterialMatte,
	}
}
