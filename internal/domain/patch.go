package domain

// Patch types express partial edits returned by the prompt-translation
// collaborator. Nil fields retain the previous value when applied, so a
// sparse reply never clobbers state it did not mention.

// LightPatch partially updates a single light.
type LightPatch struct {
	Intensity *float64 `json:"intensity,omitempty"`
	Color     *string  `json:"color,omitempty"`
	Position  *Vec3    `json:"position,omitempty"`
}

// LightingPatch partially updates the scene lighting.
type LightingPatch struct {
	AmbientIntensity *float64    `json:"ambient_intensity,omitempty"`
	AmbientColor     *string     `json:"ambient_color,omitempty"`
	Key              *LightPatch `json:"key,omitempty"`
	Fill             *LightPatch `json:"fill,omitempty"`
	Rim              *LightPatch `json:"rim,omitempty"`
}

// EnvironmentPatch partially updates the scene environment.
type EnvironmentPatch struct {
	BackgroundColor  *string  `json:"background_color,omitempty"`
	FloorColor       *string  `json:"floor_color,omitempty"`
	FloorRoughness   *float64 `json:"floor_roughness,omitempty"`
	Platform         *string  `json:"platform,omitempty"`
	PlatformColor    *string  `json:"platform_color,omitempty"`
	PlatformMaterial *string  `json:"platform_material,omitempty"`
}

// ApplyTo merges the patch over the given lighting and returns the result.
func (p *LightingPatch) ApplyTo(l SceneLighting) SceneLighting {
	if p == nil {
		return l
	}
	if p.AmbientIntensity != nil {
		l.AmbientIntensity = *p.AmbientIntensity
	}
	if p.AmbientColor != nil {
		l.AmbientColor = *p.AmbientColor
	}
	l.Key = p.Key.applyTo(l.Key)
	l.Fill = p.Fill.applyTo(l.Fill)
	l.Rim = p.Rim.applyTo(l.Rim)
	return l
}

func (p *LightPatch) applyTo(l Light) Light {
	if p == nil {
		return l
	}
	if p.Intensity != nil {
		l.Intensity = *p.Intensity
	}
	if p.Color != nil {
		l.Color = *p.Color
	}
	if p.Position != nil {
		l.Position = *p.Position
	}
	return l
}

// ApplyTo merges the patch over the given environment and returns the result.
func (p *EnvironmentPatch) ApplyTo(e SceneEnvironment) SceneEnvironment {
	if p == nil {
		return e
	}
	if p.BackgroundColor != nil {
		e.BackgroundColor = *p.BackgroundColor
	}
	if p.FloorColor != nil {
		e.FloorColor = *p.FloorColor
	}
	if p.FloorRoughness != nil {
		e.FloorRoughness = *p.FloorRoughness
	}
	if p.Platform != nil {
		e.Platform = NormalizePlatformType(*p.Platform)
	}
	if p.PlatformColor != nil {
		e.PlatformColor = *p.PlatformColor
	}
	if p.PlatformMaterial != nil {
		e.PlatformMaterial = NormalizePlatformMaterial(*p.PlatformMaterial)
	}
	return e
}
