// Package geometry converts continuous camera and object state into the
// discrete categorical descriptors consumed by the parameter builder. The
// class boundaries are a closed contract with the downstream generation
// model: boundary values always belong to the lower-magnitude class.
package geometry

import (
	"math"

	"scenestudio/internal/domain"
)

// ViewAngle classifies the camera's vertical angle relative to the subject.
type ViewAngle string

const (
	TopDown   ViewAngle = "TOP_DOWN"
	HighAngle ViewAngle = "HIGH_ANGLE"
	EyeLevel  ViewAngle = "EYE_LEVEL"
	LowAngle  ViewAngle = "LOW_ANGLE"
	WormEye   ViewAngle = "WORM_EYE"
)

// Token returns the lowercase descriptor used in provider payloads.
func (v ViewAngle) Token() string {
	switch v {
	case TopDown:
		return "bird_eye"
	case HighAngle:
		return "high_angle"
	case LowAngle:
		return "low_angle"
	case WormEye:
		return "worm_eye"
	default:
		return "eye_level"
	}
}

// Position classifies the camera's horizontal placement around the subject.
type Position string

const (
	Front           Position = "FRONT"
	Back            Position = "BACK"
	LeftSide        Position = "LEFT_SIDE"
	RightSide       Position = "RIGHT_SIDE"
	FrontLeftAngle  Position = "FRONT_LEFT_ANGLE"
	FrontRightAngle Position = "FRONT_RIGHT_ANGLE"
)

// Token returns the lowercase descriptor used in provider payloads.
func (p Position) Token() string {
	switch p {
	case Back:
		return "back"
	case LeftSide:
		return "left_side"
	case RightSide:
		return "right_side"
	case FrontLeftAngle:
		return "front_left_angle"
	case FrontRightAngle:
		return "front_right_angle"
	default:
		return "front"
	}
}

// ShotType classifies framing distance.
type ShotType string

const (
	CloseUp    ShotType = "close_up"
	MediumShot ShotType = "medium_shot"
	FullShot   ShotType = "full_shot"
	WideShot   ShotType = "wide_shot"
)

// Classification is the full categorical reading of a camera viewpoint plus
// the descriptive rotation flags of the subject.
type Classification struct {
	Angle      ViewAngle
	Position   Position
	Shot       ShotType
	PolarDeg   int
	AzimuthDeg int
	Distance   float64
	Tilted     bool
	Turned     bool
}

// DefaultClassification is the canonical viewpoint substituted when camera
// geometry is missing or malformed: eye-level, front, distance 6.
func DefaultClassification() Classification {
	return Classification{
		Angle:      EyeLevel,
		Position:   Front,
		Shot:       FullShot,
		PolarDeg:   90,
		AzimuthDeg: 0,
		Distance:   6,
	}
}

// Classify derives the categorical viewpoint from a world-space camera
// position and the subject's rotation in radians. A camera at the origin has
// no defined viewpoint and yields the default classification.
func Classify(camera domain.Vec3, rotation domain.Vec3) Classification {
	r := math.Sqrt(camera.X*camera.X + camera.Y*camera.Y + camera.Z*camera.Z)
	if r == 0 {
		c := DefaultClassification()
		c.Tilted, c.Turned = rotationFlags(rotation)
		return c
	}

	// Spherical reading: phi measured from straight-down (0) to straight-up
	// (180) with 90 at eye level; theta signed around the vertical axis.
	phi := int(math.Round(math.Acos(camera.Y/r) * 180 / math.Pi))
	theta := int(math.Round(math.Atan2(camera.X, camera.Z) * 180 / math.Pi))
	distance := math.Round(r*10) / 10

	c := Classification{
		Angle:      classifyPolar(phi),
		Position:   classifyAzimuth(theta),
		Shot:       classifyShot(distance),
		PolarDeg:   phi,
		AzimuthDeg: theta,
		Distance:   distance,
	}
	c.Tilted, c.Turned = rotationFlags(rotation)
	return c
}

func classifyPolar(phi int) ViewAngle {
	switch {
	case phi < 30:
		return TopDown
	case phi < 60:
		return HighAngle
	case phi <= 100:
		return EyeLevel
	case phi <= 120:
		return LowAngle
	default:
		return WormEye
	}
}

func classifyAzimuth(theta int) Position {
	abs := theta
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs < 15:
		return Front
	case abs > 165:
		return Back
	case abs >= 75 && abs <= 105:
		if theta > 0 {
			return LeftSide
		}
		return RightSide
	case theta > 0:
		return FrontLeftAngle
	default:
		return FrontRightAngle
	}
}

func classifyShot(r float64) ShotType {
	switch {
	case r < 3:
		return CloseUp
	case r < 5:
		return MediumShot
	case r < 8:
		return FullShot
	default:
		return WideShot
	}
}

// rotationFlags derives the descriptive phrasing flags from an object
// rotation in radians: tilted when pitched or rolled past 30 degrees,
// turned when yawed past 10 degrees.
func rotationFlags(rot domain.Vec3) (tilted, turned bool) {
	rx := math.Abs(rot.X * 180 / math.Pi)
	ry := math.Abs(rot.Y * 180 / math.Pi)
	rz := math.Abs(rot.Z * 180 / math.Pi)
	return rx > 30 || rz > 30, ry > 10
}
