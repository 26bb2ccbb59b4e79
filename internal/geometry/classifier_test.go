package geometry

import (
	"math"
	"testing"

	"scenestudio/internal/domain"
)

// positionAt places a camera at distance r with the given polar angle (from
// straight-down) and azimuth, both in degrees.
func positionAt(r, phiDeg, thetaDeg float64) domain.Vec3 {
	phi := phiDeg * math.Pi / 180
	theta := thetaDeg * math.Pi / 180
	return domain.Vec3{
		X: r * math.Sin(phi) * math.Sin(theta),
		Y: r * math.Cos(phi),
		Z: r * math.Sin(phi) * math.Cos(theta),
	}
}

func TestClassifyPolarBoundaries(t *testing.T) {
	cases := []struct {
		phi  float64
		want ViewAngle
	}{
		{0, TopDown},
		{29, TopDown},
		{30, HighAngle},
		{59, HighAngle},
		{60, EyeLevel},
		{90, EyeLevel},
		{100, EyeLevel},
		{101, LowAngle},
		{120, LowAngle},
		{121, WormEye},
		{180, WormEye},
	}
	for _, tc := range cases {
		got := Classify(positionAt(6, tc.phi, 0), domain.Vec3{})
		if got.Angle != tc.want {
			t.Errorf("phi=%v: angle = %s, want %s", tc.phi, got.Angle, tc.want)
		}
	}
}

func TestClassifyEyeLevelAtHorizon(t *testing.T) {
	// y=0 means phi is exactly 90 regardless of where the camera sits.
	for _, pos := range []domain.Vec3{
		{X: 0, Y: 0, Z: 6},
		{X: 4, Y: 0, Z: 4},
		{X: -6, Y: 0, Z: 0},
		{X: 0, Y: 0, Z: -6},
	} {
		got := Classify(pos, domain.Vec3{})
		if got.Angle != EyeLevel {
			t.Errorf("position %+v: angle = %s, want EYE_LEVEL", pos, got.Angle)
		}
		if got.PolarDeg != 90 {
			t.Errorf("position %+v: polar = %d, want 90", pos, got.PolarDeg)
		}
	}
}

func TestClassifyAzimuthBoundaries(t *testing.T) {
	cases := []struct {
		theta float64
		want  Position
	}{
		{0, Front},
		{14, Front},
		{-14, Front},
		{15, FrontLeftAngle},
		{-15, FrontRightAngle},
		{74, FrontLeftAngle},
		{75, LeftSide},
		{90, LeftSide},
		{-90, RightSide},
		{105, LeftSide},
		{-105, RightSide},
		{106, FrontLeftAngle},
		{-106, FrontRightAngle},
		{165, FrontLeftAngle},
		{166, Back},
		{-166, Back},
		{180, Back},
	}
	for _, tc := range cases {
		got := Classify(positionAt(6, 90, tc.theta), domain.Vec3{})
		if got.Position != tc.want {
			t.Errorf("theta=%v: position = %s, want %s", tc.theta, got.Position, tc.want)
		}
	}
}

func TestClassifyShotBoundaries(t *testing.T) {
	cases := []struct {
		r    float64
		want ShotType
	}{
		{1, CloseUp},
		{2.9, CloseUp},
		{3, MediumShot},
		{4.9, MediumShot},
		{5, FullShot},
		{7.9, FullShot},
		{8, WideShot},
		{20, WideShot},
	}
	for _, tc := range cases {
		got := Classify(domain.Vec3{Z: tc.r}, domain.Vec3{})
		if got.Shot != tc.want {
			t.Errorf("r=%v: shot = %s, want %s", tc.r, got.Shot, tc.want)
		}
	}
}

func TestClassifyDirectlyAbove(t *testing.T) {
	// Straight above: azimuth is mathematically undefined and defaults to
	// front via the atan2(0,0)=0 convention.
	got := Classify(domain.Vec3{Y: 6}, domain.Vec3{})
	if got.Angle != TopDown {
		t.Errorf("angle = %s, want TOP_DOWN", got.Angle)
	}
	if got.Position != Front {
		t.Errorf("position = %s, want FRONT", got.Position)
	}
	if got.Shot != FullShot {
		t.Errorf("shot = %s, want full_shot", got.Shot)
	}
	if got.PolarDeg != 0 {
		t.Errorf("polar = %d, want 0", got.PolarDeg)
	}
}

func TestClassifySideViewAtFullShotBoundary(t *testing.T) {
	got := Classify(domain.Vec3{X: 5}, domain.Vec3{})
	if got.Position != LeftSide {
		t.Errorf("position = %s, want LEFT_SIDE", got.Position)
	}
	if got.Shot != FullShot {
		t.Errorf("shot = %s, want full_shot", got.Shot)
	}
	if got.AzimuthDeg != 90 {
		t.Errorf("azimuth = %d, want 90", got.AzimuthDeg)
	}
}

func TestRotationFlags(t *testing.T) {
	deg := func(d float64) float64 { return d * math.Pi / 180 }
	cases := []struct {
		name       string
		rot        domain.Vec3
		tilt, turn bool
	}{
		{"neutral", domain.Vec3{}, false, false},
		{"pitch 31", domain.Vec3{X: deg(31)}, true, false},
		{"roll -45", domain.Vec3{Z: deg(-45)}, true, false},
		{"pitch 30 exact", domain.Vec3{X: deg(30)}, false, false},
		{"yaw 11", domain.Vec3{Y: deg(11)}, false, true},
		{"yaw 10 exact", domain.Vec3{Y: deg(10)}, false, false},
		{"all", domain.Vec3{X: deg(40), Y: deg(20), Z: deg(5)}, true, true},
	}
	for _, tc := range cases {
		got := Classify(domain.Vec3{Z: 6}, tc.rot)
		if got.Tilted != tc.tilt || got.Turned != tc.turn {
			t.Errorf("%s: tilted/turned = %v/%v, want %v/%v", tc.name, got.Tilted, got.Turned, tc.tilt, tc.turn)
		}
	}
}

func TestClassifyOriginFallsBackToDefault(t *testing.T) {
	got := Classify(domain.Vec3{}, domain.Vec3{})
	want := DefaultClassification()
	if got != want {
		t.Errorf("origin classification = %+v, want %+v", got, want)
	}
}

func TestParseCameraContext(t *testing.T) {
	raw := `{"horizontal":0.5,"vertical":1.2,"distance":4.5,"horizontalDeg":29,"verticalDeg":69,"position":{"x":1.5,"y":1.6,"z":3.9}}`
	ctx, ok := ParseCameraContext(raw)
	if !ok {
		t.Fatalf("expected parse to succeed")
	}
	if ctx.Distance != 4.5 || ctx.Position.Z != 3.9 {
		t.Fatalf("unexpected context: %+v", ctx)
	}
}

func TestClassifyContextMalformedInputUsesDefault(t *testing.T) {
	for _, raw := range []string{"", "not json", `{"position":`} {
		got := ClassifyContext(raw, domain.Vec3{})
		if got.Angle != EyeLevel || got.Position != Front || got.Distance != 6 {
			t.Errorf("raw %q: classification = %+v, want default", raw, got)
		}
	}
}

func TestClassifyContextKeepsRotationFlagsOnBadInput(t *testing.T) {
	got := ClassifyContext("garbage", domain.Vec3{X: 1.0})
	if !got.Tilted {
		t.Errorf("expected tilt flag to survive the geometry fallback")
	}
}
