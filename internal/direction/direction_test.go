package direction

import (
	"math"
	"testing"

	"github.com/lawnchairsociety/mapforge/internal/geom"
)

func TestParse_RoundTrip(t *testing.T) {
	for _, d := range All() {
		got, ok := Parse(d.String())
		if !ok {
			t.Errorf("Parse(%q) not recognized", d.String())
		}
		if got != d {
			t.Errorf("Parse(%q) = %v, want %v", d.String(), got, d)
		}
	}
}

func TestParse_Unknown(t *testing.T) {
	if _, ok := Parse("sideways"); ok {
		t.Error("Parse(\"sideways\") should not be recognized")
	}
}

func TestOpposite_IsInvolution(t *testing.T) {
	for _, d := range All() {
		if got := d.Opposite().Opposite(); got != d {
			t.Errorf("%v.Opposite().Opposite() = %v, want %v", d, got, d)
		}
		if d.Opposite() == d {
			t.Errorf("%v is its own opposite", d)
		}
	}
}

func TestOpposite_Pairs(t *testing.T) {
	tests := []struct {
		d, want Direction
	}{
		{North, South},
		{East, West},
		{Northeast, Southwest},
		{Northwest, Southeast},
		{Up, Down},
		{In, Out},
		{Climb, Dive},
	}
	for _, tt := range tests {
		if got := tt.d.Opposite(); got != tt.want {
			t.Errorf("%v.Opposite() = %v, want %v", tt.d, got, tt.want)
		}
	}
}

func TestVector_CompassDirections(t *testing.T) {
	// Y grows downward, so north points at negative Y
	if v := North.Vector(); v != (geom.Vec2{X: 0, Y: -1}) {
		t.Errorf("North.Vector() = %v, want {0 -1}", v)
	}
	if v := Southeast.Vector(); v != (geom.Vec2{X: 1, Y: 1}) {
		t.Errorf("Southeast.Vector() = %v, want {1 1}", v)
	}
}

func TestVector_OppositesCancel(t *testing.T) {
	for _, d := range All() {
		sum := d.Vector().Add(d.Opposite().Vector())
		if math.Abs(sum.X) > 1e-9 || math.Abs(sum.Y) > 1e-9 {
			t.Errorf("%v.Vector() + opposite = %v, want zero", d, sum)
		}
	}
}

func TestVector_NonPlanarAreDistinct(t *testing.T) {
	seen := make(map[geom.Vec2]Direction)
	for _, d := range All() {
		v := d.Vector()
		if prev, ok := seen[v]; ok {
			t.Errorf("%v and %v share vector %v", prev, d, v)
		}
		seen[v] = d
	}
}

func TestBucket_CardinalOffsets(t *testing.T) {
	tests := []struct {
		v    geom.Vec2
		want Direction
	}{
		{geom.Vec2{X: 1, Y: 0}, East},
		{geom.Vec2{X: -1, Y: 0}, West},
		{geom.Vec2{X: 0, Y: -1}, North},
		{geom.Vec2{X: 0, Y: 1}, South},
		{geom.Vec2{X: 1, Y: -1}, Northeast},
		{geom.Vec2{X: -1, Y: -1}, Northwest},
		{geom.Vec2{X: 1, Y: 1}, Southeast},
		{geom.Vec2{X: -1, Y: 1}, Southwest},
	}
	for _, tt := range tests {
		if got := Bucket(tt.v); got != tt.want {
			t.Errorf("Bucket(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestBucket_SectorInteriors(t *testing.T) {
	// Offsets well inside a 45-degree sector quantize to its direction
	tests := []struct {
		v    geom.Vec2
		want Direction
	}{
		{geom.Vec2{X: 10, Y: 1}, East},
		{geom.Vec2{X: 10, Y: -3}, East},
		{geom.Vec2{X: 5, Y: 4}, Southeast},
		{geom.Vec2{X: -1, Y: -10}, North},
		{geom.Vec2{X: -6, Y: 5}, Southwest},
	}
	for _, tt := range tests {
		if got := Bucket(tt.v); got != tt.want {
			t.Errorf("Bucket(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestBucket_SectorEdges(t *testing.T) {
	// The east sector with Y down spans [-22.5, 22.5) degrees. Angles
	// just inside each edge stay east; just past the upper edge flips
	// to southeast.
	tests := []struct {
		deg  float64
		want Direction
	}{
		{22.4, East},
		{22.6, Southeast},
		{-22.4, East},
		{-22.6, Northeast},
		{67.4, Southeast},
		{67.6, South},
	}
	for _, tt := range tests {
		rad := tt.deg * math.Pi / 180
		v := geom.Vec2{X: math.Cos(rad), Y: math.Sin(rad)}
		if got := Bucket(v); got != tt.want {
			t.Errorf("Bucket(%vdeg) = %v, want %v", tt.deg, got, tt.want)
		}
	}
}

func TestBucket_Zero(t *testing.T) {
	if got := Bucket(geom.Vec2{}); got != East {
		t.Errorf("Bucket(zero) = %v, want East", got)
	}
}

func TestBucket_NegationGivesOpposite(t *testing.T) {
	// For any non-boundary offset the negated offset buckets to the
	// opposite direction, which is what makes generated links reciprocal.
	offsets := []geom.Vec2{
		{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: -1, Y: 1},
		{X: 3, Y: -1}, {X: -2, Y: -5}, {X: 0.45, Y: -0.9}, {X: 0.65, Y: -0.75},
	}
	for _, v := range offsets {
		a := Bucket(v)
		b := Bucket(v.Neg())
		if a.Opposite() != b {
			t.Errorf("Bucket(%v) = %v but Bucket(neg) = %v, want %v", v, a, b, a.Opposite())
		}
	}
}

func TestBucket_OnlyCompass(t *testing.T) {
	compass := make(map[Direction]bool)
	for _, d := range Compass() {
		compass[d] = true
	}
	for deg := 0; deg < 360; deg += 5 {
		rad := float64(deg) * math.Pi / 180
		d := Bucket(geom.Vec2{X: math.Cos(rad), Y: math.Sin(rad)})
		if !compass[d] {
			t.Errorf("Bucket at %ddeg produced non-compass direction %v", deg, d)
		}
	}
}
