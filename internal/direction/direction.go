// Package direction defines the movement vocabulary shared by the map
// generators and the layout solvers: fourteen named directions, their
// opposites, their placement vectors, and the compass quantizer that
// turns an arbitrary spatial offset into a named direction.
package direction

import (
	"math"

	"github.com/lawnchairsociety/mapforge/internal/geom"
)

// Direction is one of the fourteen named movement directions.
type Direction int

const (
	North Direction = iota
	South
	East
	West
	Northeast
	Northwest
	Southeast
	Southwest
	Up
	Down
	In
	Out
	Climb
	Dive
)

// All returns every direction in declaration order.
func All() []Direction {
	return []Direction{
		North, South, East, West,
		Northeast, Northwest, Southeast, Southwest,
		Up, Down, In, Out, Climb, Dive,
	}
}

// Compass returns the eight planar directions. Only these are ever
// produced by Bucket.
func Compass() []Direction {
	return []Direction{North, South, East, West, Northeast, Northwest, Southeast, Southwest}
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	case Northeast:
		return "northeast"
	case Northwest:
		return "northwest"
	case Southeast:
		return "southeast"
	case Southwest:
		return "southwest"
	case Up:
		return "up"
	case Down:
		return "down"
	case In:
		return "in"
	case Out:
		return "out"
	case Climb:
		return "climb"
	case Dive:
		return "dive"
	}
	return "unknown"
}

// Parse resolves a direction name. The second return is false for
// unrecognized names.
func Parse(name string) (Direction, bool) {
	for _, d := range All() {
		if d.String() == name {
			return d, true
		}
	}
	return East, false
}

// Opposite returns the inverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	case Northeast:
		return Southwest
	case Southwest:
		return Northeast
	case Northwest:
		return Southeast
	case Southeast:
		return Northwest
	case Up:
		return Down
	case Down:
		return Up
	case In:
		return Out
	case Out:
		return In
	case Climb:
		return Dive
	case Dive:
		return Climb
	}
	return East
}

// Vector returns the placement vector for d. Compass directions map to
// unit-ish grid offsets; the six non-planar directions carry small skewed
// offsets used only for relative visual placement, never for grid linking.
func (d Direction) Vector() geom.Vec2 {
	switch d {
	case North:
		return geom.Vec2{X: 0, Y: -1}
	case South:
		return geom.Vec2{X: 0, Y: 1}
	case East:
		return geom.Vec2{X: 1, Y: 0}
	case West:
		return geom.Vec2{X: -1, Y: 0}
	case Northeast:
		return geom.Vec2{X: 1, Y: -1}
	case Northwest:
		return geom.Vec2{X: -1, Y: -1}
	case Southeast:
		return geom.Vec2{X: 1, Y: 1}
	case Southwest:
		return geom.Vec2{X: -1, Y: 1}
	case Up:
		return geom.Vec2{X: 0.45, Y: -0.9}
	case Down:
		return geom.Vec2{X: -0.45, Y: 0.9}
	case In:
		return geom.Vec2{X: 0.9, Y: -0.45}
	case Out:
		return geom.Vec2{X: -0.9, Y: 0.45}
	case Climb:
		return geom.Vec2{X: 0.65, Y: -0.75}
	case Dive:
		return geom.Vec2{X: -0.65, Y: 0.75}
	}
	return geom.Vec2{X: 1, Y: 0}
}

// compass sector order, counterclockwise-indexed from east with Y down.
var buckets = [8]Direction{East, Southeast, South, Southwest, West, Northwest, North, Northeast}

// Bucket quantizes the angle of v into one of the eight compass
// directions using 45°-wide sectors centered on each direction. Sector
// boundaries (22.5°, 67.5°, ...) resolve to the higher-angle sector.
// A zero vector falls back to East.
func Bucket(v geom.Vec2) Direction {
	if v.IsZero() {
		return East
	}
	deg := math.Atan2(v.Y, v.X) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	idx := int(math.Floor((deg+22.5)/45)) % 8
	return buckets[idx]
}
