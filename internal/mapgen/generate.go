// Package mapgen synthesizes connected room graphs. It provides a family
// of interchangeable generation algorithms, all pure functions of a
// parameter record and an injected random source, plus the shared grid
// primitives they build with. Every generated graph comes back connected
// (largest component only) and centered on the origin.
package mapgen

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/lawnchairsociety/mapforge/internal/geom"
	"github.com/lawnchairsociety/mapforge/internal/region"
)

// Algorithm selects one of the generation strategies.
type Algorithm int

const (
	Empty Algorithm = iota
	Grid
	Maze
	Cavern
	Sector
	Target
	Highway
	River
	Spiral
	Hub
	Crescent
	Ring
	Fractal
	House
	Town
	City
	Castle
)

// Algorithms returns every algorithm in declaration order.
func Algorithms() []Algorithm {
	return []Algorithm{
		Empty, Grid, Maze, Cavern, Sector, Target,
		Highway, River, Spiral, Hub, Crescent, Ring, Fractal,
		House, Town, City, Castle,
	}
}

func (a Algorithm) String() string {
	switch a {
	case Empty:
		return "empty"
	case Grid:
		return "grid"
	case Maze:
		return "maze"
	case Cavern:
		return "cavern"
	case Sector:
		return "sector"
	case Target:
		return "target"
	case Highway:
		return "highway"
	case River:
		return "river"
	case Spiral:
		return "spiral"
	case Hub:
		return "hub"
	case Crescent:
		return "crescent"
	case Ring:
		return "ring"
	case Fractal:
		return "fractal"
	case House:
		return "house"
	case Town:
		return "town"
	case City:
		return "city"
	case Castle:
		return "castle"
	}
	return "empty"
}

// ParseAlgorithm resolves an algorithm name. Unknown names fall back to
// Empty rather than erroring.
func ParseAlgorithm(name string) Algorithm {
	for _, a := range Algorithms() {
		if a.String() == name {
			return a
		}
	}
	return Empty
}

// Options is the generic parameter record shared by every algorithm.
// Rows, Cols, RoomDensity and ConnDensity are positional slots: each
// algorithm reinterprets them into its own typed parameters (size,
// fill probability, loop chance, settlement frequency, and so on).
type Options struct {
	Rows        int
	Cols        int
	RoomDensity float64
	ConnDensity float64
}

// maxGridSide caps the requested lattice dimensions so every walker and
// queue loop stays bounded regardless of input.
const maxGridSide = 512

func (o Options) normalized() Options {
	o.Rows = geom.ClampInt(o.Rows, 1, maxGridSide)
	o.Cols = geom.ClampInt(o.Cols, 1, maxGridSide)
	o.RoomDensity = geom.Clamp(o.RoomDensity, 0, 1)
	o.ConnDensity = geom.Clamp(o.ConnDensity, 0, 1)
	return o
}

// budget returns the room-count ceiling for unbounded-shape walkers.
func (o Options) budget() int {
	return o.Rows*o.Cols + 16
}

// Generate runs the selected algorithm and post-processes the result:
// the largest connected component is kept and the surviving rooms are
// recentered around the origin. Parameters are clamped into their valid
// domain first; pathological values degrade to a near-empty graph rather
// than failing. Results are reproducible given the same rng state.
func Generate(algo Algorithm, opt Options, rng *rand.Rand) region.Graph {
	opt = opt.normalized()

	var g region.Graph
	switch algo {
	case Grid:
		g = generateGrid(opt, rng)
	case Maze:
		g = generateMaze(opt, rng)
	case Cavern:
		g = generateCavern(opt, rng)
	case Sector:
		g = generateSector(opt, rng)
	case Target:
		g = generateTarget(opt, rng)
	case Highway:
		g = generateHighway(opt, rng)
	case River:
		g = generateRiver(opt, rng)
	case Spiral:
		g = generateSpiral(opt, rng)
	case Hub:
		g = generateHub(opt, rng)
	case Crescent:
		g = generateCrescent(opt, rng)
	case Ring:
		g = generateRing(opt, rng)
	case Fractal:
		g = generateFractal(opt, rng)
	case House:
		g = generateHouse(opt, rng)
	case Town:
		g = generateTown(opt, rng)
	case City:
		g = generateCity(opt, rng)
	case Castle:
		g = generateCastle(opt, rng)
	default:
		g = make(region.Graph)
	}

	g = region.LargestComponent(g)
	region.Center(g)
	return g
}

// NewRegionID mints a unique region identifier for a generated region,
// e.g. "cavern_3fa85f64".
func NewRegionID(algo Algorithm) string {
	id := uuid.New()
	return fmt.Sprintf("%s_%x", algo, id[:4])
}
