package mapgen

import (
	"fmt"
	"math/rand"

	"github.com/lawnchairsociety/mapforge/internal/direction"
	"github.com/lawnchairsociety/mapforge/internal/geom"
	"github.com/lawnchairsociety/mapforge/internal/region"
)

// forward neighbor offsets, each unordered cell pair visited once.
var (
	cardinalOffsets = []geom.Cell{{X: 1, Y: 0}, {X: 0, Y: 1}}
	diagonalOffsets = []geom.Cell{{X: 1, Y: 1}, {X: -1, Y: 1}}
	forwardOffsets  = []geom.Cell{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: -1, Y: 1}}
	allOffsets8     = []geom.Cell{
		{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1},
		{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1},
	}
)

// Builder accumulates a room graph during one generation run. It owns the
// cell memo table (at most one room per cell), the graph under
// construction, and the injected random source. All generator algorithms
// build through it so no generator depends on another.
type Builder struct {
	graph region.Graph
	cells map[geom.Cell]string
	order []geom.Cell
	rng   *rand.Rand
}

// NewBuilder creates an empty builder drawing from rng.
func NewBuilder(rng *rand.Rand) *Builder {
	return &Builder{
		graph: make(region.Graph),
		cells: make(map[geom.Cell]string),
		rng:   rng,
	}
}

// Graph returns the graph built so far.
func (b *Builder) Graph() region.Graph {
	return b.graph
}

// Count returns the number of rooms created.
func (b *Builder) Count() int {
	return len(b.order)
}

// Has reports whether a room occupies cell.
func (b *Builder) Has(cell geom.Cell) bool {
	_, ok := b.cells[cell]
	return ok
}

// IDAt returns the id of the room at cell, if any.
func (b *Builder) IDAt(cell geom.Cell) (string, bool) {
	id, ok := b.cells[cell]
	return id, ok
}

// RoomAt returns the room registered at cell, creating it on first use.
// New rooms are positioned at cell × CellSize and named
// "{prefix} {x}-{y}". The prefix of an already-registered cell is left
// alone.
func (b *Builder) RoomAt(cell geom.Cell, prefix string) string {
	if id, ok := b.cells[cell]; ok {
		return id
	}
	id := fmt.Sprintf("room_%d_%d", cell.X, cell.Y)
	room := region.NewRoom(id, fmt.Sprintf("%s %d-%d", prefix, cell.X, cell.Y), "")
	room.Position = cell.Vec().Scale(region.CellSize)
	b.graph.Add(room)
	b.cells[cell] = id
	b.order = append(b.order, cell)
	return id
}

// Link creates a reciprocal exit pair between two rooms, naming the
// directions by compass-bucketing offset and its negation. Self-links
// and degenerate offsets are skipped.
func (b *Builder) Link(fromID, toID string, offset geom.Vec2) {
	if fromID == toID || offset.IsZero() {
		return
	}
	from, ok := b.graph[fromID]
	if !ok {
		return
	}
	to, ok := b.graph[toID]
	if !ok {
		return
	}
	dir := direction.Bucket(offset)
	from.AddExit(dir.String(), toID)
	to.AddExit(direction.Bucket(offset.Neg()).String(), fromID)
}

// LinkCells links the rooms registered at two cells. Cells without rooms
// are ignored.
func (b *Builder) LinkCells(a, c geom.Cell) {
	fromID, ok := b.cells[a]
	if !ok {
		return
	}
	toID, ok := b.cells[c]
	if !ok {
		return
	}
	b.Link(fromID, toID, geom.Vec2{X: float64(c.X - a.X), Y: float64(c.Y - a.Y)})
}

// Linked reports whether the rooms at two cells already share an exit in
// either direction.
func (b *Builder) Linked(a, c geom.Cell) bool {
	aID, ok := b.cells[a]
	if !ok {
		return false
	}
	cID, ok := b.cells[c]
	if !ok {
		return false
	}
	for _, target := range b.graph[aID].Exits {
		if target == cID {
			return true
		}
	}
	for _, target := range b.graph[cID].Exits {
		if target == aID {
			return true
		}
	}
	return false
}

// ConnectNeighbors links every registered cell to its forward neighbors.
// Cardinal links happen with probability lerp(0.3, 1.0, density), diagonal
// links with lerp(0.0, 0.8, density). The comparison is inclusive so a
// density of 1.0 always links cardinals.
func (b *Builder) ConnectNeighbors(density float64) {
	density = geom.Clamp(density, 0, 1)
	cardinal := geom.Lerp(0.3, 1.0, density)
	diagonal := geom.Lerp(0.0, 0.8, density)
	for _, cell := range b.order {
		for _, off := range cardinalOffsets {
			n := cell.Add(off)
			if b.Has(n) && b.rng.Float64() <= cardinal {
				b.LinkCells(cell, n)
			}
		}
		for _, off := range diagonalOffsets {
			n := cell.Add(off)
			if b.Has(n) && b.rng.Float64() <= diagonal {
				b.LinkCells(cell, n)
			}
		}
	}
}

// linkNeighbors links the room at cell to every adjacent registered room,
// each with probability p. A p of 1 or more always links.
func (b *Builder) linkNeighbors(cell geom.Cell, p float64) {
	for _, off := range allOffsets8 {
		n := cell.Add(off)
		if !b.Has(n) || b.Linked(cell, n) {
			continue
		}
		if p >= 1 || b.rng.Float64() <= p {
			b.LinkCells(cell, n)
		}
	}
}

// walkCorridor steps from one cell toward another along diagonals,
// creating and linking a room at every step. Already-registered cells are
// reused. The number of steps is bounded by the Chebyshev distance, so
// the walk always terminates.
func (b *Builder) walkCorridor(from, to geom.Cell, prefix string) {
	b.RoomAt(from, prefix)
	cur := from
	limit := abs(to.X-from.X) + abs(to.Y-from.Y) + 1
	for i := 0; cur != to && i < limit; i++ {
		next := cur
		if next.X < to.X {
			next.X++
		} else if next.X > to.X {
			next.X--
		}
		if next.Y < to.Y {
			next.Y++
		} else if next.Y > to.Y {
			next.Y--
		}
		b.RoomAt(next, prefix)
		b.LinkCells(cur, next)
		cur = next
	}
}

// stampRect rasterizes a rectangle of rooms and fully interconnects all
// adjacent pairs inside it. Returns false when the rectangle is empty.
func (b *Builder) stampRect(x, y, w, h int, prefix string) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	for cy := y; cy < y+h; cy++ {
		for cx := x; cx < x+w; cx++ {
			b.RoomAt(geom.Cell{X: cx, Y: cy}, prefix)
		}
	}
	for cy := y; cy < y+h; cy++ {
		for cx := x; cx < x+w; cx++ {
			cell := geom.Cell{X: cx, Y: cy}
			for _, off := range forwardOffsets {
				n := cell.Add(off)
				if n.X >= x && n.X < x+w && n.Y >= y && n.Y < y+h {
					b.LinkCells(cell, n)
				}
			}
		}
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
