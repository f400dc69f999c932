package mapgen

import (
	"math/rand"
	"testing"

	"github.com/lawnchairsociety/mapforge/internal/direction"
	"github.com/lawnchairsociety/mapforge/internal/geom"
	"github.com/lawnchairsociety/mapforge/internal/region"
)

func TestBuilder_RoomAt_Memoized(t *testing.T) {
	b := NewBuilder(rand.New(rand.NewSource(1)))
	cell := geom.Cell{X: 2, Y: 3}

	first := b.RoomAt(cell, "Chamber")
	second := b.RoomAt(cell, "Cave")

	if first != second {
		t.Errorf("RoomAt returned different ids for the same cell: %q, %q", first, second)
	}
	if b.Count() != 1 {
		t.Errorf("Count() = %d, want 1", b.Count())
	}
	// The original prefix wins
	if got := b.Graph()[first].Name; got != "Chamber 2-3" {
		t.Errorf("room name = %q, want \"Chamber 2-3\"", got)
	}
}

func TestBuilder_RoomAt_Position(t *testing.T) {
	b := NewBuilder(rand.New(rand.NewSource(1)))
	id := b.RoomAt(geom.Cell{X: 3, Y: -2}, "Cave")
	want := geom.Vec2{X: 3 * region.CellSize, Y: -2 * region.CellSize}
	if got := b.Graph()[id].Position; got != want {
		t.Errorf("Position = %v, want %v", got, want)
	}
}

func TestBuilder_Link_Reciprocal(t *testing.T) {
	b := NewBuilder(rand.New(rand.NewSource(1)))
	a := b.RoomAt(geom.Cell{X: 0, Y: 0}, "Room")
	c := b.RoomAt(geom.Cell{X: 1, Y: 0}, "Room")

	b.Link(a, c, geom.Vec2{X: 1, Y: 0})

	g := b.Graph()
	if g[a].Exits["east"] != c {
		t.Errorf("a.east = %q, want %q", g[a].Exits["east"], c)
	}
	if g[c].Exits["west"] != a {
		t.Errorf("c.west = %q, want %q", g[c].Exits["west"], a)
	}
}

func TestBuilder_Link_AllOffsetsReciprocal(t *testing.T) {
	b := NewBuilder(rand.New(rand.NewSource(1)))
	center := b.RoomAt(geom.Cell{X: 0, Y: 0}, "Hub")
	g := b.Graph()

	for _, off := range allOffsets8 {
		id := b.RoomAt(off, "Room")
		b.LinkCells(geom.Cell{}, off)

		dir := direction.Bucket(off.Vec())
		if g[center].Exits[dir.String()] != id {
			t.Errorf("offset %v: hub lacks %s exit to %s", off, dir, id)
		}
		if g[id].Exits[dir.Opposite().String()] != center {
			t.Errorf("offset %v: %s lacks %s exit back to hub", off, id, dir.Opposite())
		}
	}
}

func TestBuilder_Link_SkipsSelfAndZero(t *testing.T) {
	b := NewBuilder(rand.New(rand.NewSource(1)))
	a := b.RoomAt(geom.Cell{X: 0, Y: 0}, "Room")

	b.Link(a, a, geom.Vec2{X: 1, Y: 0})
	if len(b.Graph()[a].Exits) != 0 {
		t.Error("self-link created an exit")
	}

	c := b.RoomAt(geom.Cell{X: 1, Y: 0}, "Room")
	b.Link(a, c, geom.Vec2{})
	if len(b.Graph()[a].Exits) != 0 {
		t.Error("zero-offset link created an exit")
	}
}

func TestBuilder_Linked(t *testing.T) {
	b := NewBuilder(rand.New(rand.NewSource(1)))
	a := geom.Cell{X: 0, Y: 0}
	c := geom.Cell{X: 1, Y: 0}
	b.RoomAt(a, "Room")
	b.RoomAt(c, "Room")

	if b.Linked(a, c) {
		t.Error("rooms reported linked before any link")
	}
	b.LinkCells(a, c)
	if !b.Linked(a, c) || !b.Linked(c, a) {
		t.Error("rooms not reported linked after LinkCells")
	}
}

func TestBuilder_ConnectNeighbors_FullDensity(t *testing.T) {
	b := NewBuilder(rand.New(rand.NewSource(7)))
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			b.RoomAt(geom.Cell{X: x, Y: y}, "Room")
		}
	}
	b.ConnectNeighbors(1.0)

	// Density 1.0 always links cardinal neighbors
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			cell := geom.Cell{X: x, Y: y}
			if x+1 < 3 && !b.Linked(cell, geom.Cell{X: x + 1, Y: y}) {
				t.Errorf("cell %v missing east link at full density", cell)
			}
			if y+1 < 3 && !b.Linked(cell, geom.Cell{X: x, Y: y + 1}) {
				t.Errorf("cell %v missing south link at full density", cell)
			}
		}
	}
}

func TestBuilder_ConnectNeighbors_ZeroDensityNoDiagonals(t *testing.T) {
	b := NewBuilder(rand.New(rand.NewSource(7)))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			b.RoomAt(geom.Cell{X: x, Y: y}, "Room")
		}
	}
	b.ConnectNeighbors(0)

	for _, room := range b.Graph() {
		for dirName := range room.Exits {
			switch dirName {
			case "northeast", "northwest", "southeast", "southwest":
				t.Errorf("diagonal exit %q created at zero density", dirName)
			}
		}
	}
}

func TestBuilder_WalkCorridor_ReachesTarget(t *testing.T) {
	tests := []struct {
		from, to geom.Cell
	}{
		{geom.Cell{X: 0, Y: 0}, geom.Cell{X: 5, Y: 0}},
		{geom.Cell{X: 0, Y: 0}, geom.Cell{X: 0, Y: -4}},
		{geom.Cell{X: 2, Y: 2}, geom.Cell{X: -3, Y: 5}},
		{geom.Cell{X: 1, Y: 1}, geom.Cell{X: 1, Y: 1}},
	}
	for _, tt := range tests {
		b := NewBuilder(rand.New(rand.NewSource(1)))
		b.walkCorridor(tt.from, tt.to, "Corridor")
		if !b.Has(tt.to) {
			t.Errorf("walkCorridor(%v, %v) never reached the target", tt.from, tt.to)
		}
	}
}

func TestBuilder_WalkCorridor_Connected(t *testing.T) {
	b := NewBuilder(rand.New(rand.NewSource(1)))
	b.walkCorridor(geom.Cell{X: 0, Y: 0}, geom.Cell{X: 6, Y: 2}, "Corridor")

	g := region.LargestComponent(b.Graph())
	if len(g) != len(b.Graph()) {
		t.Errorf("corridor is not fully connected: %d of %d rooms in largest component",
			len(g), len(b.Graph()))
	}
}

func TestBuilder_StampRect(t *testing.T) {
	b := NewBuilder(rand.New(rand.NewSource(1)))
	if !b.stampRect(0, 0, 3, 2, "Hall") {
		t.Fatal("stampRect returned false for a valid rectangle")
	}
	if b.Count() != 6 {
		t.Errorf("stampRect created %d rooms, want 6", b.Count())
	}

	g := region.LargestComponent(b.Graph())
	if len(g) != 6 {
		t.Errorf("stamped rectangle not fully connected: %d of 6", len(g))
	}
}

func TestBuilder_StampRect_Degenerate(t *testing.T) {
	b := NewBuilder(rand.New(rand.NewSource(1)))
	if b.stampRect(0, 0, 0, 5, "Hall") {
		t.Error("stampRect accepted a zero-width rectangle")
	}
	if b.stampRect(0, 0, 5, -1, "Hall") {
		t.Error("stampRect accepted a negative-height rectangle")
	}
	if b.Count() != 0 {
		t.Errorf("degenerate stamps created %d rooms", b.Count())
	}
}

func TestBuilder_StampRect_NoLinksOutside(t *testing.T) {
	b := NewBuilder(rand.New(rand.NewSource(1)))
	b.RoomAt(geom.Cell{X: -1, Y: 0}, "Outside")
	b.stampRect(0, 0, 2, 2, "Hall")

	if b.Linked(geom.Cell{X: -1, Y: 0}, geom.Cell{X: 0, Y: 0}) {
		t.Error("stampRect linked to a room outside the rectangle")
	}
}
