package layout

import (
	"testing"

	"github.com/lawnchairsociety/mapforge/internal/geom"
	"github.com/lawnchairsociety/mapforge/internal/region"
)

func makeRoom(g region.Graph, id string) *region.Room {
	r := region.NewRoom(id, id, "")
	g.Add(r)
	return r
}

func connect(g region.Graph, a, b, dirAB, dirBA string) {
	g[a].AddExit(dirAB, b)
	g[b].AddExit(dirBA, a)
}

func TestOptimize_Empty(t *testing.T) {
	positions := Optimize(make(region.Graph))
	if len(positions) != 0 {
		t.Errorf("empty graph produced %d positions", len(positions))
	}
}

func TestOptimize_SingleRoomAtOrigin(t *testing.T) {
	g := make(region.Graph)
	makeRoom(g, "only")

	positions := Optimize(g)
	if positions["only"] != (geom.Vec2{}) {
		t.Errorf("single room placed at %v, want origin", positions["only"])
	}
}

func TestOptimize_HonorsExitDirections(t *testing.T) {
	g := make(region.Graph)
	makeRoom(g, "a")
	makeRoom(g, "b")
	makeRoom(g, "c")
	connect(g, "a", "b", "east", "west")
	connect(g, "a", "c", "south", "north")

	positions := Optimize(g)

	if positions["b"] != (geom.Vec2{X: Spacing}) {
		t.Errorf("east neighbor at %v, want {%v 0}", positions["b"], Spacing)
	}
	if positions["c"] != (geom.Vec2{Y: Spacing}) {
		t.Errorf("south neighbor at %v, want {0 %v}", positions["c"], Spacing)
	}
}

func TestOptimize_NonPlanarDirectionsDisplace(t *testing.T) {
	g := make(region.Graph)
	makeRoom(g, "a")
	makeRoom(g, "b")
	connect(g, "a", "b", "up", "down")

	positions := Optimize(g)
	if positions["b"] == positions["a"] {
		t.Error("up neighbor placed on top of its parent")
	}
	// Up displaces toward negative Y (screen up) and positive X
	if positions["b"].Y >= 0 || positions["b"].X <= 0 {
		t.Errorf("up neighbor at %v, want positive X and negative Y", positions["b"])
	}
}

func TestOptimize_SnapsToGrid(t *testing.T) {
	g := make(region.Graph)
	makeRoom(g, "a")
	makeRoom(g, "b")
	connect(g, "a", "b", "climb", "dive")

	positions := Optimize(g)
	for id, pos := range positions {
		if pos != pos.Snap(GridSnap) {
			t.Errorf("room %s at %v, not on the %v grid", id, pos, GridSnap)
		}
	}
}

func TestOptimize_StartNodeProperty(t *testing.T) {
	g := make(region.Graph)
	makeRoom(g, "a")
	start := makeRoom(g, "z")
	start.Properties[StartNodeProperty] = true
	connect(g, "a", "z", "east", "west")

	positions := Optimize(g)
	if positions["z"] != (geom.Vec2{}) {
		t.Errorf("flagged start room at %v, want origin", positions["z"])
	}
	if positions["a"] != (geom.Vec2{X: -Spacing}) {
		t.Errorf("west neighbor of start at %v, want {-%v 0}", positions["a"], Spacing)
	}
}

func TestOptimize_DefaultStartIsFirstSortedID(t *testing.T) {
	g := make(region.Graph)
	makeRoom(g, "m")
	makeRoom(g, "b")
	connect(g, "b", "m", "east", "west")

	positions := Optimize(g)
	if positions["b"] != (geom.Vec2{}) {
		t.Errorf("first sorted room at %v, want origin", positions["b"])
	}
}

func TestOptimize_Deterministic(t *testing.T) {
	g := make(region.Graph)
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		makeRoom(g, id)
	}
	connect(g, "a", "b", "east", "west")
	connect(g, "a", "c", "south", "north")
	connect(g, "b", "d", "southeast", "northwest")
	connect(g, "c", "e", "west", "east")

	first := Optimize(g)
	second := Optimize(g)
	for id := range first {
		if first[id] != second[id] {
			t.Errorf("room %s moved between runs: %v vs %v", id, first[id], second[id])
		}
	}
}

func TestOptimize_SkipsCrossRegionExits(t *testing.T) {
	g := make(region.Graph)
	makeRoom(g, "a")
	g["a"].AddExit("east", "town:gate")

	positions := Optimize(g)
	if len(positions) != 1 {
		t.Errorf("cross-region exit produced %d positions, want 1", len(positions))
	}
	if _, ok := positions["town:gate"]; ok {
		t.Error("cross-region target was placed")
	}
}

func TestOptimize_IslandsStackBelow(t *testing.T) {
	g := make(region.Graph)
	makeRoom(g, "a")
	makeRoom(g, "b")
	connect(g, "a", "b", "south", "north")
	// island disconnected from a/b
	makeRoom(g, "x")
	makeRoom(g, "y")
	connect(g, "x", "y", "east", "west")

	positions := Optimize(g)
	if len(positions) != 4 {
		t.Fatalf("got %d positions, want 4", len(positions))
	}

	mainBottom := positions["b"].Y
	if positions["x"].Y < mainBottom+islandGap {
		t.Errorf("island seeded at Y=%v, want at least %v", positions["x"].Y, mainBottom+islandGap)
	}
}

func TestOptimize_EveryRoomPlaced(t *testing.T) {
	g := make(region.Graph)
	for _, id := range []string{"a", "b", "c", "d"} {
		makeRoom(g, id)
	}
	connect(g, "a", "b", "north", "south")
	// c and d are isolated singletons

	positions := Optimize(g)
	for _, id := range g.IDs() {
		if _, ok := positions[id]; !ok {
			t.Errorf("room %s was never placed", id)
		}
	}
}
