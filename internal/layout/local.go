// Package layout arranges rooms within a region, and whole regions
// within a world, on a 2D plane without overlap. Both solvers are
// deterministic: identical input produces identical positions.
package layout

import (
	"github.com/lawnchairsociety/mapforge/internal/direction"
	"github.com/lawnchairsociety/mapforge/internal/geom"
	"github.com/lawnchairsociety/mapforge/internal/region"
)

const (
	// Spacing is the pixel distance between linked rooms.
	Spacing = 220.0
	// GridSnap is the pixel grid every placed room snaps to.
	GridSnap = 20.0
	// islandGap separates disjoint room islands vertically.
	islandGap = Spacing * 2
)

// StartNodeProperty marks the room a region's layout grows from.
const StartNodeProperty = "is_start_node"

// Optimize places every room of a region by BFS from the start room:
// the room flagged is_start_node, or the first room in sorted-id order.
// Each visited exit pushes its target to the parent position plus the
// exit direction's vector scaled by Spacing, snapped to the pixel grid.
// Rooms unreached from the start seed their own BFS below everything
// placed so far, so disjoint islands stack without visual overlap.
func Optimize(g region.Graph) map[string]geom.Vec2 {
	positions := make(map[string]geom.Vec2, len(g))
	if len(g) == 0 {
		return positions
	}

	ids := g.IDs()
	start := ids[0]
	for _, id := range ids {
		if flag, ok := g[id].Properties[StartNodeProperty].(bool); ok && flag {
			start = id
			break
		}
	}

	bottom := 0.0
	place := func(seed string, origin geom.Vec2) {
		positions[seed] = origin.Snap(GridSnap)
		queue := []string{seed}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			if positions[cur].Y > bottom {
				bottom = positions[cur].Y
			}
			for _, dirName := range g[cur].ExitDirections() {
				target := g[cur].Exits[dirName]
				if region.IsCrossRegion(target) {
					continue
				}
				if _, ok := g[target]; !ok {
					continue
				}
				if _, seen := positions[target]; seen {
					continue
				}
				dir, ok := direction.Parse(dirName)
				if !ok {
					continue
				}
				pos := positions[cur].Add(dir.Vector().Scale(Spacing)).Snap(GridSnap)
				positions[target] = pos
				queue = append(queue, target)
			}
		}
	}

	place(start, geom.Vec2{})
	for _, id := range ids {
		if _, ok := positions[id]; ok {
			continue
		}
		place(id, geom.Vec2{Y: bottom + islandGap})
	}
	return positions
}
