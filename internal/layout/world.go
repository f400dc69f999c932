package layout

import (
	"math"
	"sort"

	"github.com/lawnchairsociety/mapforge/internal/direction"
	"github.com/lawnchairsociety/mapforge/internal/geom"
	"github.com/lawnchairsociety/mapforge/internal/region"
)

const (
	// regionPad is added to each region's bounding extent.
	regionPad = 240.0
	// minRegionSize floors the bounding size of empty or tiny regions.
	minRegionSize = 200.0
	// regionGap separates the bounding rectangles of linked regions.
	regionGap = 60.0
	// collisionMargin shrinks rectangles before intersection probing, so
	// regions may sit flush but never visually overlap.
	collisionMargin = 10.0
	// islandGutter separates placement islands horizontally.
	islandGutter = 400.0
)

// HomeRegionID seeds the first placement island when present.
const HomeRegionID = "home"

// candidate rotations away from an edge's direction, tried in order.
var candidateAngles = []float64{0, 30, -30, 45, -45, 90, -90}

// macroNode is a region abstracted to a bounding box and its outgoing
// inter-region edges. Nodes live only for the duration of one solve.
type macroNode struct {
	id string
	// size is the room extent plus padding, floored at minRegionSize.
	size geom.Vec2
	// centerOff is the bounding-box center in region-local coordinates,
	// subtracted at the end so the emitted position is the region origin.
	centerOff geom.Vec2
}

type macroEdge struct {
	to  string
	dir direction.Direction
}

// OptimizeWorld places every region on the world plane. Each
// region-connectivity island is laid out by BFS over inter-region edges
// with multi-angle collision probing against already-placed bounding
// rectangles; separate islands are tiled side by side. The returned
// positions are region origins, usable directly for macro rendering.
func OptimizeWorld(regions map[string]region.Graph) map[string]geom.Vec2 {
	out := make(map[string]geom.Vec2, len(regions))
	if len(regions) == 0 {
		return out
	}

	ids := make([]string, 0, len(regions))
	for id := range regions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	nodes := make(map[string]*macroNode, len(regions))
	for _, id := range ids {
		nodes[id] = newMacroNode(id, regions[id])
	}
	adj := macroAdjacency(ids, regions)

	centers := make(map[string]geom.Vec2, len(regions))
	var rects []geom.Rect
	placeRect := func(id string, center geom.Vec2) {
		centers[id] = center
		rects = append(rects, geom.Rect{Center: center, Size: nodes[id].size})
	}

	startX := 0.0
	for len(centers) < len(nodes) {
		seed := ""
		if _, ok := centers[HomeRegionID]; !ok && nodes[HomeRegionID] != nil {
			seed = HomeRegionID
		} else {
			for _, id := range ids {
				if _, ok := centers[id]; !ok {
					seed = id
					break
				}
			}
		}

		placeRect(seed, geom.Vec2{X: startX + nodes[seed].size.X/2})
		queue := []string{seed}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, edge := range adj[cur] {
				if _, ok := centers[edge.to]; ok {
					continue
				}
				placeRect(edge.to, probePlacement(nodes[cur], nodes[edge.to], centers[cur], edge.dir, rects))
				queue = append(queue, edge.to)
			}
		}

		right := startX
		for _, r := range rects {
			if r.Max().X > right {
				right = r.Max().X
			}
		}
		startX = right + islandGutter
	}

	for _, id := range ids {
		out[id] = centers[id].Sub(nodes[id].centerOff)
	}
	return out
}

// probePlacement finds a center for the next region at the separation
// distance along the edge direction, rotating through the candidate
// angles until the margin-shrunk rectangle clears everything placed.
// When every angle collides, placement escalates outward instead.
func probePlacement(from, to *macroNode, fromCenter geom.Vec2, dir direction.Direction, placed []geom.Rect) geom.Vec2 {
	v := dir.Vector().Normalize()
	dist := separation(from, to, v)
	for _, deg := range candidateAngles {
		cand := fromCenter.Add(v.Rotate(deg * math.Pi / 180).Scale(dist))
		r := geom.Rect{Center: cand, Size: to.size}.Shrink(collisionMargin)
		if !intersectsAny(r, placed) {
			return cand
		}
	}
	return forcedPlacement(fromCenter, v, dist, to.size, placed)
}

// forcedPlacement walks outward along the unrotated direction in
// half-distance steps starting at 1.5× the separation, accepting the
// first multiple whose margin-shrunk rectangle clears everything
// placed. Each placed rectangle can block only a handful of multiples,
// so the step limit scales with the placed count; the final candidate
// is returned regardless so the solve always terminates.
func forcedPlacement(fromCenter, v geom.Vec2, dist float64, size geom.Vec2, placed []geom.Rect) geom.Vec2 {
	cand := fromCenter.Add(v.Scale(dist * 1.5))
	limit := 4*len(placed) + 4
	for i := 0; i < limit; i++ {
		mult := 1.5 + 0.5*float64(i)
		cand = fromCenter.Add(v.Scale(dist * mult))
		r := geom.Rect{Center: cand, Size: size}.Shrink(collisionMargin)
		if !intersectsAny(r, placed) {
			return cand
		}
	}
	return cand
}

// separation returns the minimum center distance along v that keeps the
// two bounding boxes apart, plus the inter-region gap.
func separation(a, b *macroNode, v geom.Vec2) float64 {
	dx := (a.size.X + b.size.X) / 2 * math.Abs(v.X)
	dy := (a.size.Y + b.size.Y) / 2 * math.Abs(v.Y)
	d := math.Max(dx, dy)
	if d == 0 {
		d = minRegionSize
	}
	return d + regionGap
}

func intersectsAny(r geom.Rect, placed []geom.Rect) bool {
	for _, o := range placed {
		if r.Intersects(o) {
			return true
		}
	}
	return false
}

// newMacroNode computes a region's bounding size and center offset.
func newMacroNode(id string, g region.Graph) *macroNode {
	node := &macroNode{id: id, size: geom.Vec2{X: minRegionSize, Y: minRegionSize}}
	if len(g) == 0 {
		return node
	}
	first := true
	var min, max geom.Vec2
	for _, room := range g {
		p := room.Position
		if first {
			min, max = p, p
			first = false
			continue
		}
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	node.size = geom.Vec2{
		X: math.Max(max.X-min.X+regionPad, minRegionSize),
		Y: math.Max(max.Y-min.Y+regionPad, minRegionSize),
	}
	node.centerOff = min.Add(max).Scale(0.5)
	return node
}

// macroAdjacency derives the undirected macro-edge lists from
// cross-region exits. Edges back to the owning region are excluded, and
// each neighbor appears once per region with the first direction found
// in sorted room/exit order.
func macroAdjacency(ids []string, regions map[string]region.Graph) map[string][]macroEdge {
	adj := make(map[string][]macroEdge, len(ids))
	add := func(from, to string, dir direction.Direction) {
		for _, e := range adj[from] {
			if e.to == to {
				return
			}
		}
		adj[from] = append(adj[from], macroEdge{to: to, dir: dir})
	}

	for _, id := range ids {
		g := regions[id]
		for _, roomID := range g.IDs() {
			room := g[roomID]
			for _, dirName := range room.ExitDirections() {
				target := room.Exits[dirName]
				if !region.IsCrossRegion(target) {
					continue
				}
				toRegion, _ := region.SplitRef(target)
				if toRegion == id {
					continue
				}
				if _, ok := regions[toRegion]; !ok {
					continue
				}
				dir, ok := direction.Parse(dirName)
				if !ok {
					continue
				}
				add(id, toRegion, dir)
				add(toRegion, id, dir.Opposite())
			}
		}
	}
	return adj
}
