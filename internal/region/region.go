// Package region holds the room-graph data model produced by the
// generators and consumed by the layout solvers.
package region

import (
	"sort"
	"strings"

	"github.com/lawnchairsociety/mapforge/internal/geom"
)

// CellSize is the pixel extent of one generation grid cell. Room
// positions produced by the generators are multiples of it.
const CellSize = 128.0

// Room is a single graph node. Exits map direction names to a target:
// either a room id in the same region or a "region:room" cross-region
// reference.
type Room struct {
	ID          string
	Name        string
	Description string
	Exits       map[string]string
	Properties  map[string]any
	Position    geom.Vec2
}

// NewRoom creates a room with empty exits and properties.
func NewRoom(id, name, description string) *Room {
	return &Room{
		ID:          id,
		Name:        name,
		Description: description,
		Exits:       make(map[string]string),
		Properties:  make(map[string]any),
	}
}

// AddExit sets an exit. Exits back to the room itself are ignored.
func (r *Room) AddExit(direction, target string) {
	if target == r.ID {
		return
	}
	r.Exits[direction] = target
}

// ExitDirections returns the room's exit direction names in sorted order,
// for deterministic traversal.
func (r *Room) ExitDirections() []string {
	dirs := make([]string, 0, len(r.Exits))
	for d := range r.Exits {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs
}

// Graph is a region's rooms keyed by room id. Edges are exits; an edge is
// reciprocal if the target holds an exit back via the opposite direction.
type Graph map[string]*Room

// Add inserts a room into the graph.
func (g Graph) Add(r *Room) {
	g[r.ID] = r
}

// IDs returns all room ids in sorted order.
func (g Graph) IDs() []string {
	ids := make([]string, 0, len(g))
	for id := range g {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IsCrossRegion reports whether an exit target references a room in
// another region.
func IsCrossRegion(target string) bool {
	return strings.Contains(target, ":")
}

// SplitRef splits a "region:room" reference. References without a region
// part return an empty region id and the target unchanged.
func SplitRef(target string) (regionID, roomID string) {
	if i := strings.Index(target, ":"); i >= 0 {
		return target[:i], target[i+1:]
	}
	return "", target
}

// LargestComponent extracts the biggest connected component of g,
// treating internal exits as undirected edges. Ties go to the component
// discovered first when seeding from rooms in sorted-id order. Exits of
// surviving rooms that point at dropped internal rooms are pruned;
// cross-region exits are always kept. An empty graph yields an empty
// graph.
func LargestComponent(g Graph) Graph {
	result := make(Graph)
	if len(g) == 0 {
		return result
	}

	// Undirected adjacency over internal edges only.
	adj := make(map[string][]string, len(g))
	for id, room := range g {
		for _, target := range room.Exits {
			if IsCrossRegion(target) {
				continue
			}
			if _, ok := g[target]; !ok {
				continue
			}
			adj[id] = append(adj[id], target)
			adj[target] = append(adj[target], id)
		}
	}

	visited := make(map[string]bool, len(g))
	var best []string
	for _, seed := range g.IDs() {
		if visited[seed] {
			continue
		}
		component := floodFill(seed, adj, visited)
		if len(component) > len(best) {
			best = component
		}
	}

	for _, id := range best {
		result[id] = g[id]
	}
	for _, room := range result {
		for dir, target := range room.Exits {
			if IsCrossRegion(target) {
				continue
			}
			if _, ok := result[target]; !ok {
				delete(room.Exits, dir)
			}
		}
	}
	return result
}

func floodFill(seed string, adj map[string][]string, visited map[string]bool) []string {
	component := []string{seed}
	visited[seed] = true
	queue := []string{seed}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range adj[current] {
			if visited[next] {
				continue
			}
			visited[next] = true
			component = append(component, next)
			queue = append(queue, next)
		}
	}
	return component
}

// Center translates every room so the bounding-box center of the graph
// sits at the origin. The applied offset is snapped to half the cell
// size, which makes repeated calls a no-op. Empty graphs are untouched.
func Center(g Graph) {
	if len(g) == 0 {
		return
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
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	center := min.Add(max).Scale(0.5)
	offset := center.Neg().Snap(CellSize / 2)
	if offset.IsZero() {
		return
	}
	for _, room := range g {
		room.Position = room.Position.Add(offset)
	}
}
