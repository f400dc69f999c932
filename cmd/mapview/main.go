package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/lawnchairsociety/mapforge/internal/region"
	"github.com/lawnchairsociety/mapforge/internal/regionfile"
)

// GridPos is a room's discrete position in the render grid.
type GridPos struct {
	X, Y int
}

func main() {
	inputFile := flag.String("input", "", "Path to a region YAML file")
	outputFile := flag.String("output", "", "Output file (empty for stdout)")
	showLegend := flag.Bool("legend", true, "Show legend")
	showRooms := flag.Bool("rooms", false, "List rooms with exits")
	flag.Parse()

	if *inputFile == "" {
		fmt.Fprintln(os.Stderr, "Error: --input is required")
		flag.Usage()
		os.Exit(1)
	}

	doc, err := regionfile.Load(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	g := doc.Graph()

	var output strings.Builder
	output.WriteString(fmt.Sprintf("Region: %s (%d rooms", doc.Region, len(g)))
	if doc.Algorithm != "" {
		output.WriteString(fmt.Sprintf(", algorithm: %s, seed: %d", doc.Algorithm, doc.Seed))
	}
	output.WriteString(")\n")
	output.WriteString(strings.Repeat("=", 60) + "\n\n")

	renderRegion(&output, g)

	if *showRooms {
		output.WriteString("\nRoom Details:\n")
		renderRoomList(&output, g)
	}

	if *showLegend {
		output.WriteString(getLegend())
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(output.String()), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Map written to %s\n", *outputFile)
	} else {
		fmt.Print(output.String())
	}
}

// gridPositions quantizes room positions into discrete grid cells by
// ranking the distinct coordinate values on each axis. This works for
// both generator output and optimizer output, whatever the spacing.
func gridPositions(g region.Graph) map[string]GridPos {
	xs := distinctCoords(g, func(r *region.Room) float64 { return r.Position.X })
	ys := distinctCoords(g, func(r *region.Room) float64 { return r.Position.Y })

	xIndex := make(map[int]int, len(xs))
	for i, v := range xs {
		xIndex[v] = i
	}
	yIndex := make(map[int]int, len(ys))
	for i, v := range ys {
		yIndex[v] = i
	}

	positions := make(map[string]GridPos, len(g))
	for id, room := range g {
		positions[id] = GridPos{
			X: xIndex[int(math.Round(room.Position.X))],
			Y: yIndex[int(math.Round(room.Position.Y))],
		}
	}
	return positions
}

func distinctCoords(g region.Graph, coord func(*region.Room) float64) []int {
	seen := make(map[int]bool)
	var values []int
	for _, room := range g {
		v := int(math.Round(coord(room)))
		if !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	sort.Ints(values)
	return values
}

func renderRegion(output *strings.Builder, g region.Graph) {
	if len(g) == 0 {
		output.WriteString("(empty region)\n")
		return
	}

	positions := gridPositions(g)

	maxX, maxY := 0, 0
	for _, pos := range positions {
		if pos.X > maxX {
			maxX = pos.X
		}
		if pos.Y > maxY {
			maxY = pos.Y
		}
	}

	// Each room occupies an even canvas cell; the odd cells between
	// rooms carry the connection markers.
	width := maxX*2 + 1
	height := maxY*2 + 1
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for id, room := range g {
		pos := positions[id]
		canvas[pos.Y*2][pos.X*2] = roomSymbol(room)

		for _, dir := range room.ExitDirections() {
			target := room.Exits[dir]
			if region.IsCrossRegion(target) {
				continue
			}
			tpos, ok := positions[target]
			if !ok {
				continue
			}
			dx := tpos.X - pos.X
			dy := tpos.Y - pos.Y
			if abs(dx) > 1 || abs(dy) > 1 || (dx == 0 && dy == 0) {
				continue
			}
			mx := pos.X*2 + dx
			my := pos.Y*2 + dy
			canvas[my][mx] = connectionSymbol(dx, dy, canvas[my][mx])
		}
	}

	for _, row := range canvas {
		output.WriteString(strings.TrimRight(string(row), " ") + "\n")
	}
}

func roomSymbol(room *region.Room) rune {
	if room.Properties != nil {
		if v, ok := room.Properties["is_start_node"]; ok {
			if b, ok := v.(bool); ok && b {
				return '@'
			}
		}
	}
	for _, dir := range room.ExitDirections() {
		if region.IsCrossRegion(room.Exits[dir]) {
			return 'X'
		}
	}
	return '#'
}

func connectionSymbol(dx, dy int, existing rune) rune {
	var symbol rune
	switch {
	case dy == 0:
		symbol = '-'
	case dx == 0:
		symbol = '|'
	case dx == dy:
		symbol = '\\'
	default:
		symbol = '/'
	}
	// Crossing diagonals collapse to a single marker.
	if existing != ' ' && existing != symbol {
		return '+'
	}
	return symbol
}

func renderRoomList(output *strings.Builder, g region.Graph) {
	for _, id := range g.IDs() {
		room := g[id]
		var exitStrs []string
		for _, dir := range room.ExitDirections() {
			exitStrs = append(exitStrs, fmt.Sprintf("%s->%s", dir, room.Exits[dir]))
		}
		line := fmt.Sprintf("  %-24s %-28s", id, truncate(room.Name, 28))
		if len(exitStrs) > 0 {
			line += " exits: " + strings.Join(exitStrs, ", ")
		}
		output.WriteString(line + "\n")
	}
}

func getLegend() string {
	return `
Legend:
  #  room
  @  start room
  X  room with a cross-region exit
  -  east/west link
  |  north/south link
  \  southeast/northwest link
  /  southwest/northeast link
  +  crossing links
`
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
