// Package regionfile encodes generated regions as YAML documents so
// they can be written to disk, stored, and loaded back by the tools.
package regionfile

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/mapforge/internal/geom"
	"github.com/lawnchairsociety/mapforge/internal/region"
)

// RoomDoc is the YAML representation of a single room.
type RoomDoc struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	Exits       map[string]string `yaml:"exits"`
	Properties  map[string]any    `yaml:"properties,omitempty"`
	Position    []float64         `yaml:"position,flow"`
}

// Document is the YAML representation of a generated region.
type Document struct {
	Region      string              `yaml:"region"`
	Name        string              `yaml:"name,omitempty"`
	Algorithm   string              `yaml:"algorithm,omitempty"`
	Seed        int64               `yaml:"seed,omitempty"`
	GeneratedAt time.Time           `yaml:"generated_at,omitempty"`
	Rooms       map[string]*RoomDoc `yaml:"rooms"`
}

// FromGraph builds a Document from a room graph.
func FromGraph(regionID string, g region.Graph) *Document {
	doc := &Document{
		Region: regionID,
		Rooms:  make(map[string]*RoomDoc, len(g)),
	}
	for _, id := range g.IDs() {
		room := g[id]
		doc.Rooms[id] = &RoomDoc{
			Name:        room.Name,
			Description: room.Description,
			Exits:       room.Exits,
			Properties:  room.Properties,
			Position:    []float64{room.Position.X, room.Position.Y},
		}
	}
	return doc
}

// Graph reconstructs the room graph described by the document.
func (d *Document) Graph() region.Graph {
	g := make(region.Graph, len(d.Rooms))
	for id, rd := range d.Rooms {
		room := &region.Room{
			ID:          id,
			Name:        rd.Name,
			Description: rd.Description,
			Exits:       rd.Exits,
			Properties:  rd.Properties,
		}
		if room.Exits == nil {
			room.Exits = make(map[string]string)
		}
		if len(rd.Position) == 2 {
			room.Position = geom.Vec2{X: rd.Position[0], Y: rd.Position[1]}
		}
		g.Add(room)
	}
	return g
}

// Encode marshals the document to YAML.
func (d *Document) Encode() ([]byte, error) {
	data, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encoding region %s: %w", d.Region, err)
	}
	return data, nil
}

// WriteFile encodes the document and writes it to path.
func (d *Document) WriteFile(path string) error {
	data, err := d.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing region file: %w", err)
	}
	return nil
}

// Decode parses a YAML region document.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding region document: %w", err)
	}
	return &doc, nil
}

// Load reads and parses a region document from path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading region file: %w", err)
	}
	return Decode(data)
}
