package service

import (
	"github.com/lawnchairsociety/mapforge/internal/geom"
	"github.com/lawnchairsociety/mapforge/internal/region"
)

// RoomWire is the JSON representation of a room on the service protocol.
type RoomWire struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Exits       map[string]string `json:"exits"`
	Properties  map[string]any    `json:"properties,omitempty"`
	Position    [2]float64        `json:"position"`
}

// Request is a single client message.
type Request struct {
	Op          string                         `json:"op"`
	Algorithm   string                         `json:"algorithm,omitempty"`
	Rows        int                            `json:"rows,omitempty"`
	Cols        int                            `json:"cols,omitempty"`
	RoomDensity float64                        `json:"room_density,omitempty"`
	ConnDensity float64                        `json:"conn_density,omitempty"`
	Seed        int64                          `json:"seed,omitempty"`
	Rooms       map[string]RoomWire            `json:"rooms,omitempty"`
	Regions     map[string]map[string]RoomWire `json:"regions,omitempty"`
}

// Response is a single server message. Exactly one of the payload
// fields is populated depending on the op.
type Response struct {
	Op        string                `json:"op"`
	Region    string                `json:"region,omitempty"`
	Rooms     map[string]RoomWire   `json:"rooms,omitempty"`
	Positions map[string][2]float64 `json:"positions,omitempty"`
	Error     string                `json:"error,omitempty"`
}

func graphToWire(g region.Graph) map[string]RoomWire {
	rooms := make(map[string]RoomWire, len(g))
	for id, room := range g {
		rooms[id] = RoomWire{
			Name:        room.Name,
			Description: room.Description,
			Exits:       room.Exits,
			Properties:  room.Properties,
			Position:    [2]float64{room.Position.X, room.Position.Y},
		}
	}
	return rooms
}

func wireToGraph(rooms map[string]RoomWire) region.Graph {
	g := make(region.Graph, len(rooms))
	for id, rw := range rooms {
		room := &region.Room{
			ID:          id,
			Name:        rw.Name,
			Description: rw.Description,
			Exits:       rw.Exits,
			Properties:  rw.Properties,
			Position:    geom.Vec2{X: rw.Position[0], Y: rw.Position[1]},
		}
		if room.Exits == nil {
			room.Exits = make(map[string]string)
		}
		g.Add(room)
	}
	return g
}

func positionsToWire(positions map[string]geom.Vec2) map[string][2]float64 {
	out := make(map[string][2]float64, len(positions))
	for id, pos := range positions {
		out[id] = [2]float64{pos.X, pos.Y}
	}
	return out
}
