package service

import (
	"encoding/json"
	"testing"

	"github.com/lawnchairsociety/mapforge/internal/config"
	"github.com/lawnchairsociety/mapforge/internal/geom"
	"github.com/lawnchairsociety/mapforge/internal/region"
)

func testConfig() config.ServiceConfig {
	return config.ServiceConfig{Address: "127.0.0.1:0", MaxMessageSize: 1 << 20}
}

func TestGraphToWire(t *testing.T) {
	g := make(region.Graph)
	r := region.NewRoom("room_0_0", "Chamber", "")
	r.Position = geom.Vec2{X: 128, Y: -64}
	r.AddExit("east", "room_1_0")
	r.AddExit("north", "town:gate")
	r.Properties["is_start_node"] = true
	g.Add(r)

	rooms := graphToWire(g)
	rw, ok := rooms["room_0_0"]
	if !ok {
		t.Fatal("room missing from wire form")
	}
	if rw.Name != "Chamber" {
		t.Errorf("Name = %q", rw.Name)
	}
	if rw.Position != [2]float64{128, -64} {
		t.Errorf("Position = %v", rw.Position)
	}
	if rw.Exits["east"] != "room_1_0" || rw.Exits["north"] != "town:gate" {
		t.Errorf("Exits = %v", rw.Exits)
	}
}

func TestWireToGraph_RoundTrip(t *testing.T) {
	g := make(region.Graph)
	a := region.NewRoom("a", "A", "desc")
	a.Position = geom.Vec2{X: 20, Y: 40}
	a.AddExit("south", "b")
	b := region.NewRoom("b", "B", "")
	b.AddExit("north", "a")
	g.Add(a)
	g.Add(b)

	back := wireToGraph(graphToWire(g))
	if len(back) != 2 {
		t.Fatalf("round trip lost rooms: %d", len(back))
	}
	if back["a"].Position != (geom.Vec2{X: 20, Y: 40}) {
		t.Errorf("position = %v", back["a"].Position)
	}
	if back["a"].Exits["south"] != "b" || back["b"].Exits["north"] != "a" {
		t.Error("exits lost in round trip")
	}
	if back["a"].Description != "desc" {
		t.Errorf("description = %q", back["a"].Description)
	}
}

func TestWireToGraph_NilExits(t *testing.T) {
	g := wireToGraph(map[string]RoomWire{"a": {Name: "A"}})
	if g["a"].Exits == nil {
		t.Error("wireToGraph should initialize nil exit maps")
	}
}

func TestRequest_Unmarshal(t *testing.T) {
	payload := `{
		"op": "generate",
		"algorithm": "cavern",
		"rows": 12,
		"cols": 16,
		"room_density": 0.55,
		"conn_density": 0.3,
		"seed": 777
	}`
	var req Request
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if req.Op != "generate" || req.Algorithm != "cavern" {
		t.Errorf("req = %+v", req)
	}
	if req.Rows != 12 || req.Cols != 16 || req.Seed != 777 {
		t.Errorf("req numbers = %+v", req)
	}
	if req.RoomDensity != 0.55 || req.ConnDensity != 0.3 {
		t.Errorf("req densities = %+v", req)
	}
}

func TestResponse_ErrorOmitsPayload(t *testing.T) {
	data, err := json.Marshal(Response{Op: "layout", Error: "layout requires rooms"})
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if s != `{"op":"layout","error":"layout requires rooms"}` {
		t.Errorf("unexpected encoding: %s", s)
	}
}

func TestDispatch_UnknownOp(t *testing.T) {
	svc := New(testConfig(), nil)
	resp := svc.dispatch(Request{Op: "teleport"})
	if resp.Error == "" {
		t.Error("unknown op should produce an error response")
	}
}

func TestDispatch_Generate(t *testing.T) {
	svc := New(testConfig(), nil)
	resp := svc.dispatch(Request{
		Op:        "generate",
		Algorithm: "maze",
		Rows:      4,
		Cols:      4,
		Seed:      7,
	})
	if resp.Error != "" {
		t.Fatalf("generate error: %s", resp.Error)
	}
	if len(resp.Rooms) != 16 {
		t.Errorf("generate returned %d rooms, want 16", len(resp.Rooms))
	}
	if resp.Region == "" {
		t.Error("generate response missing region id")
	}
}

func TestDispatch_Layout(t *testing.T) {
	svc := New(testConfig(), nil)
	rooms := map[string]RoomWire{
		"a": {Name: "A", Exits: map[string]string{"east": "b"}},
		"b": {Name: "B", Exits: map[string]string{"west": "a"}},
	}
	resp := svc.dispatch(Request{Op: "layout", Rooms: rooms})
	if resp.Error != "" {
		t.Fatalf("layout error: %s", resp.Error)
	}
	if len(resp.Positions) != 2 {
		t.Fatalf("layout returned %d positions, want 2", len(resp.Positions))
	}
	if resp.Positions["b"][0] <= resp.Positions["a"][0] {
		t.Errorf("east neighbor not placed east: a=%v b=%v", resp.Positions["a"], resp.Positions["b"])
	}
}

func TestDispatch_Layout_RequiresRooms(t *testing.T) {
	svc := New(testConfig(), nil)
	resp := svc.dispatch(Request{Op: "layout"})
	if resp.Error == "" {
		t.Error("layout without rooms should error")
	}
}

func TestDispatch_World(t *testing.T) {
	svc := New(testConfig(), nil)
	regions := map[string]map[string]RoomWire{
		"a": {"r1": {Name: "R1", Exits: map[string]string{"east": "b:r2"}}},
		"b": {"r2": {Name: "R2"}},
	}
	resp := svc.dispatch(Request{Op: "world", Regions: regions})
	if resp.Error != "" {
		t.Fatalf("world error: %s", resp.Error)
	}
	if len(resp.Positions) != 2 {
		t.Fatalf("world returned %d positions, want 2", len(resp.Positions))
	}
	if resp.Positions["b"][0] <= resp.Positions["a"][0] {
		t.Errorf("east-linked region not placed east: a=%v b=%v", resp.Positions["a"], resp.Positions["b"])
	}
}
