// Package service exposes the generator and layout engines over a
// WebSocket endpoint so editors and other tools can request maps
// without linking the engine directly.
package service

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lawnchairsociety/mapforge/internal/config"
	"github.com/lawnchairsociety/mapforge/internal/layout"
	"github.com/lawnchairsociety/mapforge/internal/logger"
	"github.com/lawnchairsociety/mapforge/internal/mapgen"
	"github.com/lawnchairsociety/mapforge/internal/region"
	"github.com/lawnchairsociety/mapforge/internal/regionfile"
	"github.com/lawnchairsociety/mapforge/internal/store"
)

// Service handles WebSocket map generation sessions. The store is
// optional; when present, generated regions are persisted.
type Service struct {
	cfg   config.ServiceConfig
	store *store.Store
}

// New creates a Service. st may be nil to disable persistence.
func New(cfg config.ServiceConfig, st *store.Store) *Service {
	return &Service{cfg: cfg, store: st}
}

// Handler returns the HTTP handler serving the WebSocket endpoint.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleUpgrade)
	return mux
}

// ListenAndServe runs the service on the configured address, blocking
// until the listener fails.
func (s *Service) ListenAndServe() error {
	logger.Info("Service listening", "address", s.cfg.Address)
	return http.ListenAndServe(s.cfg.Address, s.Handler())
}

func (s *Service) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			allowed := s.cfg.IsOriginAllowed(origin, r.Host)
			if !allowed {
				logger.Warning("Connection rejected - origin not allowed",
					"origin", origin,
					"host", r.Host,
					"remote_addr", r.RemoteAddr)
			}
			return allowed
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed", "error", err)
		return
	}

	go s.handleConnection(conn)
}

func (s *Service) handleConnection(conn *websocket.Conn) {
	defer conn.Close()

	if s.cfg.MaxMessageSize > 0 {
		conn.SetReadLimit(s.cfg.MaxMessageSize)
	}

	logger.Info("Client connected", "remote_addr", conn.RemoteAddr().String())

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warning("Client read error", "error", err)
			}
			return
		}

		var req Request
		if err := json.Unmarshal(message, &req); err != nil {
			s.writeError(conn, "", fmt.Sprintf("invalid request: %v", err))
			continue
		}

		resp := s.dispatch(req)
		if err := conn.WriteJSON(resp); err != nil {
			logger.Warning("Client write error", "error", err)
			return
		}
	}
}

func (s *Service) dispatch(req Request) Response {
	switch req.Op {
	case "generate":
		return s.handleGenerate(req)
	case "layout":
		return s.handleLayout(req)
	case "world":
		return s.handleWorld(req)
	default:
		return Response{Op: req.Op, Error: fmt.Sprintf("unknown op %q", req.Op)}
	}
}

func (s *Service) handleGenerate(req Request) Response {
	algo := mapgen.ParseAlgorithm(req.Algorithm)

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	opt := mapgen.Options{
		Rows:        req.Rows,
		Cols:        req.Cols,
		RoomDensity: req.RoomDensity,
		ConnDensity: req.ConnDensity,
	}

	g := mapgen.Generate(algo, opt, rng)
	regionID := mapgen.NewRegionID(algo)

	logger.Info("Generated region",
		"region", regionID,
		"algorithm", algo.String(),
		"rooms", len(g),
		"seed", seed)

	if s.store != nil {
		if err := s.persistRegion(regionID, algo, seed, g); err != nil {
			logger.Error("Failed to persist region", "region", regionID, "error", err)
		}
	}

	return Response{
		Op:     req.Op,
		Region: regionID,
		Rooms:  graphToWire(g),
	}
}

func (s *Service) handleLayout(req Request) Response {
	if len(req.Rooms) == 0 {
		return Response{Op: req.Op, Error: "layout requires rooms"}
	}

	g := wireToGraph(req.Rooms)
	positions := layout.Optimize(g)

	return Response{
		Op:        req.Op,
		Positions: positionsToWire(positions),
	}
}

func (s *Service) handleWorld(req Request) Response {
	if len(req.Regions) == 0 {
		return Response{Op: req.Op, Error: "world requires regions"}
	}

	regions := make(map[string]region.Graph, len(req.Regions))
	for id, rooms := range req.Regions {
		regions[id] = wireToGraph(rooms)
	}

	positions := layout.OptimizeWorld(regions)

	if s.store != nil {
		if err := s.store.SaveWorldLayout(positions); err != nil {
			logger.Error("Failed to persist world layout", "error", err)
		}
	}

	return Response{
		Op:        req.Op,
		Positions: positionsToWire(positions),
	}
}

func (s *Service) persistRegion(regionID string, algo mapgen.Algorithm, seed int64, g region.Graph) error {
	doc := regionfile.FromGraph(regionID, g)
	doc.Algorithm = algo.String()
	doc.Seed = seed
	doc.GeneratedAt = time.Now().UTC()

	data, err := doc.Encode()
	if err != nil {
		return err
	}

	return s.store.SaveRegion(store.RegionRecord{
		ID:        regionID,
		Name:      regionID,
		Algorithm: algo.String(),
		Seed:      seed,
		RoomCount: len(g),
		Data:      string(data),
	})
}

func (s *Service) writeError(conn *websocket.Conn, op, msg string) {
	if err := conn.WriteJSON(Response{Op: op, Error: msg}); err != nil {
		logger.Warning("Client write error", "error", err)
	}
}
