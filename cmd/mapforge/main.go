package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/lawnchairsociety/mapforge/internal/config"
	"github.com/lawnchairsociety/mapforge/internal/layout"
	"github.com/lawnchairsociety/mapforge/internal/mapgen"
	"github.com/lawnchairsociety/mapforge/internal/regionfile"
	"github.com/lawnchairsociety/mapforge/internal/store"
)

func main() {
	algorithm := flag.String("algorithm", "grid", "Generation algorithm (grid, maze, cavern, sector, target, highway, river, spiral, hub, crescent, ring, fractal, house, town, city, castle)")
	rows := flag.Int("rows", 10, "Grid rows")
	cols := flag.Int("cols", 10, "Grid columns")
	roomDensity := flag.Float64("room-density", 0.6, "Room density (0.0-1.0)")
	connDensity := flag.Float64("conn-density", 0.4, "Connection density (0.0-1.0)")
	seed := flag.Int64("seed", 0, "Generation seed (0 for random)")
	preset := flag.String("preset", "", "Named preset from the config file (overrides algorithm flags)")
	configPath := flag.String("config", "config.yaml", "Path to config file")
	output := flag.String("output", "", "Output file (default: {region}.yaml)")
	applyLayout := flag.Bool("layout", false, "Run the layout optimizer on the generated region")
	save := flag.Bool("save", false, "Save the region to the configured store")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: using default config: %v\n", err)
	}

	opt := mapgen.Options{
		Rows:        *rows,
		Cols:        *cols,
		RoomDensity: *roomDensity,
		ConnDensity: *connDensity,
	}
	algoName := *algorithm
	genSeed := *seed

	if *preset != "" {
		p, ok := cfg.Presets[*preset]
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown preset %q\n", *preset)
			os.Exit(1)
		}
		algoName = p.Algorithm
		opt = mapgen.Options{
			Rows:        p.Rows,
			Cols:        p.Cols,
			RoomDensity: p.RoomDensity,
			ConnDensity: p.ConnDensity,
		}
		if genSeed == 0 {
			genSeed = p.Seed
		}
	}

	if genSeed == 0 {
		genSeed = time.Now().UnixNano()
	}

	algo := mapgen.ParseAlgorithm(algoName)
	rng := rand.New(rand.NewSource(genSeed))

	g := mapgen.Generate(algo, opt, rng)
	regionID := mapgen.NewRegionID(algo)

	fmt.Printf("Generated region '%s' with %d rooms (algorithm: %s, seed: %d)\n",
		regionID, len(g), algo, genSeed)

	if *applyLayout {
		positions := layout.Optimize(g)
		for id, pos := range positions {
			g[id].Position = pos
		}
		fmt.Printf("Applied layout to %d rooms\n", len(positions))
	}

	doc := regionfile.FromGraph(regionID, g)
	doc.Algorithm = algo.String()
	doc.Seed = genSeed
	doc.GeneratedAt = time.Now().UTC()

	outPath := *output
	if outPath == "" {
		outPath = regionID + ".yaml"
	}
	if err := doc.WriteFile(outPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Region written to %s\n", outPath)

	if *save {
		if err := saveRegion(cfg, regionID, algo, genSeed, len(g), doc); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Region saved to %s store\n", cfg.Store.Driver)
	}
}

func saveRegion(cfg *config.Config, regionID string, algo mapgen.Algorithm, seed int64, roomCount int, doc *regionfile.Document) error {
	st, err := store.Open(cfg.Store.Driver, cfg.Store.DSN)
	if err != nil {
		return err
	}
	defer st.Close()

	data, err := doc.Encode()
	if err != nil {
		return err
	}

	return st.SaveRegion(store.RegionRecord{
		ID:        regionID,
		Name:      regionID,
		Algorithm: algo.String(),
		Seed:      seed,
		RoomCount: roomCount,
		Data:      string(data),
	})
}
