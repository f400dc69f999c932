package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lawnchairsociety/mapforge/internal/config"
	"github.com/lawnchairsociety/mapforge/internal/logger"
	"github.com/lawnchairsociety/mapforge/internal/service"
	"github.com/lawnchairsociety/mapforge/internal/store"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to config file")
	address := flag.String("address", "", "Listen address (overrides config)")
	noStore := flag.Bool("no-store", false, "Disable region persistence")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: using default config: %v\n", err)
	}
	if *address != "" {
		cfg.Service.Address = *address
	}

	logger.Initialize(cfg.Logging)
	logger.Info("Starting mapforge daemon")

	var st *store.Store
	if !*noStore {
		st, err = store.Open(cfg.Store.Driver, cfg.Store.DSN)
		if err != nil {
			logger.Error("Failed to open store", "driver", cfg.Store.Driver, "error", err)
			os.Exit(1)
		}
		defer st.Close()
		logger.Info("Store opened", "driver", cfg.Store.Driver)
	}

	svc := service.New(cfg.Service, st)

	errCh := make(chan error, 1)
	go func() {
		errCh <- svc.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Error("Service failed", "error", err)
		os.Exit(1)
	case sig := <-sigCh:
		logger.Info("Shutting down", "signal", sig.String())
	}
}
