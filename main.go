package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"touchviz/internal/config"
	"touchviz/internal/dataset"
	"touchviz/internal/domain"
	"touchviz/internal/eventbus"
	"touchviz/internal/selection"
	"touchviz/internal/touchpad"
	"touchviz/internal/ui"
)

func main() {
	// Parse command line arguments
	var configPath, nodesPath, edgesPath, touchpadAddr string
	flag.StringVar(&configPath, "config", "", "Config file (default: ./"+config.FileName+" or the user config)")
	flag.StringVar(&nodesPath, "nodes", "", "Nodes CSV with id,x,y[,label] columns")
	flag.StringVar(&edgesPath, "edges", "", "Edges CSV with source,target columns")
	flag.StringVar(&touchpadAddr, "touchpad", "", "Serve touchpads on this address, e.g. :8765")
	flag.Parse()

	// Set up logging
	logFile, err := os.OpenFile("touchviz.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	bus := eventbus.New()
	_ = bus.Bind(eventbus.EventConfigLoaded, eventbus.On("main.config", func(e eventbus.DomainEvent) {
		if ev, ok := e.(domain.ConfigLoadedEvent); ok {
			log.Printf("Config loaded from %q with data keys %v", ev.Path, ev.DataKeys)
		}
	}))

	configSvc := config.NewConfigServiceWithBus(bus)
	cfg, err := loadConfig(configSvc, configPath)
	if err != nil {
		fatal(err)
	}

	// Flags win over the config file
	if nodesPath != "" {
		cfg.Dataset.Nodes = nodesPath
		cfg.Dataset.Edges = edgesPath
	}
	if touchpadAddr != "" {
		cfg.Touchpad.Enabled = true
		cfg.Touchpad.Addr = touchpadAddr
	}

	graph, err := loadGraph(cfg.Dataset)
	if err != nil {
		fatal(err)
	}
	log.Printf("Loaded %d nodes", graph.Len())

	// Context objects shared by every view
	ids := selection.NewIDAllocator(cfg.DataKeys...)
	colors := selection.NewColorMapper(cfg.PaletteColors())

	uiModel := ui.NewModel(cfg, graph, ids, colors, bus)
	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithMouseCellMotion())
	uiModel.SetProgram(p)

	if cfg.Touchpad.Enabled {
		lo, hi := graph.Bounds()
		aspect := 1.0
		if hi.Y > lo.Y {
			aspect = (hi.X - lo.X) / (hi.Y - lo.Y)
		}
		dataKeys := cfg.DataKeys
		srv := touchpad.NewServer(
			// Touchpad events are handled on the UI goroutine
			func(e domain.DomainEvent) { p.Send(ui.EventMsg{Event: e}) },
			func() touchpad.PadInfo { return touchpad.PadInfo{DataKeys: dataKeys, Aspect: aspect} },
		)
		go func() {
			if err := srv.ListenAndServe(ctx, cfg.Touchpad.Addr); err != nil {
				log.Printf("Touchpad server stopped: %v", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")
	cancel()
}

// loadConfig reads the named config file, or ./.touchviz.toml when present, or the user config
func loadConfig(configSvc config.ConfigService, path string) (*config.Config, error) {
	if path != "" {
		return configSvc.LoadFromPath(path)
	}
	if wd, err := os.Getwd(); err == nil {
		local := filepath.Join(wd, config.FileName)
		if _, err := os.Stat(local); err == nil {
			return configSvc.LoadFromPath(local)
		}
	}
	return configSvc.Load()
}

// loadGraph loads the configured dataset, or the demo graph when none is set
func loadGraph(ds config.DatasetSettings) (*dataset.Graph, error) {
	if ds.Nodes == "" {
		if ds.Edges != "" {
			return nil, errors.New("edges given without nodes")
		}
		log.Printf("No dataset configured, using the demo graph")
		return dataset.Demo(), nil
	}
	return dataset.Load(ds.Nodes, ds.Edges)
}

func fatal(err error) {
	log.Printf("Fatal: %v", err)
	fmt.Fprintf(os.Stderr, "touchviz: %v\n", err)
	os.Exit(1)
}
