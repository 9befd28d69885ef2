package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/blueprint/autotile"
	"github.com/milk9111/blueprint/config"
	"github.com/milk9111/blueprint/editor"
	"github.com/milk9111/blueprint/persist"
)

func openStore(path string) (persist.Store, error) {
	if path == "memory" {
		return persist.NewMemoryStore(), nil
	}
	return persist.OpenSQLite(path)
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	configPath := flag.String("config", "blueprint.yaml", "YAML settings file")
	storePath := flag.String("store", "", "sqlite store path, or \"memory\" (overrides config)")
	data := flag.String("data", "", "share link or payload merged into storage on start")
	autoMapPath := flag.String("autotile-map", "", "Optional JSON file with 47-tile indices in mask order")
	flag.Parse()

	log.Println("Blueprint starting...")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Using default settings: %v", err)
	}
	if *storePath != "" {
		cfg.Store = *storePath
	}
	if *autoMapPath != "" {
		cfg.TileMap = *autoMapPath
	}

	var table autotile.Table
	if cfg.TileMap != "" {
		table, err = autotile.LoadTable(cfg.TileMap)
		if err != nil {
			log.Printf("Failed to load autotile map: %v", err)
		} else {
			log.Printf("Loaded autotile map with %d entries", len(table))
		}
	}

	store, err := openStore(cfg.Store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	if *data != "" {
		keys, err := persist.ApplyShare(store, *data, persist.Bounds{Width: cfg.Width, Height: cfg.Height})
		if err != nil {
			log.Printf("Ignoring share payload: %v", err)
		} else if len(keys) > 0 {
			log.Printf("Applied shared fields %v", keys)
		}
	}

	session := editor.New(store, editor.OptionsFromConfig(cfg, table))
	if cfg.InboxDir != "" {
		if err := os.MkdirAll(cfg.InboxDir, 0o755); err != nil {
			log.Printf("Inbox disabled: %v", err)
		} else if inbox, err := persist.NewInbox(cfg.InboxDir); err != nil {
			log.Printf("Inbox disabled: %v", err)
		} else {
			session.Inbox = inbox
		}
	}
	defer session.Close()

	game, err := NewGame(session, cfg)
	if err != nil {
		return fmt.Errorf("start editor: %w", err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	w, h := game.Layout(0, 0)
	ebiten.SetWindowSize(w*3/4, h*3/4)
	ebiten.SetWindowTitle("Alien Blueprint")

	return ebiten.RunGame(game)
}
