package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"Wallboard/internal/di"
	"Wallboard/pkg/config"
)

const usage = `usage: app [-config path] [config get | config set <wind|open|mock>]`

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	// Load config
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if args := flag.Args(); len(args) > 0 {
		if err := runConfigCommand(cfg, args); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	// Wire DI: Initialize all dependencies
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	// Run application (blocks until signal or quit)
	if err := app.Run(context.Background()); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}

// runConfigCommand reads or changes the backend data mode.
func runConfigCommand(cfg *config.Config, args []string) error {
	if args[0] != "config" || len(args) < 2 {
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.Timeout+time.Second)
	defer cancel()
	client := di.InitializeConfigClient(cfg)

	switch args[1] {
	case "get":
		rc, err := client.Get(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("data_mode: %s\n", rc.DataMode)
	case "set":
		if len(args) != 3 {
			return fmt.Errorf("config set needs a mode\n%s", usage)
		}
		rc, err := client.SetDataMode(ctx, args[2])
		if err != nil {
			return err
		}
		fmt.Printf("data_mode: %s\n", rc.DataMode)
	default:
		return fmt.Errorf("unknown config command %q\n%s", args[1], usage)
	}
	return nil
}
