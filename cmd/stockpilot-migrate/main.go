package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/stockpilot/stockpilot/internal/config"
	"github.com/stockpilot/stockpilot/internal/fixture"
	"github.com/stockpilot/stockpilot/internal/store"
)

func main() {
	seed := flag.Bool("seed", false, "load the demo inventory after creating the schema")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv("stockpilot-migrate")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := store.Connect(ctx, cfg.Store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "database open error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	if *seed {
		if err := fixture.Apply(ctx, db); err != nil {
			fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("created schema and loaded %d inventory rows, %d discount rows\n",
			len(fixture.Inventory), len(fixture.Discounts))
		return
	}

	if err := fixture.ApplySchema(ctx, db); err != nil {
		fmt.Fprintf(os.Stderr, "schema apply failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("schema is up to date")
}
