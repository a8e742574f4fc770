package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/DaanHessen/trail-tui/internal/config"
	"github.com/DaanHessen/trail-tui/internal/store"
	"github.com/DaanHessen/trail-tui/internal/ui"
	"github.com/DaanHessen/trail-tui/internal/util"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg, err := util.FromEnv()
	if err != nil {
		log.Fatal(err)
	}

	seedFlag := flag.String("seed", cfg.SeedText, "Run seed string (optional; random if omitted)")
	dsn := flag.String("dsn", cfg.DSN, "PostgreSQL DSN (omit to use a local sqlite file)")
	sqlitePath := flag.String("sqlite", cfg.SQLitePath, "SQLite fallback path when no DSN is set")
	mode := flag.String("mode", cfg.Mode, "Journey mode: standard|deep")
	policy := flag.String("policy", cfg.Policy, "Caucus policy: conservative|moderate|aggressive")
	theme := flag.String("theme", cfg.Theme, "Color theme")
	density := flag.String("density", cfg.TextDensity, "Text density: concise|standard|rich")
	tuningPath := flag.String("tuning", cfg.TuningPath, "Optional tuning overrides (JSON)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "trail [flags] | migrate up|down | version\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg.SeedText = strings.TrimSpace(*seedFlag)
	cfg.DSN = *dsn
	cfg.SQLitePath = *sqlitePath
	cfg.Mode = *mode
	cfg.Policy = *policy
	cfg.Theme = *theme
	cfg.TextDensity = *density
	cfg.TuningPath = *tuningPath

	args := flag.Args()
	if len(args) > 0 {
		switch args[0] {
		case "version":
			fmt.Println("trail", version)
			return
		case "migrate":
			if len(args) < 2 {
				log.Fatal("migrate requires 'up' or 'down'")
			}
			runMigrate(cfg.DSN, args[1])
			return
		}
	}

	tuning, err := config.Load(cfg.TuningPath)
	if err != nil {
		log.Fatalf("tuning: %v", err)
	}

	ctx := context.Background()

	// Postgres schemas go through migrations; the sqlite fallback bootstraps
	// its own tables in store.Open.
	if cfg.DSN != "" {
		mig, err := store.NewMigrator(cfg.DSN)
		if err != nil {
			log.Fatalf("migrations init failed: %v", err)
		}
		migCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := mig.Up(migCtx); err != nil && err != store.ErrNoChange {
			log.Fatalf("migrations failed: %v", err)
		}
	}

	db, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := ui.Run(ctx, db, tuning, cfg, version); err != nil {
		log.Fatal(err)
	}
}

func runMigrate(dsn, action string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	migrator, err := store.NewMigrator(dsn)
	if err != nil {
		log.Fatal(err)
	}
	switch action {
	case "up":
		if err := migrator.Up(ctx); err != nil && err != store.ErrNoChange {
			log.Fatal(err)
		}
		fmt.Println("Migrations applied")
	case "down":
		if err := migrator.Down(ctx); err != nil && err != store.ErrNoChange {
			log.Fatal(err)
		}
		fmt.Println("Migrations rolled back")
	default:
		log.Fatal("unknown migrate action; use up|down")
	}
}
