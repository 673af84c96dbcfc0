package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/tillberg/salesdash"
)

type config struct {
	Rows     int
	Seed     int64
	Regions  string
	Products string
	Engine   string
	Parquet  string
	Xlsx     string
}

// loadConfig reads .env (if present), then SALESDASH_* variables, then flags.
func loadConfig(args []string) (config, error) {
	_ = godotenv.Load()

	cfg := config{
		Rows:   salesdash.DefaultRows,
		Seed:   salesdash.DefaultSeed,
		Engine: "go",
	}
	if v := os.Getenv("SALESDASH_ROWS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("SALESDASH_ROWS: %w", err)
		}
		cfg.Rows = n
	}
	if v := os.Getenv("SALESDASH_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("SALESDASH_SEED: %w", err)
		}
		cfg.Seed = n
	}
	if v := os.Getenv("SALESDASH_ENGINE"); v != "" {
		cfg.Engine = v
	}

	fs := flag.NewFlagSet("salesdash", flag.ContinueOnError)
	fs.IntVar(&cfg.Rows, "rows", cfg.Rows, "number of sample rows (50-1000)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	fs.StringVar(&cfg.Regions, "regions", "all", "comma separated regions, all or none")
	fs.StringVar(&cfg.Products, "products", "all", "comma separated products, all or none")
	fs.StringVar(&cfg.Engine, "engine", cfg.Engine, "aggregation engine: go or duckdb")
	fs.StringVar(&cfg.Parquet, "parquet", "", "write the dataset to this parquet file")
	fs.StringVar(&cfg.Xlsx, "xlsx", "", "write the dashboard tables to this xlsx file")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if cfg.Engine != "go" && cfg.Engine != "duckdb" {
		return cfg, fmt.Errorf("unknown engine %q: %w", cfg.Engine, salesdash.ErrInvalidParameter)
	}
	return cfg, nil
}
