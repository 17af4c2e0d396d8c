package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	_ "modernc.org/sqlite"

	"github.com/forgedash/trading-ai-proxy/internal/seed"
)

func main() {
	dbPath := flag.String("db", "trading_data.db", "path to sqlite database to create")
	rngSeed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	flag.Parse()

	if *rngSeed == 0 {
		*rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*rngSeed))

	db, err := sql.Open("sqlite", *dbPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	log.Println("creating tables...")
	if err := seed.CreateTables(db); err != nil {
		log.Fatalf("create tables: %v", err)
	}

	log.Println("inserting sample data...")
	if err := seed.Populate(db, rng); err != nil {
		log.Fatalf("populate: %v", err)
	}

	fmt.Println("database created:", *dbPath)
	fmt.Printf("  - %d trades\n", seed.TradeCount)
	fmt.Printf("  - %d positions\n", len(seed.Symbols))
	fmt.Printf("  - %d market data records\n", len(seed.Symbols))
	fmt.Printf("  - %d risk metrics\n", len(seed.Desks))
	fmt.Printf("  - %d orders\n", seed.OrderCount)
}
