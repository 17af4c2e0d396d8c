// Package seed creates and populates the synthetic trading database the
// dashboard demo runs on: trades, positions, market data, risk metrics, and
// orders for a fixed roster of six traders and ten symbols.
package seed

import (
	"database/sql"
	"fmt"
	"math"
	"math/rand"
	"time"
)

var (
	Symbols = []string{"AAPL", "GOOGL", "MSFT", "AMZN", "TSLA", "META", "NVDA", "AMD", "INTC", "ORCL"}
	Traders = []string{"John Smith", "Sarah Jones", "Mike Chen", "Lisa Wang", "Tom Brown", "Emma Davis"}
	Desks   = []string{"Equity Trading", "Options", "Fixed Income", "Commodities", "FX"}

	exchanges     = []string{"NYSE", "NASDAQ", "BATS", "ARCA"}
	sides         = []string{"BUY", "SELL"}
	orderStatuses = []string{"NEW", "PARTIAL", "FILLED", "CANCELLED", "REJECTED"}

	// Each trader trades only their preferred symbols so filtering by trader
	// produces a visibly distinct dashboard.
	traderPreferences = map[string][]string{
		"John Smith":  {"AAPL", "MSFT", "GOOGL"},
		"Sarah Jones": {"AAPL", "TSLA", "META"},
		"Mike Chen":   {"GOOGL", "NVDA", "AMD"},
		"Lisa Wang":   {"TSLA", "META", "NVDA"},
		"Tom Brown":   {"AMZN", "ORCL", "INTC"},
		"Emma Davis":  {"AAPL", "AMZN", "MSFT"},
	}
)

// Record counts for the generated dataset.
const (
	TradeCount = 1000
	OrderCount = 200
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS trades (
		id INTEGER PRIMARY KEY,
		timestamp INTEGER,
		symbol TEXT,
		price REAL,
		volume INTEGER,
		side TEXT,
		trader TEXT,
		desk TEXT,
		pnl REAL
	)`,
	`CREATE TABLE IF NOT EXISTS positions (
		account TEXT,
		symbol TEXT,
		quantity INTEGER,
		avgPrice REAL,
		marketValue REAL,
		unrealizedPnl REAL,
		realizedPnl REAL,
		lastUpdate INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS marketdata (
		symbol TEXT,
		bid REAL,
		ask REAL,
		last REAL,
		volume INTEGER,
		change REAL,
		changePercent REAL,
		timestamp INTEGER,
		exchange TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS riskmetrics (
		desk TEXT,
		var95 REAL,
		var99 REAL,
		expectedShortfall REAL,
		exposure REAL,
		leverage REAL,
		timestamp INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		orderId TEXT,
		symbol TEXT,
		side TEXT,
		quantity INTEGER,
		price REAL,
		status TEXT,
		timestamp INTEGER,
		trader TEXT,
		fillQuantity INTEGER
	)`,
}

// CreateTables creates the five dashboard tables if they do not exist.
func CreateTables(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("seed: create table: %w", err)
		}
	}
	return nil
}

// Populate fills the tables with synthetic data. rng drives every random
// choice, so a fixed seed reproduces the exact dataset.
func Populate(db *sql.DB, rng *rand.Rand) error {
	now := time.Now().UnixMilli()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed: begin: %w", err)
	}
	defer tx.Rollback()

	if err := insertTrades(tx, rng, now); err != nil {
		return err
	}
	if err := insertPositions(tx, rng, now); err != nil {
		return err
	}
	if err := insertMarketData(tx, rng, now); err != nil {
		return err
	}
	if err := insertRiskMetrics(tx, rng, now); err != nil {
		return err
	}
	if err := insertOrders(tx, rng, now); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit: %w", err)
	}
	return nil
}

func insertTrades(tx *sql.Tx, rng *rand.Rand, now int64) error {
	stmt, err := tx.Prepare(`INSERT INTO trades VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("seed: prepare trades: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < TradeCount; i++ {
		trader := Traders[rng.Intn(len(Traders))]
		prefs := traderPreferences[trader]
		symbol := prefs[rng.Intn(len(prefs))]

		basePrice := 100.0 + float64(i)*0.1
		price := round2(basePrice + uniform(rng, -10, 10))
		volume := 100 + rng.Intn(901)
		side := sides[rng.Intn(len(sides))]
		desk := Desks[rng.Intn(len(Desks))]
		pnl := round2(uniform(rng, -5000, 5000))

		// Random time within the last hour.
		ts := now - int64(rng.Intn(3600001))

		if _, err := stmt.Exec(i, ts, symbol, price, volume, side, trader, desk, pnl); err != nil {
			return fmt.Errorf("seed: insert trade: %w", err)
		}
	}
	return nil
}

func insertPositions(tx *sql.Tx, rng *rand.Rand, now int64) error {
	stmt, err := tx.Prepare(`INSERT INTO positions VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("seed: prepare positions: %w", err)
	}
	defer stmt.Close()

	for i, symbol := range Symbols {
		quantity := rng.Intn(1001) - 500
		avgPrice := round2(100.0 + float64(i)*2.5)
		marketValue := round2(float64(quantity) * avgPrice)
		unrealized := round2(uniform(rng, -2500, 2500))
		realized := round2(uniform(rng, -1500, 1500))

		if _, err := stmt.Exec("MAIN_PORTFOLIO", symbol, quantity, avgPrice, marketValue, unrealized, realized, now); err != nil {
			return fmt.Errorf("seed: insert position: %w", err)
		}
	}
	return nil
}

func insertMarketData(tx *sql.Tx, rng *rand.Rand, now int64) error {
	stmt, err := tx.Prepare(`INSERT INTO marketdata VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("seed: prepare marketdata: %w", err)
	}
	defer stmt.Close()

	for i, symbol := range Symbols {
		last := round2(100.0 + float64(i)*2.5 + uniform(rng, -5, 5))
		bid := round2(last - 0.05)
		ask := round2(last + 0.05)

		// Couple market volume to traded volume so filtering by trader shows
		// a matching pattern in the heatmap.
		var traded sql.NullInt64
		if err := tx.QueryRow(`SELECT SUM(volume) FROM trades WHERE symbol = ?`, symbol).Scan(&traded); err != nil {
			return fmt.Errorf("seed: sum trade volume: %w", err)
		}
		volume := int64(100000+rng.Intn(400001)) + traded.Int64*100

		change := round2(uniform(rng, -4, 4))
		changePct := round2(change / last * 100)
		exchange := exchanges[rng.Intn(len(exchanges))]

		if _, err := stmt.Exec(symbol, bid, ask, last, volume, change, changePct, now, exchange); err != nil {
			return fmt.Errorf("seed: insert marketdata: %w", err)
		}
	}
	return nil
}

func insertRiskMetrics(tx *sql.Tx, rng *rand.Rand, now int64) error {
	stmt, err := tx.Prepare(`INSERT INTO riskmetrics VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("seed: prepare riskmetrics: %w", err)
	}
	defer stmt.Close()

	for _, desk := range Desks {
		var95 := round2(uniform(rng, 0, 100000))
		var99 := round2(var95 * 1.5)
		shortfall := round2(var99 * 1.2)
		exposure := round2(uniform(rng, 0, 1000000))
		leverage := round2(1.0 + uniform(rng, 0, 4))

		if _, err := stmt.Exec(desk, var95, var99, shortfall, exposure, leverage, now); err != nil {
			return fmt.Errorf("seed: insert riskmetrics: %w", err)
		}
	}
	return nil
}

func insertOrders(tx *sql.Tx, rng *rand.Rand, now int64) error {
	stmt, err := tx.Prepare(`INSERT INTO orders VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("seed: prepare orders: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < OrderCount; i++ {
		orderID := fmt.Sprintf("ORD%d", 1000+i)
		symbol := Symbols[rng.Intn(len(Symbols))]
		side := sides[rng.Intn(len(sides))]
		quantity := 100 + rng.Intn(401)
		price := round2(100.0 + uniform(rng, 0, 20))
		status := orderStatuses[rng.Intn(len(orderStatuses))]

		fillQuantity := 0
		switch status {
		case "FILLED":
			fillQuantity = quantity
		case "PARTIAL":
			fillQuantity = quantity / 2
		}

		trader := Traders[rng.Intn(len(Traders))]
		ts := now - int64(rng.Intn(1800001))

		if _, err := stmt.Exec(orderID, symbol, side, quantity, price, status, ts, trader, fillQuantity); err != nil {
			return fmt.Errorf("seed: insert order: %w", err)
		}
	}
	return nil
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
