package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

type ctxKey string

const dbKey ctxKey = "db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newTenantFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "tenant",
		Usage:   "Tenant id to seed",
		Value:   "demo",
		EnvVars: []string{"SEED_TENANT"},
	}
}

// nullIfEmpty returns NULL if the string is empty, otherwise returns the string
func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func initDB(c *cli.Context) error {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*sql.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func dbFrom(c *cli.Context) *sql.DB {
	db, _ := c.Context.Value(dbKey).(*sql.DB)
	return db
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Seed the database with inventory data",
		Flags: []cli.Flag{
			newDBURLFlag(),
		},
		Commands: []*cli.Command{
			{
				Name:   "schema",
				Usage:  "Create the core tables if they do not exist",
				Flags:  []cli.Flag{newDBURLFlag()},
				Before: initDB,
				After:  closeDB,
				Action: createSchema,
			},
			{
				Name:  "suppliers",
				Usage: "Load suppliers from a CSV file (id,name,contact_email,contact_phone,lead_time_days)",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newTenantFlag(),
					&cli.StringFlag{
						Name:     "file",
						Usage:    "CSV file with supplier rows",
						Required: true,
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: seedSuppliers,
			},
			{
				Name:  "demo",
				Usage: "Generate a synthetic tenant with sales history and cleanup issues",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newTenantFlag(),
					&cli.IntFlag{
						Name:  "skus",
						Usage: "Number of SKUs to generate",
						Value: 50,
					},
					&cli.IntFlag{
						Name:  "days",
						Usage: "Days of sales history to generate",
						Value: 30,
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: seedDemo,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func createSchema(c *cli.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS suppliers (
			tenant_id TEXT NOT NULL,
			id TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			contact_email TEXT,
			contact_phone TEXT,
			lead_time_days INT NOT NULL DEFAULT 7,
			PRIMARY KEY (tenant_id, id)
		)`,
		`CREATE TABLE IF NOT EXISTS inventory_items (
			tenant_id TEXT NOT NULL,
			sku TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			current_stock INT NOT NULL DEFAULT 0,
			supplier_id TEXT,
			lead_time_days INT,
			unit_cost NUMERIC(12,2),
			PRIMARY KEY (tenant_id, sku)
		)`,
		`CREATE TABLE IF NOT EXISTS sale_records (
			tenant_id TEXT NOT NULL,
			sku TEXT NOT NULL,
			quantity_sold INT NOT NULL,
			sale_date DATE NOT NULL,
			unit_price NUMERIC(12,2)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sale_records_lookup
			ON sale_records (tenant_id, sku, sale_date)`,
		`CREATE TABLE IF NOT EXISTS cleanup_issues (
			tenant_id TEXT NOT NULL,
			id TEXT NOT NULL,
			issue_type TEXT NOT NULL,
			severity TEXT NOT NULL,
			affected_items TEXT[] NOT NULL DEFAULT '{}',
			resolved BOOLEAN NOT NULL DEFAULT FALSE,
			PRIMARY KEY (tenant_id, id)
		)`,
	}

	db := dbFrom(c)
	for _, stmt := range statements {
		if _, err := db.ExecContext(c.Context, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	log.Println("schema ready")
	return nil
}

func seedSuppliers(c *cli.Context) error {
	f, err := os.Open(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to open supplier file: %w", err)
	}
	defer f.Close()

	db := dbFrom(c)
	tenant := c.String("tenant")
	reader := csv.NewReader(f)
	count := 0

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read supplier row: %w", err)
		}
		if len(row) < 5 {
			return fmt.Errorf("supplier row has %d fields, want 5", len(row))
		}
		if count == 0 && row[0] == "id" {
			continue // header
		}

		leadTime, err := strconv.Atoi(row[4])
		if err != nil {
			return fmt.Errorf("invalid lead_time_days %q: %w", row[4], err)
		}

		id := row[0]
		if id == "" {
			id = uuid.NewString()
		}

		_, err = db.ExecContext(c.Context, `
			INSERT INTO suppliers (tenant_id, id, name, contact_email, contact_phone, lead_time_days)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (tenant_id, id) DO UPDATE
			SET name = EXCLUDED.name,
			    contact_email = EXCLUDED.contact_email,
			    contact_phone = EXCLUDED.contact_phone,
			    lead_time_days = EXCLUDED.lead_time_days
		`, tenant, id, row[1], nullIfEmpty(row[2]), nullIfEmpty(row[3]), leadTime)
		if err != nil {
			return fmt.Errorf("failed to insert supplier %s: %w", id, err)
		}
		count++
	}

	log.Printf("seeded %d suppliers for tenant %s", count, tenant)
	return nil
}

func seedDemo(c *cli.Context) error {
	db := dbFrom(c)
	tenant := c.String("tenant")
	skuCount := c.Int("skus")
	days := c.Int("days")

	supplierIDs := []string{uuid.NewString(), uuid.NewString(), uuid.NewString()}
	names := []string{"Acme Wholesale", "Northside Distribution", "Harbor Goods"}
	for i, id := range supplierIDs {
		email := nullIfEmpty(fmt.Sprintf("orders@%s.example.com", id[:8]))
		if i == 2 {
			// One supplier left incomplete so the PO gate has something to flag.
			email = sql.NullString{}
		}
		if _, err := db.ExecContext(c.Context, `
			INSERT INTO suppliers (tenant_id, id, name, contact_email, lead_time_days)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (tenant_id, id) DO NOTHING
		`, tenant, id, names[i], email, 5+i*2); err != nil {
			return fmt.Errorf("failed to insert demo supplier: %w", err)
		}
	}

	for i := 0; i < skuCount; i++ {
		sku := fmt.Sprintf("SKU-%04d", i+1)
		var supplierID sql.NullString
		if i%7 != 0 { // leave some items unassigned
			supplierID = sql.NullString{String: supplierIDs[i%len(supplierIDs)], Valid: true}
		}

		stock := rand.Intn(200)
		if _, err := db.ExecContext(c.Context, `
			INSERT INTO inventory_items (tenant_id, sku, name, current_stock, supplier_id, unit_cost)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (tenant_id, sku) DO NOTHING
		`, tenant, sku, fmt.Sprintf("Demo item %d", i+1), stock, supplierID, float64(rand.Intn(5000))/100); err != nil {
			return fmt.Errorf("failed to insert demo item: %w", err)
		}

		baseRate := rand.Intn(10)
		for d := 0; d < days; d++ {
			qty := baseRate + rand.Intn(4)
			if qty == 0 {
				continue
			}
			date := time.Now().AddDate(0, 0, -d)
			if _, err := db.ExecContext(c.Context, `
				INSERT INTO sale_records (tenant_id, sku, quantity_sold, sale_date)
				VALUES ($1, $2, $3, $4)
			`, tenant, sku, qty, date.Format("2006-01-02")); err != nil {
				return fmt.Errorf("failed to insert demo sale: %w", err)
			}
		}
	}

	// A resolved high issue and an open low one: the gate stays open but
	// the cleanup report has content.
	issues := []struct {
		severity string
		resolved bool
	}{
		{"high", true},
		{"low", false},
	}
	for _, issue := range issues {
		if _, err := db.ExecContext(c.Context, `
			INSERT INTO cleanup_issues (tenant_id, id, issue_type, severity, resolved)
			VALUES ($1, $2, $3, $4, $5)
		`, tenant, uuid.NewString(), "no_sales_history", issue.severity, issue.resolved); err != nil {
			return fmt.Errorf("failed to insert demo cleanup issue: %w", err)
		}
	}

	log.Printf("seeded demo tenant %s: %d skus, %d days of history", tenant, skuCount, days)
	return nil
}
