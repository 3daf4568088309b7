package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

type ctxKey string

// dbKey is where the open database handle lives in the CLI context.
const dbKey ctxKey = "db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newDataDirFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "data-dir",
		Usage:   "Directory containing seed CSV files",
		Value:   "./data/seeds",
		EnvVars: []string{"SEED_DATA_DIR"},
	}
}

func initDB(c *cli.Context) error {
	// Initialize database connection
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	// Store the database connection in the context
	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	// Close the database connection when done
	if db, ok := c.Context.Value(dbKey).(*sql.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func dbFromContext(c *cli.Context) (*sql.DB, error) {
	db, ok := c.Context.Value(dbKey).(*sql.DB)
	if !ok || db == nil {
		return nil, fmt.Errorf("database connection not found in context")
	}
	return db, nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Seed the pharmacy database and export reports",
		Commands: []*cli.Command{
			{
				Name:  "medicines",
				Usage: "Seed medicines from medicines.csv",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newDataDirFlag(),
				},
				Before: initDB,
				After:  closeDB,
				Action: seedMedicines,
			},
			{
				Name:  "batches",
				Usage: "Seed inventory batches from batches.csv",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newDataDirFlag(),
				},
				Before: initDB,
				After:  closeDB,
				Action: seedBatches,
			},
			{
				Name:  "sales",
				Usage: "Seed sales history from sales.csv",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newDataDirFlag(),
				},
				Before: initDB,
				After:  closeDB,
				Action: seedSales,
			},
			{
				Name:  "all",
				Usage: "Seed medicines, batches and sales in order",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newDataDirFlag(),
				},
				Before: initDB,
				After:  closeDB,
				Action: func(c *cli.Context) error {
					if err := seedMedicines(c); err != nil {
						return fmt.Errorf("error seeding medicines: %w", err)
					}
					if err := seedBatches(c); err != nil {
						return fmt.Errorf("error seeding batches: %w", err)
					}
					if err := seedSales(c); err != nil {
						return fmt.Errorf("error seeding sales: %w", err)
					}
					return nil
				},
			},
			{
				Name:   "export-forecast",
				Usage:  "Build the price surge dashboard and upload it as CSV to object storage",
				Action: exportForecast,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
