package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
)

const dateLayout = "2006-01-02"

func openCSV(dataDir, name string) (*os.File, *csv.Reader, error) {
	path := filepath.Join(dataDir, name)
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	// Skip the header row
	if _, err := r.Read(); err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	return f, r, nil
}

// seedMedicines loads medicines.csv with columns:
// name, generic_name, composition, manufacturer, price
func seedMedicines(c *cli.Context) error {
	db, err := dbFromContext(c)
	if err != nil {
		return err
	}

	f, r, err := openCSV(c.String("data-dir"), "medicines.csv")
	if err != nil {
		return err
	}
	defer f.Close()

	stmt, err := db.PrepareContext(c.Context, `
		INSERT INTO medicines (name, generic_name, composition, manufacturer, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (name) DO UPDATE SET
			generic_name = EXCLUDED.generic_name,
			composition = EXCLUDED.composition,
			manufacturer = EXCLUDED.manufacturer,
			price = EXCLUDED.price,
			updated_at = NOW()
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare medicine insert: %w", err)
	}
	defer stmt.Close()

	count := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read medicines row: %w", err)
		}
		if len(record) < 5 {
			return fmt.Errorf("medicines row has %d columns, want 5", len(record))
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(record[4]), 64)
		if err != nil {
			return fmt.Errorf("invalid price %q: %w", record[4], err)
		}

		if _, err := stmt.ExecContext(c.Context,
			strings.TrimSpace(record[0]),
			strings.TrimSpace(record[1]),
			strings.TrimSpace(record[2]),
			strings.TrimSpace(record[3]),
			price,
		); err != nil {
			return fmt.Errorf("failed to insert medicine %q: %w", record[0], err)
		}
		count++
	}

	log.Printf("seeded %d medicines", count)
	return nil
}

// seedBatches loads batches.csv with columns:
// medicine_id, batch_number, quantity, expiry_date, cost_price
func seedBatches(c *cli.Context) error {
	db, err := dbFromContext(c)
	if err != nil {
		return err
	}

	f, r, err := openCSV(c.String("data-dir"), "batches.csv")
	if err != nil {
		return err
	}
	defer f.Close()

	stmt, err := db.PrepareContext(c.Context, `
		INSERT INTO batches (medicine_id, batch_number, quantity, expiry_date, cost_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (medicine_id, batch_number) DO UPDATE SET
			quantity = EXCLUDED.quantity,
			expiry_date = EXCLUDED.expiry_date,
			cost_price = EXCLUDED.cost_price,
			updated_at = NOW()
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare batch insert: %w", err)
	}
	defer stmt.Close()

	count := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read batches row: %w", err)
		}
		if len(record) < 5 {
			return fmt.Errorf("batches row has %d columns, want 5", len(record))
		}

		medicineID, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid medicine_id %q: %w", record[0], err)
		}
		quantity, err := strconv.Atoi(strings.TrimSpace(record[2]))
		if err != nil {
			return fmt.Errorf("invalid quantity %q: %w", record[2], err)
		}
		expiry, err := time.Parse(dateLayout, strings.TrimSpace(record[3]))
		if err != nil {
			return fmt.Errorf("invalid expiry_date %q: %w", record[3], err)
		}
		costPrice, err := strconv.ParseFloat(strings.TrimSpace(record[4]), 64)
		if err != nil {
			return fmt.Errorf("invalid cost_price %q: %w", record[4], err)
		}

		if _, err := stmt.ExecContext(c.Context,
			medicineID,
			strings.TrimSpace(record[1]),
			quantity,
			expiry,
			costPrice,
		); err != nil {
			return fmt.Errorf("failed to insert batch %q: %w", record[1], err)
		}
		count++
	}

	log.Printf("seeded %d batches", count)
	return nil
}

// seedSales loads sales.csv with columns:
// medicine_id, quantity, unit_price, sale_date
func seedSales(c *cli.Context) error {
	db, err := dbFromContext(c)
	if err != nil {
		return err
	}

	f, r, err := openCSV(c.String("data-dir"), "sales.csv")
	if err != nil {
		return err
	}
	defer f.Close()

	stmt, err := db.PrepareContext(c.Context, `
		INSERT INTO sales_records (medicine_id, quantity, unit_price, sale_date)
		VALUES ($1, $2, $3, $4)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare sales insert: %w", err)
	}
	defer stmt.Close()

	count := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read sales row: %w", err)
		}
		if len(record) < 4 {
			return fmt.Errorf("sales row has %d columns, want 4", len(record))
		}

		medicineID, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid medicine_id %q: %w", record[0], err)
		}
		quantity, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil {
			return fmt.Errorf("invalid quantity %q: %w", record[1], err)
		}
		unitPrice, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
		if err != nil {
			return fmt.Errorf("invalid unit_price %q: %w", record[2], err)
		}
		saleDate, err := time.Parse(dateLayout, strings.TrimSpace(record[3]))
		if err != nil {
			return fmt.Errorf("invalid sale_date %q: %w", record[3], err)
		}

		if _, err := stmt.ExecContext(c.Context,
			medicineID,
			quantity,
			unitPrice,
			saleDate,
		); err != nil {
			return fmt.Errorf("failed to insert sale for medicine %d: %w", medicineID, err)
		}
		count++
	}

	log.Printf("seeded %d sales records", count)
	return nil
}
