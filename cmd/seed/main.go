// cmd/seed/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"credit-ledger/internal/config"
	"credit-ledger/internal/upload"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Loads the historical tab-separated dumps (users, dictionary, credits,
// payments, plans) into the database. Ids are kept as-is so the foreign
// keys inside the dumps stay valid; sequences are bumped afterwards.
func main() {
	cfg := config.MustLoad()

	dir := "seed_data"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DBConn)
	if err != nil {
		slog.Error("Failed to connect to DB", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	tables := []struct {
		name string
		load func(context.Context, *pgxpool.Pool, []upload.Row) error
	}{
		{"users", loadUsers},
		{"dictionary", loadDictionary},
		{"credits", loadCredits},
		{"payments", loadPayments},
		{"plans", loadPlans},
	}

	for _, table := range tables {
		path := filepath.Join(dir, table.name+".tsv")
		file, err := os.Open(path)
		if err != nil {
			slog.Warn("Dump not found, skipping", "path", path)
			continue
		}

		rows, err := upload.Parse(path, file)
		file.Close()
		if err != nil {
			slog.Error("Failed to parse dump", "path", path, "error", err)
			os.Exit(1)
		}

		if err := table.load(ctx, pool, rows); err != nil {
			slog.Error("Failed to load dump", "table", table.name, "error", err)
			os.Exit(1)
		}

		seq := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE(MAX(id), 1)) FROM %s",
			table.name, table.name)
		if _, err := pool.Exec(ctx, seq); err != nil {
			slog.Error("Failed to bump sequence", "table", table.name, "error", err)
			os.Exit(1)
		}

		slog.Info("Loaded dump", "table", table.name, "rows", len(rows))
	}
}

func loadUsers(ctx context.Context, pool *pgxpool.Pool, rows []upload.Row) error {
	for _, row := range rows {
		date, err := upload.ParseDate(row["registration_date"])
		if err != nil {
			return fmt.Errorf("user %s: %w", row["id"], err)
		}
		_, err = pool.Exec(ctx, `
			INSERT INTO users (id, login, registration_date) VALUES ($1::bigint, $2, $3)
		`, row["id"], row["login"], date)
		if err != nil {
			return fmt.Errorf("insert user %s: %w", row["id"], err)
		}
	}
	return nil
}

func loadDictionary(ctx context.Context, pool *pgxpool.Pool, rows []upload.Row) error {
	for _, row := range rows {
		_, err := pool.Exec(ctx, `
			INSERT INTO dictionary (id, name) VALUES ($1::int, $2)
			ON CONFLICT (id) DO NOTHING
		`, row["id"], row["name"])
		if err != nil {
			return fmt.Errorf("insert dictionary %s: %w", row["id"], err)
		}
	}
	return nil
}

func loadCredits(ctx context.Context, pool *pgxpool.Pool, rows []upload.Row) error {
	for _, row := range rows {
		issued, err := upload.ParseDate(row["issuance_date"])
		if err != nil {
			return fmt.Errorf("credit %s issuance_date: %w", row["id"], err)
		}
		due, err := upload.ParseDate(row["return_date"])
		if err != nil {
			return fmt.Errorf("credit %s return_date: %w", row["id"], err)
		}
		var actual *time.Time
		if row["actual_return_date"] != "" {
			parsed, err := upload.ParseDate(row["actual_return_date"])
			if err != nil {
				return fmt.Errorf("credit %s actual_return_date: %w", row["id"], err)
			}
			actual = &parsed
		}
		_, err = pool.Exec(ctx, `
			INSERT INTO credits (id, user_id, issuance_date, return_date, actual_return_date, body, percent)
			VALUES ($1::bigint, $2::bigint, $3, $4, $5, $6::bigint, $7::numeric)
		`, row["id"], row["user_id"], issued, due, actual, row["body"], row["percent"])
		if err != nil {
			return fmt.Errorf("insert credit %s: %w", row["id"], err)
		}
	}
	return nil
}

func loadPayments(ctx context.Context, pool *pgxpool.Pool, rows []upload.Row) error {
	for _, row := range rows {
		date, err := upload.ParseDate(row["payment_date"])
		if err != nil {
			return fmt.Errorf("payment %s: %w", row["id"], err)
		}
		_, err = pool.Exec(ctx, `
			INSERT INTO payments (id, credit_id, payment_date, type_id, sum)
			VALUES ($1::bigint, $2::bigint, $3, $4::int, $5::numeric)
		`, row["id"], row["credit_id"], date, row["type_id"], row["sum"])
		if err != nil {
			return fmt.Errorf("insert payment %s: %w", row["id"], err)
		}
	}
	return nil
}

func loadPlans(ctx context.Context, pool *pgxpool.Pool, rows []upload.Row) error {
	for _, row := range rows {
		period, err := upload.ParseDate(row["period"])
		if err != nil {
			return fmt.Errorf("plan %s: %w", row["id"], err)
		}
		_, err = pool.Exec(ctx, `
			INSERT INTO plans (id, period, sum, category_id) VALUES ($1::bigint, $2, $3::bigint, $4::int)
		`, row["id"], period, row["sum"], row["category_id"])
		if err != nil {
			return fmt.Errorf("insert plan %s: %w", row["id"], err)
		}
	}
	return nil
}
