package dbtest

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib" // golang postgres driver
	"github.com/jmoiron/sqlx"
)

// DSNEnv - переменная окружения с адресом тестовой базы.
const DSNEnv = "PG_TEST_DSN"

// Open подключается к тестовой базе, накатывает миграции и очищает таблицы.
// Без PG_TEST_DSN тест пропускается.
func Open(t testing.TB, migrations []string, tables ...string) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv(DSNEnv)
	if dsn == "" {
		t.Skip(DSNEnv + " is not set")
	}

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		t.Fatalf("sqlx.Connect: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateFromFile(db, migrations...); err != nil {
		t.Fatalf("MigrateFromFile: %v", err)
	}

	if err := Truncate(context.Background(), db, tables...); err != nil {
		t.Fatalf("Truncate: %v", err)
	}

	return db
}

// Truncate очищает таблицы одним запросом.
func Truncate(ctx context.Context, db *sqlx.DB, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}

	if _, err := db.ExecContext(ctx, "TRUNCATE "+strings.Join(tables, ", ")+" RESTART IDENTITY CASCADE"); err != nil {
		return fmt.Errorf("db.ExecContext: %w", err)
	}

	return nil
}

// MigrateFromFile executes all SQL queries from the files over a database
// connection.
func MigrateFromFile(db *sqlx.DB, fileNames ...string) error {
	for _, fileName := range fileNames {
		fh, err := os.Open(fileName)
		if err != nil {
			return fmt.Errorf("os.Open: %w", err)
		}

		fileBytes, err := io.ReadAll(fh)
		if err != nil {
			return fmt.Errorf("io.ReadAll: %w", err)
		}

		if err = fh.Close(); err != nil {
			return fmt.Errorf("fh.Close: %w", err)
		}

		if _, err = db.Exec(string(fileBytes)); err != nil {
			return fmt.Errorf("db.Exec: %w", err)
		}
	}

	return nil
}
