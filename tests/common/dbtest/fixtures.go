//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// CreateTestResource inserts a small field at the given hourly rate.
func CreateTestResource(t *testing.T, db DBLike, name, hourlyRate string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		`INSERT INTO resources (id, name, location, capacity, hourly_rate, created_at, updated_at)
		 VALUES ($1, $2, 'Main St', 'small', $3::numeric, now(), now())`,
		id, name, hourlyRate)
	require.NoError(t, err)
	return id
}

// CreateTestWallet writes a wallet with the given balance directly, skipping the ledger.
func CreateTestWallet(t *testing.T, db DBLike, userID uuid.UUID, balance string) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		`INSERT INTO wallets (user_id, balance, version, updated_at) VALUES ($1, $2::numeric, 0, now())
		 ON CONFLICT (user_id) DO UPDATE SET balance = EXCLUDED.balance`,
		userID, balance)
	require.NoError(t, err)
}

// CreateTestReservation inserts a reservation row for [startHour, endHour) on date (YYYY-MM-DD).
func CreateTestReservation(t *testing.T, db DBLike, resourceID, userID uuid.UUID, date string, startHour, endHour int, charge, status string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		`INSERT INTO reservations (id, resource_id, user_id, booking_date, start_hour, end_hour, charge, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4::date, $5, $6, $7::numeric, $8, now(), now())`,
		id, resourceID, userID, date, startHour, endHour, charge, status)
	require.NoError(t, err)
	return id
}

func ReservationStatus(t *testing.T, db DBLike, id uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(), `SELECT status FROM reservations WHERE id = $1`, id).Scan(&status)
	require.NoError(t, err)
	return status
}

func WalletBalance(t *testing.T, db DBLike, userID uuid.UUID) string {
	t.Helper()

	var balance string
	err := db.QueryRow(context.Background(), `SELECT balance::text FROM wallets WHERE user_id = $1`, userID).Scan(&balance)
	require.NoError(t, err)
	return balance
}

func CountRows(t *testing.T, db DBLike, table, where string, args ...any) int {
	t.Helper()

	sql := "SELECT count(*) FROM " + table
	if where != "" {
		sql += " WHERE " + where
	}
	var n int
	require.NoError(t, db.QueryRow(context.Background(), sql, args...).Scan(&n))
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
