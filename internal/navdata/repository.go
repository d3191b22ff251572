// Package navdata fetches fund NAV series from Eastmoney and persists
// them in Postgres.
package navdata

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/wonny/fundquant/internal/contracts"
)

// Repository implements contracts.NavRepository on Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a NAV repository backed by pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// EnsureSchema creates the fund_nav table if it does not exist yet.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	ddl := `
		CREATE TABLE IF NOT EXISTS fund_nav (
			fund_code      text    NOT NULL,
			nav_date       date    NOT NULL,
			nav_value      numeric NOT NULL,
			daily_increase numeric NOT NULL DEFAULT 0,
			PRIMARY KEY (fund_code, nav_date)
		)
	`
	if _, err := r.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure fund_nav schema: %w", err)
	}
	return nil
}

// ListByCode returns the full stored series for a fund, ascending by date.
func (r *Repository) ListByCode(ctx context.Context, code string) ([]contracts.FundNav, error) {
	query := `
		SELECT fund_code, to_char(nav_date, 'YYYY-MM-DD'), nav_value::text, daily_increase::text
		FROM fund_nav
		WHERE fund_code = $1
		ORDER BY nav_date ASC
	`

	rows, err := r.pool.Query(ctx, query, code)
	if err != nil {
		return nil, fmt.Errorf("list navs: %w", err)
	}
	defer rows.Close()

	return scanNavs(rows)
}

// ListByCodeAndRange returns the stored series restricted to [from, to],
// ascending by date. Empty bounds are open.
func (r *Repository) ListByCodeAndRange(ctx context.Context, code, from, to string) ([]contracts.FundNav, error) {
	query := `
		SELECT fund_code, to_char(nav_date, 'YYYY-MM-DD'), nav_value::text, daily_increase::text
		FROM fund_nav
		WHERE fund_code = $1
		  AND ($2 = '' OR nav_date >= $2::date)
		  AND ($3 = '' OR nav_date <= $3::date)
		ORDER BY nav_date ASC
	`

	rows, err := r.pool.Query(ctx, query, code, from, to)
	if err != nil {
		return nil, fmt.Errorf("list navs in range: %w", err)
	}
	defer rows.Close()

	return scanNavs(rows)
}

// SaveBatch upserts NAV records keyed by (fund_code, nav_date).
func (r *Repository) SaveBatch(ctx context.Context, navs []contracts.FundNav) error {
	if len(navs) == 0 {
		return nil
	}

	query := `
		INSERT INTO fund_nav (fund_code, nav_date, nav_value, daily_increase)
		VALUES ($1, $2::date, $3::numeric, $4::numeric)
		ON CONFLICT (fund_code, nav_date) DO UPDATE SET
			nav_value = EXCLUDED.nav_value,
			daily_increase = EXCLUDED.daily_increase
	`

	for _, nav := range navs {
		_, err := r.pool.Exec(ctx, query, nav.Code, nav.Date, nav.Value.String(), nav.Increase.String())
		if err != nil {
			return fmt.Errorf("save nav %s %s: %w", nav.Code, nav.Date, err)
		}
	}
	return nil
}

// Stats returns aggregate statistics for a stored series.
func (r *Repository) Stats(ctx context.Context, code string) (*contracts.NavStats, error) {
	query := `
		SELECT
			count(*),
			coalesce(to_char(min(nav_date), 'YYYY-MM-DD'), ''),
			coalesce(to_char(max(nav_date), 'YYYY-MM-DD'), ''),
			coalesce(min(nav_value), 0)::text,
			coalesce(max(nav_value), 0)::text,
			coalesce(avg(nav_value), 0)::text
		FROM fund_nav
		WHERE fund_code = $1
	`

	stats := contracts.NavStats{Code: code}
	var minVal, maxVal, avgVal string
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&stats.Count, &stats.FirstDate, &stats.LastDate, &minVal, &maxVal, &avgVal,
	)
	if err != nil {
		return nil, fmt.Errorf("nav stats: %w", err)
	}

	if stats.MinValue, err = decimal.NewFromString(minVal); err != nil {
		return nil, fmt.Errorf("parse min value %q: %w", minVal, err)
	}
	if stats.MaxValue, err = decimal.NewFromString(maxVal); err != nil {
		return nil, fmt.Errorf("parse max value %q: %w", maxVal, err)
	}
	if stats.AvgValue, err = decimal.NewFromString(avgVal); err != nil {
		return nil, fmt.Errorf("parse avg value %q: %w", avgVal, err)
	}
	return &stats, nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanNavs(rows rowScanner) ([]contracts.FundNav, error) {
	var navs []contracts.FundNav
	for rows.Next() {
		var nav contracts.FundNav
		var value, increase string
		if err := rows.Scan(&nav.Code, &nav.Date, &value, &increase); err != nil {
			return nil, fmt.Errorf("scan nav row: %w", err)
		}

		var err error
		if nav.Value, err = decimal.NewFromString(value); err != nil {
			return nil, fmt.Errorf("parse nav value %q: %w", value, err)
		}
		if nav.Increase, err = decimal.NewFromString(increase); err != nil {
			return nil, fmt.Errorf("parse nav increase %q: %w", increase, err)
		}
		navs = append(navs, nav)
	}
	return navs, rows.Err()
}
