package navdata

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/fundquant/internal/contracts"
)

// testPool connects to TEST_DATABASE_URL, skipping when it is not set
// or when -short is given. These are integration tests against a real
// Postgres instance.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database integration test in short mode")
	}
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func testNav(code, date, value, increase string) contracts.FundNav {
	v, _ := decimal.NewFromString(value)
	inc, _ := decimal.NewFromString(increase)
	return contracts.FundNav{Code: code, Date: date, Value: v, Increase: inc}
}

func TestRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	pool := testPool(t)
	repo := NewRepository(pool)
	require.NoError(t, repo.EnsureSchema(ctx))

	const code = "test-940001"
	t.Cleanup(func() {
		pool.Exec(ctx, `DELETE FROM fund_nav WHERE fund_code = $1`, code)
	})

	navs := []contracts.FundNav{
		testNav(code, "2024-01-01", "1.0000", "0"),
		testNav(code, "2024-01-02", "1.0500", "5"),
		testNav(code, "2024-01-03", "0.9975", "-5"),
	}
	require.NoError(t, repo.SaveBatch(ctx, navs))

	// Upsert: saving again with a changed value overwrites, not duplicates.
	navs[2].Value = decimal.RequireFromString("0.9980")
	require.NoError(t, repo.SaveBatch(ctx, navs[2:]))

	got, err := repo.ListByCode(ctx, code)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "2024-01-01", got[0].Date)
	assert.Equal(t, "2024-01-03", got[2].Date)
	assert.True(t, got[2].Value.Equal(decimal.RequireFromString("0.9980")))

	ranged, err := repo.ListByCodeAndRange(ctx, code, "2024-01-02", "")
	require.NoError(t, err)
	require.Len(t, ranged, 2)
	assert.Equal(t, "2024-01-02", ranged[0].Date)

	stats, err := repo.Stats(ctx, code)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, "2024-01-01", stats.FirstDate)
	assert.Equal(t, "2024-01-03", stats.LastDate)
	assert.True(t, stats.MaxValue.Equal(decimal.RequireFromString("1.05")))
}

func TestRepositoryStatsEmpty(t *testing.T) {
	ctx := context.Background()
	pool := testPool(t)
	repo := NewRepository(pool)
	require.NoError(t, repo.EnsureSchema(ctx))

	stats, err := repo.Stats(ctx, "no-such-fund")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Count)
	assert.Empty(t, stats.FirstDate)
}
