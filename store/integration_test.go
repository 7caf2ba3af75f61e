//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/K1ssSh0t/url-shortener/models"
)

func startPostgres(t *testing.T) *SQLStore {
	t.Helper()

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("shortener"),
		tcpostgres.WithUsername("shortener"),
		tcpostgres.WithPassword("shortener"),
		tc.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	st, err := NewSQL("postgres", dsn, true)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})

	return st
}

func startRedis(t *testing.T) *RedisStore {
	t.Helper()

	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	addr, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	st := NewRedis(addr)
	t.Cleanup(func() {
		_ = st.Close()
	})

	return st
}

func TestPostgresStoreContract(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}
	runStoreContract(t, startPostgres(t))
}

func TestRedisStoreContract(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}
	runStoreContract(t, startRedis(t))
}

func TestSQLiteStoreContract(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping sqlite-backed test in short mode")
	}

	// shared cache keeps every pooled connection on the same in-memory db
	st, err := NewSQL("sqlite3", "file::memory:?cache=shared", true)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})

	runStoreContract(t, st)
}

// runStoreContract exercises the full Store contract against a live backend.
func runStoreContract(t *testing.T, st Store) {
	ctx := context.Background()
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, st.Ping(ctx))

	// unknown code
	_, err := st.Find(ctx, "unknown")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, st.UpdateURL(ctx, "unknown", "https://example.org"), ErrNotFound)
	assert.ErrorIs(t, st.Delete(ctx, "unknown"), ErrNotFound)
	assert.NoError(t, st.IncrementClicks(ctx, "unknown"))

	// create and read back
	require.NoError(t, st.Create(ctx, &models.Mapping{
		ShortCode: "QAZWSX",
		URL:       "https://amazon.com",
		Clicks:    0,
		CreatedAt: createdAt,
	}))

	mapping, err := st.Find(ctx, "QAZWSX")
	require.NoError(t, err)
	assert.Equal(t, "https://amazon.com", mapping.URL)
	assert.Equal(t, int64(0), mapping.Clicks)
	assert.WithinDuration(t, createdAt, mapping.CreatedAt, time.Second)

	// clicks accumulate one per call
	require.NoError(t, st.IncrementClicks(ctx, "QAZWSX"))
	require.NoError(t, st.IncrementClicks(ctx, "QAZWSX"))
	mapping, err = st.Find(ctx, "QAZWSX")
	require.NoError(t, err)
	assert.Equal(t, int64(2), mapping.Clicks)

	// update touches only the URL
	require.NoError(t, st.UpdateURL(ctx, "QAZWSX", "https://example.org"))
	mapping, err = st.Find(ctx, "QAZWSX")
	require.NoError(t, err)
	assert.Equal(t, "https://example.org", mapping.URL)
	assert.Equal(t, int64(2), mapping.Clicks)

	// delete removes the mapping for every later operation
	require.NoError(t, st.Delete(ctx, "QAZWSX"))
	_, err = st.Find(ctx, "QAZWSX")
	assert.ErrorIs(t, err, ErrNotFound)
}
