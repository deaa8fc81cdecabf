package quota

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/domain"
	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/infra"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	ctx := context.Background()
	db, err := infra.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	store, err := NewSQLiteStore(ctx, db)
	require.NoError(t, err)
	return store
}

func TestStoresRoundTrip(t *testing.T) {
	redisStore, _ := newRedisStore(t)
	stores := map[string]domain.QuotaRepository{
		"memory": NewMemoryStore(),
		"redis":  redisStore,
		"sqlite": newSQLiteStore(t),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, found, err := store.Load(ctx, "a@x.com")
			require.NoError(t, err)
			assert.False(t, found)

			rec := domain.QuotaRecord{Remaining: 3, LastResetDate: "2024-05-01"}
			require.NoError(t, store.Save(ctx, "a@x.com", rec))
			require.NoError(t, store.Save(ctx, "a@x.com", domain.QuotaRecord{Remaining: 2, LastResetDate: "2024-05-01"}))

			got, found, err := store.Load(ctx, "a@x.com")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, domain.QuotaRecord{Remaining: 2, LastResetDate: "2024-05-01"}, got)

			_, found, err = store.Load(ctx, "")
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestRedisStoreLayout(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "", domain.QuotaRecord{Remaining: 4, LastResetDate: "2024-05-01"}))

	assert.Equal(t, "4", mr.HGet("quota:anonymous", "remaining"))
	assert.Equal(t, "2024-05-01", mr.HGet("quota:anonymous", "last_reset_date"))
	assert.Equal(t, 48*time.Hour, mr.TTL("quota:anonymous"))
}

func TestRedisStoreGarbageIsAnError(t *testing.T) {
	store, mr := newRedisStore(t)
	mr.HSet("quota:a@x.com", "remaining", "lots", "last_reset_date", "2024-05-01")

	_, _, err := store.Load(context.Background(), "a@x.com")
	assert.Error(t, err)

	m := NewManager(Options{
		Store:    store,
		DailyMax: 5,
		Now:      func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) },
	})
	assert.Equal(t, 5, m.Initialize(context.Background(), "a@x.com"))
	assert.Equal(t, "5", mr.HGet("quota:a@x.com", "remaining"))
}

func TestManagerOverSQLite(t *testing.T) {
	store := newSQLiteStore(t)
	day := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	m := NewManager(Options{Store: store, DailyMax: 2, Now: func() time.Time { return day }})
	ctx := context.Background()

	assert.Equal(t, 2, m.Initialize(ctx, "a@x.com"))
	assert.Equal(t, 1, m.Consume(ctx, "a@x.com"))
	assert.Equal(t, 0, m.Consume(ctx, "a@x.com"))
	assert.Equal(t, 0, m.Consume(ctx, "a@x.com"))

	day = day.Add(24 * time.Hour)
	assert.Equal(t, 2, m.Initialize(ctx, "a@x.com"))
}
