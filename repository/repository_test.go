package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fincalc-agent/domain"
)

func TestCalculationRepositoryMemory_SaveAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewCalculationRepositoryMemory(0)

	require.NoError(t, repo.Save(ctx, domain.Calculation{Kind: domain.KindEMI}))
	require.NoError(t, repo.Save(ctx, domain.Calculation{Kind: domain.KindSIP}))
	require.NoError(t, repo.Save(ctx, domain.Calculation{Kind: domain.KindEMI, ID: "fixed"}))

	emis, err := repo.List(ctx, domain.KindEMI)
	require.NoError(t, err)
	require.Len(t, emis, 2)
	assert.NotEmpty(t, emis[0].ID)
	assert.False(t, emis[0].CreatedAt.IsZero())
	assert.Equal(t, "fixed", emis[1].ID)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCalculationRepositoryMemory_Limit(t *testing.T) {
	ctx := context.Background()
	repo := NewCalculationRepositoryMemory(2)

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Save(ctx, domain.Calculation{ID: id, Kind: domain.KindTax}))
	}

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].ID)
	assert.Equal(t, "c", all[1].ID)
}

func TestCalculationRepositoryMemory_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := NewCalculationRepositoryMemory(0)
	assert.ErrorIs(t, repo.Save(ctx, domain.Calculation{}), context.Canceled)
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(0)
	now := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	require.NoError(t, cache.Set(ctx, "forever", "1", 0))
	require.NoError(t, cache.Set(ctx, "short", "2", time.Minute))

	v, ok := cache.Get(ctx, "short")
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	now = now.Add(time.Minute)
	_, ok = cache.Get(ctx, "short")
	assert.False(t, ok)

	v, ok = cache.Get(ctx, "forever")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	assert.Equal(t, 1, cache.Len())

	_, ok = cache.Get(ctx, "missing")
	assert.False(t, ok)
}

func TestMemoryCache_SweepsExpiredEntriesOnWrite(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(0)
	now := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	require.NoError(t, cache.Set(ctx, "pinned", "p", 0))
	for i := 0; i < 100_000; i++ {
		require.NoError(t, cache.Set(ctx, fmt.Sprintf("emi:%d", i), "v", time.Second))
	}
	require.NoError(t, cache.Set(ctx, "later", "l", time.Hour))
	assert.Equal(t, 100_002, cache.Len())

	now = now.Add(time.Minute)
	require.NoError(t, cache.Set(ctx, "fresh", "f", time.Second))
	assert.Equal(t, 3, cache.Len())

	now = now.Add(time.Hour)
	require.NoError(t, cache.Set(ctx, "next", "n", time.Second))
	assert.Equal(t, 2, cache.Len())

	v, ok := cache.Get(ctx, "pinned")
	assert.True(t, ok)
	assert.Equal(t, "p", v)
}

func TestMemoryCache_EvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(3)

	for _, key := range []string{"a", "b", "c"} {
		require.NoError(t, cache.Set(ctx, key, key, 0))
	}
	_, ok := cache.Get(ctx, "a")
	require.True(t, ok)

	require.NoError(t, cache.Set(ctx, "d", "d", 0))
	assert.Equal(t, 3, cache.Len())

	_, ok = cache.Get(ctx, "b")
	assert.False(t, ok, "b was least recently used")
	for _, key := range []string{"a", "c", "d"} {
		_, ok := cache.Get(ctx, key)
		assert.True(t, ok, key)
	}

	require.NoError(t, cache.Set(ctx, "c", "c2", 0))
	assert.Equal(t, 3, cache.Len())
	v, _ := cache.Get(ctx, "c")
	assert.Equal(t, "c2", v)
}

func TestRedisCache(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	ctx := context.Background()
	cache := NewRedisCache(RedisOptions{Address: mr.Addr(), Prefix: "fincalc:"})
	defer cache.Close()

	require.NoError(t, cache.Ping(ctx))
	require.NoError(t, cache.Set(ctx, "emi:1", `{"emi":1}`, time.Hour))

	assert.True(t, mr.Exists("fincalc:emi:1"))
	assert.Equal(t, time.Hour, mr.TTL("fincalc:emi:1"))

	v, ok := cache.Get(ctx, "emi:1")
	assert.True(t, ok)
	assert.Equal(t, `{"emi":1}`, v)

	mr.FastForward(2 * time.Hour)
	_, ok = cache.Get(ctx, "emi:1")
	assert.False(t, ok)
}

func TestRedisCache_Unavailable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	cache := NewRedisCache(RedisOptions{Address: mr.Addr()})
	defer cache.Close()
	mr.Close()

	ctx := context.Background()
	assert.Error(t, cache.Ping(ctx))
	_, ok := cache.Get(ctx, "k")
	assert.False(t, ok)
	assert.Error(t, cache.Set(ctx, "k", "v", 0))
}
