package crm_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crmplatform-io/crm/pkg/crm"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	t.Parallel()

	cache := crm.NewMemoryCache(10)
	ctx := context.Background()

	entry := &crm.CacheEntry{
		Data:      []byte("cached body"),
		ExpiresAt: time.Now().Add(1 * time.Hour),
		ETag:      "abc123",
	}

	err := cache.Set(ctx, "key1", entry)
	require.NoError(t, err)

	retrieved, err := cache.Get(ctx, "key1")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, retrieved.Data)
	assert.Equal(t, entry.ETag, retrieved.ETag)
}

func TestMemoryCache_GetMissing(t *testing.T) {
	t.Parallel()

	cache := crm.NewMemoryCache(10)

	_, err := cache.Get(context.Background(), "nope")
	require.ErrorIs(t, err, crm.ErrCacheKeyNotFound)
}

func TestMemoryCache_GetExpired(t *testing.T) {
	t.Parallel()

	cache := crm.NewMemoryCache(10)
	ctx := context.Background()

	err := cache.Set(ctx, "key1", &crm.CacheEntry{
		Data:      []byte("stale"),
		ExpiresAt: time.Now().Add(-1 * time.Minute),
	})
	require.NoError(t, err)

	_, err = cache.Get(ctx, "key1")
	require.ErrorIs(t, err, crm.ErrCacheEntryStale)

	// The expired entry is dropped on access.
	assert.False(t, cache.Has(ctx, "key1"))
}

func TestMemoryCache_Eviction(t *testing.T) {
	t.Parallel()

	cache := crm.NewMemoryCache(3)
	ctx := context.Background()

	for i := range 3 {
		err := cache.Set(ctx, fmt.Sprintf("key%d", i), &crm.CacheEntry{
			Data:      []byte("data"),
			ExpiresAt: time.Now().Add(time.Duration(i+1) * time.Hour),
		})
		require.NoError(t, err)
	}

	// key0 has the nearest expiry and is evicted to make room.
	err := cache.Set(ctx, "key3", &crm.CacheEntry{
		Data:      []byte("data"),
		ExpiresAt: time.Now().Add(10 * time.Hour),
	})
	require.NoError(t, err)

	assert.False(t, cache.Has(ctx, "key0"))
	assert.True(t, cache.Has(ctx, "key1"))
	assert.True(t, cache.Has(ctx, "key3"))
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	t.Parallel()

	cache := crm.NewMemoryCache(10)
	ctx := context.Background()

	entry := &crm.CacheEntry{Data: []byte("data"), ExpiresAt: time.Now().Add(time.Hour)}

	require.NoError(t, cache.Set(ctx, "key1", entry))
	require.NoError(t, cache.Set(ctx, "key2", entry))

	require.NoError(t, cache.Delete(ctx, "key1"))
	assert.False(t, cache.Has(ctx, "key1"))
	assert.True(t, cache.Has(ctx, "key2"))

	require.NoError(t, cache.Clear(ctx))
	assert.False(t, cache.Has(ctx, "key2"))
}

func TestMemoryCache_Cleanup(t *testing.T) {
	t.Parallel()

	cache := crm.NewMemoryCache(10)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "fresh", &crm.CacheEntry{
		Data:      []byte("data"),
		ExpiresAt: time.Now().Add(time.Hour),
	}))
	require.NoError(t, cache.Set(ctx, "stale", &crm.CacheEntry{
		Data:      []byte("data"),
		ExpiresAt: time.Now().Add(-time.Hour),
	}))

	cache.Cleanup()

	assert.True(t, cache.Has(ctx, "fresh"))
	assert.False(t, cache.Has(ctx, "stale"))
}

func TestCacheEntry_Expired(t *testing.T) {
	t.Parallel()

	assert.False(t, (&crm.CacheEntry{ExpiresAt: time.Now().Add(time.Hour)}).Expired())
	assert.True(t, (&crm.CacheEntry{ExpiresAt: time.Now().Add(-time.Second)}).Expired())

	// Zero expiry means no TTL.
	assert.False(t, (&crm.CacheEntry{}).Expired())
}

func TestCacheManager_GetCacheKey(t *testing.T) {
	t.Parallel()

	manager := crm.NewCacheManager(crm.NewMemoryCache(10), nil)

	assert.Equal(t, "GET:/api/v1/customers", manager.GetCacheKey("GET", "/api/v1/customers", nil))

	// Params are sorted so the key is deterministic.
	key1 := manager.GetCacheKey("GET", "/api/v1/customers", map[string]string{"page": "1", "status": "active"})
	key2 := manager.GetCacheKey("GET", "/api/v1/customers", map[string]string{"status": "active", "page": "1"})
	assert.Equal(t, key1, key2)
	assert.Equal(t, "GET:/api/v1/customers:page=1&status=active", key1)
}

func TestCacheManager_GetSetStats(t *testing.T) {
	t.Parallel()

	manager := crm.NewCacheManager(crm.NewMemoryCache(10), nil)
	ctx := context.Background()

	_, err := manager.Get(ctx, "missing")
	require.Error(t, err)

	require.NoError(t, manager.Set(ctx, "key1", []byte("body"), time.Hour))

	data, err := manager.Get(ctx, "key1")
	require.NoError(t, err)
	assert.Equal(t, []byte("body"), data)

	stats := manager.GetStats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Sets)
	assert.InDelta(t, 0.5, stats.GetHitRate(), 0.001)
}

func TestCacheManager_NilBackend(t *testing.T) {
	t.Parallel()

	manager := crm.NewCacheManager(nil, nil)
	ctx := context.Background()

	_, err := manager.Get(ctx, "key")
	require.ErrorIs(t, err, crm.ErrCacheDisabled)

	// Set and Invalidate are no-ops without a backend.
	require.NoError(t, manager.Set(ctx, "key", []byte("data"), time.Hour))
	require.NoError(t, manager.Invalidate(ctx, "key"))
}

func TestCacheManager_MaxValueSize(t *testing.T) {
	t.Parallel()

	manager := crm.NewCacheManager(crm.NewMemoryCache(10), &crm.CacheOptions{
		DefaultTTL:   time.Hour,
		MaxValueSize: 4,
	})
	ctx := context.Background()

	require.NoError(t, manager.Set(ctx, "big", []byte("too large"), time.Hour))

	_, err := manager.Get(ctx, "big")
	require.Error(t, err)
}

func TestCacheStats_GetHitRate(t *testing.T) {
	t.Parallel()

	assert.Zero(t, (&crm.CacheStats{}).GetHitRate())
	assert.InDelta(t, 0.75, (&crm.CacheStats{Hits: 3, Misses: 1}).GetHitRate(), 0.001)
}

func TestCachingPolicy_ShouldCache(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		policy *crm.CachingPolicy
		method string
		path   string
		status int
		want   bool
	}{
		{
			name:   "default policy caches successful GET",
			policy: crm.DefaultCachingPolicy(),
			method: "GET", path: "/api/v1/customers", status: 200,
			want: true,
		},
		{
			name:   "default policy skips auth paths",
			policy: crm.DefaultCachingPolicy(),
			method: "GET", path: "/api/v1/auth/me", status: 200,
			want: false,
		},
		{
			name:   "default policy skips POST",
			policy: crm.DefaultCachingPolicy(),
			method: "POST", path: "/api/v1/customers", status: 201,
			want: false,
		},
		{
			name:   "default policy skips errors",
			policy: crm.DefaultCachingPolicy(),
			method: "GET", path: "/api/v1/customers", status: 404,
			want: false,
		},
		{
			name:   "delete is never cached",
			policy: &crm.CachingPolicy{CacheGET: true, CachePOST: true},
			method: "DELETE", path: "/api/v1/customers/c1", status: 204,
			want: false,
		},
		{
			name: "include paths restrict caching",
			policy: &crm.CachingPolicy{
				CacheGET:     true,
				IncludePaths: []string{"/api/v1/pipelines"},
			},
			method: "GET", path: "/api/v1/customers", status: 200,
			want: false,
		},
		{
			name: "include paths allow matches",
			policy: &crm.CachingPolicy{
				CacheGET:     true,
				IncludePaths: []string{"/api/v1/pipelines"},
			},
			method: "GET", path: "/api/v1/pipelines/p1", status: 200,
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.policy.ShouldCache(tt.method, tt.path, tt.status))
		})
	}
}
