package cachemanager

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type digestKey string

type stepFindings struct {
	Step   string
	Errors int
}

func TestNewInMemoryCacheManager(t *testing.T) {
	require.NotPanics(t, func() {
		NewInMemoryCacheManager[string, string](NoExpiration, DefaultCleanupInterval)
	})
}

func TestInMemoryCacheManager_GetExistingValue_StructType(t *testing.T) {
	cache := NewInMemoryCacheManager[digestKey, stepFindings](NoExpiration, DefaultCleanupInterval)
	findings := stepFindings{Step: "xcodebuild", Errors: 2}
	cache.Set(context.Background(), "build:abc", findings, NoExpiration)

	got, ok := cache.Get(context.Background(), "build:abc")
	require.True(t, ok)
	require.Equal(t, findings, got)
}

func TestInMemoryCacheManager_GetWithNoExistingValue(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string](NoExpiration, DefaultCleanupInterval)

	got, ok := cache.Get(context.Background(), "missing")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_GetWithExistingInvalidValueType(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string](NoExpiration, DefaultCleanupInterval)

	cache.cache.Set("step", 123, NoExpiration)

	got, ok := cache.Get(context.Background(), "step")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_ExpiredEntryIsMiss(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string](NoExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "build", "compile", time.Nanosecond)

	time.Sleep(time.Millisecond)
	_, ok := cache.Get(context.Background(), "build")
	require.False(t, ok)
}

func TestInMemoryCacheManager_ConcurrentAccess(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string](NoExpiration, DefaultCleanupInterval)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("key-%d", (id*10+j)%100)
				_, _ = cache.Get(ctx, key)
				cache.Set(ctx, key, fmt.Sprintf("updated-%d-%d", id, j), NoExpiration)
			}
		}(i)
	}
	wg.Wait()
}
