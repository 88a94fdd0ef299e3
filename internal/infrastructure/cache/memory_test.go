package cache_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infracache "borntoday-backend/internal/infrastructure/cache"
	"borntoday-backend/pkg/cache"
)

type pageContext struct {
	Title string   `json:"title"`
	Slugs []string `json:"slugs"`
	Total int      `json:"total"`
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestMemoryCache_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := infracache.NewMemoryCache()

	want := pageContext{Title: "Born on July 15", Slugs: []string{"a", "b"}, Total: 2}
	require.NoError(t, c.Set(ctx, "birthday_stars_7_15_0_1", want, 24*time.Hour))

	var got pageContext
	found, err := c.Get(ctx, "birthday_stars_7_15_0_1", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, want, got)

	require.NoError(t, c.Delete(ctx, "birthday_stars_7_15_0_1"))

	found, err = c.Get(ctx, "birthday_stars_7_15_0_1", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCache_Get(t *testing.T) {
	t.Parallel()

	t.Run("missing key is absent, not an error", func(t *testing.T) {
		t.Parallel()

		var v int
		found, err := infracache.NewMemoryCache().Get(context.Background(), "missing", &v)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("expired entry is absent", func(t *testing.T) {
		t.Parallel()

		clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
		c := infracache.NewMemoryCache(infracache.WithClock(clock.Now))
		ctx := context.Background()

		require.NoError(t, c.Set(ctx, "index_page_3_1", "home", 24*time.Hour))
		clock.Advance(23 * time.Hour)

		var v string
		found, err := c.Get(ctx, "index_page_3_1", &v)
		require.NoError(t, err)
		assert.True(t, found)

		clock.Advance(time.Hour)
		found, err = c.Get(ctx, "index_page_3_1", &v)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("no expiry survives any amount of time", func(t *testing.T) {
		t.Parallel()

		clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
		c := infracache.NewMemoryCache(infracache.WithClock(clock.Now))
		ctx := context.Background()

		require.NoError(t, c.Set(ctx, "tag_viable_actors_france", true, cache.NoExpiry))
		clock.Advance(365 * 24 * time.Hour)

		var v bool
		found, err := c.Get(ctx, "tag_viable_actors_france", &v)
		require.NoError(t, err)
		assert.True(t, found)
		assert.True(t, v)
	})

	t.Run("stored value is a copy", func(t *testing.T) {
		t.Parallel()

		c := infracache.NewMemoryCache()
		ctx := context.Background()

		orig := pageContext{Slugs: []string{"a"}}
		require.NoError(t, c.Set(ctx, "k", orig, time.Minute))
		orig.Slugs[0] = "mutated"

		var got pageContext
		_, err := c.Get(ctx, "k", &got)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, got.Slugs)
	})
}

func TestMemoryCache_SweepsExpiredEntries(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	c := infracache.NewMemoryCache(infracache.WithClock(clock.Now), infracache.WithSweepThreshold(4))
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "search_a", 1, time.Hour))
	require.NoError(t, c.Set(ctx, "search_b", 1, time.Hour))
	require.NoError(t, c.Set(ctx, "tag_viable_actors_france", true, cache.NoExpiry))
	assert.Equal(t, 3, c.Len())

	clock.Advance(2 * time.Hour)
	require.NoError(t, c.Set(ctx, "search_c", 1, time.Hour))

	assert.Equal(t, 2, c.Len(), "expired search variants are swept on write")
	var viable bool
	found, err := c.Get(ctx, "tag_viable_actors_france", &viable)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestMemoryCache_DeletePattern(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := infracache.NewMemoryCache()

	for _, k := range []string{
		"country_france_a1", "country_france_b2", "country_spain_a1", "countries_all",
	} {
		require.NoError(t, c.Set(ctx, k, 1, time.Minute))
	}

	require.NoError(t, c.DeletePattern(ctx, "country_france_*"))

	var v int
	for k, want := range map[string]bool{
		"country_france_a1": false,
		"country_france_b2": false,
		"country_spain_a1":  true,
		"countries_all":     true,
	} {
		found, err := c.Get(ctx, k, &v)
		require.NoError(t, err)
		assert.Equal(t, want, found, k)
	}
}

func TestMemoryCache_Clear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := infracache.NewMemoryCache()
	require.NoError(t, c.Set(ctx, "a", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "b", 2, cache.NoExpiry))

	require.NoError(t, c.Clear(ctx))
	assert.Equal(t, 0, c.Len())
}

func TestInstrumented_DelegatesToBackend(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := infracache.NewInstrumented(infracache.NewMemoryCache())

	require.NoError(t, c.Set(ctx, "site_stats", map[string]int{"stars": 3}, time.Hour))

	var got map[string]int
	found, err := c.Get(ctx, "site_stats", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 3, got["stars"])

	require.NoError(t, c.DeletePattern(ctx, "site_*"))
	found, err = c.Get(ctx, "site_stats", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, c.Ping(ctx))
}
