package cachekey_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"borntoday-backend/internal/domains/page/cachekey"
	infracache "borntoday-backend/internal/infrastructure/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, c *infracache.MemoryCache, keys ...string) {
	t.Helper()
	for _, k := range keys {
		require.NoError(t, c.Set(context.Background(), k, 1, time.Hour))
	}
}

func present(c *infracache.MemoryCache, key string) bool {
	var v int
	ok, _ := c.Get(context.Background(), key, &v)
	return ok
}

func TestPlanForStar_CoversHomeOfPreviousDay(t *testing.T) {
	p := cachekey.PlanForStar(cachekey.StarKeys{
		Slug:      "x",
		Name:      "y",
		BirthDate: time.Date(1985, time.July, 15, 0, 0, 0, 0, time.UTC),
	})
	assert.Contains(t, p.Keys, "index_page_7_15")
	assert.Contains(t, p.Keys, "index_page_7_14")
	assert.Contains(t, p.Patterns, "birthday_stars_7_15_*")
	assert.Contains(t, p.Patterns, "names_letter_Y_*")
}

func TestPlanForStar_MarchFirstCoversBothFebruaryEnds(t *testing.T) {
	for _, year := range []int{1980, 1981} {
		p := cachekey.PlanForStar(cachekey.StarKeys{
			Slug:      "x",
			Name:      "y",
			BirthDate: time.Date(year, time.March, 1, 0, 0, 0, 0, time.UTC),
		})
		assert.Contains(t, p.Keys, "index_page_3_1", "born %d", year)
		assert.Contains(t, p.Keys, "index_page_2_29", "born %d", year)
		assert.Contains(t, p.Keys, "index_page_2_28", "born %d", year)
	}
}

func TestPlanForStar_LeapDayCoversFebruary28(t *testing.T) {
	p := cachekey.PlanForStar(cachekey.StarKeys{
		Slug:      "x",
		Name:      "y",
		BirthDate: time.Date(1984, time.February, 29, 0, 0, 0, 0, time.UTC),
	})
	assert.Contains(t, p.Keys, "index_page_2_29")
	assert.Contains(t, p.Keys, "index_page_2_28")
	assert.NotContains(t, p.Keys, "index_page_3_1")
}

func TestStarChanged_DropsAffectedEntriesOnly(t *testing.T) {
	ctx := context.Background()
	c := infracache.NewMemoryCache()
	inv := cachekey.NewInvalidator(c)

	affected := []string{
		cachekey.SiteStats,
		cachekey.StarCount,
		cachekey.NamesPage,
		cachekey.AboutPage,
		cachekey.StarDetail("alla"),
		cachekey.Index(4, 15),
		cachekey.Index(4, 14),
		cachekey.Birthday(4, 15, 0, 1),
		cachekey.Birthday(4, 15, 1949, 2),
		cachekey.Dates(2024),
		cachekey.Celebrities("abc"),
		cachekey.Search("abc"),
		cachekey.Sitemap("stars", 1),
		cachekey.NamesLetter("А", 1),
		cachekey.Country("russia", "abc"),
		cachekey.CountryTags("russia"),
		cachekey.Category("singers", "abc"),
		cachekey.CategoryTags("singers"),
		cachekey.TagViable("singers", "russia"),
		cachekey.TagPage("singers", "russia", "abc"),
	}
	untouched := []string{
		cachekey.RulesPage,
		cachekey.StarDetail("other"),
		cachekey.Index(4, 16),
		cachekey.Birthday(4, 16, 0, 1),
		cachekey.NamesLetter("Б", 1),
		cachekey.Country("france", "abc"),
		cachekey.TagViable("actors", "russia"),
		cachekey.TagPage("singers", "france", "abc"),
	}
	seed(t, c, affected...)
	seed(t, c, untouched...)

	inv.StarChanged(ctx, cachekey.StarKeys{
		Slug:          "alla",
		Name:          "алла",
		BirthDate:     time.Date(1949, time.April, 15, 0, 0, 0, 0, time.UTC),
		CategorySlugs: []string{"singers"},
		CountrySlugs:  []string{"russia"},
	})

	for _, k := range affected {
		assert.False(t, present(c, k), k)
	}
	for _, k := range untouched {
		assert.True(t, present(c, k), k)
	}
}

func TestCatalogChanged(t *testing.T) {
	c := infracache.NewMemoryCache()
	seed(t, c, cachekey.Country("a", "v"), cachekey.Category("b", "v"), cachekey.StarDetail("s"))

	cachekey.NewInvalidator(c).CatalogChanged(context.Background())

	assert.False(t, present(c, cachekey.Country("a", "v")))
	assert.False(t, present(c, cachekey.Category("b", "v")))
	assert.True(t, present(c, cachekey.StarDetail("s")))
}

func TestDailyPlan_IncludesEveryHomePage(t *testing.T) {
	p := cachekey.DailyPlan()
	assert.Contains(t, p.Keys, cachekey.Index(2, 29))
	assert.Contains(t, p.Keys, cachekey.Index(12, 31))
	// 366 home pages plus the three counters.
	assert.Len(t, p.Keys, 369)
}

// refusingCache cannot flush everything at once.
type refusingCache struct {
	*infracache.MemoryCache
}

func (refusingCache) Clear(context.Context) error { return errors.New("FLUSHDB disabled") }

func TestClearAll_FallsBackToDailyPlan(t *testing.T) {
	ctx := context.Background()
	mem := infracache.NewMemoryCache()
	seed(t, mem, cachekey.Index(7, 1), cachekey.Birthday(7, 1, 0, 1), cachekey.StarDetail("kept"))

	require.NoError(t, cachekey.NewInvalidator(refusingCache{mem}).ClearAll(ctx))

	assert.False(t, present(mem, cachekey.Index(7, 1)))
	assert.False(t, present(mem, cachekey.Birthday(7, 1, 0, 1)))
	assert.True(t, present(mem, cachekey.StarDetail("kept")))
}

func TestClearAll(t *testing.T) {
	mem := infracache.NewMemoryCache()
	seed(t, mem, cachekey.StarDetail("gone"))

	require.NoError(t, cachekey.NewInvalidator(mem).ClearAll(context.Background()))
	assert.Equal(t, 0, mem.Len())
}

func TestVariant_Stable(t *testing.T) {
	assert.Equal(t, cachekey.Variant("rating", "", "2"), cachekey.Variant("rating", "", "2"))
	assert.NotEqual(t, cachekey.Variant("rating", "a"), cachekey.Variant("ratinga"))
	assert.Len(t, cachekey.Variant(), 8)
}
