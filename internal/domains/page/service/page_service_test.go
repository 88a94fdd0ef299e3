package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"borntoday-backend/internal/domains/category"
	"borntoday-backend/internal/domains/country"
	"borntoday-backend/internal/domains/page"
	"borntoday-backend/internal/domains/page/cachekey"
	"borntoday-backend/internal/domains/page/service"
	"borntoday-backend/internal/domains/star/model"
	infracache "borntoday-backend/internal/infrastructure/cache"
	"borntoday-backend/internal/testsupport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Page tests share the package-level singleflight group through cache.Fetch,
// so they do not run in parallel.

var fixedNow = time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store *testsupport.Store
	cache *infracache.MemoryCache
	inv   *cachekey.Invalidator
	svc   service.PageService
	ctx   context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := testsupport.NewStore()
	c := infracache.NewMemoryCache()
	return &fixture{
		store: store,
		cache: c,
		inv:   cachekey.NewInvalidator(c),
		svc: service.NewPageService(store.Stars(), store.Countries(), store.Categories(), c,
			service.WithClock(func() time.Time { return fixedNow }),
			service.WithPhotoURL(func(key string) string { return "https://cdn.test/" + key })),
		ctx: context.Background(),
	}
}

// publish seeds a published star and invalidates like the star service does.
func (f *fixture) publish(seed testsupport.StarSeed) model.Star {
	st := f.store.AddStar(seed)
	f.inv.StarChanged(f.ctx, cachekey.StarKeys{
		Slug:          st.Slug,
		Name:          st.Name,
		BirthDate:     st.BirthDate,
		CategorySlugs: st.CategorySlugs(),
		CountrySlugs:  st.CountrySlugs(),
	})
	return st
}

func names(cards []model.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Name
	}
	return out
}

func TestBirthday_RatingOrderAndFilters(t *testing.T) {
	f := newFixture(t)
	f.store.AddStar(testsupport.StarSeed{Name: "Low", Birth: "1980-07-15", Rating: 5})
	f.store.AddStar(testsupport.StarSeed{Name: "High", Birth: "1970-07-15", Rating: 9})
	f.store.AddStar(testsupport.StarSeed{Name: "Mid", Birth: "1990-07-15", Rating: 7})
	f.store.AddStar(testsupport.StarSeed{Name: "Hidden", Birth: "1990-07-15", Rating: 10, Unpublished: true})
	f.store.AddStar(testsupport.StarSeed{Name: "Other day", Birth: "1990-07-16", Rating: 10})

	p, err := f.svc.Birthday(f.ctx, 7, 15, "", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"High", "Mid", "Low"}, names(p.Stars))
	assert.Equal(t, int64(3), p.Pagination.Total)
	assert.Equal(t, "Дни рождения 15 июля", p.Title)
	assert.Equal(t, "2024-02-29", p.Nav.Yesterday)
	assert.Equal(t, "2024-03-02", p.Nav.Tomorrow)

	byYear, err := f.svc.Birthday(f.ctx, 7, 15, "1990", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Mid"}, names(byYear.Stars))
	assert.Equal(t, "Дни рождения 15 июля 1990 года", byYear.Title)
}

func TestBirthday_InvalidDates(t *testing.T) {
	f := newFixture(t)

	for _, d := range [][2]int{{2, 30}, {13, 1}, {0, 10}, {4, 31}} {
		_, err := f.svc.Birthday(f.ctx, d[0], d[1], "", "")
		assert.ErrorIs(t, err, page.ErrNotFound, "%d-%d", d[0], d[1])
	}

	_, err := f.svc.Birthday(f.ctx, 2, 29, "", "")
	assert.NoError(t, err)
}

func TestBirthday_Pagination(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 45; i++ {
		f.store.AddStar(testsupport.StarSeed{Name: fmt.Sprintf("Star %02d", i), Birth: "1985-07-15", Rating: i})
	}

	p, err := f.svc.Birthday(f.ctx, 7, 15, "", "3")
	require.NoError(t, err)
	assert.Len(t, p.Stars, 5)
	assert.Equal(t, 3, p.Pagination.Number)
	assert.Equal(t, 3, p.Pagination.NumPages)
	assert.False(t, p.Pagination.HasNext)

	// Out of range pages clamp to the last one.
	last, err := f.svc.Birthday(f.ctx, 7, 15, "", "99")
	require.NoError(t, err)
	assert.Equal(t, 3, last.Pagination.Number)
}

func TestHome_LimitsAndFullCounts(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 14; i++ {
		f.store.AddStar(testsupport.StarSeed{Name: fmt.Sprintf("Today %02d", i), Birth: "1980-03-01", Rating: i})
	}
	for i := 0; i < 3; i++ {
		f.store.AddStar(testsupport.StarSeed{Name: fmt.Sprintf("Tomorrow %d", i), Birth: "1980-03-02", Rating: i})
	}

	home, err := f.svc.Home(f.ctx)
	require.NoError(t, err)

	assert.Len(t, home.TodayStars, page.HomeTodayLimit)
	assert.Equal(t, int64(14), home.TodayCount)
	assert.Equal(t, "Today 13", home.TodayStars[0].Name)
	assert.Len(t, home.TomorrowStars, 3)
	assert.Equal(t, int64(3), home.TomorrowCount)
	require.NotNil(t, home.Stats)
	assert.Equal(t, int64(17), home.Stats.StarCount)
	assert.Equal(t, int64(14), home.Stats.BirthdayCount)
}

func TestCountry_BirthdaySortAndFilters(t *testing.T) {
	f := newFixture(t)
	fr := f.store.AddCountry("Франция", "france", "Франции")
	actors := f.store.AddCategory("Актеры", "actors")

	for name, birth := range map[string]string{
		"Feb 28": "1970-02-28",
		"Mar 1":  "1970-03-01",
		"Mar 2":  "1970-03-02",
		"Dec 25": "1970-12-25",
	} {
		f.store.AddStar(testsupport.StarSeed{Name: name, Birth: birth,
			Countries: []country.Country{fr}, Categories: []category.Category{actors}})
	}

	p, err := f.svc.Country(f.ctx, "france", page.ListingQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Mar 2", "Dec 25", "Feb 28", "Mar 1"}, names(p.Stars))
	assert.Equal(t, "Знаменитости из Франции", p.Title)
	assert.Equal(t, "birthday", p.Sort)

	byName, err := f.svc.Country(f.ctx, "france", page.ListingQuery{Sort: "name_desc", Name: "mar"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Mar 2", "Mar 1"}, names(byName.Stars))

	_, err = f.svc.Country(f.ctx, "france", page.ListingQuery{Category: "nope"})
	assert.ErrorIs(t, err, page.ErrNotFound)

	_, err = f.svc.Country(f.ctx, "atlantis", page.ListingQuery{})
	assert.ErrorIs(t, err, page.ErrNotFound)
}

func TestCountry_UnknownSortKeepsDefault(t *testing.T) {
	f := newFixture(t)
	f.store.AddCountry("Франция", "france", "")

	p, err := f.svc.Country(f.ctx, "france", page.ListingQuery{Sort: "shoe_size"})
	require.NoError(t, err)
	assert.Equal(t, string(model.SortBirthday), p.Sort)
	assert.Equal(t, "Знаменитости из Франция", p.Title)
}

func TestTag_ViableFromTenthStar(t *testing.T) {
	f := newFixture(t)
	fr := f.store.AddCountry("Франция", "france", "Франции")
	actors := f.store.AddCategory("Актеры", "actors")

	seed := func(i int) testsupport.StarSeed {
		return testsupport.StarSeed{
			Name:       fmt.Sprintf("Actor %d", i),
			Birth:      "1970-05-05",
			Rating:     i,
			Countries:  []country.Country{fr},
			Categories: []category.Category{actors},
		}
	}
	for i := 0; i < 9; i++ {
		f.publish(seed(i))
	}

	viable, err := f.svc.CheckTagViability(f.ctx, "actors", "france")
	require.NoError(t, err)
	assert.False(t, viable)
	_, err = f.svc.Tag(f.ctx, "actors-france", page.ListingQuery{})
	assert.ErrorIs(t, err, page.ErrNotFound)

	f.publish(seed(9))

	viable, err = f.svc.CheckTagViability(f.ctx, "actors", "france")
	require.NoError(t, err)
	assert.True(t, viable)

	p, err := f.svc.Tag(f.ctx, "actors-france", page.ListingQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(10), p.Pagination.Total)
	assert.Equal(t, "Актеры из Франции", p.Title)
	assert.Equal(t, "actors-france", p.Slug)
}

func TestTag_HyphenatedSlugs(t *testing.T) {
	f := newFixture(t)
	kr := f.store.AddCountry("Южная Корея", "south-korea", "")
	f.store.AddCountry("Корея", "korea-north", "")
	hosts := f.store.AddCategory("Телеведущие", "tv-hosts")

	for i := 0; i < 10; i++ {
		f.store.AddStar(testsupport.StarSeed{Name: fmt.Sprintf("Host %d", i), Birth: "1980-01-01",
			Countries: []country.Country{kr}, Categories: []category.Category{hosts}})
	}

	p, err := f.svc.Tag(f.ctx, "tv-hosts-south-korea", page.ListingQuery{})
	require.NoError(t, err)
	assert.Equal(t, "tv-hosts", p.Category.Slug)
	assert.Equal(t, "south-korea", p.Country.Slug)

	for _, bad := range []string{"tv-hosts", "nothing", "tv-hosts-", "-south-korea"} {
		_, err := f.svc.Tag(f.ctx, bad, page.ListingQuery{})
		assert.ErrorIs(t, err, page.ErrNotFound, bad)
	}
}

func TestStar_DetailAndTagBlocks(t *testing.T) {
	f := newFixture(t)
	fr := f.store.AddCountry("Франция", "france", "Франции")
	actors := f.store.AddCategory("Актеры", "actors")
	singers := f.store.AddCategory("Певцы", "singers")

	main := f.store.AddStar(testsupport.StarSeed{Name: "Main", Slug: "main", Birth: "1950-06-01", Death: "2000-06-02",
		Countries: []country.Country{fr}, Categories: []category.Category{actors, singers}})
	for i := 0; i < 12; i++ {
		f.store.AddStar(testsupport.StarSeed{Name: fmt.Sprintf("Actor %d", i), Birth: "1960-01-01", Rating: i,
			Countries: []country.Country{fr}, Categories: []category.Category{actors}})
	}
	f.store.AddStar(testsupport.StarSeed{Name: "Draft", Slug: "draft", Birth: "1960-01-01", Unpublished: true})

	p, err := f.svc.Star(f.ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, "Main - биография и день рождения", p.Title)
	assert.Equal(t, "1950 - 2000", p.Star.YearsRange)
	assert.Equal(t, 50, p.Star.Age)

	require.Len(t, p.PopularTags, 1, "singers-france has one star and is not viable")
	block := p.PopularTags[0]
	assert.Equal(t, "actors-france", block.Slug)
	assert.Equal(t, "Актеры из Франция", block.Title)
	assert.Equal(t, int64(13), block.Count)
	assert.Len(t, block.Stars, 5)
	assert.NotContains(t, names(block.Stars), main.Name)
	assert.Equal(t, "Actor 11", block.Stars[0].Name)

	_, err = f.svc.Star(f.ctx, "draft")
	assert.ErrorIs(t, err, page.ErrNotFound)
	_, err = f.svc.Star(f.ctx, "missing")
	assert.ErrorIs(t, err, page.ErrNotFound)
}

func TestSearch_AnyWord(t *testing.T) {
	f := newFixture(t)
	f.store.AddStar(testsupport.StarSeed{Name: "Алла Пугачева", Birth: "1949-04-15", Rating: 9})
	f.store.AddStar(testsupport.StarSeed{Name: "Филипп Киркоров", Birth: "1967-04-30", Rating: 8})
	f.store.AddStar(testsupport.StarSeed{Name: "Иван Иванов", Birth: "1967-04-30", Rating: 1})

	p, err := f.svc.Search(f.ctx, page.SearchQuery{Q: "  пугачева   КИРКОРОВ "})
	require.NoError(t, err)
	assert.Equal(t, []string{"Алла Пугачева", "Филипп Киркоров"}, names(p.Stars))
	assert.Equal(t, "Поиск: пугачева   КИРКОРОВ", p.Title)
}

func TestNames(t *testing.T) {
	f := newFixture(t)
	f.store.AddStar(testsupport.StarSeed{Name: "Борис", Birth: "1931-02-01"})
	f.store.AddStar(testsupport.StarSeed{Name: "Анна", Birth: "1931-02-01"})
	f.store.AddStar(testsupport.StarSeed{Name: "Adele", Birth: "1988-05-05"})

	p, err := f.svc.Names(f.ctx)
	require.NoError(t, err)
	require.Len(t, p.Letters, 3)
	assert.Equal(t, "А", p.Letters[0].Letter)
	assert.Equal(t, "Б", p.Letters[1].Letter)
	assert.Equal(t, "A", p.Letters[2].Letter)

	letter, err := f.svc.NamesLetter(f.ctx, "б", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Борис"}, names(letter.Stars))

	_, err = f.svc.NamesLetter(f.ctx, "Я", "")
	assert.ErrorIs(t, err, page.ErrNotFound)
	_, err = f.svc.NamesLetter(f.ctx, "AB", "")
	assert.ErrorIs(t, err, page.ErrNotFound)
}

func TestCelebrities_CachedUntilInvalidated(t *testing.T) {
	f := newFixture(t)
	f.publish(testsupport.StarSeed{Name: "First", Birth: "1960-01-01", Rating: 1})

	p, err := f.svc.Celebrities(f.ctx, page.ListingQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.Pagination.Total)
	assert.Equal(t, "rating", p.Sort)

	// A write that bypasses invalidation is not visible yet.
	f.store.AddStar(testsupport.StarSeed{Name: "Second", Birth: "1960-01-01", Rating: 2})
	p, err = f.svc.Celebrities(f.ctx, page.ListingQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.Pagination.Total)

	f.publish(testsupport.StarSeed{Name: "Third", Birth: "1960-01-01", Rating: 3})
	p, err = f.svc.Celebrities(f.ctx, page.ListingQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.Pagination.Total)
	assert.Equal(t, []string{"Third", "Second", "First"}, names(p.Stars))
}

func TestAbout_AttachesCount(t *testing.T) {
	f := newFixture(t)
	f.publish(testsupport.StarSeed{Name: "One", Birth: "1960-01-01"})

	p, err := f.svc.About(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.StarCount)
	assert.Len(t, p.Topics, 4)
}

func TestWarm_PopulatesCache(t *testing.T) {
	f := newFixture(t)
	f.store.AddStar(testsupport.StarSeed{Name: "One", Birth: "1960-03-01"})

	require.NoError(t, f.svc.Warm(f.ctx))

	var home page.HomePage
	found, err := f.cache.Get(f.ctx, cachekey.Index(3, 1), &home)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = f.cache.Get(f.ctx, cachekey.Dates(2024), &page.DatesPage{})
	require.NoError(t, err)
	assert.True(t, found)
}
