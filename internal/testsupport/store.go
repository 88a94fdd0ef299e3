// Package testsupport holds in-memory repositories that follow the postgres
// semantics closely enough for service and router tests.
package testsupport

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"borntoday-backend/internal/domains/category"
	"borntoday-backend/internal/domains/country"
	"borntoday-backend/internal/domains/feedback"
	"borntoday-backend/internal/domains/star/model"

	"github.com/google/uuid"
)

// Store is one in-memory database shared by the repositories it hands out.
type Store struct {
	mu         sync.RWMutex
	countries  map[uuid.UUID]country.Country
	categories map[uuid.UUID]category.Category
	stars      map[uuid.UUID]model.Star
	starCtry   map[uuid.UUID][]uuid.UUID
	starCat    map[uuid.UUID][]uuid.UUID
	messages   []feedback.Message
}

func NewStore() *Store {
	return &Store{
		countries:  map[uuid.UUID]country.Country{},
		categories: map[uuid.UUID]category.Category{},
		stars:      map[uuid.UUID]model.Star{},
		starCtry:   map[uuid.UUID][]uuid.UUID{},
		starCat:    map[uuid.UUID][]uuid.UUID{},
	}
}

func (s *Store) Countries() country.Repository   { return countryRepo{s} }
func (s *Store) Categories() category.Repository { return categoryRepo{s} }
func (s *Store) Stars() *StarRepo                { return &StarRepo{s: s} }
func (s *Store) Feedback() feedback.Repository   { return feedbackRepo{s} }

// Messages returns the stored feedback in insertion order.
func (s *Store) Messages() []feedback.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]feedback.Message(nil), s.messages...)
}

// AddCountry seeds a country and returns it.
func (s *Store) AddCountry(name, slug, genitive string) country.Country {
	c := country.Country{ID: uuid.New(), Name: name, Slug: slug, NameGenitive: genitive, CreatedAt: time.Now()}
	s.mu.Lock()
	s.countries[c.ID] = c
	s.mu.Unlock()
	return c
}

// AddCategory seeds a category and returns it.
func (s *Store) AddCategory(title, slug string) category.Category {
	c := category.Category{ID: uuid.New(), Title: title, Slug: slug, CreatedAt: time.Now()}
	s.mu.Lock()
	s.categories[c.ID] = c
	s.mu.Unlock()
	return c
}

// StarSeed describes a star for AddStar. Slug defaults to a uuid.
type StarSeed struct {
	Name        string
	Slug        string
	Birth       string // 2006-01-02
	Death       string
	Rating      int
	Unpublished bool
	Countries   []country.Country
	Categories  []category.Category
}

// AddStar seeds a star with its links and returns it with links loaded.
func (s *Store) AddStar(seed StarSeed) model.Star {
	birth, err := time.Parse("2006-01-02", seed.Birth)
	if err != nil {
		panic(err)
	}
	st := model.Star{
		ID:          uuid.New(),
		Name:        seed.Name,
		Slug:        seed.Slug,
		BirthDate:   birth,
		Content:     "content of " + seed.Name,
		Rating:      seed.Rating,
		IsPublished: !seed.Unpublished,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if st.Slug == "" {
		st.Slug = uuid.NewString()
	}
	if seed.Death != "" {
		death, err := time.Parse("2006-01-02", seed.Death)
		if err != nil {
			panic(err)
		}
		st.DeathDate = &death
	}

	countryIDs := make([]uuid.UUID, len(seed.Countries))
	for i, c := range seed.Countries {
		countryIDs[i] = c.ID
	}
	categoryIDs := make([]uuid.UUID, len(seed.Categories))
	for i, c := range seed.Categories {
		categoryIDs[i] = c.ID
	}

	created, err := s.Stars().Create(context.Background(), &st, countryIDs, categoryIDs)
	if err != nil {
		panic(err)
	}
	return *created
}

// linked reports whether id appears in ids.
func linked(ids []uuid.UUID, id uuid.UUID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func (s *Store) publishedLinkCounts(links map[uuid.UUID][]uuid.UUID) map[uuid.UUID]int64 {
	counts := map[uuid.UUID]int64{}
	for starID, ids := range links {
		if !s.stars[starID].IsPublished {
			continue
		}
		for _, id := range ids {
			counts[id]++
		}
	}
	return counts
}

// ============================================================
// countries
// ============================================================

type countryRepo struct{ s *Store }

func (r countryRepo) Create(_ context.Context, c *country.Country) (*country.Country, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.countries {
		if existing.Slug == c.Slug {
			return nil, country.ErrDuplicateSlug
		}
		if existing.Name == c.Name {
			return nil, country.ErrDuplicateName
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.s.countries[c.ID] = *c
	out := *c
	return &out, nil
}

func (r countryRepo) find(match func(country.Country) bool) (*country.Country, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.countries {
		if match(c) {
			out := c
			return &out, nil
		}
	}
	return nil, country.ErrCountryNotFound
}

func (r countryRepo) GetByID(_ context.Context, id uuid.UUID) (*country.Country, error) {
	return r.find(func(c country.Country) bool { return c.ID == id })
}

func (r countryRepo) GetBySlug(_ context.Context, slug string) (*country.Country, error) {
	return r.find(func(c country.Country) bool { return c.Slug == slug })
}

func (r countryRepo) GetByName(_ context.Context, name string) (*country.Country, error) {
	return r.find(func(c country.Country) bool { return c.Name == name })
}

func (r countryRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	_, err := r.GetBySlug(ctx, slug)
	return err == nil, nil
}

func (r countryRepo) List(_ context.Context) ([]country.Country, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]country.Country, 0, len(r.s.countries))
	for _, c := range r.s.countries {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r countryRepo) TopByStarCount(_ context.Context, excludeID *uuid.UUID, limit int) ([]country.WithCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []country.WithCount
	for id, n := range r.s.publishedLinkCounts(r.s.starCtry) {
		if excludeID != nil && id == *excludeID {
			continue
		}
		out = append(out, country.WithCount{Country: r.s.countries[id], StarCount: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StarCount != out[j].StarCount {
			return out[i].StarCount > out[j].StarCount
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r countryRepo) UpdateGenitive(_ context.Context, name, genitive string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, c := range r.s.countries {
		if c.Name == name {
			c.NameGenitive = genitive
			r.s.countries[id] = c
			return true, nil
		}
	}
	return false, nil
}

// ============================================================
// categories
// ============================================================

type categoryRepo struct{ s *Store }

func (r categoryRepo) Create(_ context.Context, c *category.Category) (*category.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.categories {
		if existing.Slug == c.Slug {
			return nil, category.ErrDuplicateSlug
		}
		if existing.Title == c.Title {
			return nil, category.ErrDuplicateTitle
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.s.categories[c.ID] = *c
	out := *c
	return &out, nil
}

func (r categoryRepo) find(match func(category.Category) bool) (*category.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.categories {
		if match(c) {
			out := c
			return &out, nil
		}
	}
	return nil, category.ErrCategoryNotFound
}

func (r categoryRepo) GetByID(_ context.Context, id uuid.UUID) (*category.Category, error) {
	return r.find(func(c category.Category) bool { return c.ID == id })
}

func (r categoryRepo) GetBySlug(_ context.Context, slug string) (*category.Category, error) {
	return r.find(func(c category.Category) bool { return c.Slug == slug })
}

func (r categoryRepo) GetByTitle(_ context.Context, title string) (*category.Category, error) {
	return r.find(func(c category.Category) bool { return c.Title == title })
}

func (r categoryRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	_, err := r.GetBySlug(ctx, slug)
	return err == nil, nil
}

func (r categoryRepo) List(_ context.Context) ([]category.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]category.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r categoryRepo) TopByStarCount(_ context.Context, excludeID *uuid.UUID, limit int) ([]category.WithCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []category.WithCount
	for id, n := range r.s.publishedLinkCounts(r.s.starCat) {
		if excludeID != nil && id == *excludeID {
			continue
		}
		out = append(out, category.WithCount{Category: r.s.categories[id], StarCount: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StarCount != out[j].StarCount {
			return out[i].StarCount > out[j].StarCount
		}
		return out[i].Title < out[j].Title
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ============================================================
// feedback
// ============================================================

type feedbackRepo struct{ s *Store }

func (r feedbackRepo) Create(_ context.Context, m *feedback.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.messages = append(r.s.messages, *m)
	return nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
