package testsupport

import (
	"context"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"borntoday-backend/internal/domains/category"
	"borntoday-backend/internal/domains/country"
	"borntoday-backend/internal/domains/star/model"
	"borntoday-backend/internal/domains/star/repository"

	"github.com/google/uuid"
)

var _ repository.Repository = (*StarRepo)(nil)

// StarRepo is the in-memory star repository.
type StarRepo struct {
	s *Store
}

func (r *StarRepo) Create(_ context.Context, st *model.Star, countryIDs, categoryIDs []uuid.UUID) (*model.Star, error) {
	r.s.mu.Lock()
	if st.ID == uuid.Nil {
		st.ID = uuid.New()
	}
	for _, existing := range r.s.stars {
		if existing.Slug == st.Slug {
			r.s.mu.Unlock()
			return nil, model.ErrDuplicateSlug
		}
	}
	if err := r.s.checkLinks(countryIDs, categoryIDs); err != nil {
		r.s.mu.Unlock()
		return nil, err
	}
	now := time.Now()
	st.CreatedAt, st.UpdatedAt = now, now

	stored := *st
	stored.Countries, stored.Categories = nil, nil
	r.s.stars[st.ID] = stored
	r.s.starCtry[st.ID] = dedupe(countryIDs)
	r.s.starCat[st.ID] = dedupe(categoryIDs)
	r.s.mu.Unlock()

	return r.GetByID(context.Background(), st.ID)
}

func (r *StarRepo) Update(_ context.Context, st *model.Star, countryIDs, categoryIDs []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.stars[st.ID]
	if !ok {
		return model.ErrStarNotFound
	}
	if err := r.s.checkLinks(countryIDs, categoryIDs); err != nil {
		return err
	}
	existing.Name = st.Name
	existing.BirthDate = st.BirthDate
	existing.DeathDate = st.DeathDate
	existing.Content = st.Content
	existing.Rating = st.Rating
	existing.Wikipedia = st.Wikipedia
	existing.RuWiki = st.RuWiki
	existing.IsPublished = st.IsPublished
	existing.UpdatedAt = time.Now()
	r.s.stars[st.ID] = existing
	r.s.starCtry[st.ID] = dedupe(countryIDs)
	r.s.starCat[st.ID] = dedupe(categoryIDs)
	return nil
}

func (s *Store) checkLinks(countryIDs, categoryIDs []uuid.UUID) error {
	for _, id := range countryIDs {
		if _, ok := s.countries[id]; !ok {
			return model.ErrUnknownCountry
		}
	}
	for _, id := range categoryIDs {
		if _, ok := s.categories[id]; !ok {
			return model.ErrUnknownCategory
		}
	}
	return nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !linked(out, id) {
			out = append(out, id)
		}
	}
	return out
}

// withLinks copies st and attaches its countries and categories. Callers hold the lock.
func (s *Store) withLinks(st model.Star) *model.Star {
	out := st
	out.Countries = []country.Country{}
	for _, id := range s.starCtry[st.ID] {
		out.Countries = append(out.Countries, s.countries[id])
	}
	sort.Slice(out.Countries, func(i, j int) bool { return out.Countries[i].Name < out.Countries[j].Name })

	out.Categories = []category.Category{}
	for _, id := range s.starCat[st.ID] {
		out.Categories = append(out.Categories, s.categories[id])
	}
	sort.Slice(out.Categories, func(i, j int) bool { return out.Categories[i].Title < out.Categories[j].Title })
	return &out
}

func (r *StarRepo) getOne(match func(model.Star) bool) (*model.Star, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var found *model.Star
	for _, st := range r.s.stars {
		if match(st) && (found == nil || st.CreatedAt.Before(found.CreatedAt)) {
			st := st
			found = &st
		}
	}
	if found == nil {
		return nil, model.ErrStarNotFound
	}
	return r.s.withLinks(*found), nil
}

func (r *StarRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Star, error) {
	return r.getOne(func(st model.Star) bool { return st.ID == id })
}

func (r *StarRepo) GetBySlug(_ context.Context, slug string) (*model.Star, error) {
	return r.getOne(func(st model.Star) bool { return st.Slug == slug })
}

func (r *StarRepo) GetByName(_ context.Context, name string) (*model.Star, error) {
	return r.getOne(func(st model.Star) bool { return st.Name == name })
}

func (r *StarRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	_, err := r.GetBySlug(ctx, slug)
	return err == nil, nil
}

func (s *Store) matches(st model.Star, f model.Filter) bool {
	if f.PublishedOnly && !st.IsPublished {
		return false
	}
	if f.CountryID != nil && !linked(s.starCtry[st.ID], *f.CountryID) {
		return false
	}
	if f.CategoryID != nil && !linked(s.starCat[st.ID], *f.CategoryID) {
		return false
	}
	if f.NameContains != "" && !containsFold(st.Name, f.NameContains) {
		return false
	}
	if len(f.SearchWords) > 0 {
		hit := false
		for _, w := range f.SearchWords {
			if containsFold(st.Name, w) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	if f.NamePrefix != "" && !strings.HasPrefix(strings.ToUpper(st.Name), strings.ToUpper(f.NamePrefix)) {
		return false
	}
	if f.BirthMonth > 0 && int(st.BirthDate.Month()) != f.BirthMonth {
		return false
	}
	if f.BirthDay > 0 && st.BirthDate.Day() != f.BirthDay {
		return false
	}
	if f.BirthYear > 0 && st.BirthDate.Year() != f.BirthYear {
		return false
	}
	if linked(f.ExcludeIDs, st.ID) {
		return false
	}
	return true
}

func (s *Store) filtered(f model.Filter) []model.Star {
	var out []model.Star
	for _, st := range s.stars {
		if s.matches(st, f) {
			out = append(out, st)
		}
	}
	return out
}

func sortStars(stars []model.Star, f model.Filter) {
	today := f.Today
	if today.IsZero() {
		today = time.Now()
	}
	byNameID := func(a, b model.Star) bool {
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID.String() < b.ID.String()
	}

	sort.SliceStable(stars, func(i, j int) bool {
		a, b := stars[i], stars[j]
		switch f.Sort {
		case model.SortNameAsc:
			return byNameID(a, b)
		case model.SortNameDesc:
			if a.Name != b.Name {
				return a.Name > b.Name
			}
			return a.ID.String() < b.ID.String()
		case model.SortBirthday:
			ka, kb := model.BirthdayOrderKey(a.BirthDate, today), model.BirthdayOrderKey(b.BirthDate, today)
			if ka != kb {
				return ka < kb
			}
			return byNameID(a, b)
		default:
			if a.Rating != b.Rating {
				return a.Rating > b.Rating
			}
			return byNameID(a, b)
		}
	})
}

// List returns stars without links, like the postgres listing query.
func (r *StarRepo) List(_ context.Context, f model.Filter) ([]model.Star, error) {
	r.s.mu.RLock()
	stars := r.s.filtered(f)
	r.s.mu.RUnlock()

	sortStars(stars, f)
	if f.Limit > 0 {
		if f.Offset >= len(stars) {
			return []model.Star{}, nil
		}
		end := f.Offset + f.Limit
		if end > len(stars) {
			end = len(stars)
		}
		stars = stars[f.Offset:end]
	}
	if stars == nil {
		stars = []model.Star{}
	}
	return stars, nil
}

func (r *StarRepo) Count(_ context.Context, f model.Filter) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.filtered(f))), nil
}

func (r *StarRepo) SetPublished(_ context.Context, id uuid.UUID, published bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.stars[id]
	if !ok {
		return model.ErrStarNotFound
	}
	st.IsPublished = published
	st.UpdatedAt = time.Now()
	r.s.stars[id] = st
	return nil
}

func (r *StarRepo) SetPhoto(_ context.Context, id uuid.UUID, key string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.stars[id]
	if !ok {
		return model.ErrStarNotFound
	}
	st.PhotoKey = &key
	st.UpdatedAt = time.Now()
	r.s.stars[id] = st
	return nil
}

func (r *StarRepo) CountByTag(_ context.Context, categoryID, countryID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for id, st := range r.s.stars {
		if st.IsPublished && linked(r.s.starCat[id], categoryID) && linked(r.s.starCtry[id], countryID) {
			n++
		}
	}
	return n, nil
}

func (r *StarRepo) Tags(_ context.Context, f model.TagFilter) ([]model.TagCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	type pair struct{ cat, ctry uuid.UUID }
	counts := map[pair]int64{}
	for id, st := range r.s.stars {
		if !st.IsPublished {
			continue
		}
		for _, cat := range r.s.starCat[id] {
			for _, ctry := range r.s.starCtry[id] {
				counts[pair{cat, ctry}]++
			}
		}
	}

	var out []model.TagCount
	for p, n := range counts {
		if f.CountryID != nil && p.ctry != *f.CountryID {
			continue
		}
		if f.CategoryID != nil && p.cat != *f.CategoryID {
			continue
		}
		if n < int64(f.MinCount) {
			continue
		}
		cat, ctry := r.s.categories[p.cat], r.s.countries[p.ctry]
		out = append(out, model.TagCount{
			CategoryID:    cat.ID,
			CategorySlug:  cat.Slug,
			CategoryTitle: cat.Title,
			CountryID:     ctry.ID,
			CountrySlug:   ctry.Slug,
			CountryName:   ctry.Name,
			CountryGen:    ctry.NameGenitive,
			Count:         n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.CategoryTitle != b.CategoryTitle {
			return a.CategoryTitle < b.CategoryTitle
		}
		return a.CountryName < b.CountryName
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *StarRepo) BirthdayDates(_ context.Context) ([]model.MonthDay, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	seen := map[model.MonthDay]bool{}
	out := []model.MonthDay{}
	for _, st := range r.s.stars {
		md := model.MonthDay{Month: int(st.BirthDate.Month()), Day: st.BirthDate.Day()}
		if st.IsPublished && !seen[md] {
			seen[md] = true
			out = append(out, md)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].Day < out[j].Day
	})
	return out, nil
}

func (r *StarRepo) Letters(_ context.Context) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	seen := map[string]bool{}
	out := []string{}
	for _, st := range r.s.stars {
		first, _ := utf8.DecodeRuneInString(st.Name)
		if !st.IsPublished || first == utf8.RuneError {
			continue
		}
		l := strings.ToUpper(string(first))
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	sort.Strings(out)
	return out, nil
}
