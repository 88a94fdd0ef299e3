package sitemap

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"borntoday-backend/internal/domains/category"
	"borntoday-backend/internal/domains/country"
	"borntoday-backend/internal/domains/page/cachekey"
	"borntoday-backend/internal/domains/star/model"
	"borntoday-backend/internal/domains/star/repository"
	"borntoday-backend/pkg/cache"
	"borntoday-backend/pkg/logger"
)

var ErrUnknownSection = errors.New("unknown sitemap section")

// DefaultRobots is served when the configured robots file cannot be read.
const DefaultRobots = "User-agent: *\nDisallow: /"

var staticPaths = []string{"/", "/about/", "/dates/", "/celebrities/", "/rules/", "/names/"}

type Service struct {
	stars      repository.Repository
	countries  country.Repository
	categories category.Repository
	cache      cache.Cache
	baseURL    string
	robotsFile string
}

func NewService(
	stars repository.Repository,
	countries country.Repository,
	categories category.Repository,
	c cache.Cache,
	baseURL, robotsFile string,
) *Service {
	return &Service{
		stars:      stars,
		countries:  countries,
		categories: categories,
		cache:      c,
		baseURL:    strings.TrimRight(baseURL, "/"),
		robotsFile: robotsFile,
	}
}

func (s *Service) abs(path string) string {
	return s.baseURL + path
}

// Index lists every section; the stars section once per page.
func (s *Service) Index(ctx context.Context) (*Index, error) {
	return cache.Fetch(ctx, s.cache, cachekey.Sitemap("index", 1), cachekey.ShortTTL,
		func(ctx context.Context) (*Index, error) {
			total, err := s.stars.Count(ctx, model.Filter{PublishedOnly: true})
			if err != nil {
				return nil, err
			}
			starPages := int((total + StarsPerPage - 1) / StarsPerPage)
			if starPages < 1 {
				starPages = 1
			}

			idx := &Index{Xmlns: xmlns}
			for _, section := range Sections {
				loc := s.abs(fmt.Sprintf("/sitemap-%s.xml", section))
				if section != SectionStars {
					idx.Sitemaps = append(idx.Sitemaps, Entry{Loc: loc})
					continue
				}
				idx.Sitemaps = append(idx.Sitemaps, Entry{Loc: loc})
				for p := 2; p <= starPages; p++ {
					idx.Sitemaps = append(idx.Sitemaps, Entry{Loc: fmt.Sprintf("%s?p=%d", loc, p)})
				}
			}
			return idx, nil
		})
}

// Section renders one section. pageNumber only matters for stars.
func (s *Service) Section(ctx context.Context, section string, pageNumber int) (*URLSet, error) {
	if pageNumber < 1 {
		pageNumber = 1
	}
	build, ok := map[string]func(context.Context, int) ([]URL, error){
		SectionStars:      s.starURLs,
		SectionCountries:  s.countryURLs,
		SectionCategories: s.categoryURLs,
		SectionBirthdays:  s.birthdayURLs,
		SectionStatic:     s.staticURLs,
		SectionNames:      s.nameURLs,
	}[section]
	if !ok {
		return nil, ErrUnknownSection
	}
	if section != SectionStars {
		pageNumber = 1
	}

	return cache.Fetch(ctx, s.cache, cachekey.Sitemap(section, pageNumber), cachekey.ShortTTL,
		func(ctx context.Context) (*URLSet, error) {
			urls, err := build(ctx, pageNumber)
			if err != nil {
				return nil, err
			}
			if urls == nil {
				urls = []URL{}
			}
			return &URLSet{Xmlns: xmlns, URLs: urls}, nil
		})
}

func (s *Service) starURLs(ctx context.Context, pageNumber int) ([]URL, error) {
	stars, err := s.stars.List(ctx, model.Filter{
		PublishedOnly: true,
		Sort:          model.SortNameAsc,
		Limit:         StarsPerPage,
		Offset:        (pageNumber - 1) * StarsPerPage,
	})
	if err != nil {
		return nil, err
	}
	urls := make([]URL, 0, len(stars))
	for _, st := range stars {
		urls = append(urls, URL{
			Loc:        s.abs("/person/" + url.PathEscape(st.Slug) + "/"),
			LastMod:    st.UpdatedAt.Format("2006-01-02"),
			ChangeFreq: "monthly",
			Priority:   "0.9",
		})
	}
	return urls, nil
}

func (s *Service) countryURLs(ctx context.Context, _ int) ([]URL, error) {
	countries, err := s.countries.List(ctx)
	if err != nil {
		return nil, err
	}
	urls := make([]URL, 0, len(countries))
	for _, c := range countries {
		urls = append(urls, URL{Loc: s.abs("/country/" + c.Slug + "/"), ChangeFreq: "weekly", Priority: "0.8"})
	}
	return urls, nil
}

func (s *Service) categoryURLs(ctx context.Context, _ int) ([]URL, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	urls := make([]URL, 0, len(categories))
	for _, c := range categories {
		urls = append(urls, URL{Loc: s.abs("/industry/" + c.Slug + "/"), ChangeFreq: "weekly", Priority: "0.8"})
	}
	return urls, nil
}

func (s *Service) birthdayURLs(ctx context.Context, _ int) ([]URL, error) {
	dates, err := s.stars.BirthdayDates(ctx)
	if err != nil {
		return nil, err
	}
	urls := make([]URL, 0, len(dates))
	for _, d := range dates {
		urls = append(urls, URL{
			Loc:        s.abs(fmt.Sprintf("/birthday/%d-%d/", d.Month, d.Day)),
			ChangeFreq: "daily",
			Priority:   "0.7",
		})
	}
	return urls, nil
}

func (s *Service) staticURLs(_ context.Context, _ int) ([]URL, error) {
	urls := make([]URL, 0, len(staticPaths))
	for _, p := range staticPaths {
		urls = append(urls, URL{Loc: s.abs(p), ChangeFreq: "weekly", Priority: "0.6"})
	}
	return urls, nil
}

func (s *Service) nameURLs(ctx context.Context, _ int) ([]URL, error) {
	letters, err := s.stars.Letters(ctx)
	if err != nil {
		return nil, err
	}
	urls := make([]URL, 0, len(letters))
	for _, l := range letters {
		urls = append(urls, URL{
			Loc:        s.abs("/names/" + url.PathEscape(l) + "/"),
			ChangeFreq: "weekly",
			Priority:   "0.5",
		})
	}
	return urls, nil
}

// Robots returns the configured robots.txt, or DefaultRobots if it is unreadable.
func (s *Service) Robots() string {
	if s.robotsFile == "" {
		return DefaultRobots
	}
	data, err := os.ReadFile(s.robotsFile)
	if err != nil {
		logger.Warn("robots file unreadable, serving default", map[string]interface{}{
			"path":  s.robotsFile,
			"error": err.Error(),
		})
		return DefaultRobots
	}
	return string(data)
}
