package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"borntoday-backend/internal/domains/category"
	"borntoday-backend/internal/domains/country"
	"borntoday-backend/internal/domains/star/model"
	"borntoday-backend/internal/domains/star/repository"
	"borntoday-backend/internal/shared/utils"
	"borntoday-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

var (
	starColumns     = []string{"Name", "Country", "Categories", "Born", "Txt"}
	genitiveColumns = []string{"Country", "Country-2"}
)

// CacheClearer empties the page cache after bulk changes.
type CacheClearer interface {
	ClearAll(ctx context.Context) error
}

type ImportService interface {
	// ImportStars reads a workbook of stars. Existing names are skipped, or
	// updated when update is true. New stars are published.
	ImportStars(ctx context.Context, r io.Reader, update bool) (*model.ImportResult, error)

	// ImportCountryGenitives fills country genitive names from a workbook.
	ImportCountryGenitives(ctx context.Context, r io.Reader) (*model.GenitiveResult, error)
}

type importService struct {
	repo       repository.Repository
	countries  country.Service
	categories category.Service
	cache      CacheClearer
}

func NewImportService(repo repository.Repository, countries country.Service, categories category.Service, cache CacheClearer) ImportService {
	return &importService{repo: repo, countries: countries, categories: categories, cache: cache}
}

// sheet is the first worksheet indexed by header name.
type sheet struct {
	header map[string]int
	rows   [][]string
}

func (s sheet) cell(row []string, column string) string {
	i, ok := s.header[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func readSheet(r io.Reader, required []string) (*sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0), excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New("workbook is empty")
	}

	s := &sheet{header: make(map[string]int), rows: rows[1:]}
	for i, name := range rows[0] {
		s.header[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, col := range required {
		if _, ok := s.header[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return s, nil
}

// parseImportDate accepts ISO dates, ISO timestamps and raw Excel serial dates.
func parseImportDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d, nil
		}
	}
	return nil, fmt.Errorf("unrecognised date %q", raw)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, "|") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// importRow is one parsed spreadsheet line.
type importRow struct {
	name       string
	countries  []string
	categories []string
	birth      *time.Time
	death      *time.Time
	content    string
	wikipedia  string
	ruwiki     string
	rating     *int
}

func (s sheet) parseRow(row []string) (importRow, error) {
	r := importRow{
		name:       s.cell(row, "Name"),
		countries:  splitList(s.cell(row, "Country")),
		categories: splitList(s.cell(row, "Categories")),
		content:    s.cell(row, "Txt"),
		wikipedia:  s.cell(row, "Wiki"),
		ruwiki:     s.cell(row, "Ruwiki"),
	}
	if r.name == "" {
		return r, errors.New("empty name")
	}

	var err error
	if r.birth, err = parseImportDate(s.cell(row, "Born")); err != nil {
		return r, fmt.Errorf("birth date: %w", err)
	}
	if r.death, err = parseImportDate(s.cell(row, "Death")); err != nil {
		return r, fmt.Errorf("death date: %w", err)
	}
	if raw := s.cell(row, "Rating"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return r, fmt.Errorf("rating: %w", err)
		}
		n := int(f)
		r.rating = &n
	}
	return r, nil
}

func (s *importService) ImportStars(ctx context.Context, r io.Reader, update bool) (*model.ImportResult, error) {
	sh, err := readSheet(r, starColumns)
	if err != nil {
		return nil, err
	}

	res := &model.ImportResult{}
	countryIDs := map[string]uuid.UUID{}
	categoryIDs := map[string]uuid.UUID{}

	for i, raw := range sh.rows {
		line := i + 2
		row, err := sh.parseRow(raw)
		if err != nil {
			res.Errors++
			res.Details = append(res.Details, fmt.Sprintf("row %d: %v", line, err))
			continue
		}

		existing, err := s.repo.GetByName(ctx, row.name)
		switch {
		case err == nil && !update:
			res.Skipped++
			continue
		case err == nil:
			if err := s.updateStar(ctx, existing, row, categoryIDs); err != nil {
				res.Errors++
				res.Details = append(res.Details, fmt.Sprintf("row %d (%s): %v", line, row.name, err))
				continue
			}
			res.Updated++
			continue
		case !errors.Is(err, model.ErrStarNotFound):
			return res, err
		}

		if err := s.createStar(ctx, row, countryIDs, categoryIDs); err != nil {
			res.Errors++
			res.Details = append(res.Details, fmt.Sprintf("row %d (%s): %v", line, row.name, err))
			continue
		}
		res.Created++
	}

	if err := s.cache.ClearAll(ctx); err != nil {
		logger.Error("cache clear after import failed", err)
	}

	logger.Info("star import finished", map[string]interface{}{
		"created": res.Created,
		"updated": res.Updated,
		"skipped": res.Skipped,
		"errors":  res.Errors,
	})
	return res, nil
}

func (s *importService) countryIDs(ctx context.Context, names []string, memo map[string]uuid.UUID) ([]uuid.UUID, error) {
	if len(names) == 0 {
		names = []string{model.FallbackCountry}
	}
	ids := make([]uuid.UUID, 0, len(names))
	for _, name := range names {
		if id, ok := memo[name]; ok {
			ids = append(ids, id)
			continue
		}
		c, err := s.countries.GetOrCreate(ctx, name)
		if err != nil {
			return nil, err
		}
		memo[name] = c.ID
		ids = append(ids, c.ID)
	}
	return ids, nil
}

func (s *importService) categoryIDs(ctx context.Context, titles []string, memo map[string]uuid.UUID) ([]uuid.UUID, error) {
	if len(titles) == 0 {
		titles = []string{model.FallbackCategory}
	}
	ids := make([]uuid.UUID, 0, len(titles))
	for _, title := range titles {
		if id, ok := memo[title]; ok {
			ids = append(ids, id)
			continue
		}
		c, err := s.categories.GetOrCreate(ctx, title)
		if err != nil {
			return nil, err
		}
		memo[title] = c.ID
		ids = append(ids, c.ID)
	}
	return ids, nil
}

func (s *importService) createStar(ctx context.Context, row importRow, countryMemo, categoryMemo map[string]uuid.UUID) error {
	if row.birth == nil {
		return errors.New("missing birth date")
	}
	countries, err := s.countryIDs(ctx, row.countries, countryMemo)
	if err != nil {
		return err
	}
	categories, err := s.categoryIDs(ctx, row.categories, categoryMemo)
	if err != nil {
		return err
	}

	slug, err := utils.UniqueSlug(ctx, utils.GenerateSlug(row.name), "star", s.repo.ExistsBySlug)
	if err != nil {
		return err
	}

	star := &model.Star{
		ID:          uuid.New(),
		Name:        row.name,
		Slug:        slug,
		BirthDate:   *row.birth,
		DeathDate:   row.death,
		Content:     row.content,
		Wikipedia:   model.OptionalString(row.wikipedia),
		RuWiki:      model.OptionalString(row.ruwiki),
		IsPublished: true,
	}
	if row.rating != nil {
		star.Rating = *row.rating
	}
	_, err = s.repo.Create(ctx, star, countries, categories)
	return err
}

// updateStar overwrites the columns present in the row. Categories are added,
// countries are left as they are.
func (s *importService) updateStar(ctx context.Context, existing *model.Star, row importRow, categoryMemo map[string]uuid.UUID) error {
	if row.birth != nil {
		existing.BirthDate = *row.birth
	}
	if row.death != nil {
		existing.DeathDate = row.death
	}
	if row.content != "" {
		existing.Content = row.content
	}
	if row.wikipedia != "" {
		existing.Wikipedia = &row.wikipedia
	}
	if row.ruwiki != "" {
		existing.RuWiki = &row.ruwiki
	}
	if row.rating != nil {
		existing.Rating = *row.rating
	}

	countries := make([]uuid.UUID, 0, len(existing.Countries))
	for _, c := range existing.Countries {
		countries = append(countries, c.ID)
	}
	categories := make([]uuid.UUID, 0, len(existing.Categories)+len(row.categories))
	for _, c := range existing.Categories {
		categories = append(categories, c.ID)
	}
	if len(row.categories) > 0 {
		added, err := s.categoryIDs(ctx, row.categories, categoryMemo)
		if err != nil {
			return err
		}
		categories = append(categories, added...)
	}

	return s.repo.Update(ctx, existing, countries, categories)
}

func (s *importService) ImportCountryGenitives(ctx context.Context, r io.Reader) (*model.GenitiveResult, error) {
	sh, err := readSheet(r, genitiveColumns)
	if err != nil {
		return nil, err
	}

	res := &model.GenitiveResult{}
	for _, row := range sh.rows {
		name, genitive := sh.cell(row, "Country"), sh.cell(row, "Country-2")
		if name == "" {
			continue
		}
		ok, err := s.countries.SetGenitive(ctx, name, genitive)
		if err != nil {
			return res, err
		}
		if ok {
			res.Updated++
		} else {
			res.NotFound++
			logger.Warn("country not found", map[string]interface{}{"name": name})
		}
	}

	logger.Info("country genitive import finished", map[string]interface{}{
		"updated":   res.Updated,
		"not_found": res.NotFound,
	})
	return res, nil
}
