package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"borntoday-backend/internal/domains/category"
	categoryService "borntoday-backend/internal/domains/category/service"
	countryService "borntoday-backend/internal/domains/country/service"
	"borntoday-backend/internal/domains/page/cachekey"
	"borntoday-backend/internal/domains/star/model"
	infracache "borntoday-backend/internal/infrastructure/cache"
	"borntoday-backend/internal/testsupport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows ...[]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func newImporter(store *testsupport.Store) (ImportService, *infracache.MemoryCache) {
	mem := infracache.NewMemoryCache()
	inv := cachekey.NewInvalidator(mem)
	return NewImportService(
		store.Stars(),
		countryService.NewCountryService(store.Countries(), inv),
		categoryService.NewCategoryService(store.Categories(), inv),
		inv,
	), mem
}

var starHeader = []interface{}{"Name", "Country", "Categories", "Born", "Txt", "Death", "Rating"}

func TestImportStars(t *testing.T) {
	ctx := context.Background()
	store := testsupport.NewStore()
	store.AddStar(testsupport.StarSeed{Name: "Жан Габен", Birth: "1904-05-17"})
	svc, mem := newImporter(store)
	require.NoError(t, mem.Set(ctx, cachekey.SiteStats, 1, time.Hour))

	res, err := svc.ImportStars(ctx, workbook(t,
		starHeader,
		[]interface{}{"Ален Делон", "Франция", "Актеры | Продюсеры", "1935-11-08", "Актер", "2024-08-18", "9"},
		[]interface{}{"Без даты", "Франция", "Актеры", "", "Текст"},
		[]interface{}{"Серийная", "", "", "25569", "Текст"},
		[]interface{}{"", "Франция", "Актеры", "1950-01-01", "Текст"},
		[]interface{}{"Жан Габен", "Франция", "Актеры", "1904-05-17", "Текст"},
	), false)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 2, res.Errors)
	assert.Len(t, res.Details, 2)
	assert.Equal(t, 0, mem.Len(), "page cache is cleared after an import")

	delon, err := store.Stars().GetByName(ctx, "Ален Делон")
	require.NoError(t, err)
	assert.True(t, delon.IsPublished)
	assert.Equal(t, 9, delon.Rating)
	require.NotNil(t, delon.DeathDate)
	assert.Equal(t, "2024-08-18", delon.DeathDate.Format("2006-01-02"))
	assert.Len(t, delon.Categories, 2)
	require.Len(t, delon.Countries, 1)
	assert.Equal(t, "Франция", delon.Countries[0].Name)

	serial, err := store.Stars().GetByName(ctx, "Серийная")
	require.NoError(t, err)
	assert.Equal(t, "1970-01-01", serial.BirthDate.Format("2006-01-02"))
	require.Len(t, serial.Countries, 1)
	assert.Equal(t, model.FallbackCountry, serial.Countries[0].Name)
	require.Len(t, serial.Categories, 1)
	assert.Equal(t, model.FallbackCategory, serial.Categories[0].Title)
}

func TestImportStars_Update(t *testing.T) {
	ctx := context.Background()
	store := testsupport.NewStore()
	actors := store.AddCategory("Актеры", "actors")
	store.AddStar(testsupport.StarSeed{Name: "Жан Габен", Birth: "1904-05-17", Rating: 1,
		Categories: []category.Category{actors}})
	svc, _ := newImporter(store)

	res, err := svc.ImportStars(ctx, workbook(t,
		starHeader,
		[]interface{}{"Жан Габен", "", "Певцы", "", "", "", "7"},
	), true)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Updated)

	gabin, err := store.Stars().GetByName(ctx, "Жан Габен")
	require.NoError(t, err)
	assert.Equal(t, 7, gabin.Rating)
	assert.Equal(t, "1904-05-17", gabin.BirthDate.Format("2006-01-02"))
	assert.Len(t, gabin.Categories, 2)
}

func TestImportStars_MissingColumns(t *testing.T) {
	svc, _ := newImporter(testsupport.NewStore())

	_, err := svc.ImportStars(context.Background(), workbook(t, []interface{}{"Name", "Born"}), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Country, Categories, Txt")
}

func TestImportCountryGenitives(t *testing.T) {
	store := testsupport.NewStore()
	store.AddCountry("Франция", "france", "")
	svc, _ := newImporter(store)

	res, err := svc.ImportCountryGenitives(context.Background(), workbook(t,
		[]interface{}{"Country", "Country-2"},
		[]interface{}{"Франция", "Франции"},
		[]interface{}{"Атлантида", "Атлантиды"},
	))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, 1, res.NotFound)

	fr, err := store.Countries().GetBySlug(context.Background(), "france")
	require.NoError(t, err)
	assert.Equal(t, "Франции", fr.NameGenitive)
}

func TestParseImportDate(t *testing.T) {
	d, err := parseImportDate("2001-02-03 00:00:00")
	require.NoError(t, err)
	assert.Equal(t, "2001-02-03", d.Format("2006-01-02"))

	d, err = parseImportDate("")
	assert.NoError(t, err)
	assert.Nil(t, d)

	_, err = parseImportDate("03.02.2001")
	assert.Error(t, err)
}
