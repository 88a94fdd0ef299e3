package service

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"

	"borntoday-backend/internal/domains/page"
	"borntoday-backend/internal/domains/page/cachekey"
	"borntoday-backend/internal/domains/star/model"
	"borntoday-backend/internal/shared/pagination"
	"borntoday-backend/pkg/cache"
)

// Alphabet is the order of the names index: Russian letters, then Latin.
const Alphabet = "АБВГДЕЁЖЗИЙКЛМНОПРСТУФХЦЧШЩЭЮЯABCDEFGHIJKLMNOPQRSTUVWXYZ"

func (s *pageService) Names(ctx context.Context) (*page.NamesPage, error) {
	return cache.Fetch(ctx, s.cache, cachekey.NamesPage, cachekey.LongTTL,
		func(ctx context.Context) (*page.NamesPage, error) {
			groups := []page.LetterGroup{}
			for _, r := range Alphabet {
				letter := string(r)
				stars, err := s.stars.List(ctx, model.Filter{
					PublishedOnly: true,
					NamePrefix:    letter,
					Sort:          model.SortNameAsc,
					Limit:         page.NamesPreviewLimit,
				})
				if err != nil {
					return nil, err
				}
				if len(stars) == 0 {
					continue
				}
				groups = append(groups, page.LetterGroup{Letter: letter, Stars: s.cards(stars)})
			}
			return &page.NamesPage{Title: "Карта сайта", Letters: groups}, nil
		})
}

// NamesLetter lists every star whose name starts with letter, case-insensitively.
func (s *pageService) NamesLetter(ctx context.Context, letter, rawPage string) (*page.NamesLetterPage, error) {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if utf8.RuneCountInString(letter) != 1 {
		return nil, page.ErrNotFound
	}
	number := pagination.ParseNumber(rawPage)

	return cache.Fetch(ctx, s.cache, cachekey.NamesLetter(letter, number), cachekey.ShortTTL,
		func(ctx context.Context) (*page.NamesLetterPage, error) {
			f := model.Filter{
				PublishedOnly: true,
				NamePrefix:    letter,
				Sort:          model.SortNameAsc,
			}
			listing, err := s.listing(ctx, f, page.NamesLetterPerPage, strconv.Itoa(number))
			if err != nil {
				return nil, err
			}
			if listing.Pagination.Total == 0 {
				return nil, page.ErrNotFound
			}
			return &page.NamesLetterPage{
				Title:   "Знаменитости на букву " + letter,
				Letter:  letter,
				Listing: listing,
			}, nil
		})
}
