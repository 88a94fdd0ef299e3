package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"borntoday-backend/internal/domains/page"
	"borntoday-backend/internal/domains/page/cachekey"
	"borntoday-backend/internal/domains/star/model"
	"borntoday-backend/internal/shared/pagination"
	"borntoday-backend/internal/shared/utils"
	"borntoday-backend/pkg/cache"
)

const dayLayout = "2006-01-02"

var monthNames = [...]string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

var monthGenitive = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

func navDates(today time.Time) page.NavDates {
	day := func(offset int) string { return today.AddDate(0, 0, offset).Format(dayLayout) }
	return page.NavDates{
		Today:              day(0),
		Yesterday:          day(-1),
		DayBeforeYesterday: day(-2),
		Tomorrow:           day(1),
		DayAfterTomorrow:   day(2),
	}
}

func birthdayFilter(t time.Time) model.Filter {
	return model.Filter{
		PublishedOnly: true,
		BirthMonth:    int(t.Month()),
		BirthDay:      t.Day(),
		Sort:          model.SortRating,
	}
}

func (s *pageService) Home(ctx context.Context) (*page.HomePage, error) {
	today := s.today()
	tomorrow := today.AddDate(0, 0, 1)

	home, err := cache.Fetch(ctx, s.cache, cachekey.Index(int(today.Month()), today.Day()), cachekey.ShortTTL,
		func(ctx context.Context) (*page.HomePage, error) {
			todayF, tomorrowF := birthdayFilter(today), birthdayFilter(tomorrow)

			todayCount, err := s.stars.Count(ctx, todayF)
			if err != nil {
				return nil, err
			}
			tomorrowCount, err := s.stars.Count(ctx, tomorrowF)
			if err != nil {
				return nil, err
			}

			todayF.Limit = page.HomeTodayLimit
			todayStars, err := s.stars.List(ctx, todayF)
			if err != nil {
				return nil, err
			}
			tomorrowF.Limit = page.HomeTomorrowLimit
			tomorrowStars, err := s.stars.List(ctx, tomorrowF)
			if err != nil {
				return nil, err
			}

			return &page.HomePage{
				Title:         "Дни рождения звезд",
				TodayDate:     today.Format(dayLayout),
				TomorrowDate:  tomorrow.Format(dayLayout),
				TodayStars:    s.cards(todayStars),
				TomorrowStars: s.cards(tomorrowStars),
				TodayCount:    todayCount,
				TomorrowCount: tomorrowCount,
			}, nil
		})
	if err != nil {
		return nil, err
	}

	stats, err := s.SiteStats(ctx)
	if err != nil {
		return nil, err
	}
	out := *home
	out.Stats = stats
	return &out, nil
}

// Birthday lists stars born on month/day. year, when numeric, narrows to one birth year.
func (s *pageService) Birthday(ctx context.Context, month, day int, year, rawPage string) (*page.BirthdayPage, error) {
	if !utils.ValidMonthDay(month, day) {
		return nil, page.ErrNotFound
	}
	yearFilter, err := strconv.Atoi(year)
	if err != nil || yearFilter < 1 {
		yearFilter = 0
	}
	number := pagination.ParseNumber(rawPage)

	return cache.Fetch(ctx, s.cache, cachekey.Birthday(month, day, yearFilter, number), cachekey.ShortTTL,
		func(ctx context.Context) (*page.BirthdayPage, error) {
			today := s.today()
			f := model.Filter{
				PublishedOnly: true,
				BirthMonth:    month,
				BirthDay:      day,
				BirthYear:     yearFilter,
				Sort:          model.SortRating,
			}
			listing, err := s.listing(ctx, f, page.ListingPerPage, strconv.Itoa(number))
			if err != nil {
				return nil, err
			}

			title := fmt.Sprintf("Дни рождения %d %s", day, monthGenitive[month-1])
			if yearFilter > 0 {
				title += fmt.Sprintf(" %d года", yearFilter)
			}

			return &page.BirthdayPage{
				Title:         title,
				Month:         month,
				Day:           day,
				YearFilter:    yearFilter,
				Nav:           navDates(today),
				CalendarWeeks: utils.MonthCalendar(today.Year(), time.Month(month)),
				Listing:       listing,
			}, nil
		})
}

func (s *pageService) Dates(ctx context.Context) (*page.DatesPage, error) {
	today := s.today()
	return cache.Fetch(ctx, s.cache, cachekey.Dates(today.Year()), cachekey.LongTTL,
		func(ctx context.Context) (*page.DatesPage, error) {
			months := make([]page.MonthGrid, 0, 12)
			for m := time.January; m <= time.December; m++ {
				months = append(months, page.MonthGrid{
					Number: int(m),
					Name:   monthNames[m-1],
					Weeks:  utils.MonthCalendar(today.Year(), m),
				})
			}
			return &page.DatesPage{
				Title:  "Календарь дней рождения",
				Year:   today.Year(),
				Nav:    navDates(today),
				Months: months,
			}, nil
		})
}
