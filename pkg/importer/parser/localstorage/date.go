package localstorage

import (
	"strings"
	"time"

	"github.com/envelope-zero/wallet/internal/types"
	"golang.org/x/text/language"
)

// Locales with a known short date format. The first one is used when
// no locale matches.
var locales = []language.Tag{
	language.AmericanEnglish,
	language.BritishEnglish,
	language.German,
	language.French,
}

// layouts holds the short date layout for each entry of locales.
var layouts = []string{
	"1/2/2006",
	"2/1/2006",
	"2.1.2006",
	"2/1/2006",
}

var matcher = language.NewMatcher(locales)

// layout returns the date layout for a BCP 47 locale tag.
func layout(locale string) string {
	_, index := language.MatchStrings(matcher, locale)
	return layouts[index]
}

// parseDate parses a date formatted in the browser's locale.
//
// ISO dates are always accepted. If the date cannot be parsed, the creation
// time encoded in the ID is used if it lies within the month. Otherwise,
// the first day of the month is used.
func parseDate(s, locale string, id int64, month types.Month) types.Date {
	s = strings.TrimSpace(s)

	for _, l := range []string{"2006-01-02", layout(locale)} {
		if t, err := time.Parse(l, s); err == nil {
			return types.DateOf(t)
		}
	}

	if id > 0 {
		created := time.UnixMilli(id).UTC()
		if month.Contains(created) {
			return types.DateOf(created)
		}
	}

	return types.DateOf(month.FirstDay())
}
