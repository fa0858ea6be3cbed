// Package zodiac derives western zodiac signs from catalog birthdays.
package zodiac

import (
	"fmt"
	"time"
)

// refYear anchors birthday parsing. Birthdays carry no year, so parsing
// uses a fixed non-leap year to keep the derivation stable; Feb 29 never
// appears in the dataset.
const refYear = 2001

// signs lists each sign with the month-day (mm*100+dd) its period starts
// on. Capricorn wraps the year boundary and is handled as the fallthrough.
var signs = []struct {
	start int
	name  string
}{
	{120, "aquarius"},
	{219, "pisces"},
	{321, "aries"},
	{420, "taurus"},
	{521, "gemini"},
	{621, "cancer"},
	{723, "leo"},
	{823, "virgo"},
	{923, "libra"},
	{1023, "scorpio"},
	{1122, "sagittarius"},
	{1222, "capricorn"},
}

// FromBirthday returns the lower-case zodiac sign for a birthday in
// "MM-DD" form, e.g. "01-01" -> "capricorn".
func FromBirthday(birthday string) (string, error) {
	t, err := time.Parse("01-02", birthday)
	if err != nil {
		return "", fmt.Errorf("parse birthday %q: %w", birthday, err)
	}
	t = time.Date(refYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	monthDay := int(t.Month())*100 + t.Day()
	sign := "capricorn" // Jan 1-19, before any period start
	for _, s := range signs {
		if monthDay >= s.start {
			sign = s.name
		}
	}
	return sign, nil
}
