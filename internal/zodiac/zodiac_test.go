package zodiac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromBirthday(t *testing.T) {
	tests := []struct {
		birthday string
		want     string
	}{
		{"01-01", "capricorn"},
		{"01-19", "capricorn"},
		{"01-20", "aquarius"},
		{"02-18", "aquarius"},
		{"02-19", "pisces"},
		{"03-20", "pisces"},
		{"03-21", "aries"},
		{"04-19", "aries"},
		{"04-20", "taurus"},
		{"05-21", "gemini"},
		{"06-21", "cancer"},
		{"07-22", "cancer"},
		{"07-23", "leo"},
		{"08-23", "virgo"},
		{"09-23", "libra"},
		{"10-23", "scorpio"},
		{"11-22", "sagittarius"},
		{"12-21", "sagittarius"},
		{"12-22", "capricorn"},
		{"12-31", "capricorn"},
	}

	for _, tt := range tests {
		t.Run(tt.birthday, func(t *testing.T) {
			got, err := FromBirthday(tt.birthday)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromBirthday_Invalid(t *testing.T) {
	for _, birthday := range []string{"", "13-01", "01-32", "June 6", "0101"} {
		t.Run(birthday, func(t *testing.T) {
			_, err := FromBirthday(birthday)
			assert.Error(t, err)
		})
	}
}
