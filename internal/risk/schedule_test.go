package risk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextReviewDate(t *testing.T) {
	from := time.Date(2025, time.June, 10, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, date(2028, time.June, 10), NextReviewDate(RatingLow, from))
	assert.Equal(t, date(2027, time.June, 10), NextReviewDate(RatingMedium, from))
	assert.Equal(t, date(2026, time.June, 10), NextReviewDate(RatingHigh, from))
	assert.Equal(t, NextReviewDate(RatingHigh, from), NextReviewDate(RatingProhibited, from))
	assert.Equal(t, date(2026, time.June, 10), NextReviewDate(Rating("SOMETHING"), from), "unknown ratings review annually")
}

func TestNextReviewDate_LeapDay(t *testing.T) {
	leap := date(2024, time.February, 29)

	cases := []struct {
		rating Rating
		want   time.Time
	}{
		{RatingHigh, date(2025, time.March, 1)},
		{RatingMedium, date(2026, time.March, 1)},
		{RatingLow, date(2027, time.March, 1)},
	}
	for _, tc := range cases {
		got := NextReviewDate(tc.rating, leap)
		assert.Equal(t, tc.want, got, tc.rating)
		y, m, d := got.Date()
		assert.Equal(t, got, time.Date(y, m, d, 0, 0, 0, 0, time.UTC), "result is a valid normalized date")
	}

	// Four years later lands back on a leap day.
	assert.Equal(t, date(2028, time.February, 29), leap.AddDate(4, 0, 0))
}

func TestNextReviewDate_KeepsLocation(t *testing.T) {
	loc := time.FixedZone("GYT", -4*60*60)
	from := time.Date(2025, time.January, 1, 23, 0, 0, 0, loc)

	got := NextReviewDate(RatingLow, from)
	assert.Equal(t, time.Date(2028, time.January, 1, 0, 0, 0, 0, loc), got)
}
