package risk

import "time"

// ReviewInterval is the number of years until the next periodic review.
func ReviewInterval(r Rating) int {
	switch r {
	case RatingLow:
		return 3
	case RatingMedium:
		return 2
	default:
		return 1
	}
}

// NextReviewDate returns the review date for an assessment made at from. The
// result is a calendar date (midnight in from's location). Year addition
// follows time.AddDate, so Feb 29 rolls to Mar 1 in non-leap years.
func NextReviewDate(r Rating, from time.Time) time.Time {
	y, m, d := from.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, from.Location()).AddDate(ReviewInterval(r), 0, 0)
}
