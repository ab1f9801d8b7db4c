package policy

import (
	"errors"
	"math"
)

// DailyCapHours is the ceiling on one user's logged hours for a single
// work date. The boundary is inclusive: a day summing to exactly 8.00
// is accepted.
const DailyCapHours = 8

const dailyCapHundredths = DailyCapHours * 100

var (
	ErrInvalidHours     = errors.New("40003:hours must be a positive number with at most two decimal places")
	ErrDailyCapExceeded = errors.New("40902:daily limit exceeded, maximum 8 hours per day")
)

// HoursToHundredths validates an hours value and converts it to
// integer hundredths. All cap arithmetic runs on hundredths so float
// rounding can never tip a total over or under the boundary.
func HoursToHundredths(hours float64) (int64, error) {
	if hours <= 0 || math.IsNaN(hours) || math.IsInf(hours, 0) {
		return 0, ErrInvalidHours
	}
	scaled := hours * 100
	rounded := math.Round(scaled)
	if math.Abs(scaled-rounded) > 1e-6 {
		return 0, ErrInvalidHours
	}
	return int64(rounded), nil
}

// CheckDailyCap accepts the requested hours iff the day's new total
// stays at or below the cap. The caller computes existing as the sum
// over (user, work date), excluding the entry under edit so its old
// value does not double-count.
func CheckDailyCap(existingHundredths, requestedHundredths int64) error {
	if existingHundredths+requestedHundredths > dailyCapHundredths {
		return ErrDailyCapExceeded
	}
	return nil
}
