package policy

import (
	"errors"
	"testing"
)

func TestHoursToHundredths(t *testing.T) {
	cases := []struct {
		hours   float64
		want    int64
		wantErr bool
	}{
		{1.5, 150, false},
		{0.01, 1, false},
		{8, 800, false},
		{6.25, 625, false},
		{0, 0, true},
		{-2, 0, true},
		{1.505, 0, true}, // more than two decimal places
	}
	for _, tc := range cases {
		got, err := HoursToHundredths(tc.hours)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidHours) {
				t.Errorf("HoursToHundredths(%v) err = %v, want ErrInvalidHours", tc.hours, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("HoursToHundredths(%v) unexpected error: %v", tc.hours, err)
			continue
		}
		if got != tc.want {
			t.Errorf("HoursToHundredths(%v) = %d, want %d", tc.hours, got, tc.want)
		}
	}
}

func TestCheckDailyCap(t *testing.T) {
	// 6.5 logged + 2.0 requested = 8.5 > 8: reject.
	if err := CheckDailyCap(650, 200); !errors.Is(err, ErrDailyCapExceeded) {
		t.Errorf("6.5+2.0 got %v, want ErrDailyCapExceeded", err)
	}
	// 6.5 + 1.5 = exactly 8.0: the boundary is inclusive.
	if err := CheckDailyCap(650, 150); err != nil {
		t.Errorf("6.5+1.5 should pass: %v", err)
	}
	if err := CheckDailyCap(0, 800); err != nil {
		t.Errorf("single 8h entry should pass: %v", err)
	}
	if err := CheckDailyCap(0, 801); !errors.Is(err, ErrDailyCapExceeded) {
		t.Errorf("8.01 got %v, want ErrDailyCapExceeded", err)
	}
}
