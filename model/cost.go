package model

import "time"

// MonthlySeries holds one total per requested historical month, most recent
// complete month first. A nil entry marks a month whose query failed; it is
// never coerced to zero.
type MonthlySeries []*float64

// Last returns the most recent complete month's total, or nil if it failed
func (s MonthlySeries) Last() *float64 {
	if len(s) == 0 {
		return nil
	}
	return s[0]
}

// PriorTwo returns the totals of the two months before the most recent one,
// skipping failed months
func (s MonthlySeries) PriorTwo() []float64 {
	out := make([]float64, 0, 2)
	for i := 1; i < len(s) && i < 3; i++ {
		if s[i] != nil {
			out = append(out, *s[i])
		}
	}
	return out
}

// MonthWindow is one fully elapsed calendar month, inclusive on both ends
type MonthWindow struct {
	Start time.Time
	End   time.Time
}
