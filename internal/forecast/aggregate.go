// Package forecast collapses fine-grained upstream weather samples into a
// bounded ordered sequence of daily summaries.
package forecast

import (
	"math"
	"sort"
	"time"
)

// Sample is one sub-daily reading from the upstream provider, already
// normalized by the caller. When the provider supplies only a single
// "current" temperature for a reading, the caller sets both TempMin and
// TempMax to it. Temperatures absent upstream decode to 0; an all-zero day
// in the output therefore signals missing upstream data, not a real reading.
type Sample struct {
	// DateTime is the provider's "YYYY-MM-DD HH:MM:SS" text timestamp.
	// Only the date prefix is used for grouping.
	DateTime string
	// Unix is the reading's unix timestamp, used when DateTime is empty.
	Unix int64
	// TempMin is the reading's minimum temperature candidate.
	TempMin float64
	// TempMax is the reading's maximum temperature candidate.
	TempMax float64
	// Description is the human-readable conditions text.
	Description string
	// Icon is the provider's icon code.
	Icon string
}

// Day is the aggregated summary of all samples sharing a calendar date.
type Day struct {
	Date        string  `json:"date"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

// Aggregate groups samples by calendar date, folds per-date min/max
// temperatures, and returns at most maxDays summaries in chronological
// order. Description and icon come from the first sample seen for a date.
// An empty sample list yields an empty result, never an error.
func Aggregate(samples []Sample, maxDays int) []Day {
	days := []Day{}
	if len(samples) == 0 || maxDays <= 0 {
		return days
	}

	byDate := make(map[string]*Day)
	for _, s := range samples {
		date := s.dateKey()
		d, ok := byDate[date]
		if !ok {
			byDate[date] = &Day{
				Date:        date,
				Min:         s.TempMin,
				Max:         s.TempMax,
				Description: s.Description,
				Icon:        s.Icon,
			}
			continue
		}
		if s.TempMin < d.Min {
			d.Min = s.TempMin
		}
		if s.TempMax > d.Max {
			d.Max = s.TempMax
		}
	}

	// Fixed-width YYYY-MM-DD keys sort lexicographically in chronological order.
	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	if len(dates) > maxDays {
		dates = dates[:maxDays]
	}

	for _, date := range dates {
		d := byDate[date]
		d.Min = round1(d.Min)
		d.Max = round1(d.Max)
		days = append(days, *d)
	}
	return days
}

// dateKey extracts the YYYY-MM-DD grouping key for the sample.
func (s Sample) dateKey() string {
	if len(s.DateTime) >= 10 {
		return s.DateTime[:10]
	}
	return time.Unix(s.Unix, 0).UTC().Format("2006-01-02")
}

// round1 rounds to one decimal place, halves away from zero.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
