// Package sectors turns interaction records into per-sector counts and shares.
package sectors

import (
	"errors"
	"sort"

	"github.com/j-veylop/interaction-sector-viewer/internal/models"
)

// ErrNoRecords is returned when a share is requested over zero records.
// Callers render the no-data state instead.
var ErrNoRecords = errors.New("no interaction records")

// Aggregate counts records per sector label. Labels keep the order in which
// they first appear in records and are compared case-sensitively.
func Aggregate(records []models.InteractionRecord) []models.CategoryCount {
	counts := make([]models.CategoryCount, 0)
	index := make(map[string]int)

	for _, rec := range records {
		label := rec.Sector()
		i, ok := index[label]
		if !ok {
			i = len(counts)
			index[label] = i
			counts = append(counts, models.CategoryCount{Label: label})
		}
		counts[i].Count++
	}

	return counts
}

// Percentages converts counts into shares of total, count/total*100, one
// entry per category in the same order.
func Percentages(counts []models.CategoryCount, total int) ([]models.PercentEntry, error) {
	if total <= 0 {
		return nil, ErrNoRecords
	}

	entries := make([]models.PercentEntry, len(counts))
	for i, c := range counts {
		entries[i] = models.PercentEntry{
			Label:   c.Label,
			Percent: float64(c.Count) / float64(total) * 100,
		}
	}
	return entries, nil
}

// Total sums the counts.
func Total(counts []models.CategoryCount) int {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	return total
}

// Daily counts records per day, sorted by day ascending.
func Daily(records []models.InteractionRecord) []models.DailyCount {
	byDay := make(map[string]int)
	for _, rec := range records {
		byDay[rec.Day()]++
	}

	days := make([]models.DailyCount, 0, len(byDay))
	for day, n := range byDay {
		days = append(days, models.DailyCount{Day: day, Count: n})
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Day < days[j].Day
	})
	return days
}

// SortedByCount returns a copy of counts ordered by count descending, ties
// kept in their original order.
func SortedByCount(counts []models.CategoryCount) []models.CategoryCount {
	sorted := make([]models.CategoryCount, len(counts))
	copy(sorted, counts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	return sorted
}
