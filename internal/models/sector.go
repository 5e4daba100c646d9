package models

// CategoryCount is the number of records seen for one category label.
type CategoryCount struct {
	Label string
	Count int
}

// PercentEntry is a category's share of all records, in percent.
type PercentEntry struct {
	Label   string
	Percent float64
}

// Labels returns the labels of counts in order.
func Labels(counts []CategoryCount) []string {
	labels := make([]string, len(counts))
	for i, c := range counts {
		labels[i] = c.Label
	}
	return labels
}
