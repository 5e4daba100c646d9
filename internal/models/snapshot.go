package models

import "time"

// FetchStatus is the outcome of a single fetch.
type FetchStatus string

const (
	// FetchStatusOK means records were received and charted.
	FetchStatusOK FetchStatus = "ok"
	// FetchStatusNetworkError means the source could not be read.
	FetchStatusNetworkError FetchStatus = "network_error"
	// FetchStatusEmpty means the source answered with zero records.
	FetchStatusEmpty FetchStatus = "empty"
)

// FetchSnapshot is one row of the fetch history log.
type FetchSnapshot struct {
	FetchedAt time.Time
	Source    string
	Status    FetchStatus
	Error     string
	Sectors   []CategoryCount
	ID        int64
	Total     int
	Duration  time.Duration
}

// OK reports whether the fetch produced chart data.
func (s FetchSnapshot) OK() bool {
	return s.Status == FetchStatusOK
}

// DailyCount is the number of interactions recorded on one day.
type DailyCount struct {
	Day   string
	Count int
}
