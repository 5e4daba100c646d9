package db

const (
	// timeLayout is how timestamps are stored so SQLite date functions can read them.
	timeLayout = "2006-01-02 15:04:05"

	// DefaultHistoryLimit is how many fetches the history view loads.
	DefaultHistoryLimit = 50

	// DefaultRetention is how many fetches are kept after pruning.
	DefaultRetention = 1000
)
