package domain

import "time"

// Expense is a single spending record owned by a user.
type Expense struct {
	ID        int64     `json:"id"`
	Amount    float64   `json:"amount"`
	UserID    int64     `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	DefaultPageLimit = 100
	MaxPageLimit     = 100
)

// Page selects a window of an ordered result set: skip Offset rows, then take
// at most Limit rows.
type Page struct {
	Offset int
	Limit  int
}

// DefaultPage returns the window used when the caller supplies none.
func DefaultPage() Page {
	return Page{Offset: 0, Limit: DefaultPageLimit}
}

// Valid reports whether the window is within the accepted bounds.
func (p Page) Valid() bool {
	return p.Offset >= 0 && p.Limit >= 0 && p.Limit <= MaxPageLimit
}
