package exercise

import "time"

// Exercise is one logged activity for a user. Date has day granularity for
// display but keeps whatever time of day it was recorded with, so range
// filters compare full timestamps against normalized day boundaries.
type Exercise struct {
	ID          string
	UserID      string
	Description string
	Duration    int // minutes
	Date        time.Time
	CreatedAt   time.Time
}

// Day renders the exercise date for API responses.
func (e Exercise) Day() string {
	return FormatDay(e.Date)
}
