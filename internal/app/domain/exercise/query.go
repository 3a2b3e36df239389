package exercise

import (
	"sort"
	"time"
)

// Query narrows a user's exercise log. Bounds are inclusive and already
// normalized to day boundaries; a zero Limit means no limit.
type Query struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

// Matches reports whether ex falls inside the query's date window.
func (q Query) Matches(ex Exercise) bool {
	if q.From != nil && ex.Date.Before(*q.From) {
		return false
	}
	if q.To != nil && ex.Date.After(*q.To) {
		return false
	}
	return true
}

// Apply filters exercises by date window, sorts them by date ascending
// (insertion order on ties) and truncates to Limit. The input slice is not
// modified.
func (q Query) Apply(exercises []Exercise) []Exercise {
	out := make([]Exercise, 0, len(exercises))
	for _, ex := range exercises {
		if q.Matches(ex) {
			out = append(out, ex)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}
