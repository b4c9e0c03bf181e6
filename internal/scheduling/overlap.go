// Package scheduling holds the conflict-detection engine: pure functions
// that decide whether a proposed class can join the committed schedule
// without double-booking an instructor or a program/semester cohort.
package scheduling

import "github.com/davmoros/cronograma-backend/internal/model"

// Overlaps reports whether two sessions collide: same calendar day and
// intersecting half-open [start,end) time intervals. The inequalities are
// strict, so a session that ends exactly when another starts does not
// overlap it.
func Overlaps(a, b model.Session) bool {
	return a.SameDay(b) && a.StartTime < b.EndTime && b.StartTime < a.EndTime
}
