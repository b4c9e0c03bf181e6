package scheduling

import "github.com/davmoros/cronograma-backend/internal/model"

// CheckAgainstCommitted validates proposed sessions against the committed
// schedule snapshot. For each proposed session, in submission order, the
// snapshot is first narrowed to rows on the same calendar day; within that
// subset at most the first instructor conflict and at most the first
// student-cohort conflict are reported, taking the snapshot's stored order
// as the tie-break. One conflict of each kind is enough to explain the
// rejection; enumerating every colliding row would only add noise.
//
// Instructor conflicts are unconditional. Cohort conflicts (same program and
// semester) apply only when both the proposed class and the committed class
// have simultaneity disabled.
func CheckAgainstCommitted(proposed, committed []model.Session) []Conflict {
	var conflicts []Conflict
	for _, p := range proposed {
		sameDay := narrowToDay(committed, p.Date)

		for _, existing := range sameDay {
			if existing.Instructor == p.Instructor && Overlaps(p, existing) {
				conflicts = append(conflicts, instructorConflict(p, existing))
				break
			}
		}

		if p.Simultaneous {
			continue
		}
		for _, existing := range sameDay {
			if existing.Simultaneous {
				continue
			}
			if existing.Program == p.Program && existing.Semester == p.Semester && Overlaps(p, existing) {
				conflicts = append(conflicts, cohortConflict(p, existing))
				break
			}
		}
	}
	return conflicts
}

func narrowToDay(committed []model.Session, date model.Date) []model.Session {
	var sameDay []model.Session
	for _, s := range committed {
		if s.Date.Equal(date) {
			sameDay = append(sameDay, s)
		}
	}
	return sameDay
}
