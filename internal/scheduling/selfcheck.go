package scheduling

import "github.com/davmoros/cronograma-backend/internal/model"

// CheckSelf detects pairwise overlaps among the sessions of a single
// submission. Instructor identity is irrelevant at this stage: a class can
// never hold two of its own sessions at the same time, whatever the
// simultaneity flag says. Every colliding pair is reported, ordered by the
// first session's position and then the second's.
//
// Quadratic over the handful of sessions a user composes in one submission.
func CheckSelf(sessions []model.Session) []Conflict {
	var conflicts []Conflict
	for i := 0; i < len(sessions); i++ {
		for j := i + 1; j < len(sessions); j++ {
			if Overlaps(sessions[i], sessions[j]) {
				conflicts = append(conflicts, selfOverlapConflict(sessions[i], sessions[j]))
			}
		}
	}
	return conflicts
}
