package scheduling

import (
	"fmt"

	"github.com/davmoros/cronograma-backend/internal/model"
)

// Result is the outcome of validating one submission.
type Result struct {
	Conflicts []Conflict `json:"conflicts"`
}

// OK reports whether the submission may be committed.
func (r Result) OK() bool {
	return len(r.Conflicts) == 0
}

// CheckWellFormed validates the preconditions the overlap logic relies on:
// class-level required fields, a non-empty instructor on every session, and
// end time strictly after start time. All findings are collected so the user
// sees every problem at once.
func CheckWellFormed(class model.Class, sessions []model.Session) []Conflict {
	var conflicts []Conflict

	for _, field := range []struct {
		name  string
		value string
	}{
		{"title", class.Title},
		{"catalog code", class.CatalogCode},
		{"description", class.Description},
		{"program", class.Program},
	} {
		if field.value == "" {
			conflicts = append(conflicts, malformedConflict(0, fmt.Sprintf("missing required field: %s", field.name)))
		}
	}

	if len(sessions) == 0 {
		conflicts = append(conflicts, malformedConflict(0, "class has no sessions"))
	}

	for _, s := range sessions {
		if s.Instructor == "" {
			conflicts = append(conflicts, malformedConflict(s.Sequence, "missing instructor"))
		}
		if s.EndTime <= s.StartTime {
			conflicts = append(conflicts, malformedConflict(s.Sequence,
				fmt.Sprintf("end time %s must be after start time %s", s.EndTime, s.StartTime)))
		}
	}

	return conflicts
}

// Validate runs the full scheduling decision for one submission:
// preconditions, then self-consistency, then the committed-schedule check.
// Phases are sequential and a failing phase stops the pipeline, so the
// repository check never reports conflicts against internally inconsistent
// input. Within each phase every finding is collected.
//
// The committed schedule arrives as an explicit snapshot, which makes the
// whole decision a deterministic, side-effect-free function of its inputs:
// running it twice against the same snapshot yields the same result.
func Validate(class model.Class, sessions, committed []model.Session) Result {
	if conflicts := CheckWellFormed(class, sessions); len(conflicts) > 0 {
		return Result{Conflicts: conflicts}
	}
	if conflicts := CheckSelf(sessions); len(conflicts) > 0 {
		return Result{Conflicts: conflicts}
	}
	return Result{Conflicts: CheckAgainstCommitted(sessions, committed)}
}
