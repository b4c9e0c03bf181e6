package scheduling

import (
	"fmt"

	"github.com/davmoros/cronograma-backend/internal/model"
)

// ConflictKind classifies why a proposed session is blocked.
type ConflictKind string

const (
	ConflictMalformedSession ConflictKind = "MALFORMED_SESSION"
	ConflictSelfOverlap      ConflictKind = "SELF_OVERLAP"
	ConflictInstructor       ConflictKind = "INSTRUCTOR_CONFLICT"
	ConflictStudentCohort    ConflictKind = "STUDENT_COHORT_CONFLICT"
)

// Conflict is a transient finding produced while validating a submission.
// It is never persisted; it exists to tell the user exactly which sessions
// collide and why.
type Conflict struct {
	Kind ConflictKind `json:"kind"`
	// Sequence is the 1-based position of the offending proposed session.
	Sequence int `json:"sequence,omitempty"`
	// OtherSequence identifies the second proposed session of a self-overlap.
	OtherSequence int `json:"other_sequence,omitempty"`
	// Existing is the committed session collided with, when applicable.
	Existing *model.Session `json:"existing,omitempty"`
	Message  string         `json:"message"`
}

func selfOverlapConflict(a, b model.Session) Conflict {
	return Conflict{
		Kind:          ConflictSelfOverlap,
		Sequence:      a.Sequence,
		OtherSequence: b.Sequence,
		Message: fmt.Sprintf(
			"sessions %d (%s-%s) and %d (%s-%s) of this class overlap on %s",
			a.Sequence, a.StartTime, a.EndTime,
			b.Sequence, b.StartTime, b.EndTime, a.Date),
	}
}

func instructorConflict(proposed model.Session, existing model.Session) Conflict {
	e := existing
	return Conflict{
		Kind:     ConflictInstructor,
		Sequence: proposed.Sequence,
		Existing: &e,
		Message: fmt.Sprintf(
			"instructor %s already teaches %s (%s) on %s from %s to %s",
			proposed.Instructor, e.ClassName, e.ID, e.Date, e.StartTime, e.EndTime),
	}
}

func cohortConflict(proposed model.Session, existing model.Session) Conflict {
	e := existing
	return Conflict{
		Kind:     ConflictStudentCohort,
		Sequence: proposed.Sequence,
		Existing: &e,
		Message: fmt.Sprintf(
			"program %s semester %d already has %s (%s) scheduled on %s from %s to %s",
			e.Program, e.Semester, e.ClassName, e.ID, e.Date, e.StartTime, e.EndTime),
	}
}

func malformedConflict(sequence int, detail string) Conflict {
	msg := detail
	if sequence > 0 {
		msg = fmt.Sprintf("session %d: %s", sequence, detail)
	}
	return Conflict{
		Kind:     ConflictMalformedSession,
		Sequence: sequence,
		Message:  msg,
	}
}
