package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davmoros/cronograma-backend/internal/model"
)

func validClass() model.Class {
	return model.Class{
		CatalogCode:  "PSY500",
		Title:        "Clinical Methods",
		Description:  "Core clinical methods seminar",
		Program:      "MBA",
		Semester:     1,
		Credits:      3,
		Hours:        32,
		Mode:         model.ClassModeRegular,
	}
}

func TestValidateAcceptsCleanSubmission(t *testing.T) {
	class := validClass()
	sessions := model.BuildSessions(class, []model.SessionDetail{
		{Instructor: "Garcia", Date: model.NewDate(2026, time.February, 10), StartTime: mustClock("08:00"), EndTime: mustClock("10:00")},
		{Instructor: "Garcia", Date: model.NewDate(2026, time.February, 17), StartTime: mustClock("08:00"), EndTime: mustClock("10:00")},
	})

	result := Validate(class, sessions, nil)
	assert.True(t, result.OK())
}

func TestValidateCollectsEveryPreconditionFailure(t *testing.T) {
	class := validClass()
	class.Description = ""
	sessions := model.BuildSessions(class, []model.SessionDetail{
		{Instructor: "", Date: model.NewDate(2026, time.February, 10), StartTime: mustClock("10:00"), EndTime: mustClock("08:00")},
	})

	result := Validate(class, sessions, nil)
	require.Len(t, result.Conflicts, 3)
	for _, c := range result.Conflicts {
		assert.Equal(t, ConflictMalformedSession, c.Kind)
	}
}

func TestValidateRejectsZeroLengthSession(t *testing.T) {
	class := validClass()
	sessions := model.BuildSessions(class, []model.SessionDetail{
		{Instructor: "Garcia", Date: model.NewDate(2026, time.February, 10), StartTime: mustClock("08:00"), EndTime: mustClock("08:00")},
	})

	result := Validate(class, sessions, nil)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, ConflictMalformedSession, result.Conflicts[0].Kind)
}

func TestValidateRejectsEmptySubmission(t *testing.T) {
	result := Validate(validClass(), nil, nil)
	require.Len(t, result.Conflicts, 1)
	assert.Contains(t, result.Conflicts[0].Message, "no sessions")
}

func TestSelfOverlapShortCircuitsRepositoryCheck(t *testing.T) {
	class := validClass()
	day := model.NewDate(2026, time.February, 10)
	sessions := model.BuildSessions(class, []model.SessionDetail{
		{Instructor: "Garcia", Date: day, StartTime: mustClock("08:00"), EndTime: mustClock("10:00")},
		{Instructor: "Garcia", Date: day, StartTime: mustClock("09:30"), EndTime: mustClock("11:00")},
	})
	// A committed row that would trigger an instructor conflict if the
	// repository phase ran.
	committed := []model.Session{
		committedRow("X-Other-S1", "Other", "Garcia", "MBA", 1, false, day, "08:00", "12:00"),
	}

	result := Validate(class, sessions, committed)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, ConflictSelfOverlap, result.Conflicts[0].Kind)
}

// TestGarciaScenario walks the reference scenario end to end: one committed
// class, then three competing submissions with different instructors and
// simultaneity flags.
func TestGarciaScenario(t *testing.T) {
	day := model.NewDate(2026, time.February, 10)
	committed := []model.Session{
		committedRow("X-ClassX-S1", "Class X", "Garcia", "MBA", 1, false, day, "08:00", "10:00"),
	}

	submit := func(instructor string, simultaneous bool) Result {
		class := validClass()
		class.Simultaneous = simultaneous
		sessions := model.BuildSessions(class, []model.SessionDetail{
			{Instructor: instructor, Date: day, StartTime: mustClock("09:00"), EndTime: mustClock("11:00")},
		})
		return Validate(class, sessions, committed)
	}

	// Class Y: same instructor, overlapping time.
	y := submit("Garcia", false)
	require.Len(t, y.Conflicts, 2)
	assert.Equal(t, ConflictInstructor, y.Conflicts[0].Kind)

	// Class Z: different instructor, same cohort, both exclusive.
	z := submit("Lopez", false)
	require.Len(t, z.Conflicts, 1)
	assert.Equal(t, ConflictStudentCohort, z.Conflicts[0].Kind)

	// Class W: different instructor, simultaneity enabled on the new side.
	w := submit("Lopez", true)
	assert.True(t, w.OK())
}

func TestValidateIsIdempotent(t *testing.T) {
	day := model.NewDate(2026, time.February, 10)
	class := validClass()
	sessions := model.BuildSessions(class, []model.SessionDetail{
		{Instructor: "Lopez", Date: day, StartTime: mustClock("09:00"), EndTime: mustClock("11:00")},
	})
	committed := []model.Session{
		committedRow("X-ClassX-S1", "Class X", "Garcia", "MBA", 1, false, day, "08:00", "10:00"),
	}

	first := Validate(class, sessions, committed)
	second := Validate(class, sessions, committed)
	assert.Equal(t, first, second)
}

func mustClock(s string) model.Clock {
	c, err := model.ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}
