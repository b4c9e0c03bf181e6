package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davmoros/cronograma-backend/internal/model"
)

func planned(seq int, date model.Date, start, end, instructor string) model.Session {
	s := session(date, start, end)
	s.Sequence = seq
	s.Instructor = instructor
	return s
}

func TestCheckSelfSingleSessionPasses(t *testing.T) {
	day := model.NewDate(2026, time.March, 2)
	conflicts := CheckSelf([]model.Session{planned(1, day, "08:00", "10:00", "Garcia")})
	assert.Empty(t, conflicts)
}

func TestCheckSelfDetectsOverlappingModules(t *testing.T) {
	day := model.NewDate(2026, time.March, 2)
	sessions := []model.Session{
		planned(1, day, "08:00", "10:00", "Garcia"),
		planned(2, day, "09:30", "11:00", "Lopez"),
	}

	conflicts := CheckSelf(sessions)
	require.Len(t, conflicts, 1)
	assert.Equal(t, ConflictSelfOverlap, conflicts[0].Kind)
	assert.Equal(t, 1, conflicts[0].Sequence)
	assert.Equal(t, 2, conflicts[0].OtherSequence)
	assert.Contains(t, conflicts[0].Message, "2026-03-02")
}

func TestCheckSelfIgnoresInstructorIdentity(t *testing.T) {
	// Two modules with different instructors still cannot share a time slot
	// within one class.
	day := model.NewDate(2026, time.March, 2)
	sessions := []model.Session{
		planned(1, day, "08:00", "10:00", "Garcia"),
		planned(2, day, "08:00", "10:00", "Lopez"),
	}
	require.Len(t, CheckSelf(sessions), 1)
}

func TestCheckSelfReportsAllPairsInOrder(t *testing.T) {
	day := model.NewDate(2026, time.March, 2)
	sessions := []model.Session{
		planned(1, day, "08:00", "12:00", "Garcia"),
		planned(2, day, "09:00", "10:00", "Garcia"),
		planned(3, day, "11:00", "13:00", "Garcia"),
	}

	conflicts := CheckSelf(sessions)
	require.Len(t, conflicts, 2)
	assert.Equal(t, []int{1, 2}, []int{conflicts[0].Sequence, conflicts[0].OtherSequence})
	assert.Equal(t, []int{1, 3}, []int{conflicts[1].Sequence, conflicts[1].OtherSequence})
}

func TestCheckSelfCleanAcrossDays(t *testing.T) {
	sessions := []model.Session{
		planned(1, model.NewDate(2026, time.March, 2), "08:00", "10:00", "Garcia"),
		planned(2, model.NewDate(2026, time.March, 9), "08:00", "10:00", "Garcia"),
		planned(3, model.NewDate(2026, time.March, 16), "08:00", "10:00", "Garcia"),
	}
	assert.Empty(t, CheckSelf(sessions))
}
