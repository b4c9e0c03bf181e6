package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveGroupKey(t *testing.T) {
	assert.Equal(t, "PSY500-Clini", DeriveGroupKey("PSY500", "Clinical Methods"))
	assert.Equal(t, "MKT10-Intro", DeriveGroupKey("MKT10", "Intro"))
	// Spaces are stripped before truncation.
	assert.Equal(t, "FIN2-ABCDE", DeriveGroupKey("FIN2", "A B C D E F"))
}

func TestSessionID(t *testing.T) {
	assert.Equal(t, "PSY500-Clini-S3", SessionID("PSY500-Clini", 3))
}

func TestBuildSessionsRegular(t *testing.T) {
	class := Class{
		CatalogCode: "PSY500",
		Title:       "Clinical Methods",
		Description: "Seminar",
		Program:     "MBA",
		Semester:    1,
		Credits:     3,
		Hours:       32,
		Mode:        ClassModeRegular,
	}
	start, _ := ParseClock("08:00")
	end, _ := ParseClock("10:00")
	plan := []SessionDetail{
		{Instructor: "Garcia", Date: NewDate(2026, time.February, 10), StartTime: start, EndTime: end},
		{Instructor: "Garcia", Date: NewDate(2026, time.February, 17), StartTime: start, EndTime: end},
	}

	sessions := BuildSessions(class, plan)
	require.Len(t, sessions, 2)

	assert.Equal(t, "PSY500-Clini-S1", sessions[0].ID)
	assert.Equal(t, "PSY500-Clini-S2", sessions[1].ID)
	for i, s := range sessions {
		assert.Equal(t, "PSY500-Clini", s.GroupKey)
		assert.Equal(t, 1, s.Module, "regular classes stay on module 1")
		assert.Equal(t, i+1, s.Sequence)
		assert.Equal(t, 2, s.SessionCount)
		assert.Equal(t, "MBA", s.Program)
	}
}

func TestBuildSessionsModular(t *testing.T) {
	class := Class{
		CatalogCode: "FIN600",
		Title:       "Corporate Finance",
		Mode:        ClassModeModular,
	}
	start, _ := ParseClock("14:00")
	end, _ := ParseClock("18:00")
	plan := []SessionDetail{
		{Instructor: "Garcia", Date: NewDate(2026, time.March, 7), StartTime: start, EndTime: end},
		{Instructor: "Lopez", Date: NewDate(2026, time.March, 14), StartTime: start, EndTime: end},
	}

	sessions := BuildSessions(class, plan)
	require.Len(t, sessions, 2)
	assert.Equal(t, 1, sessions[0].Module)
	assert.Equal(t, 2, sessions[1].Module)
	assert.Equal(t, "Garcia", sessions[0].Instructor)
	assert.Equal(t, "Lopez", sessions[1].Instructor)
}
