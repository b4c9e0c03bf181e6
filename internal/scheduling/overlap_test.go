package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/davmoros/cronograma-backend/internal/model"
)

func session(date model.Date, start, end string) model.Session {
	s, err := model.ParseClock(start)
	if err != nil {
		panic(err)
	}
	e, err := model.ParseClock(end)
	if err != nil {
		panic(err)
	}
	return model.Session{Date: date, StartTime: s, EndTime: e}
}

func TestOverlaps(t *testing.T) {
	day := model.NewDate(2026, time.February, 10)
	otherDay := model.NewDate(2026, time.February, 11)

	tests := []struct {
		name string
		a, b model.Session
		want bool
	}{
		{"identical intervals", session(day, "08:00", "10:00"), session(day, "08:00", "10:00"), true},
		{"partial overlap", session(day, "08:00", "10:00"), session(day, "09:00", "11:00"), true},
		{"containment", session(day, "08:00", "12:00"), session(day, "09:00", "10:00"), true},
		{"one minute of overlap", session(day, "08:00", "10:01"), session(day, "10:00", "12:00"), true},
		{"abutting intervals do not conflict", session(day, "08:00", "10:00"), session(day, "10:00", "12:00"), false},
		{"disjoint same day", session(day, "08:00", "09:00"), session(day, "10:00", "11:00"), false},
		{"same time different day", session(day, "08:00", "10:00"), session(otherDay, "08:00", "10:00"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, Overlaps(tt.b, tt.a))
		})
	}
}
