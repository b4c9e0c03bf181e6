package model

// ClassMode selects how instructors are assigned across a class's sessions.
type ClassMode string

const (
	// ClassModeRegular repeats a single instructor and time window over
	// every planned date.
	ClassModeRegular ClassMode = "REGULAR"
	// ClassModeModular gives each module its own instructor, date and time.
	ClassModeModular ClassMode = "MODULAR"
)

// Class is a course offering being composed for submission. It carries the
// metadata shared by every session; the session plan itself arrives as
// SessionDetail entries and is expanded into Session rows before validation.
type Class struct {
	CatalogCode  string
	Title        string
	Description  string
	Program      string
	Semester     int
	Credits      int
	Hours        int
	Mode         ClassMode
	Simultaneous bool
}

// GroupKey returns the structured identifier grouping all of this class's
// sessions in the committed schedule.
func (c Class) GroupKey() string {
	return DeriveGroupKey(c.CatalogCode, c.Title)
}

// SessionDetail is one entry of a class's session plan: who teaches, on which
// day, and over which time window.
type SessionDetail struct {
	Instructor string
	Date       Date
	StartTime  Clock
	EndTime    Clock
}

// BuildSessions expands a class and its session plan into the persistable
// session rows. Regular classes collapse to module 1 throughout; modular
// classes get one module per plan entry. Sequence numbers follow plan order.
func BuildSessions(class Class, plan []SessionDetail) []Session {
	groupKey := class.GroupKey()
	sessions := make([]Session, 0, len(plan))
	for i, detail := range plan {
		module := 1
		if class.Mode == ClassModeModular {
			module = i + 1
		}
		sessions = append(sessions, Session{
			ID:           SessionID(groupKey, i+1),
			GroupKey:     groupKey,
			CatalogCode:  class.CatalogCode,
			ClassName:    class.Title,
			Description:  class.Description,
			Program:      class.Program,
			Semester:     class.Semester,
			Credits:      class.Credits,
			Hours:        class.Hours,
			Instructor:   detail.Instructor,
			Simultaneous: class.Simultaneous,
			SessionCount: len(plan),
			Module:       module,
			Sequence:     i + 1,
			Date:         detail.Date,
			StartTime:    detail.StartTime,
			EndTime:      detail.EndTime,
		})
	}
	return sessions
}
