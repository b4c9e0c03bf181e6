package model

import (
	"fmt"
	"strings"
	"time"
)

// Session is the atomic schedulable unit: one calendar day, one time
// interval, one instructor, belonging to exactly one class. A class row
// in the committed schedule is the full set of sessions sharing a group key.
type Session struct {
	ID           string    `json:"id"`
	GroupKey     string    `json:"group_key"`
	CatalogCode  string    `json:"catalog_code"`
	ClassName    string    `json:"class_name"`
	Description  string    `json:"description"`
	Program      string    `json:"program"`
	Semester     int       `json:"semester"`
	Credits      int       `json:"credits"`
	Hours        int       `json:"hours"`
	Instructor   string    `json:"instructor"`
	Simultaneous bool      `json:"simultaneous"`
	SessionCount int       `json:"session_count"`
	Module       int       `json:"module"`
	Sequence     int       `json:"sequence"`
	Date         Date      `json:"date"`
	StartTime    Clock     `json:"start_time"`
	EndTime      Clock     `json:"end_time"`
	CreatedAt    time.Time `json:"created_at,omitzero"`
}

// SameDay reports whether two sessions fall on the same calendar day.
func (s Session) SameDay(other Session) bool {
	return s.Date.Equal(other.Date)
}

// DeriveGroupKey builds the class-group key used to group, update and delete
// all sessions of one class: the catalog code plus the first five non-space
// characters of the title. Lookups against it must always match the full key,
// never a prefix, so catalog codes that prefix one another stay independent.
func DeriveGroupKey(catalogCode, title string) string {
	compact := strings.ReplaceAll(title, " ", "")
	if r := []rune(compact); len(r) > 5 {
		compact = string(r[:5])
	}
	return catalogCode + "-" + compact
}

// SessionID builds the identifier of a single session within a class by
// appending the sequence suffix to the group key.
func SessionID(groupKey string, sequence int) string {
	return fmt.Sprintf("%s-S%d", groupKey, sequence)
}
