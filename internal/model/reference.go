package model

import "time"

// Program is a reference entry for a graduate program. Programs exist only
// to prefill data-entry forms; scheduling treats the program as a free-text
// cohort label and works without this table being populated.
type Program struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Instructor is a reference entry for an instructor name, also prefill-only.
type Instructor struct {
	ID        int       `json:"id"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}
