package websocket

import "github.com/davmoros/cronograma-backend/internal/model"

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	// EventScheduleChanged fires whenever a class is accepted into or
	// deleted from the committed schedule; clients refetch on receipt.
	EventScheduleChanged Event = "schedule_changed"
)

// ScheduleChangedPayload tells a timetable view what changed.
type ScheduleChangedPayload struct {
	Event    Event             `json:"event"`
	Action   model.AuditAction `json:"action"`
	GroupKey string            `json:"group_key"`
}
