package config

// WorkerKeys names the Redis lists consumed by background workers.
type WorkerKeys struct {
	ScheduleAuditQueue string
}

// WorkerKey is the shared queue-name registry.
var WorkerKey = &WorkerKeys{
	ScheduleAuditQueue: "schedule_audit_queue",
}
