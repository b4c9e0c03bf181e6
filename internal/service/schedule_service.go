package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/davmoros/cronograma-backend/internal/model"
	"github.com/davmoros/cronograma-backend/internal/scheduling"
)

// Domain Errors
var (
	ErrClassNotFound = errors.New("no class with that group key")
)

// PersistenceError reports a storage failure AFTER validation already
// passed. It is deliberately a distinct type: the caller must be able to
// tell "your submission conflicts" apart from "storage is down".
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ScheduleStore abstracts committed-schedule persistence. The validator
// receives its snapshot through this interface instead of reading ambient
// state, so tests can run the whole decision against an in-memory store.
type ScheduleStore interface {
	ListAll(ctx context.Context) ([]model.Session, error)
	ListByDates(ctx context.Context, dates []model.Date) ([]model.Session, error)
	ListFiltered(ctx context.Context, program, instructor string, semester *int) ([]model.Session, error)
	InsertBatch(ctx context.Context, sessions []model.Session) error
	DeleteByGroupKey(ctx context.Context, groupKey string) (int64, error)
}

// AuditSink enqueues audit events for asynchronous persistence.
type AuditSink interface {
	Enqueue(ctx context.Context, e model.AuditEntry) error
}

// ChangeNotifier broadcasts committed schedule mutations to live listeners.
type ChangeNotifier interface {
	NotifyScheduleChanged(action model.AuditAction, groupKey string)
}

// SubmitOutcome is the decision for one class submission.
type SubmitOutcome struct {
	Accepted  bool                  `json:"accepted"`
	Sessions  []model.Session       `json:"sessions,omitempty"`
	Conflicts []scheduling.Conflict `json:"conflicts,omitempty"`
}

// ScheduleService orchestrates submission validation and the committed
// schedule's only mutation paths (accept and delete).
type ScheduleService struct {
	store    ScheduleStore
	audit    AuditSink
	notifier ChangeNotifier
	log      zerolog.Logger

	// mu serializes every read-validate-write sequence. Without it two
	// submissions could both validate against the same pre-insert snapshot
	// and both land, producing an undetected double-booking.
	mu sync.Mutex
}

// NewScheduleService creates a new ScheduleService. audit and notifier may
// be nil when those side channels are not wired (e.g. in tests).
func NewScheduleService(store ScheduleStore, audit AuditSink, notifier ChangeNotifier, log zerolog.Logger) *ScheduleService {
	return &ScheduleService{
		store:    store,
		audit:    audit,
		notifier: notifier,
		log:      log.With().Str("component", "schedule_service").Logger(),
	}
}

// Submit validates a composed class against the committed schedule and, when
// clean, appends its sessions atomically. The snapshot fetch, validation and
// insert all happen under the single writer lock, so the snapshot can never
// go stale between validation and write.
func (s *ScheduleService) Submit(ctx context.Context, class model.Class, plan []model.SessionDetail) (*SubmitOutcome, error) {
	sessions := model.BuildSessions(class, plan)

	s.mu.Lock()
	defer s.mu.Unlock()

	committed, err := s.store.ListByDates(ctx, distinctDates(sessions))
	if err != nil {
		return nil, fmt.Errorf("load schedule snapshot: %w", err)
	}

	result := scheduling.Validate(class, sessions, committed)
	if !result.OK() {
		s.log.Info().
			Str("group_key", class.GroupKey()).
			Int("conflicts", len(result.Conflicts)).
			Msg("Submission rejected")
		return &SubmitOutcome{Conflicts: result.Conflicts}, nil
	}

	if err := s.store.InsertBatch(ctx, sessions); err != nil {
		return nil, &PersistenceError{Op: "insert", Err: err}
	}

	s.recordMutation(ctx, model.AuditActionClassAccepted, class.GroupKey(), class.Title, len(sessions))
	s.log.Info().
		Str("group_key", class.GroupKey()).
		Int("sessions", len(sessions)).
		Msg("Class accepted")

	return &SubmitOutcome{Accepted: true, Sessions: sessions}, nil
}

// Delete removes every session of the class with the given group key. The
// key is matched exactly, never as a prefix.
func (s *ScheduleService) Delete(ctx context.Context, groupKey string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.store.DeleteByGroupKey(ctx, groupKey)
	if err != nil {
		return 0, &PersistenceError{Op: "delete", Err: err}
	}
	if removed == 0 {
		return 0, ErrClassNotFound
	}

	s.recordMutation(ctx, model.AuditActionClassDeleted, groupKey, "", int(removed))
	s.log.Info().
		Str("group_key", groupKey).
		Int64("sessions", removed).
		Msg("Class deleted")

	return removed, nil
}

// List retrieves committed sessions matching the optional filters.
func (s *ScheduleService) List(ctx context.Context, program, instructor string, semester *int) ([]model.Session, error) {
	sessions, err := s.store.ListFiltered(ctx, program, instructor, semester)
	if err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []model.Session{}
	}
	return sessions, nil
}

// csvHeader matches the committed schedule's semantic table columns.
var csvHeader = []string{
	"id", "catalog_code", "class_name", "description", "program", "semester",
	"credits", "hours", "instructor", "simultaneous", "session_count",
	"module", "sequence", "date", "start_time", "end_time",
}

// ExportCSV streams the (optionally filtered) committed schedule as CSV.
func (s *ScheduleService) ExportCSV(ctx context.Context, w io.Writer, program, instructor string, semester *int) error {
	sessions, err := s.store.ListFiltered(ctx, program, instructor, semester)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, sess := range sessions {
		record := []string{
			sess.ID, sess.CatalogCode, sess.ClassName, sess.Description,
			sess.Program, strconv.Itoa(sess.Semester), strconv.Itoa(sess.Credits),
			strconv.Itoa(sess.Hours), sess.Instructor, strconv.FormatBool(sess.Simultaneous),
			strconv.Itoa(sess.SessionCount), strconv.Itoa(sess.Module),
			strconv.Itoa(sess.Sequence), sess.Date.String(),
			sess.StartTime.String(), sess.EndTime.String(),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *ScheduleService) recordMutation(ctx context.Context, action model.AuditAction, groupKey, className string, sessions int) {
	if s.audit != nil {
		entry := model.AuditEntry{
			ID:           uuid.New(),
			Action:       action,
			GroupKey:     groupKey,
			ClassName:    className,
			SessionCount: sessions,
		}
		if err := s.audit.Enqueue(ctx, entry); err != nil {
			// The schedule mutation already committed; losing one trail
			// entry must not fail the request.
			s.log.Warn().Err(err).Str("group_key", groupKey).Msg("Audit enqueue failed")
		}
	}
	if s.notifier != nil {
		s.notifier.NotifyScheduleChanged(action, groupKey)
	}
}

// distinctDates returns each calendar day appearing in the proposed
// sessions, preserving first-appearance order.
func distinctDates(sessions []model.Session) []model.Date {
	seen := make(map[string]struct{}, len(sessions))
	var dates []model.Date
	for _, s := range sessions {
		key := s.Date.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		dates = append(dates, s.Date)
	}
	return dates
}
