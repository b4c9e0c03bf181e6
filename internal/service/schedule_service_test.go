package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davmoros/cronograma-backend/internal/model"
)

// fakeStore is an in-memory ScheduleStore so the accept/reject decision can
// be exercised without PostgreSQL.
type fakeStore struct {
	sessions  []model.Session
	insertErr error
	deleteErr error
}

func (f *fakeStore) ListAll(ctx context.Context) ([]model.Session, error) {
	return f.sessions, nil
}

func (f *fakeStore) ListByDates(ctx context.Context, dates []model.Date) ([]model.Session, error) {
	var out []model.Session
	for _, s := range f.sessions {
		for _, d := range dates {
			if s.Date.Equal(d) {
				out = append(out, s)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeStore) ListFiltered(ctx context.Context, program, instructor string, semester *int) ([]model.Session, error) {
	var out []model.Session
	for _, s := range f.sessions {
		if program != "" && s.Program != program {
			continue
		}
		if instructor != "" && s.Instructor != instructor {
			continue
		}
		if semester != nil && s.Semester != *semester {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStore) InsertBatch(ctx context.Context, sessions []model.Session) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.sessions = append(f.sessions, sessions...)
	return nil
}

func (f *fakeStore) DeleteByGroupKey(ctx context.Context, groupKey string) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	var kept []model.Session
	var removed int64
	for _, s := range f.sessions {
		if s.GroupKey == groupKey {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	f.sessions = kept
	return removed, nil
}

// fakeAudit records enqueued entries in memory.
type fakeAudit struct {
	entries []model.AuditEntry
}

func (f *fakeAudit) Enqueue(ctx context.Context, e model.AuditEntry) error {
	f.entries = append(f.entries, e)
	return nil
}

func clock(t *testing.T, value string) model.Clock {
	t.Helper()
	c, err := model.ParseClock(value)
	require.NoError(t, err)
	return c
}

func seminarClass(catalog, title string) model.Class {
	return model.Class{
		CatalogCode: catalog,
		Title:       title,
		Description: "Weekly seminar",
		Program:     "Clinical Psychology",
		Semester:    2,
		Credits:     3,
		Hours:       32,
		Mode:        model.ClassModeRegular,
	}
}

func weeklyPlan(t *testing.T, instructor string, start, end string, dates ...model.Date) []model.SessionDetail {
	t.Helper()
	var plan []model.SessionDetail
	for _, d := range dates {
		plan = append(plan, model.SessionDetail{
			Instructor: instructor,
			Date:       d,
			StartTime:  clock(t, start),
			EndTime:    clock(t, end),
		})
	}
	return plan
}

func TestSubmitAcceptsCleanClass(t *testing.T) {
	store := &fakeStore{}
	svc := NewScheduleService(store, nil, nil, zerolog.Nop())

	class := seminarClass("PSY500", "Trauma Seminar")
	plan := weeklyPlan(t, "Dr. Soto", "09:00", "11:00",
		model.NewDate(2026, 2, 10), model.NewDate(2026, 2, 17))

	outcome, err := svc.Submit(context.Background(), class, plan)
	require.NoError(t, err)
	assert.True(t, outcome.Accepted)
	assert.Len(t, outcome.Sessions, 2)
	assert.Len(t, store.sessions, 2)
	assert.Equal(t, "PSY500-Traum", store.sessions[0].GroupKey)
}

func TestSubmitRejectsConflictWithoutWriting(t *testing.T) {
	store := &fakeStore{}
	svc := NewScheduleService(store, nil, nil, zerolog.Nop())
	ctx := context.Background()

	first := seminarClass("PSY500", "Trauma Seminar")
	_, err := svc.Submit(ctx, first, weeklyPlan(t, "Dr. Soto", "09:00", "11:00",
		model.NewDate(2026, 2, 10)))
	require.NoError(t, err)

	// Same instructor, overlapping window on the same day.
	second := seminarClass("NEU410", "Neuroimaging Methods")
	second.Program = "Neuroscience"
	outcome, err := svc.Submit(ctx, second, weeklyPlan(t, "Dr. Soto", "10:00", "12:00",
		model.NewDate(2026, 2, 10)))
	require.NoError(t, err)

	assert.False(t, outcome.Accepted)
	require.Len(t, outcome.Conflicts, 1)
	assert.Len(t, store.sessions, 1, "rejected submission must not partially commit")
}

func TestSubmitPersistenceErrorIsNotARejection(t *testing.T) {
	store := &fakeStore{insertErr: errors.New("connection reset")}
	svc := NewScheduleService(store, nil, nil, zerolog.Nop())

	class := seminarClass("PSY500", "Trauma Seminar")
	outcome, err := svc.Submit(context.Background(), class,
		weeklyPlan(t, "Dr. Soto", "09:00", "11:00", model.NewDate(2026, 2, 10)))

	require.Error(t, err)
	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "insert", pe.Op)
	assert.Nil(t, outcome)
}

func TestDeleteMatchesGroupKeyExactly(t *testing.T) {
	store := &fakeStore{}
	svc := NewScheduleService(store, nil, nil, zerolog.Nop())
	ctx := context.Background()

	// "FIN2-ABC" is a strict prefix of "FIN2-ABCDE": a prefix-based delete
	// would wipe both classes.
	long := seminarClass("FIN2", "ABCDEF Analysis")
	_, err := svc.Submit(ctx, long, weeklyPlan(t, "Dr. Vidal", "09:00", "11:00",
		model.NewDate(2026, 3, 2)))
	require.NoError(t, err)

	short := seminarClass("FIN2", "ABC")
	short.Semester = 4
	_, err = svc.Submit(ctx, short, weeklyPlan(t, "Dr. Lema", "14:00", "16:00",
		model.NewDate(2026, 3, 2)))
	require.NoError(t, err)
	require.Len(t, store.sessions, 2)

	removed, err := svc.Delete(ctx, "FIN2-ABC")
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	require.Len(t, store.sessions, 1)
	assert.Equal(t, "FIN2-ABCDE", store.sessions[0].GroupKey)
}

func TestDeleteUnknownKey(t *testing.T) {
	svc := NewScheduleService(&fakeStore{}, nil, nil, zerolog.Nop())

	_, err := svc.Delete(context.Background(), "PSY500-Traum")
	assert.ErrorIs(t, err, ErrClassNotFound)
}

func TestDeleteStorageFailure(t *testing.T) {
	store := &fakeStore{deleteErr: errors.New("connection reset")}
	svc := NewScheduleService(store, nil, nil, zerolog.Nop())

	_, err := svc.Delete(context.Background(), "PSY500-Traum")
	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "delete", pe.Op)
}

func TestMutationsFeedAuditTrail(t *testing.T) {
	store := &fakeStore{}
	audit := &fakeAudit{}
	svc := NewScheduleService(store, audit, nil, zerolog.Nop())
	ctx := context.Background()

	class := seminarClass("PSY500", "Trauma Seminar")
	_, err := svc.Submit(ctx, class, weeklyPlan(t, "Dr. Soto", "09:00", "11:00",
		model.NewDate(2026, 2, 10)))
	require.NoError(t, err)

	// A rejected submission leaves no trail.
	clash := seminarClass("NEU410", "Neuroimaging Methods")
	_, err = svc.Submit(ctx, clash, weeklyPlan(t, "Dr. Soto", "09:30", "10:30",
		model.NewDate(2026, 2, 10)))
	require.NoError(t, err)

	_, err = svc.Delete(ctx, "PSY500-Traum")
	require.NoError(t, err)

	require.Len(t, audit.entries, 2)
	assert.Equal(t, model.AuditActionClassAccepted, audit.entries[0].Action)
	assert.Equal(t, "PSY500-Traum", audit.entries[0].GroupKey)
	assert.Equal(t, model.AuditActionClassDeleted, audit.entries[1].Action)
}

func TestListReturnsEmptySliceNotNil(t *testing.T) {
	svc := NewScheduleService(&fakeStore{}, nil, nil, zerolog.Nop())

	sessions, err := svc.List(context.Background(), "", "", nil)
	require.NoError(t, err)
	assert.NotNil(t, sessions)
	assert.Empty(t, sessions)
}

func TestExportCSV(t *testing.T) {
	store := &fakeStore{}
	svc := NewScheduleService(store, nil, nil, zerolog.Nop())
	ctx := context.Background()

	class := seminarClass("PSY500", "Trauma Seminar")
	_, err := svc.Submit(ctx, class, weeklyPlan(t, "Dr. Soto", "09:00", "11:00",
		model.NewDate(2026, 2, 10)))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(ctx, &buf, "", "", nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "id,catalog_code,class_name"))
	assert.Contains(t, lines[1], "PSY500")
	assert.Contains(t, lines[1], "Dr. Soto")
	assert.Contains(t, lines[1], "2026-02-10")
	assert.Contains(t, lines[1], "09:00")
}
