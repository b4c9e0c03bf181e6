package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/davmoros/cronograma-backend/internal/model"
)

// sessionColumns is the column list every session query selects, in scan order.
const sessionColumns = `id, group_key, catalog_code, class_name, description, program, semester,
	credits, hours, instructor, simultaneous, session_count, module, sequence,
	date, start_min, end_min, created_at`

// ScheduleRepository handles committed-schedule data access. Rows are always
// returned ordered by insertion time then id, so the conflict checker's
// "first match wins" tie-break is deterministic across runs.
type ScheduleRepository struct {
	pool *pgxpool.Pool
}

// NewScheduleRepository creates a new ScheduleRepository.
func NewScheduleRepository(pool *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (model.Session, error) {
	var (
		s          model.Session
		start, end int16
	)
	err := row.Scan(
		&s.ID, &s.GroupKey, &s.CatalogCode, &s.ClassName, &s.Description,
		&s.Program, &s.Semester, &s.Credits, &s.Hours, &s.Instructor,
		&s.Simultaneous, &s.SessionCount, &s.Module, &s.Sequence,
		&s.Date, &start, &end, &s.CreatedAt,
	)
	if err != nil {
		return model.Session{}, err
	}
	s.StartTime = model.Clock(start)
	s.EndTime = model.Clock(end)
	return s, nil
}

func collectSessions(rows pgx.Rows) ([]model.Session, error) {
	defer rows.Close()

	var sessions []model.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// ListAll retrieves every committed session.
func (r *ScheduleRepository) ListAll(ctx context.Context) ([]model.Session, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+sessionColumns+` FROM schedule_sessions ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	return collectSessions(rows)
}

// ListByDates retrieves the committed sessions falling on any of the given
// calendar days. This is the date-narrowed snapshot the conflict checker
// validates against.
func (r *ScheduleRepository) ListByDates(ctx context.Context, dates []model.Date) ([]model.Session, error) {
	if len(dates) == 0 {
		return nil, nil
	}

	days := make([]time.Time, len(dates))
	for i, d := range dates {
		days[i] = d.Time
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+sessionColumns+` FROM schedule_sessions
		 WHERE date = ANY($1)
		 ORDER BY created_at, id`, days)
	if err != nil {
		return nil, err
	}
	return collectSessions(rows)
}

// ListFiltered retrieves committed sessions matching the optional program,
// instructor and semester filters. Empty string / nil means no filter.
func (r *ScheduleRepository) ListFiltered(ctx context.Context, program, instructor string, semester *int) ([]model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM schedule_sessions WHERE 1=1`
	var args []any

	if program != "" {
		args = append(args, program)
		query += fmt.Sprintf(" AND program = $%d", len(args))
	}
	if instructor != "" {
		args = append(args, instructor)
		query += fmt.Sprintf(" AND instructor = $%d", len(args))
	}
	if semester != nil {
		args = append(args, *semester)
		query += fmt.Sprintf(" AND semester = $%d", len(args))
	}
	query += " ORDER BY date, start_min, id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectSessions(rows)
}

// InsertBatch appends all sessions of one class inside a single transaction.
// Either every row is committed or none is; a partial class must never land
// in the schedule.
func (r *ScheduleRepository) InsertBatch(ctx context.Context, sessions []model.Session) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, s := range sessions {
		_, err := tx.Exec(ctx,
			`INSERT INTO schedule_sessions
			 (id, group_key, catalog_code, class_name, description, program, semester,
			  credits, hours, instructor, simultaneous, session_count, module, sequence,
			  date, start_min, end_min)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
			s.ID, s.GroupKey, s.CatalogCode, s.ClassName, s.Description,
			s.Program, s.Semester, s.Credits, s.Hours, s.Instructor,
			s.Simultaneous, s.SessionCount, s.Module, s.Sequence,
			s.Date, int16(s.StartTime), int16(s.EndTime),
		)
		if err != nil {
			return fmt.Errorf("insert session %s: %w", s.ID, err)
		}
	}

	return tx.Commit(ctx)
}

// DeleteByGroupKey removes every session whose group key equals the given
// key exactly. Exact equality matters: catalog codes may be prefixes of one
// another and a prefix match would take unrelated classes down with it.
// Returns the number of sessions removed.
func (r *ScheduleRepository) DeleteByGroupKey(ctx context.Context, groupKey string) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM schedule_sessions WHERE group_key = $1`, groupKey)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
