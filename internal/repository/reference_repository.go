package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/davmoros/cronograma-backend/internal/model"
)

// ReferenceRepository handles the prefill reference tables (programs and
// instructors). These exist for form convenience only; scheduling never
// requires a session's instructor or program to appear here.
type ReferenceRepository struct {
	pool *pgxpool.Pool
}

// NewReferenceRepository creates a new ReferenceRepository.
func NewReferenceRepository(pool *pgxpool.Pool) *ReferenceRepository {
	return &ReferenceRepository{pool: pool}
}

// ListPrograms retrieves all reference programs ordered by name.
func (r *ReferenceRepository) ListPrograms(ctx context.Context) ([]model.Program, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, created_at FROM programs ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var programs []model.Program
	for rows.Next() {
		var p model.Program
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	return programs, rows.Err()
}

// ListInstructors retrieves all reference instructors ordered by name.
func (r *ReferenceRepository) ListInstructors(ctx context.Context) ([]model.Instructor, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, full_name, created_at FROM instructors ORDER BY full_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var instructors []model.Instructor
	for rows.Next() {
		var in model.Instructor
		if err := rows.Scan(&in.ID, &in.FullName, &in.CreatedAt); err != nil {
			return nil, err
		}
		instructors = append(instructors, in)
	}
	return instructors, rows.Err()
}

// CreateProgram inserts a reference program, ignoring duplicates.
func (r *ReferenceRepository) CreateProgram(ctx context.Context, name string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO programs (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name)
	return err
}

// CreateInstructor inserts a reference instructor, ignoring duplicates.
func (r *ReferenceRepository) CreateInstructor(ctx context.Context, fullName string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO instructors (full_name) VALUES ($1) ON CONFLICT (full_name) DO NOTHING`, fullName)
	return err
}
