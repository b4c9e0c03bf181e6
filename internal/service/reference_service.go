package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/davmoros/cronograma-backend/internal/config"
	"github.com/davmoros/cronograma-backend/internal/model"
	"github.com/davmoros/cronograma-backend/internal/repository"
)

// referenceCacheTTL bounds staleness of the prefill lists; reference data
// changes rarely and a stale entry only affects form suggestions.
const referenceCacheTTL = 10 * time.Minute

// ReferenceService serves the instructor/program prefill lists, cached in
// Redis. The cache is convenience only: scheduling accepts any free-text
// instructor or program whether or not it appears here.
type ReferenceService struct {
	refRepo *repository.ReferenceRepository
	rdb     *redis.Client
	keys    *config.CacheKeys
	log     zerolog.Logger
}

// NewReferenceService creates a new ReferenceService.
func NewReferenceService(refRepo *repository.ReferenceRepository, rdb *redis.Client, keys *config.CacheKeys, log zerolog.Logger) *ReferenceService {
	return &ReferenceService{
		refRepo: refRepo,
		rdb:     rdb,
		keys:    keys,
		log:     log.With().Str("component", "reference_service").Logger(),
	}
}

// ListPrograms returns the reference programs, served from cache when warm.
func (s *ReferenceService) ListPrograms(ctx context.Context) ([]model.Program, error) {
	var programs []model.Program
	if s.cacheGet(ctx, s.keys.ProgramsKey(), &programs) {
		return programs, nil
	}

	programs, err := s.refRepo.ListPrograms(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, s.keys.ProgramsKey(), programs)
	return programs, nil
}

// ListInstructors returns the reference instructors, served from cache when warm.
func (s *ReferenceService) ListInstructors(ctx context.Context) ([]model.Instructor, error) {
	var instructors []model.Instructor
	if s.cacheGet(ctx, s.keys.InstructorsKey(), &instructors) {
		return instructors, nil
	}

	instructors, err := s.refRepo.ListInstructors(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, s.keys.InstructorsKey(), instructors)
	return instructors, nil
}

// AddProgram inserts a reference program and drops the cached list.
func (s *ReferenceService) AddProgram(ctx context.Context, name string) error {
	if err := s.refRepo.CreateProgram(ctx, name); err != nil {
		return err
	}
	s.invalidate(ctx, s.keys.ProgramsKey())
	return nil
}

// AddInstructor inserts a reference instructor and drops the cached list.
func (s *ReferenceService) AddInstructor(ctx context.Context, fullName string) error {
	if err := s.refRepo.CreateInstructor(ctx, fullName); err != nil {
		return err
	}
	s.invalidate(ctx, s.keys.InstructorsKey())
	return nil
}

func (s *ReferenceService) cacheGet(ctx context.Context, key string, dst any) bool {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Str("key", key).Msg("Cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Cache entry corrupt, dropping")
		s.invalidate(ctx, key)
		return false
	}
	return true
}

func (s *ReferenceService) cacheSet(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, data, referenceCacheTTL).Err(); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

func (s *ReferenceService) invalidate(ctx context.Context, key string) {
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Cache invalidation failed")
	}
}
