package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/sitecraft/estimate-api/internal/domain"
)

type stubLister struct {
	ids   []uuid.UUID
	err   error
	since time.Time
	limit int
}

func (s *stubLister) ListUpdatedSince(ctx context.Context, since time.Time, limit int) ([]uuid.UUID, error) {
	s.since = since
	s.limit = limit
	return s.ids, s.err
}

type stubRecomputer struct {
	calls   []uuid.UUID
	failFor map[uuid.UUID]error
}

func (s *stubRecomputer) Recompute(ctx context.Context, projectID uuid.UUID) (*domain.Project, error) {
	s.calls = append(s.calls, projectID)
	if err, ok := s.failFor[projectID]; ok {
		return nil, err
	}
	return &domain.Project{}, nil
}

func TestRecomputeSweepJob_RecomputesEveryListedProject(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	lister := &stubLister{ids: ids}
	rec := &stubRecomputer{}

	job := NewRecomputeSweepJob(lister, rec, zap.NewNop(), time.Hour, 50)
	job.Run()

	assert.Equal(t, ids, rec.calls)
	assert.Equal(t, 50, lister.limit)
	assert.WithinDuration(t, time.Now().Add(-time.Hour), lister.since, 5*time.Second)
}

func TestRecomputeSweepJob_ContinuesPastFailures(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	lister := &stubLister{ids: ids}
	rec := &stubRecomputer{failFor: map[uuid.UUID]error{ids[0]: errors.New("boom")}}

	job := NewRecomputeSweepJob(lister, rec, zap.NewNop(), time.Hour, 50)
	job.Run()

	assert.Len(t, rec.calls, 2, "a failed project must not stop the sweep")
}

func TestRecomputeSweepJob_ListFailureAborts(t *testing.T) {
	lister := &stubLister{err: errors.New("db down")}
	rec := &stubRecomputer{}

	job := NewRecomputeSweepJob(lister, rec, zap.NewNop(), time.Hour, 50)
	job.Run()

	assert.Empty(t, rec.calls)
}
