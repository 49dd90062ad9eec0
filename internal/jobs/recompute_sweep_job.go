package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sitecraft/estimate-api/internal/domain"
)

// RecomputeSweepJobName is the name of the recompute sweep job
const RecomputeSweepJobName = "recompute_sweep"

// ProjectLister lists projects touched within a time window, oldest first.
type ProjectLister interface {
	ListUpdatedSince(ctx context.Context, since time.Time, limit int) ([]uuid.UUID, error)
}

// Recomputer reruns the estimation pipeline for one project.
type Recomputer interface {
	Recompute(ctx context.Context, projectID uuid.UUID) (*domain.Project, error)
}

// RecomputeSweepJob rechecks recently touched projects so estimates drift
// back into line after catalogue edits or failed inline recomputes.
type RecomputeSweepJob struct {
	projects ProjectLister
	engine   Recomputer
	logger   *zap.Logger
	window   time.Duration
	batch    int
	timeout  time.Duration
}

// NewRecomputeSweepJob creates a new recompute sweep job.
func NewRecomputeSweepJob(
	projects ProjectLister,
	engine Recomputer,
	logger *zap.Logger,
	window time.Duration,
	batch int,
) *RecomputeSweepJob {
	return &RecomputeSweepJob{
		projects: projects,
		engine:   engine,
		logger:   logger,
		window:   window,
		batch:    batch,
		timeout:  10 * time.Minute,
	}
}

// Run executes one sweep. Failures on individual projects are logged and
// skipped; the next sweep picks them up again.
func (j *RecomputeSweepJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	since := time.Now().Add(-j.window)
	ids, err := j.projects.ListUpdatedSince(ctx, since, j.batch)
	if err != nil {
		j.logger.Error("failed to list projects for sweep", zap.Error(err))
		return
	}

	var failed int
	for _, id := range ids {
		if _, err := j.engine.Recompute(ctx, id); err != nil {
			failed++
			j.logger.Error("sweep recompute failed",
				zap.String("project_id", id.String()),
				zap.Error(err))
		}
	}

	j.logger.Info("recompute sweep finished",
		zap.Int("projects", len(ids)),
		zap.Int("failed", failed))
}
