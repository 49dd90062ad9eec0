package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestScheduler_AddJob(t *testing.T) {
	s := NewScheduler(zap.NewNop())

	require.NoError(t, s.AddJob(RecomputeSweepJobName, "*/15 * * * *", func() {}))

	err := s.AddJob(RecomputeSweepJobName, "@hourly", func() {})
	assert.ErrorContains(t, err, "already exists")

	err = s.AddJob("other", "not a schedule", func() {})
	assert.Error(t, err)
}
