package queue

import (
	"testing"

	"borntoday-backend/internal/config"
	"borntoday-backend/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheJobs(t *testing.T) {
	jobs := CacheJobs(config.WorkerConfig{ClearCacheAt: "0 0 * * *", WarmCacheAt: "5 0 * * *"})
	require.Len(t, jobs, 2)

	assert.Equal(t, shared.TypeClearCache, jobs[0].TaskType)
	assert.Equal(t, "0 0 * * *", jobs[0].Cronspec)
	assert.Equal(t, shared.TypeWarmCache, jobs[1].TaskType)
	assert.Equal(t, "5 0 * * *", jobs[1].Cronspec)
}
