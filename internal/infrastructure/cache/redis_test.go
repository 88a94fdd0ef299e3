package cache_test

import (
	"context"
	"testing"

	infracache "borntoday-backend/internal/infrastructure/cache"

	"github.com/stretchr/testify/require"
)

func TestRedisCache_ClearRefusesWithoutPrefix(t *testing.T) {
	t.Parallel()

	c := infracache.NewRedisCache(nil, "")
	require.ErrorIs(t, c.Clear(context.Background()), infracache.ErrNoPrefix)
}
