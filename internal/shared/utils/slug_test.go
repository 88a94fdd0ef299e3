package utils_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"borntoday-backend/internal/shared/utils"
)

func TestGenerateSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"cyrillic name", "Андрей Миронов", "andrej-mironov"},
		{"multi letter transliteration", "Щукин Юрий", "schukin-jurij"},
		{"soft and hard signs vanish", "Игорь Объедков", "igor-obedkov"},
		{"latin diacritics", "Penélope Cruz", "penelope-cruz"},
		{"punctuation dropped", "Dwayne \"The Rock\" Johnson!", "dwayne-the-rock-johnson"},
		{"collapses separators", "  Jean -- Paul   Belmondo ", "jean-paul-belmondo"},
		{"keeps digits", "50 Cent", "50-cent"},
		{"nothing usable", "★★★", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, utils.GenerateSlug(tt.in))
		})
	}
}

func TestUniqueSlug(t *testing.T) {
	t.Parallel()

	taken := func(existing ...string) utils.SlugExistsFunc {
		set := make(map[string]bool, len(existing))
		for _, s := range existing {
			set[s] = true
		}
		return func(_ context.Context, slug string) (bool, error) {
			return set[slug], nil
		}
	}

	t.Run("free base is used as is", func(t *testing.T) {
		t.Parallel()
		got, err := utils.UniqueSlug(context.Background(), "actors", "category", taken())
		require.NoError(t, err)
		assert.Equal(t, "actors", got)
	})

	t.Run("nth collision gets suffix n", func(t *testing.T) {
		t.Parallel()
		got, err := utils.UniqueSlug(context.Background(), "ivan-petrov", "star",
			taken("ivan-petrov", "ivan-petrov-1", "ivan-petrov-2"))
		require.NoError(t, err)
		assert.Equal(t, "ivan-petrov-3", got)
	})

	t.Run("sequential creation never duplicates", func(t *testing.T) {
		t.Parallel()
		set := map[string]bool{}
		exists := func(_ context.Context, slug string) (bool, error) { return set[slug], nil }

		for i := 0; i < 5; i++ {
			got, err := utils.UniqueSlug(context.Background(), utils.GenerateSlug("Иван Петров"), "star", exists)
			require.NoError(t, err)
			require.False(t, set[got], "duplicate slug %s", got)
			set[got] = true
		}
		assert.True(t, set["ivan-petrov-4"])
	})

	t.Run("empty base falls back", func(t *testing.T) {
		t.Parallel()
		got, err := utils.UniqueSlug(context.Background(), "", "star", taken("star"))
		require.NoError(t, err)
		assert.Equal(t, "star-1", got)
	})

	t.Run("storage error stops the probe", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("connection reset")
		_, err := utils.UniqueSlug(context.Background(), "x", "star", func(context.Context, string) (bool, error) {
			return false, boom
		})
		require.ErrorIs(t, err, boom)
	})
}
