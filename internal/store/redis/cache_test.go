package redis_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	redisstore "github.com/gosuda/cadence/internal/store/redis"
)

func TestDashboardKey(t *testing.T) {
	t.Parallel()

	ownerID := uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")

	t.Run("happy path", func(t *testing.T) {
		t.Parallel()

		got := redisstore.DashboardKey(ownerID)
		assert.Equal(t, "dashboard:aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee", got)
	})

	t.Run("nil UUID", func(t *testing.T) {
		t.Parallel()

		got := redisstore.DashboardKey(uuid.Nil)
		assert.Equal(t, "dashboard:00000000-0000-0000-0000-000000000000", got)
	})

	t.Run("prefix", func(t *testing.T) {
		t.Parallel()

		got := redisstore.DashboardKey(ownerID)
		assert.True(t, strings.HasPrefix(got, "dashboard:"), "expected prefix 'dashboard:', got %q", got)
	})

	t.Run("different owners produce different keys", func(t *testing.T) {
		t.Parallel()

		other := uuid.MustParse("11111111-2222-3333-4444-555555555555")
		a := redisstore.DashboardKey(ownerID)
		b := redisstore.DashboardKey(other)
		assert.NotEqual(t, a, b)
	})
}
