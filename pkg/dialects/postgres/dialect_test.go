package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapddl/pkg/dialect"
)

func TestBuild(t *testing.T) {
	require.NotNil(t, Postgres)

	assert.Equal(t, "public", Postgres.DefaultSchema)
	assert.True(t, Postgres.Lexing.DollarQuotes)
	assert.False(t, Postgres.OnUpdate())
	assert.Equal(t, "KEY", Postgres.Canonical("key"))

	key, n, ok := Postgres.MatchTableOption([]string{"ON", "COMMIT", "DROP"})
	require.True(t, ok)
	assert.Equal(t, "on_commit", key)
	assert.Equal(t, 2, n)
}

func TestDialectRegistration(t *testing.T) {
	d, ok := dialect.Get("postgres")
	require.True(t, ok)
	assert.Same(t, Postgres, d)
}
