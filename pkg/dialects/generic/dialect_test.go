package generic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapddl/pkg/dialect"
)

func TestBuild(t *testing.T) {
	d := Generic
	require.NotNil(t, d)

	assert.Equal(t, "generic", d.Name)
	assert.True(t, d.OnUpdate())
	assert.Equal(t, "INDEX", d.Canonical("key"))
	assert.True(t, d.IsGenerator("current_timestamp"))

	key, n, ok := d.MatchTableOption([]string{"DEFAULT", "CHARSET", "="})
	require.True(t, ok)
	assert.Equal(t, "default_charset", key)
	assert.Equal(t, 2, n)
}

func TestDialectRegistration(t *testing.T) {
	d, ok := dialect.Get("generic")
	require.True(t, ok)
	assert.Same(t, Generic, d)
	assert.Same(t, Generic, dialect.Default())
}
