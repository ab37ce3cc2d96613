package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapddl/pkg/dialect"
)

func TestBuild(t *testing.T) {
	require.NotNil(t, Oracle)
	assert.False(t, Oracle.OnUpdate())
	assert.True(t, Oracle.IsGenerator("sysdate"))

	key, n, ok := Oracle.MatchTableOption([]string{"ENCRYPT", "USING", "'AES256'"})
	require.True(t, ok)
	assert.Equal(t, "encrypt", key)
	assert.Equal(t, 2, n)
}

func TestDialectRegistration(t *testing.T) {
	_, ok := dialect.Get("oracle")
	assert.True(t, ok)
}
