package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapddl/pkg/dialect"
)

func TestBuild(t *testing.T) {
	d := MySQL
	require.NotNil(t, d)

	assert.Equal(t, "mysql", d.Name)
	assert.True(t, d.OnUpdate())
	assert.True(t, d.Lexing.BackslashEscapes)
	assert.True(t, d.Lexing.HashComments)
	assert.True(t, d.IsStringQuote('"'))
	assert.Equal(t, "INDEX", d.Canonical("KEY"))
	assert.Equal(t, "SCHEMA", d.Canonical("database"))
}

func TestMariaDBExtendsMySQL(t *testing.T) {
	key, _, ok := MariaDB.MatchTableOption([]string{"ENGINE"})
	require.True(t, ok)
	assert.Equal(t, "engine", key)

	_, _, ok = MariaDB.MatchTableOption([]string{"PAGE_CHECKSUM"})
	assert.True(t, ok)
	_, _, ok = MySQL.MatchTableOption([]string{"PAGE_CHECKSUM"})
	assert.False(t, ok)
}

func TestDialectRegistration(t *testing.T) {
	for _, name := range []string{"mysql", "mariadb"} {
		_, ok := dialect.Get(name)
		assert.True(t, ok, name)
	}
}
