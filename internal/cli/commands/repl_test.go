package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapddl/internal/cli/config"
	"github.com/leapstack-labs/leapddl/internal/cli/output"
	"github.com/leapstack-labs/leapddl/internal/cli/testutil"
)

func newTestSession(t *testing.T, dialectName string) (*replSession, *testutil.TestRenderer) {
	t.Helper()
	tr := testutil.NewTestRenderer(output.ModeJSON, false)
	cc := &CommandContext{
		Cfg:      &config.Config{Dialect: dialectName},
		Logger:   config.GetLogger(t.Context()),
		Renderer: tr.Renderer,
	}
	return newREPLSession(cc), tr
}

func TestREPL_MultiLineStatement(t *testing.T) {
	s, tr := newTestSession(t, "mysql")

	assert.False(t, s.handleLine("CREATE TABLE t ("))
	assert.Equal(t, replContinued, s.prompt())
	assert.Empty(t, tr.Output(), "nothing is parsed before the semicolon")

	assert.False(t, s.handleLine("  id INT PRIMARY KEY"))
	assert.False(t, s.handleLine(");"))
	assert.Equal(t, replPrompt, s.prompt())

	out := tr.Output()
	assert.Contains(t, out, `"table_name": "t"`)
	assert.Contains(t, out, `"id"`)
}

func TestREPL_DotCommands(t *testing.T) {
	s, tr := newTestSession(t, "")
	assert.Equal(t, "generic", s.cfg.Dialect, "an empty dialect falls back to the default")

	assert.False(t, s.handleLine(".dialect POSTGRES"))
	assert.Equal(t, "postgres", s.cfg.Dialect)
	assert.Contains(t, tr.Output(), "dialect: postgres")

	assert.False(t, s.handleLine(".dialect cobol"))
	assert.Equal(t, "postgres", s.cfg.Dialect)
	assert.Contains(t, tr.ErrorOutput(), "unknown dialect")

	assert.False(t, s.handleLine(".group"))
	assert.True(t, s.cfg.GroupByType)
	assert.False(t, s.handleLine(".normalize"))
	assert.True(t, s.cfg.NormalizeCase)

	tr.Reset()
	assert.False(t, s.handleLine(".help"))
	assert.Contains(t, tr.Output(), ".dialect [name]")

	assert.False(t, s.handleLine(".bogus"))
	assert.Contains(t, tr.ErrorOutput(), "Unknown command: .bogus")

	assert.True(t, s.handleLine(".quit"))
	assert.True(t, s.handleLine(".EXIT"))
}

func TestREPL_GroupedParse(t *testing.T) {
	s, tr := newTestSession(t, "postgres")
	require.False(t, s.handleLine(".group"))
	tr.Reset()

	s.handleLine("CREATE TYPE mood AS ENUM ('sad', 'ok');")
	assert.Contains(t, tr.Output(), `"types": [`)
	assert.Contains(t, tr.Output(), `"type_name": "mood"`)
}

func TestREPL_DiagnosticsAndReset(t *testing.T) {
	s, tr := newTestSession(t, "generic")

	s.handleLine("DROP TABLE x;")
	assert.Contains(t, tr.ErrorOutput(), "warning")
	assert.Contains(t, tr.Output(), "[]")

	s.handleLine("CREATE TABLE half (")
	s.reset()
	assert.Equal(t, replPrompt, s.prompt())

	// A dot inside a pending statement is statement text, not a command.
	s.handleLine("CREATE TABLE t (")
	assert.False(t, s.handleLine(".quit"))
}

func TestREPLCompleter(t *testing.T) {
	c := newREPLCompleter()
	line := []rune(".dialect my")
	candidates, _ := c.Do(line, len(line))

	var got []string
	for _, cand := range candidates {
		got = append(got, string(cand))
	}
	assert.Contains(t, got, "sql ")
}
