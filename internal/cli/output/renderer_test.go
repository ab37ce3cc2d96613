package output_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leapddl/internal/cli/output"
	"github.com/leapstack-labs/leapddl/internal/cli/testutil"
	"github.com/leapstack-labs/leapddl/pkg/core"
	"github.com/leapstack-labs/leapddl/pkg/parser"
	"github.com/leapstack-labs/leapddl/pkg/token"

	_ "github.com/leapstack-labs/leapddl/pkg/dialects/mysql"
)

func parse(t *testing.T, sql string, group bool) *parser.Result {
	t.Helper()
	res, err := parser.Parse(sql, parser.Config{Dialect: "mysql", GroupByType: group})
	require.NoError(t, err)
	return res
}

// ---------- Mode Tests ----------

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    output.Mode
		wantErr bool
	}{
		{"", output.ModeAuto, false},
		{"json", output.ModeJSON, false},
		{"YAML", output.ModeYAML, false},
		{"table", output.ModeTable, false},
		{"markdown", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := output.ParseMode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEffectiveMode(t *testing.T) {
	assert.Equal(t, output.ModeTable, testutil.NewTestRenderer(output.ModeAuto, true).EffectiveMode())
	assert.Equal(t, output.ModeJSON, testutil.NewTestRenderer(output.ModeAuto, false).EffectiveMode())
	assert.Equal(t, output.ModeYAML, testutil.NewTestRenderer(output.ModeYAML, true).EffectiveMode())
}

// ---------- Result Rendering Tests ----------

func TestResult_JSON(t *testing.T) {
	tr := testutil.NewTestRendererJSON()
	require.NoError(t, tr.Result(parse(t, "CREATE TABLE t (a INT);", true)))

	out := tr.Output()
	assert.True(t, strings.HasPrefix(out, "{\n  \"tables\": ["), out)
	assert.Contains(t, out, `"table_name": "t"`)
	testutil.AssertNoANSI(t, out)
}

func TestResult_YAMLKeepsKeyOrder(t *testing.T) {
	tr := testutil.NewTestRenderer(output.ModeYAML, false)
	require.NoError(t, tr.Result(parse(t, "CREATE TABLE t (a INT DEFAULT '0', b TEXT);", false)))

	out := tr.Output()
	name := strings.Index(out, "table_name: t")
	schema := strings.Index(out, "schema: null")
	columns := strings.Index(out, "columns:")
	require.NotEqual(t, -1, name)
	assert.Less(t, name, schema)
	assert.Less(t, schema, columns)
	assert.Contains(t, out, "primary_key: []")

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal(tr.Out.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	cols := decoded[0]["columns"].([]any)
	first := cols[0].(map[string]any)
	assert.Equal(t, "'0'", first["default"], "string defaults stay strings")
	assert.Equal(t, true, first["nullable"])
}

func TestResult_Table(t *testing.T) {
	sql := "CREATE TABLE t (id INT PRIMARY KEY, price DECIMAL(10,2) NOT NULL, u INT REFERENCES users(id)); " +
		"CREATE SCHEMA app; SET NAMES utf8;"
	tr := testutil.NewTestRenderer(output.ModeTable, false)
	require.NoError(t, tr.Result(parse(t, sql, false)))

	out := tr.Output()
	assert.Contains(t, out, "table t")
	assert.Contains(t, out, "(10,2)")
	assert.Contains(t, out, "PK")
	assert.Contains(t, out, "FK users.id")
	assert.Contains(t, out, "schemas")
	assert.Contains(t, out, "ddl_properties")
	assert.Contains(t, out, "(3 rows)")
}

func TestEntities_GroupedAndEmpty(t *testing.T) {
	tr := testutil.NewTestRendererJSON()
	require.NoError(t, tr.Entities(nil, false))
	assert.Equal(t, "[]\n", tr.Output())

	tr.Reset()
	require.NoError(t, tr.Entities(nil, true))
	assert.JSONEq(t,
		`{"tables":[],"types":[],"sequences":[],"domains":[],"schemas":[],"ddl_properties":[]}`,
		tr.Output())
}

func TestTable_RowCount(t *testing.T) {
	tr := testutil.NewTestRenderer(output.ModeTable, false)
	tr.Table(table.Row{"Name"}, []table.Row{{"a"}, {"b"}})
	assert.Contains(t, tr.Output(), "(2 rows)")
	assert.Contains(t, tr.Output(), "NAME")
}

// ---------- Diagnostics Tests ----------

func TestDiagnostics(t *testing.T) {
	diags := []parser.Diagnostic{
		{Statement: 0, Pos: token.Position{Line: 1, Column: 1}, Severity: core.SeverityWarning, Err: errors.New("unclassified")},
		{Statement: 1, Pos: token.Position{Line: 3, Column: 7}, Severity: core.SeverityError, Err: errors.New("bad quote")},
	}
	tr := testutil.NewTestRenderer(output.ModeJSON, false)
	tr.Diagnostics("dump.sql", diags)
	tr.DiagnosticSummary(diags)

	errOut := tr.ErrorOutput()
	assert.Contains(t, errOut, "dump.sql:1:1: warning: unclassified\n")
	assert.Contains(t, errOut, "dump.sql:3:7: error: bad quote\n")
	assert.Contains(t, errOut, "1 errors, 1 warnings, 0 info")
	testutil.AssertNoANSI(t, errOut)
	assert.Empty(t, tr.Output())
}

func TestDiagnostics_NoneWritesNothing(t *testing.T) {
	tr := testutil.NewTestRendererJSON()
	tr.Diagnostics("", nil)
	tr.DiagnosticSummary(nil)
	assert.Empty(t, tr.ErrorOutput())
}
