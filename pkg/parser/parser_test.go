package parser_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapddl/internal/testutil"
	"github.com/leapstack-labs/leapddl/pkg/core"
	"github.com/leapstack-labs/leapddl/pkg/dialect"
	"github.com/leapstack-labs/leapddl/pkg/parser"

	// Register the dialects used by name below.
	_ "github.com/leapstack-labs/leapddl/pkg/dialects/databricks"
	_ "github.com/leapstack-labs/leapddl/pkg/dialects/mssql"
	_ "github.com/leapstack-labs/leapddl/pkg/dialects/mysql"
	_ "github.com/leapstack-labs/leapddl/pkg/dialects/oracle"
	_ "github.com/leapstack-labs/leapddl/pkg/dialects/postgres"
)

func parse(t *testing.T, sql string, cfg parser.Config) *parser.Result {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = testutil.NewTestLogger(t)
	}
	res, err := parser.Parse(sql, cfg)
	require.NoError(t, err)
	return res
}

// tables returns the tables of a parse in first-seen order.
func tables(t *testing.T, sql string, dialectName string) []*core.Table {
	t.Helper()
	return parse(t, sql, parser.Config{Dialect: dialectName}).Grouped().Tables
}

func table(t *testing.T, sql string, dialectName string) *core.Table {
	t.Helper()
	ts := tables(t, sql, dialectName)
	require.Len(t, ts, 1)
	return ts[0]
}

func toJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

// ---------- End-to-end Tests ----------

func TestParse_InlineIndex(t *testing.T) {
	res := parse(t, "CREATE TABLE t1 (val INT, INDEX idx1(val));", parser.Config{})
	require.Empty(t, res.Diagnostics)

	expected := `[{
		"table_name": "t1",
		"schema": null,
		"columns": [{
			"name": "val", "type": "INT", "size": null, "references": null,
			"unique": false, "nullable": true, "default": null, "check": null
		}],
		"primary_key": [],
		"index": [{
			"index_name": "idx1",
			"columns": ["val"],
			"detailed_columns": [{"name": "val", "order": "ASC", "nulls": "LAST"}],
			"unique": false
		}],
		"checks": [],
		"alter": {},
		"partitioned_by": [],
		"tablespace": null
	}]`
	assert.JSONEq(t, expected, toJSON(t, res.IR()))
}

func TestParse_KeyIndexSynonyms(t *testing.T) {
	indexForm := parse(t, "CREATE TABLE t1 (val INT,);\nCREATE INDEX idx1 ON t1(val);", parser.Config{})
	keyForm := parse(t, "CREATE TABLE t1 (val INT,);\nCREATE KEY idx1 ON t1(val);", parser.Config{})

	assert.Equal(t, toJSON(t, indexForm.IR()), toJSON(t, keyForm.IR()))

	tbl := indexForm.Grouped().Tables[0]
	require.Len(t, tbl.Index, 1)
	assert.Equal(t, []core.DetailedColumn{{Name: "val", Order: core.OrderAsc, Nulls: core.NullsLast}}, tbl.Index[0].DetailedColumns)
}

func TestParse_SimpleOnUpdate(t *testing.T) {
	sql := `CREATE TABLE t1 (
    ts TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
    dt DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP);`
	res := parse(t, sql, parser.Config{GroupByType: true})

	expected := `{
		"tables": [{
			"table_name": "t1",
			"schema": null,
			"columns": [
				{"name": "ts", "type": "TIMESTAMP", "size": null, "references": null, "unique": false,
				 "nullable": true, "default": "CURRENT_TIMESTAMP", "check": null, "on_update": "CURRENT_TIMESTAMP"},
				{"name": "dt", "type": "DATETIME", "size": null, "references": null, "unique": false,
				 "nullable": true, "default": "CURRENT_TIMESTAMP", "check": null, "on_update": "CURRENT_TIMESTAMP"}
			],
			"primary_key": [], "index": [], "checks": [], "alter": {},
			"partitioned_by": [], "tablespace": null
		}],
		"types": [], "sequences": [], "domains": [], "schemas": [], "ddl_properties": []
	}`
	assert.JSONEq(t, expected, toJSON(t, res.IR()))
}

func TestParse_OnUpdateWithFunctionCall(t *testing.T) {
	sql := "create table test(\n" +
		"`id` bigint not null,\n" +
		"`updated_at` timestamp(3) not null default current_timestamp(3) on update current_timestamp(3),\n" +
		"primary key (id));"
	res := parse(t, sql, parser.Config{GroupByType: true})

	expected := `{
		"tables": [{
			"table_name": "test",
			"schema": null,
			"columns": [
				{"name": "` + "`id`" + `", "type": "bigint", "size": null, "references": null, "unique": false,
				 "nullable": false, "default": null, "check": null},
				{"name": "` + "`updated_at`" + `", "type": "timestamp", "size": 3, "references": null, "unique": false,
				 "nullable": false, "default": "current_timestamp(3)", "check": null, "on_update": "current_timestamp(3)"}
			],
			"primary_key": ["id"], "index": [], "checks": [], "alter": {},
			"partitioned_by": [], "tablespace": null
		}],
		"types": [], "sequences": [], "domains": [], "schemas": [], "ddl_properties": []
	}`
	assert.JSONEq(t, expected, toJSON(t, res.IR()))
}

func TestParse_DefaultCharset(t *testing.T) {
	sql := `
    CREATE TABLE t_table_records (
    id VARCHAR (255) NOT NULL,
    create_time datetime DEFAULT CURRENT_TIMESTAMP NOT NULL,
    creator VARCHAR (32) DEFAULT 'sys' NOT NULL,
    current_rows BIGINT,
    managed_database_schema VARCHAR (255),
    PRIMARY KEY (id)
    ) ENGINE = INNODB DEFAULT CHARSET = utf8mb4 COMMENT = '导入元数据管理';
    `
	tbl := table(t, sql, "")

	assert.Equal(t, []string{"id"}, tbl.PrimaryKey)
	require.Len(t, tbl.Columns, 5)

	id := tbl.Columns[0]
	assert.Equal(t, "VARCHAR", id.Type)
	assert.Equal(t, &core.Size{Precision: 255}, id.Size)
	assert.False(t, id.Nullable)

	created := tbl.Columns[1]
	assert.Equal(t, "datetime", created.Type)
	assert.Nil(t, created.Size)
	require.NotNil(t, created.Default)
	assert.Equal(t, "CURRENT_TIMESTAMP", *created.Default)
	assert.False(t, created.Nullable)

	creator := tbl.Columns[2]
	require.NotNil(t, creator.Default)
	assert.Equal(t, "'sys'", *creator.Default)
	assert.Equal(t, 32, creator.Size.Precision)

	assert.Nil(t, tbl.Columns[3].Size)
	assert.True(t, tbl.Columns[3].Nullable)
	assert.True(t, tbl.Columns[4].Nullable)

	assert.Equal(t, []string{"engine", "default_charset", "comment"}, tbl.Options.Keys())
	engine, _ := tbl.Options.Get("engine")
	charset, _ := tbl.Options.Get("default_charset")
	comment, _ := tbl.Options.Get("comment")
	assert.Equal(t, "INNODB", engine)
	assert.Equal(t, "utf8mb4", charset)
	assert.Equal(t, "'导入元数据管理'", comment)
}

// ---------- Output Shape Tests ----------

func TestResult_GroupedAlwaysHasAllKeys(t *testing.T) {
	res := parse(t, "", parser.Config{GroupByType: true})

	var got map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(toJSON(t, res.IR())), &got))
	for _, key := range core.GroupKeys {
		require.Contains(t, got, key)
		assert.JSONEq(t, "[]", string(got[key]), key)
	}
	assert.Len(t, got, len(core.GroupKeys))
}

func TestResult_FlatPreservesInputOrder(t *testing.T) {
	sql := `
		CREATE SCHEMA app;
		CREATE TABLE app.a (x INT);
		CREATE TYPE mood AS ENUM ('happy', 'sad');
		CREATE SEQUENCE s START WITH 10;
		CREATE TABLE b (y INT);
		SET search_path = app;
	`
	res := parse(t, sql, parser.Config{})
	entities := res.IR().([]core.Entity)

	var names []string
	for _, e := range entities {
		names = append(names, e.QualifiedName())
	}
	assert.Equal(t, []string{"app", "app.a", "mood", "s", "b", "search_path"}, names)

	grouped := res.Grouped()
	assert.Len(t, grouped.Tables, 2)
	assert.Len(t, grouped.Types, 1)
	assert.Len(t, grouped.Sequences, 1)
	assert.Len(t, grouped.Schemas, 1)
	assert.Len(t, grouped.DDLProperties, 1)
	assert.Equal(t, 6, grouped.Len())
}

func TestResult_EmptyFlatIR(t *testing.T) {
	res := parse(t, "-- only a comment", parser.Config{})
	assert.JSONEq(t, "[]", toJSON(t, res.IR()))
}

// ---------- Error Handling Tests ----------

func TestParse_LexErrorSkipsOnlyItsStatement(t *testing.T) {
	sql := "CREATE TABLE bad (a TEXT DEFAULT 'oops);\nCREATE TABLE good (b INT);"
	res := parse(t, sql, parser.Config{})

	ts := res.Grouped().Tables
	require.Len(t, ts, 1)
	assert.Equal(t, "good", ts[0].Name)

	require.Len(t, res.Diagnostics, 1)
	d := res.Diagnostics[0]
	assert.Equal(t, 0, d.Statement)
	assert.Equal(t, core.SeverityError, d.Severity)
	var lexErr *parser.LexError
	require.ErrorAs(t, d.Err, &lexErr)
	assert.Equal(t, "'oops)", lexErr.Fragment)
	assert.True(t, res.HasErrors())
}

func TestParse_StrictAbortsOnLexError(t *testing.T) {
	sql := "CREATE TABLE good (b INT);\nCREATE TABLE bad (a TEXT DEFAULT 'oops);"
	_, err := parser.Parse(sql, parser.Config{Strict: true})
	require.Error(t, err)

	var perr *parser.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Statement)

	var lexErr *parser.LexError
	assert.ErrorAs(t, err, &lexErr)
}

func TestParse_StrictIgnoresMalformedClauses(t *testing.T) {
	res, err := parser.Parse("CREATE TABLE t (a INT DEFAULT);", parser.Config{Strict: true})
	require.NoError(t, err)
	require.Len(t, res.Diagnostics, 1)

	var mc *parser.MalformedClauseError
	require.ErrorAs(t, res.Diagnostics[0].Err, &mc)
	assert.Equal(t, "DEFAULT", mc.Clause)
	assert.Equal(t, core.SeverityWarning, res.Diagnostics[0].Severity)

	col := res.Grouped().Tables[0].Columns[0]
	assert.Nil(t, col.Default)
	assert.False(t, res.HasErrors())
}

func TestParse_UnclassifiedBecomesProperty(t *testing.T) {
	res := parse(t, "CREATE VIEW v AS SELECT 1;", parser.Config{})
	props := res.Grouped().DDLProperties
	require.Len(t, props, 1)
	assert.Equal(t, "CREATE VIEW", props[0].Name)
	assert.Nil(t, props[0].Value)
	assert.Equal(t, "CREATE VIEW v AS SELECT 1", props[0].Statement)

	require.Len(t, res.Diagnostics, 1)
	var w *parser.UnclassifiedStatementWarning
	require.ErrorAs(t, res.Diagnostics[0].Err, &w)
	assert.Equal(t, core.SeverityWarning, res.Diagnostics[0].Severity)
}

func TestParse_DiagnosticJSON(t *testing.T) {
	res := parse(t, "DROP TABLE t;", parser.Config{})
	require.Len(t, res.Diagnostics, 1)
	assert.JSONEq(t,
		`{"statement":0,"line":1,"column":1,"severity":"warning","message":"unclassified statement at line 1, column 1: DROP TABLE"}`,
		toJSON(t, res.Diagnostics[0]))
}

func TestParse_UnknownDialect(t *testing.T) {
	_, err := parser.Parse("CREATE TABLE t (a INT)", parser.Config{Dialect: "nope"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, dialect.ErrUnknownDialect))
}

func TestParseWithDialect_NilDialect(t *testing.T) {
	_, err := parser.ParseWithDialect("CREATE TABLE t (a INT)", nil, parser.Config{})
	assert.ErrorIs(t, err, dialect.ErrDialectRequired)
}

// ---------- Multi-input Tests ----------

func TestParseStrings_SharesTableIndex(t *testing.T) {
	res, err := parser.ParseStrings([]string{
		"CREATE TABLE t (a INT);",
		"ALTER TABLE t ADD COLUMN b TEXT;",
	}, parser.Config{})
	require.NoError(t, err)

	ts := res.Grouped().Tables
	require.Len(t, ts, 1)
	require.Len(t, ts[0].Alter[core.AlterAddColumn], 1)
	assert.False(t, ts[0].Placeholder)
}

func TestParseStrings_StatementIndexesContinue(t *testing.T) {
	res, err := parser.ParseStrings([]string{"SET a = 1;", "DROP TABLE t;"}, parser.Config{})
	require.NoError(t, err)
	require.Len(t, res.Diagnostics, 2)
	assert.Equal(t, 0, res.Diagnostics[0].Statement)
	assert.Equal(t, 1, res.Diagnostics[1].Statement)
}

func TestParseScripts(t *testing.T) {
	scripts := []string{
		"CREATE TABLE a (x INT);",
		"CREATE TABLE b (y INT); CREATE TABLE c (z INT);",
		"ALTER TABLE a ADD w INT;",
	}
	results, err := parser.ParseScripts(context.Background(), scripts, parser.Config{})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "a", results[0].Grouped().Tables[0].Name)
	assert.Len(t, results[1].Grouped().Tables, 2)

	// Scripts are independent: the ALTER gets its own placeholder.
	placeholder := results[2].Grouped().Tables[0]
	assert.True(t, placeholder.Placeholder)
	assert.Empty(t, placeholder.Columns)
}

func TestParseScripts_StrictFailure(t *testing.T) {
	scripts := []string{"CREATE TABLE a (x INT);", "CREATE TABLE 'oops"}
	_, err := parser.ParseScripts(context.Background(), scripts, parser.Config{Strict: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "script 1")
}

func TestParseScripts_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := parser.ParseScripts(ctx, []string{"CREATE TABLE a (x INT);"}, parser.Config{})
	assert.ErrorIs(t, err, context.Canceled)
}
