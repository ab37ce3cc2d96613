package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapddl/pkg/core"
	"github.com/leapstack-labs/leapddl/pkg/dialect"
	"github.com/leapstack-labs/leapddl/pkg/dialects/ansi"
	"github.com/leapstack-labs/leapddl/pkg/dialects/databricks"
	"github.com/leapstack-labs/leapddl/pkg/dialects/duckdb"
	"github.com/leapstack-labs/leapddl/pkg/dialects/mssql"
	"github.com/leapstack-labs/leapddl/pkg/dialects/mysql"
	"github.com/leapstack-labs/leapddl/pkg/dialects/oracle"
	"github.com/leapstack-labs/leapddl/pkg/dialects/postgres"
	"github.com/leapstack-labs/leapddl/pkg/dialects/snowflake"
	"github.com/leapstack-labs/leapddl/pkg/parser"
)

func parseWith(t *testing.T, sql string, d *dialect.Dialect) *parser.Result {
	t.Helper()
	res, err := parser.ParseWithDialect(sql, d, parser.Config{})
	require.NoError(t, err)
	return res
}

// ---------- MySQL Tests ----------

func TestMySQL_DumpHeader(t *testing.T) {
	sql := "# dump header\n" +
		"/*!40101 SET NAMES utf8 */;\n" +
		"DROP TABLE IF EXISTS `users`;\n" +
		"CREATE TABLE `users` (\n" +
		"  `id` int(11) unsigned NOT NULL AUTO_INCREMENT,\n" +
		"  `name` varchar(64) NOT NULL DEFAULT \"anon\",\n" +
		"  PRIMARY KEY (`id`),\n" +
		"  KEY `idx_name` (`name`)\n" +
		") ENGINE=InnoDB AUTO_INCREMENT=3 DEFAULT CHARSET=utf8mb4;\n"
	res := parseWith(t, sql, mysql.MySQL)

	g := res.Grouped()
	require.Len(t, g.Tables, 1)
	tbl := g.Tables[0]
	assert.Equal(t, "`users`", tbl.Name)
	assert.Equal(t, []string{"id"}, tbl.PrimaryKey)

	id := tbl.Columns[0]
	assert.Equal(t, "int unsigned", id.Type)
	assert.Equal(t, &core.Size{Precision: 11}, id.Size)
	assert.True(t, id.AutoIncrement)
	assert.Equal(t, ptr(`"anon"`), tbl.Columns[1].Default)

	require.Len(t, tbl.Index, 1)
	assert.Equal(t, ptr("`idx_name`"), tbl.Index[0].IndexName)
	assert.Equal(t, []string{"name"}, tbl.Index[0].Columns)

	// DROP TABLE is kept as a property.
	require.Len(t, g.DDLProperties, 1)
	assert.Equal(t, "DROP TABLE", g.DDLProperties[0].Name)
}

func TestMariaDB_ExtendsMySQLOptions(t *testing.T) {
	res := parseWith(t, "CREATE TABLE t (a INT) ENGINE=Aria PAGE_CHECKSUM=1 TRANSACTIONAL=1", mysql.MariaDB)
	tbl := res.Grouped().Tables[0]
	assert.Equal(t, []string{"engine", "page_checksum", "transactional"}, tbl.Options.Keys())

	res = parseWith(t, "CREATE TABLE t (a INT) PAGE_CHECKSUM=1", mysql.MySQL)
	assert.Empty(t, res.Grouped().Tables[0].Options)
}

// ---------- PostgreSQL Tests ----------

func TestPostgres_DollarQuotedBodySplitsOnce(t *testing.T) {
	sql := `CREATE FUNCTION f() RETURNS trigger AS $$ BEGIN NEW.x := 1; RETURN NEW; END; $$ LANGUAGE plpgsql;
CREATE TABLE t (a INT);`
	g := parseWith(t, sql, postgres.Postgres).Grouped()
	require.Len(t, g.DDLProperties, 1)
	assert.Equal(t, "CREATE FUNCTION", g.DDLProperties[0].Name)
	require.Len(t, g.Tables, 1)
}

func TestPostgres_SerialAndArrays(t *testing.T) {
	sql := `CREATE TABLE "Events" (
		id bigserial PRIMARY KEY,
		tags text[] NOT NULL DEFAULT '{}'::text[],
		at timestamptz DEFAULT now()
	) WITH (fillfactor = 90);`
	tbl := parseWith(t, sql, postgres.Postgres).Grouped().Tables[0]

	assert.Equal(t, `"Events"`, tbl.Name)
	assert.Equal(t, []string{"id"}, tbl.PrimaryKey)
	assert.Equal(t, "text[]", tbl.Columns[1].Type)
	assert.Equal(t, ptr("'{}'::text[]"), tbl.Columns[1].Default)
	with, _ := tbl.Options.Get("with")
	assert.Equal(t, "(fillfactor = 90)", with)
}

func TestPostgres_NoOnUpdateClause(t *testing.T) {
	tbl := parseWith(t, "CREATE TABLE t (a TIMESTAMP ON UPDATE now())", postgres.Postgres).Grouped().Tables[0]
	assert.Nil(t, tbl.Columns[0].OnUpdate)
}

// ---------- SQL Server Tests ----------

func TestMSSQL_Batches(t *testing.T) {
	sql := `CREATE TABLE [dbo].[Orders] (
    [Id] INT IDENTITY(1,1) NOT NULL,
    [Total] DECIMAL(18, 2) NULL,
    CONSTRAINT [PK_Orders] PRIMARY KEY CLUSTERED ([Id] ASC)
) ON [PRIMARY]
GO
CREATE NONCLUSTERED INDEX [IX_Total] ON [dbo].[Orders] ([Total] DESC)
GO
`
	g := parseWith(t, sql, mssql.MSSQL).Grouped()
	require.Len(t, g.Tables, 1)
	tbl := g.Tables[0]

	assert.Equal(t, ptr("[dbo]"), tbl.Schema)
	assert.Equal(t, []string{"Id"}, tbl.PrimaryKey)
	assert.True(t, tbl.Columns[0].AutoIncrement)
	on, _ := tbl.Options.Get("on")
	assert.Equal(t, "[PRIMARY]", on)

	require.Len(t, tbl.Index, 1)
	assert.Equal(t, []core.DetailedColumn{{Name: "Total", Order: core.OrderDesc, Nulls: core.NullsLast}}, tbl.Index[0].DetailedColumns)
}

// ---------- Oracle Tests ----------

func TestOracle_StorageOptions(t *testing.T) {
	sql := `CREATE TABLE emp (
		id NUMBER(10) NOT NULL,
		name VARCHAR2(100 CHAR),
		hired DATE DEFAULT SYSDATE
	) PCTFREE 10 TABLESPACE users STORAGE (INITIAL 64K)`
	tbl := parseWith(t, sql, oracle.Oracle).Grouped().Tables[0]

	assert.Equal(t, &core.Size{Precision: 10}, tbl.Columns[0].Size)
	assert.Equal(t, "VARCHAR2(100 CHAR)", tbl.Columns[1].Type)
	assert.Equal(t, ptr("SYSDATE"), tbl.Columns[2].Default)
	assert.Equal(t, ptr("users"), tbl.Tablespace)

	pct, _ := tbl.Options.Get("pctfree")
	assert.Equal(t, "10", pct)
	storage, _ := tbl.Options.Get("storage")
	assert.Equal(t, "(INITIAL 64K)", storage)
}

// ---------- Warehouse Dialect Tests ----------

func TestSnowflake_TableOptions(t *testing.T) {
	sql := "CREATE OR REPLACE TRANSIENT TABLE t (a NUMBER(38,0)) CLUSTER BY (a) COMMENT = 'staging' DATA_RETENTION_TIME_IN_DAYS = 1"
	tbl := parseWith(t, sql, snowflake.Snowflake).Grouped().Tables[0]
	assert.Equal(t, []string{"cluster_by", "comment", "data_retention_time_in_days"}, tbl.Options.Keys())
	assert.Equal(t, &core.Size{Precision: 38, Scale: 0, HasScale: true}, tbl.Columns[0].Size)
}

func TestDatabricks_TableOptions(t *testing.T) {
	sql := "CREATE TABLE IF NOT EXISTS main.sales (id BIGINT, dt DATE) USING DELTA PARTITIONED BY (dt) LOCATION '/mnt/sales' TBLPROPERTIES ('delta.appendOnly' = 'true')"
	tbl := parseWith(t, sql, databricks.Databricks).Grouped().Tables[0]

	using, _ := tbl.Options.Get("using")
	assert.Equal(t, "DELTA", using)
	location, _ := tbl.Options.Get("location")
	assert.Equal(t, "'/mnt/sales'", location)
	assert.Equal(t, []string{"dt"}, tbl.PartitionedBy)
}

func TestDuckDB_CreateSequenceAndTable(t *testing.T) {
	sql := "CREATE SEQUENCE id_seq START 1; CREATE TABLE t (id INTEGER DEFAULT nextval('id_seq'), tags VARCHAR[]);"
	g := parseWith(t, sql, duckdb.DuckDB).Grouped()
	require.Len(t, g.Sequences, 1)
	assert.Equal(t, i64(1), g.Sequences[0].StartWith)
	assert.Equal(t, ptr("nextval('id_seq')"), g.Tables[0].Columns[0].Default)
	assert.Equal(t, "VARCHAR[]", g.Tables[0].Columns[1].Type)
}

// ---------- ANSI Tests ----------

func TestANSI_KeyIsNotIndexSynonym(t *testing.T) {
	res := parseWith(t, "CREATE KEY k ON t (a);", ansi.ANSI)
	g := res.Grouped()
	assert.Empty(t, g.Tables)
	require.Len(t, g.DDLProperties, 1)
	assert.Equal(t, "CREATE KEY", g.DDLProperties[0].Name)
}

func TestANSI_BacktickIsIllegal(t *testing.T) {
	res := parseWith(t, "CREATE TABLE `t` (a INT); CREATE TABLE u (b INT);", ansi.ANSI)
	assert.True(t, res.HasErrors())
	ts := res.Grouped().Tables
	require.Len(t, ts, 1)
	assert.Equal(t, "u", ts[0].Name)
}
