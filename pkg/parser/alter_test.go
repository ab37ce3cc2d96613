package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapddl/pkg/core"
	"github.com/leapstack-labs/leapddl/pkg/parser"
)

// alterations parses a CREATE TABLE followed by one ALTER TABLE and returns
// the table's alter mapping.
func alterations(t *testing.T, alter string, dialectName string) map[core.AlterKind][]core.Alteration {
	t.Helper()
	tbl := table(t, "CREATE TABLE t (a INT, b TEXT);\n"+alter+";", dialectName)
	return tbl.Alter
}

// ---------- Alter Table Tests ----------

func TestAlter_AddColumn(t *testing.T) {
	alt := alterations(t, "ALTER TABLE t ADD COLUMN IF NOT EXISTS c VARCHAR(20) NOT NULL DEFAULT 'x'", "postgres")
	require.Len(t, alt[core.AlterAddColumn], 1)

	a := alt[core.AlterAddColumn][0]
	assert.Equal(t, "c", a.Name)
	require.NotNil(t, a.Column)
	assert.Equal(t, "VARCHAR", a.Column.Type)
	assert.Equal(t, &core.Size{Precision: 20}, a.Column.Size)
	assert.False(t, a.Column.Nullable)
	assert.Equal(t, ptr("'x'"), a.Column.Default)
	assert.Equal(t, "ADD COLUMN IF NOT EXISTS c VARCHAR(20) NOT NULL DEFAULT 'x'", a.Statement)
}

func TestAlter_MultipleActions(t *testing.T) {
	alt := alterations(t, "ALTER TABLE t ADD c INT, DROP COLUMN b, MODIFY a BIGINT NOT NULL", "mysql")

	require.Len(t, alt[core.AlterAddColumn], 1)
	assert.Equal(t, "c", alt[core.AlterAddColumn][0].Name)

	require.Len(t, alt[core.AlterDropColumn], 1)
	assert.Equal(t, "b", alt[core.AlterDropColumn][0].Name)
	assert.Equal(t, "DROP COLUMN b", alt[core.AlterDropColumn][0].Statement)

	require.Len(t, alt[core.AlterModifyColumn], 1)
	assert.Equal(t, "BIGINT", alt[core.AlterModifyColumn][0].Column.Type)
}

func TestAlter_ChangeColumn(t *testing.T) {
	alt := alterations(t, "ALTER TABLE t CHANGE COLUMN a a2 BIGINT", "mysql")
	require.Len(t, alt[core.AlterModifyColumn], 1)
	a := alt[core.AlterModifyColumn][0]
	assert.Equal(t, "a", a.Name)
	assert.Equal(t, "a2", a.NewName)
	assert.Equal(t, "BIGINT", a.Column.Type)
}

func TestAlter_AlterColumn(t *testing.T) {
	alt := alterations(t, "ALTER TABLE t ALTER COLUMN a SET DEFAULT 0", "postgres")
	require.Len(t, alt[core.AlterAlterColumn], 1)
	a := alt[core.AlterAlterColumn][0]
	assert.Equal(t, "a", a.Name)
	assert.Equal(t, "ALTER COLUMN a SET DEFAULT 0", a.Statement)
}

func TestAlter_Renames(t *testing.T) {
	alt := alterations(t, "ALTER TABLE t RENAME COLUMN a TO z", "postgres")
	require.Len(t, alt[core.AlterRenameColumn], 1)
	assert.Equal(t, "a", alt[core.AlterRenameColumn][0].Name)
	assert.Equal(t, "z", alt[core.AlterRenameColumn][0].NewName)

	alt = alterations(t, "ALTER TABLE t RENAME a TO z", "postgres")
	require.Len(t, alt[core.AlterRenameColumn], 1)

	alt = alterations(t, "ALTER TABLE t RENAME TO t2", "postgres")
	require.Len(t, alt[core.AlterRenameTable], 1)
	assert.Equal(t, "t2", alt[core.AlterRenameTable][0].NewName)

	alt = alterations(t, "ALTER TABLE t RENAME INDEX i TO j", "mysql")
	require.Len(t, alt[core.AlterOther], 1)
	assert.Equal(t, "i", alt[core.AlterOther][0].Name)
	assert.Equal(t, "j", alt[core.AlterOther][0].NewName)
}

func TestAlter_AddConstraints(t *testing.T) {
	sql := `ALTER TABLE t
		ADD CONSTRAINT pk_t PRIMARY KEY (a),
		ADD CONSTRAINT uq_b UNIQUE (b),
		ADD CONSTRAINT ck_a CHECK (a > 0),
		ADD CONSTRAINT fk_a FOREIGN KEY (a, b) REFERENCES u (x, y) ON DELETE CASCADE`
	alt := alterations(t, sql, "postgres")
	cons := alt[core.AlterAddConstraint]
	require.Len(t, cons, 4)

	assert.Equal(t, core.Constraint{Name: ptr("pk_t"), Type: "PRIMARY KEY", Columns: []string{"a"}}, *cons[0].Constraint)
	assert.Equal(t, core.Constraint{Name: ptr("uq_b"), Type: "UNIQUE", Columns: []string{"b"}}, *cons[1].Constraint)
	assert.Equal(t, core.Constraint{Name: ptr("ck_a"), Type: "CHECK", Check: ptr("a > 0")}, *cons[2].Constraint)

	fk := cons[3].Constraint
	assert.Equal(t, "FOREIGN KEY", fk.Type)
	assert.Equal(t, []string{"a", "b"}, fk.Columns)
	require.Len(t, fk.References, 2)
	assert.Equal(t, ptr("x"), fk.References[0].Column)
	assert.Equal(t, ptr("y"), fk.References[1].Column)
	assert.Equal(t, ptr("CASCADE"), fk.References[1].OnDelete)
}

func TestAlter_AddIndex(t *testing.T) {
	alt := alterations(t, "ALTER TABLE t ADD UNIQUE INDEX ux (a), ADD KEY kb (b(8)), ADD FULLTEXT (b)", "mysql")
	idx := alt[core.AlterAddIndex]
	require.Len(t, idx, 3)

	assert.True(t, idx[0].Index.Unique)
	assert.Equal(t, ptr("ux"), idx[0].Index.IndexName)
	assert.Equal(t, []string{"b"}, idx[1].Index.Columns)
	assert.Nil(t, idx[2].Index.IndexName)
}

func TestAlter_Drops(t *testing.T) {
	sql := "ALTER TABLE t DROP CONSTRAINT IF EXISTS ck_a, DROP PRIMARY KEY, DROP INDEX ix, DROP KEY kx, DROP FOREIGN KEY fk_a, DROP b"
	alt := alterations(t, sql, "mysql")

	var constraints []string
	for _, a := range alt[core.AlterDropConstraint] {
		constraints = append(constraints, a.Name)
	}
	assert.Equal(t, []string{"ck_a", "PRIMARY KEY", "fk_a"}, constraints)

	require.Len(t, alt[core.AlterDropIndex], 2)
	assert.Equal(t, "ix", alt[core.AlterDropIndex][0].Name)
	assert.Equal(t, "kx", alt[core.AlterDropIndex][1].Name)

	require.Len(t, alt[core.AlterDropColumn], 1)
	assert.Equal(t, "b", alt[core.AlterDropColumn][0].Name)
}

func TestAlter_UnknownActionIsOther(t *testing.T) {
	alt := alterations(t, "ALTER TABLE t OWNER TO admin", "postgres")
	require.Len(t, alt[core.AlterOther], 1)
	assert.Equal(t, "OWNER TO admin", alt[core.AlterOther][0].Statement)
}

func TestAlter_HeaderVariants(t *testing.T) {
	tbl := table(t, "CREATE TABLE t (a INT); ALTER TABLE ONLY t ADD b INT; ALTER TABLE IF EXISTS t ADD c INT;", "postgres")
	assert.Len(t, tbl.Alter[core.AlterAddColumn], 2)
	assert.Len(t, tbl.Columns, 1, "alterations are recorded, not applied")
}

func TestAlter_PlaceholderTable(t *testing.T) {
	res := parse(t, "ALTER TABLE app.missing ADD COLUMN a INT;", parser.Config{Dialect: "postgres"})

	ts := res.Grouped().Tables
	require.Len(t, ts, 1)
	p := ts[0]
	assert.True(t, p.Placeholder)
	assert.Equal(t, "missing", p.Name)
	assert.Equal(t, ptr("app"), p.Schema)
	assert.Empty(t, p.Columns)
	assert.Len(t, p.Alter[core.AlterAddColumn], 1)
}

func TestAlter_PlaceholderFilledByLaterCreate(t *testing.T) {
	sql := "ALTER TABLE t ADD COLUMN c INT; CREATE TABLE T (a INT); ALTER TABLE t DROP COLUMN a;"
	ts := tables(t, sql, "")
	require.Len(t, ts, 1)

	tbl := ts[0]
	assert.False(t, tbl.Placeholder)
	assert.Equal(t, "T", tbl.Name)
	assert.Len(t, tbl.Columns, 1)
	assert.Len(t, tbl.Alter[core.AlterAddColumn], 1)
	assert.Len(t, tbl.Alter[core.AlterDropColumn], 1)
}

func TestAlter_JSONShape(t *testing.T) {
	tbl := table(t, "CREATE TABLE t (a INT); ALTER TABLE t DROP COLUMN a;", "")
	assert.Contains(t, toJSON(t, tbl), `"alter":{"drop_column":[{"name":"a","statement":"DROP COLUMN a"}]}`)
}

func TestAlter_DefaultSchemaNamesSameTable(t *testing.T) {
	tests := []struct {
		name    string
		dialect string
		sql     string
		schema  *string
	}{
		{
			name:    "qualified alter of unqualified table",
			dialect: "postgres",
			sql:     "CREATE TABLE t (a INT); ALTER TABLE public.t ADD COLUMN b INT; CREATE INDEX i ON public.t (a);",
		},
		{
			name:    "unqualified alter of qualified table",
			dialect: "mssql",
			sql:     "CREATE TABLE dbo.t (a INT); ALTER TABLE t ADD b INT; CREATE INDEX i ON t (a);",
			schema:  ptr("dbo"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := table(t, tt.sql, tt.dialect)
			assert.False(t, tbl.Placeholder)
			assert.Equal(t, tt.schema, tbl.Schema, "schema stays as declared")
			assert.Len(t, tbl.Alter[core.AlterAddColumn], 1)
			assert.Len(t, tbl.Index, 1)
		})
	}
}

func TestAlter_OtherSchemaIsAnotherTable(t *testing.T) {
	ts := tables(t, "CREATE TABLE t (a INT); ALTER TABLE app.t ADD COLUMN b INT;", "postgres")
	require.Len(t, ts, 2)
	assert.Empty(t, ts[0].Alter[core.AlterAddColumn])
	assert.True(t, ts[1].Placeholder)
	assert.Len(t, ts[1].Alter[core.AlterAddColumn], 1)
}
