package core_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapddl/pkg/core"
)

func strPtr(s string) *string { return &s }

func TestSize_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		size core.Size
		want string
	}{
		{"single", core.Size{Precision: 255}, `255`},
		{"pair", core.Size{Precision: 10, Scale: 2, HasScale: true}, `[10,2]`},
		{"zero scale pair", core.Size{Precision: 5, HasScale: true}, `[5,0]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.size)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(b))
		})
	}
}

func TestOptions_SetReplacesInPlace(t *testing.T) {
	var o core.Options
	o.Set("engine", "MyISAM")
	o.Set("comment", "'x'")
	o.Set("engine", "INNODB")

	assert.Equal(t, []string{"engine", "comment"}, o.Keys())
	v, ok := o.Get("engine")
	assert.True(t, ok)
	assert.Equal(t, "INNODB", v)

	_, ok = o.Get("missing")
	assert.False(t, ok)

	b, err := json.Marshal(o)
	require.NoError(t, err)
	assert.Equal(t, `{"engine":"INNODB","comment":"'x'"}`, string(b))
}

func TestOptions_EmptyMarshalsAsObject(t *testing.T) {
	b, err := json.Marshal(core.Options(nil))
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(b))
}

func TestTable_MarshalJSONShape(t *testing.T) {
	tbl := core.NewTable(nil, "t1")
	tbl.Columns = append(tbl.Columns, core.Column{
		Name:     "`id`",
		Type:     "int",
		Nullable: false,
	})
	tbl.PrimaryKey = []string{"id"}
	tbl.Options.Set("engine", "INNODB")

	b, err := json.Marshal(tbl)
	require.NoError(t, err)

	want := `{
		"table_name": "t1",
		"schema": null,
		"columns": [{
			"name": "` + "`id`" + `", "type": "int", "size": null, "references": null,
			"unique": false, "nullable": false, "default": null, "check": null
		}],
		"primary_key": ["id"],
		"index": [],
		"checks": [],
		"alter": {},
		"partitioned_by": [],
		"tablespace": null,
		"engine": "INNODB"
	}`
	assert.JSONEq(t, want, string(b))
}

func TestTable_MarshalJSONKeyOrder(t *testing.T) {
	tbl := core.NewTable(strPtr("app"), "t")
	tbl.Options.Set("engine", "INNODB")
	tbl.Options.Set("default_charset", "utf8")
	tbl.IfNotExists = true

	b, err := json.Marshal(tbl)
	require.NoError(t, err)
	assert.Equal(t,
		`{"table_name":"t","schema":"app","columns":[],"primary_key":[],"index":[],"checks":[],`+
			`"alter":{},"partitioned_by":[],"tablespace":null,"engine":"INNODB","default_charset":"utf8","if_not_exists":true}`,
		string(b))
}

func TestTable_ZeroValueMarshalsEmptyCollections(t *testing.T) {
	b, err := json.Marshal(&core.Table{Name: "t"})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"columns":[]`)
	assert.Contains(t, string(b), `"alter":{}`)
}

func TestTable_ColumnLookup(t *testing.T) {
	tbl := core.NewTable(nil, "t")
	tbl.Columns = []core.Column{{Name: "`Id`"}, {Name: "name"}}

	require.NotNil(t, tbl.Column("id"))
	assert.Equal(t, "`Id`", tbl.Column(`"ID"`).Name)
	assert.Nil(t, tbl.Column("missing"))
}

func TestNameKey(t *testing.T) {
	assert.Equal(t, "t1", core.NameKey(nil, "`T1`"))
	assert.Equal(t, "app.t1", core.NameKey(strPtr(`"App"`), "t1"))
	assert.Equal(t, "app.t1", core.QualifiedName(strPtr("app"), "t1"))
	assert.Equal(t, "t1", core.QualifiedName(strPtr(""), "t1"))
}

func TestNewGrouped(t *testing.T) {
	entities := []core.Entity{
		&core.Property{Name: "SET"},
		core.NewTable(nil, "a"),
		&core.Sequence{Name: "s"},
		core.NewTable(nil, "b"),
	}

	g := core.NewGrouped(entities)
	require.Len(t, g.Tables, 2)
	assert.Equal(t, "a", g.Tables[0].Name)
	assert.Equal(t, "b", g.Tables[1].Name)
	assert.Len(t, g.Sequences, 1)
	assert.Len(t, g.DDLProperties, 1)
	assert.Equal(t, 4, g.Len())

	b, err := json.Marshal(core.NewGrouped(nil))
	require.NoError(t, err)
	var decoded map[string][]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	for _, key := range core.GroupKeys {
		v, ok := decoded[key]
		assert.True(t, ok, "missing key %s", key)
		assert.Empty(t, v)
	}
	assert.Len(t, decoded, len(core.GroupKeys))
}

func TestEntityKind_GroupKey(t *testing.T) {
	assert.Equal(t, "tables", core.EntityTable.GroupKey())
	assert.Equal(t, "ddl_properties", core.EntityProperty.GroupKey())
	assert.Equal(t, "CreateTable", core.KindCreateTable.String())
	assert.Equal(t, "Unclassified", core.KindUnclassified.String())
}

func TestParseSeverity(t *testing.T) {
	s, ok := core.ParseSeverity("ERROR")
	assert.True(t, ok)
	assert.Equal(t, core.SeverityError, s)

	_, ok = core.ParseSeverity("bogus")
	assert.False(t, ok)
}

func TestIsReservedTableKey(t *testing.T) {
	tbl := core.NewTable(strPtr("app"), "t")
	tbl.Tablespace = strPtr("fast")
	tbl.IfNotExists = true
	tbl.Temp = true

	var obj map[string]any
	require.NoError(t, json.Unmarshal([]byte(mustMarshal(t, tbl)), &obj))
	for key := range obj {
		assert.True(t, core.IsReservedTableKey(key), key)
	}

	assert.True(t, core.IsReservedTableKey("Schema"))
	assert.False(t, core.IsReservedTableKey("engine"))
}

func mustMarshal(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
