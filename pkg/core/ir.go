package core

import (
	"encoding/json"
	"strings"

	"github.com/leapstack-labs/leapddl/pkg/token"
)

// Entity is a top-level IR record. The set of implementations is closed:
// *Table, *Type, *Sequence, *Domain, *Schema and *Property.
type Entity interface {
	EntityKind() EntityKind
	// QualifiedName identifies the entity for aggregation and display.
	QualifiedName() string
}

// QualifiedName joins an optional schema and a name with a dot.
func QualifiedName(schema *string, name string) string {
	if schema == nil || *schema == "" {
		return name
	}
	return *schema + "." + name
}

// NameKey normalizes a possibly quoted, possibly qualified name for lookups.
// Comparison is case-insensitive and ignores identifier quoting.
func NameKey(schema *string, name string) string {
	key := strings.ToLower(token.Unquote(name))
	if schema != nil && *schema != "" {
		key = strings.ToLower(token.Unquote(*schema)) + "." + key
	}
	return key
}

// Size is a column size: a single length/precision or a precision,scale pair.
type Size struct {
	Precision int
	Scale     int
	HasScale  bool
}

// MarshalJSON encodes a single size as a number and a pair as [precision, scale].
func (s Size) MarshalJSON() ([]byte, error) {
	if s.HasScale {
		return json.Marshal([2]int{s.Precision, s.Scale})
	}
	return json.Marshal(s.Precision)
}

// Reference is a foreign-key target.
type Reference struct {
	Table      string  `json:"table"`
	Schema     *string `json:"schema"`
	Column     *string `json:"column"`
	OnDelete   *string `json:"on_delete"`
	OnUpdate   *string `json:"on_update"`
	Deferrable *string `json:"deferrable_initially"`
}

// Column is one column declaration.
type Column struct {
	Name          string     `json:"name"`
	Type          string     `json:"type"`
	Size          *Size      `json:"size"`
	References    *Reference `json:"references"`
	Unique        bool       `json:"unique"`
	Nullable      bool       `json:"nullable"`
	Default       *string    `json:"default"`
	Check         *string    `json:"check"`
	OnUpdate      *string    `json:"on_update,omitempty"`
	Comment       *string    `json:"comment,omitempty"`
	AutoIncrement bool       `json:"autoincrement,omitempty"`
	Generated     *string    `json:"generated,omitempty"`
	Collate       *string    `json:"collate,omitempty"`
	Charset       *string    `json:"charset,omitempty"`
}

// DetailedColumn is a column reference inside an index or key with its
// explicit ordering.
type DetailedColumn struct {
	Name  string `json:"name"`
	Order string `json:"order"`
	Nulls string `json:"nulls"`
}

// Index orderings and null placements.
const (
	OrderAsc   = "ASC"
	OrderDesc  = "DESC"
	NullsFirst = "FIRST"
	NullsLast  = "LAST"
)

// Index is a secondary index or key.
type Index struct {
	IndexName       *string          `json:"index_name"`
	Columns         []string         `json:"columns"`
	DetailedColumns []DetailedColumn `json:"detailed_columns"`
	Unique          bool             `json:"unique"`
	Using           string           `json:"using,omitempty"`
}

// Check is a named or anonymous table-level check constraint.
type Check struct {
	Name      *string `json:"name"`
	Statement string  `json:"statement"`
}

// Constraint is a table constraint declared through ALTER TABLE.
type Constraint struct {
	Name       *string     `json:"name"`
	Type       string      `json:"type"` // PRIMARY KEY, UNIQUE, FOREIGN KEY, CHECK
	Columns    []string    `json:"columns,omitempty"`
	References []Reference `json:"references,omitempty"`
	Check      *string     `json:"check,omitempty"`
}

// AlterKind keys the alter mapping of a table.
type AlterKind string

// Alteration kinds.
const (
	AlterAddColumn      AlterKind = "add_column"
	AlterDropColumn     AlterKind = "drop_column"
	AlterModifyColumn   AlterKind = "modify_column"
	AlterAlterColumn    AlterKind = "alter_column"
	AlterRenameColumn   AlterKind = "rename_column"
	AlterAddConstraint  AlterKind = "add_constraint"
	AlterDropConstraint AlterKind = "drop_constraint"
	AlterAddIndex       AlterKind = "add_index"
	AlterDropIndex      AlterKind = "drop_index"
	AlterRenameTable    AlterKind = "rename_table"
	AlterOther          AlterKind = "other"
)

// Alteration is one ALTER TABLE action.
type Alteration struct {
	Column     *Column     `json:"column,omitempty"`
	Constraint *Constraint `json:"constraint,omitempty"`
	Index      *Index      `json:"index,omitempty"`
	Name       string      `json:"name,omitempty"`
	NewName    string      `json:"new_name,omitempty"`
	Statement  string      `json:"statement"`
}

// Table is a CREATE TABLE record.
type Table struct {
	Name          string
	Schema        *string
	Columns       []Column
	PrimaryKey    []string
	Index         []Index
	Checks        []Check
	Alter         map[AlterKind][]Alteration
	PartitionedBy []string
	Tablespace    *string
	Options       Options
	IfNotExists   bool
	Temp          bool

	// Placeholder marks a table synthesized for an ALTER TABLE or CREATE INDEX
	// whose target was never declared.
	Placeholder bool
}

// NewTable returns a table with every collection initialized.
func NewTable(schema *string, name string) *Table {
	return &Table{
		Name:          name,
		Schema:        schema,
		Columns:       []Column{},
		PrimaryKey:    []string{},
		Index:         []Index{},
		Checks:        []Check{},
		Alter:         map[AlterKind][]Alteration{},
		PartitionedBy: []string{},
	}
}

// EntityKind implements Entity.
func (t *Table) EntityKind() EntityKind { return EntityTable }

// QualifiedName implements Entity.
func (t *Table) QualifiedName() string { return QualifiedName(t.Schema, t.Name) }

// Column returns the column with the given name, ignoring case and quoting.
func (t *Table) Column(name string) *Column {
	want := strings.ToLower(token.Unquote(name))
	for i := range t.Columns {
		if strings.ToLower(token.Unquote(t.Columns[i].Name)) == want {
			return &t.Columns[i]
		}
	}
	return nil
}

// AddAlteration appends an alteration under kind.
func (t *Table) AddAlteration(kind AlterKind, a Alteration) {
	if t.Alter == nil {
		t.Alter = map[AlterKind][]Alteration{}
	}
	t.Alter[kind] = append(t.Alter[kind], a)
}

// reservedTableKeys are the object keys a Table always or conditionally
// writes; flattened options must not reuse them.
var reservedTableKeys = map[string]bool{
	"table_name": true, "schema": true, "columns": true, "primary_key": true,
	"index": true, "checks": true, "alter": true, "partitioned_by": true,
	"tablespace": true, "if_not_exists": true, "temp": true,
}

// IsReservedTableKey reports whether key collides with a fixed Table field
// in the JSON form and so cannot name a table option.
func IsReservedTableKey(key string) bool {
	return reservedTableKeys[strings.ToLower(key)]
}

// MarshalJSON flattens table options into the table object.
func (t *Table) MarshalJSON() ([]byte, error) {
	var w objectWriter
	fields := []struct {
		key   string
		value any
	}{
		{"table_name", t.Name},
		{"schema", t.Schema},
		{"columns", nonNil(t.Columns)},
		{"primary_key", nonNil(t.PrimaryKey)},
		{"index", nonNil(t.Index)},
		{"checks", nonNil(t.Checks)},
		{"alter", alterOrEmpty(t.Alter)},
		{"partitioned_by", nonNil(t.PartitionedBy)},
		{"tablespace", t.Tablespace},
	}
	for _, f := range fields {
		if err := w.field(f.key, f.value); err != nil {
			return nil, err
		}
	}
	for _, opt := range t.Options {
		if err := w.field(opt.Key, opt.Value); err != nil {
			return nil, err
		}
	}
	if t.IfNotExists {
		if err := w.field("if_not_exists", true); err != nil {
			return nil, err
		}
	}
	if t.Temp {
		if err := w.field("temp", true); err != nil {
			return nil, err
		}
	}
	return w.bytes(), nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func alterOrEmpty(m map[AlterKind][]Alteration) map[AlterKind][]Alteration {
	if m == nil {
		return map[AlterKind][]Alteration{}
	}
	return m
}

// Type is a CREATE TYPE record.
type Type struct {
	Name       string   `json:"type_name"`
	Schema     *string  `json:"schema"`
	BaseType   string   `json:"base_type"`
	Values     []string `json:"values,omitempty"`
	Attributes []Column `json:"attributes,omitempty"`
	Properties Options  `json:"properties,omitempty"`
}

// EntityKind implements Entity.
func (t *Type) EntityKind() EntityKind { return EntityType }

// QualifiedName implements Entity.
func (t *Type) QualifiedName() string { return QualifiedName(t.Schema, t.Name) }

// Sequence is a CREATE SEQUENCE record.
type Sequence struct {
	Name        string  `json:"sequence_name"`
	Schema      *string `json:"schema"`
	DataType    *string `json:"as,omitempty"`
	StartWith   *int64  `json:"start_with,omitempty"`
	IncrementBy *int64  `json:"increment_by,omitempty"`
	MinValue    *int64  `json:"minvalue,omitempty"`
	MaxValue    *int64  `json:"maxvalue,omitempty"`
	Cache       *int64  `json:"cache,omitempty"`
	Cycle       *bool   `json:"cycle,omitempty"`
	OwnedBy     *string `json:"owned_by,omitempty"`
	IfNotExists bool    `json:"if_not_exists,omitempty"`
}

// EntityKind implements Entity.
func (s *Sequence) EntityKind() EntityKind { return EntitySequence }

// QualifiedName implements Entity.
func (s *Sequence) QualifiedName() string { return QualifiedName(s.Schema, s.Name) }

// Domain is a CREATE DOMAIN record.
type Domain struct {
	Name     string  `json:"domain_name"`
	Schema   *string `json:"schema"`
	BaseType string  `json:"base_type"`
	Size     *Size   `json:"size"`
	Nullable bool    `json:"nullable"`
	Default  *string `json:"default"`
	Checks   []Check `json:"checks"`
}

// EntityKind implements Entity.
func (d *Domain) EntityKind() EntityKind { return EntityDomain }

// QualifiedName implements Entity.
func (d *Domain) QualifiedName() string { return QualifiedName(d.Schema, d.Name) }

// Schema is a CREATE SCHEMA (or MySQL CREATE DATABASE) record.
type Schema struct {
	Name          string  `json:"schema_name"`
	Authorization *string `json:"authorization"`
	IfNotExists   bool    `json:"if_not_exists,omitempty"`
}

// EntityKind implements Entity.
func (s *Schema) EntityKind() EntityKind { return EntitySchema }

// QualifiedName implements Entity.
func (s *Schema) QualifiedName() string { return s.Name }

// Property is a ddl_properties entry: a SET statement or any statement the
// classifier did not recognize.
type Property struct {
	Name      string  `json:"name"`
	Value     *string `json:"value"`
	Statement string  `json:"statement"`
}

// EntityKind implements Entity.
func (p *Property) EntityKind() EntityKind { return EntityProperty }

// QualifiedName implements Entity.
func (p *Property) QualifiedName() string { return p.Name }
