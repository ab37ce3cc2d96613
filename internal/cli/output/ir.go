package output

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/leapddl/pkg/core"
	"github.com/leapstack-labs/leapddl/pkg/parser"
)

// Result renders the IR of res in the effective mode.
func (r *Renderer) Result(res *parser.Result) error {
	switch r.EffectiveMode() {
	case ModeYAML:
		return r.YAML(res.IR())
	case ModeTable:
		r.IRTables(res.Entities)
		return nil
	default:
		return r.JSON(res.IR())
	}
}

// Entities renders a stored entity list in the effective mode.
func (r *Renderer) Entities(entities []core.Entity, grouped bool) error {
	var v any = entities
	if grouped {
		v = core.NewGrouped(entities)
	} else if entities == nil {
		v = []core.Entity{}
	}
	switch r.EffectiveMode() {
	case ModeYAML:
		return r.YAML(v)
	case ModeTable:
		r.IRTables(entities)
		return nil
	default:
		return r.JSON(v)
	}
}

// IRTables prints one column table per CREATE TABLE record and a summary
// table of every other entity.
func (r *Renderer) IRTables(entities []core.Entity) {
	g := core.NewGrouped(entities)

	for _, t := range g.Tables {
		title := "table " + t.QualifiedName()
		if t.Placeholder {
			title += " (not declared)"
		}
		r.Println(title)

		rows := make([]table.Row, 0, len(t.Columns))
		for _, c := range t.Columns {
			rows = append(rows, table.Row{c.Name, c.Type, formatSize(c.Size), c.Nullable, deref(c.Default), columnKeys(t, c)})
		}
		r.Table(table.Row{"Column", "Type", "Size", "Nullable", "Default", "Key"}, rows)

		if n := alterCount(t); n > 0 {
			r.Printf("%d alterations\n", n)
		}
		r.Println("")
	}

	var rows []table.Row
	for _, e := range entities {
		if e.EntityKind() == core.EntityTable {
			continue
		}
		rows = append(rows, table.Row{e.EntityKind().GroupKey(), e.QualifiedName(), entityDetail(e)})
	}
	if len(rows) > 0 {
		r.Table(table.Row{"Kind", "Name", "Detail"}, rows)
	}
}

func columnKeys(t *core.Table, c core.Column) string {
	var keys []string
	name := strings.ToLower(c.Name)
	if slices.ContainsFunc(t.PrimaryKey, func(pk string) bool { return strings.ToLower(pk) == name }) {
		keys = append(keys, "PK")
	}
	if c.Unique {
		keys = append(keys, "UNIQUE")
	}
	if ref := c.References; ref != nil {
		target := core.QualifiedName(ref.Schema, ref.Table)
		if ref.Column != nil {
			target += "." + *ref.Column
		}
		keys = append(keys, "FK "+target)
	}
	return strings.Join(keys, ", ")
}

func alterCount(t *core.Table) int {
	n := 0
	for _, alts := range t.Alter {
		n += len(alts)
	}
	return n
}

func entityDetail(e core.Entity) string {
	switch v := e.(type) {
	case *core.Type:
		if len(v.Values) > 0 {
			return v.BaseType + " (" + strings.Join(v.Values, ", ") + ")"
		}
		return v.BaseType
	case *core.Sequence:
		if v.StartWith != nil {
			return "start " + strconv.FormatInt(*v.StartWith, 10)
		}
		return ""
	case *core.Domain:
		return v.BaseType + formatSize(v.Size)
	case *core.Schema:
		return deref(v.Authorization)
	case *core.Property:
		if v.Value != nil {
			return *v.Value
		}
		return v.Statement
	}
	return ""
}

func formatSize(s *core.Size) string {
	if s == nil {
		return ""
	}
	if s.HasScale {
		return fmt.Sprintf("(%d,%d)", s.Precision, s.Scale)
	}
	return fmt.Sprintf("(%d)", s.Precision)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
