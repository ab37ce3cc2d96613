package duckdb

import (
	"github.com/leapstack-labs/leapddl/pkg/dialect"
)

func init() {
	dialect.Register(DuckDB)
}

// DuckDB is the DuckDB dialect. It follows PostgreSQL quoting without
// dollar-quoted strings or trailing table options.
var DuckDB = dialect.New(Config).Build()
