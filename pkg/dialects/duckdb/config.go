// Package duckdb provides the DuckDB DDL dialect definition.
package duckdb

import "github.com/leapstack-labs/leapddl/pkg/core"

// Config is the DuckDB dialect configuration.
var Config = &core.DialectConfig{
	Name:          "duckdb",
	DefaultSchema: "main",
	Lexing: core.LexConfig{
		StringQuotes: `'`,
		IdentQuotes:  []core.QuotePair{{Open: '"', Close: '"'}},
	},
	Generators: []string{
		"CURRENT_CATALOG", "CURRENT_DATABASE", "CURRENT_SCHEMA",
		"CURRENT_DATE", "CURRENT_TIME", "CURRENT_TIMESTAMP",
		"GEN_RANDOM_UUID", "UUID", "NOW", "TODAY",
		"LOCALTIME", "LOCALTIMESTAMP", "NEXTVAL",
	},
}
