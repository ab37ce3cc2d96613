// Package postgres provides the PostgreSQL DDL dialect definition.
// This package is pure Go with no database driver dependencies.
package postgres

import "github.com/leapstack-labs/leapddl/pkg/core"

// Config is the PostgreSQL dialect configuration.
// This is pure data, readable by the parser and the CLI alike.
var Config = &core.DialectConfig{
	Name:          "postgres",
	DefaultSchema: "public",
	Lexing: core.LexConfig{
		StringQuotes: `'`,
		IdentQuotes:  []core.QuotePair{{Open: '"', Close: '"'}},
		DollarQuotes: true,
	},
	TableOptions: []core.TableOptionDef{
		{Key: "inherits", Keywords: []string{"INHERITS"}},
		{Key: "with", Keywords: []string{"WITH"}},
		{Key: "on_commit", Keywords: []string{"ON", "COMMIT"}},
		{Key: "using", Keywords: []string{"USING"}},
	},
	Generators: []string{
		// Date/time generators
		"CURRENT_TIMESTAMP", "CURRENT_DATE", "CURRENT_TIME",
		"NOW", "LOCALTIME", "LOCALTIMESTAMP",
		"STATEMENT_TIMESTAMP", "TRANSACTION_TIMESTAMP", "CLOCK_TIMESTAMP",
		// Value generators
		"GEN_RANDOM_UUID", "UUID_GENERATE_V4", "NEXTVAL",
		// System functions
		"CURRENT_SCHEMA", "CURRENT_USER", "CURRENT_ROLE", "SESSION_USER",
	},
}
