// Package ansi provides the strict ANSI SQL dialect.
//
// ANSI recognizes only standard spellings: KEY is not a synonym of INDEX,
// ON UPDATE is not a column clause and no vendor table options are captured.
package ansi

import "github.com/leapstack-labs/leapddl/pkg/core"

// Config is the ANSI dialect configuration.
var Config = &core.DialectConfig{
	Name: "ansi",
	Lexing: core.LexConfig{
		StringQuotes: `'`,
		IdentQuotes:  []core.QuotePair{{Open: '"', Close: '"'}},
	},
	Generators: []string{
		"CURRENT_TIMESTAMP", "CURRENT_DATE", "CURRENT_TIME",
		"LOCALTIME", "LOCALTIMESTAMP",
		"CURRENT_USER", "SESSION_USER", "SYSTEM_USER",
	},
}
