// Package generic provides the default, permissive DDL dialect.
// This package is pure Go with no database driver dependencies.
package generic

import "github.com/leapstack-labs/leapddl/pkg/core"

// Config is the generic dialect configuration.
// It accepts the union of common vendor spellings: MySQL backticks, ANSI
// double quotes and SQL Server brackets for identifiers, KEY as a synonym
// of INDEX, DATABASE as a synonym of SCHEMA, and the MySQL ON UPDATE
// column clause.
var Config = &core.DialectConfig{
	Name: "generic",
	Lexing: core.LexConfig{
		StringQuotes: `'`,
		IdentQuotes: []core.QuotePair{
			{Open: '`', Close: '`'},
			{Open: '"', Close: '"'},
			{Open: '[', Close: ']'},
		},
	},
	Synonyms: map[string]string{
		"KEY":      "INDEX",
		"DATABASE": "SCHEMA",
	},
	SupportsOnUpdate: true,
	TableOptions: []core.TableOptionDef{
		{Key: "engine", Keywords: []string{"ENGINE"}},
		{Key: "default_charset", Keywords: []string{"DEFAULT", "CHARSET"}},
		{Key: "default_charset", Keywords: []string{"DEFAULT", "CHARACTER", "SET"}},
		{Key: "charset", Keywords: []string{"CHARSET"}},
		{Key: "charset", Keywords: []string{"CHARACTER", "SET"}},
		{Key: "default_collate", Keywords: []string{"DEFAULT", "COLLATE"}},
		{Key: "collate", Keywords: []string{"COLLATE"}},
		{Key: "comment", Keywords: []string{"COMMENT"}},
		{Key: "auto_increment", Keywords: []string{"AUTO_INCREMENT"}},
		{Key: "row_format", Keywords: []string{"ROW_FORMAT"}},
		{Key: "authorization", Keywords: []string{"AUTHORIZATION"}},
	},
	Generators: []string{
		"CURRENT_TIMESTAMP", "CURRENT_DATE", "CURRENT_TIME",
		"NOW", "LOCALTIME", "LOCALTIMESTAMP",
		"UUID", "GEN_RANDOM_UUID",
		"CURRENT_USER", "SESSION_USER",
	},
}
