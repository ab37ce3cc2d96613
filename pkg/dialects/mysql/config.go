// Package mysql provides the MySQL / MariaDB DDL dialect.
// This package is pure Go with no database driver dependencies.
package mysql

import "github.com/leapstack-labs/leapddl/pkg/core"

// Config is the MySQL dialect configuration.
// Double quotes delimit strings (ANSI_QUOTES off); identifiers use backticks.
var Config = &core.DialectConfig{
	Name: "mysql",
	Lexing: core.LexConfig{
		StringQuotes:     `'"`,
		IdentQuotes:      []core.QuotePair{{Open: '`', Close: '`'}},
		BackslashEscapes: true,
		HashComments:     true,
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
		{Key: "key_block_size", Keywords: []string{"KEY_BLOCK_SIZE"}},
		{Key: "stats_persistent", Keywords: []string{"STATS_PERSISTENT"}},
		{Key: "avg_row_length", Keywords: []string{"AVG_ROW_LENGTH"}},
		{Key: "max_rows", Keywords: []string{"MAX_ROWS"}},
		{Key: "min_rows", Keywords: []string{"MIN_ROWS"}},
		{Key: "checksum", Keywords: []string{"CHECKSUM"}},
	},
	Generators: []string{
		"CURRENT_TIMESTAMP", "CURRENT_DATE", "CURRENT_TIME",
		"NOW", "LOCALTIME", "LOCALTIMESTAMP",
		"UTC_TIMESTAMP", "UTC_DATE", "UTC_TIME",
		"SYSDATE", "UNIX_TIMESTAMP",
		"UUID", "UUID_SHORT",
		"CURRENT_USER",
	},
}
