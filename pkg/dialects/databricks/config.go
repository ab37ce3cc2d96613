// Package databricks provides the Databricks (Spark SQL) DDL dialect definition.
package databricks

import "github.com/leapstack-labs/leapddl/pkg/core"

// Config is the Databricks dialect configuration.
var Config = &core.DialectConfig{
	Name:          "databricks",
	DefaultSchema: "default",
	Lexing: core.LexConfig{
		StringQuotes:     `'"`,
		IdentQuotes:      []core.QuotePair{{Open: '`', Close: '`'}},
		BackslashEscapes: true,
	},
	Synonyms: map[string]string{
		"DATABASE": "SCHEMA",
	},
	TableOptions: []core.TableOptionDef{
		{Key: "using", Keywords: []string{"USING"}},
		{Key: "location", Keywords: []string{"LOCATION"}},
		{Key: "comment", Keywords: []string{"COMMENT"}},
		{Key: "tblproperties", Keywords: []string{"TBLPROPERTIES"}},
		{Key: "cluster_by", Keywords: []string{"CLUSTER", "BY"}},
		{Key: "options", Keywords: []string{"OPTIONS"}},
	},
	Generators: []string{
		"CURRENT_TIMESTAMP", "CURRENT_DATE", "NOW", "UUID",
		"CURRENT_USER", "CURRENT_CATALOG", "CURRENT_SCHEMA",
	},
}
