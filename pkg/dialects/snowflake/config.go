// Package snowflake provides the Snowflake DDL dialect definition.
package snowflake

import "github.com/leapstack-labs/leapddl/pkg/core"

// Config is the Snowflake dialect configuration.
var Config = &core.DialectConfig{
	Name:          "snowflake",
	DefaultSchema: "PUBLIC",
	Lexing: core.LexConfig{
		StringQuotes: `'`,
		IdentQuotes:  []core.QuotePair{{Open: '"', Close: '"'}},
		DollarQuotes: true,
	},
	TableOptions: []core.TableOptionDef{
		{Key: "cluster_by", Keywords: []string{"CLUSTER", "BY"}},
		{Key: "comment", Keywords: []string{"COMMENT"}},
		{Key: "data_retention_time_in_days", Keywords: []string{"DATA_RETENTION_TIME_IN_DAYS"}},
		{Key: "max_data_extension_time_in_days", Keywords: []string{"MAX_DATA_EXTENSION_TIME_IN_DAYS"}},
		{Key: "change_tracking", Keywords: []string{"CHANGE_TRACKING"}},
		{Key: "stage_file_format", Keywords: []string{"STAGE_FILE_FORMAT"}},
		{Key: "default_ddl_collation", Keywords: []string{"DEFAULT_DDL_COLLATION"}},
	},
	Generators: []string{
		"CURRENT_TIMESTAMP", "CURRENT_DATE", "CURRENT_TIME",
		"SYSDATE", "SYSTIMESTAMP", "LOCALTIMESTAMP",
		"UUID_STRING", "CURRENT_USER", "CURRENT_ROLE",
	},
}
