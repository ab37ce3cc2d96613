// Package mssql provides the Microsoft SQL Server (T-SQL) DDL dialect.
package mssql

import "github.com/leapstack-labs/leapddl/pkg/core"

// Config is the SQL Server dialect configuration.
// Scripts may separate batches with a standalone GO line.
var Config = &core.DialectConfig{
	Name:          "mssql",
	DefaultSchema: "dbo",
	Lexing: core.LexConfig{
		StringQuotes: `'`,
		IdentQuotes: []core.QuotePair{
			{Open: '[', Close: ']'},
			{Open: '"', Close: '"'},
		},
	},
	BatchSeparator: "GO",
	TableOptions: []core.TableOptionDef{
		{Key: "on", Keywords: []string{"ON"}},
		{Key: "textimage_on", Keywords: []string{"TEXTIMAGE_ON"}},
		{Key: "filestream_on", Keywords: []string{"FILESTREAM_ON"}},
		{Key: "with", Keywords: []string{"WITH"}},
	},
	Generators: []string{
		"CURRENT_TIMESTAMP", "GETDATE", "GETUTCDATE",
		"SYSDATETIME", "SYSUTCDATETIME", "SYSDATETIMEOFFSET",
		"NEWID", "NEWSEQUENTIALID",
		"CURRENT_USER", "SUSER_SNAME",
	},
}
