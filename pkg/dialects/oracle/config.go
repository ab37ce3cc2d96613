// Package oracle provides the Oracle Database DDL dialect.
package oracle

import "github.com/leapstack-labs/leapddl/pkg/core"

// Config is the Oracle dialect configuration.
var Config = &core.DialectConfig{
	Name: "oracle",
	Lexing: core.LexConfig{
		StringQuotes: `'`,
		IdentQuotes:  []core.QuotePair{{Open: '"', Close: '"'}},
	},
	TableOptions: []core.TableOptionDef{
		{Key: "organization", Keywords: []string{"ORGANIZATION"}},
		{Key: "pctfree", Keywords: []string{"PCTFREE"}},
		{Key: "pctused", Keywords: []string{"PCTUSED"}},
		{Key: "initrans", Keywords: []string{"INITRANS"}},
		{Key: "storage", Keywords: []string{"STORAGE"}},
		{Key: "encrypt", Keywords: []string{"ENCRYPT", "USING"}},
	},
	Generators: []string{
		"SYSDATE", "SYSTIMESTAMP", "CURRENT_DATE", "CURRENT_TIMESTAMP",
		"LOCALTIMESTAMP", "SYS_GUID", "USER", "UID",
	},
}
