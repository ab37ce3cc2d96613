// Package config provides configuration management for the LeapDDL CLI.
//
// Values are layered with koanf: built-in defaults, then leapddl.yaml, then
// LEAPDDL_* environment variables, then flags that were set explicitly.
package config

// Config holds all CLI configuration options.
type Config struct {
	Dialect       string           `koanf:"dialect"`
	GroupByType   bool             `koanf:"group_by_type"`
	NormalizeCase bool             `koanf:"normalize_case"`
	Strict        bool             `koanf:"strict"`
	Output        string           `koanf:"output"`
	Catalog       string           `koanf:"catalog"`
	Verbose       bool             `koanf:"verbose"`
	NoColor       bool             `koanf:"no_color"`
	Dialects      []DialectProfile `koanf:"dialects"`
}

// DialectProfile declares a dialect derived from a registered one.
//
//	dialects:
//	  - name: tidb
//	    extends: mysql
//	    synonyms: {CLUSTERED: PRIMARY}
//	    table_options:
//	      shard_row_id_bits: [SHARD_ROW_ID_BITS]
type DialectProfile struct {
	Name           string              `koanf:"name"`
	Extends        string              `koanf:"extends"`
	Synonyms       map[string]string   `koanf:"synonyms"`
	TableOptions   map[string][]string `koanf:"table_options"`
	OnUpdate       *bool               `koanf:"on_update"`
	BatchSeparator string              `koanf:"batch_separator"`
	Generators     []string            `koanf:"generators"`
}

// Default configuration values.
const (
	DefaultDialect = "generic"
	DefaultOutput  = "auto" // TTY=table, non-TTY=json
)
