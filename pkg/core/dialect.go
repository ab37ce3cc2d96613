package core

// DialectConfig holds the static configuration for a SQL dialect.
// This is pure data with no behavior.
//
// The runtime lookups (synonym resolution, option matching) live in
// pkg/dialect.Dialect, which is built from this config.
type DialectConfig struct {
	// Name is the dialect identifier (e.g., "mysql", "postgres")
	Name string

	// DefaultSchema is the schema unqualified names belong to, if any.
	DefaultSchema string

	// Lexing controls quote and comment handling in the tokenizer.
	Lexing LexConfig

	// Synonyms maps alternate keyword spellings to canonical ones ("KEY" -> "INDEX").
	Synonyms map[string]string

	// TableOptions lists the trailing CREATE TABLE options the dialect recognizes.
	TableOptions []TableOptionDef

	// SupportsOnUpdate enables the MySQL-style "ON UPDATE <expr>" column clause.
	SupportsOnUpdate bool

	// BatchSeparator is a keyword that ends a statement when it stands alone
	// (SQL Server "GO"). Empty disables it.
	BatchSeparator string

	// Generators are value-generating functions (CURRENT_TIMESTAMP, NOW, ...)
	// canonicalized to upper case when case normalization is requested.
	Generators []string
}

// LexConfig describes how a dialect quotes strings and identifiers.
type LexConfig struct {
	StringQuotes     string      // characters opening a string literal, e.g. `'"`
	IdentQuotes      []QuotePair // identifier quote pairs: `, ", [ ]
	BackslashEscapes bool        // \' escapes a quote inside strings (MySQL)
	HashComments     bool        // # starts a line comment (MySQL)
	DollarQuotes     bool        // $$...$$ and $tag$...$tag$ strings (PostgreSQL)
}

// QuotePair is an identifier quote delimiter pair.
type QuotePair struct {
	Open  byte
	Close byte
}

// TableOptionDef maps a keyword sequence to the option key stored on a Table.
type TableOptionDef struct {
	Key      string   // option key in the IR, e.g. "default_charset"
	Keywords []string // canonical keyword sequence, e.g. ["DEFAULT", "CHARSET"]
}
