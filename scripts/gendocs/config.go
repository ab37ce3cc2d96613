package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/leapddl/internal/cli/config"
)

// configKey documents one leapddl.yaml key.
type configKey struct {
	Name        string
	Type        string
	Default     string
	Flag        string
	Description string
	Scalar      bool
}

// EnvVar returns the environment variable that overrides the key.
func (k configKey) EnvVar() string {
	return "LEAPDDL_" + strings.ToUpper(k.Name)
}

// configKeys mirrors the koanf tags of config.Config.
var configKeys = []configKey{
	{Name: "dialect", Type: "string", Default: config.DefaultDialect, Flag: "--dialect", Description: "SQL dialect of the input", Scalar: true},
	{Name: "output", Type: "string", Default: config.DefaultOutput, Flag: "--output", Description: "Output format: auto, json, yaml or table", Scalar: true},
	{Name: "group_by_type", Type: "bool", Default: "false", Flag: "--group-by-type", Description: "Group entities by kind", Scalar: true},
	{Name: "normalize_case", Type: "bool", Default: "false", Flag: "--normalize-case", Description: "Upper-case type names and generator calls", Scalar: true},
	{Name: "strict", Type: "bool", Default: "false", Flag: "--strict", Description: "Abort on the first lexical error", Scalar: true},
	{Name: "catalog", Type: "string", Flag: "--catalog", Description: "SQLite catalog that records parse runs; `${VAR}` is expanded", Scalar: true},
	{Name: "verbose", Type: "bool", Default: "false", Flag: "--verbose", Description: "Debug logging and diagnostic counts", Scalar: true},
	{Name: "no_color", Type: "bool", Default: "false", Flag: "--no-color", Description: "Disable colored output", Scalar: true},
	{Name: "dialects", Type: "list", Description: "Custom dialect profiles, see below"},
}

// generateConfigDocs generates the leapddl.yaml reference page.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating configuration docs to %s", outDir)

	w := NewMarkdownWriter()
	w.Frontmatter("Configuration", "LeapDDL configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("LeapDDL reads `leapddl.yaml` (or `leapddl.yml`) from the working directory or the nearest parent directory. Pass `--config` to use another file.")

	w.Header(2, "Settings")
	var rows [][]string
	for _, k := range configKeys {
		def := k.Default
		if def == "" {
			def = "-"
		}
		flag := k.Flag
		if flag != "" {
			flag = InlineCode(flag)
		}
		rows = append(rows, []string{InlineCode(k.Name), k.Type, InlineCode(def), flag, k.Description})
	}
	w.Table([]string{"Key", "Type", "Default", "Flag", "Description"}, rows)

	w.Header(2, "Dialect Profiles")
	w.Paragraph("A profile derives a new dialect from a registered one. Profiles may extend profiles declared before them.")
	w.Table([]string{"Field", "Type", "Description"}, [][]string{
		{InlineCode("name"), "string", "Name used with `--dialect`"},
		{InlineCode("extends"), "string", "Dialect to start from"},
		{InlineCode("synonyms"), "map[string]string", "Extra keyword synonyms, alternate to canonical"},
		{InlineCode("table_options"), "map[string][]string", "Extra trailing table options, key to keyword sequence"},
		{InlineCode("on_update"), "bool", "Whether `ON UPDATE <expr>` is a column clause"},
		{InlineCode("batch_separator"), "string", "Keyword that ends a statement on its own line"},
		{InlineCode("generators"), "[]string", "Extra value-generating functions"},
	})

	w.Header(2, "Example")
	w.CodeBlock("yaml", `# leapddl.yaml
dialect: tidb
output: yaml
group_by_type: true
catalog: ${HOME}/.cache/leapddl/runs.db

dialects:
  - name: tidb
    extends: mysql
    table_options:
      shard_row_id_bits: [SHARD_ROW_ID_BITS]
      pre_split_regions: [PRE_SPLIT_REGIONS]`)

	return os.WriteFile(filepath.Join(outDir, "configuration.md"), w.Bytes(), 0600)
}
