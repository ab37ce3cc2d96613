package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapddl/pkg/dialect"
	"github.com/leapstack-labs/leapddl/pkg/parser"
)

const (
	replPrompt    = "leapddl> "
	replContinued = "    ...> "
)

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse DDL interactively",
		Long: `Start an interactive session that parses each statement as it is
entered and prints the extracted entities. Statements end with a semicolon
and may span several lines.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd)
		},
	}
	return cmd
}

func runREPL(cmd *cobra.Command) error {
	cc := NewCommandContext(cmd)
	session := newREPLSession(cc)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     replHistoryFile(),
		AutoComplete:    newREPLCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdin:           io.NopCloser(cmd.InOrStdin()),
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	r := cc.Renderer
	r.Printf("LeapDDL REPL (dialect: %s)\n", session.cfg.Dialect)
	r.Println("Type .help for commands, .quit to exit")
	r.Println()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			session.reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if session.handleLine(line) {
			return nil
		}
		rl.SetPrompt(session.prompt())
	}
}

// replHistoryFile returns the per-user history path, or "" to disable history.
func replHistoryFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "leapddl")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return ""
	}
	return filepath.Join(dir, "repl_history")
}

// replSession holds the state of one REPL: the pending statement text and
// the parse options toggled by dot-commands.
type replSession struct {
	cc  *CommandContext
	cfg parser.Config
	buf strings.Builder
}

func newREPLSession(cc *CommandContext) *replSession {
	cfg := cc.ParserConfig()
	if cfg.Dialect == "" {
		cfg.Dialect = defaultDialectName()
	}
	return &replSession{cc: cc, cfg: cfg}
}

func (s *replSession) reset() {
	s.buf.Reset()
}

func (s *replSession) prompt() string {
	if s.buf.Len() > 0 {
		return replContinued
	}
	return replPrompt
}

// handleLine consumes one line of input and reports whether the session
// should end.
func (s *replSession) handleLine(line string) (quit bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if s.buf.Len() == 0 && strings.HasPrefix(line, ".") {
		return s.handleDotCommand(line)
	}

	s.buf.WriteString(line)
	if !strings.HasSuffix(line, ";") {
		s.buf.WriteString("\n")
		return false
	}

	input := s.buf.String()
	s.buf.Reset()
	s.parse(input)
	return false
}

func (s *replSession) parse(input string) {
	r := s.cc.Renderer
	res, err := parser.Parse(input, s.cfg)
	if err != nil {
		r.Status("Error: %v", err)
		return
	}
	r.Diagnostics("", res.Diagnostics)
	if err := r.Result(res); err != nil {
		r.Status("Error: %v", err)
	}
	r.Println()
}

func (s *replSession) handleDotCommand(line string) (quit bool) {
	r := s.cc.Renderer
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(r.Out())

	case ".dialect":
		if len(parts) < 2 {
			r.Printf("dialect: %s\n", s.cfg.Dialect)
			return false
		}
		d, err := dialect.Lookup(parts[1])
		if err != nil {
			r.Status("Error: %v", err)
			return false
		}
		s.cfg.Dialect = d.Name
		r.Printf("dialect: %s\n", d.Name)

	case ".group":
		s.cfg.GroupByType = !s.cfg.GroupByType
		r.Printf("group by type: %s\n", onOff(s.cfg.GroupByType))

	case ".normalize":
		s.cfg.NormalizeCase = !s.cfg.NormalizeCase
		r.Printf("normalize case: %s\n", onOff(s.cfg.NormalizeCase))

	case ".clear":
		if s.cc.Renderer.IsTTY() {
			r.Printf("\033[H\033[2J")
		}

	default:
		r.Status("Unknown command: %s (type .help for commands)", command)
	}
	return false
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help             Show this help message
  .dialect [name]   Show or switch the dialect
  .group            Toggle grouping entities by kind
  .normalize        Toggle upper-casing type names
  .clear            Clear the screen
  .quit / .exit     Exit the REPL

Tips:
  - Statements must end with a semicolon (;)
  - Use arrow keys to navigate history
  - Tab completion works for dot-commands and dialect names
`
	_, _ = fmt.Fprintln(w, help)
}

// newREPLCompleter completes dot-commands and dialect names.
func newREPLCompleter() *readline.PrefixCompleter {
	names := dialect.List()
	dialects := make([]readline.PrefixCompleterInterface, 0, len(names))
	for _, name := range names {
		dialects = append(dialects, readline.PcItem(name))
	}

	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".dialect", dialects...),
		readline.PcItem(".group"),
		readline.PcItem(".normalize"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
