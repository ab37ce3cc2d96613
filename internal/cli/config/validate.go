package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapddl/internal/cli/output"
	"github.com/leapstack-labs/leapddl/pkg/core"
	"github.com/leapstack-labs/leapddl/pkg/dialect"
)

// Validate checks if the configuration is valid. The selected dialect may
// name a registered dialect or one of the profiles declared in Dialects.
func (c *Config) Validate() error {
	if _, err := output.ParseMode(c.Output); err != nil {
		return err
	}

	declared := make(map[string]bool, len(c.Dialects))
	for i, p := range c.Dialects {
		if p.Name == "" {
			return fmt.Errorf("dialects[%d]: name is required", i)
		}
		if p.Extends == "" {
			return fmt.Errorf("dialect %q: extends is required", p.Name)
		}
		if _, ok := dialect.Get(p.Extends); !ok && !declared[strings.ToLower(p.Extends)] {
			return fmt.Errorf("dialect %q extends %w %q", p.Name, dialect.ErrUnknownDialect, p.Extends)
		}
		for key, keywords := range p.TableOptions {
			if core.IsReservedTableKey(key) {
				return fmt.Errorf("dialect %q: table option %q collides with a table field", p.Name, key)
			}
			if len(keywords) == 0 {
				return fmt.Errorf("dialect %q: table option %q has no keywords", p.Name, key)
			}
		}
		declared[strings.ToLower(p.Name)] = true
	}

	if c.Dialect != "" && !declared[strings.ToLower(c.Dialect)] {
		if _, err := dialect.Lookup(c.Dialect); err != nil {
			return err
		}
	}
	return nil
}

// RegisterDialects builds every declared profile on top of its base dialect
// and registers it. Profiles may extend profiles declared before them.
func (c *Config) RegisterDialects() error {
	var errs []error
	for _, p := range c.Dialects {
		base, ok := dialect.Get(p.Extends)
		if !ok {
			errs = append(errs, fmt.Errorf("dialect %q extends %w %q", p.Name, dialect.ErrUnknownDialect, p.Extends))
			continue
		}
		dialect.Register(p.build(base))
	}
	return errors.Join(errs...)
}

func (p DialectProfile) build(base *dialect.Dialect) *dialect.Dialect {
	b := dialect.Extend(base, strings.ToLower(p.Name)).
		Synonyms(p.Synonyms).
		Generators(p.Generators...)
	for key, keywords := range p.TableOptions {
		b.TableOption(key, keywords...)
	}
	if p.OnUpdate != nil {
		b.OnUpdate(*p.OnUpdate)
	}
	if p.BatchSeparator != "" {
		b.BatchSeparator(p.BatchSeparator)
	}
	return b.Build()
}
