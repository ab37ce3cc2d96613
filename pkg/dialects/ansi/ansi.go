package ansi

import (
	"github.com/leapstack-labs/leapddl/pkg/dialect"
)

func init() {
	dialect.Register(ANSI)
}

// ANSI is the strict ANSI SQL dialect.
var ANSI = dialect.New(Config).Build()
