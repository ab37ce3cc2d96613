package oracle

import (
	"github.com/leapstack-labs/leapddl/pkg/dialect"
)

func init() {
	dialect.Register(Oracle)
}

// Oracle is the Oracle dialect.
var Oracle = dialect.New(Config).Build()
