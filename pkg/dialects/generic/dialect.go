package generic

import (
	"github.com/leapstack-labs/leapddl/pkg/dialect"
)

func init() {
	dialect.Register(Generic)
	dialect.SetDefault(Generic)
}

// Generic is the default dialect, used when no dialect is named.
var Generic = dialect.New(Config).Build()
