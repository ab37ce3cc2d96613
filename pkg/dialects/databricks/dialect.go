package databricks

import (
	"github.com/leapstack-labs/leapddl/pkg/dialect"
)

func init() {
	dialect.Register(Databricks)
}

// Databricks is the Databricks dialect.
var Databricks = dialect.New(Config).Build()
