package postgres

import (
	"github.com/leapstack-labs/leapddl/pkg/dialect"
)

func init() {
	dialect.Register(Postgres)
}

// Postgres is the PostgreSQL dialect.
// PostgreSQL has no KEY synonym and no ON UPDATE column clause.
var Postgres = dialect.New(Config).Build()
