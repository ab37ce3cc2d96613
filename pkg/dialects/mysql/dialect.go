package mysql

import (
	"github.com/leapstack-labs/leapddl/pkg/dialect"
)

func init() {
	dialect.Register(MySQL)
	dialect.Register(MariaDB)
}

// MySQL is the MySQL dialect.
var MySQL = dialect.New(Config).Build()

// MariaDB shares the MySQL grammar and adds its sequence-engine options.
var MariaDB = dialect.Extend(MySQL, "mariadb").
	TableOption("page_checksum", "PAGE_CHECKSUM").
	TableOption("transactional", "TRANSACTIONAL").
	Build()
