package singlestore

import (
	"github.com/leapstack-labs/leapddl/pkg/dialect"
)

func init() {
	dialect.Register(SingleStore)
}

// SingleStore is the SingleStore dialect.
var SingleStore = dialect.New(Config, TypeToSQL)

// QuoteIdentifier quotes name with backticks.
func QuoteIdentifier(name string) string {
	return SingleStore.QuoteIdentifier(name)
}
