package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapddl/pkg/core"
)

func testDialect(name string) *Dialect {
	cfg := &core.DialectConfig{
		Name: name,
		Identifiers: core.IdentifierConfig{
			Quote:    "[",
			QuoteEnd: "]",
			Escape:   "]]",
		},
		Keywords:  []string{"SELECT", "from"},
		DataTypes: []string{"INT"},
	}
	return New(cfg, func(t core.DataType) (string, error) {
		if t.Kind == core.TypeInt32 {
			return "INT", nil
		}
		return "", &core.UnsupportedTypeError{Dialect: name, Type: t}
	})
}

func TestDialectKeywords(t *testing.T) {
	d := testDialect("bracket")

	tests := []struct {
		name string
		want bool
	}{
		{"select", true},
		{"SELECT", true},
		{"From", true},
		{"trips", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.IsKeyword(tt.name))
		})
	}
}

func TestDialectQuoting(t *testing.T) {
	d := testDialect("bracket")

	assert.Equal(t, "[a]]b]", d.QuoteIdentifier("a]b"))
	assert.Equal(t, "plain_name", d.QuoteIdentifierIfNeeded("plain_name"))
	assert.Equal(t, "[from]", d.QuoteIdentifierIfNeeded("from"))
	assert.Equal(t, "[]", d.QuoteIdentifierIfNeeded(""))
}

func TestDialectTypeSQL(t *testing.T) {
	d := testDialect("bracket")

	got, err := d.TypeSQL(core.Int32)
	require.NoError(t, err)
	assert.Equal(t, "INT", got)

	_, err = d.TypeSQL(core.String)
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	d := testDialect("Registry_Test")
	Register(d)

	got, ok := Get("registry_test")
	require.True(t, ok)
	assert.Same(t, d, got)

	_, ok = Get("does_not_exist")
	assert.False(t, ok)

	names := List()
	assert.Contains(t, names, "registry_test")
	assert.IsNonDecreasing(t, names)
}
