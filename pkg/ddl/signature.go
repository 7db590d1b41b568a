package ddl

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapddl/pkg/core"
	"github.com/leapstack-labs/leapddl/pkg/dialects/singlestore"
)

const paramLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// MaxParameters is the largest number of inputs a function signature can name.
const MaxParameters = len(paramLetters)

// InputSignature renders a parameter list, naming parameters a..z then A..Z:
//
//	a INT NOT NULL, b VARCHAR NOT NULL
//
// Variadic parameters are not supported.
func InputSignature(inputs []core.DataType) (string, error) {
	if len(inputs) > MaxParameters {
		return "", &TooManyParametersError{Count: len(inputs), Max: MaxParameters}
	}
	params := make([]string, len(inputs))
	for i, t := range inputs {
		typ, err := singlestore.TypeToSQL(t)
		if err != nil {
			return "", fmt.Errorf("parameter %c: %w", paramLetters[i], err)
		}
		params[i] = fmt.Sprintf("%c %s NOT NULL", paramLetters[i], typ)
	}
	return strings.Join(params, ", "), nil
}

// FunctionSignature renders <scoped-name>(<params>) RETURNS <type> NOT NULL.
func FunctionSignature(name, database string, inputs []core.DataType, output core.DataType) (string, error) {
	params, err := InputSignature(inputs)
	if err != nil {
		return "", err
	}
	ret, err := singlestore.TypeToSQL(output)
	if err != nil {
		return "", fmt.Errorf("return type: %w", err)
	}
	return fmt.Sprintf("%s(%s) RETURNS %s NOT NULL", ScopedName(name, database), params, ret), nil
}
