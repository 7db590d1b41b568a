package singlestore

import (
	"fmt"

	"github.com/leapstack-labs/leapddl/pkg/core"
)

var scalarTypes = map[core.TypeKind]string{
	core.TypeBoolean:   "BOOLEAN",
	core.TypeInt8:      "TINYINT",
	core.TypeInt16:     "SMALLINT",
	core.TypeInt32:     "INT",
	core.TypeInt64:     "BIGINT",
	core.TypeUInt8:     "TINYINT UNSIGNED",
	core.TypeUInt16:    "SMALLINT UNSIGNED",
	core.TypeUInt32:    "INT UNSIGNED",
	core.TypeUInt64:    "BIGINT UNSIGNED",
	core.TypeFloat32:   "FLOAT",
	core.TypeFloat64:   "DOUBLE",
	core.TypeString:    "VARCHAR",
	core.TypeBinary:    "BLOB",
	core.TypeDate:      "DATE",
	core.TypeTime:      "TIME",
	core.TypeTimestamp: "TIMESTAMP",
	core.TypeJSON:      "JSON",
}

// TypeToSQL returns the SingleStore spelling of t.
// Complex types, intervals, UUIDs and the null type have no column spelling
// and fail with *core.UnsupportedTypeError.
func TypeToSQL(t core.DataType) (string, error) {
	if t.Kind == core.TypeDecimal {
		if t.Precision == 0 && t.Scale == 0 {
			return "DECIMAL", nil
		}
		return fmt.Sprintf("DECIMAL(%d, %d)", t.Precision, t.Scale), nil
	}
	if s, ok := scalarTypes[t.Kind]; ok {
		return s, nil
	}
	return "", &core.UnsupportedTypeError{Dialect: Config.Name, Type: t}
}
