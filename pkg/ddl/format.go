package ddl

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/leapstack-labs/leapddl/pkg/core"
	"github.com/leapstack-labs/leapddl/pkg/dialects/singlestore"
)

var literalEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// QuoteLiteral wraps value in single quotes, escaping embedded backslashes and
// single quotes with a backslash.
func QuoteLiteral(value string) string {
	return "'" + literalEscaper.Replace(value) + "'"
}

// ScopedName qualifies name with namespace: "namespace.name", or name alone
// when namespace is empty.
func ScopedName(name, namespace string) string {
	if namespace == "" {
		return name
	}
	return namespace + "." + name
}

// FormatSchema renders a parenthesized column list, one column per line:
//
//	(`id` BIGINT NOT NULL,
//	 `name` VARCHAR)
func FormatSchema(schema *core.Schema) (string, error) {
	if schema == nil {
		return "", &MissingFieldError{Statement: KindInvalid, Field: "schema"}
	}
	if err := schema.Validate(); err != nil {
		return "", err
	}
	elems := make([]string, len(schema.Columns))
	for i, col := range schema.Columns {
		typ, err := singlestore.TypeToSQL(col.Type)
		if err != nil {
			return "", fmt.Errorf("column %s: %w", col.Name, err)
		}
		elem := singlestore.QuoteIdentifier(col.Name) + " " + typ
		if col.NotNull {
			elem += " NOT NULL"
		}
		elems[i] = elem
	}
	return "(" + strings.Join(elems, ",\n ") + ")", nil
}

// FormatProperties renders props as prefix('k'='v', ...), or the empty string
// when props is empty.
func FormatProperties(props *PropertyMap, prefix string) string {
	if props.Len() == 0 {
		return ""
	}
	pairs := make([]string, 0, props.Len())
	props.Each(func(k, v string) {
		pairs = append(pairs, QuoteLiteral(k)+"="+QuoteLiteral(v))
	})
	return prefix + "(" + strings.Join(pairs, ", ") + ")"
}

// FormatPartition renders PARTITION (k=v, ...) in partition-schema order.
func FormatPartition(spec *PartitionSpec) (string, error) {
	if spec == nil || spec.Schema.Len() == 0 {
		return "", &MissingFieldError{Statement: KindInvalid, Field: "partition schema"}
	}
	for _, key := range spec.Keys() {
		if _, ok := spec.Schema.Lookup(key); !ok {
			return "", fmt.Errorf("partition key %q: %w", key, ErrUnknownColumn)
		}
	}

	tokens := make([]string, len(spec.Schema.Columns))
	for i, col := range spec.Schema.Columns {
		v, ok := spec.Value(col.Name)
		if !ok {
			tokens[i] = col.Name
			continue
		}
		lit, err := partitionLiteral(v, col.Type)
		if err != nil {
			return "", fmt.Errorf("partition key %q: %w", col.Name, err)
		}
		tokens[i] = col.Name + "=" + lit
	}
	return "PARTITION (" + strings.Join(tokens, ", ") + ")", nil
}

func partitionLiteral(v any, t core.DataType) (string, error) {
	if v == nil {
		return "NULL", nil
	}

	switch {
	case t.IsNumeric():
		switch n := v.(type) {
		case int:
			return strconv.Itoa(n), nil
		case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return fmt.Sprint(n), nil
		case float32:
			return strconv.FormatFloat(float64(n), 'g', -1, 32), nil
		case float64:
			return strconv.FormatFloat(n, 'g', -1, 64), nil
		case string:
			if _, err := strconv.ParseFloat(n, 64); err != nil {
				return "", fmt.Errorf("invalid %s literal %q", t, n)
			}
			return n, nil
		default:
			return "", fmt.Errorf("invalid %s literal %v", t, v)
		}

	case t.Kind == core.TypeBoolean:
		switch b := v.(type) {
		case bool:
			return boolLiteral(b), nil
		case string:
			parsed, err := strconv.ParseBool(b)
			if err != nil {
				return "", fmt.Errorf("invalid boolean literal %q", b)
			}
			return boolLiteral(parsed), nil
		default:
			return "", fmt.Errorf("invalid boolean literal %v", v)
		}

	case t.IsTemporal():
		if ts, ok := v.(time.Time); ok {
			return QuoteLiteral(formatTime(ts, t.Kind)), nil
		}
	}

	return QuoteLiteral(fmt.Sprint(v)), nil
}

func boolLiteral(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func formatTime(ts time.Time, kind core.TypeKind) string {
	switch kind {
	case core.TypeDate:
		return ts.Format(time.DateOnly)
	case core.TypeTime:
		return ts.Format("15:04:05.999999")
	default:
		return ts.Format("2006-01-02 15:04:05.999999")
	}
}
