package core

import (
	"fmt"
	"strconv"
	"strings"
)

// TypeKind identifies the family of an abstract data type.
type TypeKind int

// TypeKind values. The set is closed; dialects translate each kind to their own spelling.
const (
	TypeInvalid TypeKind = iota
	TypeBoolean
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt64
	TypeUInt8
	TypeUInt16
	TypeUInt32
	TypeUInt64
	TypeFloat32
	TypeFloat64
	TypeDecimal
	TypeString
	TypeBinary
	TypeDate
	TypeTime
	TypeTimestamp
	TypeJSON
	TypeUUID
	TypeInterval
	TypeArray
	TypeMap
	TypeStruct
	TypeNull
)

var kindNames = map[TypeKind]string{
	TypeBoolean:   "boolean",
	TypeInt8:      "int8",
	TypeInt16:     "int16",
	TypeInt32:     "int32",
	TypeInt64:     "int64",
	TypeUInt8:     "uint8",
	TypeUInt16:    "uint16",
	TypeUInt32:    "uint32",
	TypeUInt64:    "uint64",
	TypeFloat32:   "float32",
	TypeFloat64:   "float64",
	TypeDecimal:   "decimal",
	TypeString:    "string",
	TypeBinary:    "binary",
	TypeDate:      "date",
	TypeTime:      "time",
	TypeTimestamp: "timestamp",
	TypeJSON:      "json",
	TypeUUID:      "uuid",
	TypeInterval:  "interval",
	TypeArray:     "array",
	TypeMap:       "map",
	TypeStruct:    "struct",
	TypeNull:      "null",
}

// kindAliases maps accepted spellings to their kind. Canonical names are added in init.
var kindAliases = map[string]TypeKind{
	"bool":     TypeBoolean,
	"tinyint":  TypeInt8,
	"smallint": TypeInt16,
	"int":      TypeInt32,
	"integer":  TypeInt32,
	"bigint":   TypeInt64,
	"float":    TypeFloat32,
	"double":   TypeFloat64,
	"varchar":  TypeString,
	"text":     TypeString,
	"blob":     TypeBinary,
	"bytes":    TypeBinary,
	"datetime": TypeTimestamp,
}

func init() {
	for k, name := range kindNames {
		kindAliases[name] = k
	}
}

// String returns the canonical lowercase name of the kind.
func (k TypeKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "invalid"
}

// StructField is a named member of a struct type.
type StructField struct {
	Name string
	Type DataType
}

// DataType is an abstract scalar or complex type.
// Precision and Scale apply to decimals; Elem to arrays and map values;
// Key to map keys; Fields to structs.
type DataType struct {
	Kind      TypeKind
	Precision int
	Scale     int
	Elem      *DataType
	Key       *DataType
	Fields    []StructField
}

// Common scalar types.
var (
	Boolean   = DataType{Kind: TypeBoolean}
	Int8      = DataType{Kind: TypeInt8}
	Int16     = DataType{Kind: TypeInt16}
	Int32     = DataType{Kind: TypeInt32}
	Int64     = DataType{Kind: TypeInt64}
	UInt8     = DataType{Kind: TypeUInt8}
	UInt16    = DataType{Kind: TypeUInt16}
	UInt32    = DataType{Kind: TypeUInt32}
	UInt64    = DataType{Kind: TypeUInt64}
	Float32   = DataType{Kind: TypeFloat32}
	Float64   = DataType{Kind: TypeFloat64}
	String    = DataType{Kind: TypeString}
	Binary    = DataType{Kind: TypeBinary}
	Date      = DataType{Kind: TypeDate}
	Time      = DataType{Kind: TypeTime}
	Timestamp = DataType{Kind: TypeTimestamp}
	JSON      = DataType{Kind: TypeJSON}
	UUID      = DataType{Kind: TypeUUID}
	Interval  = DataType{Kind: TypeInterval}
	Null      = DataType{Kind: TypeNull}
)

// Decimal returns a decimal type with the given precision and scale.
func Decimal(precision, scale int) DataType {
	return DataType{Kind: TypeDecimal, Precision: precision, Scale: scale}
}

// Array returns an array type of elem.
func Array(elem DataType) DataType {
	return DataType{Kind: TypeArray, Elem: &elem}
}

// Map returns a map type from key to value.
func Map(key, value DataType) DataType {
	return DataType{Kind: TypeMap, Key: &key, Elem: &value}
}

// Struct returns a struct type with the given fields.
func Struct(fields ...StructField) DataType {
	return DataType{Kind: TypeStruct, Fields: fields}
}

// IsNumeric reports whether values of the type are written as bare numeric literals.
func (t DataType) IsNumeric() bool {
	switch t.Kind {
	case TypeInt8, TypeInt16, TypeInt32, TypeInt64,
		TypeUInt8, TypeUInt16, TypeUInt32, TypeUInt64,
		TypeFloat32, TypeFloat64, TypeDecimal:
		return true
	default:
		return false
	}
}

// IsTemporal reports whether the type is a date, time or timestamp.
func (t DataType) IsTemporal() bool {
	return t.Kind == TypeDate || t.Kind == TypeTime || t.Kind == TypeTimestamp
}

// String returns the canonical spelling accepted by ParseType.
func (t DataType) String() string {
	switch t.Kind {
	case TypeDecimal:
		if t.Precision == 0 && t.Scale == 0 {
			return "decimal"
		}
		return fmt.Sprintf("decimal(%d, %d)", t.Precision, t.Scale)
	case TypeArray:
		return "array<" + elemString(t.Elem) + ">"
	case TypeMap:
		return "map<" + elemString(t.Key) + ", " + elemString(t.Elem) + ">"
	case TypeStruct:
		parts := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			parts[i] = f.Name + ": " + f.Type.String()
		}
		return "struct<" + strings.Join(parts, ", ") + ">"
	default:
		return t.Kind.String()
	}
}

func elemString(t *DataType) string {
	if t == nil {
		return "invalid"
	}
	return t.String()
}

// ParseType parses a type name such as "int32", "decimal(10, 2)",
// "array<string>", "map<string, int64>" or "struct<a: int32, b: string>".
func ParseType(s string) (DataType, error) {
	p := &typeParser{src: s}
	t, err := p.parse()
	if err != nil {
		return DataType{}, fmt.Errorf("invalid type %q: %w", s, err)
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return DataType{}, fmt.Errorf("invalid type %q: unexpected %q", s, p.src[p.pos:])
	}
	return t, nil
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *typeParser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *typeParser) expect(c byte) error {
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != c {
		return fmt.Errorf("expected %q at offset %d", c, p.pos)
	}
	p.pos++
	return nil
}

func (p *typeParser) peek(c byte) bool {
	p.skipSpace()
	return p.pos < len(p.src) && p.src[p.pos] == c
}

func (p *typeParser) number() (int, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	return strconv.Atoi(p.src[start:p.pos])
}

func (p *typeParser) parse() (DataType, error) {
	name := strings.ToLower(p.ident())
	if name == "" {
		return DataType{}, fmt.Errorf("missing type name at offset %d", p.pos)
	}
	kind, ok := kindAliases[name]
	if !ok {
		return DataType{}, fmt.Errorf("unknown type name %q", name)
	}

	switch kind {
	case TypeDecimal:
		if !p.peek('(') {
			return DataType{Kind: TypeDecimal}, nil
		}
		p.pos++
		precision, err := p.number()
		if err != nil {
			return DataType{}, fmt.Errorf("decimal precision: %w", err)
		}
		scale := 0
		if p.peek(',') {
			p.pos++
			if scale, err = p.number(); err != nil {
				return DataType{}, fmt.Errorf("decimal scale: %w", err)
			}
		}
		if err := p.expect(')'); err != nil {
			return DataType{}, err
		}
		return Decimal(precision, scale), nil

	case TypeArray:
		if err := p.expect('<'); err != nil {
			return DataType{}, err
		}
		elem, err := p.parse()
		if err != nil {
			return DataType{}, err
		}
		if err := p.expect('>'); err != nil {
			return DataType{}, err
		}
		return Array(elem), nil

	case TypeMap:
		if err := p.expect('<'); err != nil {
			return DataType{}, err
		}
		key, err := p.parse()
		if err != nil {
			return DataType{}, err
		}
		if err := p.expect(','); err != nil {
			return DataType{}, err
		}
		value, err := p.parse()
		if err != nil {
			return DataType{}, err
		}
		if err := p.expect('>'); err != nil {
			return DataType{}, err
		}
		return Map(key, value), nil

	case TypeStruct:
		if err := p.expect('<'); err != nil {
			return DataType{}, err
		}
		var fields []StructField
		for {
			fname := p.ident()
			if fname == "" {
				return DataType{}, fmt.Errorf("missing struct field name at offset %d", p.pos)
			}
			if err := p.expect(':'); err != nil {
				return DataType{}, err
			}
			ftype, err := p.parse()
			if err != nil {
				return DataType{}, err
			}
			fields = append(fields, StructField{Name: fname, Type: ftype})
			if !p.peek(',') {
				break
			}
			p.pos++
		}
		if err := p.expect('>'); err != nil {
			return DataType{}, err
		}
		return Struct(fields...), nil
	}

	return DataType{Kind: kind}, nil
}

// ParseTypes parses each name with ParseType.
func ParseTypes(names []string) ([]DataType, error) {
	types := make([]DataType, len(names))
	for i, name := range names {
		t, err := ParseType(name)
		if err != nil {
			return nil, err
		}
		types[i] = t
	}
	return types, nil
}
