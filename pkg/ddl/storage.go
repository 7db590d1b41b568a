package ddl

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	json "github.com/goccy/go-json"
)

// StorageFormat describes the layout of a table's backing data file and renders
// the STORED AS / ROW FORMAT / LOCATION clause set. Implementations:
// *DelimitedFormat, *ParquetFormat, *AvroFormat.
type StorageFormat interface {
	// FormatName is the keyword used in LIKE <FORMAT> '<file>'.
	FormatName() string
	// Location returns the data path.
	Location() string
	// Clauses renders the format's clauses; callers join them with newlines.
	Clauses() ([]string, error)

	// clausesAt renders the clauses with location in place of the format's own path.
	clausesAt(location string) ([]string, error)
}

// Ptr returns a pointer to v, for optional descriptor fields.
func Ptr[T any](v T) *T {
	return &v
}

func locationClause(location string) string {
	return "LOCATION " + QuoteLiteral(location)
}

func resolveLocation(own, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if own == "" {
		return "", &MissingFieldError{Statement: KindInvalid, Field: "storage path"}
	}
	return own, nil
}

// DelimitedFormat is a delimited text file.
// Empty Delimiter, Escape and LineTerminator are omitted; NullFormat, when set,
// adds a serialization.null.format table property.
type DelimitedFormat struct {
	Path           string
	Delimiter      string
	Escape         string
	LineTerminator string
	NullFormat     *string
}

// FormatName implements StorageFormat.
func (f *DelimitedFormat) FormatName() string { return "DELIMITED" }

// Location implements StorageFormat.
func (f *DelimitedFormat) Location() string { return f.Path }

// Clauses implements StorageFormat.
func (f *DelimitedFormat) Clauses() ([]string, error) { return f.clausesAt("") }

func (f *DelimitedFormat) clausesAt(location string) ([]string, error) {
	loc, err := resolveLocation(f.Path, location)
	if err != nil {
		return nil, err
	}

	clauses := []string{"ROW FORMAT DELIMITED"}
	if f.Delimiter != "" {
		clauses = append(clauses, "FIELDS TERMINATED BY "+QuoteLiteral(f.Delimiter))
	}
	if f.Escape != "" {
		clauses = append(clauses, "ESCAPED BY "+QuoteLiteral(f.Escape))
	}
	if f.LineTerminator != "" {
		clauses = append(clauses, "LINES TERMINATED BY "+QuoteLiteral(f.LineTerminator))
	}
	clauses = append(clauses, locationClause(loc))
	if f.NullFormat != nil {
		props := Properties("serialization.null.format", *f.NullFormat)
		clauses = append(clauses, FormatProperties(props, "TBLPROPERTIES "))
	}
	return clauses, nil
}

// ParquetFormat is a columnar binary file.
type ParquetFormat struct {
	Path string
}

// FormatName implements StorageFormat.
func (f *ParquetFormat) FormatName() string { return "PARQUET" }

// Location implements StorageFormat.
func (f *ParquetFormat) Location() string { return f.Path }

// Clauses implements StorageFormat.
func (f *ParquetFormat) Clauses() ([]string, error) { return f.clausesAt("") }

func (f *ParquetFormat) clausesAt(location string) ([]string, error) {
	loc, err := resolveLocation(f.Path, location)
	if err != nil {
		return nil, err
	}
	return []string{"STORED AS PARQUET", locationClause(loc)}, nil
}

// AvroFormat is an Avro file whose schema is embedded as a table property.
// Schema may be a JSON document (string, []byte, json.RawMessage) or any value
// that marshals to JSON.
type AvroFormat struct {
	Path   string
	Schema any
}

// FormatName implements StorageFormat.
func (f *AvroFormat) FormatName() string { return "AVRO" }

// Location implements StorageFormat.
func (f *AvroFormat) Location() string { return f.Path }

// Clauses implements StorageFormat.
func (f *AvroFormat) Clauses() ([]string, error) { return f.clausesAt("") }

func (f *AvroFormat) clausesAt(location string) ([]string, error) {
	loc, err := resolveLocation(f.Path, location)
	if err != nil {
		return nil, err
	}
	schema, err := AvroSchemaLiteral(f.Schema)
	if err != nil {
		return nil, err
	}
	props := Properties("avro.schema.literal", schema)
	return []string{
		"STORED AS AVRO",
		locationClause(loc),
		FormatProperties(props, "TBLPROPERTIES "),
	}, nil
}

// AvroSchemaLiteral renders schema as JSON with two-space indentation, sorted
// object keys, no trailing whitespace on any line and the escaping and number
// spelling of Python's json.dumps: non-ASCII and DEL as \uXXXX, \b and \f as
// short escapes, and non-integer numbers in float repr form (2.50 → 2.5).
func AvroSchemaLiteral(schema any) (string, error) {
	var raw []byte
	switch s := schema.(type) {
	case nil:
		return "", &MissingFieldError{Statement: KindCreateTableAvro, Field: "avro schema"}
	case string:
		raw = []byte(s)
	case []byte:
		raw = s
	case json.RawMessage:
		raw = s
	default:
		b, err := json.Marshal(s)
		if err != nil {
			return "", fmt.Errorf("marshal avro schema: %w", err)
		}
		raw = b
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return "", fmt.Errorf("invalid avro schema: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(normalizeNumbers(doc)); err != nil {
		return "", fmt.Errorf("encode avro schema: %w", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return pythonEscapes(strings.Join(lines, "\n")), nil
}

// normalizeNumbers respells decoded numbers the way Python prints them after
// json.loads: integers unchanged (except -0), everything else as a float.
func normalizeNumbers(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, e := range v {
			v[k] = normalizeNumbers(e)
		}
		return v
	case []any:
		for i, e := range v {
			v[i] = normalizeNumbers(e)
		}
		return v
	case json.Number:
		s := v.String()
		if !strings.ContainsAny(s, ".eE") {
			if s == "-0" {
				return json.Number("0")
			}
			return v
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return v
		}
		return json.Number(pythonFloat(f))
	default:
		return v
	}
}

// pythonFloat formats f like Python's float repr: shortest round-trip digits,
// positional notation for exponents in [-4, 16) with a mandatory fraction.
func pythonFloat(f float64) string {
	if f == 0 {
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	mant, expPart, _ := strings.Cut(sci, "e")
	exp, _ := strconv.Atoi(expPart)
	if exp < -4 || exp >= 16 {
		return sci
	}

	sign := ""
	if strings.HasPrefix(mant, "-") {
		sign, mant = "-", mant[1:]
	}
	digits := strings.Replace(mant, ".", "", 1)
	point := exp + 1

	switch {
	case point <= 0:
		return sign + "0." + strings.Repeat("0", -point) + digits
	case point >= len(digits):
		return sign + digits + strings.Repeat("0", point-len(digits)) + ".0"
	default:
		return sign + digits[:point] + "." + digits[point:]
	}
}

// pythonEscapes rewrites encoder output to Python's ensure_ascii form. Escape
// sequences are copied whole so an escaped backslash is never reinterpreted.
func pythonEscapes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] == '\\' && i+1 < len(s) {
			if s[i+1] == 'u' && i+6 <= len(s) {
				switch s[i+2 : i+6] {
				case "0008":
					b.WriteString(`\b`)
					i += 6
					continue
				case "000c", "000C":
					b.WriteString(`\f`)
					i += 6
					continue
				}
			}
			b.WriteString(s[i : i+2])
			i += 2
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch {
		case r == 0x7f:
			b.WriteString(`\u007f`)
		case r < 0x80:
			b.WriteRune(r)
		case r <= 0xFFFF:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			r -= 0x10000
			fmt.Fprintf(&b, `\u%04x\u%04x`, 0xD800+(r>>10), 0xDC00+(r&0x3FF))
		}
	}
	return b.String()
}
