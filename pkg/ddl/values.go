package ddl

import (
	orderedmap "github.com/pb33f/ordered-map/v2"

	"github.com/leapstack-labs/leapddl/pkg/core"
)

// PropertyMap is an insertion-ordered string map used for TBLPROPERTIES and
// SERDEPROPERTIES clauses. A nil *PropertyMap is treated as empty.
type PropertyMap struct {
	m *orderedmap.OrderedMap[string, string]
}

// NewPropertyMap returns an empty map.
func NewPropertyMap() *PropertyMap {
	return &PropertyMap{m: orderedmap.New[string, string]()}
}

// Properties builds a map from alternating keys and values.
// A trailing key without a value is ignored.
func Properties(kv ...string) *PropertyMap {
	p := NewPropertyMap()
	for i := 0; i+1 < len(kv); i += 2 {
		p.Set(kv[i], kv[i+1])
	}
	return p
}

// Set stores value under key. Re-setting a key keeps its original position.
func (p *PropertyMap) Set(key, value string) *PropertyMap {
	if p.m == nil {
		p.m = orderedmap.New[string, string]()
	}
	p.m.Set(key, value)
	return p
}

// Get returns the value stored under key.
func (p *PropertyMap) Get(key string) (string, bool) {
	if p.Len() == 0 {
		return "", false
	}
	return p.m.Get(key)
}

// Len returns the number of entries.
func (p *PropertyMap) Len() int {
	if p == nil || p.m == nil {
		return 0
	}
	return p.m.Len()
}

// Each calls fn for every entry in insertion order.
func (p *PropertyMap) Each(fn func(key, value string)) {
	if p.Len() == 0 {
		return
	}
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// PartitionSpec names one partition of a table: the declared partition columns
// and the literal value for each key. Keys with no value render bare, which
// selects a dynamic partition.
type PartitionSpec struct {
	Schema *core.Schema
	values *orderedmap.OrderedMap[string, any]
}

// NewPartition returns an empty spec over the given partition columns.
func NewPartition(schema *core.Schema) *PartitionSpec {
	return &PartitionSpec{Schema: schema, values: orderedmap.New[string, any]()}
}

// PartitionValues assigns values to the schema's columns by position.
// Extra values are ignored.
func PartitionValues(schema *core.Schema, values ...any) *PartitionSpec {
	p := NewPartition(schema)
	for i, v := range values {
		if i >= schema.Len() {
			break
		}
		p.Set(schema.Columns[i].Name, v)
	}
	return p
}

// Set assigns the literal value for key.
func (p *PartitionSpec) Set(key string, value any) *PartitionSpec {
	if p.values == nil {
		p.values = orderedmap.New[string, any]()
	}
	p.values.Set(key, value)
	return p
}

// Value returns the value assigned to key.
func (p *PartitionSpec) Value(key string) (any, bool) {
	if p == nil || p.values == nil {
		return nil, false
	}
	return p.values.Get(key)
}

// Keys returns the assigned keys in insertion order.
func (p *PartitionSpec) Keys() []string {
	if p == nil || p.values == nil {
		return nil
	}
	keys := make([]string, 0, p.values.Len())
	for pair := p.values.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}
