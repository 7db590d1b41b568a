package ddl

import "strings"

// DefaultCachePool is the pool CacheTable uses when Pool is empty.
const DefaultCachePool = "default"

// LoadData moves a data file into a table, optionally into one partition.
type LoadData struct {
	Path      string
	Table     string
	Database  string
	Partition *PartitionSpec
	Overwrite bool
}

// Kind implements Statement.
func (s LoadData) Kind() Kind { return KindLoadData }

func (s LoadData) statementNode() {}

// Compile implements Statement.
func (s LoadData) Compile() (string, error) {
	if err := required(s.Kind(), "path", s.Path); err != nil {
		return "", err
	}
	if err := required(s.Kind(), "table name", s.Table); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("LOAD DATA INPATH ")
	b.WriteString(QuoteLiteral(s.Path))
	b.WriteString(" ")
	if s.Overwrite {
		b.WriteString("OVERWRITE ")
	}
	b.WriteString("INTO TABLE ")
	b.WriteString(ScopedName(s.Table, s.Database))
	if s.Partition != nil {
		part, err := FormatPartition(s.Partition)
		if err != nil {
			return "", err
		}
		b.WriteString(" ")
		b.WriteString(part)
	}
	return b.String(), nil
}

// CacheTable pins a table into a cache pool.
type CacheTable struct {
	Table    string
	Database string
	Pool     string
}

// Kind implements Statement.
func (s CacheTable) Kind() Kind { return KindCacheTable }

func (s CacheTable) statementNode() {}

// Compile implements Statement.
func (s CacheTable) Compile() (string, error) {
	if err := required(s.Kind(), "table name", s.Table); err != nil {
		return "", err
	}
	pool := s.Pool
	if pool == "" {
		pool = DefaultCachePool
	}
	return "ALTER TABLE " + ScopedName(s.Table, s.Database) + " SET CACHED IN " + QuoteLiteral(pool), nil
}
