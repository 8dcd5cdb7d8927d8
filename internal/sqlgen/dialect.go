// Package sqlgen renders generated rows as SQL INSERT statements.
package sqlgen

import (
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

// Supported dialect names
const (
	DialectOracle   = "oracle"
	DialectPostgres = "postgres"
)

// Dialects lists the accepted dialect names
var Dialects = []string{DialectOracle, DialectPostgres}

const (
	timestampLayout = "2006-01-02 15:04:05"
	timestampFormat = "YYYY-MM-DD HH24:MI:SS"
)

// Dialect covers the parts of SQL that differ between target databases
type Dialect interface {
	Name() string
	Timestamp(t time.Time) string
	QuoteIdent(name string) string
}

// ParseDialect returns the dialect with the given name
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case DialectOracle, "":
		return oracle{}, nil
	case DialectPostgres:
		return postgres{}, nil
	default:
		return nil, fmt.Errorf("unsupported SQL dialect %q", name)
	}
}

type oracle struct{}

func (oracle) Name() string { return DialectOracle }

func (oracle) Timestamp(t time.Time) string {
	return fmt.Sprintf("TO_DATE('%s', '%s')", t.UTC().Format(timestampLayout), timestampFormat)
}

func (oracle) QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

type postgres struct{}

func (postgres) Name() string { return DialectPostgres }

func (postgres) Timestamp(t time.Time) string {
	return fmt.Sprintf("TO_TIMESTAMP('%s', '%s')", t.UTC().Format(timestampLayout), timestampFormat)
}

func (postgres) QuoteIdent(name string) string {
	return pgx.Identifier{name}.Sanitize()
}
