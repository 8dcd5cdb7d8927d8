package generator

import (
	"bufio"
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/chybatronik/busTicketSeed/internal/config"
	"github.com/chybatronik/busTicketSeed/internal/types"
)

// row is one parsed INSERT statement keyed by column name
type row map[string]string

// dump is a parsed script: rows per table in output order
type dump map[string][]row

func zeroCounts(cfg *config.Config) {
	cfg.Counts = config.CountsConfig{}
}

func smallConfig() *config.Config {
	cfg := config.Default()
	cfg.Counts = config.CountsConfig{
		Companies:         3,
		Drivers:           10,
		Staff:             10,
		Shops:             5,
		Services:          9,
		Members:           50,
		Campaigns:         4,
		Promotions:        20,
		Buses:             5,
		Payments:          200,
		Schedules:         40,
		Bookings:          150,
		RentalCollections: 20,
		ServiceDetails:    20,
		DriverListEntries: 60,
		StaffAllocations:  30,
		Refunds:           40,
		Extensions:        40,
		AvailableTickets:  100,
	}
	cfg.Booking.PromotionRate = 0.5
	cfg.Generation.Seed = 42
	return cfg
}

func run(t *testing.T, cfg *config.Config, opts ...Option) (string, *types.Report, *Generator) {
	t.Helper()
	require.NoError(t, config.Validate(cfg))

	var buf bytes.Buffer
	g, err := New(cfg, &buf, nil, opts...)
	require.NoError(t, err)

	report, err := g.Run(context.Background())
	require.NoError(t, err)
	return buf.String(), report, g
}

func parseDump(t *testing.T, script string) dump {
	t.Helper()
	out := make(dump)

	sc := bufio.NewScanner(strings.NewReader(script))
	sc.Buffer(make([]byte, 1024*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "INSERT INTO ") {
			continue
		}
		rest := strings.TrimPrefix(line, "INSERT INTO ")
		open := strings.Index(rest, " (")
		table := strings.Trim(rest[:open], `"`)

		rest = rest[open+2:]
		closeCols := strings.Index(rest, ") VALUES (")
		cols := strings.Split(rest[:closeCols], ", ")
		vals := splitValues(strings.TrimSuffix(rest[closeCols+len(") VALUES ("):], ");"))
		require.Len(t, vals, len(cols), "line %q", line)

		r := make(row, len(cols))
		for i, c := range cols {
			r[strings.Trim(c, `"`)] = vals[i]
		}
		out[table] = append(out[table], r)
	}
	require.NoError(t, sc.Err())
	return out
}

// splitValues splits a VALUES list on top-level commas, honoring quotes and parentheses
func splitValues(s string) []string {
	var (
		parts  []string
		cur    strings.Builder
		quoted bool
		depth  int
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\'' && quoted && i+1 < len(s) && s[i+1] == '\'':
			cur.WriteString("''")
			i++
			continue
		case c == '\'':
			quoted = !quoted
		case !quoted && c == '(':
			depth++
		case !quoted && c == ')':
			depth--
		case !quoted && depth == 0 && c == ',':
			parts = append(parts, strings.TrimSpace(cur.String()))
			cur.Reset()
			continue
		}
		cur.WriteByte(c)
	}
	return append(parts, strings.TrimSpace(cur.String()))
}

func ts(t *testing.T, v string) time.Time {
	t.Helper()
	start := strings.Index(v, "'")
	end := strings.Index(v[start+1:], "'")
	require.True(t, start >= 0 && end > 0, "not a timestamp literal: %s", v)
	parsed, err := time.Parse("2006-01-02 15:04:05", v[start+1:start+1+end])
	require.NoError(t, err)
	return parsed
}

func num(t *testing.T, v string) int64 {
	t.Helper()
	n, err := strconv.ParseInt(v, 10, 64)
	require.NoError(t, err, "not an integer: %s", v)
	return n
}

func dec(t *testing.T, v string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(v)
	require.NoError(t, err, "not a decimal: %s", v)
	return d
}

func text(v string) string {
	return strings.ReplaceAll(strings.Trim(v, "'"), "''", "'")
}

func idSet(t *testing.T, rows []row, col string) map[int64]bool {
	t.Helper()
	set := make(map[int64]bool, len(rows))
	for _, r := range rows {
		set[num(t, r[col])] = true
	}
	return set
}
