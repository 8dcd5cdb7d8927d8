package sqlgen

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chybatronik/busTicketSeed/internal/validation"
)

type valueKind int

const (
	kindNull valueKind = iota
	kindInt
	kindText
	kindMoney
	kindTime
)

// Value is one SQL literal of an INSERT statement
type Value struct {
	kind  valueKind
	i     int64
	s     string
	money decimal.Decimal
	t     time.Time
}

// Null is the SQL NULL literal
func Null() Value {
	return Value{kind: kindNull}
}

// Int is an integer literal
func Int(i int64) Value {
	return Value{kind: kindInt, i: i}
}

// NullableInt is an integer literal, or NULL when i is nil
func NullableInt(i *int64) Value {
	if i == nil {
		return Null()
	}
	return Int(*i)
}

// Text is a quoted string literal
func Text(s string) Value {
	return Value{kind: kindText, s: s}
}

// Money is a currency literal with exactly two decimals
func Money(d decimal.Decimal) Value {
	return Value{kind: kindMoney, money: d}
}

// Time is a timestamp literal at second granularity
func Time(t time.Time) Value {
	return Value{kind: kindTime, t: t}
}

// Render formats the value for the dialect
func (v Value) Render(d Dialect) string {
	switch v.kind {
	case kindInt:
		return strconv.FormatInt(v.i, 10)
	case kindText:
		return QuoteText(v.s)
	case kindMoney:
		return v.money.StringFixed(2)
	case kindTime:
		return d.Timestamp(v.t)
	default:
		return "NULL"
	}
}

// QuoteText sanitizes s and wraps it in single quotes, doubling embedded quotes
func QuoteText(s string) string {
	return "'" + strings.ReplaceAll(validation.Sanitize(s), "'", "''") + "'"
}
