package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportRecord(t *testing.T) {
	var r Report

	r.Record("Ticket", 10, 10)
	r.Record("Refund", 5, 3)
	r.Record("Ticket", 4, 4)

	ticket, ok := r.Table("Ticket")
	require.True(t, ok)
	assert.Equal(t, TableStat{Table: "Ticket", Requested: 14, Produced: 14}, ticket)
	assert.False(t, ticket.Degraded())

	refund, ok := r.Table("Refund")
	require.True(t, ok)
	assert.True(t, refund.Degraded())

	assert.Len(t, r.Tables, 2)
	assert.Equal(t, 17, r.TotalRows)

	_, ok = r.Table("Extension")
	assert.False(t, ok)
}

func TestReportWarn(t *testing.T) {
	var r Report
	r.Warn("DriverList", "pair space exhausted")

	require.Len(t, r.Warnings, 1)
	assert.Equal(t, "DriverList", r.Warnings[0].Table)
}
