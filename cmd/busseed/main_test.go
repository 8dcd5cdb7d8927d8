package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chybatronik/busTicketSeed/pkg/errors"
)

// smallEnv keeps generation fast by shrinking every table
func smallEnv(t *testing.T) {
	t.Helper()
	counts := map[string]string{
		"NUM_COMPANIES":           "2",
		"NUM_DRIVERS":             "4",
		"NUM_STAFF":               "4",
		"NUM_SHOPS":               "2",
		"NUM_SERVICES":            "3",
		"NUM_MEMBERS":             "10",
		"NUM_CAMPAIGNS":           "2",
		"NUM_PROMOTIONS":          "4",
		"NUM_BUSES":               "3",
		"NUM_PAYMENTS":            "20",
		"NUM_SCHEDULES":           "10",
		"NUM_BOOKINGS":            "15",
		"NUM_RENTAL_COLLECTIONS":  "3",
		"NUM_SERVICE_DETAILS":     "3",
		"NUM_DRIVER_LIST_ENTRIES": "8",
		"NUM_STAFF_ALLOCATIONS":   "4",
		"NUM_REFUNDS":             "3",
		"NUM_EXTENSIONS":          "3",
		"NUM_AVAILABLE_TICKETS":   "5",
		"LOG_LEVEL":               "error",
	}
	for k, v := range counts {
		t.Setenv(k, v)
	}
}

func execute(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestGenerateWritesFile(t *testing.T) {
	smallEnv(t)
	path := filepath.Join(t.TempDir(), "populate.sql")

	_, _, err := execute("generate", "--output", path, "--seed", "11", "--env-file", filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	script := string(data)
	assert.Contains(t, script, "-- Data for Company Table\n")
	assert.Contains(t, script, "-- Dialect: oracle, Seed: 11\n")
	assert.Contains(t, script, "INSERT INTO Booking (")

	// No temporary files are left next to the script
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestGeneratedScriptIsWorldReadable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on windows")
	}
	smallEnv(t)
	path := filepath.Join(t.TempDir(), "populate.sql")

	_, _, err := execute("generate", "--output", path, "--seed", "5")
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestGenerateToStdout(t *testing.T) {
	smallEnv(t)

	stdout, _, err := execute("generate", "--output", "-", "--seed", "3", "--dialect", "postgres", "--quote-identifiers")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, "-- ====="))
	assert.Contains(t, stdout, `INSERT INTO "Company" (`)
	assert.Contains(t, stdout, "TO_TIMESTAMP('")
}

func TestGenerateRejectsInvalidConfiguration(t *testing.T) {
	smallEnv(t)
	path := filepath.Join(t.TempDir(), "populate.sql")

	_, _, err := execute("generate", "--output", path, "--dialect", "sqlite")
	require.Error(t, err)
	assert.Equal(t, errors.ExitConfigInvalid, errors.ExitCode(err))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerateFailsOnUnwritableDirectory(t *testing.T) {
	smallEnv(t)
	path := filepath.Join(t.TempDir(), "missing", "populate.sql")

	_, _, err := execute("generate", "--output", path, "--seed", "1")
	require.Error(t, err)
	assert.Equal(t, errors.ExitOutput, errors.ExitCode(err))
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute("version")
	require.NoError(t, err)
	assert.Equal(t, "busseed dev\n", stdout)
}
