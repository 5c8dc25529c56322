package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/checkbook-etl/pkg/etl"
	"github.com/iota-uz/checkbook-etl/pkg/load"
)

func TestParseConflictPolicy(t *testing.T) {
	p, err := parseConflictPolicy("skip")
	require.NoError(t, err)
	require.Equal(t, load.Skip, p)

	p, err = parseConflictPolicy("replace")
	require.NoError(t, err)
	require.Equal(t, load.Replace, p)

	_, err = parseConflictPolicy("merge")
	require.Error(t, err)
}

func TestParseDuplicatePolicy(t *testing.T) {
	p, err := parseDuplicatePolicy("first-wins")
	require.NoError(t, err)
	require.Equal(t, etl.FirstWins, p)

	p, err = parseDuplicatePolicy("last-wins")
	require.NoError(t, err)
	require.Equal(t, etl.LastWins, p)

	_, err = parseDuplicatePolicy("both")
	require.Error(t, err)
}

func TestImportError(t *testing.T) {
	require.NoError(t, importError(0, 0))

	err := importError(1, 0)
	require.Error(t, err)
	require.Equal(t, exitInput, exitCodeOf(err))

	err = importError(0, 250)
	require.Error(t, err)
	require.NotEqual(t, exitOK, exitCodeOf(err))
}
