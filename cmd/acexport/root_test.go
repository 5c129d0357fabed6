package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sessionCSV = `lap_time_sec,speed_kmh,gas,brake,steer,gear,fuel,lap_time_str,completed_laps,current_lap,distance_m
0.010,10.00,0.500,0.000,0.000,1,30.00,0:00:010,0,1,0.00
0.020,20.00,1.000,0.000,0.000,1,30.00,0:00:020,0,1,0.04
0.030,30.00,0.000,0.750,0.000,2,30.00,0:00:000,1,2,0.10
`

func runRoot(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	return rootCmd.Execute()
}

func writeSession(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.csv")
	require.NoError(t, os.WriteFile(path, []byte(sessionCSV), 0o600))
	return path
}

func TestLapsCommand(t *testing.T) {
	input := writeSession(t)
	output := filepath.Join(t.TempDir(), "laps.csv")

	require.NoError(t, runRoot(t, "laps", "--input", input, "--output", output))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "current_lap,row_num,gas,brake\n1,1,0.5,0\n1,2,1,0\n2,1,0,0.75\n", string(data))
}

func TestSummaryCommand(t *testing.T) {
	input := writeSession(t)
	output := filepath.Join(t.TempDir(), "summary.csv")

	require.NoError(t, runRoot(t, "summary", "-i", input, "-o", output))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 3)
}

func TestLapsCommandMissingInput(t *testing.T) {
	err := runRoot(t, "laps", "--input", filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}
