package pid_test

import (
	"os"
	"strconv"
	"testing"

	"codeberg.org/mutker/actelemetry/internal/errors"
	"codeberg.org/mutker/actelemetry/internal/pid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTempDir(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TMPDIR", dir)
	t.Setenv("TMP", dir)
	t.Setenv("TEMP", dir)
}

func TestWriteAndRemove(t *testing.T) {
	setTempDir(t)

	require.NoError(t, pid.Write())

	data, err := os.ReadFile(pid.Path())
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid()), string(data))

	require.NoError(t, pid.Remove())
	_, err = os.Stat(pid.Path())
	assert.True(t, os.IsNotExist(err))

	// removing twice is fine
	require.NoError(t, pid.Remove())
}

func TestWriteOwnPIDIsNotRunning(t *testing.T) {
	setTempDir(t)

	require.NoError(t, pid.Write())
	require.NoError(t, pid.Write())
}

func TestWriteAlreadyRunning(t *testing.T) {
	setTempDir(t)

	// the parent process (the test runner) is alive
	require.NoError(t, os.WriteFile(pid.Path(), []byte(strconv.Itoa(os.Getppid())), 0o600))

	err := pid.Write()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrAlreadyRunning))
}

func TestWriteStaleFile(t *testing.T) {
	setTempDir(t)

	require.NoError(t, os.WriteFile(pid.Path(), []byte("not a pid"), 0o600))
	require.NoError(t, pid.Write())

	data, err := os.ReadFile(pid.Path())
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid()), string(data))
}
