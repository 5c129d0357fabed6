//go:build !windows

package shm_test

import (
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/mutker/actelemetry/internal/errors"
	"codeberg.org/mutker/actelemetry/internal/shm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withShmDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	old := shm.Dir
	shm.Dir = dir
	t.Cleanup(func() { shm.Dir = old })

	return dir
}

func TestPath(t *testing.T) {
	dir := withShmDir(t)

	assert.Equal(t, filepath.Join(dir, "acpmf_physics"), shm.Path(`Local\acpmf_physics`))
	assert.Equal(t, filepath.Join(dir, "acpmf_graphics"), shm.Path("acpmf_graphics"))
}

func TestOpenMapsFile(t *testing.T) {
	dir := withShmDir(t)

	content := make([]byte, 64)
	for i := range content {
		content[i] = byte(i)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "acpmf_physics"), content, 0o600))

	r, err := shm.Open(`Local\acpmf_physics`, 32)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, 32, r.Size())

	buf := make([]byte, 4)
	_, err = r.ReadAt(buf, 28)
	require.NoError(t, err)
	assert.Equal(t, []byte{28, 29, 30, 31}, buf)
}

func TestOpenMissing(t *testing.T) {
	withShmDir(t)

	_, err := shm.Open(`Local\acpmf_physics`, 32)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, shm.ErrNotFound))
}

func TestOpenTooSmall(t *testing.T) {
	dir := withShmDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "acpmf_graphics"), make([]byte, 8), 0o600))

	_, err := shm.Open(`Local\acpmf_graphics`, 256)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, shm.ErrRegionSize))
}
