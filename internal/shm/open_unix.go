//go:build !windows

package shm

import (
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/mutker/actelemetry/internal/errors"
	"golang.org/x/sys/unix"
)

// Dir holds POSIX shared memory objects
var Dir = "/dev/shm"

// Path returns the file backing a Windows style segment name
func Path(name string) string {
	name = strings.TrimPrefix(name, `Local\`)
	name = strings.TrimPrefix(name, `Global\`)

	return filepath.Join(Dir, filepath.Base(strings.ReplaceAll(name, `\`, "/")))
}

// Open maps the shared memory object for name read-only
func Open(name string, size int) (Region, error) {
	errFactory := errors.New()
	path := Path(name)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errFactory.WithData(ErrNotFound, path)
		}
		return nil, errFactory.Wrap(ErrOpenFailed, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errFactory.Wrap(ErrOpenFailed, err)
	}
	if info.Size() < int64(size) {
		return nil, errFactory.WithData(ErrRegionSize, struct {
			Path string
			Have int64
			Want int
		}{
			Path: path,
			Have: info.Size(),
			Want: size,
		})
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, errFactory.Wrap(ErrMapFailed, err)
	}

	return &region{
		name: name,
		data: data,
		release: func() error {
			return unix.Munmap(data)
		},
	}, nil
}
