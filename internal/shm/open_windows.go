package shm

import (
	"unsafe"

	"codeberg.org/mutker/actelemetry/internal/errors"
	"golang.org/x/sys/windows"
)

// Open maps the named file mapping read-only. The mapping must already exist;
// one created by this call means the publisher is not running.
func Open(name string, size int) (Region, error) {
	errFactory := errors.New()

	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, errFactory.Wrap(ErrOpenFailed, err)
	}

	handle, err := windows.CreateFileMapping(
		windows.InvalidHandle, nil, windows.PAGE_READWRITE, 0, uint32(size), namePtr)
	switch {
	case handle == 0:
		return nil, errFactory.Wrap(ErrOpenFailed, err)
	case err == nil:
		windows.CloseHandle(handle)
		return nil, errFactory.WithData(ErrNotFound, name)
	case err != windows.ERROR_ALREADY_EXISTS:
		windows.CloseHandle(handle)
		return nil, errFactory.Wrap(ErrOpenFailed, err)
	}

	addr, err := windows.MapViewOfFile(handle, windows.FILE_MAP_READ, 0, 0, uintptr(size))
	if err != nil {
		windows.CloseHandle(handle)
		return nil, errFactory.Wrap(ErrMapFailed, err)
	}

	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)

	return &region{
		name: name,
		data: data,
		release: func() error {
			if err := windows.UnmapViewOfFile(addr); err != nil {
				windows.CloseHandle(handle)
				return err
			}
			return windows.CloseHandle(handle)
		},
	}, nil
}
