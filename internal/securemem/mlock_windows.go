//go:build windows

package securemem

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// mlock attempts to lock the memory region containing data.
func mlock(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	return windows.VirtualLock(uintptr(unsafe.Pointer(&data[0])), uintptr(len(data))) == nil
}

// munlock unlocks the memory region.
func munlock(data []byte) {
	if len(data) == 0 {
		return
	}
	_ = windows.VirtualUnlock(uintptr(unsafe.Pointer(&data[0])), uintptr(len(data)))
}

// LockAll has no process-wide equivalent of mlockall on Windows; each
// Buffer is still individually VirtualLock'ed by mlock above.
func LockAll() (ok bool, reason string) {
	return false, "page locking is per-allocation on Windows (no mlockall equivalent)"
}

// DropPrivileges is a no-op on Windows; ssss.c's setuid handling has
// no Windows analogue.
func DropPrivileges() error {
	return nil
}
