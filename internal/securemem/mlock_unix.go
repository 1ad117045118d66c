//go:build !windows

package securemem

import (
	"golang.org/x/sys/unix"
)

// mlock attempts to lock the memory region containing data.
func mlock(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	return unix.Mlock(data) == nil
}

// munlock unlocks the memory region.
func munlock(data []byte) {
	if len(data) == 0 {
		return
	}
	_ = unix.Munlock(data)
}

// LockAll requests that all of the process's current and future pages
// be locked into RAM, mirroring ssss.c's mlockall(MCL_CURRENT|MCL_FUTURE)
// in main(). It returns a human-readable reason on failure so the
// caller can decide (per the -M flag) whether to warn or abort.
func LockAll() (ok bool, reason string) {
	err := unix.Mlockall(unix.MCL_CURRENT | unix.MCL_FUTURE)
	if err == nil {
		return true, ""
	}
	switch err {
	case unix.ENOMEM:
		return false, "couldn't get memory lock (ENOMEM, try to adjust RLIMIT_MEMLOCK)"
	case unix.EPERM:
		return false, "couldn't get memory lock (EPERM, try running as root)"
	case unix.ENOSYS:
		return false, "couldn't get memory lock (ENOSYS, kernel doesn't allow page locking)"
	default:
		return false, "couldn't get memory lock: " + err.Error()
	}
}

// DropPrivileges drops saved-set-UID privileges if the process was
// invoked setuid, mirroring ssss.c's seteuid(getuid()) call. It is a
// best-effort call: failures are reported but not fatal, since most
// invocations are not setuid at all.
func DropPrivileges() error {
	uid := unix.Getuid()
	euid := unix.Geteuid()
	if uid == euid {
		return nil
	}
	return unix.Seteuid(uid)
}
