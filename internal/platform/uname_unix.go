//go:build !windows

package platform

import "golang.org/x/sys/unix"

// kernelRelease returns the uname release string, or "" if uname fails.
func kernelRelease() string {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return ""
	}
	return unix.ByteSliceToString(uts.Release[:])
}
