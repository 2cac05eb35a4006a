//go:build windows

package platform

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// kernelRelease returns the Windows version as major.minor.build.
func kernelRelease() string {
	v := windows.RtlGetVersion()
	return fmt.Sprintf("%d.%d.%d", v.MajorVersion, v.MinorVersion, v.BuildNumber)
}
