package modules

import (
	"time"

	"golang.org/x/sys/unix"
)

func readMemory() (memory, bool) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return memory{}, false
	}
	unit := uint64(info.Unit)
	if unit == 0 {
		unit = 1
	}
	return memory{
		total:  uint64(info.Totalram) * unit,
		free:   uint64(info.Freeram) * unit,
		uptime: time.Duration(info.Uptime) * time.Second,
	}, true
}
