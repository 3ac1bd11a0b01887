//go:build linux

package main

import "golang.org/x/sys/unix"

// totalRAM probes the machine's physical memory for sizing the memory
// cache tier. Returns zero when the probe fails; the parser then assumes
// its documented default.
func totalRAM() uint64 {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0
	}
	return uint64(info.Totalram) * uint64(info.Unit)
}
