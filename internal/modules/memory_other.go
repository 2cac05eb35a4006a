//go:build !linux

package modules

func readMemory() (memory, bool) { return memory{}, false }
