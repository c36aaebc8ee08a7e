package metrics

import (
	"runtime"
)

// SysHealth represents real-time process metrics.
type SysHealth struct {
	AllocMB      uint64 `json:"allocMb"`
	TotalAllocMB uint64 `json:"totalAllocMb"`
	SysMB        uint64 `json:"sysMb"`
	NumGC        uint32 `json:"numGc"`
	Goroutines   int    `json:"goroutines"`
}

// GetSysHealth collects real-time health data.
func GetSysHealth() SysHealth {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return SysHealth{
		AllocMB:      m.Alloc / 1024 / 1024,
		TotalAllocMB: m.TotalAlloc / 1024 / 1024,
		SysMB:        m.Sys / 1024 / 1024,
		NumGC:        m.NumGC,
		Goroutines:   runtime.NumGoroutine(),
	}
}
