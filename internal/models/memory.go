package models

// RAMStatus represents physical memory usage in bytes.
type RAMStatus struct {
	Total        uint64  `json:"total_bytes"`
	Used         uint64  `json:"used_bytes"`
	Available    uint64  `json:"available_bytes"`
	UsagePercent float64 `json:"usage_percent"`
}

// SwapStatus represents swap usage in bytes.
type SwapStatus struct {
	Total        uint64  `json:"total_bytes"`
	Used         uint64  `json:"used_bytes"`
	UsagePercent float64 `json:"usage_percent"`
}

// MemoryStatus combines RAM and swap usage.
type MemoryStatus struct {
	RAM  RAMStatus  `json:"ram"`
	Swap SwapStatus `json:"swap"`
}
