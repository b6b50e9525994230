package models

// DiskStatus represents usage of the filesystem mounted at Path.
type DiskStatus struct {
	Path         string  `json:"path"`
	Total        uint64  `json:"total_bytes"`
	Used         uint64  `json:"used_bytes"`
	Free         uint64  `json:"free_bytes"`
	UsagePercent float64 `json:"usage_percent"`
	Filesystem   string  `json:"filesystem"`
}
