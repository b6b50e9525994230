package models

import "time"

// Snapshot is a point-in-time aggregate of all metric sections. A section
// whose collector failed is left nil and noted in Errors under its section
// name, so a single bad collector degrades its section instead of the
// whole response.
type Snapshot struct {
	Timestamp time.Time         `json:"timestamp"`
	System    *SystemInfo       `json:"system,omitempty"`
	CPU       *CPUStatus        `json:"cpu,omitempty"`
	Memory    *MemoryStatus     `json:"memory,omitempty"`
	Disk      *DiskStatus       `json:"disk,omitempty"`
	Network   *NetworkStatus    `json:"network,omitempty"`
	Processes []ProcessSample   `json:"top_processes,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
}
