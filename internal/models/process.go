package models

// ProcessSample is one process's point-in-time usage.
type ProcessSample struct {
	PID        int32   `json:"pid"`
	Name       string  `json:"name"`
	CPUPercent float64 `json:"cpu_percent"`
	MemPercent float32 `json:"memory_percent"`
	Status     string  `json:"status"`
}
