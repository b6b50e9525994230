package models

// LoadAverage holds the 1/5/15-minute load averages.
type LoadAverage struct {
	Load1  float64 `json:"load1"`
	Load5  float64 `json:"load5"`
	Load15 float64 `json:"load15"`
}

// CPUStatus represents CPU utilization at one point in time.
// LoadAvg is nil (JSON null) on platforms without a load average;
// absence is never reported as zero.
type CPUStatus struct {
	UsagePercent  float64      `json:"usage_percent"`
	PerCore       []float64    `json:"per_core"`
	CoreCount     int          `json:"core_count"`
	PhysicalCount int          `json:"core_count_physical"`
	LoadAvg       *LoadAverage `json:"load_avg"`
}
