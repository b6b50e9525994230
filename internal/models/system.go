package models

import "time"

// SystemInfo holds static host information.
type SystemInfo struct {
	Hostname        string    `json:"hostname"`
	OS              string    `json:"os"`
	Platform        string    `json:"platform"`
	PlatformVersion string    `json:"platform_version"`
	KernelVersion   string    `json:"kernel_version"`
	Architecture    string    `json:"architecture"`
	GoVersion       string    `json:"go_version"`
	BootTime        time.Time `json:"boot_time"`
	UptimeSeconds   uint64    `json:"uptime_seconds"`
	ProcessCount    uint64    `json:"process_count"`
}
