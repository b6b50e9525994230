// Package probe is the OS-facing boundary of the service. Everything that
// queries the kernel goes through the SystemProbe interface so the
// aggregator can be exercised against a fake in tests.
package probe

import (
	"context"
	"errors"
	"time"

	"hostpulse/internal/models"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	gnet "github.com/shirou/gopsutil/v3/net"
)

// ErrPathNotFound reports a disk path that does not exist on the host.
var ErrPathNotFound = errors.New("path not found")

// ErrUnavailable reports a metric the platform does not provide. Callers
// represent it as an explicit absence, never as a zero value.
var ErrUnavailable = errors.New("metric unavailable on this platform")

// SystemProbe queries one metric category at a time from the operating
// system. Implementations must be safe for concurrent use.
type SystemProbe interface {
	// CPUPercent samples CPU utilization over the given interval. With
	// percpu false it returns a single aggregate value, otherwise one
	// value per logical core, ordered by core index.
	CPUPercent(ctx context.Context, interval time.Duration, percpu bool) ([]float64, error)

	// CPUCounts returns the logical or physical core count.
	CPUCounts(ctx context.Context, logical bool) (int, error)

	// LoadAverage returns the 1/5/15-minute load averages, or
	// ErrUnavailable where the platform has none.
	LoadAverage(ctx context.Context) (*models.LoadAverage, error)

	// VirtualMemory returns RAM usage.
	VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error)

	// SwapMemory returns swap usage.
	SwapMemory(ctx context.Context) (*mem.SwapMemoryStat, error)

	// DiskUsage returns usage of the filesystem mounted at path, or
	// ErrPathNotFound if path does not exist.
	DiskUsage(ctx context.Context, path string) (*disk.UsageStat, error)

	// NetCounters returns cumulative network counters aggregated across
	// all interfaces.
	NetCounters(ctx context.Context) (*gnet.IOCountersStat, error)

	// Processes enumerates live processes. Processes that vanish or deny
	// access mid-enumeration are skipped, never fatal. Order is
	// unspecified.
	Processes(ctx context.Context) ([]models.ProcessSample, error)

	// HostInfo returns static host information including boot time and
	// the current process count.
	HostInfo(ctx context.Context) (*host.InfoStat, error)
}
