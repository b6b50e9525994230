package probe

import (
	"context"
	"fmt"
	"os"
	"time"

	"hostpulse/internal/models"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	gnet "github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
)

// GopsutilProbe implements SystemProbe on gopsutil.
type GopsutilProbe struct{}

// NewGopsutilProbe returns the production SystemProbe.
func NewGopsutilProbe() *GopsutilProbe {
	return &GopsutilProbe{}
}

func (g *GopsutilProbe) CPUPercent(ctx context.Context, interval time.Duration, percpu bool) ([]float64, error) {
	return cpu.PercentWithContext(ctx, interval, percpu)
}

func (g *GopsutilProbe) CPUCounts(ctx context.Context, logical bool) (int, error) {
	return cpu.CountsWithContext(ctx, logical)
}

func (g *GopsutilProbe) LoadAverage(ctx context.Context) (*models.LoadAverage, error) {
	avg, err := load.AvgWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &models.LoadAverage{
		Load1:  avg.Load1,
		Load5:  avg.Load5,
		Load15: avg.Load15,
	}, nil
}

func (g *GopsutilProbe) VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error) {
	return mem.VirtualMemoryWithContext(ctx)
}

func (g *GopsutilProbe) SwapMemory(ctx context.Context) (*mem.SwapMemoryStat, error) {
	return mem.SwapMemoryWithContext(ctx)
}

func (g *GopsutilProbe) DiskUsage(ctx context.Context, path string) (*disk.UsageStat, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		return nil, err
	}
	return disk.UsageWithContext(ctx, path)
}

func (g *GopsutilProbe) NetCounters(ctx context.Context) (*gnet.IOCountersStat, error) {
	counters, err := gnet.IOCountersWithContext(ctx, false)
	if err != nil {
		return nil, err
	}
	if len(counters) == 0 {
		return nil, fmt.Errorf("%w: no network counters", ErrUnavailable)
	}
	return &counters[0], nil
}

func (g *GopsutilProbe) Processes(ctx context.Context) ([]models.ProcessSample, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	samples := make([]models.ProcessSample, 0, len(procs))
	for _, p := range procs {
		// A process that exits or denies access between enumeration and
		// inspection is skipped; one vanished process must not fail the
		// whole call.
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}

		cpuPercent, err := p.CPUPercentWithContext(ctx)
		if err != nil {
			continue
		}

		memPercent, err := p.MemoryPercentWithContext(ctx)
		if err != nil {
			memPercent = 0
		}

		status := "unknown"
		if st, err := p.StatusWithContext(ctx); err == nil && len(st) > 0 {
			status = st[0]
		}

		samples = append(samples, models.ProcessSample{
			PID:        p.Pid,
			Name:       name,
			CPUPercent: cpuPercent,
			MemPercent: memPercent,
			Status:     status,
		})
	}

	return samples, nil
}

func (g *GopsutilProbe) HostInfo(ctx context.Context) (*host.InfoStat, error) {
	return host.InfoWithContext(ctx)
}
