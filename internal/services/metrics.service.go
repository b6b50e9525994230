package services

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"hostpulse/internal/models"
	"hostpulse/internal/probe"
)

// Number of processes embedded in a combined snapshot.
const snapshotProcessLimit = 5

// MetricsService is the metrics aggregator. Every collection pass queries
// the OS fresh through the injected probe; nothing is cached or shared
// between requests.
type MetricsService struct {
	probe          probe.SystemProbe
	sampleInterval time.Duration
}

// NewMetricsService builds an aggregator on top of the given probe.
// sampleInterval is how long CPU percent is sampled for; zero falls back
// to 100ms so the first call never reports a meaningless 0%.
func NewMetricsService(p probe.SystemProbe, sampleInterval time.Duration) *MetricsService {
	if sampleInterval <= 0 {
		sampleInterval = 100 * time.Millisecond
	}
	return &MetricsService{probe: p, sampleInterval: sampleInterval}
}

// CollectCPU returns aggregate and per-core utilization, core counts and
// the load average. Aggregate and per-core sampling run concurrently so
// the call costs one sample interval, not two.
func (s *MetricsService) CollectCPU(ctx context.Context) (*models.CPUStatus, error) {
	var (
		wg         sync.WaitGroup
		total      []float64
		perCore    []float64
		totalErr   error
		perCoreErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		total, totalErr = s.probe.CPUPercent(ctx, s.sampleInterval, false)
	}()
	go func() {
		defer wg.Done()
		perCore, perCoreErr = s.probe.CPUPercent(ctx, s.sampleInterval, true)
	}()
	wg.Wait()

	if totalErr != nil {
		return nil, fmt.Errorf("sampling cpu percent: %w", totalErr)
	}
	if len(total) == 0 {
		return nil, fmt.Errorf("sampling cpu percent: empty result")
	}
	if perCoreErr != nil {
		return nil, fmt.Errorf("sampling per-core cpu percent: %w", perCoreErr)
	}

	logical, err := s.probe.CPUCounts(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("counting logical cores: %w", err)
	}
	physical, err := s.probe.CPUCounts(ctx, false)
	if err != nil {
		// Physical count is unavailable inside some containers; the
		// logical count still stands on its own.
		physical = 0
	}

	// Nil when the platform has no load average, so the field serializes
	// as an explicit null.
	loadAvg, err := s.probe.LoadAverage(ctx)
	if err != nil {
		loadAvg = nil
	}

	return &models.CPUStatus{
		UsagePercent:  round2(total[0]),
		PerCore:       round2Slice(perCore),
		CoreCount:     logical,
		PhysicalCount: physical,
		LoadAvg:       loadAvg,
	}, nil
}

// CollectMemory returns RAM and swap usage in bytes.
func (s *MetricsService) CollectMemory(ctx context.Context) (*models.MemoryStatus, error) {
	ram, err := s.probe.VirtualMemory(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading virtual memory: %w", err)
	}
	swap, err := s.probe.SwapMemory(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading swap memory: %w", err)
	}

	return &models.MemoryStatus{
		RAM: models.RAMStatus{
			Total:        ram.Total,
			Used:         ram.Used,
			Available:    ram.Available,
			UsagePercent: round2(ram.UsedPercent),
		},
		Swap: models.SwapStatus{
			Total:        swap.Total,
			Used:         swap.Used,
			UsagePercent: round2(swap.UsedPercent),
		},
	}, nil
}

// CollectDisk returns usage of the filesystem mounted at path. An empty
// path means "/". A missing path fails with probe.ErrPathNotFound.
func (s *MetricsService) CollectDisk(ctx context.Context, path string) (*models.DiskStatus, error) {
	if path == "" {
		path = "/"
	}

	usage, err := s.probe.DiskUsage(ctx, path)
	if err != nil {
		return nil, err
	}

	return &models.DiskStatus{
		Path:         path,
		Total:        usage.Total,
		Used:         usage.Used,
		Free:         usage.Free,
		UsagePercent: round2(usage.UsedPercent),
		Filesystem:   usage.Fstype,
	}, nil
}

// CollectNetwork returns cumulative counters aggregated across all
// interfaces, as the host reports them.
func (s *MetricsService) CollectNetwork(ctx context.Context) (*models.NetworkStatus, error) {
	counters, err := s.probe.NetCounters(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading network counters: %w", err)
	}

	return &models.NetworkStatus{
		BytesSent:   counters.BytesSent,
		BytesRecv:   counters.BytesRecv,
		PacketsSent: counters.PacketsSent,
		PacketsRecv: counters.PacketsRecv,
		ErrorsIn:    counters.Errin,
		ErrorsOut:   counters.Errout,
	}, nil
}

// CollectProcesses returns at most limit live processes ranked by CPU
// percent descending, pid ascending on ties.
func (s *MetricsService) CollectProcesses(ctx context.Context, limit int) ([]models.ProcessSample, error) {
	if limit <= 0 {
		limit = 10
	}

	samples, err := s.probe.Processes(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerating processes: %w", err)
	}

	sort.Slice(samples, func(i, j int) bool {
		if samples[i].CPUPercent != samples[j].CPUPercent {
			return samples[i].CPUPercent > samples[j].CPUPercent
		}
		return samples[i].PID < samples[j].PID
	})

	if len(samples) > limit {
		samples = samples[:limit]
	}
	for i := range samples {
		samples[i].CPUPercent = round2(samples[i].CPUPercent)
	}
	return samples, nil
}

// CollectSystem returns static host information.
func (s *MetricsService) CollectSystem(ctx context.Context) (*models.SystemInfo, error) {
	info, err := s.probe.HostInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading host info: %w", err)
	}

	return &models.SystemInfo{
		Hostname:        info.Hostname,
		OS:              info.OS,
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		KernelVersion:   info.KernelVersion,
		Architecture:    info.KernelArch,
		GoVersion:       runtime.Version(),
		BootTime:        time.Unix(int64(info.BootTime), 0).UTC(),
		UptimeSeconds:   info.Uptime,
		ProcessCount:    info.Procs,
	}, nil
}

// CollectAll composes every section into one snapshot. Sections are
// collected concurrently, so the snapshot costs as much as its slowest
// section. A failing section is omitted and noted under its name in
// Errors; the snapshot itself always comes back.
func (s *MetricsService) CollectAll(ctx context.Context) *models.Snapshot {
	snap := &models.Snapshot{Timestamp: time.Now().UTC()}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures = map[string]string{}
	)

	fail := func(section string, err error) {
		mu.Lock()
		failures[section] = err.Error()
		mu.Unlock()
	}

	wg.Add(6)
	go func() {
		defer wg.Done()
		if system, err := s.CollectSystem(ctx); err != nil {
			fail("system", err)
		} else {
			snap.System = system
		}
	}()
	go func() {
		defer wg.Done()
		if cpu, err := s.CollectCPU(ctx); err != nil {
			fail("cpu", err)
		} else {
			snap.CPU = cpu
		}
	}()
	go func() {
		defer wg.Done()
		if memory, err := s.CollectMemory(ctx); err != nil {
			fail("memory", err)
		} else {
			snap.Memory = memory
		}
	}()
	go func() {
		defer wg.Done()
		if disk, err := s.CollectDisk(ctx, "/"); err != nil {
			fail("disk", err)
		} else {
			snap.Disk = disk
		}
	}()
	go func() {
		defer wg.Done()
		if network, err := s.CollectNetwork(ctx); err != nil {
			fail("network", err)
		} else {
			snap.Network = network
		}
	}()
	go func() {
		defer wg.Done()
		if procs, err := s.CollectProcesses(ctx, snapshotProcessLimit); err != nil {
			fail("processes", err)
		} else {
			snap.Processes = procs
		}
	}()
	wg.Wait()

	if len(failures) > 0 {
		snap.Errors = failures
	}
	return snap
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round2Slice(vs []float64) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = round2(v)
	}
	return out
}
