package metrics

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemSample is one reading of host usage, in percent, plus host uptime.
type SystemSample struct {
	CPUUsage    float64 `json:"cpu_usage"`
	MemoryUsage float64 `json:"memory_usage"`
	DiskUsage   float64 `json:"disk_usage"`
	Uptime      float64 `json:"uptime"`
}

// SampleSystem reads the host counters without blocking: CPU usage is the
// delta since the previous call (zero on the first one).
func SampleSystem(ctx context.Context) (SystemSample, error) {
	var s SystemSample

	pct, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return s, err
	}
	if len(pct) > 0 {
		s.CPUUsage = pct[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return s, err
	}
	s.MemoryUsage = vm.UsedPercent

	du, err := disk.UsageWithContext(ctx, "/")
	if err != nil {
		return s, err
	}
	if du.Total > 0 {
		s.DiskUsage = float64(du.Used) / float64(du.Total) * 100
	}

	boot, err := host.BootTimeWithContext(ctx)
	if err != nil {
		return s, err
	}
	s.Uptime = time.Since(time.Unix(int64(boot), 0)).Seconds()
	return s, nil
}
