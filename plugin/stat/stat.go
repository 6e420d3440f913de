// Package stat 运行状态采集
package stat

import (
	"context"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// Usage 主机与进程资源快照
type Usage struct {
	CPUPercent  float64 `json:"cpu_percent"`
	MemPercent  float64 `json:"mem_percent"`
	MemUsed     uint64  `json:"mem_used"`
	MemTotal    uint64  `json:"mem_total"`
	DiskPercent float64 `json:"disk_percent"`
	DiskUsed    uint64  `json:"disk_used"`
	DiskTotal   uint64  `json:"disk_total"`
	UptimeSec   uint64  `json:"uptime_sec"`
	Goroutines  int     `json:"goroutines"`
}

// GetUsage 采集一次资源快照
// dir 为磁盘用量统计目录，通常传素材/导出存储目录
func GetUsage(ctx context.Context, dir string) (*Usage, error) {
	out := Usage{Goroutines: runtime.NumGoroutine()}

	if percents, err := cpu.PercentWithContext(ctx, 300*time.Millisecond, false); err == nil && len(percents) > 0 {
		out.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		out.MemPercent = vm.UsedPercent
		out.MemUsed = vm.Used
		out.MemTotal = vm.Total
	}
	if dir != "" {
		if du, err := disk.UsageWithContext(ctx, dir); err == nil {
			out.DiskPercent = du.UsedPercent
			out.DiskUsed = du.Used
			out.DiskTotal = du.Total
		}
	}
	if up, err := host.UptimeWithContext(ctx); err == nil {
		out.UptimeSec = up
	}
	return &out, nil
}
