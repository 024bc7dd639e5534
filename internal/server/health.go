package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"gorm.io/gorm"

	"github.com/mantonx/cinevault/internal/database"
)

const cpuSampleInterval = 200 * time.Millisecond

type healthHandler struct {
	db        *gorm.DB
	uploadDir string
	logger    hclog.Logger
}

func newHealthHandler(db *gorm.DB, uploadDir string, logger hclog.Logger) *healthHandler {
	return &healthHandler{db: db, uploadDir: uploadDir, logger: logger}
}

// Check reports whether the service and its database are reachable
func (h *healthHandler) Check(c *gin.Context) {
	if err := database.Ping(h.db); err != nil {
		h.logger.Warn("database ping failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"service":  "cinevault",
			"database": "unreachable",
			"error":    err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"service":  "cinevault",
		"database": "connected",
	})
}

// SystemStats is the host snapshot returned by /health/system
type SystemStats struct {
	CPU    CPUStats     `json:"cpu"`
	Memory *MemoryStats `json:"memory,omitempty"`
	Disk   *DiskStats   `json:"disk,omitempty"`
	Load   *LoadStats   `json:"load,omitempty"`
	Errors []string     `json:"errors,omitempty"`
}

type CPUStats struct {
	Cores        int     `json:"cores"`
	UsagePercent float64 `json:"usagePercent"`
}

type MemoryStats struct {
	Total       uint64  `json:"total"`
	Used        uint64  `json:"used"`
	UsedPercent float64 `json:"usedPercent"`
}

type DiskStats struct {
	Path        string  `json:"path"`
	Total       uint64  `json:"total"`
	Free        uint64  `json:"free"`
	UsedPercent float64 `json:"usedPercent"`
}

type LoadStats struct {
	Load1  float64 `json:"load1"`
	Load5  float64 `json:"load5"`
	Load15 float64 `json:"load15"`
}

// System reports host metrics. Metrics the platform cannot provide are
// listed under errors instead of failing the request.
func (h *healthHandler) System(c *gin.Context) {
	c.JSON(http.StatusOK, h.collect(c.Request.Context()))
}

func (h *healthHandler) collect(ctx context.Context) SystemStats {
	var stats SystemStats
	fail := func(metric string, err error) {
		h.logger.Debug("metric unavailable", "metric", metric, "error", err)
		stats.Errors = append(stats.Errors, metric+": "+err.Error())
	}

	if cores, err := cpu.CountsWithContext(ctx, true); err == nil {
		stats.CPU.Cores = cores
	} else {
		fail("cpu.cores", err)
	}
	if percents, err := cpu.PercentWithContext(ctx, cpuSampleInterval, false); err == nil && len(percents) > 0 {
		stats.CPU.UsagePercent = percents[0]
	} else if err != nil {
		fail("cpu.usage", err)
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		stats.Memory = &MemoryStats{Total: vm.Total, Used: vm.Used, UsedPercent: vm.UsedPercent}
	} else {
		fail("memory", err)
	}

	if usage, err := disk.UsageWithContext(ctx, h.uploadDir); err == nil {
		stats.Disk = &DiskStats{Path: h.uploadDir, Total: usage.Total, Free: usage.Free, UsedPercent: usage.UsedPercent}
	} else {
		fail("disk", err)
	}

	if avg, err := load.AvgWithContext(ctx); err == nil {
		stats.Load = &LoadStats{Load1: avg.Load1, Load5: avg.Load5, Load15: avg.Load15}
	} else {
		fail("load", err)
	}

	return stats
}
