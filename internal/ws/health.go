package ws

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// HealthReport is the /api/health payload: liveness plus process and host
// resource usage.
type HealthReport struct {
	Status         string  `json:"status"`
	PID            int     `json:"pid"`
	Sessions       int     `json:"sessions"`
	CPUPercent     float64 `json:"cpuPercent,omitempty"`
	RSSBytes       uint64  `json:"rssBytes,omitempty"`
	HostMemPercent float64 `json:"hostMemPercent,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := HealthReport{
		Status:   "healthy",
		PID:      os.Getpid(),
		Sessions: len(s.registry.Summaries()),
	}

	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if cpu, err := proc.CPUPercent(); err == nil {
			report.CPUPercent = cpu
		}
		if mi, err := proc.MemoryInfo(); err == nil && mi != nil {
			report.RSSBytes = mi.RSS
		}
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		report.HostMemPercent = vm.UsedPercent
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}
