package renderer

import (
	"fmt"
	"unsafe"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// SystemInfo describes the machine a render runs on
type SystemInfo struct {
	CPUModel     string
	LogicalCores int
	TotalRAM     uint64 // bytes
	AvailableRAM uint64 // bytes
}

// ReadSystemInfo queries CPU and memory information from the OS
func ReadSystemInfo() (SystemInfo, error) {
	var info SystemInfo

	cpuInfo, err := cpu.Info()
	if err != nil {
		return info, err
	}
	if len(cpuInfo) == 0 {
		return info, fmt.Errorf("no CPU information available")
	}
	info.CPUModel = cpuInfo[0].ModelName

	if info.LogicalCores, err = cpu.Counts(true); err != nil {
		return info, err
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		return info, err
	}
	info.TotalRAM = memInfo.Total
	info.AvailableRAM = memInfo.Available

	return info, nil
}

// FramebufferBytes returns the memory needed for the framebuffer of a render
func (c Config) FramebufferBytes() uint64 {
	return uint64(c.Width) * uint64(c.Height()) * uint64(unsafe.Sizeof(core.Vec3{}))
}

// CheckMemory returns an error when the framebuffer would not fit in the
// available memory
func (c Config) CheckMemory(info SystemInfo) error {
	if need := c.FramebufferBytes(); info.AvailableRAM > 0 && need > info.AvailableRAM {
		return fmt.Errorf("framebuffer needs %d MiB but only %d MiB is available",
			need>>20, info.AvailableRAM>>20)
	}
	return nil
}
