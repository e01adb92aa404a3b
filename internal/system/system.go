package system

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// AudioExtensions are the soundtrack formats picked up from the assets dir
var AudioExtensions = []string{".mp3", ".wav", ".flac"}

func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Could not read the open file limit: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Could not raise the open file limit: %v", err)
	} else {
		fmt.Printf("[*] Open file limit raised to %d\n", rLimit.Cur)
	}
}

// FindLatestAudio returns the most recently modified soundtrack in dir
func FindLatestAudio(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() || !hasExtension(f.Name(), AudioExtensions) {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no soundtrack found in %s", dir)
	}

	return latestFile, nil
}

func hasExtension(name string, exts []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func GetBestH264Encoder() (string, string) {
	// Hardware first: VideoToolbox on macOS, NVENC on NVIDIA, libx264 otherwise.
	encoders := []struct {
		name string
		args string
	}{
		{"h264_videotoolbox", ""},
		{"h264_nvenc", ""},
	}

	out, err := exec.Command("ffmpeg", "-hide_banner", "-encoders").CombinedOutput()
	if err != nil {
		return "libx264", ""
	}
	for _, enc := range encoders {
		if strings.Contains(string(out), enc.name) {
			return enc.name, enc.args
		}
	}

	return "libx264", ""
}

// HostStats describes the machine a render ran on
type HostStats struct {
	OS            string
	Arch          string
	LogicalCPUs   int
	PhysicalCPUs  int
	TotalMemoryMB uint64
	UsedPercent   float64
}

// CollectHostStats queries gopsutil; fields it cannot read stay zero.
func CollectHostStats() HostStats {
	st := HostStats{OS: runtime.GOOS, Arch: runtime.GOARCH}

	if n, err := cpu.Counts(true); err == nil {
		st.LogicalCPUs = n
	}
	if n, err := cpu.Counts(false); err == nil {
		st.PhysicalCPUs = n
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		st.TotalMemoryMB = vm.Total / 1024 / 1024
		st.UsedPercent = vm.UsedPercent
	}
	return st
}

func (h HostStats) String() string {
	return fmt.Sprintf("%s/%s, %d logical / %d physical CPUs, %d MB RAM (%.0f%% used)",
		h.OS, h.Arch, h.LogicalCPUs, h.PhysicalCPUs, h.TotalMemoryMB, h.UsedPercent)
}
