package probe

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sys/unix"
)

// SmartStatus probes drive health for every block device present on the
// host. Devices are discovered from sysfs rather than a fixed name list,
// so NVMe drives and hosts with more than 26 disks are covered.
type SmartStatus struct {
	sysBlock string
	devRoot  string
	exclude  []string

	// isBlock reports whether the device node at path is a block device.
	// Overridable for tests, which cannot create real device nodes.
	isBlock func(path string) bool
}

// NewSmartStatus builds the drive-health probe. Devices whose name
// starts with one of the exclude prefixes are skipped.
func NewSmartStatus(exclude []string) *SmartStatus {
	return &SmartStatus{
		sysBlock: "/sys/block",
		devRoot:  "/dev",
		exclude:  exclude,
		isBlock:  isBlockDevice,
	}
}

func isBlockDevice(path string) bool {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return false
	}
	return st.Mode&unix.S_IFMT == unix.S_IFBLK
}

// discover lists the block device names to probe, in sorted order.
func (s *SmartStatus) discover() ([]string, error) {
	entries, err := os.ReadDir(s.sysBlock)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.sysBlock, err)
	}

	var devices []string
	for _, e := range entries {
		name := e.Name()
		if s.excluded(name) {
			continue
		}
		if !s.isBlock(filepath.Join(s.devRoot, name)) {
			continue
		}
		devices = append(devices, name)
	}
	sort.Strings(devices)
	return devices, nil
}

func (s *SmartStatus) excluded(name string) bool {
	for _, prefix := range s.exclude {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func (s *SmartStatus) Run(ctx context.Context) (string, error) {
	devices, err := s.discover()
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	var firstErr error

	for _, name := range devices {
		dev := filepath.Join(s.devRoot, name)
		if out.Len() > 0 {
			out.WriteString("\n")
		}
		fmt.Fprintf(&out, "Device: %s\n", dev)

		for _, flag := range []string{"-H", "-i"} {
			text, err := NewCommand("smartctl", flag, dev).Run(ctx)
			if err != nil && firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", dev, err)
			}
			out.WriteString(text)
		}
	}
	return out.String(), firstErr
}
