// Package hostinfo gathers the identity facts for the report header
// block: clock, kernel, uptime, and DMI identity when readable.
package hostinfo

import (
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/siderolabs/go-smbios/smbios"
)

// Facts holds the header-block values of a report.
type Facts struct {
	Hostname      string
	Date          string
	Time          string
	Timezone      string
	KernelVersion string
	Uptime        string

	// DMI identity; empty when SMBIOS tables are not readable
	// (non-root, VMs without DMI, non-x86 boards).
	Manufacturer string
	Product      string
	SerialNumber string
}

// Gather collects header facts for the given hostname at time now.
// It never fails: unavailable facts are left empty.
func Gather(hostname string, now time.Time) Facts {
	zone, _ := now.Zone()
	facts := Facts{
		Hostname: hostname,
		Date:     now.Format("2006-01-02"),
		Time:     now.Format("15:04:05"),
		Timezone: zone,
	}

	if info, err := host.Info(); err == nil {
		facts.KernelVersion = info.KernelVersion
		facts.Uptime = formatUptime(info.Uptime)
	}

	if s, err := smbios.New(); err == nil {
		facts.Manufacturer = s.SystemInformation.Manufacturer
		facts.Product = s.SystemInformation.ProductName
		facts.SerialNumber = s.SystemInformation.SerialNumber
	}

	return facts
}

// formatUptime renders seconds as "Nd HH:MM:SS".
func formatUptime(secs uint64) string {
	days := secs / 86400
	secs %= 86400
	hours := secs / 3600
	secs %= 3600
	return fmt.Sprintf("%dd %02d:%02d:%02d", days, hours, secs/60, secs%60)
}
