// Package report defines the status report artifact: an ordered list of
// labeled text sections under a key/value header block, rendered to a
// timestamped file. Section banners and their order are a stable
// contract; the companion log viewer splits report files on them.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/alplog/sysstatus/internal/hostinfo"
)

// Section is one labeled block of captured probe output.
type Section struct {
	Name string
	Body string
}

// Report is the single artifact produced per collector run.
type Report struct {
	ID          string
	GeneratedAt time.Time
	Facts       hostinfo.Facts
	Mail        bool
	Sections    []Section
}

// Filename returns the timestamped basename for this report.
func (r *Report) Filename() string {
	return "system_status." + r.GeneratedAt.Format("20060102.150405")
}

// Render produces the full report text: the STATUS INFORMATION header
// block followed by every section under its "# NAME:" banner. Sections
// appear in order even when their body is empty.
func (r *Report) Render() string {
	var b strings.Builder

	b.WriteString("STATUS INFORMATION\n")
	b.WriteString("------------------\n")
	writeField(&b, "hostname", r.Facts.Hostname)
	writeField(&b, "date", r.Facts.Date)
	writeField(&b, "time", r.Facts.Time)
	writeField(&b, "timezone", r.Facts.Timezone)
	writeField(&b, "Kernel version", r.Facts.KernelVersion)
	writeField(&b, "uptime", r.Facts.Uptime)
	writeField(&b, "manufacturer", r.Facts.Manufacturer)
	writeField(&b, "product", r.Facts.Product)
	writeField(&b, "serial number", r.Facts.SerialNumber)
	if r.Mail {
		writeField(&b, "send e-mail", "yes")
	} else {
		writeField(&b, "send e-mail", "no")
	}

	for _, s := range r.Sections {
		b.WriteString("\n")
		fmt.Fprintf(&b, "# %s:\n", s.Name)
		if s.Body == "" {
			continue
		}
		b.WriteString(s.Body)
		if !strings.HasSuffix(s.Body, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func writeField(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s : %s\n", key, value)
}
