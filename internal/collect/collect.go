// Package collect runs the fixed ordered probe sequence and assembles
// the results into a report.
package collect

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/alplog/sysstatus/internal/config"
	"github.com/alplog/sysstatus/internal/hostinfo"
	"github.com/alplog/sysstatus/internal/probe"
	"github.com/alplog/sysstatus/internal/report"
)

// Collector gathers one point-in-time status report.
type Collector struct {
	cfg *config.Config
	log zerolog.Logger
}

// New builds a collector for the given configuration.
func New(cfg *config.Config, log zerolog.Logger) *Collector {
	return &Collector{cfg: cfg, log: log}
}

type entry struct {
	name  string
	probe probe.Probe
}

// probes returns the probe table. The names and their order are the
// section contract of the report format and must not change between
// runs: the log viewer matches on them.
func (c *Collector) probes() []entry {
	return []entry{
		{"CPU", probe.NewCommand("cat", "/proc/cpuinfo")},
		{"MEMORY", probe.NewCommand("free")},
		{"NETWORK", probe.NewCommand("ip", "addr")},
		{"EXTERNAL IP ADDRESS", probe.NewPublicIP(c.cfg.PublicIPURL, c.cfg.PublicIPTimeout)},
		{"DISKS", probe.NewCommand("lsblk", "-o", "NAME,MAJ:MIN,RM,SIZE,RO,FSTYPE,MOUNTPOINT,UUID")},
		{"MOUNT", probe.NewCommand("mount")},
		{"ZFS POOLS", probe.NewSequence(
			probe.NewCommand("zpool", "list"),
			probe.NewCommand("zpool", "status"),
		)},
		{"SMART STATUS", probe.NewSmartStatus(c.cfg.ExcludeDevices)},
		{"RC STATUS", probe.NewCommand("rc-status", "-a")},
		{"USB", probe.NewCommand("lsusb")},
		{"UPGRADABLE PACKAGES", probe.NewCommand("apk", "version", "-l", "<")},
		{"PROCESSES", probe.NewCommand("ps", "aux")},
		{"USERS", probe.NewCommand("cut", "-d:", "-f1", "/etc/passwd")},
		{"GROUPS", probe.NewCommand("cut", "-d:", "-f1", "/etc/group")},
	}
}

// SectionNames returns the section labels in report order.
func (c *Collector) SectionNames() []string {
	entries := c.probes()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// Run executes every probe in order and returns the assembled report.
// Probe failures degrade their section; Run itself only fails when the
// context is cancelled before collection finishes.
func (c *Collector) Run(ctx context.Context, sendMail bool) (*report.Report, error) {
	now := time.Now()
	r := &report.Report{
		ID:          uuid.NewString(),
		GeneratedAt: now,
		Facts:       hostinfo.Gather(c.cfg.Hostname, now),
		Mail:        sendMail,
	}

	c.log.Info().
		Str("report_id", r.ID).
		Str("hostname", r.Facts.Hostname).
		Msg("collecting status report")

	for _, e := range c.probes() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("collection interrupted: %w", err)
		}

		probeCtx, cancel := context.WithTimeout(ctx, c.cfg.ProbeTimeout)
		body, err := e.probe.Run(probeCtx)
		cancel()

		if err != nil {
			c.log.Warn().Err(err).Str("section", e.name).Msg("probe degraded")
			if body == "" {
				body = fmt.Sprintf("(unavailable: %v)\n", err)
			}
		} else {
			c.log.Info().Str("section", e.name).Int("bytes", len(body)).Msg("probe complete")
		}

		r.Sections = append(r.Sections, report.Section{Name: e.name, Body: body})
	}

	return r, nil
}
