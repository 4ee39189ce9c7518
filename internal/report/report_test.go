package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alplog/sysstatus/internal/hostinfo"
)

func sampleReport(t *testing.T) *Report {
	t.Helper()
	generated := time.Date(2024, 3, 7, 14, 30, 5, 0, time.UTC)
	return &Report{
		ID:          "test-report",
		GeneratedAt: generated,
		Facts: hostinfo.Facts{
			Hostname:      "alpbox",
			Date:          "2024-03-07",
			Time:          "14:30:05",
			Timezone:      "UTC",
			KernelVersion: "6.6.14-0-lts",
			Uptime:        "3d 04:05:06",
		},
		Sections: []Section{
			{Name: "CPU", Body: "processor : 0\n"},
			{Name: "MEMORY", Body: ""},
			{Name: "USERS", Body: "root\ndaemon"},
		},
	}
}

func TestFilename(t *testing.T) {
	r := sampleReport(t)
	if got, want := r.Filename(), "system_status.20240307.143005"; got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
}

func TestRenderHeaderBlock(t *testing.T) {
	r := sampleReport(t)
	out := r.Render()

	if !strings.HasPrefix(out, "STATUS INFORMATION\n") {
		t.Fatalf("report does not start with header block:\n%s", out)
	}
	for _, line := range []string{
		"hostname : alpbox",
		"date : 2024-03-07",
		"time : 14:30:05",
		"Kernel version : 6.6.14-0-lts",
		"send e-mail : no",
	} {
		if !strings.Contains(out, line+"\n") {
			t.Errorf("header block missing line %q", line)
		}
	}

	r.Mail = true
	if !strings.Contains(r.Render(), "send e-mail : yes\n") {
		t.Error("mail run should render send e-mail : yes")
	}
}

func TestRenderSectionOrderStable(t *testing.T) {
	r := sampleReport(t)
	out := r.Render()

	// Banners must appear in section order even when a body is empty.
	last := -1
	for _, name := range []string{"CPU", "MEMORY", "USERS"} {
		banner := "\n# " + name + ":\n"
		idx := strings.Index(out, banner)
		if idx < 0 {
			t.Fatalf("banner for %s missing:\n%s", name, out)
		}
		if idx <= last {
			t.Errorf("banner for %s out of order", name)
		}
		last = idx
	}

	// Bodies without a trailing newline get one.
	if !strings.Contains(out, "root\ndaemon\n") {
		t.Error("section body should end with a newline")
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	r := sampleReport(t)

	path, err := Write(dir, r)
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if filepath.Base(path) != r.Filename() {
		t.Errorf("wrote %q, want basename %q", path, r.Filename())
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(content) != r.Render() {
		t.Error("file content does not match rendered report")
	}

	// No temp files left behind.
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
}

func TestWriteCollisionSuffix(t *testing.T) {
	dir := t.TempDir()
	r := sampleReport(t)

	first, err := Write(dir, r)
	if err != nil {
		t.Fatalf("first Write() error: %v", err)
	}
	second, err := Write(dir, r)
	if err != nil {
		t.Fatalf("second Write() error: %v", err)
	}

	if second == first {
		t.Fatal("collision should not reuse the same path")
	}
	if want := first + "-1"; second != want {
		t.Errorf("collision path = %q, want %q", second, want)
	}
	if _, err := os.Stat(first); err != nil {
		t.Error("original report should be untouched on collision")
	}
}

func TestWriteFailsOnUnwritableDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Write(blocker, sampleReport(t)); err == nil {
		t.Error("Write() into a file path should fail")
	}
}
