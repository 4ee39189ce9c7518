// Package probe implements the individual inventory probes whose captured
// output becomes the sections of a status report. Probes never abort a
// run: a failed probe reports an error alongside whatever partial output
// it managed to capture, and the caller degrades the section instead of
// failing the report.
package probe

import "context"

// Probe captures one piece of host state as text.
type Probe interface {
	// Run returns the captured text. On failure it returns any partial
	// output together with the error.
	Run(ctx context.Context) (string, error)
}
