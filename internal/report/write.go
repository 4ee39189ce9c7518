package report

import (
	"fmt"
	"os"
	"path/filepath"
)

const maxCollisionSuffix = 100

// Write renders the report and persists it under dir, returning the
// final path. The content is written to a temporary file and renamed
// into place, so an interrupted run never leaves a partial report at
// the canonical path. On a timestamp collision a numeric suffix is
// appended instead of overwriting the existing report.
func Write(dir string, r *Report) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create log directory: %w", err)
	}

	path, err := resolveCollision(filepath.Join(dir, r.Filename()))
	if err != nil {
		return "", err
	}

	tmp := fmt.Sprintf("%s.tmp-%d", path, os.Getpid())
	if err := os.WriteFile(tmp, []byte(r.Render()), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("finalize report: %w", err)
	}
	return path, nil
}

func resolveCollision(path string) (string, error) {
	if _, err := os.Lstat(path); os.IsNotExist(err) {
		return path, nil
	}
	for i := 1; i < maxCollisionSuffix; i++ {
		candidate := fmt.Sprintf("%s-%d", path, i)
		if _, err := os.Lstat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free report name near %s", path)
}
