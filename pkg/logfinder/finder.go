// Package logfinder locates .xcactivitylog files under a DerivedData
// directory.
package logfinder

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"
)

const logExtension = ".xcactivitylog"

// LatestBuildLog walks root and returns the newest activity log by
// modification time. Xcode rotates logs under Logs/Build with opaque
// UUID names, so recency is the only useful ordering.
func LatestBuildLog(root string) (string, error) {
	var newest string
	var newestTime time.Time

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, logExtension) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.ModTime().After(newestTime) {
			newest, newestTime = path, info.ModTime()
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("searching %s for activity logs: %w", root, err)
	}
	if newest == "" {
		return "", fmt.Errorf("no %s files under %s", logExtension, root)
	}
	return newest, nil
}
