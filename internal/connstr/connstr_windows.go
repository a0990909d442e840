// DSN file probing on Windows has no golang.org/x/sys/unix to call into,
// so the readability check falls back to os.Stat — the same
// per-platform split alexbrainman/odbc's api_windows.go uses to give Windows
// its own constant definitions where the unix build relies on cgo.
package connstr

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

func candidatePaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths, filepath.Join(home, ".odbc.ini"))
	}
	if sysRoot := os.Getenv("SystemRoot"); sysRoot != "" {
		paths = append(paths, filepath.Join(sysRoot, "odbc.ini"))
	}
	return paths
}

func findDSNSection(dsn string) (path string, section string, err error) {
	for _, candidate := range candidatePaths() {
		if _, statErr := os.Stat(candidate); statErr == nil {
			return candidate, dsn, nil
		}
	}
	return "", "", errors.Errorf("connstr: no readable odbc.ini found for DSN %q", dsn)
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "connstr: opening %s", path)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "connstr: reading %s", path)
	}
	return lines, nil
}
