//go:build !windows

// DSN file probing on unix follows the same HOME-then-/etc lookup order
// alexbrainman/odbc's api_unix.go build-tagged file splits ODBC
// constants by platform for; here the split is over how a candidate ini
// file's readability is probed, using golang.org/x/sys/unix.Access the
// same way alexbrainman/odbc's cgo file is gated to darwin/linux/freebsd.
package connstr

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

func candidatePaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths, filepath.Join(home, ".odbc.ini"))
	}
	paths = append(paths, "/etc/odbc.ini")
	return paths
}

func findDSNSection(dsn string) (path string, section string, err error) {
	for _, candidate := range candidatePaths() {
		if unix.Access(candidate, unix.R_OK) == nil {
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
