// Package mapfile reads the flat text lookup tables consulted by the
// report: project URLs, manual vetting timestamps, CI badge overrides, and
// group-to-org naming conventions. Each file holds "key value" lines; blank
// lines and '#' comments are skipped.
package mapfile

import (
	"bufio"
	"os"
	"strings"

	"github.com/scijava/status.scijava.org/pkg/maven"
)

// Map is a string-keyed lookup loaded once at startup and handed to
// whichever component needs it.
type Map map[string]string

// Load reads a mapping file. Keys and values are separated by the first
// occurrence of sep; lines with no separator are ignored. A missing file is
// an empty map, not an error: every lookup table is optional.
func Load(path, sep string) (Map, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Map{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m := Map{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, sep)
		if !found {
			continue
		}
		m[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// Get returns the value for key.
func (m Map) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Timestamp parses the value for key as a Maven timestamp. Absent or
// malformed entries are 0, which never dominates a real timestamp.
func (m Map) Timestamp(key string) maven.Timestamp {
	v, ok := m[key]
	if !ok {
		return 0
	}
	ts, err := maven.ParseTimestamp(v)
	if err != nil {
		return 0
	}
	return ts
}
