package maven

import (
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Doc holds one fetched maven-metadata.xml document for one coordinate.
// A Doc is built per coordinate while that coordinate is processed and
// dropped afterwards, so repeated tag lookups reuse the same body without
// any process-wide cache.
type Doc struct {
	Coord Coordinate
	body  string
}

// NewDoc wraps a raw maven-metadata.xml body.
func NewDoc(coord Coordinate, body []byte) *Doc {
	return &Doc{Coord: coord, body: string(body)}
}

// Tag scans for <name>value</name> and returns the trimmed text of the
// first occurrence. Malformed or missing tags report false rather than an
// error; repository metadata is not namespaced and small enough that a
// best-effort scan beats a full XML parse.
func (d *Doc) Tag(name string) (string, bool) {
	if d == nil {
		return "", false
	}
	re := regexp.MustCompile(`<` + regexp.QuoteMeta(name) + `>([^<]*)</` + regexp.QuoteMeta(name) + `>`)
	m := re.FindStringSubmatch(d.body)
	if m == nil {
		return "", false
	}
	v := strings.TrimSpace(m[1])
	if v == "" {
		return "", false
	}
	return v, true
}

// Latest returns the <latest> version tag.
//
// WARNING: The <latest> value is often wrong, for reasons unknown. The last
// <version> under <versions> has the correct value; prefer LastVersion.
func (d *Doc) Latest() (string, bool) {
	return d.Tag("latest")
}

// Release returns the <release> version tag.
func (d *Doc) Release() (string, bool) {
	return d.Tag("release")
}

// LastUpdated returns the <lastUpdated> timestamp, or 0 if absent.
func (d *Doc) LastUpdated() Timestamp {
	s, ok := d.Tag("lastUpdated")
	if !ok {
		return 0
	}
	ts, err := ParseTimestamp(s)
	if err != nil {
		return 0
	}
	return ts
}

var versionTag = regexp.MustCompile(`<version>([^<]*)</version>`)

// Versions returns every <version> entry, in document order.
func (d *Doc) Versions() []string {
	if d == nil {
		return nil
	}
	var vs []string
	for _, m := range versionTag.FindAllStringSubmatch(d.body, -1) {
		v := strings.TrimSpace(m[1])
		if v != "" {
			vs = append(vs, v)
		}
	}
	return vs
}

// LastVersion returns the final <version> entry, which in practice is the
// most recently deployed version.
func (d *Doc) LastVersion() (string, bool) {
	vs := d.Versions()
	if len(vs) == 0 {
		return "", false
	}
	return vs[len(vs)-1], true
}

// NewestRelease picks the newest non-SNAPSHOT version. Versions that parse
// as semver are ordered semantically; when none do, the last listed release
// wins, matching repository deploy order.
func (d *Doc) NewestRelease() (string, bool) {
	var newest string
	var newestVer *semver.Version
	for _, v := range d.Versions() {
		if strings.HasSuffix(v, "-SNAPSHOT") {
			continue
		}
		sv, err := semver.NewVersion(v)
		if err != nil {
			// Not semver; later entries simply displace earlier ones.
			if newestVer == nil {
				newest = v
			}
			continue
		}
		if newestVer == nil || sv.GreaterThan(newestVer) {
			newest = v
			newestVer = sv
		}
	}
	if newest == "" {
		return "", false
	}
	return newest, true
}
