package maven

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/scijava/status.scijava.org/internal/utils"
)

// ErrNoLatest means the snapshot metadata exists but carries no usable
// newest-snapshot version. Nothing can be decided for any coordinate
// without that identity, so callers abort the run.
var ErrNoLatest = errors.New("metadata has no latest snapshot version")

// Resolver answers version and timestamp questions about coordinates
// against a single repository source.
type Resolver struct {
	Source Source
}

// Metadata fetches and wraps the maven-metadata.xml for a coordinate.
// Returns (nil, nil) when the repository has no metadata for it.
func (r *Resolver) Metadata(ctx context.Context, coord Coordinate) (*Doc, error) {
	body, err := r.Source.Fetch(ctx, coord.Path()+"/maven-metadata.xml")
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, nil
	}
	return NewDoc(coord, body), nil
}

// NewestRelease resolves the newest released (non-SNAPSHOT) version of a
// coordinate, or "" when unknown.
func (r *Resolver) NewestRelease(ctx context.Context, coord Coordinate) (string, error) {
	doc, err := r.Metadata(ctx, coord)
	if err != nil {
		return "", err
	}
	if doc == nil {
		return "", nil
	}
	if v, ok := doc.NewestRelease(); ok {
		return v, nil
	}
	return "", nil
}

func (r *Resolver) releasePOMPath(coord Coordinate, version string) string {
	return coord.Path() + "/" + version + "/" + coord.ArtifactID + "-" + version + ".pom"
}

// Timestamps resolves the deployment time of the given release version and
// of the newest snapshot of the coordinate. Either value degrades to 0 when
// its resource is missing; both are produced even when one lookup fails.
// Only an unreachable source, or metadata with no snapshot identity
// (ErrNoLatest), aborts.
func (r *Resolver) Timestamps(ctx context.Context, coord Coordinate, version string) (release, lastSnapshot Timestamp, err error) {
	if version != "" {
		ts, derr := r.Source.DeployTime(ctx, r.releasePOMPath(coord, version))
		if derr != nil {
			utils.Log.Warnf("Release timestamp lookup failed for %s:%s: %v", coord, version, derr)
		} else {
			release = ts
		}
	}

	doc, err := r.Metadata(ctx, coord)
	if err != nil {
		return release, 0, err
	}
	if doc == nil {
		// No snapshot metadata deployed for this coordinate.
		return release, 0, nil
	}

	latest, ok := doc.Latest()
	if !ok {
		latest, ok = doc.LastVersion()
	}
	if !ok {
		return release, 0, fmt.Errorf("%w: %s", ErrNoLatest, coord)
	}

	if ts := doc.LastUpdated(); !ts.IsZero() {
		return release, ts, nil
	}
	ts, derr := r.snapshotDeployTime(ctx, coord, latest)
	if derr != nil {
		utils.Log.Warnf("Snapshot timestamp lookup failed for %s (%s): %v", coord, latest, derr)
		return release, 0, nil
	}
	return release, ts, nil
}

// snapshotDeployTime scans the snapshot version directory for timestamped
// POM deployments (artifactId-base-YYYYMMDD.HHMMSS-N.pom) and returns the
// newest one's timestamp.
func (r *Resolver) snapshotDeployTime(ctx context.Context, coord Coordinate, snapshotVersion string) (Timestamp, error) {
	base := strings.TrimSuffix(snapshotVersion, "-SNAPSHOT")
	names, err := r.Source.List(ctx, coord.Path()+"/"+snapshotVersion)
	if err != nil {
		return 0, err
	}
	pomPattern := regexp.MustCompile(
		`^` + regexp.QuoteMeta(coord.ArtifactID+"-"+base) + `-(\d{8}\.\d{6})-\d+\.pom$`)
	var newest Timestamp
	for _, name := range names {
		m := pomPattern.FindStringSubmatch(name)
		if m == nil {
			continue // ignore weirdly named POMs
		}
		ts, perr := ParseTimestamp(m[1])
		if perr != nil {
			continue
		}
		newest = MaxTimestamp(newest, ts)
	}
	return newest, nil
}
