// Package projects maps Maven coordinates to their source hosting.
package projects

import (
	"strings"

	"github.com/scijava/status.scijava.org/pkg/mapfile"
	"github.com/scijava/status.scijava.org/pkg/maven"
)

// URLResolver maps a coordinate to its source-hosting URL: an explicit
// per-coordinate entry wins, otherwise groups with a known GitHub org get
// the conventional https://github.com/<org>/<artifactId> location.
type URLResolver struct {
	URLs      mapfile.Map // "groupId:artifactId" -> URL
	GroupOrgs mapfile.Map // "groupId" -> GitHub org
}

// URL returns the source URL for a coordinate, or "" when none is known.
func (r URLResolver) URL(coord maven.Coordinate) string {
	if url, ok := r.URLs.Get(coord.String()); ok {
		return url
	}
	if org, ok := r.GroupOrgs.Get(coord.GroupID); ok {
		return "https://github.com/" + org + "/" + coord.ArtifactID
	}
	return ""
}

// Slug extracts the "org/repo" part of a GitHub URL, or "" for non-GitHub
// (or unknown) hosting.
func Slug(url string) string {
	const prefix = "https://github.com/"
	if !strings.HasPrefix(url, prefix) {
		return ""
	}
	slug := strings.TrimSuffix(url[len(prefix):], "/")
	if strings.Count(slug, "/") != 1 {
		return ""
	}
	return slug
}
