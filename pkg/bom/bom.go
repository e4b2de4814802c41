// Package bom lists the components of a bill-of-materials POM together
// with their pinned and newest-available versions.
package bom

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	stdlog "log"
	"net/http"
	"os"
	"regexp"
	"sort"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/scijava/status.scijava.org/internal/utils"
	"github.com/scijava/status.scijava.org/pkg/maven"
	"github.com/scijava/status.scijava.org/pkg/storage"
)

// Entry is one component of the BOM: its coordinate, the version the BOM
// pins, and the newest release the repository knows about.
type Entry struct {
	Coordinate    maven.Coordinate `json:"coordinate"`
	BOMVersion    string           `json:"bomVersion"`
	NewestVersion string           `json:"newestVersion"`
}

// CSV renders the entry as the "g:a,bomVersion,newestVersion" triple.
func (e Entry) CSV() string {
	return fmt.Sprintf("%s,%s,%s", e.Coordinate, e.BOMVersion, e.NewestVersion)
}

// Lister resolves BOM entries. Results are cached so repeated invocations
// within an operational window skip the expensive resolution step.
type Lister struct {
	Resolver *maven.Resolver

	// Cache is optional; when set, resolved lists are stored under the
	// BOM URL for CacheTTL.
	Cache    *storage.DB
	CacheTTL time.Duration

	// Fresh bypasses the cache for this run.
	Fresh bool

	client *retryablehttp.Client
}

func (l *Lister) httpClient() *retryablehttp.Client {
	if l.client == nil {
		l.client = retryablehttp.NewClient()
		l.client.Logger = stdlog.New(io.Discard, "", 0)
		l.client.RetryMax = 2
	}
	return l.client
}

func cacheKey(bomURL string) string {
	return "components:" + bomURL
}

// List downloads the BOM descriptor and produces its component triples,
// deduplicated and sorted by coordinate for deterministic report ordering.
func (l *Lister) List(ctx context.Context, bomURL string) ([]Entry, error) {
	if l.Cache != nil && !l.Fresh {
		if data, ok, err := l.Cache.Get(ctx, cacheKey(bomURL)); err == nil && ok {
			var entries []Entry
			if err := json.Unmarshal(data, &entries); err == nil {
				utils.Log.Debugf("Using cached component list for %s", bomURL)
				return entries, nil
			}
		}
	}

	data, err := l.fetch(ctx, bomURL)
	if err != nil {
		return nil, fmt.Errorf("fetching BOM %s: %w", bomURL, err)
	}
	pom, err := maven.ParsePOM(data)
	if err != nil {
		return nil, fmt.Errorf("parsing BOM %s: %w", bomURL, err)
	}

	entries, err := l.resolve(ctx, pom)
	if err != nil {
		return nil, err
	}

	if l.Cache != nil {
		if data, err := json.Marshal(entries); err == nil {
			if err := l.Cache.Set(ctx, cacheKey(bomURL), data, l.CacheTTL); err != nil {
				utils.Log.Warnf("Could not cache component list: %v", err)
			}
		}
	}
	return entries, nil
}

// fetch reads the BOM from an HTTP(S) URL or a local path.
func (l *Lister) fetch(ctx context.Context, bomURL string) ([]byte, error) {
	if _, err := os.Stat(bomURL); err == nil {
		return os.ReadFile(bomURL)
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, bomURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (l *Lister) resolve(ctx context.Context, pom *maven.POM) ([]Entry, error) {
	seen := map[string]bool{}
	var entries []Entry
	for _, dep := range pom.DependencyManagement.Dependencies {
		version := Interpolate(dep.Version, pom)
		if version == "" || propertyRef.MatchString(version) {
			utils.Log.Debugf("Skipping %s:%s: unresolvable version %q",
				dep.GroupID, dep.ArtifactID, dep.Version)
			continue
		}
		coord := maven.Coordinate{GroupID: dep.GroupID, ArtifactID: dep.ArtifactID}
		if seen[coord.String()] {
			continue
		}
		seen[coord.String()] = true

		newest, err := l.Resolver.NewestRelease(ctx, coord)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			Coordinate:    coord,
			BOMVersion:    version,
			NewestVersion: newest,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Coordinate.String() < entries[j].Coordinate.String()
	})
	return entries, nil
}

var propertyRef = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate expands ${property} references in a version string against
// the POM's <properties> block, plus the project.version builtin. Expansion
// repeats a few times so properties may reference other properties; an
// unresolvable reference is left in place for the caller to reject.
func Interpolate(s string, pom *maven.POM) string {
	for i := 0; i < 5 && propertyRef.MatchString(s); i++ {
		s = propertyRef.ReplaceAllStringFunc(s, func(ref string) string {
			name := ref[2 : len(ref)-1]
			switch name {
			case "project.version", "pom.version":
				return pom.EffectiveVersion()
			case "project.groupId", "pom.groupId":
				return pom.EffectiveGroupID()
			}
			if v, ok := pom.Properties[name]; ok {
				return v
			}
			return ref
		})
	}
	return s
}
