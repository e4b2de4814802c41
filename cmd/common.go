package cmd

import (
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/scijava/status.scijava.org/internal/utils"
	"github.com/scijava/status.scijava.org/pkg/bom"
	"github.com/scijava/status.scijava.org/pkg/mapfile"
	"github.com/scijava/status.scijava.org/pkg/maven"
	"github.com/scijava/status.scijava.org/pkg/storage"
)

// newSource picks the repository transport: an existing directory is a
// local storage mirror, anything else is treated as a remote base URL.
func newSource(repoBase string) maven.Source {
	if fi, err := os.Stat(repoBase); err == nil && fi.IsDir() {
		utils.Log.Debugf("Using local repository storage at %s", repoBase)
		return &maven.LocalSource{Root: repoBase}
	}
	return maven.NewRemoteSource(repoBase)
}

// openCache opens the fetch cache. Cache trouble never blocks a run; it
// just means the expensive steps re-run.
func openCache() *storage.DB {
	path, err := cachePath()
	if err != nil {
		utils.Log.Warnf("Could not resolve cache path: %v", err)
		return nil
	}
	db, err := storage.Open(path)
	if err != nil {
		utils.Log.Warnf("Could not open cache at %s: %v", path, err)
		return nil
	}
	return db
}

func cacheTTL() time.Duration {
	ttl, err := time.ParseDuration(viper.GetString("cache.ttl"))
	if err != nil {
		return 30 * time.Minute
	}
	return ttl
}

func newLister(resolver *maven.Resolver, cache *storage.DB, fresh bool) *bom.Lister {
	return &bom.Lister{
		Resolver: resolver,
		Cache:    cache,
		CacheTTL: cacheTTL(),
		Fresh:    fresh,
	}
}

// lookupTables are the flat text mappings consulted by the report,
// loaded once at startup.
type lookupTables struct {
	URLs       mapfile.Map // urls.txt: coordinate -> source URL
	GroupOrgs  mapfile.Map // group-orgs.txt: groupId -> GitHub org
	Timestamps mapfile.Map // timestamps.txt: coordinate -> vetted timestamp
	Badges     mapfile.Map // ci-badges.txt: GitHub slug -> badge HTML
}

func loadTables(dir string) (lookupTables, error) {
	var t lookupTables
	var err error
	if t.URLs, err = mapfile.Load(dir+"/urls.txt", " "); err != nil {
		return t, err
	}
	if t.GroupOrgs, err = mapfile.Load(dir+"/group-orgs.txt", " "); err != nil {
		return t, err
	}
	if t.Timestamps, err = mapfile.Load(dir+"/timestamps.txt", " "); err != nil {
		return t, err
	}
	if t.Badges, err = mapfile.Load(dir+"/ci-badges.txt", " "); err != nil {
		return t, err
	}
	return t, nil
}
