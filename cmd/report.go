package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scijava/status.scijava.org/internal/utils"
	"github.com/scijava/status.scijava.org/pkg/maven"
	"github.com/scijava/status.scijava.org/pkg/projects"
	"github.com/scijava/status.scijava.org/pkg/report"
	"github.com/scijava/status.scijava.org/pkg/status"
)

// reportCmd implements: scijava-status report
//
// One sequential pass over the BOM's component list: per coordinate the
// metadata is fetched once, timestamps are resolved, the decision engine
// runs, and a table row is emitted. A single component's fetch failure
// degrades that row to unknown values; only an unreachable repository (or
// snapshot metadata with no identity) aborts the run.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the HTML status report",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		bomURL, _ := cmd.Flags().GetString("bom")
		if bomURL == "" {
			bomURL = viper.GetString("bom.url")
		}
		repoBase, _ := cmd.Flags().GetString("repo")
		if repoBase == "" {
			repoBase = viper.GetString("maven_repository")
		}
		mapsDir, _ := cmd.Flags().GetString("maps")
		output, _ := cmd.Flags().GetString("output")
		fresh, _ := cmd.Flags().GetBool("fresh")

		tables, err := loadTables(mapsDir)
		if err != nil {
			return fmt.Errorf("loading lookup tables: %w", err)
		}
		footer := ""
		if data, err := os.ReadFile(mapsDir + "/footer.html"); err == nil {
			footer = string(data)
		}

		cache := openCache()
		defer cache.Close()

		resolver := &maven.Resolver{Source: newSource(repoBase)}
		entries, err := newLister(resolver, cache, fresh).List(ctx, bomURL)
		if err != nil {
			return err
		}
		utils.Log.Infof("Processing %d components", len(entries))

		urls := projects.URLResolver{URLs: tables.URLs, GroupOrgs: tables.GroupOrgs}
		rows := make([]report.Row, 0, len(entries))
		for _, e := range entries {
			row, err := buildRow(ctx, resolver, urls, tables, e.Coordinate, e.BOMVersion, e.NewestVersion)
			if err != nil {
				utils.Log.Errorf("Cannot process %s: %v", e.Coordinate, err)
				return err
			}
			rows = append(rows, row)
		}

		rep := &report.Report{
			RepoBase:       viper.GetString("maven_repository"),
			BadgeOverrides: tables.Badges,
			Footer:         footer,
		}
		html, err := rep.HTML(rows)
		if err != nil {
			return err
		}
		if output == "-" {
			_, err = os.Stdout.Write(html)
			return err
		}
		return os.WriteFile(output, html, 0644)
	},
}

func buildRow(
	ctx context.Context,
	resolver *maven.Resolver,
	urls projects.URLResolver,
	tables lookupTables,
	coord maven.Coordinate,
	bomVersion, newestRelease string,
) (report.Row, error) {
	utils.Log.Debugf("Processing %s", coord)

	releaseTS, lastSnapshot, err := resolver.Timestamps(ctx, coord, newestRelease)
	if err != nil {
		// Fatal: either the repository is unreachable or the snapshot
		// metadata has no identity. No coordinate can be trusted either way.
		return report.Row{}, err
	}

	url := urls.URL(coord)
	if url == "" && newestRelease != "" {
		// Fall back to the POM's scm URL for projects outside the known
		// groups. Failure here only costs us the link.
		if pom, perr := resolver.POM(ctx, coord, newestRelease); perr == nil && pom != nil {
			url = pom.SCM.URL
		}
	}

	st := status.Evaluate(status.Signals{
		BOMVersion:    bomVersion,
		NewestRelease: newestRelease,
		ReleaseTime:   releaseTS,
		LastSnapshot:  lastSnapshot,
		Override:      tables.Timestamps.Timestamp(coord.String()),
		HasURL:        url != "",
	})
	utils.Log.Debugf("%s: action=%s maintenance=%d",
		coord, st.Action, status.MaintenanceScore(st.LastVetted, lastSnapshot))

	return report.Row{
		Coordinate:    coord,
		URL:           url,
		BOMVersion:    bomVersion,
		NewestRelease: newestRelease,
		LastUpdated:   lastSnapshot,
		Status:        st,
	}, nil
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringP("bom", "b", "", "BOM descriptor URL or path (default from config)")
	reportCmd.Flags().StringP("repo", "r", "", "Maven repository base URL or storage path (default from config; env MAVEN_REPOSITORY)")
	reportCmd.Flags().StringP("maps", "m", ".", "Directory holding the lookup tables (urls.txt, group-orgs.txt, timestamps.txt, ci-badges.txt)")
	reportCmd.Flags().StringP("output", "o", "-", "Output file (- for stdout)")
	reportCmd.Flags().Bool("fresh", false, "Bypass the component list cache")
}
