package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scijava/status.scijava.org/internal/utils"
	"github.com/scijava/status.scijava.org/pkg/github"
	"github.com/scijava/status.scijava.org/pkg/status"
)

// issuesCmd implements: scijava-status issues [org ...]
//
// Harvests open GitHub issues for the given orgs (default: every org named
// in group-orgs.txt) and prints per-repository counts and attention scores.
var issuesCmd = &cobra.Command{
	Use:   "issues [org ...]",
	Short: "Summarize open GitHub issues for component orgs",
	RunE: func(cmd *cobra.Command, args []string) error {
		mapsDir, _ := cmd.Flags().GetString("maps")

		orgs := args
		if len(orgs) == 0 {
			tables, err := loadTables(mapsDir)
			if err != nil {
				return err
			}
			seen := map[string]bool{}
			for _, org := range tables.GroupOrgs {
				if !seen[org] {
					seen[org] = true
					orgs = append(orgs, org)
				}
			}
			sort.Strings(orgs)
		}
		if len(orgs) == 0 {
			return fmt.Errorf("no orgs given and no group-orgs.txt entries found in %s", mapsDir)
		}
		utils.Log.Infof("Loading issues for orgs: %v", orgs)

		cache := openCache()
		defer cache.Close()

		harvester := &github.Harvester{
			Token:    viper.GetString("github.token"),
			Cache:    cache,
			CacheTTL: cacheTTL(),
		}
		stats, err := harvester.OrgStats(cmd.Context(), orgs)
		if err != nil {
			return err
		}
		utils.Log.Infof("Retrieved issue stats for %d repositories", len(stats))

		slugs := make([]string, 0, len(stats))
		for slug := range stats {
			slugs = append(slugs, slug)
		}
		sort.Strings(slugs)

		fmt.Printf("%-50s %6s %6s %6s %8s %8s\n",
			"repository", "open", "prs", "drafts", "review", "support")
		for _, slug := range slugs {
			st := stats[slug]
			fmt.Printf("%-50s %6d %6d %6d %8d %8d\n",
				slug, st.Count, st.PRs, st.Drafts,
				status.ReviewScore(st), status.SupportScore(st))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(issuesCmd)

	issuesCmd.Flags().StringP("maps", "m", ".", "Directory holding group-orgs.txt")
}
