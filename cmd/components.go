package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scijava/status.scijava.org/pkg/maven"
)

// componentsCmd implements: scijava-status components
//
// Prints the resolved (coordinate, BOM version, newest version) triples as
// CSV, one per line, deduplicated and sorted by coordinate.
var componentsCmd = &cobra.Command{
	Use:   "components",
	Short: "List BOM components with pinned and newest versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		bomURL, _ := cmd.Flags().GetString("bom")
		if bomURL == "" {
			bomURL = viper.GetString("bom.url")
		}
		repoBase, _ := cmd.Flags().GetString("repo")
		if repoBase == "" {
			repoBase = viper.GetString("maven_repository")
		}
		fresh, _ := cmd.Flags().GetBool("fresh")

		cache := openCache()
		defer cache.Close()

		resolver := &maven.Resolver{Source: newSource(repoBase)}
		entries, err := newLister(resolver, cache, fresh).List(cmd.Context(), bomURL)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Println(e.CSV())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(componentsCmd)

	componentsCmd.Flags().StringP("bom", "b", "", "BOM descriptor URL or path (default from config)")
	componentsCmd.Flags().StringP("repo", "r", "", "Maven repository base URL or storage path (default from config; env MAVEN_REPOSITORY)")
	componentsCmd.Flags().Bool("fresh", false, "Bypass the component list cache")
}
