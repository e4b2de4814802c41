package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scijava/status.scijava.org/pkg/storage"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the fetch cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached component lists and issue stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := cachePath()
		if err != nil {
			return err
		}
		db, err := storage.Open(path)
		if err != nil {
			return err
		}
		defer db.Close()
		n, err := db.Purge(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Cleared %d cached entries\n", n)
		return nil
	},
}

var cachePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the fetch cache location",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := cachePath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cachePathCmd)
}
