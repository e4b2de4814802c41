package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/scijava/status.scijava.org/internal/utils"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scijava-status",
	Short: "Release status reports for the SciJava component collection.",
	Long: `scijava-status polls a Maven repository to determine, for each component
in the SciJava BOM, whether its released version is current and whether the
BOM pin matches the newest release, and renders the result as a sortable
HTML status table.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.scijava-status.yaml)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".scijava-status")
		viper.SetConfigType("yaml")
	}

	// MAVEN_REPOSITORY overrides the repository base without a config edit.
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.scijava-status.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	// Set default empty values for all keys
	viper.SetDefault("bom.url", "https://raw.githubusercontent.com/scijava/pom-scijava/main/pom.xml")
	viper.SetDefault("maven_repository", "https://maven.scijava.org/content/groups/public")
	viper.SetDefault("github.token", "")
	viper.SetDefault("cache.path", "")
	viper.SetDefault("cache.ttl", "30m")

	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}

// cachePath resolves the fetch cache location: config override first, else
// a dotfile next to the config in the home directory.
func cachePath() (string, error) {
	if p := viper.GetString("cache.path"); p != "" {
		return p, nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".scijava-status.db"), nil
}
