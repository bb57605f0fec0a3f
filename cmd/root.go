package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	dbPath  string
	maxDist int
	workers int
)

var rootCmd = &cobra.Command{
	Use:   "fuzzydex",
	Short: "Fuzzy matching for words and images using a BK-tree",
	Long: `fuzzydex indexes discrete items in a BK-tree and answers approximate
match queries under a metric distance: edit distance for words, Hamming
distance for 64-bit perceptual image hashes.

Example usage:
  fuzzydex index ./words.txt           # Build a word index
  fuzzydex suggest bok                 # Words within edit distance of "bok"
  fuzzydex images ./photos             # Group near-duplicate images
  fuzzydex export -o index.json        # Dump the stored tree structure
  fuzzydex demo                        # Walk through a small example`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Default database path
	homeDir, _ := os.UserHomeDir()
	defaultDB := filepath.Join(homeDir, ".fuzzydex", "index.db")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file (default ~/.fuzzydex.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "Path to SQLite index database")
	rootCmd.PersistentFlags().IntVarP(&maxDist, "distance", "d", 2, "Maximum distance for suggest queries")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 8, "Number of parallel workers for image scanning")

	viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("distance", rootCmd.PersistentFlags().Lookup("distance"))
	viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
}

// initConfig layers defaults < config file < environment < flags.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".fuzzydex")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("FUZZYDEX")
	viper.AutomaticEnv()

	// Missing config file is fine; flags and env still apply.
	_ = viper.ReadInConfig()

	dbPath = viper.GetString("db")
	maxDist = viper.GetInt("distance")
	workers = viper.GetInt("workers")
}
