package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fuzzydex/bktree"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Walk through a small fuzzy-matching example",
	Long: `Build a tree from a fixed word set, run a fuzzy query against it,
and do the same for a handful of integers under Hamming distance. Useful
for a first look at what the index does.`,
	Args: cobra.NoArgs,
	Run:  runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) {
	words := bktree.New(bktree.Levenshtein)
	words.InsertAll("book", "books", "boo", "boon", "cook", "cake", "cape", "cart")

	fmt.Println("Words within edit distance 2 of \"bo\":")
	for _, m := range words.Find("bo", 2) {
		fmt.Printf("  %-8s distance %d\n", m.Item, m.Distance)
	}

	ints := bktree.New(bktree.Hamming64)
	ints.InsertAll(0, 4, 5, 14, 15)

	fmt.Println("\nValues within Hamming distance 1 of 13:")
	for _, m := range ints.Find(13, 1) {
		fmt.Printf("  %-8d distance %d\n", m.Item, m.Distance)
	}
}
