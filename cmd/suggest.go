package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"fuzzydex/bktree"
	"fuzzydex/internal/store"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <word>",
	Short: "Find indexed words near a query word",
	Long: `Query the stored word index for every word within the given edit
distance of the query, closest first.

Example:
  fuzzydex suggest bok
  fuzzydex suggest recieve -d 3`,
	Args: cobra.ExactArgs(1),
	RunE: runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	query := args[0]

	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer s.Close()

	flat, err := s.LoadTree()
	if err != nil {
		return fmt.Errorf("failed to load index: %w", err)
	}
	if len(flat) == 0 {
		fmt.Println("Index is empty.")
		fmt.Println("Run 'fuzzydex index <wordlist>' to build one.")
		return nil
	}

	tree := bktree.Unflatten(bktree.Levenshtein, flat)
	matches := tree.Find(query, maxDist)

	if len(matches) == 0 {
		fmt.Printf("No words within distance %d of %q.\n", maxDist, query)
		return nil
	}

	// Find returns traversal order; present closest first.
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].Item < matches[j].Item
	})

	fmt.Printf("Words within distance %d of %q:\n", maxDist, query)
	for _, m := range matches {
		fmt.Printf("  %-24s %d\n", m.Item, m.Distance)
	}

	return nil
}
