package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"fuzzydex/bktree"
	"fuzzydex/internal/store"
)

var indexCmd = &cobra.Command{
	Use:   "index <wordlist>",
	Short: "Build a word index from a wordlist file",
	Long: `Read a wordlist (one word per line), build a BK-tree under edit
distance, and persist it to the database. A word already present at edit
distance 0 is stored once.

Re-running index replaces the stored tree.

Example:
  fuzzydex index /usr/share/dict/words
  fuzzydex index ./names.txt --db ./names.db`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	path := args[0]

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open wordlist: %w", err)
	}
	defer file.Close()

	tree := bktree.New(bktree.Levenshtein)
	lines := 0

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		tree.Insert(word)
		lines++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read wordlist: %w", err)
	}

	if tree.Len() == 0 {
		fmt.Println("No words found.")
		return nil
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer s.Close()

	if err := s.SaveTree(tree.Flatten()); err != nil {
		return fmt.Errorf("failed to save index: %w", err)
	}
	if err := s.RecordIndex(path, tree.Len()); err != nil {
		return fmt.Errorf("failed to record index run: %w", err)
	}

	fmt.Println("=== Index Complete ===")
	fmt.Printf("Words read:   %d\n", lines)
	fmt.Printf("Words stored: %d\n", tree.Len())
	fmt.Printf("Database:     %s\n", dbPath)

	if dup := lines - tree.Len(); dup > 0 {
		fmt.Printf("Duplicates:   %d (dropped)\n", dup)
	}

	return nil
}
