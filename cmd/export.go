package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fuzzydex/internal/store"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump the stored tree structure as JSON",
	Long: `Write the stored word tree in its flattened form: an array of
nodes, root first, each holding its word and child edges as (distance,
index) pairs. The output can be inspected or fed to other tools; the
structure round-trips losslessly.

Example:
  fuzzydex export
  fuzzydex export -o index.json`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer s.Close()

	flat, err := s.LoadTree()
	if err != nil {
		return fmt.Errorf("failed to load index: %w", err)
	}

	data, err := json.MarshalIndent(flat, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode tree: %w", err)
	}
	data = append(data, '\n')

	if exportOut == "" {
		_, err = os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(exportOut, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOut, err)
	}
	fmt.Printf("Wrote %d nodes to %s\n", len(flat), exportOut)
	return nil
}
