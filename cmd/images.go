package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"fuzzydex/internal/imagehash"
)

var imagesThreshold int

var imagesCmd = &cobra.Command{
	Use:   "images <folder>",
	Short: "Group near-duplicate images in a folder",
	Long: `Scan a folder recursively, compute a 64-bit perceptual hash for
every image, and group images whose hashes fall within the Hamming
distance threshold of each other. The highest-quality image in each
group (resolution, format, metadata) is listed first.

Example:
  fuzzydex images ./photos
  fuzzydex images ./photos --threshold 5`,
	Args: cobra.ExactArgs(1),
	RunE: runImages,
}

func init() {
	imagesCmd.Flags().IntVar(&imagesThreshold, "threshold", 10, "Hamming distance threshold (0-64, lower = stricter)")
	rootCmd.AddCommand(imagesCmd)
}

func runImages(cmd *cobra.Command, args []string) error {
	folder := args[0]

	absFolder, err := filepath.Abs(folder)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absFolder)
	if err != nil {
		return fmt.Errorf("folder not found: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", absFolder)
	}

	fmt.Printf("Scanning: %s\n", absFolder)
	fmt.Printf("Threshold: %d (Hamming distance)\n", imagesThreshold)
	fmt.Printf("Workers: %d\n\n", workers)

	lastLine := ""
	scanner := imagehash.NewScanner(
		imagehash.WithWorkers(workers),
		imagehash.WithProgress(func(scanned, total int, current string) {
			if lastLine != "" {
				fmt.Print("\r" + strings.Repeat(" ", len(lastLine)) + "\r")
			}
			shortPath := current
			if len(shortPath) > 50 {
				shortPath = "..." + shortPath[len(shortPath)-47:]
			}
			lastLine = fmt.Sprintf("Progress: %d/%d  %s", scanned, total, shortPath)
			fmt.Print(lastLine)
		}),
	)

	images, err := scanner.ScanFolder(absFolder)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if lastLine != "" {
		fmt.Print("\r" + strings.Repeat(" ", len(lastLine)) + "\r")
	}

	fmt.Printf("Scanned: %d images\n", len(images))
	if len(images) == 0 {
		fmt.Println("No images found.")
		return nil
	}

	groups := imagehash.FindGroups(images, imagesThreshold)

	fmt.Println()
	fmt.Println("=== Scan Complete ===")
	fmt.Printf("Total images:     %d\n", len(images))
	fmt.Printf("Duplicate groups: %d\n", len(groups))

	for _, g := range groups {
		fmt.Printf("\nGroup %d (%d images):\n", g.ID, len(g.Images))
		for i, img := range g.Images {
			marker := " "
			if i == 0 {
				marker = "*" // representative
			}
			fmt.Printf("  %s %s (%dx%d %s)\n", marker, img.Path, img.Width, img.Height, img.Format)
		}
	}

	return nil
}
