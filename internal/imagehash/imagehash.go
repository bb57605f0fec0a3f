// Package imagehash computes 64-bit perceptual hashes for images and groups
// near-duplicates by querying a BK-tree under the Hamming metric.
package imagehash

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/corona10/goimagehash"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp"
)

// ImageInfo holds metadata and hash information for an image.
type ImageInfo struct {
	Path     string    `json:"path"`
	Hash     uint64    `json:"hash"`
	Width    int       `json:"width"`
	Height   int       `json:"height"`
	Format   string    `json:"format"`
	FileSize int64     `json:"file_size"`
	ModTime  time.Time `json:"mod_time"`
	HasExif  bool      `json:"has_exif"`
	Score    float64   `json:"score"`
}

// Hasher computes perceptual hashes for images.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// HashImage computes the perceptual hash and extracts metadata for an image.
func (h *Hasher) HashImage(path string) (*ImageInfo, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	// Check for EXIF data before decoding, as Decode consumes the reader.
	hasExif := checkExif(path)

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	hash, err := goimagehash.PerceptionHash(img)
	if err != nil {
		return nil, fmt.Errorf("failed to compute hash: %w", err)
	}

	bounds := img.Bounds()
	info := &ImageInfo{
		Path:     path,
		Hash:     hash.GetHash(),
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Format:   strings.ToLower(format),
		FileSize: stat.Size(),
		ModTime:  stat.ModTime(),
		HasExif:  hasExif,
	}
	info.Score = score(info)

	return info, nil
}

// HashImageWithTimeout hashes an image, giving up after the timeout.
func (h *Hasher) HashImageWithTimeout(path string, timeout time.Duration) (*ImageInfo, error) {
	done := make(chan struct{})
	var info *ImageInfo
	var err error

	go func() {
		info, err = h.HashImage(path)
		close(done)
	}()

	select {
	case <-done:
		return info, err
	case <-time.After(timeout):
		return nil, fmt.Errorf("timeout hashing image: %s", path)
	}
}

// checkExif reports whether an image file contains EXIF data.
func checkExif(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	_, err = exif.Decode(file)
	return err == nil
}

// score ranks an image for representative selection within a group.
// Resolution dominates; lossless formats and EXIF presence break ties.
func score(info *ImageInfo) float64 {
	resolution := float64(info.Width * info.Height)

	var format float64
	switch info.Format {
	case "png", "tiff", "bmp":
		format = 1.2
	case "webp":
		format = 1.1
	case "gif":
		format = 0.9
	default:
		format = 1.0
	}

	metadata := 1.0
	if info.HasExif {
		metadata = 1.1
	}

	return resolution * format * metadata
}

// IsSupportedImage reports whether the path has a supported image extension.
func IsSupportedImage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tiff", ".tif":
		return true
	default:
		return false
	}
}
