package imagehash

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestIsSupportedImage(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"photo.jpg", true},
		{"photo.jpeg", true},
		{"photo.JPG", true},
		{"photo.png", true},
		{"photo.gif", true},
		{"photo.webp", true},
		{"photo.bmp", true},
		{"photo.tiff", true},
		{"photo.tif", true},
		{"document.pdf", false},
		{"video.mp4", false},
		{"noextension", false},
		{"/path/to/photo.jpg", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsSupportedImage(tt.path); got != tt.expected {
				t.Errorf("IsSupportedImage(%q) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}

// writeTestPNG writes a small gradient PNG and returns its path. The seed
// shifts the gradient so different seeds produce visually different images.
func writeTestPNG(t *testing.T, dir, name string, seed uint8) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x*4) + seed, G: uint8(y * 4), B: seed, A: 255})
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test image: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return path
}

func TestHashImage(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "a.png", 0)

	h := NewHasher()
	info, err := h.HashImage(path)
	if err != nil {
		t.Fatalf("HashImage failed: %v", err)
	}

	if info.Width != 64 || info.Height != 64 {
		t.Errorf("dimensions = %dx%d, want 64x64", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("format = %q, want png", info.Format)
	}
	if info.FileSize == 0 {
		t.Error("expected non-zero file size")
	}
	if info.Score <= 0 {
		t.Errorf("score = %f, want > 0", info.Score)
	}
}

func TestHashImage_IdenticalImagesHashEqual(t *testing.T) {
	dir := t.TempDir()
	a := writeTestPNG(t, dir, "a.png", 0)
	b := writeTestPNG(t, dir, "b.png", 0)

	h := NewHasher()
	infoA, err := h.HashImage(a)
	if err != nil {
		t.Fatalf("HashImage(a) failed: %v", err)
	}
	infoB, err := h.HashImage(b)
	if err != nil {
		t.Fatalf("HashImage(b) failed: %v", err)
	}

	if infoA.Hash != infoB.Hash {
		t.Errorf("identical images hashed differently: %#x vs %#x", infoA.Hash, infoB.Hash)
	}
}

func TestHashImage_NotAnImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fake.png")
	if err := os.WriteFile(path, []byte("not a png"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	h := NewHasher()
	if _, err := h.HashImage(path); err == nil {
		t.Error("expected error for non-image file")
	}
}

func TestScanner_Defaults(t *testing.T) {
	s := NewScanner()

	if s.workers != 8 {
		t.Errorf("default workers = %d, want 8", s.workers)
	}
	if s.timeout != 30*time.Second {
		t.Errorf("default timeout = %v, want 30s", s.timeout)
	}

	// Zero or negative workers keep the default
	if s = NewScanner(WithWorkers(0)); s.workers != 8 {
		t.Errorf("workers with 0 = %d, want 8", s.workers)
	}
	if s = NewScanner(WithWorkers(4)); s.workers != 4 {
		t.Errorf("workers = %d, want 4", s.workers)
	}
}

func TestScanner_ScanFolder(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, dir, "a.png", 0)
	writeTestPNG(t, dir, "b.png", 100)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	var progressCalls atomic.Int32
	s := NewScanner(
		WithWorkers(2),
		WithProgress(func(scanned, total int, current string) {
			progressCalls.Add(1)
			if total != 2 {
				t.Errorf("progress total = %d, want 2", total)
			}
		}),
	)

	infos, err := s.ScanFolder(dir)
	if err != nil {
		t.Fatalf("ScanFolder failed: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 images, got %d", len(infos))
	}
	if progressCalls.Load() == 0 {
		t.Error("expected progress callback to fire")
	}
}

func TestScanner_ScanFolder_Empty(t *testing.T) {
	s := NewScanner()
	infos, err := s.ScanFolder(t.TempDir())
	if err != nil {
		t.Fatalf("ScanFolder failed: %v", err)
	}
	if len(infos) != 0 {
		t.Errorf("expected no images, got %d", len(infos))
	}
}
