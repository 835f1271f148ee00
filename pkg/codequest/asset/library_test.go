package asset

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/garunski/codequest/pkg/codequest/errors"
)

func writePNG(t *testing.T, dir, name string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestLibraryExists(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "loop.png", 4, 4)
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}

	lib := NewLibrary(dir)

	tests := []struct {
		name string
		want bool
	}{
		{"loop.png", true},
		{"missing.png", false},
		{"", false},
		{"nested", false},
		{"loop.png ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lib.Exists(tt.name); got != tt.want {
				t.Errorf("Exists(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestLibraryPath(t *testing.T) {
	lib := NewLibrary("images")
	if got, want := lib.Path("arrays.png"), filepath.Join("images", "arrays.png"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestImageResolverResolve(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "pointers.png", 8, 3)

	r := NewImageResolver(NewLibrary(dir))
	h, err := r.Resolve("pointers.png")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if h.Name != "pointers.png" || h.Format != "png" {
		t.Errorf("Resolve() = %+v, want png named pointers.png", h)
	}
	if h.Width != 8 || h.Height != 3 {
		t.Errorf("Resolve() dimensions = %dx%d, want 8x3", h.Width, h.Height)
	}
	if h.Size == 0 {
		t.Error("Resolve() size should be non-zero")
	}
}

func TestImageResolverResolve_Errors(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "notes.png"), []byte("not an image"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	r := NewImageResolver(NewLibrary(dir))

	for _, name := range []string{"missing.png", "notes.png"} {
		_, err := r.Resolve(name)
		if err == nil {
			t.Fatalf("Resolve(%q) should fail", name)
		}
		if !errors.Is(err, apperrors.ErrAssetResolution) {
			t.Errorf("Resolve(%q) error = %v, want ErrAssetResolution", name, err)
		}
	}
}
