package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func board() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 200, 120))
	for y := 0; y < 120; y++ {
		for x := 0; x < 200; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	return img
}

func TestSnapshotInset(t *testing.T) {
	tests := []struct {
		name  string
		rect  image.Rectangle
		w, h  int
		first color.RGBA
	}{
		{"inside", image.Rect(50, 20, 150, 80), 116, 76, color.RGBA{R: 42, G: 12, A: 255}},
		{"clipped", image.Rect(0, 0, 64, 64), 72, 72, color.RGBA{R: 0, G: 0, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Snapshot(board(), tt.rect, Inset)
			if got.Bounds().Dx() != tt.w || got.Bounds().Dy() != tt.h {
				t.Fatalf("size = %v", got.Bounds())
			}
			if c := got.RGBAAt(0, 0); c != tt.first {
				t.Fatalf("first pixel = %v, want %v", c, tt.first)
			}
		})
	}
}

func TestWritePNG(t *testing.T) {
	dir := t.TempDir()
	path, err := WritePNG(dir, Snapshot(board(), image.Rect(10, 10, 42, 42), Inset))
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if filepath.Base(path) != PNGName {
		t.Fatalf("path = %s", path)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 48 || img.Bounds().Dy() != 48 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
}

func TestEncodePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodePDF(&buf, board()); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("not a pdf: %q", buf.Bytes()[:8])
	}
}

func TestWritePDF(t *testing.T) {
	path, err := WritePDF(filepath.Join(t.TempDir(), "out"), board())
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("empty pdf")
	}
}
