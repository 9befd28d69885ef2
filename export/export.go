// Package export writes the board snapshot as a PNG image or a one-page PDF.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
)

const (
	PNGName = "AlienImageMap.png"
	PDFName = "AlienMap.pdf"
	// Inset is the padding kept around the board in snapshots, in pixels.
	Inset = 8
)

// PDF page placement in millimetres on A4 portrait.
const (
	pdfX = 8
	pdfY = 32
	pdfW = 195
	pdfH = 240
)

// Snapshot copies board grown by inset out of src. The result is clipped
// to src and starts at the origin.
func Snapshot(src image.Image, board image.Rectangle, inset int) *image.RGBA {
	r := board.Inset(-inset).Intersect(src.Bounds())
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), src, r.Min, draw.Src)
	return out
}

func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// EncodePDF places img on a black A4 page.
func EncodePDF(w io.Writer, img image.Image) error {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pageW, pageH := pdf.GetPageSize()
	pdf.SetFillColor(0, 0, 0)
	pdf.Rect(0, 0, pageW, pageH, "F")

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("board", opts, &buf)
	pdf.ImageOptions("board", pdfX, pdfY, pdfW, pdfH, false, opts, 0, "")
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("encode pdf: %w", err)
	}
	return nil
}

func WritePNG(dir string, img image.Image) (string, error) {
	return writeFile(dir, PNGName, img, EncodePNG)
}

func WritePDF(dir string, img image.Image) (string, error) {
	return writeFile(dir, PDFName, img, EncodePDF)
}

func writeFile(dir, name string, img image.Image, encode func(io.Writer, image.Image) error) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	if err := encode(f, img); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	return path, nil
}
