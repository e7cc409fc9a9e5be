package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
)

func TestCaptureFromPixels(t *testing.T) {
	dir := t.TempDir()
	sc := NewScreenshotCapture(dir, "test")

	// 2x2 image: bottom row red, top row blue, in GL bottom-up order.
	pixels := []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}

	path, err := sc.CaptureFromPixels(pixels, 2, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels failed: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("capture written to %s, want directory %s", path, dir)
	}
	if !strings.HasSuffix(path, ".png") {
		t.Errorf("capture path %s, want .png", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening capture: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding capture: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Fatalf("capture size %dx%d, want 2x2", b.Dx(), b.Dy())
	}

	// The blue GL row was on top, so after the flip it is row 0.
	r, _, b, _ := img.At(0, 0).RGBA()
	if r != 0 || b != 0xffff {
		t.Errorf("top-left pixel (r=%d b=%d), want blue after vertical flip", r, b)
	}
	r, _, b, _ = img.At(0, 1).RGBA()
	if r != 0xffff || b != 0 {
		t.Errorf("bottom-left pixel (r=%d b=%d), want red after vertical flip", r, b)
	}
}

func TestCaptureFromPixelsBMP(t *testing.T) {
	dir := t.TempDir()
	sc := NewScreenshotCapture(dir, "test")
	sc.SetFormat("bmp")

	pixels := []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}

	path, err := sc.CaptureFromPixels(pixels, 2, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels failed: %v", err)
	}
	if !strings.HasSuffix(path, ".bmp") {
		t.Errorf("capture path %s, want .bmp", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening capture: %v", err)
	}
	defer f.Close()

	img, err := bmp.Decode(f)
	if err != nil {
		t.Fatalf("decoding capture: %v", err)
	}
	r, _, b, _ := img.At(0, 0).RGBA()
	if r != 0 || b != 0xffff {
		t.Errorf("top-left pixel (r=%d b=%d), want blue after vertical flip", r, b)
	}
}

func TestSetFormatFallback(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "test")

	sc.SetFormat(" BMP ")
	if !strings.HasSuffix(sc.Filename(), ".bmp") {
		t.Error("padded/uppercase bmp not recognized")
	}

	sc.SetFormat("jpeg")
	if !strings.HasSuffix(sc.Filename(), ".png") {
		t.Error("unrecognized format did not fall back to png")
	}
}

func TestCaptureFromPixelsSizeMismatch(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "test")
	if _, err := sc.CaptureFromPixels(make([]byte, 7), 2, 2); err == nil {
		t.Error("expected an error for mismatched pixel data size")
	}
}
