// Package debug provides developer utilities that sit outside the render
// path, currently framebuffer screenshots.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/bmp"
)

// Format selects the on-disk encoding for captures.
type Format string

const (
	FormatPNG Format = "png"
	FormatBMP Format = "bmp"
)

// ScreenshotCapture saves timestamped captures of the framebuffer.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	format    Format
}

// NewScreenshotCapture creates a capture handler writing PNGs into outputDir.
func NewScreenshotCapture(outputDir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		format:    FormatPNG,
	}
}

// SetOutputDir changes where captures are written.
func (sc *ScreenshotCapture) SetOutputDir(dir string) {
	sc.outputDir = dir
}

// SetFormat selects the capture encoding. Unrecognized names keep PNG.
func (sc *ScreenshotCapture) SetFormat(name string) {
	if Format(strings.ToLower(strings.TrimSpace(name))) == FormatBMP {
		sc.format = FormatBMP
		return
	}
	sc.format = FormatPNG
}

// Capture reads the current framebuffer and saves it. Must run on the
// thread that owns the GL context, after the frame has been drawn.
func (sc *ScreenshotCapture) Capture(width, height int) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("invalid capture size %dx%d", width, height)
	}
	pixels := make([]byte, width*height*4)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return sc.CaptureFromPixels(pixels, width, height)
}

// CaptureFromPixels saves raw RGBA pixel data in the configured format. The
// rows are flipped vertically since OpenGL reads from the bottom-left.
func (sc *ScreenshotCapture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		srcY := height - 1 - y
		copy(img.Pix[y*img.Stride:y*img.Stride+rowSize], pixels[srcY*rowSize:srcY*rowSize+rowSize])
	}

	filename := sc.Filename()
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if sc.format == FormatBMP {
		err = bmp.Encode(file, img)
	} else {
		err = png.Encode(file, img)
	}
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", sc.format, err)
	}
	return filename, nil
}

// Filename returns the timestamped path the next capture would be saved to.
func (sc *ScreenshotCapture) Filename() string {
	ext := string(FormatPNG)
	if sc.format == FormatBMP {
		ext = string(FormatBMP)
	}
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s.%s", sc.prefix, timestamp, ext)
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}
