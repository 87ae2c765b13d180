// Package imagedecode decodes encoded image files into packed 8-bit pixel
// buffers ready for texture upload.
//
// PNG, JPEG, GIF, BMP, TIFF and WebP are supported. Images whose color
// model carries no alpha channel decode to LayoutRGB, everything else to
// LayoutRGBA with straight (non-premultiplied) alpha.
package imagedecode

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// Decode errors.
var (
	// ErrEmptyData is returned when the input holds no bytes.
	ErrEmptyData = errors.New("imagedecode: empty data")

	// ErrUnsupportedFormat is returned for an unknown format hint.
	ErrUnsupportedFormat = errors.New("imagedecode: unsupported format")
)

// Format identifies an encoded image format.
type Format uint8

const (
	// FormatAuto detects the format from the data.
	FormatAuto Format = iota
	FormatPNG
	FormatJPEG
	FormatGIF
	FormatBMP
	FormatTIFF
	FormatWebP
)

var formatNames = [...]string{
	FormatAuto: "auto",
	FormatPNG:  "png",
	FormatJPEG: "jpeg",
	FormatGIF:  "gif",
	FormatBMP:  "bmp",
	FormatTIFF: "tiff",
	FormatWebP: "webp",
}

// String returns the lower-case format name.
func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// FormatFromExtension guesses the format from a file name. It returns
// FormatAuto when the extension is not recognized.
func FormatFromExtension(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG
	case ".jpg", ".jpeg":
		return FormatJPEG
	case ".gif":
		return FormatGIF
	case ".bmp":
		return FormatBMP
	case ".tif", ".tiff":
		return FormatTIFF
	case ".webp":
		return FormatWebP
	default:
		return FormatAuto
	}
}

// Layout is the channel layout of decoded pixels.
type Layout uint8

const (
	// LayoutRGB is 3 bytes per pixel.
	LayoutRGB Layout = iota
	// LayoutRGBA is 4 bytes per pixel, straight alpha.
	LayoutRGBA
)

// BytesPerPixel returns 3 or 4.
func (l Layout) BytesPerPixel() int {
	if l == LayoutRGB {
		return 3
	}
	return 4
}

// Image is a decoded image. Rows are tightly packed, top row first.
type Image struct {
	Pixels []byte
	Width  int
	Height int
	Layout Layout
}

// Decode decodes data. A hint of FormatAuto sniffs the format from the
// header; any other hint forces that decoder.
func Decode(data []byte, hint Format) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	img, err := decodeWith(bytes.NewReader(data), hint)
	if err != nil {
		return nil, err
	}
	return FromStdImage(img), nil
}

// DecodeFile reads and decodes the file at path. Read failures are
// returned wrapped so that *os.PathError can be recovered with errors.As.
// When hint is FormatAuto the extension is tried before sniffing.
func DecodeFile(path string, hint Format) (*Image, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("imagedecode: read file: %w", err)
	}
	if hint == FormatAuto {
		if img, err := Decode(data, FormatFromExtension(path)); err == nil {
			return img, nil
		}
	}
	return Decode(data, hint)
}

func decodeWith(r io.Reader, hint Format) (image.Image, error) {
	var (
		img image.Image
		err error
	)
	switch hint {
	case FormatAuto:
		img, _, err = image.Decode(r)
	case FormatPNG:
		img, err = png.Decode(r)
	case FormatJPEG:
		img, err = jpeg.Decode(r)
	case FormatGIF:
		img, err = gif.Decode(r)
	case FormatBMP:
		img, err = bmp.Decode(r)
	case FormatTIFF:
		img, err = tiff.Decode(r)
	case FormatWebP:
		img, err = webp.Decode(r)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, hint)
	}
	if err != nil {
		return nil, fmt.Errorf("imagedecode: decode %v: %w", hint, err)
	}
	return img, nil
}

// FromStdImage converts img to packed pixels. Opaque color models produce
// LayoutRGB.
func FromStdImage(img image.Image) *Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Stride != w*4 || nrgba.Rect.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(nrgba, nrgba.Rect, img, b.Min, draw.Src)
	}

	if !hasAlpha(img.ColorModel()) {
		rgb := make([]byte, w*h*3)
		for i, j := 0, 0; j < len(rgb); i, j = i+4, j+3 {
			rgb[j+0] = nrgba.Pix[i+0]
			rgb[j+1] = nrgba.Pix[i+1]
			rgb[j+2] = nrgba.Pix[i+2]
		}
		return &Image{Pixels: rgb, Width: w, Height: h, Layout: LayoutRGB}
	}
	return &Image{Pixels: nrgba.Pix, Width: w, Height: h, Layout: LayoutRGBA}
}

func hasAlpha(m color.Model) bool {
	switch m {
	case color.YCbCrModel, color.GrayModel, color.Gray16Model, color.CMYKModel:
		return false
	default:
		return true
	}
}
