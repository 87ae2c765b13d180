package speedy

import (
	"errors"
	"fmt"
	"os"

	"github.com/gogpu/speedy/imagedecode"
)

// ImageDataType is the channel layout of raw pixel data.
type ImageDataType uint8

const (
	// ImageDataTypeRGB is 8-bit red, green and blue.
	ImageDataTypeRGB ImageDataType = iota
	// ImageDataTypeRGBA is 8-bit red, green, blue and straight alpha.
	ImageDataTypeRGBA
)

// BytesPerPixel returns the size of one pixel.
func (t ImageDataType) BytesPerPixel() int {
	if t == ImageDataTypeRGB {
		return 3
	}
	return 4
}

// String returns the layout name.
func (t ImageDataType) String() string {
	switch t {
	case ImageDataTypeRGB:
		return "RGB"
	case ImageDataTypeRGBA:
		return "RGBA"
	default:
		return fmt.Sprintf("ImageDataType(%d)", uint8(t))
	}
}

// ImageSmoothingMode selects the sampling filter used when an image is
// drawn at a size different from its own.
type ImageSmoothingMode uint8

const (
	// ImageSmoothingNearestNeighbor picks the closest texel.
	ImageSmoothingNearestNeighbor ImageSmoothingMode = iota
	// ImageSmoothingLinear interpolates between texels.
	ImageSmoothingLinear
)

// RawBitmapData is tightly packed pixel data read back from the framebuffer.
type RawBitmapData struct {
	Data   []byte
	Size   UVec2
	Format ImageDataType
}

// ImageErrorKind classifies an ImageCreationError.
type ImageErrorKind uint8

const (
	// ImageErrorInvalidSize means the pixel data does not match the
	// declared size and layout.
	ImageErrorInvalidSize ImageErrorKind = iota
	// ImageErrorDecode means the encoded bytes could not be decoded.
	ImageErrorDecode
	// ImageErrorIO means the image file could not be read.
	ImageErrorIO
	// ImageErrorBackend means the backend failed to allocate the texture.
	ImageErrorBackend
)

func (k ImageErrorKind) String() string {
	switch k {
	case ImageErrorInvalidSize:
		return "invalid size"
	case ImageErrorDecode:
		return "decode"
	case ImageErrorIO:
		return "io"
	case ImageErrorBackend:
		return "backend"
	default:
		return "unknown"
	}
}

// ImageCreationError is returned when an image cannot be created.
// Previously created images are not affected.
type ImageCreationError struct {
	Kind  ImageErrorKind
	Msg   string
	Cause error
}

func (e *ImageCreationError) Error() string {
	s := "speedy: image creation failed (" + e.Kind.String() + ")"
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

func (e *ImageCreationError) Unwrap() error {
	return e.Cause
}

// ImageHandle references a texture owned by a Renderer. It is valid until
// it is released or the Renderer is closed. Drawing a released handle, or
// one created by another Renderer, draws nothing.
type ImageHandle struct {
	id        TextureID
	size      UVec2
	format    ImageDataType
	smoothing ImageSmoothingMode
	owner     *imageRegistry
}

// Size returns the image size in pixels.
func (h *ImageHandle) Size() UVec2 { return h.size }

// Format returns the layout the image was created from.
func (h *ImageHandle) Format() ImageDataType { return h.format }

// Smoothing returns the sampling filter of the image.
func (h *ImageHandle) Smoothing() ImageSmoothingMode { return h.smoothing }

// Release destroys the texture. Further draws of h are no-ops.
func (h *ImageHandle) Release() {
	if h == nil || h.owner == nil {
		return
	}
	h.owner.release(h)
}

// imageRegistry owns the textures created through a Renderer.
type imageRegistry struct {
	backend Backend
	live    map[TextureID]*ImageHandle
	closed  bool
}

func newImageRegistry(b Backend) *imageRegistry {
	return &imageRegistry{backend: b, live: make(map[TextureID]*ImageHandle)}
}

// valid reports whether h belongs to r and is still alive.
func (r *imageRegistry) valid(h *ImageHandle) bool {
	return h != nil && h.owner == r && !r.closed && r.live[h.id] == h
}

func (r *imageRegistry) createFromRawPixels(format ImageDataType, smoothing ImageSmoothingMode, size UVec2, data []byte) (*ImageHandle, error) {
	if r.closed {
		return nil, &ImageCreationError{Kind: ImageErrorBackend, Msg: "renderer closed"}
	}
	if size.X == 0 || size.Y == 0 {
		return nil, &ImageCreationError{Kind: ImageErrorInvalidSize, Msg: fmt.Sprintf("zero size %dx%d", size.X, size.Y)}
	}
	want := int(size.X) * int(size.Y) * format.BytesPerPixel()
	if len(data) != want {
		return nil, &ImageCreationError{
			Kind: ImageErrorInvalidSize,
			Msg:  fmt.Sprintf("%d bytes for %dx%d %s, want %d", len(data), size.X, size.Y, format, want),
		}
	}

	id, err := r.backend.CreateTexture(TextureDescriptor{Size: size, Smoothing: smoothing}, toRGBA(format, data))
	if err != nil {
		return nil, &ImageCreationError{Kind: ImageErrorBackend, Cause: err}
	}
	h := &ImageHandle{id: id, size: size, format: format, smoothing: smoothing, owner: r}
	r.live[id] = h
	Logger().Debug("speedy: texture created", "id", id, "width", size.X, "height", size.Y, "format", format.String())
	return h, nil
}

func (r *imageRegistry) createFromFileBytes(hint imagedecode.Format, smoothing ImageSmoothingMode, data []byte) (*ImageHandle, error) {
	img, err := imagedecode.Decode(data, hint)
	if err != nil {
		return nil, &ImageCreationError{Kind: ImageErrorDecode, Cause: err}
	}
	return r.createFromDecoded(img, smoothing)
}

func (r *imageRegistry) createFromFilePath(path string, hint imagedecode.Format, smoothing ImageSmoothingMode) (*ImageHandle, error) {
	img, err := imagedecode.DecodeFile(path, hint)
	if err != nil {
		kind := ImageErrorDecode
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			kind = ImageErrorIO
		}
		return nil, &ImageCreationError{Kind: kind, Msg: path, Cause: err}
	}
	return r.createFromDecoded(img, smoothing)
}

func (r *imageRegistry) createFromDecoded(img *imagedecode.Image, smoothing ImageSmoothingMode) (*ImageHandle, error) {
	format := ImageDataTypeRGBA
	if img.Layout == imagedecode.LayoutRGB {
		format = ImageDataTypeRGB
	}
	return r.createFromRawPixels(format, smoothing, UVec2{X: uint32(img.Width), Y: uint32(img.Height)}, img.Pixels)
}

func (r *imageRegistry) release(h *ImageHandle) {
	if !r.valid(h) {
		return
	}
	delete(r.live, h.id)
	r.backend.DestroyTexture(h.id)
	h.owner = nil
}

// close destroys every live texture and invalidates all handles.
func (r *imageRegistry) close() {
	if r.closed {
		return
	}
	for id, h := range r.live {
		r.backend.DestroyTexture(id)
		h.owner = nil
	}
	clear(r.live)
	r.closed = true
}

// toRGBA converts packed pixels to RGBA8. RGBA input is returned as is.
func toRGBA(format ImageDataType, data []byte) []byte {
	if format == ImageDataTypeRGBA {
		return data
	}
	n := len(data) / 3
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		out[i*4+0] = data[i*3+0]
		out[i*4+1] = data[i*3+1]
		out[i*4+2] = data[i*3+2]
		out[i*4+3] = 0xFF
	}
	return out
}

// fromRGBA converts RGBA8 pixels to the requested layout.
func fromRGBA(format ImageDataType, rgba []byte) []byte {
	if format == ImageDataTypeRGBA {
		return rgba
	}
	n := len(rgba) / 4
	out := make([]byte, n*3)
	for i := 0; i < n; i++ {
		out[i*3+0] = rgba[i*4+0]
		out[i*3+1] = rgba[i*4+1]
		out[i*3+2] = rgba[i*4+2]
	}
	return out
}
