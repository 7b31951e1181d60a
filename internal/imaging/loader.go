package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ImageInfo describes a decoded image.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the decoder name reported by image.Decode, e.g. "png",
	// "jpeg", "gif", "bmp", "tiff" or "webp".
	Format string `json:"format"`

	// Channels is 3 for images that report themselves opaque and 4
	// otherwise, matching the raster the effect works on.
	Channels int `json:"channels"`
}

// Decode reads an image in any registered format.
//
// Parameters:
//   - r: The encoded image data. PNG, JPEG, GIF, BMP, TIFF and WebP are
//     recognized by their leading bytes, not by any file name.
//
// Returns:
//   - image.Image: The decoded image. The concrete type depends on the format
//     and color model (e.g., *image.NRGBA, *image.YCbCr, *image.Paletted).
//   - string: The format name reported by the decoder, e.g. "png".
//   - error: Non-nil if the data cannot be decoded.
//
// # Errors
//
//   - Returns an error wrapping image.ErrFormat if no decoder recognizes r
//   - Returns an error wrapping the decoder's error for truncated or corrupt data
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return img, format, nil
}

// Info returns the metadata of a decoded image.
func Info(img image.Image, format string) ImageInfo {
	bounds := img.Bounds()
	return ImageInfo{
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Format:   format,
		Channels: channelCount(img),
	}
}

// EncodePNG writes img as PNG. Opaque images are written without an alpha
// channel.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

// Open loads an image file from disk.
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return img, nil
}

// Save writes an image to disk, choosing the format from the file
// extension.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
