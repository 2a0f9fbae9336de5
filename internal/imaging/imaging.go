package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"
)

// AvatarSize is the width and height of stored avatars.
const AvatarSize = 256

// MaxUploadBytes caps the size of an uploaded image.
const MaxUploadBytes = 5 << 20

// JPEGQuality is the compression quality for JPEG output.
const JPEGQuality = 85

// AllowedMIME lists the accepted input MIME types.
var AllowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Avatar is a processed profile picture.
type Avatar struct {
	Data []byte
	MIME string
}

// ProcessAvatar validates an uploaded image by sniffing its bytes, crops it
// to a centered square, downscales it to AvatarSize and re-encodes it as JPEG.
// Images smaller than AvatarSize are cropped but not upscaled.
func ProcessAvatar(r io.Reader) (*Avatar, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return nil, fmt.Errorf("image exceeds %d bytes", MaxUploadBytes)
	}

	detected := http.DetectContentType(data)
	if !AllowedMIME[detected] {
		return nil, fmt.Errorf("unsupported image format: %s (only JPEG and PNG accepted)", detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	img = squareThumbnail(img, AvatarSize)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}

	return &Avatar{
		Data: buf.Bytes(),
		MIME: "image/jpeg",
	}, nil
}

// squareThumbnail crops the largest centered square from img and scales it
// down to at most size pixels per side using Catmull-Rom interpolation.
func squareThumbnail(img image.Image, size int) image.Image {
	bounds := img.Bounds()
	side := min(bounds.Dx(), bounds.Dy())
	x0 := bounds.Min.X + (bounds.Dx()-side)/2
	y0 := bounds.Min.Y + (bounds.Dy()-side)/2
	src := image.Rect(x0, y0, x0+side, y0+side)

	out := min(side, size)
	if out < 1 {
		out = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, out, out))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Over, nil)
	return dst
}
