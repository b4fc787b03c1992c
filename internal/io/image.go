package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // webp decoder registration, used by video thumbnails
)

// ImageService provides image processing operations for cover art.
//
// ImageService is used to:
//   - Resize images to fit maximum dimensions before embedding them in tags
//   - Convert images (JPEG, PNG, webp) to JPEG for player compatibility
//
// Example usage:
//
//	svc := NewImageService()
//
//	// Thumbnail fetched from the video page
//	imageData, _ := fetcher.URLBytes(ctx, thumbnailURL)
//
//	// Convert to JPEG and resize to max 1000x1000
//	jpeg, _ := svc.ConvertToJPEG(ctx, imageData)
//	resized, _ := svc.ResizeImage(ctx, jpeg, 1000, 1000)
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// ResizeImage resizes an image to fit within the specified maximum dimensions.
//
// The aspect ratio is preserved. If the image is already smaller than the
// maximum dimensions, it will still be processed (re-encoded as JPEG).
//
// The Catmull-Rom algorithm is used for high-quality resizing.
//
// Example:
//
//	// Resize to fit within 1000x1000, maintaining aspect ratio
//	resized, err := svc.ResizeImage(ctx, imageData, 1000, 1000)
//	// A 1500x1000 image becomes 1000x666
//	// A 800x600 image remains 800x600 (but re-encoded)
func (s *ImageService) ResizeImage(ctx context.Context, data []byte, maxWidth, maxHeight int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Calculate new dimensions maintaining aspect ratio
	if width > maxWidth || height > maxHeight {
		ratio := float64(width) / float64(height)
		if float64(maxWidth)/float64(maxHeight) > ratio {
			// Height is the limiting factor
			width = int(float64(maxHeight) * ratio)
			height = maxHeight
		} else {
			// Width is the limiting factor
			height = int(float64(maxWidth) / ratio)
			width = maxWidth
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ConvertToJPEG converts an image to JPEG format.
//
// Video thumbnails are frequently webp, which most ID3 readers refuse to
// show, so thumbnails go through this before they are embedded.
//
// Returns the image as JPEG-encoded bytes with 90% quality.
func (s *ImageService) ConvertToJPEG(ctx context.Context, data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// CoverOptions controls PrepareCover.
type CoverOptions struct {
	ConvertToJPEG bool
	Resize        bool
	MaxSize       int
}

// PrepareCover applies the configured conversions to fetched cover art.
// Each step keeps its input when the image cannot be decoded, so undecodable
// art is embedded as fetched rather than dropped.
func (s *ImageService) PrepareCover(ctx context.Context, data []byte, opts CoverOptions) []byte {
	if len(data) == 0 {
		return data
	}
	if opts.ConvertToJPEG {
		if converted, err := s.ConvertToJPEG(ctx, data); err == nil {
			data = converted
		}
	}
	if opts.Resize && opts.MaxSize > 0 {
		if resized, err := s.ResizeImage(ctx, data, opts.MaxSize, opts.MaxSize); err == nil {
			data = resized
		}
	}
	return data
}

// DetectImageMIME sniffs the MIME type of image bytes. Anything that is not
// recognised as an image is reported as image/jpeg, the ID3 default.
func DetectImageMIME(data []byte) string {
	mt := mimetype.Detect(data)
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("image/jpeg") || m.Is("image/png") || m.Is("image/webp") || m.Is("image/gif") {
			return m.String()
		}
	}
	return "image/jpeg"
}
