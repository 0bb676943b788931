// Package media normalises exercise images into small static WebP files.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	_ "image/jpeg" // Register decoders used by image.Decode
	_ "image/png"
	"log"
	"math"
	"strings"

	"github.com/chai2010/webp"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	// TargetExtension and ContentType describe every converted output.
	TargetExtension = "webp"
	ContentType     = "image/webp"

	DefaultMaxDimension = 800
	DefaultQuality      = 85
)

var (
	ErrEmptyInput = errors.New("empty image data")
	ErrDecode     = errors.New("failed to decode image")
	ErrEncode     = errors.New("failed to encode image")
)

// Result is a converted image plus what happened to it on the way.
type Result struct {
	Data          []byte
	SourceFormat  string // as reported by image.Decode, empty on passthrough
	Width         int
	Height        int
	Animated      bool
	Resized       bool
	PassedThrough bool
}

// Converter turns arbitrary raster images into static WebP.
type Converter struct {
	MaxDimension int     // Longest side allowed in the output
	Quality      float32 // Lossy WebP quality, 0-100
}

// NewConverter returns a converter, falling back to the defaults for non-positive values.
func NewConverter(maxDimension, quality int) *Converter {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	return &Converter{MaxDimension: maxDimension, Quality: float32(quality)}
}

// IsTarget reports whether filename already carries the output format.
func IsTarget(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), "."+TargetExtension)
}

// Convert decodes data, keeps only the first frame of animations, flattens it
// onto an opaque background, shrinks it to MaxDimension and encodes WebP.
// Files already named *.webp are returned untouched.
func (c *Converter) Convert(data []byte, filename string) (*Result, error) {
	if IsTarget(filename) {
		log.Printf("INFO: %s is already WebP, keeping original bytes", filename)
		return &Result{Data: data, PassedThrough: true}, nil
	}
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrDecode, filename, err)
	}
	log.Printf("INFO: Converting %s (%s) to WebP", filename, strings.ToUpper(format))

	res := &Result{SourceFormat: format}
	if format == "gif" {
		// image.Decode already returned frame zero; count frames to report it.
		if all, err := gif.DecodeAll(bytes.NewReader(data)); err == nil && len(all.Image) > 1 {
			res.Animated = true
			log.Printf("INFO: Animated GIF with %d frames flattened to its first frame", len(all.Image))
		}
	}

	img := flatten(src)

	b := img.Bounds()
	w, h := fitWithin(b.Dx(), b.Dy(), c.MaxDimension)
	if w != b.Dx() || h != b.Dy() {
		scaled := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, b, draw.Src, nil)
		img = scaled
		res.Resized = true
		log.Printf("INFO: Resized %s from %dx%d to %dx%d", filename, b.Dx(), b.Dy(), w, h)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Lossless: false, Quality: c.Quality}); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrEncode, filename, err)
	}

	res.Data = buf.Bytes()
	res.Width, res.Height = w, h
	log.Printf("INFO: WebP generated: %dKB", len(res.Data)/1024)
	return res, nil
}

// flatten draws src over opaque white, dropping alpha and palettes.
func flatten(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	return dst
}

// fitWithin scales (w, h) down so that neither side exceeds limit, keeping the
// aspect ratio. Sizes already within limit are returned unchanged.
func fitWithin(w, h, limit int) (int, int) {
	if w <= limit && h <= limit {
		return w, h
	}
	if w >= h {
		return limit, atLeastOne(math.Round(float64(h) * float64(limit) / float64(w)))
	}
	return atLeastOne(math.Round(float64(w) * float64(limit) / float64(h))), limit
}

func atLeastOne(v float64) int {
	if v < 1 {
		return 1
	}
	return int(v)
}
