// Package testutil provides small fixtures shared by imgfs's test
// suites: synthetic JPEG payloads sized for fast round-trip tests.
package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
)

// JPEG encodes a solid-color width x height image and returns the
// resulting JPEG bytes. Two different seeds produce distinguishable
// (non-identical) content, useful for dedup tests that need two
// genuinely different payloads.
func JPEG(width, height int, seed byte) []byte {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	c := color.RGBA{R: seed, G: 128, B: 255 - seed, A: 255}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		panic(err) // fixture generation only; a failure here is a test bug
	}
	return buf.Bytes()
}
