package imgfs

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/nfnt/resize"
)

// probeDimensions decodes only enough of buf to report its pixel
// dimensions, without producing a full resized copy.
func probeDimensions(buf []byte) (width, height uint32, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(buf))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: probing dimensions: %v", ErrImglib, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, fmt.Errorf("%w: non-positive image dimensions", ErrImglib)
	}
	return uint32(cfg.Width), uint32(cfg.Height), nil
}

// resizeJPEG decodes buf, resizes it so its largest dimension fits
// within (w, h) while preserving aspect ratio (thumbnail semantics),
// and re-encodes the result as a JPEG.
func resizeJPEG(buf []byte, w, h uint32) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding original: %v", ErrImglib, err)
	}

	resized := resize.Thumbnail(w, h, img, resize.Lanczos3)

	var out bytes.Buffer
	if err := jpeg.Encode(&out, resized, &jpeg.Options{Quality: jpeg.DefaultQuality}); err != nil {
		return nil, fmt.Errorf("%w: re-encoding resized image: %v", ErrImglib, err)
	}
	return out.Bytes(), nil
}
