// Package images prepares local image files for bulletin embedding: type
// sniffing, width bounding and JPEG re-encoding. Remote images are left to
// their hosts, the pipeline only rewrites their URLs.
package images

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	"go.uber.org/zap"

	"bbld/common"
)

// Options bounds the optimizer output.
type Options struct {
	// MaxWidth is the widest the optimized image may be, in px.
	MaxWidth int
	// JPEGQuality is the re-encoding quality, 1-100.
	JPEGQuality int
	// Resize selects how oversized images are brought under MaxWidth.
	Resize common.ImageResizeMode
}

// optimizedSuffix marks optimizer output files, also used to recognize and
// skip already optimized input.
const optimizedSuffix = "-email"

// Optimize re-encodes an oversized local image into a width-bounded JPEG
// next to the original and returns the new path. Inputs that need no work
// (small enough, already optimized, animated, undecodable as stills) are
// returned unchanged.
func Optimize(path string, opts Options, log *zap.Logger) (string, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("images")

	if strings.HasSuffix(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), optimizedSuffix) {
		return path, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("unable to read image %s: %w", path, err)
	}

	var img image.Image
	switch {
	case looksLikeSVG(data):
		if img, err = RasterizeSVG(data, opts.MaxWidth, 0); err != nil {
			return "", fmt.Errorf("unable to rasterize SVG %s: %w", path, err)
		}
	default:
		t, _ := filetype.Match(data)
		if t.MIME.Value == "image/gif" {
			// re-encoding would drop animation frames
			log.Debug("Skipping GIF", zap.String("path", path))
			return path, nil
		}
		img, err = imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
		if err != nil {
			log.Warn("Unable to decode image - leaving as is", zap.String("path", path), zap.Error(err))
			return path, nil
		}
		if t.MIME.Subtype == "jpg" && img.Bounds().Dx() <= opts.MaxWidth {
			return path, nil
		}
	}

	if img.Bounds().Dx() > opts.MaxWidth && opts.MaxWidth > 0 {
		switch opts.Resize {
		case common.ImageResizeModeNone:
		case common.ImageResizeModeStretch:
			img = imaging.Resize(img, opts.MaxWidth, img.Bounds().Dy(), imaging.Lanczos)
		default:
			img = imaging.Resize(img, opts.MaxWidth, 0, imaging.Lanczos)
		}
	}

	out := strings.TrimSuffix(path, filepath.Ext(path)) + optimizedSuffix + ".jpg"
	if err := imaging.Save(img, out, imaging.JPEGQuality(opts.JPEGQuality)); err != nil {
		return "", fmt.Errorf("unable to save optimized image %s: %w", out, err)
	}

	log.Debug("Optimized image",
		zap.String("src", path), zap.String("dst", out),
		zap.Int("width", img.Bounds().Dx()), zap.Int("height", img.Bounds().Dy()))
	return out, nil
}

// looksLikeSVG sniffs SVG by content, filetype has no matcher for it.
func looksLikeSVG(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.Contains(head, []byte("<svg"))
}
