package article

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Maximum embedded widths. Both are twice the on-card size so the badge
// stays sharp on high-density screens.
const (
	CoverMaxWidth  = 820
	AvatarMaxWidth = 96
)

const jpegQuality = 80

// maxDecodePixels bounds the images downscale will decode. A small file can
// declare dimensions whose pixel buffer would not fit in memory.
const maxDecodePixels = 40_000_000

var (
	errImageTooLarge  = errors.New("image exceeds size limit")
	errImageTooManyPx = errors.New("image dimensions exceed decode limit")
)

// EmbeddedImage is an image ready to be inlined as a data URI. The zero
// value means the image is absent.
type EmbeddedImage struct {
	MIMEType string
	Base64   string
}

// Absent reports whether there is no image to draw.
func (i EmbeddedImage) Absent() bool {
	return i.Base64 == ""
}

// DataURI returns the image as a data: URI.
func (i EmbeddedImage) DataURI() string {
	return "data:" + i.MIMEType + ";base64," + i.Base64
}

// EmbedImage downloads rawURL and returns it base64-encoded together with
// its content type. Raster images wider than maxWidth are scaled down
// first; a maxWidth of zero keeps the original bytes.
func (c *Client) EmbedImage(ctx context.Context, rawURL string, maxWidth int) (EmbeddedImage, error) {
	ctx, span := tracer.Start(ctx, "article.EmbedImage", trace.WithAttributes(
		attribute.String("image.url", rawURL),
	))
	defer span.End()

	u, err := url.Parse(rawURL)
	if err != nil {
		return EmbeddedImage{}, recordErr(span, fmt.Errorf("parse image url: %w", err))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return EmbeddedImage{}, recordErr(span, fmt.Errorf("unsupported image url scheme %q", u.Scheme))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return EmbeddedImage{}, recordErr(span, fmt.Errorf("build image request: %w", err))
	}
	req.Header.Set("Accept", "image/*")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return EmbeddedImage{}, recordErr(span, fmt.Errorf("fetch image: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return EmbeddedImage{}, recordErr(span, fmt.Errorf("fetch image: status %d", resp.StatusCode))
	}
	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return EmbeddedImage{}, recordErr(span, fmt.Errorf("fetch image: unexpected content type %q", resp.Header.Get("Content-Type")))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxImageBytes+1))
	if err != nil {
		return EmbeddedImage{}, recordErr(span, fmt.Errorf("read image: %w", err))
	}
	if int64(len(data)) > c.maxImageBytes {
		return EmbeddedImage{}, recordErr(span, fmt.Errorf("%w: more than %d bytes", errImageTooLarge, c.maxImageBytes))
	}
	if len(data) == 0 {
		return EmbeddedImage{}, recordErr(span, errors.New("fetch image: empty body"))
	}

	data, mediaType, err = downscale(data, mediaType, maxWidth)
	if err != nil {
		return EmbeddedImage{}, recordErr(span, err)
	}
	return EmbeddedImage{
		MIMEType: mediaType,
		Base64:   base64.StdEncoding.EncodeToString(data),
	}, nil
}

// downscale shrinks raster images wider than maxWidth, keeping the aspect
// ratio. Anything it cannot decode is returned unchanged. Images declaring
// more than maxDecodePixels are refused rather than decoded.
func downscale(data []byte, mediaType string, maxWidth int) ([]byte, string, error) {
	if maxWidth <= 0 || mediaType == "image/svg+xml" {
		return data, mediaType, nil
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= maxWidth {
		return data, mediaType, nil
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxDecodePixels {
		return nil, "", fmt.Errorf("%w: %dx%d", errImageTooManyPx, cfg.Width, cfg.Height)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data, mediaType, nil
	}

	newH := cfg.Height * maxWidth / cfg.Width
	if newH < 1 {
		newH = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	// PNG and GIF sources may carry transparency that JPEG would flatten to black.
	if format == "png" || format == "gif" {
		if err := png.Encode(&buf, dst); err != nil {
			return data, mediaType, nil
		}
		return buf.Bytes(), "image/png", nil
	}
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return data, mediaType, nil
	}
	return buf.Bytes(), "image/jpeg", nil
}
