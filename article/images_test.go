package article

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil))
	return buf.Bytes()
}

func serveBytes(t *testing.T, contentType string, body []byte) string {
	t.Helper()
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(body)
	})
	return srv.URL + "/img"
}

func TestEmbedImage_KeepsSmallImage(t *testing.T) {
	body := encodeJPEG(t, 40, 40)
	u := serveBytes(t, "image/jpeg", body)

	got, err := NewClient("").EmbedImage(context.Background(), u, AvatarMaxWidth)
	require.NoError(t, err)
	assert.False(t, got.Absent())
	assert.Equal(t, "image/jpeg", got.MIMEType)
	assert.Equal(t, base64.StdEncoding.EncodeToString(body), got.Base64)
	assert.True(t, strings.HasPrefix(got.DataURI(), "data:image/jpeg;base64,"))
}

func TestEmbedImage_DownscalesWideImage(t *testing.T) {
	u := serveBytes(t, "image/png; charset=binary", encodePNG(t, 400, 200))

	got, err := NewClient("").EmbedImage(context.Background(), u, AvatarMaxWidth)
	require.NoError(t, err)
	assert.Equal(t, "image/png", got.MIMEType)

	raw, err := base64.StdEncoding.DecodeString(got.Base64)
	require.NoError(t, err)
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, AvatarMaxWidth, cfg.Width)
	assert.Equal(t, 48, cfg.Height)
}

func TestEmbedImage_UndecodableImagePassesThrough(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`)
	u := serveBytes(t, "image/svg+xml", svg)

	got, err := NewClient("").EmbedImage(context.Background(), u, CoverMaxWidth)
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", got.MIMEType)
	assert.Equal(t, base64.StdEncoding.EncodeToString(svg), got.Base64)
}

func TestEmbedImage_Failures(t *testing.T) {
	htmlURL := serveBytes(t, "text/html", []byte("<html></html>"))
	emptyURL := serveBytes(t, "image/png", nil)
	bigURL := serveBytes(t, "image/png", encodePNG(t, 64, 64))
	errSrv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	tests := []struct {
		name   string
		client *Client
		url    string
	}{
		{"non-image content type", NewClient(""), htmlURL},
		{"empty body", NewClient(""), emptyURL},
		{"too large", NewClient("", WithMaxImageBytes(16)), bigURL},
		{"server error", NewClient(""), errSrv.URL},
		{"unsupported scheme", NewClient(""), "ftp://example.com/a.png"},
		{"malformed url", NewClient(""), "://nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.client.EmbedImage(context.Background(), tt.url, CoverMaxWidth)
			assert.Error(t, err)
			assert.True(t, got.Absent())
		})
	}
}

// pngHeader returns a PNG that declares w x h pixels but carries no image
// data. Only the header is valid.
func pngHeader(w, h uint32) []byte {
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	chunk := func(typ string, data []byte) {
		_ = binary.Write(&buf, binary.BigEndian, uint32(len(data)))
		body := append([]byte(typ), data...)
		buf.Write(body)
		_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(body))
	}
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], w)
	binary.BigEndian.PutUint32(ihdr[4:], h)
	ihdr[8], ihdr[9] = 8, 6 // 8-bit RGBA
	chunk("IHDR", ihdr)
	chunk("IEND", nil)
	return buf.Bytes()
}

func TestEmbedImage_RefusesHugeDimensions(t *testing.T) {
	body := pngHeader(30000, 30000)
	cfg, err := png.DecodeConfig(bytes.NewReader(body))
	require.NoError(t, err)
	require.Equal(t, 30000, cfg.Width)

	u := serveBytes(t, "image/png", body)

	got, err := NewClient("").EmbedImage(context.Background(), u, CoverMaxWidth)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errImageTooManyPx))
	assert.True(t, got.Absent())
}

func TestEmbeddedImage_ZeroValueIsAbsent(t *testing.T) {
	assert.True(t, EmbeddedImage{}.Absent())
}
