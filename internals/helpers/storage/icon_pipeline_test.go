package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"regexp"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileHeader membungkus payload jadi *multipart.FileHeader seperti yang
// diterima handler dari request sungguhan.
func fileHeader(t *testing.T, filename, contentType string, payload []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := make(map[string][]string)
	h["Content-Disposition"] = []string{`form-data; name="icon"; filename="` + filename + `"`}
	h["Content-Type"] = []string{contentType}
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	files := form.File["icon"]
	require.Len(t, files, 1)
	return files[0]
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcessIconAcceptsSmallPNG(t *testing.T) {
	fh := fileHeader(t, "a.png", "image/png", pngBytes(t, 64, 64))

	icon, err := ProcessIcon(fh)
	require.NoError(t, err)
	assert.Equal(t, ".png", icon.Ext)
	assert.Equal(t, "image/png", icon.ContentType)

	img, err := png.Decode(bytes.NewReader(icon.Data))
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
}

func TestProcessIconDownscalesLargePNG(t *testing.T) {
	fh := fileHeader(t, "big.png", "image/png", pngBytes(t, 1024, 768))

	icon, err := ProcessIcon(fh)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(icon.Data))
	require.NoError(t, err)
	assert.LessOrEqual(t, img.Bounds().Dx(), 512)
	assert.LessOrEqual(t, img.Bounds().Dy(), 512)
	// rasio 4:3 dipertahankan
	assert.Equal(t, 512, img.Bounds().Dx())
	assert.Equal(t, 384, img.Bounds().Dy())
}

func TestProcessIconRejectsDisallowedType(t *testing.T) {
	fh := fileHeader(t, "x.pdf", "application/pdf", []byte("%PDF-1.4"))

	_, err := ProcessIcon(fh)
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
}

func TestProcessIconRejectsCorruptPNG(t *testing.T) {
	fh := fileHeader(t, "broken.png", "image/png", []byte("bukan png"))

	_, err := ProcessIcon(fh)
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
}

func TestProcessIconRejectsOversizedFile(t *testing.T) {
	big := make([]byte, 5*1024*1024+1)
	fh := fileHeader(t, "huge.png", "image/png", big)

	_, err := ProcessIcon(fh)
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
}

func TestProcessIconSVG(t *testing.T) {
	svg := []byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"></svg>`)
	fh := fileHeader(t, "ok.svg", "image/svg+xml", svg)

	icon, err := ProcessIcon(fh)
	require.NoError(t, err)
	assert.Equal(t, ".svg", icon.Ext)
	assert.Equal(t, svg, icon.Data) // SVG tidak diutak-atik

	fh = fileHeader(t, "fake.svg", "image/svg+xml", []byte("cuma teks biasa"))
	_, err = ProcessIcon(fh)
	require.Error(t, err)
}

func TestGenerateIconFilenamePattern(t *testing.T) {
	name := GenerateIconFilename(".png")
	assert.Regexp(t, regexp.MustCompile(`^icon_\d+_[0-9a-f]{8}\.png$`), name)

	// dua panggilan tidak boleh bertabrakan
	assert.NotEqual(t, name, GenerateIconFilename(".png"))
}

func TestFilenameFromURL(t *testing.T) {
	assert.Equal(t, "icon_1_ab.png", FilenameFromURL("http://localhost:3000/uploads/icons/icon_1_ab.png"))
	assert.Equal(t, "", FilenameFromURL(""))
	assert.Equal(t, "", FilenameFromURL("http://x/uploads/icons/"))
	assert.Equal(t, "", FilenameFromURL("http://x/uploads/icons/.."))
}
