package storage

import (
	"bytes"
	"image/gif"
	"io"
	"mime/multipart"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"

	"tahfidz_backend/internals/constants"
)

// ProcessedIcon adalah hasil pipeline validasi + normalisasi upload.
type ProcessedIcon struct {
	Data        []byte
	Ext         string
	ContentType string
}

// ProcessIcon memvalidasi file ikon dan menormalisasinya:
//   - tipe harus masuk allow-list (JPEG/PNG/GIF/WebP/SVG)
//   - ukuran maksimal constants.MaxIconSizeBytes (berlaku seragam)
//   - payload raster harus benar-benar ter-decode sesuai tipenya
//   - JPEG/PNG di atas MaxIconDimension di-downscale (Fit, rasio dijaga)
//   - GIF/WebP/SVG disimpan apa adanya
func ProcessIcon(fh *multipart.FileHeader) (*ProcessedIcon, error) {
	if fh == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "لم يتم إرسال ملف")
	}

	contentType := strings.TrimSpace(fh.Header.Get("Content-Type"))
	ext, ok := constants.AllowedIconTypes[contentType]
	if !ok {
		return nil, fiber.NewError(fiber.StatusBadRequest, "نوع الملف غير مسموح")
	}

	if fh.Size > constants.MaxIconSizeBytes {
		return nil, fiber.NewError(fiber.StatusBadRequest, "الملف كبير جداً (الحد الأقصى 5MB)")
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "فشل في قراءة الملف")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, constants.MaxIconSizeBytes+1))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "فشل في قراءة الملف")
	}
	if int64(len(data)) > constants.MaxIconSizeBytes {
		return nil, fiber.NewError(fiber.StatusBadRequest, "الملف كبير جداً (الحد الأقصى 5MB)")
	}

	switch contentType {
	case "image/jpeg", "image/png":
		normalized, err := normalizeRaster(data, contentType)
		if err != nil {
			return nil, err
		}
		data = normalized
	case "image/gif":
		if _, err := gif.DecodeConfig(bytes.NewReader(data)); err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "ملف GIF تالف")
		}
	case "image/webp":
		if _, err := webp.DecodeConfig(bytes.NewReader(data)); err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "ملف WebP تالف")
		}
	case "image/svg+xml":
		if !looksLikeSVG(data) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "ملف SVG غير صالح")
		}
	}

	return &ProcessedIcon{Data: data, Ext: ext, ContentType: contentType}, nil
}

// normalizeRaster men-decode JPEG/PNG dan men-downscale bila melebihi
// MaxIconDimension. Format asli dipertahankan.
func normalizeRaster(data []byte, contentType string) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ملف الصورة تالف")
	}

	b := img.Bounds()
	if b.Dx() <= constants.MaxIconDimension && b.Dy() <= constants.MaxIconDimension {
		return data, nil
	}

	resized := imaging.Fit(img, constants.MaxIconDimension, constants.MaxIconDimension, imaging.Lanczos)

	format := imaging.PNG
	if contentType == "image/jpeg" {
		format = imaging.JPEG
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format); err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "فشل في معالجة الصورة")
	}
	return buf.Bytes(), nil
}

func looksLikeSVG(data []byte) bool {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	return bytes.Contains(bytes.ToLower(head), []byte("<svg"))
}
