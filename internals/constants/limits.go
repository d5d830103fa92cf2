package constants

// Batas validasi input
const (
	MaxNoteLength     = 1000            // catatan guru & komentar siswa
	MaxIconSizeBytes  = 5 * 1024 * 1024 // 5MB, berlaku seragam untuk semua handler upload
	MaxIconDimension  = 512             // ikon raster > 512px di-downscale sebelum disimpan
	MinNameLength     = 2
	MinPasswordLength = 6
)

// Tipe konten ikon yang diizinkan
var AllowedIconTypes = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}
