package storage

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IconStore menyimpan file ikon di direktori statis publik dan
// menghasilkan URL publik yang dicatat di kolom section_icon.
type IconStore struct {
	Dir     string // contoh: public/uploads/icons
	BaseURL string // contoh: http://localhost:3000
}

func NewIconStore(dir, baseURL string) *IconStore {
	return &IconStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}
}

// GenerateIconFilename: icon_<unixms>_<uuid-frag><ext>
func GenerateIconFilename(ext string) string {
	frag := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("icon_%d_%s%s", time.Now().UnixMilli(), frag, ext)
}

// Save menulis data ke disk dan mengembalikan URL publiknya.
func (s *IconStore) Save(filename string, data []byte) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("gagal membuat direktori upload: %w", err)
	}
	path := filepath.Join(s.Dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("gagal menyimpan file: %w", err)
	}
	return s.PublicURL(filename), nil
}

func (s *IconStore) PublicURL(filename string) string {
	return s.BaseURL + "/uploads/icons/" + filename
}

// DeleteByPublicURL menghapus file lama berdasarkan URL publiknya.
// Best-effort: kegagalan hanya dicatat, tidak pernah dikembalikan ke caller.
func (s *IconStore) DeleteByPublicURL(publicURL string) {
	filename := FilenameFromURL(publicURL)
	if filename == "" {
		return
	}
	path := filepath.Join(s.Dir, filename)
	if err := os.Remove(path); err != nil {
		log.Printf("[WARN] gagal hapus ikon lama %s: %v", path, err)
	}
}

// FilenameFromURL memotong URL publik menjadi nama file saja.
// Tolak path traversal: hasil dengan separator dianggap tidak valid.
func FilenameFromURL(publicURL string) string {
	if strings.TrimSpace(publicURL) == "" {
		return ""
	}
	name := publicURL[strings.LastIndex(publicURL, "/")+1:]
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return ""
	}
	return name
}
