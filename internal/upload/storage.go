package upload

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// 画像は10MBまで
const MaxFileSize = 10 << 20

var (
	ErrTooLarge        = errors.New("file too large")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// JPEG/PNG/WebPだけ受け付ける
var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

// Storage はアップロード画像をディスクに保存する。
// 保存先は <dir>/<folder>/ で、folderは"stations"か"products"。
type Storage struct {
	dir string
}

func NewStorage(dir string) *Storage {
	return &Storage{dir: dir}
}

// Save はファイルを保存して相対パス（例 stations/xxxx.jpg）を返す。
// ファイル名は推測できないようにランダムにする。
func (s *Storage) Save(folder string, fh *multipart.FileHeader) (string, error) {
	if fh.Size > MaxFileSize {
		return "", ErrTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", ErrUnsupportedType
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Join(s.dir, folder), 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	rel := filepath.ToSlash(filepath.Join(folder, name))

	dst, err := os.Create(filepath.Join(s.dir, folder, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		//書きかけのファイルは消す
		_ = os.Remove(dst.Name())
		return "", err
	}

	return rel, nil
}

// Dir は静的配信（/uploads）用の保存先ディレクトリ。
func (s *Storage) Dir() string {
	return s.dir
}
