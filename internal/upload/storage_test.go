package upload_test

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"app/internal/upload"

	"github.com/stretchr/testify/assert"
)

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("photo", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("parse form: %v", err)
	}
	return req.MultipartForm.File["photo"][0]
}

func TestStorageSave(t *testing.T) {
	dir := t.TempDir()
	s := upload.NewStorage(dir)

	rel, err := s.Save("stations", fileHeader(t, "gare.jpg", []byte("fake-jpeg")))
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "stations/"))
	assert.True(t, strings.HasSuffix(rel, ".jpg"))

	// 元のファイル名は使わない
	assert.NotContains(t, rel, "gare")

	b, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	assert.NoError(t, err)
	assert.Equal(t, []byte("fake-jpeg"), b)
}

func TestStorageSave_UnsupportedType(t *testing.T) {
	s := upload.NewStorage(t.TempDir())

	_, err := s.Save("stations", fileHeader(t, "malware.exe", []byte("nope")))
	assert.ErrorIs(t, err, upload.ErrUnsupportedType)
}

func TestStorageSave_TooLarge(t *testing.T) {
	s := upload.NewStorage(t.TempDir())

	fh := fileHeader(t, "big.png", []byte("x"))
	fh.Size = upload.MaxFileSize + 1

	_, err := s.Save("stations", fh)
	assert.ErrorIs(t, err, upload.ErrTooLarge)
}
