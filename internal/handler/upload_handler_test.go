package handler

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func multipartImageRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/uploads", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func TestUploadImageStoresPNG(t *testing.T) {
	api := setupTestAPI(t, "")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartImageRequest(t, "cover.bin", pngBytes(t, 4, 3))
	api.UploadImage(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var payload struct {
		Success int `json:"success"`
		Data    struct {
			URL    string `json:"url"`
			Width  int    `json:"width"`
			Height int    `json:"height"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if payload.Success != 1 || payload.Data.Width != 4 || payload.Data.Height != 3 {
		t.Fatalf("unexpected payload %+v", payload)
	}
	if !strings.HasPrefix(payload.Data.URL, "/uploads/") || !strings.HasSuffix(payload.Data.URL, ".png") {
		t.Fatalf("unexpected url %q", payload.Data.URL)
	}

	stored := filepath.Join(api.uploadDir, filepath.Base(payload.Data.URL))
	if _, err := os.Stat(stored); err != nil {
		t.Fatalf("expected uploaded file on disk: %v", err)
	}
}

func TestUploadImageRejectsNonImages(t *testing.T) {
	api := setupTestAPI(t, "")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartImageRequest(t, "notes.png", []byte("definitely not an image"))
	api.UploadImage(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}

	entries, err := os.ReadDir(api.uploadDir)
	if err != nil {
		t.Fatalf("failed to read upload dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected nothing stored, found %d files", len(entries))
	}
}

func TestUploadImageRequiresFile(t *testing.T) {
	api := setupTestAPI(t, "")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/uploads", nil)
	api.UploadImage(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}
