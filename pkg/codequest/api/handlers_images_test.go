package api

import (
	"bytes"
	"image/png"
	"net/http"
	"testing"
)

func TestImageExists(t *testing.T) {
	env := newTestHandler(t, WithImages("loop.png", "sorting/bubble.png"))

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantName   string
		wantExists bool
	}{
		{"present", "/api/images/loop.png", http.StatusOK, "loop.png", true},
		{"absent", "/api/images/ghost.png", http.StatusOK, "ghost.png", false},
		{"nested escaped", "/api/images/sorting%2Fbubble.png", http.StatusOK, "sorting/bubble.png", true},
		{"directory", "/api/images/sorting", http.StatusOK, "sorting", false},
		{"traversal", "/api/images/..%2Floop.png", http.StatusBadRequest, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodGet, tt.target, "")
			if w.Code != tt.wantStatus {
				t.Fatalf("ImageExists() status code = %v, want %v: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			resp := decode[ImageExistsResponse](t, w.Body.Bytes())
			if resp.Name != tt.wantName || resp.Exists != tt.wantExists {
				t.Errorf("ImageExists() = %+v, want name %q exists %v", resp, tt.wantName, tt.wantExists)
			}
		})
	}
}

func TestServeImage(t *testing.T) {
	env := newTestHandler(t, WithImages("loop.png"))

	w := env.do(t, http.MethodGet, "/api/images/loop.png/raw", "")
	if w.Code != http.StatusOK {
		t.Fatalf("ServeImage() status code = %v, want %v", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("ServeImage() Content-Type = %q, want image/png", ct)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("ServeImage() body is not a png: %v", err)
	}
	if cfg.Width != 3 || cfg.Height != 2 {
		t.Errorf("ServeImage() size = %dx%d, want 3x2", cfg.Width, cfg.Height)
	}
}

func TestServeImage_Errors(t *testing.T) {
	env := newTestHandler(t)

	tests := []struct {
		name       string
		target     string
		wantStatus int
	}{
		{"missing", "/api/images/ghost.png/raw", http.StatusNotFound},
		{"traversal", "/api/images/..%2F..%2Fetc%2Fpasswd/raw", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodGet, tt.target, "")
			if w.Code != tt.wantStatus {
				t.Errorf("ServeImage() status code = %v, want %v", w.Code, tt.wantStatus)
			}
		})
	}
}
