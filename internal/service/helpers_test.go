package service

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"
)

// memorySource is an in-memory domain.ImageSource
type memorySource struct {
	name string
	data []byte
	err  error
}

func (s *memorySource) Name() string { return s.name }

func (s *memorySource) Open() (io.ReadCloser, error) {
	if s.err != nil {
		return nil, s.err
	}
	return io.NopCloser(bytes.NewReader(s.data)), nil
}

// MockLogger discards everything but remembers warnings
type MockLogger struct {
	warnings []string
}

func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (l *MockLogger) Info(msg string, fields ...interface{})             {}
func (l *MockLogger) Error(msg string, err error, fields ...interface{}) {}
func (l *MockLogger) Debug(msg string, fields ...interface{})            {}
func (l *MockLogger) Warn(msg string, fields ...interface{}) {
	l.warnings = append(l.warnings, msg)
}

func testPNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
