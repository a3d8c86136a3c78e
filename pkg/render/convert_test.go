package render

import (
	"context"
	"strings"
	"testing"
)

func TestConvertMissingTool(t *testing.T) {
	old := converter
	converter = "kaoto-no-such-converter"
	defer func() { converter = old }()

	tests := []struct {
		name string
		fn   func() error
	}{
		{"pdf", func() error { _, err := ToPDF(context.Background(), []byte("<svg/>")); return err }},
		{"png", func() error { _, err := ToPNG(context.Background(), []byte("<svg/>"), 0); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn()
			if err == nil {
				t.Fatal("expected error when the converter is missing")
			}
			if !strings.Contains(err.Error(), "librsvg") {
				t.Errorf("error should explain how to install librsvg: %v", err)
			}
		})
	}
}
