package labelimage_test

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"snipelabel/internal/labelimage"
	"snipelabel/internal/services"
	"snipelabel/internal/snipeit"
)

func TestGenerateMatchesPlaceholderDimensions(t *testing.T) {
	cases := []struct{ width, height int }{
		{370, 370},
		{300, 150},
		{64, 64},
	}
	for _, tc := range cases {
		data, err := labelimage.Generate("https://snipe.example.com/hardware/428", tc.width, tc.height)
		if err != nil {
			t.Fatalf("Generate(%dx%d): %v", tc.width, tc.height, err)
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("decode generated png: %v", err)
		}
		bounds := img.Bounds()
		if bounds.Dx() != tc.width || bounds.Dy() != tc.height {
			t.Fatalf("generated %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), tc.width, tc.height)
		}
	}
}

func TestGenerateRejectsNonPositiveDimensions(t *testing.T) {
	if _, err := labelimage.Generate("https://snipe.example.com/hardware/1", 0, 370); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestTargetURLRules(t *testing.T) {
	const base = "https://snipe.example.com"
	cases := []struct {
		name     string
		itemType snipeit.ItemType
		mode     labelimage.TargetMode
		want     string
	}{
		{"assets auto uses web page", snipeit.ItemAssets, labelimage.TargetAuto, base + "/hardware/42"},
		{"accessories auto uses api", snipeit.ItemAccessories, labelimage.TargetAuto, base + "/api/v1/accessories/42"},
		{"consumables auto uses api", snipeit.ItemConsumables, labelimage.TargetAuto, base + "/api/v1/consumables/42"},
		{"assets forced api", snipeit.ItemAssets, labelimage.TargetAPI, base + "/api/v1/hardware/42"},
		{"components forced page", snipeit.ItemComponents, labelimage.TargetPage, base + "/components/42"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := labelimage.TargetURL(base, tc.itemType, "42", tc.mode)
			if got != tc.want {
				t.Fatalf("TargetURL = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseTargetMode(t *testing.T) {
	if mode, err := labelimage.ParseTargetMode(""); err != nil || mode != labelimage.TargetAuto {
		t.Fatalf("empty mode = %q, %v", mode, err)
	}
	if _, err := labelimage.ParseTargetMode("both"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestReplaceOverwritesInPlace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "placeholder.png")
	if err := os.WriteFile(path, []byte("old bytes"), 0o644); err != nil {
		t.Fatalf("seed placeholder: %v", err)
	}

	data, err := labelimage.Generate("https://snipe.example.com/hardware/1", 80, 80)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := labelimage.Replace(path, data); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	replaced, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read replaced file: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(replaced)); err != nil {
		t.Fatalf("replaced file is not a png: %v", err)
	}
}
