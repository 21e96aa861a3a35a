package doctemplate_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"snipelabel/internal/doctemplate"
	"snipelabel/internal/services"
	"snipelabel/internal/testsupport"
)

func writeContent(t *testing.T, workDir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(workDir, "content.xml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write content.xml: %v", err)
	}
}

func writePicture(t *testing.T, workDir, name string, width, height int) {
	t.Helper()
	dir := filepath.Join(workDir, "Pictures")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir Pictures: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), testsupport.PNGBytes(t, width, height), 0o644); err != nil {
		t.Fatalf("write picture: %v", err)
	}
}

func TestScanTagsCollectsOnlyEscapedSubstitutions(t *testing.T) {
	workDir := t.TempDir()
	writeContent(t, workDir, `<text:p>{{asset_tag}} {{ serial }} {{asset_tag}}</text:p>
<text:p>{{#owned}}{{owner}}{{/owned}} {{^spare}}x{{/spare}} {{{raw_html}}} {{&also_raw}} {{!comment}}</text:p>`)

	tags, err := doctemplate.ScanTags(workDir)
	if err != nil {
		t.Fatalf("ScanTags: %v", err)
	}

	want := []string{"asset_tag", "owner", "serial"}
	if !reflect.DeepEqual(tags, want) {
		t.Fatalf("tags = %v, want %v", tags, want)
	}
}

func TestScanTagsIsIdempotent(t *testing.T) {
	workDir := t.TempDir()
	writeContent(t, workDir, `{{a}}{{a}}{{b}}`)

	first, err := doctemplate.ScanTags(workDir)
	if err != nil {
		t.Fatalf("ScanTags: %v", err)
	}
	second, err := doctemplate.ScanTags(workDir)
	if err != nil {
		t.Fatalf("ScanTags again: %v", err)
	}
	if !reflect.DeepEqual(first, []string{"a", "b"}) {
		t.Fatalf("tags = %v, want [a b]", first)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("scans differ: %v vs %v", first, second)
	}
}

func TestScanTagsMissingContentPartClassifiesNotFound(t *testing.T) {
	_, err := doctemplate.ScanTags(t.TempDir())
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestScanTagsRejectsUnparseableTemplate(t *testing.T) {
	workDir := t.TempDir()
	writeContent(t, workDir, `{{#section}} never closed`)

	_, err := doctemplate.ScanTags(workDir)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestLocatePlaceholderReadsDimensions(t *testing.T) {
	workDir := t.TempDir()
	writePicture(t, workDir, "qr.png", 370, 370)

	placeholder, err := doctemplate.LocatePlaceholder(workDir)
	if err != nil {
		t.Fatalf("LocatePlaceholder: %v", err)
	}
	if placeholder.Width != 370 || placeholder.Height != 370 {
		t.Fatalf("dimensions = %dx%d, want 370x370", placeholder.Width, placeholder.Height)
	}
	if filepath.Base(placeholder.Path) != "qr.png" {
		t.Fatalf("unexpected path %q", placeholder.Path)
	}
}

func TestLocatePlaceholderRejectsWrongImageCount(t *testing.T) {
	t.Run("zero images", func(t *testing.T) {
		workDir := t.TempDir()
		_, err := doctemplate.LocatePlaceholder(workDir)
		if !errors.Is(err, services.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("two images", func(t *testing.T) {
		workDir := t.TempDir()
		writePicture(t, workDir, "a.png", 10, 10)
		writePicture(t, workDir, "b.png", 10, 10)
		_, err := doctemplate.LocatePlaceholder(workDir)
		if !errors.Is(err, services.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})
}
