package testsupport

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

const defaultContentXML = `<?xml version="1.0" encoding="UTF-8"?>
<office:document-content>
  <office:body>
    <text:p>Asset {{asset_tag}}</text:p>
    <text:p>Serial {{serial}}</text:p>
  </office:body>
</office:document-content>`

// ArchiveOption customizes the generated template archive.
type ArchiveOption func(*archiveBuilder)

type archiveBuilder struct {
	content     string
	imageCount  int
	imageWidth  int
	imageHeight int
	dirEntries  []string
}

// WithContent replaces the content.xml body of the template archive.
func WithContent(content string) ArchiveOption {
	return func(b *archiveBuilder) {
		b.content = content
	}
}

// WithImageCount controls how many files land under Pictures/.
func WithImageCount(n int) ArchiveOption {
	return func(b *archiveBuilder) {
		b.imageCount = n
	}
}

// WithImageSize sets the placeholder image dimensions.
func WithImageSize(width, height int) ArchiveOption {
	return func(b *archiveBuilder) {
		b.imageWidth = width
		b.imageHeight = height
	}
}

// WithDirectoryEntries replaces the explicit directory entries written to the
// archive. Names must end with a slash.
func WithDirectoryEntries(names ...string) ArchiveOption {
	return func(b *archiveBuilder) {
		b.dirEntries = names
	}
}

// BuildTemplateArchive writes a minimal ODT-shaped zip to dir and returns its
// path. The layout mirrors a real template: stored mimetype and pictures,
// deflated XML parts.
func BuildTemplateArchive(t testing.TB, dir string, opts ...ArchiveOption) string {
	t.Helper()

	builder := &archiveBuilder{
		content:     defaultContentXML,
		imageCount:  1,
		imageWidth:  120,
		imageHeight: 120,
		// LibreOffice writes its (usually empty) configuration tree as
		// explicit directory entries.
		dirEntries: []string{"Configurations2/toolbar/"},
	}
	for _, opt := range opts {
		opt(builder)
	}

	path := filepath.Join(dir, "template.odt")
	out, err := os.Create(path)
	if err != nil {
		t.Fatalf("create template archive: %v", err)
	}
	defer out.Close()

	writer := zip.NewWriter(out)
	write := func(name string, method uint16, data []byte) {
		t.Helper()
		entry, err := writer.CreateHeader(&zip.FileHeader{Name: name, Method: method})
		if err != nil {
			t.Fatalf("create entry %s: %v", name, err)
		}
		if _, err := entry.Write(data); err != nil {
			t.Fatalf("write entry %s: %v", name, err)
		}
	}

	write("mimetype", zip.Store, []byte("application/vnd.oasis.opendocument.text"))
	write("META-INF/manifest.xml", zip.Deflate, []byte(`<manifest:manifest/>`))
	write("content.xml", zip.Deflate, []byte(builder.content))
	write("styles.xml", zip.Deflate, []byte(`<office:document-styles/>`))
	for _, name := range builder.dirEntries {
		write(name, zip.Store, nil)
	}
	for i := 0; i < builder.imageCount; i++ {
		name := fmt.Sprintf("Pictures/placeholder%d.png", i)
		write(name, zip.Store, PNGBytes(t, builder.imageWidth, builder.imageHeight))
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("finalize template archive: %v", err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("close template archive: %v", err)
	}
	return path
}

// PNGBytes renders a solid PNG of the requested dimensions.
func PNGBytes(t testing.TB, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture png: %v", err)
	}
	return buf.Bytes()
}
