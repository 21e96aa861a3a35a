package doctemplate

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/cbroglie/mustache"

	"snipelabel/internal/services"
)

const (
	// ContentPart is the archive-relative path of the document text part.
	ContentPart = "content.xml"
	// PicturesDir is the archive-relative directory holding embedded images.
	PicturesDir = "Pictures"
)

// Placeholder describes the single image entry that gets replaced with a
// generated QR code. Width and height are captured before the file is
// overwritten; after that only Path remains meaningful.
type Placeholder struct {
	Path   string
	Width  int
	Height int
}

// Only bare identifiers (optionally dotted) count as data tags. Anything the
// templating grammar treats as structural stays out of the collected set.
var tagNamePattern = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.]*$`)

// LocatePlaceholder finds the template's one placeholder image and reads its
// pixel dimensions from the image header without decoding the raster. A
// template with zero or multiple images is rejected before any remote work
// happens.
func LocatePlaceholder(workDir string) (*Placeholder, error) {
	dir := filepath.Join(workDir, PicturesDir)
	entries, err := os.ReadDir(dir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	if len(files) != 1 {
		msg := fmt.Sprintf("template must contain exactly one image under %s/, found %d", PicturesDir, len(files))
		return nil, services.Wrap(services.ErrValidation, "scan", "placeholder image", msg, nil)
	}

	path := filepath.Join(dir, files[0])
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open placeholder image %s: %w", path, err)
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "scan", "placeholder image", path, err)
	}

	return &Placeholder{Path: path, Width: cfg.Width, Height: cfg.Height}, nil
}

// ScanTags parses the document text part and returns the distinct data tags
// it references, sorted for reproducible logs. Only escaped-substitution
// {{name}} tags are collected; section, inverted, partial, comment, and
// unescaped tags are structural and excluded.
func ScanTags(workDir string) ([]string, error) {
	source, err := readContent(workDir)
	if err != nil {
		return nil, err
	}
	if _, err := mustache.ParseString(source); err != nil {
		return nil, services.Wrap(services.ErrValidation, "scan", "parse template", ContentPart, err)
	}
	return collectEscapedTags(source), nil
}

func readContent(workDir string) (string, error) {
	path := filepath.Join(workDir, ContentPart)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", services.Wrap(services.ErrNotFound, "scan", "read document part", ContentPart, err)
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func collectEscapedTags(source string) []string {
	seen := make(map[string]struct{})
	var tags []string

	i := 0
	for {
		open := strings.Index(source[i:], "{{")
		if open < 0 {
			break
		}
		start := i + open + 2
		if start >= len(source) {
			break
		}

		switch source[start] {
		case '{':
			// Unescaped {{{raw}}} substitution: structural, skip whole tag.
			end := strings.Index(source[start:], "}}}")
			if end < 0 {
				return finish(tags)
			}
			i = start + end + 3
			continue
		case '#', '/', '^', '&', '>', '!':
			// Sections, partials, comments, and &-unescaped tags.
			end := strings.Index(source[start:], "}}")
			if end < 0 {
				return finish(tags)
			}
			i = start + end + 2
			continue
		}

		end := strings.Index(source[start:], "}}")
		if end < 0 {
			break
		}
		name := strings.TrimSpace(source[start : start+end])
		i = start + end + 2

		if !tagNamePattern.MatchString(name) {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		tags = append(tags, name)
	}

	return finish(tags)
}

func finish(tags []string) []string {
	sort.Strings(tags)
	return tags
}
