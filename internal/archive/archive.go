package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"snipelabel/internal/services"
)

// Entry records one archive member and the compression method it was stored
// with, in archive order.
type Entry struct {
	Path   string
	Method uint16
}

// Manifest preserves the original archive layout so a repack can reproduce
// per-entry compression exactly. Paths are slash-separated and relative to
// the archive root.
type Manifest struct {
	entries []Entry
	methods map[string]uint16
}

// Entries returns the manifest entries in original archive order.
func (m *Manifest) Entries() []Entry {
	return m.entries
}

// Len returns the number of file entries recorded.
func (m *Manifest) Len() int {
	return len(m.entries)
}

// MethodFor returns the recorded compression method for an archive path.
// Paths the manifest has never seen default to Deflate.
func (m *Manifest) MethodFor(path string) uint16 {
	if method, ok := m.methods[path]; ok {
		return method
	}
	return zip.Deflate
}

func (m *Manifest) add(path string, method uint16) {
	if m.methods == nil {
		m.methods = make(map[string]uint16)
	}
	if _, ok := m.methods[path]; ok {
		return
	}
	m.entries = append(m.entries, Entry{Path: path, Method: method})
	m.methods[path] = method
}

// Unpack extracts every entry of the zip archive at archivePath into workDir
// and returns a manifest of the original layout. A missing archive classifies
// as not-found so the caller can re-resolve the path.
func Unpack(archivePath, workDir string) (*Manifest, error) {
	if _, err := os.Stat(archivePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "unpack", "open template", archivePath, err)
		}
		return nil, services.Wrap(services.ErrValidation, "unpack", "stat template", archivePath, err)
	}

	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "unpack", "read archive", archivePath, err)
	}
	defer reader.Close()

	manifest := &Manifest{}
	for _, file := range reader.File {
		// Explicit directory entries are part of the archive layout too;
		// LibreOffice ships empty Configurations2 directories this way.
		if strings.HasSuffix(file.Name, "/") {
			dest, destErr := securePath(workDir, file.Name)
			if destErr != nil {
				return nil, destErr
			}
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return nil, fmt.Errorf("create directory %s: %w", file.Name, err)
			}
			manifest.add(file.Name, file.Method)
			continue
		}
		if err := extractFile(workDir, file); err != nil {
			return nil, err
		}
		manifest.add(file.Name, file.Method)
	}

	return manifest, nil
}

// Repack writes the working tree into a new zip at outputPath, preserving
// each manifest entry's original compression method and order; explicit
// directory entries are re-emitted as directory entries. Any pre-existing
// file at outputPath is replaced. Every manifest path must still exist in
// the working tree; files added to the tree but absent from the manifest
// are appended deflated.
func Repack(workDir string, manifest *Manifest, outputPath string) error {
	if manifest == nil {
		return services.Wrap(services.ErrValidation, "repack", "manifest", "nil manifest", nil)
	}

	if err := os.Remove(outputPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove existing output %s: %w", outputPath, err)
	}

	extras, err := collectExtraFiles(workDir, manifest)
	if err != nil {
		return err
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output %s: %w", outputPath, err)
	}
	defer out.Close()

	writer := zip.NewWriter(out)
	for _, entry := range manifest.Entries() {
		src := filepath.Join(workDir, filepath.FromSlash(entry.Path))
		info, statErr := os.Stat(src)
		if statErr != nil {
			_ = writer.Close()
			return services.Wrap(services.ErrValidation, "repack", "missing entry", entry.Path, statErr)
		}
		if strings.HasSuffix(entry.Path, "/") {
			if !info.IsDir() {
				_ = writer.Close()
				return services.Wrap(services.ErrValidation, "repack", "missing entry", entry.Path, errors.New("directory entry replaced by a file"))
			}
			if _, err := writer.CreateHeader(&zip.FileHeader{Name: entry.Path, Method: entry.Method}); err != nil {
				_ = writer.Close()
				return fmt.Errorf("create archive entry %s: %w", entry.Path, err)
			}
			continue
		}
		if err := writeEntry(writer, src, entry.Path, entry.Method); err != nil {
			_ = writer.Close()
			return err
		}
	}
	for _, path := range extras {
		src := filepath.Join(workDir, filepath.FromSlash(path))
		if err := writeEntry(writer, src, path, zip.Deflate); err != nil {
			_ = writer.Close()
			return err
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalize archive %s: %w", outputPath, err)
	}
	return out.Close()
}

func extractFile(workDir string, file *zip.File) error {
	dest, err := securePath(workDir, file.Name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", file.Name, err)
	}

	in, err := file.Open()
	if err != nil {
		return fmt.Errorf("open archive entry %s: %w", file.Name, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("extract %s: %w", file.Name, err)
	}
	return out.Close()
}

func writeEntry(writer *zip.Writer, src, archivePath string, method uint16) error {
	header := &zip.FileHeader{Name: archivePath, Method: method}
	dst, err := writer.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("create archive entry %s: %w", archivePath, err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	if _, err := io.Copy(dst, in); err != nil {
		return fmt.Errorf("write archive entry %s: %w", archivePath, err)
	}
	return nil
}

func collectExtraFiles(workDir string, manifest *Manifest) ([]string, error) {
	var extras []string
	err := filepath.WalkDir(workDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(workDir, path)
		if relErr != nil {
			return relErr
		}
		name := filepath.ToSlash(rel)
		if _, ok := manifest.methods[name]; !ok {
			extras = append(extras, name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk working tree %s: %w", workDir, err)
	}
	sort.Strings(extras)
	return extras, nil
}

func securePath(workDir, name string) (string, error) {
	if filepath.IsAbs(name) {
		return "", services.Wrap(services.ErrValidation, "unpack", "entry path", name, errors.New("absolute path in archive"))
	}
	dest := filepath.Join(workDir, filepath.FromSlash(name))
	root := filepath.Clean(workDir)
	if dest != root && !strings.HasPrefix(dest, root+string(os.PathSeparator)) {
		return "", services.Wrap(services.ErrValidation, "unpack", "entry path", name, errors.New("path escapes working directory"))
	}
	return dest, nil
}
