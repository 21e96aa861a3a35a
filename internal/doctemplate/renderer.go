package doctemplate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cbroglie/mustache"

	"snipelabel/internal/services"
)

// Render substitutes record values into the document text part in place.
// Tags present in the document but absent from values are never an error:
// the engine renders them empty and they come back in the missing slice so
// the caller can warn the operator once per tag.
func Render(workDir string, values map[string]string) (missing []string, err error) {
	source, err := readContent(workDir)
	if err != nil {
		return nil, err
	}

	for _, tag := range collectEscapedTags(source) {
		if _, ok := values[tag]; !ok {
			missing = append(missing, tag)
		}
	}

	rendered, err := mustache.Render(source, values)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "render", "substitute tags", ContentPart, err)
	}

	path := filepath.Join(workDir, ContentPart)
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return missing, nil
}
