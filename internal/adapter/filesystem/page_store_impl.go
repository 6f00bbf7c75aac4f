package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/user/phytochem-crawler/internal/entity"
)

// PageStoreImpl writes raw pages to <root>/<plant dir>/<file>.
type PageStoreImpl struct {
	root string
}

// NewPageStore creates a new instance of PageStoreImpl.
func NewPageStore(root string) *PageStoreImpl {
	return &PageStoreImpl{root: root}
}

// Save writes html for a plant and returns the file path. An empty
// plantName writes directly under the root.
func (s *PageStoreImpl) Save(_ context.Context, plantName, fileName, html string) (string, error) {
	dir := filepath.Join(s.root, entity.SafeDirName(plantName))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create page dir: %w", err)
	}
	path := filepath.Join(dir, fileName)
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("write page %s: %w", path, err)
	}
	return path, nil
}
