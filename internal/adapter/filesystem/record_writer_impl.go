package filesystem

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/user/phytochem-crawler/internal/entity"
	"github.com/user/phytochem-crawler/internal/repository"
)

// RecordFileName is the name of the JSON document written per plant.
const RecordFileName = "plant_data.json"

// RecordWriterImpl writes plant records as indented JSON files.
type RecordWriterImpl struct {
	root string
}

// NewRecordWriter creates a new instance of RecordWriterImpl.
func NewRecordWriter(root string) *RecordWriterImpl {
	return &RecordWriterImpl{root: root}
}

// Path returns where the record of plantName is written.
func (w *RecordWriterImpl) Path(plantName string) string {
	return filepath.Join(w.root, entity.SafeDirName(plantName), RecordFileName)
}

// Save writes the record, replacing any earlier file.
func (w *RecordWriterImpl) Save(_ context.Context, record *entity.PlantRecord) error {
	path := w.Path(record.PlantName)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create record dir: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(record); err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write record %s: %w", path, err)
	}
	return nil
}

// FindByName reads a record written earlier, or returns
// repository.ErrNotFound.
func (w *RecordWriterImpl) FindByName(_ context.Context, plantName string) (*entity.PlantRecord, error) {
	b, err := os.ReadFile(w.Path(plantName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var record entity.PlantRecord
	if err := json.Unmarshal(b, &record); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return &record, nil
}
