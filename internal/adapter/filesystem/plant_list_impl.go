package filesystem

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/user/phytochem-crawler/internal/entity"
)

const (
	columnValue = "Value"
	columnName  = "Plant Name"
)

// PlantListImpl reads and writes the plant list CSV.
type PlantListImpl struct {
	path string
}

// NewPlantList creates a new instance of PlantListImpl.
func NewPlantList(path string) *PlantListImpl {
	return &PlantListImpl{path: path}
}

// Load reads every plant of the CSV. Columns are looked up by header name.
func (l *PlantListImpl) Load(_ context.Context) ([]entity.PlantOption, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open plant list: %w", err)
	}
	defer f.Close()

	return ReadPlantCSV(f)
}

// Store replaces the CSV with options.
func (l *PlantListImpl) Store(_ context.Context, options []entity.PlantOption) error {
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create plant list dir: %w", err)
		}
	}
	f, err := os.Create(l.path)
	if err != nil {
		return fmt.Errorf("create plant list: %w", err)
	}
	if err := WritePlantCSV(f, options); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadPlantCSV parses a plant list with a "Value" and a "Plant Name" column.
func ReadPlantCSV(r io.Reader) ([]entity.PlantOption, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read plant list header: %w", err)
	}
	valueIdx, nameIdx := -1, -1
	for i, h := range header {
		switch h {
		case columnValue:
			valueIdx = i
		case columnName:
			nameIdx = i
		}
	}
	if valueIdx == -1 || nameIdx == -1 {
		return nil, fmt.Errorf("plant list must have %q and %q columns, got %q", columnValue, columnName, header)
	}

	var plants []entity.PlantOption
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read plant list: %w", err)
		}
		var p entity.PlantOption
		if valueIdx < len(row) {
			p.Value = row[valueIdx]
		}
		if nameIdx < len(row) {
			p.Name = row[nameIdx]
		}
		plants = append(plants, p)
	}
	return plants, nil
}

// WritePlantCSV writes options with a header row.
func WritePlantCSV(w io.Writer, options []entity.PlantOption) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{columnValue, columnName}); err != nil {
		return err
	}
	for _, o := range options {
		if err := cw.Write([]string{o.Value, o.Name}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
