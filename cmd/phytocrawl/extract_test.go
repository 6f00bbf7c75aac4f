package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/user/phytochem-crawler/internal/entity"
)

func fixture(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("..", "..", "internal", "extractor", "testdata", name))
	require.NoError(t, err)
	return string(b)
}

func TestExtractPage_Plant(t *testing.T) {
	result, err := extractPage(entity.PagePlant, fixture(t, "plant.html"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, result))

	var out struct {
		Data   entity.PlantRecord `json:"data"`
		Issues []string           `json:"issues"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, "Curcuma longa", out.Data.PlantName)
	require.Equal(t, "Turmeric, Haldi", out.Data.CommonName)
	require.Len(t, out.Data.Phytochemicals, 3)
	require.Empty(t, out.Issues)
}

func TestExtractPage_Properties(t *testing.T) {
	result, err := extractPage(entity.PagePhysicochemical, fixture(t, "physicochemical.html"))
	require.NoError(t, err)
	require.IsType(t, []entity.Property{}, result)
	require.NotEmpty(t, result)
}

func TestExtractPage_UnknownType(t *testing.T) {
	_, err := extractPage(entity.PageType("recipe"), "<html></html>")
	require.EqualError(t, err, `unknown page type "recipe"`)
}
