package utils

import (
	"bytes"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFileName(t *testing.T) {
	assert.Equal(t, "May_Price_Update.xlsx", ResolveFileName("May Price Update"))
	assert.Equal(t, "update.xlsx", ResolveFileName("update.xlsx"))
	assert.Equal(t, "qa_run.xlsx", ResolveFileName("  q/a: run? "))

	today := time.Now().Format("20060102")
	want := fmt.Sprintf("walmart_price_update_%s.xlsx", today)
	assert.Equal(t, want, ResolveFileName(""))
	assert.Equal(t, want, ResolveFileName("///???"))
}

func TestSaveCreatesDirAndFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	om := NewOutputManager(dir)

	path, err := om.Save("update.xlsx", bytes.NewBufferString("workbook-bytes"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "update.xlsx"), path)
	assert.True(t, FileExists(path))
}

func TestSaveAvoidsCollision(t *testing.T) {
	om := NewOutputManager(t.TempDir())

	first, err := om.Save("update.xlsx", bytes.NewBufferString("one"))
	require.NoError(t, err)

	second, err := om.Save("update.xlsx", bytes.NewBufferString("two"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, FileExists(first))
	assert.True(t, FileExists(second))
	assert.Equal(t, ".xlsx", filepath.Ext(second))
}

func TestSaveOverwrite(t *testing.T) {
	om := NewOutputManager(t.TempDir())
	om.OverwriteExisting = true

	first, err := om.Save("update.xlsx", bytes.NewBufferString("one"))
	require.NoError(t, err)

	second, err := om.Save("update.xlsx", bytes.NewBufferString("two"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
