package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func TestWriteXLSXFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.xlsx")
	require.NoError(t, WriteXLSXFile(path, exportLeads()))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 1)

	sheet := f.Sheets[0]
	assert.Equal(t, "leads", sheet.Name)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "name", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "Kardeşler Berber", sheet.Rows[1].Cells[0].String())
	assert.Equal(t, "none", sheet.Rows[2].Cells[5].String())
}
