package ledger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]any) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", SheetName))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(SheetName, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestLoad_EntriesAndStock(t *testing.T) {
	wb := buildWorkbook(t, [][]any{
		{"Nr. Seriale", "Tipo Movimento", "Nr. Movimento", "Data di Registrazione",
			"Subappaltatore", "Cod. Risorsa Caposquadra", "createdAt",
			"Nr. Articolo", "Cod. Ubicazione", "Quantità", "Descrizione Articolo D"},
		{"SN1", "Carico", "12", "2024-03-01", "ACME Srl", "", "2024-03-01",
			"100", "S014", "2", "Cavo fibra"},
		{"SN2", "Rientro", "13", "2024-04-01", "", "CAPO1", "2022-05-01",
			"100", "S014", "3", "Cavo fibra"},
	})

	entries, stock, err := Load(wb)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "SN1", entries[0].SerialPrimary)
	assert.Equal(t, "Carico", entries[0].MovementType)
	assert.Equal(t, 12, entries[0].MovementSeq)
	require.NotNil(t, entries[0].RegistrationDate)
	assert.Equal(t, "2024-03-01", entries[0].RegistrationDate.Format("2006-01-02"))
	assert.Equal(t, "ACME Srl", entries[0].Subcontractor)
	assert.Equal(t, "CAPO1", entries[1].CrewLeaderCode)

	require.Len(t, stock, 2)
	assert.Equal(t, "100", stock[0].MaterialCode)
	assert.Equal(t, "S014", stock[0].WarehouseCode)
	assert.Equal(t, 2.0, stock[0].Quantity)
	assert.Equal(t, "Cavo fibra", stock[0].Description)
}

func TestLoad_UnparsableDateIsNil(t *testing.T) {
	wb := buildWorkbook(t, [][]any{
		{"Nr. Seriale", "Data di Registrazione"},
		{"SN1", "not a date"},
		{"SN2", ""},
	})

	entries, _, err := Load(wb)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Nil(t, entries[0].RegistrationDate)
	assert.Nil(t, entries[1].RegistrationDate)
}

func TestLoad_OptionalColumnsResolveEmpty(t *testing.T) {
	// A lean export that only carries serial and movement type.
	wb := buildWorkbook(t, [][]any{
		{"Nr. Seriale", "Tipo Movimento"},
		{"SN1", "Carico"},
	})

	entries, stock, err := Load(wb)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].Subcontractor)
	assert.Empty(t, stock)
}

func TestLoad_MissingSerialColumnFails(t *testing.T) {
	wb := buildWorkbook(t, [][]any{
		{"foo", "bar"},
		{"1", "2"},
	})

	_, _, err := Load(wb)
	assert.Error(t, err)
}

func TestLoad_RowsWithoutSerialStillCountAsStock(t *testing.T) {
	wb := buildWorkbook(t, [][]any{
		{"Nr. Seriale", "Nr. Articolo", "Cod. Ubicazione", "Quantità"},
		{"", "100", "S016", "4,5"},
	})

	entries, stock, err := Load(wb)
	require.NoError(t, err)
	assert.Empty(t, entries)
	require.Len(t, stock, 1)
	assert.Equal(t, 4.5, stock[0].Quantity)
}
