package excel_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/cfdi-pro/internal/infrastructure/excel"
	"github.com/xuri/excelize/v2"
)

func TestWorkbook_HojasYContenido(t *testing.T) {
	contenido, err := excel.Workbook([]excel.Hoja{
		{
			Nombre:      "Detalle_Emitidos",
			Encabezados: []string{"UUID", "Monto"},
			Filas:       [][]string{{"U1", "100.00"}, {"U2", "250.50"}},
		},
		{
			Nombre:      "Resumen_Mensual",
			Encabezados: []string{"Mes", "Total"},
			Filas:       [][]string{{"2025-01", "350.50"}},
		},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(contenido))
	require.NoError(t, err, "la salida debe ser un XLSX legible")
	defer f.Close()

	assert.Equal(t, []string{"Detalle_Emitidos", "Resumen_Mensual"}, f.GetSheetList(),
		"la primera hoja reemplaza a Sheet1 y las demás se agregan en orden")

	celda, err := f.GetCellValue("Detalle_Emitidos", "A1")
	require.NoError(t, err)
	assert.Equal(t, "UUID", celda, "la fila 1 son los encabezados")

	celda, err = f.GetCellValue("Detalle_Emitidos", "B3")
	require.NoError(t, err)
	assert.Equal(t, "250.50", celda)

	celda, err = f.GetCellValue("Resumen_Mensual", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2025-01", celda)
}

func TestWorkbook_HojaVacia(t *testing.T) {
	contenido, err := excel.Workbook([]excel.Hoja{
		{Nombre: "Detalle_Recibidos", Encabezados: []string{"UUID"}},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(contenido))
	require.NoError(t, err)
	defer f.Close()

	celda, err := f.GetCellValue("Detalle_Recibidos", "A1")
	require.NoError(t, err)
	assert.Equal(t, "UUID", celda, "una hoja sin filas conserva sus encabezados")
}
