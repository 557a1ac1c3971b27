// Package excel escribe los libros XLSX del procesador con excelize: hoja de
// detalle, resumen mensual y totales generales, con ancho de columna inferido
// del contenido.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Ancho de columna: largo máximo del contenido + margen, con tope.
const (
	margenColumna = 2
	anchoMaximo   = 50
)

// Hoja es una tabla nombrada dentro del libro.
type Hoja struct {
	Nombre      string
	Encabezados []string
	Filas       [][]string
}

// Workbook genera un libro XLSX con las hojas en el orden recibido.
func Workbook(hojas []Hoja) ([]byte, error) {
	if len(hojas) == 0 {
		return nil, fmt.Errorf("excel: el libro requiere al menos una hoja")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, h := range hojas {
		if i == 0 {
			// excelize crea "Sheet1" por defecto; se renombra a la primera hoja.
			if err := f.SetSheetName("Sheet1", h.Nombre); err != nil {
				return nil, fmt.Errorf("excel: renombrar hoja %q: %w", h.Nombre, err)
			}
		} else {
			if _, err := f.NewSheet(h.Nombre); err != nil {
				return nil, fmt.Errorf("excel: crear hoja %q: %w", h.Nombre, err)
			}
		}
		if err := escribeHoja(f, h); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func escribeHoja(f *excelize.File, h Hoja) error {
	if err := escribeFila(f, h.Nombre, 1, h.Encabezados); err != nil {
		return err
	}
	for i, fila := range h.Filas {
		if err := escribeFila(f, h.Nombre, i+2, fila); err != nil {
			return err
		}
	}
	return ajustaAnchos(f, h)
}

func escribeFila(f *excelize.File, hoja string, num int, valores []string) error {
	celda, err := excelize.CoordinatesToCellName(1, num)
	if err != nil {
		return err
	}
	row := make([]interface{}, len(valores))
	for i, v := range valores {
		row[i] = v
	}
	if err := f.SetSheetRow(hoja, celda, &row); err != nil {
		return fmt.Errorf("excel: fila %d de %q: %w", num, hoja, err)
	}
	return nil
}

// ajustaAnchos fija el ancho de cada columna al contenido más largo de la
// columna (encabezado incluido) más un margen, con tope de anchoMaximo.
func ajustaAnchos(f *excelize.File, h Hoja) error {
	for col := range h.Encabezados {
		max := len(h.Encabezados[col])
		for _, fila := range h.Filas {
			if col < len(fila) && len(fila[col]) > max {
				max = len(fila[col])
			}
		}
		ancho := max + margenColumna
		if ancho > anchoMaximo {
			ancho = anchoMaximo
		}
		nombre, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(h.Nombre, nombre, nombre, float64(ancho)); err != nil {
			return fmt.Errorf("excel: ancho de columna %s en %q: %w", nombre, h.Nombre, err)
		}
	}
	return nil
}
