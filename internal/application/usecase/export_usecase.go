package usecase

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tu-usuario/cfdi-pro/internal/application/dto"
	"github.com/tu-usuario/cfdi-pro/internal/domain"
	"github.com/tu-usuario/cfdi-pro/internal/domain/cfdi"
	"github.com/tu-usuario/cfdi-pro/internal/domain/entity"
	"github.com/tu-usuario/cfdi-pro/internal/infrastructure/excel"
	"github.com/tu-usuario/cfdi-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/cfdi-pro/pkg/logger"
)

// columna es una columna exportable: encabezado estable y extractor de valor.
type columna struct {
	nombre string
	valor  func(f entity.FilaConcepto) string
}

// columnas define el orden canónico de la hoja de detalle. Los encabezados son
// contrato: los reportes descendentes los referencian por nombre.
var columnas = []columna{
	{"Archivo_XML", func(f entity.FilaConcepto) string { return f.ArchivoXML }},
	{"UUID", func(f entity.FilaConcepto) string { return f.UUID }},
	{"Folio", func(f entity.FilaConcepto) string { return f.Folio }},
	{"Fecha", func(f entity.FilaConcepto) string { return f.Fecha }},
	{"Mes", func(f entity.FilaConcepto) string { return f.Mes }},
	{"Tipo_Comprobante", func(f entity.FilaConcepto) string { return f.TipoComprobante }},
	{"Emisor_RFC", func(f entity.FilaConcepto) string { return f.EmisorRFC }},
	{"Emisor_Nombre", func(f entity.FilaConcepto) string { return f.EmisorNombre }},
	{"Receptor_RFC", func(f entity.FilaConcepto) string { return f.ReceptorRFC }},
	{"Receptor_Nombre", func(f entity.FilaConcepto) string { return f.ReceptorNombre }},
	{"SubTotal_CFDI", func(f entity.FilaConcepto) string { return f.SubTotalCFDI.String() }},
	{"Total_CFDI", func(f entity.FilaConcepto) string { return f.TotalCFDI.String() }},
	{"Monto_Concepto", func(f entity.FilaConcepto) string { return f.MontoConcepto.String() }},
	{"Concepto_Descripcion", func(f entity.FilaConcepto) string { return f.Descripcion }},
	{"Cantidad", func(f entity.FilaConcepto) string { return f.Cantidad.String() }},
	{"Unidad", func(f entity.FilaConcepto) string { return f.Unidad }},
	{"Valor_Unitario", func(f entity.FilaConcepto) string { return f.ValorUnitario.String() }},
	{"Clave_ProdServ", func(f entity.FilaConcepto) string { return f.ClaveProdServ }},
	{"Categoria", func(f entity.FilaConcepto) string { return f.Categoria }},
	{"Ingresos_Subtotal", func(f entity.FilaConcepto) string { return f.IngresosSubtotal.String() }},
	{"Ingresos_IVA", func(f entity.FilaConcepto) string { return f.IngresosIVA.String() }},
	{"Ingresos_Retencion_IVA", func(f entity.FilaConcepto) string { return f.IngresosRetencionIVA.String() }},
	{"Ingresos_Retencion_ISR", func(f entity.FilaConcepto) string { return f.IngresosRetencionISR.String() }},
	{"Egresos_Subtotal", func(f entity.FilaConcepto) string { return f.EgresosSubtotal.String() }},
	{"Egresos_IVA", func(f entity.FilaConcepto) string { return f.EgresosIVA.String() }},
	{"Egresos_Total", func(f entity.FilaConcepto) string { return f.EgresosTotal.String() }},
	{"Deducible", func(f entity.FilaConcepto) string {
		if f.Deducible {
			return "Sí"
		}
		return "No"
	}},
}

// NombresColumnas devuelve los encabezados exportables en orden canónico.
func NombresColumnas() []string {
	out := make([]string, len(columnas))
	for i, c := range columnas {
		out[i] = c.nombre
	}
	return out
}

// ExportUseCase arma los archivos descargables de una sesión: libros de Excel
// por categoría, PDF consolidado y exportaciones de columnas elegidas.
type ExportUseCase struct {
	log *logger.Logger
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(log *logger.Logger) *ExportUseCase {
	return &ExportUseCase{log: log}
}

// ExcelCategoria genera el libro de la categoría: hoja de detalle con todas
// las columnas, resumen mensual y totales generales del lote.
func (uc *ExportUseCase) ExcelCategoria(s *Session, categoria string) (string, []byte, error) {
	lote := s.Lote(categoria)
	if lote == nil {
		return "", nil, fmt.Errorf("%w: la categoría %s no tiene lote procesado", domain.ErrNotFound, categoria)
	}

	hojas := []excel.Hoja{
		hojaDetalle(categoria, lote.Dataset),
		hojaResumenMensual(lote.Dataset),
		hojaTotales(lote.Dataset),
	}

	contenido, err := excel.Workbook(hojas)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("CFDIs_%s.xlsx", categoria), contenido, nil
}

// PDFCategoria fusiona los PDFs individuales del lote en un consolidado.
func (uc *ExportUseCase) PDFCategoria(s *Session, categoria string, log zerolog.Logger) (string, []byte, error) {
	lote := s.Lote(categoria)
	if lote == nil {
		return "", nil, fmt.Errorf("%w: la categoría %s no tiene lote procesado", domain.ErrNotFound, categoria)
	}
	if len(lote.PDFs) == 0 {
		return "", nil, fmt.Errorf("%w: el lote no produjo PDFs", domain.ErrNotFound)
	}
	contenido, err := pdf.Merge(lote.PDFs, log)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("CFDIs_%s_Consolidado.pdf", categoria), contenido, nil
}

// ExportColumnas produce una exportación ad-hoc del subconjunto de columnas
// elegido, en CSV o XLSX. Columnas desconocidas invalidan la petición entera.
func (uc *ExportUseCase) ExportColumnas(s *Session, req dto.ExportColumnasRequest) (string, []byte, error) {
	lote := s.Lote(req.Categoria)
	if lote == nil {
		return "", nil, fmt.Errorf("%w: la categoría %s no tiene lote procesado", domain.ErrNotFound, req.Categoria)
	}
	if len(req.Columnas) == 0 {
		return "", nil, fmt.Errorf("%w: se requiere al menos una columna", domain.ErrInvalidInput)
	}

	elegidas := make([]columna, 0, len(req.Columnas))
	for _, nombre := range req.Columnas {
		col, ok := buscaColumna(nombre)
		if !ok {
			return "", nil, fmt.Errorf("%w: columna desconocida %q", domain.ErrInvalidInput, nombre)
		}
		elegidas = append(elegidas, col)
	}

	encabezados := make([]string, len(elegidas))
	for i, c := range elegidas {
		encabezados[i] = c.nombre
	}
	filas := make([][]string, 0, lote.Dataset.Len())
	for _, f := range lote.Dataset.Filas {
		fila := make([]string, len(elegidas))
		for i, c := range elegidas {
			fila[i] = c.valor(f)
		}
		filas = append(filas, fila)
	}

	switch strings.ToLower(req.Formato) {
	case "csv":
		contenido, err := escribeCSV(encabezados, filas)
		if err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("CFDIs_%s_Columnas.csv", req.Categoria), contenido, nil
	case "", "xlsx":
		contenido, err := excel.Workbook([]excel.Hoja{{
			Nombre:      "Columnas",
			Encabezados: encabezados,
			Filas:       filas,
		}})
		if err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("CFDIs_%s_Columnas.xlsx", req.Categoria), contenido, nil
	}
	return "", nil, fmt.Errorf("%w: formato desconocido %q", domain.ErrInvalidInput, req.Formato)
}

func buscaColumna(nombre string) (columna, bool) {
	for _, c := range columnas {
		if c.nombre == nombre {
			return c, true
		}
	}
	return columna{}, false
}

func hojaDetalle(categoria string, ds *entity.Dataset) excel.Hoja {
	filas := make([][]string, 0, ds.Len())
	for _, f := range ds.Filas {
		fila := make([]string, len(columnas))
		for i, c := range columnas {
			fila[i] = c.valor(f)
		}
		filas = append(filas, fila)
	}
	return excel.Hoja{
		Nombre:      "Detalle_" + categoria,
		Encabezados: NombresColumnas(),
		Filas:       filas,
	}
}

func hojaResumenMensual(ds *entity.Dataset) excel.Hoja {
	filas := [][]string{}
	for _, m := range cfdi.ResumenMensual(ds) {
		filas = append(filas, []string{
			m.Mes,
			m.MontoConcepto.StringFixed(2),
			m.IngresosSubtotal.StringFixed(2),
			m.IngresosIVA.StringFixed(2),
			m.IngresosRetencionIVA.StringFixed(2),
			m.IngresosRetencionISR.StringFixed(2),
			m.EgresosSubtotal.StringFixed(2),
			m.EgresosIVA.StringFixed(2),
			m.EgresosTotal.StringFixed(2),
			fmt.Sprint(m.NumCFDIs),
		})
	}
	return excel.Hoja{
		Nombre: "Resumen_Mensual",
		Encabezados: []string{
			"Mes", "Monto_Concepto", "Ingresos_Subtotal", "Ingresos_IVA",
			"Ingresos_Retencion_IVA", "Ingresos_Retencion_ISR",
			"Egresos_Subtotal", "Egresos_IVA", "Egresos_Total", "Num_CFDIs",
		},
		Filas: filas,
	}
}

func hojaTotales(ds *entity.Dataset) excel.Hoja {
	t := cfdi.Totales(ds)
	return excel.Hoja{
		Nombre:      "Totales_Generales",
		Encabezados: []string{"Concepto", "Valor"},
		Filas: [][]string{
			{"CFDIs únicos", fmt.Sprint(t.NumCFDIsUnicos)},
			{"Total de conceptos", fmt.Sprint(t.TotalConceptos)},
			{"Monto total", t.MontoTotal.StringFixed(2)},
			{"Ingresos subtotal", t.IngresosSubtotal.StringFixed(2)},
			{"Ingresos IVA", t.IngresosIVA.StringFixed(2)},
			{"Ingresos retención IVA", t.IngresosRetencionIVA.StringFixed(2)},
			{"Ingresos retención ISR", t.IngresosRetencionISR.StringFixed(2)},
			{"Egresos subtotal", t.EgresosSubtotal.StringFixed(2)},
			{"Egresos IVA", t.EgresosIVA.StringFixed(2)},
			{"Egresos total", t.EgresosTotal.StringFixed(2)},
		},
	}
}

func escribeCSV(encabezados []string, filas [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(encabezados); err != nil {
		return nil, err
	}
	if err := w.WriteAll(filas); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
