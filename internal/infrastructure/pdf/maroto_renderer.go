// Package pdf genera la representación impresa de un CFDI con Maroto v2 y
// fusiona lotes de PDFs con pdfcpu.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Emisor + RFC        │  Folio + Fecha + Tipo        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RECEPTOR: Nombre + RFC                                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Clave | Descripción | V.Unit | Importe       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: SubTotal / TOTAL                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER SAT: UUID + QR de verificación                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"net/url"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/cfdi-pro/internal/domain"
	"github.com/tu-usuario/cfdi-pro/internal/domain/entity"
	"github.com/tu-usuario/cfdi-pro/pkg/sat"
)

// URL de verificación pública de CFDIs del SAT; arma el contenido del QR.
const satVerificaURL = "https://verificacfdi.facturaelectronica.sat.gob.mx/default.aspx"

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 90, Green: 30, Blue: 30}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

// MarotoRenderer genera la representación impresa de un CFDI.
type MarotoRenderer struct{}

// NewMarotoRenderer construye el renderer.
func NewMarotoRenderer() *MarotoRenderer { return &MarotoRenderer{} }

// Render genera el PDF de un comprobante y devuelve sus bytes.
// Los fallos se envuelven en domain.ErrRender; el procesador los trata como
// no fatales para el lote.
func (r *MarotoRenderer) Render(c *entity.Comprobante) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Representación impresa de CFDI", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(c))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(receptorRow(c))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, fila := range tableConceptoRows(c.Conceptos) {
		m.AddRows(fila)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(c))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, fila := range satFooterRows(c) {
		m.AddRows(fila)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRender, err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: emisor + RFC (izq) y folio + fecha + tipo (der).
func headerRow(c *entity.Comprobante) core.Row {
	tipo := c.TipoDeComprobante
	if label, ok := sat.TipoComprobanteLabels[tipo]; ok {
		tipo = fmt.Sprintf("%s (%s)", label, tipo)
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(c.EmisorNombre, "Emisor sin nombre"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("RFC: "+c.EmisorRFC, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("CFDI — COMPROBANTE FISCAL DIGITAL", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Folio: "+nonEmpty(c.Folio, "—"), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New(fmt.Sprintf("Fecha: %s   Tipo: %s", nonEmpty(c.FechaFormato(), "—"), tipo), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// receptorRow: datos del receptor.
func receptorRow(c *entity.Comprobante) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("RECEPTOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   RFC: %s",
				nonEmpty(c.ReceptorNombre, "—"),
				nonEmpty(c.ReceptorRFC, "—"),
			), props.Text{Size: 9, Top: 7}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de conceptos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Clave", 2, align.Center),
		h("Descripción", 5, align.Left),
		h("V. Unitario", 2, align.Right),
		h("Importe", 2, align.Right),
	)
}

// tableConceptoRows: una fila por concepto.
func tableConceptoRows(conceptos []entity.Concepto) []core.Row {
	result := make([]core.Row, 0, len(conceptos))
	for _, con := range conceptos {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				con.Cantidad.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				nonEmpty(con.ClaveProdServ, "—"),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				con.Descripcion,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(con.ValorUnitario),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(con.Importe),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(c *entity.Comprobante) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	return row.New(18).Add(
		col.New(4),
		col.New(4).Add(
			label("SubTotal:"),
			text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2, Top: 7,
			}),
		),
		col.New(4).Add(
			text.New("$"+formatMoney(c.SubTotal), props.Text{Size: 9, Align: align.Right, Right: 1}),
			text.New("$"+formatMoney(c.Total), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 1, Top: 7,
			}),
		),
	)
}

// satFooterRows: UUID del timbre + QR de verificación en el portal del SAT.
func satFooterRows(c *entity.Comprobante) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("TIMBRE FISCAL DIGITAL", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}

	if c.UUID != "" {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("UUID: "+c.UUID, props.Text{Size: 7, Color: colorGray, Top: 1, Left: 2}),
		)))
		rows = append(rows, row.New(40).Add(
			col.New(4).Add(code.NewQr(qrData(c), props.Rect{
				Percent: 95,
				Center:  true,
			})),
			col.New(8).Add(
				text.New("Escanea el código QR para verificar\neste comprobante en el portal del SAT.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
			),
		))
	} else {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("Comprobante sin timbre fiscal digital", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}

	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"Este documento es una representación impresa de un CFDI. "+
				"Conserve el XML como soporte fiscal.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))

	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// qrData arma la URL de verificación del SAT con UUID, RFCs y total.
func qrData(c *entity.Comprobante) string {
	q := url.Values{}
	q.Set("id", c.UUID)
	q.Set("re", c.EmisorRFC)
	q.Set("rr", c.ReceptorRFC)
	q.Set("tt", c.Total.StringFixed(6))
	return satVerificaURL + "?" + q.Encode()
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea un decimal con separador de miles y dos decimales.
// Ej: 25000 → "25,000.00"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	entero, frac, _ := strings.Cut(s, ".")
	n := len(entero)
	if n > 3 {
		buf := make([]byte, 0, n+n/3)
		for i := 0; i < n; i++ {
			if i > 0 && (n-i)%3 == 0 {
				buf = append(buf, ',')
			}
			buf = append(buf, entero[i])
		}
		entero = string(buf)
	}
	out := entero + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}
