package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Comprobante es el subconjunto de un CFDI parseado que necesita el procesador:
// encabezado fiscal, identidad de emisor/receptor y la lista de conceptos.
// Es de solo lectura una vez construido por el parser.
type Comprobante struct {
	Fecha             time.Time // cero si el CFDI no trae fecha
	FechaRaw          string    // cadena original del atributo Fecha
	TipoDeComprobante string    // catálogo c_TipoDeComprobante: I, E, T, N, P
	Folio             string
	UUID              string // Complemento/TimbreFiscalDigital@UUID
	EmisorRFC         string
	EmisorNombre      string
	ReceptorRFC       string
	ReceptorNombre    string
	SubTotal          decimal.Decimal
	Total             decimal.Decimal
	Conceptos         []Concepto
}

// Mes devuelve el bucket año-mes ("2025-01") o cadena vacía si no hay fecha.
func (c *Comprobante) Mes() string {
	if c.Fecha.IsZero() {
		return ""
	}
	return c.Fecha.Format("2006-01")
}

// FechaFormato devuelve la fecha dd/mm/aaaa o cadena vacía si no hay fecha.
func (c *Comprobante) FechaFormato() string {
	if c.Fecha.IsZero() {
		return ""
	}
	return c.Fecha.Format("02/01/2006")
}

// Concepto es una línea del CFDI con sus impuestos anidados.
type Concepto struct {
	Descripcion   string
	ClaveProdServ string
	Unidad        string
	Cantidad      decimal.Decimal // 1 si el XML no la trae
	ValorUnitario decimal.Decimal
	Importe       decimal.Decimal
	Impuestos     Impuestos
}

// Impuestos agrupa traslados y retenciones de un concepto.
type Impuestos struct {
	Traslados   []EntradaImpuesto
	Retenciones []EntradaImpuesto
}

// EntradaImpuesto es un traslado o retención individual. Clave es la llave
// compuesta que identifica el impuesto, con la clave del catálogo c_Impuesto
// embebida (ej. "002|Tasa|0.160000").
type EntradaImpuesto struct {
	Clave   string
	Importe decimal.Decimal
}
