// Package cfdixml parsea CFDIs (XML del Anexo 20, versiones 3.3 y 4.0) hacia
// las entidades del dominio. La búsqueda de elementos ignora el prefijo de
// namespace, de modo que cfdi:, tfd: o documentos sin prefijo se leen igual.
package cfdixml

import (
	"fmt"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/cfdi-pro/internal/domain"
	"github.com/tu-usuario/cfdi-pro/internal/domain/entity"
)

// Formatos de fecha aceptados: el del Anexo 20 (con T) y el variante con
// espacio que emiten algunos PACs.
var formatosFecha = []string{"2006-01-02T15:04:05", "2006-01-02 15:04:05"}

// Parser convierte bytes XML en un Comprobante del dominio.
type Parser struct{}

// NewParser construye el parser.
func NewParser() *Parser { return &Parser{} }

// Parse lee un CFDI. XML ilegible o sin raíz Comprobante → ErrInvoiceParse;
// fecha presente pero no parseable → ErrMalformedDate; montos no numéricos →
// ErrInvalidAmount. Campos de texto ausentes quedan vacíos y montos ausentes
// en cero.
func (p *Parser) Parse(data []byte) (*entity.Comprobante, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvoiceParse, err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "Comprobante" {
		return nil, fmt.Errorf("%w: la raíz no es cfdi:Comprobante", domain.ErrInvoiceParse)
	}

	c := &entity.Comprobante{
		FechaRaw:          root.SelectAttrValue("Fecha", ""),
		TipoDeComprobante: root.SelectAttrValue("TipoDeComprobante", ""),
		Folio:             root.SelectAttrValue("Folio", ""),
	}

	if c.FechaRaw != "" {
		fecha, err := parseFecha(c.FechaRaw)
		if err != nil {
			return nil, err
		}
		c.Fecha = fecha
	}

	var err error
	if c.SubTotal, err = parseMonto(root.SelectAttrValue("SubTotal", ""), "SubTotal", decimal.Zero); err != nil {
		return nil, err
	}
	if c.Total, err = parseMonto(root.SelectAttrValue("Total", ""), "Total", decimal.Zero); err != nil {
		return nil, err
	}

	if emisor := hijo(root, "Emisor"); emisor != nil {
		c.EmisorRFC = emisor.SelectAttrValue("Rfc", "")
		c.EmisorNombre = emisor.SelectAttrValue("Nombre", "")
	}
	if receptor := hijo(root, "Receptor"); receptor != nil {
		c.ReceptorRFC = receptor.SelectAttrValue("Rfc", "")
		c.ReceptorNombre = receptor.SelectAttrValue("Nombre", "")
	}
	if complemento := hijo(root, "Complemento"); complemento != nil {
		if timbre := hijo(complemento, "TimbreFiscalDigital"); timbre != nil {
			c.UUID = timbre.SelectAttrValue("UUID", "")
		}
	}

	if conceptos := hijo(root, "Conceptos"); conceptos != nil {
		for _, el := range hijos(conceptos, "Concepto") {
			concepto, err := parseConcepto(el)
			if err != nil {
				return nil, err
			}
			c.Conceptos = append(c.Conceptos, concepto)
		}
	}

	return c, nil
}

func parseConcepto(el *etree.Element) (entity.Concepto, error) {
	c := entity.Concepto{
		Descripcion:   el.SelectAttrValue("Descripcion", ""),
		ClaveProdServ: el.SelectAttrValue("ClaveProdServ", ""),
		Unidad:        el.SelectAttrValue("Unidad", ""),
	}

	var err error
	if c.Cantidad, err = parseMonto(el.SelectAttrValue("Cantidad", ""), "Cantidad", decimal.NewFromInt(1)); err != nil {
		return c, err
	}
	if c.ValorUnitario, err = parseMonto(el.SelectAttrValue("ValorUnitario", ""), "ValorUnitario", decimal.Zero); err != nil {
		return c, err
	}
	if c.Importe, err = parseMonto(el.SelectAttrValue("Importe", ""), "Importe", decimal.Zero); err != nil {
		return c, err
	}

	if impuestos := hijo(el, "Impuestos"); impuestos != nil {
		if traslados := hijo(impuestos, "Traslados"); traslados != nil {
			for _, t := range hijos(traslados, "Traslado") {
				entrada, err := parseEntrada(t)
				if err != nil {
					return c, err
				}
				c.Impuestos.Traslados = append(c.Impuestos.Traslados, entrada)
			}
		}
		if retenciones := hijo(impuestos, "Retenciones"); retenciones != nil {
			for _, r := range hijos(retenciones, "Retencion") {
				entrada, err := parseEntrada(r)
				if err != nil {
					return c, err
				}
				c.Impuestos.Retenciones = append(c.Impuestos.Retenciones, entrada)
			}
		}
	}

	return c, nil
}

// parseEntrada arma la llave compuesta del impuesto a partir de los atributos
// presentes, en el orden Impuesto|TipoFactor|TasaOCuota ("002|Tasa|0.160000").
// Las retenciones del Anexo 20 solo traen Impuesto e Importe; su llave queda
// en la clave sola ("002").
func parseEntrada(el *etree.Element) (entity.EntradaImpuesto, error) {
	llave := el.SelectAttrValue("Impuesto", "")
	for _, attr := range []string{"TipoFactor", "TasaOCuota"} {
		if v := el.SelectAttrValue(attr, ""); v != "" {
			llave += "|" + v
		}
	}
	importe, err := parseMonto(el.SelectAttrValue("Importe", ""), "Importe", decimal.Zero)
	if err != nil {
		return entity.EntradaImpuesto{}, err
	}
	return entity.EntradaImpuesto{Clave: llave, Importe: importe}, nil
}

func parseFecha(s string) (time.Time, error) {
	for _, layout := range formatosFecha {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", domain.ErrMalformedDate, s)
}

func parseMonto(s, campo string, def decimal.Decimal) (decimal.Decimal, error) {
	if s == "" {
		return def, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s=%q", domain.ErrInvalidAmount, campo, s)
	}
	return d, nil
}

// hijo devuelve el primer hijo con ese tag, sin importar el prefijo de namespace.
func hijo(el *etree.Element, tag string) *etree.Element {
	for _, ch := range el.ChildElements() {
		if ch.Tag == tag {
			return ch
		}
	}
	return nil
}

// hijos devuelve todos los hijos con ese tag, en orden de documento.
func hijos(el *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, ch := range el.ChildElements() {
		if ch.Tag == tag {
			out = append(out, ch)
		}
	}
	return out
}
