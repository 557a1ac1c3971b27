package cfdixml_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/cfdi-pro/internal/domain"
	"github.com/tu-usuario/cfdi-pro/internal/infrastructure/cfdixml"
)

// CFDI 4.0 mínimo pero representativo: timbre, dos conceptos, traslados y
// retenciones con llaves compuestas.
const cfdiCompleto = `<?xml version="1.0" encoding="UTF-8"?>
<cfdi:Comprobante xmlns:cfdi="http://www.sat.gob.mx/cfd/4" Version="4.0"
  Fecha="2025-01-15T10:30:00" TipoDeComprobante="I" Folio="F-123"
  SubTotal="1100.00" Total="1276.00">
  <cfdi:Emisor Rfc="EMI010101AAA" Nombre="Emisor SA de CV"/>
  <cfdi:Receptor Rfc="REC010101BBB" Nombre="Receptor SA de CV"/>
  <cfdi:Conceptos>
    <cfdi:Concepto ClaveProdServ="84111506" Cantidad="2" Unidad="E48"
      Descripcion="Servicio de contabilidad" ValorUnitario="500.00" Importe="1000.00">
      <cfdi:Impuestos>
        <cfdi:Traslados>
          <cfdi:Traslado Impuesto="002" TipoFactor="Tasa" TasaOCuota="0.160000" Importe="160.00"/>
        </cfdi:Traslados>
        <cfdi:Retenciones>
          <cfdi:Retencion Impuesto="001" Importe="100.00"/>
        </cfdi:Retenciones>
      </cfdi:Impuestos>
    </cfdi:Concepto>
    <cfdi:Concepto Descripcion="Papelería" Importe="100.00"/>
  </cfdi:Conceptos>
  <cfdi:Complemento>
    <tfd:TimbreFiscalDigital xmlns:tfd="http://www.sat.gob.mx/TimbreFiscalDigital"
      UUID="AAAAAAAA-BBBB-CCCC-DDDD-EEEEEEEEEEEE"/>
  </cfdi:Complemento>
</cfdi:Comprobante>`

func TestParse_CFDICompleto(t *testing.T) {
	p := cfdixml.NewParser()

	c, err := p.Parse([]byte(cfdiCompleto))
	require.NoError(t, err)

	assert.Equal(t, "I", c.TipoDeComprobante)
	assert.Equal(t, "F-123", c.Folio)
	assert.Equal(t, "AAAAAAAA-BBBB-CCCC-DDDD-EEEEEEEEEEEE", c.UUID, "el UUID sale del timbre fiscal")
	assert.Equal(t, "EMI010101AAA", c.EmisorRFC)
	assert.Equal(t, "Receptor SA de CV", c.ReceptorNombre)
	assert.True(t, c.SubTotal.Equal(decimal.RequireFromString("1100.00")))
	assert.True(t, c.Total.Equal(decimal.RequireFromString("1276.00")))
	assert.Equal(t, "2025-01", c.Mes())
	assert.Equal(t, "15/01/2025", c.FechaFormato())

	require.Len(t, c.Conceptos, 2)
	primero := c.Conceptos[0]
	assert.Equal(t, "84111506", primero.ClaveProdServ)
	assert.True(t, primero.Cantidad.Equal(decimal.NewFromInt(2)))
	require.Len(t, primero.Impuestos.Traslados, 1)
	assert.Equal(t, "002|Tasa|0.160000", primero.Impuestos.Traslados[0].Clave,
		"la llave compuesta une Impuesto, TipoFactor y TasaOCuota")
	require.Len(t, primero.Impuestos.Retenciones, 1)
	assert.Equal(t, "001", primero.Impuestos.Retenciones[0].Clave,
		"una retención sin tasa conserva solo la clave del impuesto")
}

// Los campos opcionales ausentes quedan en sus defaults: cantidad 1, montos en
// cero, textos vacíos.
func TestParse_DefaultsDeConcepto(t *testing.T) {
	p := cfdixml.NewParser()

	c, err := p.Parse([]byte(cfdiCompleto))
	require.NoError(t, err)

	segundo := c.Conceptos[1]
	assert.True(t, segundo.Cantidad.Equal(decimal.NewFromInt(1)), "la cantidad ausente vale 1")
	assert.True(t, segundo.ValorUnitario.IsZero())
	assert.Empty(t, segundo.ClaveProdServ)
	assert.Empty(t, segundo.Impuestos.Traslados)
}

// Documentos sin prefijo de namespace se leen igual que con cfdi: / tfd:.
func TestParse_SinPrefijoDeNamespace(t *testing.T) {
	p := cfdixml.NewParser()

	xml := `<Comprobante TipoDeComprobante="E" SubTotal="50" Total="58">
	  <Emisor Rfc="EMI010101AAA"/>
	  <Conceptos><Concepto Importe="50.00"/></Conceptos>
	</Comprobante>`

	c, err := p.Parse([]byte(xml))
	require.NoError(t, err)
	assert.Equal(t, "E", c.TipoDeComprobante)
	require.Len(t, c.Conceptos, 1)
}

func TestParse_XMLIlegible(t *testing.T) {
	p := cfdixml.NewParser()

	_, err := p.Parse([]byte("esto no es XML <"))

	assert.ErrorIs(t, err, domain.ErrInvoiceParse)
}

func TestParse_RaizIncorrecta(t *testing.T) {
	p := cfdixml.NewParser()

	_, err := p.Parse([]byte(`<Factura Fecha="2025-01-15T10:30:00"/>`))

	assert.ErrorIs(t, err, domain.ErrInvoiceParse, "una raíz distinta de Comprobante no es un CFDI")
}

// Una fecha presente pero malformada es un error duro del archivo, no una
// fila con fecha vacía.
func TestParse_FechaMalformada(t *testing.T) {
	p := cfdixml.NewParser()

	_, err := p.Parse([]byte(`<Comprobante Fecha="15/01/2025" TipoDeComprobante="I"/>`))

	assert.ErrorIs(t, err, domain.ErrMalformedDate)
}

func TestParse_FechaConEspacio(t *testing.T) {
	p := cfdixml.NewParser()

	c, err := p.Parse([]byte(`<Comprobante Fecha="2025-01-15 10:30:00" TipoDeComprobante="I"/>`))

	require.NoError(t, err)
	assert.Equal(t, "2025-01", c.Mes(), "el formato con espacio de algunos PACs se acepta")
}

func TestParse_SinFecha(t *testing.T) {
	p := cfdixml.NewParser()

	c, err := p.Parse([]byte(`<Comprobante TipoDeComprobante="I"/>`))

	require.NoError(t, err)
	assert.Empty(t, c.Mes(), "sin fecha el bucket de mes queda vacío")
	assert.Empty(t, c.FechaFormato())
}

func TestParse_MontoInvalido(t *testing.T) {
	p := cfdixml.NewParser()

	_, err := p.Parse([]byte(`<Comprobante TipoDeComprobante="I" SubTotal="cien"/>`))

	require.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.Contains(t, err.Error(), "SubTotal", "el error debe nombrar el campo inválido")
}
