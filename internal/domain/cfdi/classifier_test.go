package cfdi_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/cfdi-pro/internal/domain/cfdi"
	"github.com/tu-usuario/cfdi-pro/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Vectores de referencia del clasificador fiscal: un concepto de ingreso de
// 100.00 con IVA trasladado de 16.00 y un concepto de egreso de 50.00 con IVA
// de 8.00. Si alguien altera las claves del catálogo, la correspondencia de
// llaves compuestas o la regla del total de egresos, estos tests fallan de
// inmediato.
// ──────────────────────────────────────────────────────────────────────────────

func conceptoIngreso() entity.Concepto {
	return entity.Concepto{
		Descripcion: "Servicio de consultoría",
		Importe:     decimal.NewFromInt(100),
		Impuestos: entity.Impuestos{
			Traslados: []entity.EntradaImpuesto{
				{Clave: "002|Tasa|0.160000", Importe: decimal.NewFromInt(16)},
			},
		},
	}
}

func conceptoEgreso() entity.Concepto {
	return entity.Concepto{
		Descripcion: "Nota de crédito",
		Importe:     decimal.NewFromInt(50),
		Impuestos: entity.Impuestos{
			Traslados: []entity.EntradaImpuesto{
				{Clave: "002|Tasa|0.160000", Importe: decimal.NewFromInt(8)},
			},
		},
	}
}

func TestClasifica_IngresoLlenaSoloRamaIngresos(t *testing.T) {
	d := cfdi.Clasifica("I", conceptoIngreso())

	assert.True(t, d.IngresosSubtotal.Equal(decimal.NewFromInt(100)), "el subtotal de ingresos debe ser el importe del concepto")
	assert.True(t, d.IngresosIVA.Equal(decimal.NewFromInt(16)), "el IVA de ingresos debe sumar los traslados 002")
	assert.True(t, d.EgresosSubtotal.IsZero(), "un ingreso no debe llenar la rama de egresos")
	assert.True(t, d.EgresosIVA.IsZero())
	assert.True(t, d.EgresosTotal.IsZero())
}

func TestClasifica_EgresoLlenaSoloRamaEgresos(t *testing.T) {
	d := cfdi.Clasifica("E", conceptoEgreso())

	assert.True(t, d.EgresosSubtotal.Equal(decimal.NewFromInt(50)), "el subtotal de egresos debe ser el importe del concepto")
	assert.True(t, d.EgresosIVA.Equal(decimal.NewFromInt(8)), "el IVA de egresos debe sumar los traslados 002")
	assert.True(t, d.EgresosTotal.Equal(decimal.NewFromInt(58)), "el total de egresos debe ser subtotal + IVA")
	assert.True(t, d.IngresosSubtotal.IsZero(), "un egreso no debe llenar la rama de ingresos")
	assert.True(t, d.IngresosIVA.IsZero())
}

func TestClasifica_RetencionesIngreso(t *testing.T) {
	c := entity.Concepto{
		Importe: decimal.NewFromInt(1000),
		Impuestos: entity.Impuestos{
			Traslados: []entity.EntradaImpuesto{
				{Clave: "002|Tasa|0.160000", Importe: decimal.NewFromInt(160)},
			},
			Retenciones: []entity.EntradaImpuesto{
				{Clave: "002|Tasa|0.106667", Importe: decimal.RequireFromString("106.67")},
				{Clave: "001|Tasa|0.100000", Importe: decimal.NewFromInt(100)},
			},
		},
	}

	d := cfdi.Clasifica("I", c)

	assert.True(t, d.IngresosRetencionIVA.Equal(decimal.RequireFromString("106.67")), "la retención de IVA agrega las retenciones 002")
	assert.True(t, d.IngresosRetencionISR.Equal(decimal.NewFromInt(100)), "la retención de ISR agrega las retenciones 001")
}

// Con tipos de comprobante que no son I ni E (traslado, nómina, pago) los
// siete campos quedan en cero.
func TestClasifica_OtrosTiposQuedanEnCero(t *testing.T) {
	for _, tipo := range []string{"T", "N", "P", ""} {
		d := cfdi.Clasifica(tipo, conceptoIngreso())
		assert.True(t, d.IngresosSubtotal.IsZero(), "tipo %q no debe clasificar", tipo)
		assert.True(t, d.EgresosTotal.IsZero(), "tipo %q no debe clasificar", tipo)
	}
}

func TestContieneClaveImpuesto_LlavesCompuestas(t *testing.T) {
	casos := []struct {
		llave  string
		clave  string
		espera bool
	}{
		{"002|Tasa|0.160000", "002", true},
		{"IVA002_16", "002", true},
		{"ISR001", "001", true},
		{"002", "002", true},
		{"1002", "002", false}, // la corrida completa es "1002", no "002"
		{"003|Tasa|0.080000", "002", false},
		{"", "002", false},
	}
	for _, c := range casos {
		assert.Equal(t, c.espera, cfdi.ContieneClaveImpuesto(c.llave, c.clave),
			"llave %q contra clave %q", c.llave, c.clave)
	}
}

func TestClasifica_IVAConVariosTraslados(t *testing.T) {
	c := entity.Concepto{
		Importe: decimal.NewFromInt(200),
		Impuestos: entity.Impuestos{
			Traslados: []entity.EntradaImpuesto{
				{Clave: "002|Tasa|0.160000", Importe: decimal.NewFromInt(16)},
				{Clave: "002|Tasa|0.080000", Importe: decimal.NewFromInt(8)},
				{Clave: "003|Tasa|0.530000", Importe: decimal.NewFromInt(53)}, // IEPS no cuenta
			},
		},
	}

	d := cfdi.Clasifica("I", c)

	assert.True(t, d.IngresosIVA.Equal(decimal.NewFromInt(24)), "el IVA debe agregar todos los traslados 002 y excluir IEPS")
}
