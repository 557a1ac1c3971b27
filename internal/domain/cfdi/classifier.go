// Package cfdi contiene las reglas de negocio puras del procesador: la
// clasificación fiscal por concepto, el filtro de deducibilidad y los
// resúmenes por periodo y por entidad. No toca XML ni archivos.
package cfdi

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/cfdi-pro/internal/domain/entity"
	"github.com/tu-usuario/cfdi-pro/pkg/sat"
)

// Desglose son los siete campos fiscales derivados de un concepto. Según el
// tipo de comprobante se llena la rama de ingresos o la de egresos; con
// cualquier otro tipo (T, N, P) los siete quedan en cero.
type Desglose struct {
	IngresosSubtotal     decimal.Decimal
	IngresosIVA          decimal.Decimal
	IngresosRetencionIVA decimal.Decimal
	IngresosRetencionISR decimal.Decimal
	EgresosSubtotal      decimal.Decimal
	EgresosIVA           decimal.Decimal
	EgresosTotal         decimal.Decimal
}

// Clasifica calcula el desglose fiscal de un concepto. Solo el primer carácter
// del tipo de comprobante es significativo: "I" ingreso, "E" egreso.
//
// Rama de ingresos: subtotal = importe del concepto; IVA = traslados con clave
// 002; retención de IVA = retenciones con clave 002; retención de ISR =
// retenciones con clave 001. Rama de egresos: subtotal = importe; IVA =
// traslados 002; total = subtotal + IVA. Sin redondeo: el redondeo, si aplica,
// es de la capa de presentación.
func Clasifica(tipoComprobante string, c entity.Concepto) Desglose {
	var d Desglose
	switch {
	case len(tipoComprobante) > 0 && tipoComprobante[0] == 'I':
		d.IngresosSubtotal = c.Importe
		d.IngresosIVA = sumaPorClave(c.Impuestos.Traslados, sat.ImpuestoIVA)
		d.IngresosRetencionIVA = sumaPorClave(c.Impuestos.Retenciones, sat.ImpuestoIVA)
		d.IngresosRetencionISR = sumaPorClave(c.Impuestos.Retenciones, sat.ImpuestoISR)
	case len(tipoComprobante) > 0 && tipoComprobante[0] == 'E':
		d.EgresosSubtotal = c.Importe
		d.EgresosIVA = sumaPorClave(c.Impuestos.Traslados, sat.ImpuestoIVA)
		d.EgresosTotal = d.EgresosSubtotal.Add(d.EgresosIVA)
	}
	return d
}

// sumaPorClave suma el Importe de las entradas cuya llave compuesta contiene
// la clave de impuesto indicada.
func sumaPorClave(entradas []entity.EntradaImpuesto, clave string) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entradas {
		if ContieneClaveImpuesto(e.Clave, clave) {
			total = total.Add(e.Importe)
		}
	}
	return total
}

// ContieneClaveImpuesto reporta si la llave compuesta de un traslado o
// retención corresponde a la clave de impuesto dada. La clave debe aparecer
// como corrida completa de dígitos dentro de la llave: "002|Tasa|0.160000" e
// "IVA002_16" corresponden a "002", pero "1002" no (la corrida es "1002").
func ContieneClaveImpuesto(llave, clave string) bool {
	n := len(llave)
	for i := 0; i < n; {
		if !esDigito(llave[i]) {
			i++
			continue
		}
		j := i
		for j < n && esDigito(llave[j]) {
			j++
		}
		if llave[i:j] == clave {
			return true
		}
		i = j
	}
	return false
}

func esDigito(b byte) bool { return b >= '0' && b <= '9' }
