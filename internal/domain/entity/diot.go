package entity

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/cfdi-pro/pkg/sat"
)

// DatosIdentificacion identifica al declarante de la DIOT.
type DatosIdentificacion struct {
	RFC         string
	RazonSocial string
	Ejercicio   int // año fiscal
	Periodo     sat.Periodo
}

// ProveedorTercero es una operación con tercero dentro de la DIOT. Para
// proveedores nacionales (04) se llena RFC; para extranjeros (05) y globales
// (15) se llenan IDFiscal, Nombre, Pais y Nacionalidad.
type ProveedorTercero struct {
	TipoTercero   sat.TipoTercero
	TipoOperacion sat.TipoOperacion

	RFC string // proveedor nacional

	IDFiscal     string // proveedor extranjero/global
	Nombre       string
	Pais         sat.Pais
	Nacionalidad string

	// Desglose de valor de los actos o actividades pagados, por régimen de IVA.
	IVA16       decimal.Decimal // tasa 16%
	IVA16NA     decimal.Decimal // tasa 16% no acreditable
	IVA0        decimal.Decimal // tasa 0%
	IVAExento   decimal.Decimal // exentos
	IVARFN      decimal.Decimal // región fronteriza norte
	IVAImport16 decimal.Decimal // importación tasa 16%
}

// DatosComplementaria identifica la declaración que se corrige cuando la DIOT
// es complementaria. El layout vigente no la serializa; se conserva para
// validación y auditoría.
type DatosComplementaria struct {
	FolioAnterior string
	FechaAnterior string // dd/mm/aaaa de la declaración previa
}

// DIOT agrupa los datos de una declaración lista para serializar.
type DIOT struct {
	Identificacion DatosIdentificacion
	Proveedores    []ProveedorTercero
	Complementaria *DatosComplementaria // nil si es declaración normal
}
