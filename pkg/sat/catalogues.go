// Package sat contiene catálogos del SAT (México) usados por el procesador de
// CFDIs y por la DIOT: tipos de comprobante, claves de impuesto, periodos de
// declaración, tipos de tercero y de operación. Cada catálogo expone las
// constantes de código y una tabla código→etiqueta para la capa de presentación.
package sat

// =============================================================================
// Catálogo c_TipoDeComprobante (Anexo 20 CFDI 4.0)
// El primer carácter del código decide la rama fiscal del clasificador.
// =============================================================================

const (
	ComprobanteIngreso  = "I" // Ingreso
	ComprobanteEgreso   = "E" // Egreso (nota de crédito)
	ComprobanteTraslado = "T" // Traslado
	ComprobanteNomina   = "N" // Nómina
	ComprobantePago     = "P" // Pago
)

// TipoComprobanteLabels etiquetas legibles por código.
var TipoComprobanteLabels = map[string]string{
	ComprobanteIngreso:  "Ingreso",
	ComprobanteEgreso:   "Egreso",
	ComprobanteTraslado: "Traslado",
	ComprobanteNomina:   "Nómina",
	ComprobantePago:     "Pago",
}

// =============================================================================
// Catálogo c_Impuesto (Anexo 20). Las claves aparecen embebidas en la llave
// compuesta de cada traslado/retención (ej. "002|Tasa|0.160000").
// =============================================================================

const (
	ImpuestoISR  = "001" // Impuesto Sobre la Renta
	ImpuestoIVA  = "002" // Impuesto al Valor Agregado
	ImpuestoIEPS = "003" // Impuesto Especial sobre Producción y Servicios
)

// ImpuestoLabels etiquetas legibles por clave de impuesto.
var ImpuestoLabels = map[string]string{
	ImpuestoISR:  "ISR",
	ImpuestoIVA:  "IVA",
	ImpuestoIEPS: "IEPS",
}

// =============================================================================
// Periodos de la DIOT. Los códigos trimestrales reutilizan valores de los
// mensuales (el formato oficial los distingue por contexto de la declaración).
// =============================================================================

// Periodo código de periodo de la declaración.
type Periodo string

const (
	PeriodoEnero      Periodo = "01"
	PeriodoFebrero    Periodo = "02"
	PeriodoMarzo      Periodo = "03"
	PeriodoAbril      Periodo = "04"
	PeriodoMayo       Periodo = "05"
	PeriodoJunio      Periodo = "06"
	PeriodoJulio      Periodo = "07"
	PeriodoAgosto     Periodo = "08"
	PeriodoSeptiembre Periodo = "09"
	PeriodoOctubre    Periodo = "10"
	PeriodoNoviembre  Periodo = "11"
	PeriodoDiciembre  Periodo = "12"

	// Trimestrales
	PeriodoEneroMarzo       Periodo = "04"
	PeriodoAbrilJunio       Periodo = "05"
	PeriodoJulioSeptiembre  Periodo = "06"
	PeriodoOctubreDiciembre Periodo = "07"
)

// PeriodoLabels etiquetas de los periodos mensuales por código.
var PeriodoLabels = map[Periodo]string{
	PeriodoEnero:      "Enero",
	PeriodoFebrero:    "Febrero",
	PeriodoMarzo:      "Marzo",
	PeriodoAbril:      "Abril",
	PeriodoMayo:       "Mayo",
	PeriodoJunio:      "Junio",
	PeriodoJulio:      "Julio",
	PeriodoAgosto:     "Agosto",
	PeriodoSeptiembre: "Septiembre",
	PeriodoOctubre:    "Octubre",
	PeriodoNoviembre:  "Noviembre",
	PeriodoDiciembre:  "Diciembre",
}

// PeriodoFromLabel busca el código por etiqueta (selección en UI).
func PeriodoFromLabel(label string) (Periodo, bool) {
	for code, l := range PeriodoLabels {
		if l == label {
			return code, true
		}
	}
	return "", false
}

// Valid reporta si el código de periodo existe en el catálogo.
func (p Periodo) Valid() bool {
	switch p {
	case PeriodoEnero, PeriodoFebrero, PeriodoMarzo, PeriodoAbril, PeriodoMayo,
		PeriodoJunio, PeriodoJulio, PeriodoAgosto, PeriodoSeptiembre,
		PeriodoOctubre, PeriodoNoviembre, PeriodoDiciembre:
		return true
	}
	return false
}

// =============================================================================
// Tipos de tercero (layout DIOT)
// =============================================================================

// TipoTercero código de tipo de tercero del proveedor.
type TipoTercero string

const (
	ProveedorNacional   TipoTercero = "04"
	ProveedorExtranjero TipoTercero = "05"
	ProveedorGlobal     TipoTercero = "15"
)

// TipoTerceroLabels etiquetas por código.
var TipoTerceroLabels = map[TipoTercero]string{
	ProveedorNacional:   "Proveedor nacional",
	ProveedorExtranjero: "Proveedor extranjero",
	ProveedorGlobal:     "Proveedor global",
}

// Valid reporta si el código de tipo de tercero existe en el catálogo.
func (t TipoTercero) Valid() bool {
	_, ok := TipoTerceroLabels[t]
	return ok
}

// =============================================================================
// Tipos de operación (layout DIOT)
// =============================================================================

// TipoOperacion código de tipo de operación con el tercero.
type TipoOperacion string

const (
	OperacionOtros                  TipoOperacion = "03"
	OperacionArrendamientoInmuebles TipoOperacion = "06"
	OperacionServiciosProfesionales TipoOperacion = "85"
)

// TipoOperacionLabels etiquetas por código.
var TipoOperacionLabels = map[TipoOperacion]string{
	OperacionOtros:                  "Otros",
	OperacionArrendamientoInmuebles: "Arrendamiento de inmuebles",
	OperacionServiciosProfesionales: "Prestación de servicios profesionales",
}

// Valid reporta si el código de tipo de operación existe en el catálogo.
func (t TipoOperacion) Valid() bool {
	_, ok := TipoOperacionLabels[t]
	return ok
}

// =============================================================================
// Países (ISO 3166-1 alfa-3, subconjunto frecuente en la DIOT)
// =============================================================================

// Pais código de país para proveedores extranjeros.
type Pais string

const (
	PaisMexico        Pais = "MEX"
	PaisEstadosUnidos Pais = "USA"
	PaisCanada        Pais = "CAN"
	PaisEspana        Pais = "ESP"
	PaisAlemania      Pais = "DEU"
	PaisFrancia       Pais = "FRA"
	PaisReinoUnido    Pais = "GBR"
	PaisJapon         Pais = "JPN"
	PaisChina         Pais = "CHN"
	PaisBrasil        Pais = "BRA"
)

// PaisLabels etiquetas por código de país.
var PaisLabels = map[Pais]string{
	PaisMexico:        "México",
	PaisEstadosUnidos: "Estados Unidos",
	PaisCanada:        "Canadá",
	PaisEspana:        "España",
	PaisAlemania:      "Alemania",
	PaisFrancia:       "Francia",
	PaisReinoUnido:    "Reino Unido",
	PaisJapon:         "Japón",
	PaisChina:         "China",
	PaisBrasil:        "Brasil",
}
