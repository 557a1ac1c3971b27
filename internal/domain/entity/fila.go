package entity

import "github.com/shopspring/decimal"

// Categorías de un lote de CFDIs según quién los emitió.
const (
	CategoriaEmitidos  = "Emitidos"
	CategoriaRecibidos = "Recibidos"
)

// FilaConcepto es el registro plano que produce el procesador por cada
// concepto de cada CFDI. Los siete campos fiscales derivados existen siempre
// (inician en cero); el clasificador llena la rama de ingresos o la de egresos
// según el tipo de comprobante, nunca ambas.
type FilaConcepto struct {
	ArchivoXML      string
	UUID            string
	Folio           string
	Fecha           string // dd/mm/aaaa
	Mes             string // aaaa-mm, bucket de agrupación
	TipoComprobante string
	EmisorRFC       string
	EmisorNombre    string
	ReceptorRFC     string
	ReceptorNombre  string
	SubTotalCFDI    decimal.Decimal
	TotalCFDI       decimal.Decimal
	MontoConcepto   decimal.Decimal
	Descripcion     string
	Cantidad        decimal.Decimal
	Unidad          string
	ValorUnitario   decimal.Decimal
	ClaveProdServ   string
	Categoria       string // Emitidos | Recibidos

	// Rama de ingresos (tipo de comprobante "I")
	IngresosSubtotal     decimal.Decimal
	IngresosIVA          decimal.Decimal
	IngresosRetencionIVA decimal.Decimal
	IngresosRetencionISR decimal.Decimal

	// Rama de egresos (tipo de comprobante "E")
	EgresosSubtotal decimal.Decimal
	EgresosIVA      decimal.Decimal
	EgresosTotal    decimal.Decimal

	// Mutable después del procesamiento, vía el filtro de deducibilidad.
	Deducible bool
}

// Dataset es la secuencia ordenada de filas de un lote: orden de inserción =
// orden archivo→concepto del procesamiento. No se deduplica por UUID (un CFDI
// con varios conceptos aporta una fila por concepto, todas con el mismo UUID).
type Dataset struct {
	Filas []FilaConcepto
}

// Append agrega una fila conservando el orden de procesamiento.
func (d *Dataset) Append(f FilaConcepto) {
	d.Filas = append(d.Filas, f)
}

// Len devuelve el número de filas (conceptos).
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Filas)
}

// UUIDsUnicos devuelve la cantidad de CFDIs distintos en el dataset.
func (d *Dataset) UUIDsUnicos() int {
	if d == nil {
		return 0
	}
	seen := make(map[string]struct{}, len(d.Filas))
	for _, f := range d.Filas {
		seen[f.UUID] = struct{}{}
	}
	return len(seen)
}

// Concat devuelve un dataset nuevo con las filas de d seguidas de las de otro.
func (d *Dataset) Concat(otro *Dataset) *Dataset {
	out := &Dataset{}
	if d != nil {
		out.Filas = append(out.Filas, d.Filas...)
	}
	if otro != nil {
		out.Filas = append(out.Filas, otro.Filas...)
	}
	return out
}

// CatalogoProdServ es el conjunto de claves de producto/servicio distintas
// observadas en un lote. Se reconstruye desde cero en cada corrida; nunca se
// mezcla entre corridas.
type CatalogoProdServ struct {
	claves map[string]struct{}
}

// NuevoCatalogoProdServ crea un catálogo vacío.
func NuevoCatalogoProdServ() *CatalogoProdServ {
	return &CatalogoProdServ{claves: make(map[string]struct{})}
}

// Agrega registra una clave; las vacías se ignoran.
func (c *CatalogoProdServ) Agrega(clave string) {
	if clave == "" {
		return
	}
	c.claves[clave] = struct{}{}
}

// Contiene reporta si la clave fue observada en el lote.
func (c *CatalogoProdServ) Contiene(clave string) bool {
	_, ok := c.claves[clave]
	return ok
}

// Claves devuelve las claves observadas, sin orden garantizado.
func (c *CatalogoProdServ) Claves() []string {
	out := make([]string, 0, len(c.claves))
	for k := range c.claves {
		out = append(out, k)
	}
	return out
}

// Len devuelve el número de claves distintas.
func (c *CatalogoProdServ) Len() int {
	return len(c.claves)
}
