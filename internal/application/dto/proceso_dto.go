package dto

import "github.com/shopspring/decimal"

// ArchivoError identifica un archivo que falló durante el procesamiento del
// lote y la causa; el resto del lote continúa.
type ArchivoError struct {
	Archivo string `json:"archivo"`
	Error   string `json:"error"`
}

// ProcesarLoteResponse resumen del lote para POST /api/sessions/:id/cfdis.
type ProcesarLoteResponse struct {
	Categoria           string         `json:"categoria"`
	ArchivosRecibidos   int            `json:"archivos_recibidos"`
	ArchivosProcesados  int            `json:"archivos_procesados"`
	ArchivosFallidos    []ArchivoError `json:"archivos_fallidos"`
	ConceptosProcesados int            `json:"conceptos_procesados"`
	CFDIsUnicos         int            `json:"cfdis_unicos"`
	PDFsGenerados       int            `json:"pdfs_generados"`
	ClavesProdServ      []string       `json:"claves_prodserv"`
}

// ResumenMesDTO acumulados de un mes para GET /api/sessions/:id/resumen.
type ResumenMesDTO struct {
	Mes                  string          `json:"mes"`
	MontoConcepto        decimal.Decimal `json:"monto_concepto"`
	IngresosSubtotal     decimal.Decimal `json:"ingresos_subtotal"`
	IngresosIVA          decimal.Decimal `json:"ingresos_iva"`
	IngresosRetencionIVA decimal.Decimal `json:"ingresos_retencion_iva"`
	IngresosRetencionISR decimal.Decimal `json:"ingresos_retencion_isr"`
	EgresosSubtotal      decimal.Decimal `json:"egresos_subtotal"`
	EgresosIVA           decimal.Decimal `json:"egresos_iva"`
	EgresosTotal         decimal.Decimal `json:"egresos_total"`
	NumCFDIs             int             `json:"num_cfdis"`
}

// ResumenEntidadDTO acumulados por contraparte.
type ResumenEntidadDTO struct {
	RFC              string          `json:"rfc"`
	Nombre           string          `json:"nombre"`
	MontoConcepto    decimal.Decimal `json:"monto_concepto"`
	IngresosSubtotal decimal.Decimal `json:"ingresos_subtotal"`
	IngresosIVA      decimal.Decimal `json:"ingresos_iva"`
	EgresosSubtotal  decimal.Decimal `json:"egresos_subtotal"`
	EgresosIVA       decimal.Decimal `json:"egresos_iva"`
	EgresosTotal     decimal.Decimal `json:"egresos_total"`
	NumCFDIs         int             `json:"num_cfdis"`
}

// TotalesDTO acumulados generales.
type TotalesDTO struct {
	NumCFDIsUnicos       int             `json:"num_cfdis_unicos"`
	TotalConceptos       int             `json:"total_conceptos"`
	MontoTotal           decimal.Decimal `json:"monto_total"`
	IngresosSubtotal     decimal.Decimal `json:"ingresos_subtotal"`
	IngresosIVA          decimal.Decimal `json:"ingresos_iva"`
	IngresosRetencionIVA decimal.Decimal `json:"ingresos_retencion_iva"`
	IngresosRetencionISR decimal.Decimal `json:"ingresos_retencion_isr"`
	EgresosSubtotal      decimal.Decimal `json:"egresos_subtotal"`
	EgresosIVA           decimal.Decimal `json:"egresos_iva"`
	EgresosTotal         decimal.Decimal `json:"egresos_total"`
}

// ResumenResponse resumen consolidado de la sesión (ambas categorías).
type ResumenResponse struct {
	Mensual   []ResumenMesDTO     `json:"mensual"`
	Entidades []ResumenEntidadDTO `json:"entidades"`
	Totales   TotalesDTO          `json:"totales"`
}

// DeduciblesRequest body para PUT /api/sessions/:id/deducibles.
type DeduciblesRequest struct {
	Claves []string `json:"claves"`
}

// DeduciblesResponse filas marcadas tras aplicar el filtro.
type DeduciblesResponse struct {
	FilasDeducibles int `json:"filas_deducibles"`
	FilasTotales    int `json:"filas_totales"`
}

// ExportColumnasRequest body para POST /api/sessions/:id/export/columnas.
// Formato: "csv" o "xlsx".
type ExportColumnasRequest struct {
	Categoria string   `json:"categoria"`
	Columnas  []string `json:"columnas"`
	Formato   string   `json:"formato"`
}

// SessionResponse sesión recién creada.
type SessionResponse struct {
	ID string `json:"id"`
}
