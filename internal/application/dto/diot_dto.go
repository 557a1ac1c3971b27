package dto

import "github.com/shopspring/decimal"

// ProveedorDTO una operación con tercero para la DIOT. Para nacionales (04)
// se llena rfc; para extranjeros (05) y globales (15) los campos id_fiscal,
// nombre, pais y nacionalidad.
type ProveedorDTO struct {
	TipoTercero   string `json:"tipo_tercero"`
	TipoOperacion string `json:"tipo_operacion"`

	RFC string `json:"rfc,omitempty"`

	IDFiscal     string `json:"id_fiscal,omitempty"`
	Nombre       string `json:"nombre,omitempty"`
	Pais         string `json:"pais,omitempty"`
	Nacionalidad string `json:"nacionalidad,omitempty"`

	IVA16       decimal.Decimal `json:"iva16"`
	IVA16NA     decimal.Decimal `json:"iva16_na"`
	IVA0        decimal.Decimal `json:"iva0"`
	IVAExento   decimal.Decimal `json:"iva_exento"`
	IVARFN      decimal.Decimal `json:"iva_rfn"`
	IVAImport16 decimal.Decimal `json:"iva_import16"`
}

// ComplementariaDTO datos de la declaración que se corrige.
type ComplementariaDTO struct {
	FolioAnterior string `json:"folio_anterior"`
	FechaAnterior string `json:"fecha_anterior"`
}

// DiotRequest body para POST /api/diot.
type DiotRequest struct {
	RFC            string             `json:"rfc"`
	RazonSocial    string             `json:"razon_social"`
	Ejercicio      int                `json:"ejercicio"`
	Periodo        string             `json:"periodo"`
	Proveedores    []ProveedorDTO     `json:"proveedores"`
	Complementaria *ComplementariaDTO `json:"complementaria,omitempty"`
}

// DiotSugerenciasResponse borrador de proveedores derivado de los CFDIs
// recibidos de la sesión.
type DiotSugerenciasResponse struct {
	Proveedores []ProveedorDTO `json:"proveedores"`
}
