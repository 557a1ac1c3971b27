package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvoiceParse   = errors.New("XML de CFDI ilegible o mal formado")
	ErrInvalidAmount  = errors.New("importe no numérico")
	ErrMalformedDate  = errors.New("fecha con formato inválido")
	ErrRender         = errors.New("no se pudo generar la representación impresa")
	ErrIncompleteDiot = errors.New("datos incompletos para la DIOT")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrNotFound       = errors.New("recurso no encontrado")
)
