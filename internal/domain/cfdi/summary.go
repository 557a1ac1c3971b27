package cfdi

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/cfdi-pro/internal/domain/entity"
)

// ResumenMes son los acumulados de un bucket año-mes.
type ResumenMes struct {
	Mes                  string // "" agrupa las filas sin fecha
	MontoConcepto        decimal.Decimal
	IngresosSubtotal     decimal.Decimal
	IngresosIVA          decimal.Decimal
	IngresosRetencionIVA decimal.Decimal
	IngresosRetencionISR decimal.Decimal
	EgresosSubtotal      decimal.Decimal
	EgresosIVA           decimal.Decimal
	EgresosTotal         decimal.Decimal
	NumCFDIs             int // UUIDs distintos dentro del mes
}

// ResumenEntidad son los acumulados de una contraparte (el emisor en CFDIs
// recibidos, el receptor en emitidos).
type ResumenEntidad struct {
	RFC                  string
	Nombre               string
	MontoConcepto        decimal.Decimal
	IngresosSubtotal     decimal.Decimal
	IngresosIVA          decimal.Decimal
	IngresosRetencionIVA decimal.Decimal
	IngresosRetencionISR decimal.Decimal
	EgresosSubtotal      decimal.Decimal
	EgresosIVA           decimal.Decimal
	EgresosTotal         decimal.Decimal
	NumCFDIs             int
}

// TotalesGenerales son los acumulados de todo el dataset.
type TotalesGenerales struct {
	NumCFDIsUnicos       int
	TotalConceptos       int
	MontoTotal           decimal.Decimal
	IngresosSubtotal     decimal.Decimal
	IngresosIVA          decimal.Decimal
	IngresosRetencionIVA decimal.Decimal
	IngresosRetencionISR decimal.Decimal
	EgresosSubtotal      decimal.Decimal
	EgresosIVA           decimal.Decimal
	EgresosTotal         decimal.Decimal
}

// ResumenMensual agrupa el dataset por bucket año-mes, en orden ascendente.
// Las filas sin mes se agrupan bajo el bucket de etiqueta vacía (primero en el
// orden), no se descartan.
func ResumenMensual(ds *entity.Dataset) []ResumenMes {
	if ds == nil {
		return nil
	}
	porMes := make(map[string]*ResumenMes)
	uuids := make(map[string]map[string]struct{})
	for _, f := range ds.Filas {
		r, ok := porMes[f.Mes]
		if !ok {
			r = &ResumenMes{Mes: f.Mes}
			porMes[f.Mes] = r
			uuids[f.Mes] = make(map[string]struct{})
		}
		acumula(f, &r.MontoConcepto, &r.IngresosSubtotal, &r.IngresosIVA,
			&r.IngresosRetencionIVA, &r.IngresosRetencionISR,
			&r.EgresosSubtotal, &r.EgresosIVA, &r.EgresosTotal)
		uuids[f.Mes][f.UUID] = struct{}{}
	}

	out := make([]ResumenMes, 0, len(porMes))
	for mes, r := range porMes {
		r.NumCFDIs = len(uuids[mes])
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Mes < out[j].Mes })
	return out
}

// ResumenPorEntidad agrupa el dataset por contraparte: en filas "Recibidos" la
// contraparte es el emisor, en "Emitidos" el receptor. Orden ascendente por RFC.
func ResumenPorEntidad(ds *entity.Dataset) []ResumenEntidad {
	if ds == nil {
		return nil
	}
	porRFC := make(map[string]*ResumenEntidad)
	uuids := make(map[string]map[string]struct{})
	for _, f := range ds.Filas {
		rfc, nombre := f.EmisorRFC, f.EmisorNombre
		if f.Categoria == entity.CategoriaEmitidos {
			rfc, nombre = f.ReceptorRFC, f.ReceptorNombre
		}
		r, ok := porRFC[rfc]
		if !ok {
			r = &ResumenEntidad{RFC: rfc, Nombre: nombre}
			porRFC[rfc] = r
			uuids[rfc] = make(map[string]struct{})
		}
		acumula(f, &r.MontoConcepto, &r.IngresosSubtotal, &r.IngresosIVA,
			&r.IngresosRetencionIVA, &r.IngresosRetencionISR,
			&r.EgresosSubtotal, &r.EgresosIVA, &r.EgresosTotal)
		uuids[rfc][f.UUID] = struct{}{}
	}

	out := make([]ResumenEntidad, 0, len(porRFC))
	for rfc, r := range porRFC {
		r.NumCFDIs = len(uuids[rfc])
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RFC < out[j].RFC })
	return out
}

// Totales calcula los acumulados generales de todo el dataset.
func Totales(ds *entity.Dataset) TotalesGenerales {
	t := TotalesGenerales{}
	if ds == nil {
		return t
	}
	for _, f := range ds.Filas {
		acumula(f, &t.MontoTotal, &t.IngresosSubtotal, &t.IngresosIVA,
			&t.IngresosRetencionIVA, &t.IngresosRetencionISR,
			&t.EgresosSubtotal, &t.EgresosIVA, &t.EgresosTotal)
	}
	t.TotalConceptos = ds.Len()
	t.NumCFDIsUnicos = ds.UUIDsUnicos()
	return t
}

func acumula(f entity.FilaConcepto, monto, ingSub, ingIVA, retIVA, retISR, egrSub, egrIVA, egrTot *decimal.Decimal) {
	*monto = monto.Add(f.MontoConcepto)
	*ingSub = ingSub.Add(f.IngresosSubtotal)
	*ingIVA = ingIVA.Add(f.IngresosIVA)
	*retIVA = retIVA.Add(f.IngresosRetencionIVA)
	*retISR = retISR.Add(f.IngresosRetencionISR)
	*egrSub = egrSub.Add(f.EgresosSubtotal)
	*egrIVA = egrIVA.Add(f.EgresosIVA)
	*egrTot = egrTot.Add(f.EgresosTotal)
}
