package usecase

import (
	"errors"
	"sort"
	"strings"

	"github.com/tu-usuario/cfdi-pro/internal/application/dto"
	"github.com/tu-usuario/cfdi-pro/internal/domain/cfdi"
	"github.com/tu-usuario/cfdi-pro/internal/domain/entity"
	"github.com/tu-usuario/cfdi-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/cfdi-pro/pkg/logger"
)

// Parser es el colaborador que convierte bytes XML en un Comprobante.
type Parser interface {
	Parse(data []byte) (*entity.Comprobante, error)
}

// Renderer genera la representación impresa de un comprobante. Sus fallos no
// detienen la extracción tabular del archivo.
type Renderer interface {
	Render(c *entity.Comprobante) ([]byte, error)
}

// Archivo es un XML subido, con su nombre original.
type Archivo struct {
	Nombre    string
	Contenido []byte
}

// ResultadoLote es el producto completo de procesar un lote de una categoría:
// dataset plano, catálogo de claves y PDFs generados. Se reemplaza entero en
// cada corrida; nunca se mezcla con el lote anterior.
type ResultadoLote struct {
	Categoria string
	Dataset   *entity.Dataset
	Catalogo  *entity.CatalogoProdServ
	PDFs      []pdf.Blob
	Recibidos int
	Errores   []dto.ArchivoError
}

// Progreso recibe el avance del lote (archivos procesados sobre el total).
// Canal lateral observable: no forma parte del resultado.
type Progreso func(procesados, total int)

// ProcessUseCase procesa lotes de CFDIs: parseo, extracción, clasificación
// fiscal por concepto y render del PDF individual.
type ProcessUseCase struct {
	parser   Parser
	renderer Renderer
	log      *logger.Logger
}

// NewProcessUseCase construye el caso de uso.
func NewProcessUseCase(parser Parser, renderer Renderer, log *logger.Logger) *ProcessUseCase {
	return &ProcessUseCase{parser: parser, renderer: renderer, log: log}
}

// ProcesaLote procesa los archivos en orden estricto de llegada. Un archivo
// inválido se omite y se reporta con su causa; el lote continúa. El dataset y
// el catálogo reflejan solo los archivos procesados con éxito.
func (uc *ProcessUseCase) ProcesaLote(archivos []Archivo, categoria string, progreso Progreso) *ResultadoLote {
	res := &ResultadoLote{
		Categoria: categoria,
		Dataset:   &entity.Dataset{},
		Catalogo:  entity.NuevoCatalogoProdServ(),
		Recibidos: len(archivos),
	}

	for i, a := range archivos {
		if err := uc.procesaArchivo(a, categoria, res); err != nil {
			uc.log.Error().Str("archivo", a.Nombre).Err(err).Msg("archivo omitido del lote")
			res.Errores = append(res.Errores, dto.ArchivoError{Archivo: a.Nombre, Error: err.Error()})
		}
		if progreso != nil {
			progreso(i+1, len(archivos))
		}
	}

	return res
}

func (uc *ProcessUseCase) procesaArchivo(a Archivo, categoria string, res *ResultadoLote) error {
	comp, err := uc.parser.Parse(a.Contenido)
	if err != nil {
		return err
	}

	for _, concepto := range comp.Conceptos {
		desglose := cfdi.Clasifica(comp.TipoDeComprobante, concepto)
		res.Dataset.Append(entity.FilaConcepto{
			ArchivoXML:      a.Nombre,
			UUID:            comp.UUID,
			Folio:           comp.Folio,
			Fecha:           comp.FechaFormato(),
			Mes:             comp.Mes(),
			TipoComprobante: comp.TipoDeComprobante,
			EmisorRFC:       comp.EmisorRFC,
			EmisorNombre:    comp.EmisorNombre,
			ReceptorRFC:     comp.ReceptorRFC,
			ReceptorNombre:  comp.ReceptorNombre,
			SubTotalCFDI:    comp.SubTotal,
			TotalCFDI:       comp.Total,
			MontoConcepto:   concepto.Importe,
			Descripcion:     concepto.Descripcion,
			Cantidad:        concepto.Cantidad,
			Unidad:          concepto.Unidad,
			ValorUnitario:   concepto.ValorUnitario,
			ClaveProdServ:   concepto.ClaveProdServ,
			Categoria:       categoria,

			IngresosSubtotal:     desglose.IngresosSubtotal,
			IngresosIVA:          desglose.IngresosIVA,
			IngresosRetencionIVA: desglose.IngresosRetencionIVA,
			IngresosRetencionISR: desglose.IngresosRetencionISR,
			EgresosSubtotal:      desglose.EgresosSubtotal,
			EgresosIVA:           desglose.EgresosIVA,
			EgresosTotal:         desglose.EgresosTotal,
		})
		res.Catalogo.Agrega(concepto.ClaveProdServ)
	}

	// Render no fatal: el CFDI ya aportó sus filas aunque el PDF falle.
	if blob, err := uc.renderer.Render(comp); err != nil {
		uc.log.Warn().Str("archivo", a.Nombre).Err(err).Msg("no se generó PDF para el CFDI")
	} else {
		res.PDFs = append(res.PDFs, pdf.Blob{
			Nombre:    nombrePDF(a.Nombre),
			Contenido: blob,
		})
	}

	return nil
}

// AplicaDeducibles marca la bandera Deducible en ambas categorías de la
// sesión según el conjunto de claves seleccionado. Idempotente.
func (uc *ProcessUseCase) AplicaDeducibles(s *Session, claves []string) dto.DeduciblesResponse {
	set := make(map[string]bool, len(claves))
	for _, c := range claves {
		set[c] = true
	}

	var deducibles, totales int
	s.CadaLote(func(l *ResultadoLote) {
		l.Dataset = cfdi.AplicaDeducibles(l.Dataset, set)
		totales += l.Dataset.Len()
		for _, f := range l.Dataset.Filas {
			if f.Deducible {
				deducibles++
			}
		}
	})

	return dto.DeduciblesResponse{FilasDeducibles: deducibles, FilasTotales: totales}
}

// Resumen calcula el resumen consolidado (mensual, por entidad y totales)
// sobre las filas de ambas categorías de la sesión.
func (uc *ProcessUseCase) Resumen(s *Session) dto.ResumenResponse {
	ds := s.Consolidado()

	out := dto.ResumenResponse{}
	for _, m := range cfdi.ResumenMensual(ds) {
		out.Mensual = append(out.Mensual, dto.ResumenMesDTO{
			Mes:                  m.Mes,
			MontoConcepto:        m.MontoConcepto,
			IngresosSubtotal:     m.IngresosSubtotal,
			IngresosIVA:          m.IngresosIVA,
			IngresosRetencionIVA: m.IngresosRetencionIVA,
			IngresosRetencionISR: m.IngresosRetencionISR,
			EgresosSubtotal:      m.EgresosSubtotal,
			EgresosIVA:           m.EgresosIVA,
			EgresosTotal:         m.EgresosTotal,
			NumCFDIs:             m.NumCFDIs,
		})
	}
	for _, e := range cfdi.ResumenPorEntidad(ds) {
		out.Entidades = append(out.Entidades, dto.ResumenEntidadDTO{
			RFC:              e.RFC,
			Nombre:           e.Nombre,
			MontoConcepto:    e.MontoConcepto,
			IngresosSubtotal: e.IngresosSubtotal,
			IngresosIVA:      e.IngresosIVA,
			EgresosSubtotal:  e.EgresosSubtotal,
			EgresosIVA:       e.EgresosIVA,
			EgresosTotal:     e.EgresosTotal,
			NumCFDIs:         e.NumCFDIs,
		})
	}
	t := cfdi.Totales(ds)
	out.Totales = dto.TotalesDTO{
		NumCFDIsUnicos:       t.NumCFDIsUnicos,
		TotalConceptos:       t.TotalConceptos,
		MontoTotal:           t.MontoTotal,
		IngresosSubtotal:     t.IngresosSubtotal,
		IngresosIVA:          t.IngresosIVA,
		IngresosRetencionIVA: t.IngresosRetencionIVA,
		IngresosRetencionISR: t.IngresosRetencionISR,
		EgresosSubtotal:      t.EgresosSubtotal,
		EgresosIVA:           t.EgresosIVA,
		EgresosTotal:         t.EgresosTotal,
	}
	return out
}

// RespuestaLote arma el resumen del lote para la respuesta HTTP, con las
// claves de producto/servicio ordenadas para una salida estable.
func RespuestaLote(res *ResultadoLote) dto.ProcesarLoteResponse {
	claves := res.Catalogo.Claves()
	sort.Strings(claves)
	errores := res.Errores
	if errores == nil {
		errores = []dto.ArchivoError{}
	}
	return dto.ProcesarLoteResponse{
		Categoria:           res.Categoria,
		ArchivosRecibidos:   res.Recibidos,
		ArchivosProcesados:  res.Recibidos - len(res.Errores),
		ArchivosFallidos:    errores,
		ConceptosProcesados: res.Dataset.Len(),
		CFDIsUnicos:         res.Dataset.UUIDsUnicos(),
		PDFsGenerados:       len(res.PDFs),
		ClavesProdServ:      claves,
	}
}

// ValidaCategoria normaliza y valida el parámetro de categoría.
func ValidaCategoria(s string) (string, error) {
	switch strings.ToLower(s) {
	case "emitidos":
		return entity.CategoriaEmitidos, nil
	case "recibidos":
		return entity.CategoriaRecibidos, nil
	}
	return "", errors.New("categoría inválida: use Emitidos o Recibidos")
}

func nombrePDF(nombreXML string) string {
	return strings.TrimSuffix(nombreXML, ".xml") + ".pdf"
}
