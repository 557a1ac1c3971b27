package usecase

import (
	"fmt"

	"github.com/tu-usuario/cfdi-pro/internal/application/dto"
	"github.com/tu-usuario/cfdi-pro/internal/domain"
	"github.com/tu-usuario/cfdi-pro/internal/domain/cfdi"
	"github.com/tu-usuario/cfdi-pro/internal/domain/diot"
	"github.com/tu-usuario/cfdi-pro/internal/domain/entity"
	"github.com/tu-usuario/cfdi-pro/pkg/logger"
	"github.com/tu-usuario/cfdi-pro/pkg/sat"
)

// DiotUseCase genera el archivo de texto de la DIOT y sugiere el borrador de
// proveedores a partir de los CFDIs recibidos de una sesión.
type DiotUseCase struct {
	log *logger.Logger
}

// NewDiotUseCase construye el caso de uso.
func NewDiotUseCase(log *logger.Logger) *DiotUseCase {
	return &DiotUseCase{log: log}
}

// Genera valida la petición completa y serializa la declaración. Cualquier
// proveedor inválido o campo de identificación faltante aborta la generación:
// no se emite texto parcial.
func (uc *DiotUseCase) Genera(req dto.DiotRequest) (string, string, error) {
	periodo := sat.Periodo(req.Periodo)
	if req.Periodo != "" && !periodo.Valid() {
		return "", "", fmt.Errorf("%w: periodo %q fuera de catálogo", domain.ErrIncompleteDiot, req.Periodo)
	}

	ens := diot.NuevoEnsamblador(entity.DatosIdentificacion{
		RFC:         req.RFC,
		RazonSocial: req.RazonSocial,
		Ejercicio:   req.Ejercicio,
		Periodo:     periodo,
	})

	if req.Complementaria != nil {
		err := ens.ConComplementaria(entity.DatosComplementaria{
			FolioAnterior: req.Complementaria.FolioAnterior,
			FechaAnterior: req.Complementaria.FechaAnterior,
		})
		if err != nil {
			return "", "", err
		}
	}

	for i, p := range req.Proveedores {
		err := ens.AgregaProveedor(entity.ProveedorTercero{
			TipoTercero:   sat.TipoTercero(p.TipoTercero),
			TipoOperacion: sat.TipoOperacion(p.TipoOperacion),
			RFC:           p.RFC,
			IDFiscal:      p.IDFiscal,
			Nombre:        p.Nombre,
			Pais:          sat.Pais(p.Pais),
			Nacionalidad:  p.Nacionalidad,
			IVA16:         p.IVA16,
			IVA16NA:       p.IVA16NA,
			IVA0:          p.IVA0,
			IVAExento:     p.IVAExento,
			IVARFN:        p.IVARFN,
			IVAImport16:   p.IVAImport16,
		})
		if err != nil {
			return "", "", fmt.Errorf("proveedor %d: %w", i+1, err)
		}
	}

	texto, err := ens.Serializa()
	if err != nil {
		return "", "", err
	}

	uc.log.Info().
		Str("rfc", req.RFC).
		Str("periodo", req.Periodo).
		Int("proveedores", len(req.Proveedores)).
		Msg("DIOT generada")

	return ens.NombreArchivo(), texto, nil
}

// Sugerencias arma un borrador de proveedores desde los CFDIs recibidos de la
// sesión: un renglón por emisor con el IVA acumulado como actos gravados al
// 16%. El borrador es un punto de partida; el contribuyente lo ajusta antes de
// generar.
func (uc *DiotUseCase) Sugerencias(s *Session) dto.DiotSugerenciasResponse {
	out := dto.DiotSugerenciasResponse{Proveedores: []dto.ProveedorDTO{}}

	lote := s.Lote(entity.CategoriaRecibidos)
	if lote == nil {
		return out
	}

	for _, e := range cfdi.ResumenPorEntidad(lote.Dataset) {
		if e.RFC == "" {
			continue
		}
		out.Proveedores = append(out.Proveedores, dto.ProveedorDTO{
			TipoTercero:   string(sat.ProveedorNacional),
			TipoOperacion: string(sat.OperacionOtros),
			RFC:           e.RFC,
			IVA16:         e.IngresosIVA.Add(e.EgresosIVA),
		})
	}
	return out
}
