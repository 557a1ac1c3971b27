// Package diot ensambla y serializa la Declaración Informativa de Operaciones
// con Terceros. El ensamblador avanza Recolectando → Ensamblada → Serializada;
// cada proveedor se valida al agregarse y la declaración completa se valida
// antes de emitir una sola línea: nunca se produce un archivo parcial.
package diot

import (
	"fmt"
	"strings"

	"github.com/tu-usuario/cfdi-pro/internal/domain"
	"github.com/tu-usuario/cfdi-pro/internal/domain/entity"
	"github.com/tu-usuario/cfdi-pro/pkg/sat"
)

// Estado del ensamblador.
type Estado int

const (
	EstadoRecolectando Estado = iota // aceptando proveedores
	EstadoEnsamblada                 // datos completos, lista para serializar
	EstadoSerializada                // texto emitido, terminal
)

// Ensamblador construye una DIOT proveedor por proveedor.
type Ensamblador struct {
	diot   entity.DIOT
	estado Estado
}

// NuevoEnsamblador inicia una declaración en estado Recolectando.
func NuevoEnsamblador(id entity.DatosIdentificacion) *Ensamblador {
	return &Ensamblador{diot: entity.DIOT{Identificacion: id}}
}

// ConComplementaria marca la declaración como complementaria de una anterior.
// Requiere folio y fecha de la declaración que corrige.
func (e *Ensamblador) ConComplementaria(c entity.DatosComplementaria) error {
	if c.FolioAnterior == "" || c.FechaAnterior == "" {
		return fmt.Errorf("%w: la complementaria requiere folio y fecha de la declaración anterior", domain.ErrIncompleteDiot)
	}
	e.diot.Complementaria = &c
	return nil
}

// AgregaProveedor valida el proveedor según su tipo de tercero y lo agrega.
// Nacional (04): requiere RFC. Extranjero (05) y global (15): requieren id
// fiscal, nombre, país y nacionalidad.
func (e *Ensamblador) AgregaProveedor(p entity.ProveedorTercero) error {
	if e.estado == EstadoSerializada {
		return fmt.Errorf("%w: la declaración ya fue serializada", domain.ErrIncompleteDiot)
	}
	if !p.TipoTercero.Valid() {
		return fmt.Errorf("%w: tipo de tercero %q fuera de catálogo", domain.ErrIncompleteDiot, string(p.TipoTercero))
	}
	if !p.TipoOperacion.Valid() {
		return fmt.Errorf("%w: tipo de operación %q fuera de catálogo", domain.ErrIncompleteDiot, string(p.TipoOperacion))
	}
	switch p.TipoTercero {
	case sat.ProveedorNacional:
		if p.RFC == "" {
			return fmt.Errorf("%w: proveedor nacional sin RFC", domain.ErrIncompleteDiot)
		}
	default: // extranjero o global
		switch {
		case p.IDFiscal == "":
			return fmt.Errorf("%w: proveedor extranjero sin id fiscal", domain.ErrIncompleteDiot)
		case p.Nombre == "":
			return fmt.Errorf("%w: proveedor extranjero sin nombre", domain.ErrIncompleteDiot)
		case p.Pais == "":
			return fmt.Errorf("%w: proveedor extranjero sin país", domain.ErrIncompleteDiot)
		case p.Nacionalidad == "":
			return fmt.Errorf("%w: proveedor extranjero sin nacionalidad", domain.ErrIncompleteDiot)
		}
	}
	e.diot.Proveedores = append(e.diot.Proveedores, p)
	e.estado = EstadoRecolectando
	return nil
}

// Ensambla verifica que la identificación, el periodo y la lista de
// proveedores estén completos y pasa a Ensamblada. El error nombra el campo
// faltante para guiar la corrección.
func (e *Ensamblador) Ensambla() error {
	id := e.diot.Identificacion
	switch {
	case id.RFC == "":
		return fmt.Errorf("%w: falta el RFC del declarante", domain.ErrIncompleteDiot)
	case id.RazonSocial == "":
		return fmt.Errorf("%w: falta la razón social", domain.ErrIncompleteDiot)
	case id.Periodo == "":
		return fmt.Errorf("%w: falta el periodo", domain.ErrIncompleteDiot)
	case len(e.diot.Proveedores) == 0:
		return fmt.Errorf("%w: la declaración no tiene proveedores", domain.ErrIncompleteDiot)
	}
	e.estado = EstadoEnsamblada
	return nil
}

// Serializa ensambla (si hace falta) y emite el texto del archivo DIOT.
// Estado terminal: tras serializar no se aceptan más proveedores.
func (e *Ensamblador) Serializa() (string, error) {
	if e.estado != EstadoEnsamblada {
		if err := e.Ensambla(); err != nil {
			return "", err
		}
	}
	txt := Serializa(e.diot)
	e.estado = EstadoSerializada
	return txt, nil
}

// NombreArchivo devuelve el nombre de archivo por convención:
// DIOT_<rfc>_<periodo>_<ejercicio>.txt
func (e *Ensamblador) NombreArchivo() string {
	id := e.diot.Identificacion
	return fmt.Sprintf("DIOT_%s_%s_%d.txt", id.RFC, id.Periodo, id.Ejercicio)
}

// Serializa emite el texto de la declaración en el layout de carga del SAT.
// Contrato de texto fijo: el orden de campos y el número de pipes por línea no
// pueden cambiar sin romper al consumidor.
//
//	DIOT|<rfc>|<razon_social>|<ejercicio>|<periodo>
//	<tipo_tercero>|<tipo_operacion>|<rfc>||||||<6 importes a dos decimales>
//	<tipo_tercero>|<tipo_operacion>||<id_fiscal>|<nombre>|<pais>|<nacionalidad>||<6 importes>
func Serializa(d entity.DIOT) string {
	var b strings.Builder
	id := d.Identificacion
	fmt.Fprintf(&b, "DIOT|%s|%s|%d|%s", id.RFC, sat.NormalizaTexto(id.RazonSocial), id.Ejercicio, id.Periodo)

	for _, p := range d.Proveedores {
		b.WriteByte('\n')
		fmt.Fprintf(&b, "%s|%s|", p.TipoTercero, p.TipoOperacion)
		if p.RFC != "" {
			// Nacional: RFC seguido de los seis campos vacíos del bloque extranjero.
			fmt.Fprintf(&b, "%s||||||", p.RFC)
		} else {
			fmt.Fprintf(&b, "|%s|%s|%s|%s||", p.IDFiscal, sat.NormalizaTexto(p.Nombre), p.Pais, p.Nacionalidad)
		}
		fmt.Fprintf(&b, "%s|%s|%s|%s|%s|%s",
			p.IVA16.StringFixed(2),
			p.IVA16NA.StringFixed(2),
			p.IVA0.StringFixed(2),
			p.IVAExento.StringFixed(2),
			p.IVARFN.StringFixed(2),
			p.IVAImport16.StringFixed(2),
		)
	}
	return b.String()
}
