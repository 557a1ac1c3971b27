package diot_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/cfdi-pro/internal/domain"
	"github.com/tu-usuario/cfdi-pro/internal/domain/diot"
	"github.com/tu-usuario/cfdi-pro/internal/domain/entity"
	"github.com/tu-usuario/cfdi-pro/pkg/sat"
)

// ──────────────────────────────────────────────────────────────────────────────
// El layout de carga del SAT es un contrato de texto fijo: estos tests
// comparan la salida byte por byte. Cambiar el orden de campos, el número de
// pipes o el formato de los importes rompe al consumidor aunque "se vea bien".
// ──────────────────────────────────────────────────────────────────────────────

func identificacion() entity.DatosIdentificacion {
	return entity.DatosIdentificacion{
		RFC:         "ABC010101AAA",
		RazonSocial: "Test SA",
		Ejercicio:   2025,
		Periodo:     sat.PeriodoEnero,
	}
}

func proveedorNacional() entity.ProveedorTercero {
	return entity.ProveedorTercero{
		TipoTercero:   sat.ProveedorNacional,
		TipoOperacion: sat.OperacionOtros,
		RFC:           "XYZ010101ZZZ",
		IVA16:         decimal.NewFromInt(1000),
	}
}

func TestSerializa_LayoutExacto(t *testing.T) {
	ens := diot.NuevoEnsamblador(identificacion())
	require.NoError(t, ens.AgregaProveedor(proveedorNacional()))

	texto, err := ens.Serializa()
	require.NoError(t, err)

	lineas := strings.Split(texto, "\n")
	require.Len(t, lineas, 2)
	assert.Equal(t, "DIOT|ABC010101AAA|Test SA|2025|01", lineas[0],
		"el encabezado debe seguir el layout exacto")
	assert.Equal(t, "04|03|XYZ010101ZZZ||||||1000.00|0.00|0.00|0.00|0.00|0.00", lineas[1],
		"el proveedor nacional lleva RFC, el bloque extranjero vacío y seis importes a dos decimales")
}

func TestSerializa_ProveedorExtranjero(t *testing.T) {
	ens := diot.NuevoEnsamblador(identificacion())
	require.NoError(t, ens.AgregaProveedor(entity.ProveedorTercero{
		TipoTercero:   sat.ProveedorExtranjero,
		TipoOperacion: sat.OperacionOtros,
		IDFiscal:      "US123456",
		Nombre:        "Acme Inc",
		Pais:          "USA",
		Nacionalidad:  "Estadounidense",
		IVAImport16:   decimal.RequireFromString("500.50"),
	}))

	texto, err := ens.Serializa()
	require.NoError(t, err)

	lineas := strings.Split(texto, "\n")
	require.Len(t, lineas, 2)
	assert.Equal(t, "05|03||US123456|Acme Inc|USA|Estadounidense||0.00|0.00|0.00|0.00|0.00|500.50", lineas[1],
		"el proveedor extranjero lleva el bloque de identificación extranjera y RFC vacío")
}

// La razón social y el nombre se normalizan sin acentos; el layout del SAT no
// acepta caracteres acentuados.
func TestSerializa_NormalizaAcentos(t *testing.T) {
	id := identificacion()
	id.RazonSocial = "Construcción y Diseño SA"
	ens := diot.NuevoEnsamblador(id)
	require.NoError(t, ens.AgregaProveedor(proveedorNacional()))

	texto, err := ens.Serializa()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(texto, "DIOT|ABC010101AAA|Construccion y Diseno SA|2025|01"),
		"la razón social debe salir sin acentos ni eñes")
}

// ── Validación: nunca se emite una declaración parcial ────────────────────────

func TestEnsambla_SinProveedoresFalla(t *testing.T) {
	ens := diot.NuevoEnsamblador(identificacion())

	_, err := ens.Serializa()

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIncompleteDiot)
	assert.Contains(t, err.Error(), "proveedores", "el error debe nombrar el campo faltante")
}

func TestEnsambla_SinRFCDeclaranteFalla(t *testing.T) {
	id := identificacion()
	id.RFC = ""
	ens := diot.NuevoEnsamblador(id)
	require.NoError(t, ens.AgregaProveedor(proveedorNacional()))

	_, err := ens.Serializa()

	assert.ErrorIs(t, err, domain.ErrIncompleteDiot)
	assert.Contains(t, err.Error(), "RFC")
}

func TestAgregaProveedor_NacionalSinRFCFalla(t *testing.T) {
	ens := diot.NuevoEnsamblador(identificacion())

	p := proveedorNacional()
	p.RFC = ""
	err := ens.AgregaProveedor(p)

	assert.ErrorIs(t, err, domain.ErrIncompleteDiot)
}

func TestAgregaProveedor_ExtranjeroIncompletoFalla(t *testing.T) {
	ens := diot.NuevoEnsamblador(identificacion())

	err := ens.AgregaProveedor(entity.ProveedorTercero{
		TipoTercero:   sat.ProveedorExtranjero,
		TipoOperacion: sat.OperacionOtros,
		IDFiscal:      "US123456",
		// sin nombre, país ni nacionalidad
	})

	assert.ErrorIs(t, err, domain.ErrIncompleteDiot)
}

func TestAgregaProveedor_TipoFueraDeCatalogoFalla(t *testing.T) {
	ens := diot.NuevoEnsamblador(identificacion())

	p := proveedorNacional()
	p.TipoTercero = "99"
	err := ens.AgregaProveedor(p)

	assert.ErrorIs(t, err, domain.ErrIncompleteDiot)
}

func TestSerializa_EstadoTerminal(t *testing.T) {
	ens := diot.NuevoEnsamblador(identificacion())
	require.NoError(t, ens.AgregaProveedor(proveedorNacional()))

	_, err := ens.Serializa()
	require.NoError(t, err)

	err = ens.AgregaProveedor(proveedorNacional())
	assert.Error(t, err, "tras serializar no se aceptan más proveedores")
}

func TestNombreArchivo_Convencion(t *testing.T) {
	ens := diot.NuevoEnsamblador(identificacion())

	assert.Equal(t, "DIOT_ABC010101AAA_01_2025.txt", ens.NombreArchivo())
}

func TestConComplementaria_RequiereFolioYFecha(t *testing.T) {
	ens := diot.NuevoEnsamblador(identificacion())

	err := ens.ConComplementaria(entity.DatosComplementaria{FolioAnterior: "F-001"})

	assert.ErrorIs(t, err, domain.ErrIncompleteDiot, "la complementaria sin fecha anterior es inválida")
}
