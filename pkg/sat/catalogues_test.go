package sat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/cfdi-pro/pkg/sat"
)

func TestPeriodo_ValidosEInvalidos(t *testing.T) {
	for _, p := range []sat.Periodo{"01", "06", "12"} {
		assert.True(t, p.Valid(), "el periodo %s es del catálogo", p)
	}
	for _, p := range []sat.Periodo{"", "00", "13", "1", "enero"} {
		assert.False(t, p.Valid(), "el periodo %q no es del catálogo", p)
	}
}

func TestPeriodoFromLabel(t *testing.T) {
	p, ok := sat.PeriodoFromLabel("Enero")
	require.True(t, ok)
	assert.Equal(t, sat.PeriodoEnero, p)

	_, ok = sat.PeriodoFromLabel("Eneros")
	assert.False(t, ok)
}

func TestTipoTercero_Catalogo(t *testing.T) {
	assert.True(t, sat.ProveedorNacional.Valid())
	assert.True(t, sat.ProveedorExtranjero.Valid())
	assert.True(t, sat.ProveedorGlobal.Valid())
	assert.False(t, sat.TipoTercero("99").Valid())

	assert.Equal(t, "Proveedor nacional", sat.TipoTerceroLabels[sat.ProveedorNacional])
}

func TestTipoOperacion_Catalogo(t *testing.T) {
	assert.True(t, sat.OperacionOtros.Valid())
	assert.True(t, sat.OperacionArrendamientoInmuebles.Valid())
	assert.True(t, sat.OperacionServiciosProfesionales.Valid())
	assert.False(t, sat.TipoOperacion("01").Valid())
}

func TestClavesImpuesto(t *testing.T) {
	assert.Equal(t, "001", sat.ImpuestoISR)
	assert.Equal(t, "002", sat.ImpuestoIVA)
	assert.Equal(t, "003", sat.ImpuestoIEPS)
}

func TestNormalizaTexto(t *testing.T) {
	casos := []struct {
		entrada string
		espera  string
	}{
		{"Operación Política, S.A.", "Operacion Politica, S.A."},
		{"Construcción y Diseño", "Construccion y Diseno"},
		{"ÑÁÉÍÓÚÜ", "NAEIOUU"},
		{"Acme Inc", "Acme Inc"}, // ASCII intacto
		{"", ""},
	}
	for _, c := range casos {
		assert.Equal(t, c.espera, sat.NormalizaTexto(c.entrada), "entrada %q", c.entrada)
	}
}
