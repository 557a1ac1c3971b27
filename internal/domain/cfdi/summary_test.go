package cfdi_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/cfdi-pro/internal/domain/cfdi"
	"github.com/tu-usuario/cfdi-pro/internal/domain/entity"
)

func fila(uuid, mes, categoria string, monto int64) entity.FilaConcepto {
	return entity.FilaConcepto{
		UUID:             uuid,
		Mes:              mes,
		Categoria:        categoria,
		EmisorRFC:        "EMI010101AAA",
		EmisorNombre:     "Emisor SA",
		ReceptorRFC:      "REC010101BBB",
		ReceptorNombre:   "Receptor SA",
		MontoConcepto:    decimal.NewFromInt(monto),
		IngresosSubtotal: decimal.NewFromInt(monto),
	}
}

func TestResumenMensual_AgrupaYOrdena(t *testing.T) {
	ds := &entity.Dataset{}
	ds.Append(fila("U1", "2025-02", entity.CategoriaEmitidos, 200))
	ds.Append(fila("U2", "2025-01", entity.CategoriaEmitidos, 100))
	ds.Append(fila("U3", "2025-01", entity.CategoriaEmitidos, 50))

	meses := cfdi.ResumenMensual(ds)

	require.Len(t, meses, 2)
	assert.Equal(t, "2025-01", meses[0].Mes, "los meses deben salir en orden ascendente")
	assert.Equal(t, "2025-02", meses[1].Mes)
	assert.True(t, meses[0].MontoConcepto.Equal(decimal.NewFromInt(150)), "enero debe sumar sus dos conceptos")
	assert.Equal(t, 2, meses[0].NumCFDIs, "enero tiene dos UUIDs distintos")
}

// Un CFDI con varios conceptos aporta varias filas con el mismo UUID: el
// conteo del mes es de CFDIs distintos, no de filas.
func TestResumenMensual_UUIDsDistintos(t *testing.T) {
	ds := &entity.Dataset{}
	ds.Append(fila("U1", "2025-03", entity.CategoriaRecibidos, 10))
	ds.Append(fila("U1", "2025-03", entity.CategoriaRecibidos, 20))
	ds.Append(fila("U1", "2025-03", entity.CategoriaRecibidos, 30))

	meses := cfdi.ResumenMensual(ds)

	require.Len(t, meses, 1)
	assert.Equal(t, 1, meses[0].NumCFDIs, "tres filas del mismo UUID cuentan como un CFDI")
	assert.True(t, meses[0].MontoConcepto.Equal(decimal.NewFromInt(60)))
}

// Las filas sin fecha caen en el bucket de mes vacío; no se descartan.
func TestResumenMensual_BucketSinFecha(t *testing.T) {
	ds := &entity.Dataset{}
	ds.Append(fila("U1", "", entity.CategoriaEmitidos, 40))
	ds.Append(fila("U2", "2025-05", entity.CategoriaEmitidos, 60))

	meses := cfdi.ResumenMensual(ds)

	require.Len(t, meses, 2)
	assert.Equal(t, "", meses[0].Mes, "el bucket vacío ordena primero")
	assert.True(t, meses[0].MontoConcepto.Equal(decimal.NewFromInt(40)), "las filas sin fecha conservan sus montos")
}

func TestResumenPorEntidad_ContraparteSegunCategoria(t *testing.T) {
	ds := &entity.Dataset{}
	// Emitido: la contraparte es el receptor.
	ds.Append(fila("U1", "2025-01", entity.CategoriaEmitidos, 100))
	// Recibido: la contraparte es el emisor.
	ds.Append(fila("U2", "2025-01", entity.CategoriaRecibidos, 70))

	entidades := cfdi.ResumenPorEntidad(ds)

	require.Len(t, entidades, 2)
	// Orden ascendente por RFC: EMI... antes que REC...
	assert.Equal(t, "EMI010101AAA", entidades[0].RFC, "en recibidos la contraparte es el emisor")
	assert.Equal(t, "REC010101BBB", entidades[1].RFC, "en emitidos la contraparte es el receptor")
	assert.True(t, entidades[0].MontoConcepto.Equal(decimal.NewFromInt(70)))
	assert.True(t, entidades[1].MontoConcepto.Equal(decimal.NewFromInt(100)))
}

func TestTotales_AcumulaTodoElDataset(t *testing.T) {
	ds := &entity.Dataset{}
	ds.Append(fila("U1", "2025-01", entity.CategoriaEmitidos, 100))
	ds.Append(fila("U1", "2025-01", entity.CategoriaEmitidos, 50))
	ds.Append(fila("U2", "2025-02", entity.CategoriaRecibidos, 25))

	tot := cfdi.Totales(ds)

	assert.Equal(t, 3, tot.TotalConceptos)
	assert.Equal(t, 2, tot.NumCFDIsUnicos)
	assert.True(t, tot.MontoTotal.Equal(decimal.NewFromInt(175)))
	assert.True(t, tot.IngresosSubtotal.Equal(decimal.NewFromInt(175)))
}

func TestTotales_DatasetVacio(t *testing.T) {
	tot := cfdi.Totales(&entity.Dataset{})

	assert.Equal(t, 0, tot.TotalConceptos)
	assert.Equal(t, 0, tot.NumCFDIsUnicos)
	assert.True(t, tot.MontoTotal.IsZero())
}
