package cfdi

import "github.com/tu-usuario/cfdi-pro/internal/domain/entity"

// AplicaDeducibles devuelve un dataset nuevo donde Deducible es verdadero
// exactamente en las filas cuya clave de producto/servicio está en claves.
// Función pura: no modifica el dataset de entrada ni ningún monto, solo la
// bandera. Aplicarla dos veces con el mismo conjunto produce el mismo
// resultado que aplicarla una vez.
func AplicaDeducibles(ds *entity.Dataset, claves map[string]bool) *entity.Dataset {
	if ds == nil {
		return &entity.Dataset{}
	}
	out := &entity.Dataset{Filas: make([]entity.FilaConcepto, len(ds.Filas))}
	copy(out.Filas, ds.Filas)
	for i := range out.Filas {
		out.Filas[i].Deducible = claves[out.Filas[i].ClaveProdServ]
	}
	return out
}
