package pdf

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/rs/zerolog"
)

// Blob es un PDF individual generado para un CFDI, listo para fusionar.
type Blob struct {
	Nombre    string // nombre de archivo (ej. "factura_001.pdf")
	Contenido []byte
}

// Merge fusiona los PDFs en uno solo, en el orden recibido. Un blob que rompe
// la fusión se omite con un warning; los demás se conservan. Devuelve error
// solo si ningún blob pudo fusionarse.
func Merge(blobs []Blob, log zerolog.Logger) ([]byte, error) {
	if len(blobs) == 0 {
		return nil, fmt.Errorf("fusión de PDFs: no hay documentos")
	}

	// La fusión se reintenta incrementalmente: si agregar un blob falla, se
	// descarta ese blob y se continúa con los aceptados hasta el momento.
	var aceptados []Blob
	var resultado []byte
	for _, b := range blobs {
		candidatos := append(aceptados[:len(aceptados):len(aceptados)], b)
		out, err := mergeRaw(candidatos)
		if err != nil {
			log.Warn().Str("archivo", b.Nombre).Err(err).Msg("PDF omitido de la fusión")
			continue
		}
		aceptados = candidatos
		resultado = out
	}

	if len(aceptados) == 0 {
		return nil, fmt.Errorf("fusión de PDFs: ningún documento válido")
	}
	return resultado, nil
}

func mergeRaw(blobs []Blob) ([]byte, error) {
	readers := make([]io.ReadSeeker, len(blobs))
	for i, b := range blobs {
		readers[i] = bytes.NewReader(b.Contenido)
	}
	var buf bytes.Buffer
	if err := api.MergeRaw(readers, &buf, false, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
