package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tu-usuario/cfdi-pro/internal/application/usecase"
	"github.com/tu-usuario/cfdi-pro/internal/domain/entity"
	"github.com/tu-usuario/cfdi-pro/internal/infrastructure/cfdixml"
	infrapdf "github.com/tu-usuario/cfdi-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/cfdi-pro/pkg/logger"
)

var procesarCmd = &cobra.Command{
	Use:   "procesar",
	Short: "Procesa carpetas de XML y genera los libros de Excel y PDFs consolidados",
	Long: `Procesa los CFDIs de las carpetas indicadas, una por categoría, y deja en
la carpeta de salida:

  CFDIs_Emitidos.xlsx / CFDIs_Recibidos.xlsx   detalle + resúmenes
  CFDIs_<Categoria>_Consolidado.pdf            todos los PDFs del lote

Los archivos inválidos se omiten y se reportan; el lote continúa. Con
--deducibles se marca la columna Deducible según un archivo de claves de
producto/servicio, una por línea.`,
	Example: `  # Solo recibidos
  cfdi procesar --recibidos ./recibidas --salida ./reportes

  # Ambas categorías con claves deducibles
  cfdi procesar --emitidos ./emitidas --recibidos ./recibidas --deducibles claves.txt`,
	RunE: runProcesar,
}

func init() {
	rootCmd.AddCommand(procesarCmd)

	procesarCmd.Flags().String("emitidos", "", "Carpeta con los XML emitidos")
	procesarCmd.Flags().String("recibidos", "", "Carpeta con los XML recibidos")
	procesarCmd.Flags().String("salida", ".", "Carpeta de salida de los reportes")
	procesarCmd.Flags().String("deducibles", "", "Archivo con claves de producto/servicio deducibles, una por línea")
}

func runProcesar(cmd *cobra.Command, args []string) error {
	dirEmitidos, _ := cmd.Flags().GetString("emitidos")
	dirRecibidos, _ := cmd.Flags().GetString("recibidos")
	salida, _ := cmd.Flags().GetString("salida")
	archivoDeducibles, _ := cmd.Flags().GetString("deducibles")

	if dirEmitidos == "" && dirRecibidos == "" {
		return fmt.Errorf("se requiere al menos una carpeta: --emitidos o --recibidos")
	}
	if err := os.MkdirAll(salida, 0o755); err != nil {
		return fmt.Errorf("crear carpeta de salida: %w", err)
	}

	log := nuevoLogger(cmd)
	processUC := usecase.NewProcessUseCase(cfdixml.NewParser(), infrapdf.NewMarotoRenderer(), log.WithComponent("proceso"))
	exportUC := usecase.NewExportUseCase(log.WithComponent("export"))

	store := usecase.NewSessionStore(0)
	s := store.Crea()

	carpetas := []struct {
		dir       string
		categoria string
	}{
		{dirEmitidos, entity.CategoriaEmitidos},
		{dirRecibidos, entity.CategoriaRecibidos},
	}
	for _, c := range carpetas {
		if c.dir == "" {
			continue
		}
		if err := procesaCarpeta(processUC, s, c.dir, c.categoria); err != nil {
			return err
		}
	}

	if archivoDeducibles != "" {
		claves, err := leeClaves(archivoDeducibles)
		if err != nil {
			return fmt.Errorf("leer claves deducibles: %w", err)
		}
		res := processUC.AplicaDeducibles(s, claves)
		fmt.Printf("Deducibles: %d de %d filas marcadas\n", res.FilasDeducibles, res.FilasTotales)
	}

	for _, c := range carpetas {
		if c.dir == "" {
			continue
		}
		if err := exportaCategoria(exportUC, s, c.categoria, salida, log); err != nil {
			return err
		}
	}

	fmt.Printf("Reportes en %s\n", salida)
	return nil
}

func procesaCarpeta(uc *usecase.ProcessUseCase, s *usecase.Session, dir, categoria string) error {
	archivos, err := leeXMLs(dir)
	if err != nil {
		return fmt.Errorf("leer carpeta %s: %w", dir, err)
	}
	if len(archivos) == 0 {
		fmt.Printf("%s: sin archivos XML en %s\n", categoria, dir)
		return nil
	}

	fmt.Printf("%s: procesando %d archivos de %s\n", categoria, len(archivos), dir)
	res := uc.ProcesaLote(archivos, categoria, func(procesados, total int) {
		fmt.Printf("\r  [%d/%d]", procesados, total)
	})
	fmt.Println()
	s.GuardaLote(res)

	for _, e := range res.Errores {
		fmt.Printf("  omitido %s: %s\n", e.Archivo, e.Error)
	}
	fmt.Printf("  %d conceptos de %d CFDIs, %d PDFs\n",
		res.Dataset.Len(), res.Dataset.UUIDsUnicos(), len(res.PDFs))
	return nil
}

func exportaCategoria(uc *usecase.ExportUseCase, s *usecase.Session, categoria, salida string, log *logger.Logger) error {
	nombre, contenido, err := uc.ExcelCategoria(s, categoria)
	if err != nil {
		return fmt.Errorf("excel %s: %w", categoria, err)
	}
	if err := os.WriteFile(filepath.Join(salida, nombre), contenido, 0o644); err != nil {
		return err
	}
	fmt.Printf("  %s\n", nombre)

	nombre, contenido, err = uc.PDFCategoria(s, categoria, log.Zerolog())
	if err != nil {
		// Lote sin PDFs: el Excel ya salió, no es fatal.
		log.Warn().Str("categoria", categoria).Err(err).Msg("sin PDF consolidado")
		return nil
	}
	if err := os.WriteFile(filepath.Join(salida, nombre), contenido, 0o644); err != nil {
		return err
	}
	fmt.Printf("  %s\n", nombre)
	return nil
}

// leeXMLs carga los .xml del directorio en orden alfabético estable.
func leeXMLs(dir string) ([]usecase.Archivo, error) {
	entradas, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var nombres []string
	for _, e := range entradas {
		if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), ".xml") {
			nombres = append(nombres, e.Name())
		}
	}
	sort.Strings(nombres)

	archivos := make([]usecase.Archivo, 0, len(nombres))
	for _, n := range nombres {
		contenido, err := os.ReadFile(filepath.Join(dir, n))
		if err != nil {
			return nil, err
		}
		archivos = append(archivos, usecase.Archivo{Nombre: n, Contenido: contenido})
	}
	return archivos, nil
}

func leeClaves(ruta string) ([]string, error) {
	contenido, err := os.ReadFile(ruta)
	if err != nil {
		return nil, err
	}
	var claves []string
	for _, l := range strings.Split(string(contenido), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			claves = append(claves, l)
		}
	}
	return claves, nil
}
