package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tu-usuario/cfdi-pro/internal/application/dto"
	"github.com/tu-usuario/cfdi-pro/internal/application/usecase"
)

var diotCmd = &cobra.Command{
	Use:   "diot [declaracion.json]",
	Short: "Genera el archivo de texto de la DIOT desde un JSON de declaración",
	Long: `Genera el archivo de carga de la DIOT (Declaración Informativa de
Operaciones con Terceros) a partir de un JSON con la identificación del
declarante y la lista de proveedores. La declaración se valida completa antes
de escribir: una declaración incompleta no produce archivo.`,
	Example: `  cfdi diot declaracion.json --salida ./reportes`,
	Args:    cobra.ExactArgs(1),
	RunE:    runDiot,
}

func init() {
	rootCmd.AddCommand(diotCmd)
	diotCmd.Flags().String("salida", ".", "Carpeta de salida del archivo DIOT")
}

func runDiot(cmd *cobra.Command, args []string) error {
	salida, _ := cmd.Flags().GetString("salida")

	contenido, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("leer declaración: %w", err)
	}
	var req dto.DiotRequest
	if err := json.Unmarshal(contenido, &req); err != nil {
		return fmt.Errorf("declaración inválida: %w", err)
	}

	log := nuevoLogger(cmd)
	uc := usecase.NewDiotUseCase(log.WithComponent("diot"))

	nombre, texto, err := uc.Genera(req)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(salida, 0o755); err != nil {
		return fmt.Errorf("crear carpeta de salida: %w", err)
	}
	ruta := filepath.Join(salida, nombre)
	if err := os.WriteFile(ruta, []byte(texto), 0o644); err != nil {
		return err
	}

	fmt.Printf("DIOT generada: %s (%d proveedores)\n", ruta, len(req.Proveedores))
	return nil
}
