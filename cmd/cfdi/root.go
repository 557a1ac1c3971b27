package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tu-usuario/cfdi-pro/pkg/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "cfdi",
	Short: "Procesador de CFDIs: extracción, clasificación fiscal y reportes",
	Long: `cfdi procesa lotes de CFDIs (facturas electrónicas del SAT) desde la
línea de comandos: parsea los XML, clasifica los impuestos por concepto,
genera los libros de Excel con resúmenes y el PDF consolidado, y arma el
archivo de texto de la DIOT.`,
	Version: version,
}

// Execute corre el comando raíz y termina el proceso si falla.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// nuevoLogger construye el logger de los comandos según la bandera --verbose.
func nuevoLogger(cmd *cobra.Command) *logger.Logger {
	level := "warn"
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = "debug"
	}
	return logger.New(logger.Config{Env: "development", Level: level})
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "Muestra el detalle del procesamiento")
}
