// Package planilla implementa la exportación de reportes a archivos CSV.
package planilla

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// CSVWriter escribe planillas como archivos CSV con timestamp en el nombre,
// dentro de un directorio de salida.
type CSVWriter struct {
	dir   string
	ahora func() time.Time
}

// NewCSVWriter construye el escritor. El directorio se crea si no existe.
func NewCSVWriter(dir string) *CSVWriter {
	return &CSVWriter{dir: dir, ahora: time.Now}
}

// Escribir vuelca encabezados y filas a <dir>/<nombre>_<fecha>.csv.
func (w *CSVWriter) Escribir(nombre string, encabezados []string, filas [][]string) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("planilla: crear directorio: %w", err)
	}
	ruta := filepath.Join(w.dir, fmt.Sprintf("%s_%s.csv", nombre, w.ahora().Format("20060102_150405")))

	f, err := os.Create(ruta)
	if err != nil {
		return fmt.Errorf("planilla: crear archivo: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(encabezados); err != nil {
		return fmt.Errorf("planilla: escribir encabezados: %w", err)
	}
	for _, fila := range filas {
		if err := cw.Write(fila); err != nil {
			return fmt.Errorf("planilla: escribir fila: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("planilla: volcar archivo: %w", err)
	}
	return nil
}
