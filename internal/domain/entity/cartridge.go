package entity

import "time"

// Estados posibles de un cartucho.
const (
	StatusInStock   = "IN_STOCK"  // en almacén
	StatusInUse     = "IN_USE"    // instalado en un equipo
	StatusRefilling = "REFILLING" // enviado a recarga
	StatusDisposed  = "DISPOSED"  // dado de baja
)

// StatusDescription descripción legible de cada estado (para notas de auditoría).
func StatusDescription(status string) string {
	switch status {
	case StatusInStock:
		return "en almacén"
	case StatusInUse:
		return "en uso"
	case StatusRefilling:
		return "en recarga"
	case StatusDisposed:
		return "dado de baja"
	}
	return status
}

// Cartridge representa un cartucho físico de impresora con su estado actual.
// Los atributos descriptivos (modelo, marca, etc.) no participan del ciclo de vida.
type Cartridge struct {
	ID                string
	Model             string
	SerialNumber      string // único; vacío = sin serial
	Brand             string
	PartNumber        string
	Color             string
	CompatiblePrinters string
	ResourcePages     int
	Description       string
	Status            string  // IN_STOCK, IN_USE, REFILLING, DISPOSED
	CurrentLocationID *string // nil cuando el estado no admite ubicación
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
