package dto

import "time"

// CreateCartridgeRequest alta de un cartucho. El estado inicial siempre es
// IN_STOCK; la ubicación es opcional.
type CreateCartridgeRequest struct {
	Model              string  `json:"model"`
	SerialNumber       string  `json:"serial_number"`
	Brand              string  `json:"brand"`
	PartNumber         string  `json:"part_number"`
	Color              string  `json:"color"`
	CompatiblePrinters string  `json:"compatible_printers"`
	ResourcePages      int     `json:"resource_pages"`
	Description        string  `json:"description"`
	CurrentLocationID  *string `json:"current_location_id"`
}

// UpdateCartridgeRequest edición directa de un cartucho (ruta implícita).
// Status y CurrentLocationID reemplazan los actuales; el sistema infiere y
// registra la operación de auditoría correspondiente.
type UpdateCartridgeRequest struct {
	Model              string  `json:"model"`
	SerialNumber       string  `json:"serial_number"`
	Brand              string  `json:"brand"`
	PartNumber         string  `json:"part_number"`
	Color              string  `json:"color"`
	CompatiblePrinters string  `json:"compatible_printers"`
	ResourcePages      int     `json:"resource_pages"`
	Description        string  `json:"description"`
	Status             string  `json:"status"`
	CurrentLocationID  *string `json:"current_location_id"`
}

// CartridgeResponse representación pública del cartucho.
type CartridgeResponse struct {
	ID                  string     `json:"id"`
	Model               string     `json:"model"`
	SerialNumber        string     `json:"serial_number,omitempty"`
	Brand               string     `json:"brand,omitempty"`
	PartNumber          string     `json:"part_number,omitempty"`
	Color               string     `json:"color,omitempty"`
	CompatiblePrinters  string     `json:"compatible_printers,omitempty"`
	ResourcePages       int        `json:"resource_pages,omitempty"`
	Description         string     `json:"description,omitempty"`
	Status              string     `json:"status"`
	CurrentLocationID   *string    `json:"current_location_id,omitempty"`
	CurrentLocationName string     `json:"current_location_name,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           *time.Time `json:"updated_at,omitempty"`
}

// CartridgeListResponse listado paginado de cartuchos.
type CartridgeListResponse struct {
	Items []CartridgeResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// Resultado de la escritura de auditoría best-effort en la edición directa.
const (
	AuditNone   = "NONE"   // la edición no implicó operación alguna
	AuditLogged = "LOGGED" // la operación inferida quedó registrada
	AuditFailed = "FAILED" // la edición se aplicó pero la auditoría falló
)

// EditCartridgeResult edición aplicada más el desenlace de la auditoría.
// La mutación primaria ya está confirmada aunque AuditStatus sea FAILED.
type EditCartridgeResult struct {
	Cartridge         CartridgeResponse  `json:"cartridge"`
	AuditStatus       string             `json:"audit_status"`
	InferredOperation *OperationResponse `json:"inferred_operation,omitempty"`
}

// CartridgeStatsResponse conteos de cartuchos por estado.
type CartridgeStatsResponse struct {
	Total     int64 `json:"total"`
	InStock   int64 `json:"in_stock"`
	InUse     int64 `json:"in_use"`
	Refilling int64 `json:"refilling"`
	Disposed  int64 `json:"disposed"`
}
