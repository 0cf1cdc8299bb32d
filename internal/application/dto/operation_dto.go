package dto

import "time"

// CreateOperationRequest solicitud explícita de una operación sobre un cartucho.
type CreateOperationRequest struct {
	Type        string  `json:"type"`
	Count       int     `json:"count"`
	CartridgeID string  `json:"cartridge_id"`
	LocationID  *string `json:"location_id"`
	Notes       string  `json:"notes"`
}

// OperationResponse representación pública de una operación de auditoría.
type OperationResponse struct {
	ID              string    `json:"id"`
	Type            string    `json:"type"`
	Count           int       `json:"count"`
	CartridgeID     string    `json:"cartridge_id"`
	CartridgeModel  string    `json:"cartridge_model,omitempty"`
	CartridgeSerial string    `json:"cartridge_serial,omitempty"`
	LocationID      *string   `json:"location_id,omitempty"`
	LocationName    string    `json:"location_name,omitempty"`
	PerformedByID   string    `json:"performed_by_id"`
	PerformedBy     string    `json:"performed_by"`
	OperationDate   time.Time `json:"operation_date"`
	Notes           string    `json:"notes,omitempty"`
}

// OperationListResponse listado paginado de operaciones.
type OperationListResponse struct {
	Items []OperationResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
