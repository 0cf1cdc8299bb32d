package dto

// CreateLocationRequest alta de un objeto/lugar de almacenamiento.
type CreateLocationRequest struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	ContactPerson string `json:"contact_person"`
	ContactPhone  string `json:"contact_phone"`
	Description   string `json:"description"`
	Active        *bool  `json:"active"`
}

// LocationResponse representación pública de una ubicación, con el número de
// cartuchos actualmente asociados.
type LocationResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Address        string `json:"address"`
	ContactPerson  string `json:"contact_person,omitempty"`
	ContactPhone   string `json:"contact_phone,omitempty"`
	Description    string `json:"description,omitempty"`
	Active         bool   `json:"active"`
	CartridgeCount int64  `json:"cartridge_count"`
}

// LocationListResponse listado paginado de ubicaciones.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
