package entity

// Location representa un objeto o lugar físico donde se almacenan o usan cartuchos.
// Referenciada (nunca poseída) por Cartridge y Operation.
type Location struct {
	ID            string
	Name          string // único
	Address       string
	ContactPerson string
	ContactPhone  string
	Description   string
	Active        bool
}
