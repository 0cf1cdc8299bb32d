package entity

// Roles válidos para User.
const (
	RoleAdmin            = "ADMIN"
	RoleWarehouseManager = "WAREHOUSE_MANAGER"
	RoleObjectUser       = "OBJECT_USER"
)

// User representa un usuario del sistema. Solo participa del ciclo de vida
// como referencia "ejecutado por" en Operation.
type User struct {
	ID           string
	Username     string // único
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FullName     string
	Role         string // ADMIN, WAREHOUSE_MANAGER, OBJECT_USER
	Enabled      bool
}
