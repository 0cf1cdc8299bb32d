package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Cartuchos-api/internal/application/auth"
	"github.com/jhoicas/Cartuchos-api/internal/application/dto"
	"github.com/jhoicas/Cartuchos-api/internal/domain"
	"github.com/jhoicas/Cartuchos-api/internal/domain/entity"
	"github.com/jhoicas/Cartuchos-api/internal/domain/repository"
	pkgjwt "github.com/jhoicas/Cartuchos-api/pkg/jwt"
)

// fakeUserRepo repositorio mínimo en memoria para los tests de login.
type fakeUserRepo struct {
	users map[string]*entity.User // por username
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func (r *fakeUserRepo) Create(u *entity.User) error { r.users[u.Username] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) GetByUsername(username string) (*entity.User, error) {
	return r.users[username], nil
}
func (r *fakeUserRepo) Update(u *entity.User) error { r.users[u.Username] = u; return nil }
func (r *fakeUserRepo) Delete(id string) error      { return nil }
func (r *fakeUserRepo) List(limit, offset int) ([]*entity.User, error) {
	return nil, nil
}

const (
	testSecret   = "test-secret-key-for-unit-tests"
	testPassword = "clave-segura-123"
)

func newTestAuthUC(t *testing.T, enabled bool) *auth.AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &fakeUserRepo{users: map[string]*entity.User{
		"operador": {
			ID: "user-1", Username: "operador", PasswordHash: string(hash),
			FullName: "Operador de Almacén", Role: entity.RoleWarehouseManager, Enabled: enabled,
		},
	}}
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret: testSecret, ExpMinutes: 60, Issuer: "cartuchos-test",
	})
}

func TestLogin_Exitoso(t *testing.T) {
	uc := newTestAuthUC(t, true)

	out, err := uc.Login(dto.LoginRequest{Username: "operador", Password: testPassword})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, "operador", out.User.Username)
	assert.Equal(t, entity.RoleWarehouseManager, out.User.Role)

	// El token emitido debe llevar la identidad completa.
	userID, username, role, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "operador", username)
	assert.Equal(t, entity.RoleWarehouseManager, role)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc := newTestAuthUC(t, true)
	_, err := uc.Login(dto.LoginRequest{Username: "operador", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := newTestAuthUC(t, true)
	_, err := uc.Login(dto.LoginRequest{Username: "fantasma", Password: testPassword})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioDeshabilitado(t *testing.T) {
	uc := newTestAuthUC(t, false)
	_, err := uc.Login(dto.LoginRequest{Username: "operador", Password: testPassword})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
