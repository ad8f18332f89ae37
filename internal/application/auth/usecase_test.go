package auth_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-pos-api/internal/application/auth"
	"github.com/jhoicas/tienda-pos-api/internal/application/dto"
	"github.com/jhoicas/tienda-pos-api/internal/domain"
	"github.com/jhoicas/tienda-pos-api/internal/domain/entity"
)

// ── Fake en memoria ───────────────────────────────────────────────────────────

type memUserRepo struct {
	users   map[string]*entity.User // por email
	findErr error
}

func (r *memUserRepo) Create(u *entity.User) error {
	if _, ok := r.users[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	r.users[u.Email] = u
	return nil
}
func (r *memUserRepo) FindByEmail(email string) (*entity.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.users[email], nil
}
func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func newAuthFixture() (*auth.AuthUseCase, *memUserRepo) {
	repo := &memUserRepo{users: map[string]*entity.User{}}
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		ExpMinutes: 60,
		Issuer:     "tienda-pos-test",
	})
	return uc, repo
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestRegisterUser_NormalizaEmailYHasheaPassword(t *testing.T) {
	uc, repo := newAuthFixture()

	out, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "  Dueno@Tienda.COM ", Password: "contraseña-larga", Name: "Dueño",
	})
	require.NoError(t, err)
	assert.Equal(t, "dueno@tienda.com", out.Email)

	stored := repo.users["dueno@tienda.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "contraseña-larga", stored.PasswordHash, "el password nunca se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("contraseña-larga")))
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc, _ := newAuthFixture()

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "dueno@tienda.com", Password: "contraseña-larga"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "dueno@tienda.com", Password: "otra-contraseña"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// Un fallo transitorio de la BD en la verificación de email debe propagarse,
// no tratarse como "email disponible".
func TestRegisterUser_FalloEnBusquedaDeEmail(t *testing.T) {
	uc, repo := newAuthFixture()
	repo.findErr = errors.New("conexión perdida")

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "dueno@tienda.com", Password: "contraseña-larga"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Empty(t, repo.users, "no debe crearse el usuario")
}

func TestRegisterUser_PasswordCorto(t *testing.T) {
	uc, _ := newAuthFixture()
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "dueno@tienda.com", Password: "corto"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_CredencialesCorrectas(t *testing.T) {
	uc, _ := newAuthFixture()
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "dueno@tienda.com", Password: "contraseña-larga", Name: "Dueño"})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "Dueno@Tienda.com", Password: "contraseña-larga"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "dueno@tienda.com", out.User.Email)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc, _ := newAuthFixture()
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "dueno@tienda.com", Password: "contraseña-larga"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "dueno@tienda.com", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _ := newAuthFixture()
	_, err := uc.Login(dto.LoginRequest{Email: "nadie@tienda.com", Password: "lo-que-sea"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
