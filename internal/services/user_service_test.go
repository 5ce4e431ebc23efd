// internal/services/user_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/gfranca/mercado/internal/models"
	"github.com/gfranca/mercado/internal/storage"
)

type UserServiceSuite struct {
	suite.Suite
	db    *storage.DB
	users *UserService
}

func (s *UserServiceSuite) SetupTest() {
	db, err := storage.NewDB(s.T().TempDir())
	s.Require().NoError(err)
	s.db = db

	s.users, err = NewUserService(db)
	s.Require().NoError(err)
}

func clientRequest(email string) *RegisterUserRequest {
	return &RegisterUserRequest{
		Name:     "Ana Souza",
		Address:  "Rua das Flores, 10",
		Phone:    "11 99999-0000",
		Email:    email,
		Password: "segredo123",
		Type:     models.UserTypeClient,
	}
}

func (s *UserServiceSuite) TestRegisterAndAuthenticate() {
	user, err := s.users.Register(clientRequest("ana@example.com"))
	s.Require().NoError(err)
	s.Equal(1, user.ID)
	s.NotEqual("segredo123", user.PasswordHash)

	authenticated, err := s.users.Authenticate("ana@example.com", "segredo123")
	s.Require().NoError(err)
	s.Equal(user.ID, authenticated.ID)

	_, err = s.users.Authenticate("ana@example.com", "errada")
	s.ErrorIs(err, ErrInvalidCredentials)
	_, err = s.users.Authenticate("ninguem@example.com", "segredo123")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *UserServiceSuite) TestRegisterValidation() {
	req := clientRequest("ana@example.com")
	req.Email = "não-é-email"
	_, err := s.users.Register(req)
	s.ErrorIs(err, models.ErrValidation)

	req = clientRequest("ana@example.com")
	req.Name = ""
	_, err = s.users.Register(req)
	s.ErrorIs(err, models.ErrValidation)

	req = clientRequest("ana@example.com")
	req.Password = "curta"
	_, err = s.users.Register(req)
	s.ErrorIs(err, models.ErrValidation)
}

func (s *UserServiceSuite) TestRegisterRejectsDuplicateEmail() {
	_, err := s.users.Register(clientRequest("ana@example.com"))
	s.Require().NoError(err)

	_, err = s.users.Register(clientRequest("ANA@example.com"))
	s.ErrorIs(err, models.ErrValidation)
}

func (s *UserServiceSuite) TestAdminPasswordMustBeStrong() {
	req := clientRequest("root@example.com")
	req.Type = models.UserTypeAdmin
	req.Password = "fraquinha"
	_, err := s.users.Register(req)
	s.ErrorIs(err, models.ErrValidation)
	s.False(s.users.HasAdmin())

	req.Password = "Forte123"
	_, err = s.users.Register(req)
	s.Require().NoError(err)
	s.True(s.users.HasAdmin())
}

func (s *UserServiceSuite) TestUsersSurviveReload() {
	registered, err := s.users.Register(clientRequest("ana@example.com"))
	s.Require().NoError(err)

	reloaded, err := NewUserService(s.db)
	s.Require().NoError(err)

	user, err := reloaded.Get(registered.ID)
	s.Require().NoError(err)
	s.Equal("ana@example.com", user.Email)
	s.NoError(user.CheckPassword("segredo123"))

	authenticated, err := reloaded.Authenticate("ana@example.com", "segredo123")
	s.Require().NoError(err)
	s.Equal(registered.ID, authenticated.ID)
}

func (s *UserServiceSuite) TestLoadRejectsUnknownTipo() {
	table := storage.NewTable(usuariosColumns...)
	table.Append(map[string]string{"id": "1", "nome": "Ana", "email": "ana@example.com", "senha": "x", "tipo": "gerente"})
	s.Require().NoError(s.db.Save(usuariosTable, table))

	_, err := NewUserService(s.db)
	s.ErrorIs(err, models.ErrBadData)
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceSuite))
}
