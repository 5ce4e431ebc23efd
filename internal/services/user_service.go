// internal/services/user_service.go
package services

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/gfranca/mercado/internal/models"
	"github.com/gfranca/mercado/internal/storage"
	"github.com/gfranca/mercado/internal/utils"
)

const usuariosTable = "usuarios"

var usuariosColumns = []string{"id", "nome", "endereco", "telefone", "email", "senha", "tipo"}

// ErrInvalidCredentials is deliberately opaque: it does not reveal whether
// the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

type UserService struct {
	db    *storage.DB
	mtx   sync.Mutex
	users map[int]*models.User
}

type RegisterUserRequest struct {
	Name     string          `validate:"required"`
	Address  string          `validate:"required"`
	Phone    string          `validate:"required"`
	Email    string          `validate:"required,email"`
	Password string          `validate:"required,min=6"`
	Type     models.UserType `validate:"required"`
}

func NewUserService(db *storage.DB) (*UserService, error) {
	s := &UserService{
		db:    db,
		users: make(map[int]*models.User),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *UserService) load() error {
	table, err := s.db.Load(usuariosTable)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	for _, row := range table.Rows {
		id, err := strconv.Atoi(row["id"])
		if err != nil {
			return fmt.Errorf("%w: usuarios row has non-numeric id %q", models.ErrBadData, row["id"])
		}
		userType := models.UserType(row["tipo"])
		if !userType.Valid() {
			return fmt.Errorf("%w: user %d has unknown tipo %q", models.ErrBadData, id, row["tipo"])
		}
		s.users[id] = &models.User{
			ID:           id,
			Name:         row["nome"],
			Address:      row["endereco"],
			Phone:        row["telefone"],
			Email:        row["email"],
			PasswordHash: row["senha"],
			Type:         userType,
		}
	}

	logrus.WithField("users", len(s.users)).Info("Users loaded")
	return nil
}

// Register validates the request, enforces email uniqueness, hashes the
// password with bcrypt and persists the whole table. Administrators get the
// stricter password rule on top.
func (s *UserService) Register(req *RegisterUserRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown user type %q", models.ErrValidation, req.Type)
	}
	if req.Type == models.UserTypeAdmin {
		strong := struct {
			Password string `validate:"strong_password"`
		}{Password: req.Password}
		if err := utils.ValidateStruct(&strong); err != nil {
			return nil, fmt.Errorf("%w: admin password too weak", models.ErrValidation)
		}
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	email := strings.ToLower(strings.TrimSpace(req.Email))
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, email) {
			return nil, fmt.Errorf("%w: email %s already registered", models.ErrValidation, email)
		}
	}

	user := &models.User{
		ID:      s.nextIDLocked(),
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   email,
		Type:    req.Type,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	s.users[user.ID] = user
	if err := s.persistLocked(); err != nil {
		delete(s.users, user.ID)
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"type":    user.Type,
	}).Info("User registered")
	return user, nil
}

// Authenticate compares the bcrypt hash; failures are indistinguishable by
// cause.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for _, user := range s.users {
		if strings.EqualFold(user.Email, strings.TrimSpace(email)) {
			if err := user.CheckPassword(password); err != nil {
				return nil, ErrInvalidCredentials
			}
			logrus.WithField("user_id", user.ID).Info("User authenticated")
			return user, nil
		}
	}
	return nil, ErrInvalidCredentials
}

func (s *UserService) Get(id int) (*models.User, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user %d", models.ErrNotFound, id)
	}
	return user, nil
}

// HasAdmin reports whether any administrator exists; first run bootstraps
// one before login is possible.
func (s *UserService) HasAdmin() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for _, user := range s.users {
		if user.IsAdmin() {
			return true
		}
	}
	return false
}

func (s *UserService) persistLocked() error {
	table := storage.NewTable(usuariosColumns...)
	ids := make([]int, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		table.Append(s.users[id].Record())
	}
	if err := s.db.Save(usuariosTable, table); err != nil {
		return fmt.Errorf("failed to persist users: %w", err)
	}
	return nil
}

func (s *UserService) nextIDLocked() int {
	max := 0
	for id := range s.users {
		if id > max {
			max = id
		}
	}
	return max + 1
}
