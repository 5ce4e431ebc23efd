// internal/cli/app.go
package cli

import (
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gfranca/mercado/internal/config"
	"github.com/gfranca/mercado/internal/models"
	"github.com/gfranca/mercado/internal/services"
)

// App is the interactive console surface: first-run admin creation, login,
// and the admin/client menus. All domain work is delegated to the services.
type App struct {
	cfg      *config.Config
	users    *services.UserService
	catalog  *services.CatalogStore
	orders   *services.OrderBook
	prompt   *Prompter
	throttle *loginThrottle
}

func NewApp(cfg *config.Config, users *services.UserService, catalog *services.CatalogStore, orders *services.OrderBook, in io.Reader, out io.Writer) *App {
	return &App{
		cfg:      cfg,
		users:    users,
		catalog:  catalog,
		orders:   orders,
		prompt:   NewPrompter(in, out),
		throttle: newLoginThrottle(time.Duration(cfg.Auth.ThrottleSeconds)*time.Second, cfg.Auth.ThrottleBurst),
	}
}

func (a *App) Run() error {
	a.prompt.Println("===== Mercado =====")

	if !a.users.HasAdmin() {
		if err := a.createFirstAdmin(); err != nil {
			return err
		}
	}

	user := a.login()
	if user == nil {
		a.prompt.Println("Número máximo de tentativas excedido. Encerrando.")
		return nil
	}

	session := NewSession(user)
	logrus.WithFields(logrus.Fields{
		"session_id": session.ID,
		"user_id":    user.ID,
		"type":       user.Type,
	}).Info("Session opened")

	if user.IsAdmin() {
		a.adminMenu(session)
	} else {
		a.clientMenu(session)
	}

	logrus.WithField("session_id", session.ID).Info("Session closed")
	a.prompt.Println("Saindo do sistema. Até logo!")
	return nil
}

// createFirstAdmin bootstraps the administrator account on a fresh data
// directory; nothing else works before it exists.
func (a *App) createFirstAdmin() error {
	a.prompt.Println("\n----- Primeiro acesso: cadastro do administrador -----")
	for {
		req := &services.RegisterUserRequest{
			Name:     a.prompt.Ask("Nome"),
			Address:  a.prompt.Ask("Endereço"),
			Phone:    a.prompt.Ask("Telefone"),
			Email:    a.prompt.Ask("E-mail"),
			Password: a.prompt.Ask("Senha"),
			Type:     models.UserTypeAdmin,
		}
		if _, err := a.users.Register(req); err != nil {
			if errors.Is(err, models.ErrValidation) {
				a.prompt.Printf("Dados inválidos: %v\n", err)
				continue
			}
			return err
		}
		a.prompt.Println("Administrador cadastrado com sucesso!")
		return nil
	}
}

// login allows a bounded number of attempts; repeated failures for the same
// email are additionally slowed by the throttle.
func (a *App) login() *models.User {
	a.prompt.Println("\n----- Login -----")
	for attempt := 1; attempt <= a.cfg.Auth.MaxLoginAttempts; attempt++ {
		email := a.prompt.Ask("E-mail")
		password := a.prompt.Ask("Senha")

		if delay := a.throttle.Delay(email); delay > 0 {
			time.Sleep(delay)
		}

		user, err := a.users.Authenticate(email, password)
		if err == nil {
			a.prompt.Printf("Bem-vindo(a), %s!\n", user.Name)
			return user
		}
		logrus.WithFields(logrus.Fields{
			"attempt": attempt,
		}).Warn("Login attempt failed")
		a.prompt.Printf("Credenciais inválidas (tentativa %d de %d).\n", attempt, a.cfg.Auth.MaxLoginAttempts)
	}
	return nil
}
