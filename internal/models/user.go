// internal/models/user.go
package models

import (
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID           int
	Name         string
	Address      string
	Phone        string
	Email        string
	PasswordHash string
	Type         UserType
}

func (u *User) IsAdmin() bool {
	return u.Type == UserTypeAdmin
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// Record serializes the user into the usuarios table row shape. The senha
// column holds the bcrypt hash, never the plaintext.
func (u *User) Record() map[string]string {
	return map[string]string{
		"id":       strconv.Itoa(u.ID),
		"nome":     u.Name,
		"endereco": u.Address,
		"telefone": u.Phone,
		"email":    u.Email,
		"senha":    u.PasswordHash,
		"tipo":     string(u.Type),
	}
}
