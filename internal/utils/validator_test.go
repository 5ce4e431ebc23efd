// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Email    string `validate:"required,email"`
	Password string `validate:"strong_password"`
}

func TestValidateStruct(t *testing.T) {
	assert.NoError(t, ValidateStruct(&sample{Email: "ana@example.com", Password: "Forte123"}))
	assert.Error(t, ValidateStruct(&sample{Email: "não-é-email", Password: "Forte123"}))
	assert.Error(t, ValidateStruct(&sample{Email: "ana@example.com", Password: "fracafraca"}))
	assert.Error(t, ValidateStruct(&sample{Email: "ana@example.com", Password: "Curta1"}))
}

func TestGetValidationErrors(t *testing.T) {
	err := ValidateStruct(&sample{Email: "", Password: "Forte123"})
	errs := GetValidationErrors(err)

	assert.Len(t, errs, 1)
	assert.Equal(t, "email", errs[0].Field)
	assert.Equal(t, "required", errs[0].Tag)
}
