package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Quantity int     `json:"quantity" validate:"gt=0"`
	Percent  float64 `json:"percent" validate:"lte=100"`
	Internal string  `json:"-" validate:"required"`
}

func TestValidateStruct(t *testing.T) {
	errs := ValidateStruct(sampleRequest{Email: "not-an-email", Percent: 120})

	assert.Equal(t, map[string]string{
		"email":    "Invalid email format",
		"quantity": "Must be greater than 0",
		"percent":  "Must be less than or equal to 100",
		"Internal": "This field is required",
	}, errs)
}

func TestValidateStruct_Valid(t *testing.T) {
	assert.Nil(t, ValidateStruct(sampleRequest{Email: "a@b.co", Quantity: 1, Percent: 10, Internal: "x"}))
}

func TestFormatValidationErrors(t *testing.T) {
	got := FormatValidationErrors(map[string]string{
		"quantity": "Must be greater than 0",
		"email":    "Invalid email format",
	})

	assert.Equal(t, "email: Invalid email format; quantity: Must be greater than 0", got)
}
