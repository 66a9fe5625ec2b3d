package request

import "encoding/json"

type RegisterRequest struct {
	Name     string          `json:"name" validate:"required"`
	Email    string          `json:"email" validate:"required,email"`
	Phone    string          `json:"phone"`
	Password string          `json:"password" validate:"required"`
	Role     string          `json:"role" validate:"required"`
	Profile  json.RawMessage `json:"profile,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role,omitempty"`

	// IP is filled by the handler from the request
	IP string `json:"-"`
}
