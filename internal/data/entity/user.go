package entity

import (
	"strings"
)

type UserRole string

const (
	RoleCustomer      UserRole = "CUSTOMER"
	RoleEstablishment UserRole = "ESTABLISHMENT"
	RoleCourier       UserRole = "COURIER"
)

// roleAliases maps accepted spellings (including the legacy Spanish ones) to a role.
var roleAliases = map[string]UserRole{
	"CUSTOMER":        RoleCustomer,
	"CLIENTE":         RoleCustomer,
	"ESTABLISHMENT":   RoleEstablishment,
	"ESTABLECIMIENTO": RoleEstablishment,
	"COURIER":         RoleCourier,
	"DOMICILIARIO":    RoleCourier,
}

// ParseRole normalizes a role name. The second value is false for unknown roles.
func ParseRole(s string) (UserRole, bool) {
	role, ok := roleAliases[strings.ToUpper(strings.TrimSpace(s))]
	return role, ok
}

type User struct {
	BaseSimple
	Name         string   `db:"name"`
	Email        string   `db:"email"`
	Phone        *string  `db:"phone"`
	PasswordHash string   `db:"password_hash"`
	Role         UserRole `db:"role"`
	Profile      Profile  `db:"profile"`
	IsActive     bool     `db:"active"`
}

type LoginAttempt struct {
	BaseSimple
	UserID  *int64 `db:"user_id"`
	Email   string `db:"email"`
	IP      string `db:"ip"`
	Success bool   `db:"success"`
}
