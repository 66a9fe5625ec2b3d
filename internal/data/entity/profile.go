package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Profile holds the attributes that only make sense for one role.
// Exactly one concrete type exists per UserRole.
type Profile interface {
	Role() UserRole
	Normalize() error
}

type CustomerProfile struct {
	Address string `json:"address,omitempty"`
}

type EstablishmentProfile struct {
	PersonType   string `json:"person_type"`
	OpeningHours string `json:"opening_hours"`
	CoverageZone string `json:"coverage_zone"`
	CuisineType  string `json:"cuisine_type"`
}

type CourierProfile struct {
	VehicleType  string `json:"vehicle_type"`
	Plate        string `json:"plate"`
	CoverageZone string `json:"coverage_zone"`
}

const (
	minAddressLength = 10
	minPlateLength   = 6
	defaultZone      = "Centro"
)

var (
	openingHoursPattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]-([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

	VehicleTypes = []string{"Motocicleta", "Bicicleta", "Carro", "A pie"}
)

func (p *CustomerProfile) Role() UserRole { return RoleCustomer }

func (p *CustomerProfile) Normalize() error {
	p.Address = strings.TrimSpace(p.Address)
	if p.Address != "" && len([]rune(p.Address)) < minAddressLength {
		return fmt.Errorf("address must be at least %d characters", minAddressLength)
	}
	return nil
}

func (p *EstablishmentProfile) Role() UserRole { return RoleEstablishment }

func (p *EstablishmentProfile) Normalize() error {
	if strings.TrimSpace(p.PersonType) == "" {
		p.PersonType = "Jurídica"
	}
	if strings.TrimSpace(p.OpeningHours) == "" {
		p.OpeningHours = "8:00-22:00"
	}
	if strings.TrimSpace(p.CoverageZone) == "" {
		p.CoverageZone = defaultZone
	}
	if strings.TrimSpace(p.CuisineType) == "" {
		p.CuisineType = "General"
	}
	if !openingHoursPattern.MatchString(p.OpeningHours) {
		return errors.New("invalid opening hours, expected HH:MM-HH:MM")
	}
	return nil
}

func (p *CourierProfile) Role() UserRole { return RoleCourier }

func (p *CourierProfile) Normalize() error {
	if strings.TrimSpace(p.VehicleType) == "" {
		p.VehicleType = VehicleTypes[0]
	}
	if strings.TrimSpace(p.CoverageZone) == "" {
		p.CoverageZone = defaultZone
	}

	p.Plate = strings.ToUpper(strings.TrimSpace(p.Plate))
	if len(p.Plate) < minPlateLength {
		return fmt.Errorf("plate must be at least %d characters", minPlateLength)
	}

	for _, v := range VehicleTypes {
		if p.VehicleType == v {
			return nil
		}
	}
	return fmt.Errorf("invalid vehicle type, valid: %s", strings.Join(VehicleTypes, ", "))
}

// NewProfile returns the empty variant for role.
func NewProfile(role UserRole) (Profile, error) {
	switch role {
	case RoleCustomer:
		return &CustomerProfile{}, nil
	case RoleEstablishment:
		return &EstablishmentProfile{}, nil
	case RoleCourier:
		return &CourierProfile{}, nil
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}
}

// DecodeProfile decodes raw into the variant selected by role. Empty input yields the
// zero variant.
func DecodeProfile(role UserRole, raw []byte) (Profile, error) {
	profile, err := NewProfile(role)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return profile, nil
	}

	if err := json.Unmarshal(raw, profile); err != nil {
		return nil, fmt.Errorf("decode %s profile: %w", strings.ToLower(string(role)), err)
	}
	return profile, nil
}
