package entity

import "time"

type AvailabilityStatus string

const (
	StatusAvailable   AvailabilityStatus = "disponible"
	StatusUnavailable AvailabilityStatus = "no_disponible"
	StatusNoProducts  AvailabilityStatus = "sin_productos"
)

// EstablishmentAvailability is one row of the availability report before classification.
type EstablishmentAvailability struct {
	ID            int64      `db:"id"`
	Name          string     `db:"name"`
	Email         string     `db:"email"`
	Phone         *string    `db:"phone"`
	ProductCount  int        `db:"total_productos"`
	MinPrice      float64    `db:"precio_minimo"`
	MaxPrice      float64    `db:"precio_maximo"`
	AvgPrice      float64    `db:"precio_promedio"`
	LastHeartbeat *time.Time `db:"last_heartbeat"`

	// HeartbeatFresh is evaluated against the database clock.
	HeartbeatFresh bool `db:"heartbeat_fresh"`
}
