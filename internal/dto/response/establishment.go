package response

import "time"

type EstablishmentAvailabilityResponse struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         *string    `json:"phone"`
	ProductCount  int        `json:"productCount"`
	MinPrice      float64    `json:"minPrice"`
	MaxPrice      float64    `json:"maxPrice"`
	AvgPrice      float64    `json:"avgPrice"`
	LastHeartbeat *time.Time `json:"lastHeartbeat"`
	Status        string     `json:"estado_disponibilidad"`
	StatusText    string     `json:"estado_texto"`
}

type HeartbeatResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
