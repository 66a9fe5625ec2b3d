package request

type HeartbeatRequest struct {
	EstablishmentID int64 `json:"establishmentId" validate:"required,gt=0"`
	Offline         bool  `json:"offline"`
}
