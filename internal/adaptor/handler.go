package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"food-marketplace/internal/usecase"
	"food-marketplace/pkg/apperror"
	"food-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth          *AuthHandler
	Product       *ProductHandler
	Establishment *EstablishmentHandler
	Order         *OrderHandler
	Checkout      *CheckoutHandler
	Cart          *CartHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:          NewAuthHandler(service.Auth, log),
		Product:       NewProductHandler(service.Catalog, log),
		Establishment: NewEstablishmentHandler(service.Availability, log),
		Order:         NewOrderHandler(service.Order, log),
		Checkout:      NewCheckoutHandler(service.Checkout, service.Order, log),
		Cart:          NewCartHandler(service.Cart, log),
	}
}

const msgInvalidBody = "Cuerpo de la petición inválido"

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// writeServiceError maps typed service errors to the response envelope. Store and upstream
// details are logged and never sent to the client.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) || appErr.Redacted() {
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation),
		)
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	log.Warn(operation+" failed",
		zap.String("operation", operation),
		zap.String("kind", string(appErr.Kind)),
		zap.String("message", appErr.Message),
	)

	var fields any
	if len(appErr.Fields) > 0 {
		fields = appErr.Fields
	}
	utils.ResponseError(w, appErr.Status, appErr.Message, fields)
}
