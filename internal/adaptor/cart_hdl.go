package adaptor

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"food-marketplace/internal/dto/request"
	"food-marketplace/internal/usecase"
	"food-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CartHandler struct {
	service usecase.CartService
	log     *zap.Logger
}

func NewCartHandler(service usecase.CartService, log *zap.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		log:     log.With(zap.String("handler", "cart")),
	}
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.GetCart(r.Context(), sessionID(r))
	if err != nil {
		writeServiceError(w, h.log, err, "get cart")
		return
	}
	utils.ResponseSuccess(w, "Carrito obtenido", cart)
}

// ClearCart handles DELETE /api/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context(), sessionID(r)); err != nil {
		writeServiceError(w, h.log, err, "clear cart")
		return
	}
	utils.ResponseSuccess(w, "Carrito vaciado", nil)
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req request.AddCartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody, nil)
		return
	}

	cart, err := h.service.AddItem(r.Context(), sessionID(r), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "add cart item")
		return
	}
	utils.ResponseSuccess(w, "Producto agregado al carrito", cart)
}

// UpdateItem handles PUT /api/cart/items/{productId}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	var req request.UpdateCartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody, nil)
		return
	}

	cart, err := h.service.UpdateItem(r.Context(), sessionID(r), productID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update cart item")
		return
	}
	utils.ResponseSuccess(w, "Cantidad actualizada", cart)
}

// RemoveItem handles DELETE /api/cart/items/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	cart, err := h.service.RemoveItem(r.Context(), sessionID(r), productID)
	if err != nil {
		writeServiceError(w, h.log, err, "remove cart item")
		return
	}
	utils.ResponseSuccess(w, "Producto eliminado del carrito", cart)
}

// ApplyCoupon handles POST /api/cart/coupon
func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	var req request.ApplyCouponRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody, nil)
		return
	}

	coupon, err := h.service.ApplyCoupon(r.Context(), sessionID(r), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "apply coupon")
		return
	}
	utils.ResponseSuccess(w, "Cupón aplicado", coupon)
}

// Checkout handles POST /api/cart/checkout. The body is optional.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req request.CartCheckoutRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		utils.ResponseBadRequest(w, msgInvalidBody, nil)
		return
	}

	result, err := h.service.Checkout(r.Context(), sessionID(r), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "cart checkout")
		return
	}
	utils.ResponseSuccess(w, "Preferencia de pago creada", result)
}

func sessionID(r *http.Request) string {
	id, _ := utils.GetSessionIDFromContext(r.Context())
	return id
}

func productIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
	if err != nil || id <= 0 {
		utils.ResponseBadRequest(w, "ID de producto inválido", nil)
		return 0, false
	}
	return id, true
}
