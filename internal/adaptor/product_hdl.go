package adaptor

import (
	"net/http"
	"strconv"

	"food-marketplace/internal/dto/request"
	"food-marketplace/internal/usecase"
	"food-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProductHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewProductHandler(service usecase.CatalogService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log.With(zap.String("handler", "product")),
	}
}

// AddProduct handles POST /api/products
func (h *ProductHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var req request.AddProductRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody, nil)
		return
	}

	product, err := h.service.AddProduct(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "add product")
		return
	}

	utils.ResponseCreated(w, "Producto agregado exitosamente", product)
}

// RemoveProduct handles POST /api/products/remove
func (h *ProductHandler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	var req request.RemoveProductRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody, nil)
		return
	}
	h.remove(w, r, req.ProductID)
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.ResponseBadRequest(w, "ID de producto inválido", nil)
		return
	}
	h.remove(w, r, id)
}

func (h *ProductHandler) remove(w http.ResponseWriter, r *http.Request, productID int64) {
	removed, err := h.service.RemoveProduct(r.Context(), productID)
	if err != nil {
		writeServiceError(w, h.log, err, "remove product")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":            true,
		"message":            "Producto eliminado exitosamente",
		"producto_eliminado": removed,
	})
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	establishmentID, err := utils.ParseOptionalID(queryValue(query, "establishmentId", "establecimiento_id"))
	if err != nil {
		utils.ResponseBadRequest(w, "establishmentId inválido", nil)
		return
	}
	minPrice, err := utils.ParseOptionalFloat(query.Get("min_price"))
	if err != nil {
		utils.ResponseBadRequest(w, "min_price inválido", nil)
		return
	}
	maxPrice, err := utils.ParseOptionalFloat(query.Get("max_price"))
	if err != nil {
		utils.ResponseBadRequest(w, "max_price inválido", nil)
		return
	}

	req := &request.ListProductsRequest{
		EstablishmentID: establishmentID,
		ActiveOnly:      utils.ParseBoolDefault(queryValue(query, "activeOnly", "solo_activos"), true),
		Category:        utils.NilIfBlank(queryValue(query, "category", "categoria")),
		SearchTerm:      utils.NilIfBlank(queryValue(query, "searchTerm", "search", "busqueda")),
		MinPrice:        minPrice,
		MaxPrice:        maxPrice,
	}

	products, err := h.service.ListProducts(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err, "list products")
		return
	}

	utils.ResponseList(w, "Productos obtenidos exitosamente", products, len(products))
}
