package adaptor

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"food-marketplace/internal/dto/request"
	"food-marketplace/internal/dto/response"
	"food-marketplace/pkg/apperror"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap/zaptest"
)

func newProductRouter(t *testing.T, svc *mockCatalogService) *chi.Mux {
	h := NewProductHandler(svc, zaptest.NewLogger(t))
	r := chi.NewRouter()
	r.Get("/api/products", h.ListProducts)
	r.Post("/api/products", h.AddProduct)
	r.Post("/api/products/remove", h.RemoveProduct)
	r.Delete("/api/products/{id}", h.DeleteProduct)
	return r
}

func TestProductHandler_AddProduct(t *testing.T) {
	svc := new(mockCatalogService)
	svc.On("AddProduct", mock.Anything, mock.MatchedBy(func(req *request.AddProductRequest) bool {
		return req.EstablishmentID == 3 && req.Name == "Arepa" && req.Price == 4500
	})).Return(&response.ProductResponse{ID: 11, EstablishmentID: 3, Name: "Arepa", Price: 4500, Active: true}, nil)

	rec := httptest.NewRecorder()
	newProductRouter(t, svc).ServeHTTP(rec, newJSONRequest(http.MethodPost, "/api/products",
		`{"establishmentId":3,"name":"Arepa","price":4500,"stock":10}`))

	assert.Equal(t, http.StatusCreated, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]any)
	assert.Equal(t, float64(11), data["id"])
	svc.AssertExpectations(t)
}

func TestProductHandler_RemoveProduct_Body(t *testing.T) {
	svc := new(mockCatalogService)
	svc.On("RemoveProduct", mock.Anything, int64(11)).Return(&response.RemovedProduct{ID: 11, Name: "Arepa"}, nil)

	rec := httptest.NewRecorder()
	newProductRouter(t, svc).ServeHTTP(rec, newJSONRequest(http.MethodPost, "/api/products/remove", `{"productId":11}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	removed := body["producto_eliminado"].(map[string]any)
	assert.Equal(t, "Arepa", removed["name"])
}

func TestProductHandler_DeleteProduct(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		svc := new(mockCatalogService)
		svc.On("RemoveProduct", mock.Anything, int64(99)).Return(nil, apperror.NotFound("Producto no encontrado"))

		rec := httptest.NewRecorder()
		newProductRouter(t, svc).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/products/99", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Producto no encontrado", decodeBody(t, rec)["error"])
	})

	t.Run("non numeric id", func(t *testing.T) {
		svc := new(mockCatalogService)

		rec := httptest.NewRecorder()
		newProductRouter(t, svc).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/products/abc", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "RemoveProduct", mock.Anything, mock.Anything)
	})
}

func TestProductHandler_ListProducts_QueryAliases(t *testing.T) {
	svc := new(mockCatalogService)
	svc.On("ListProducts", mock.Anything, mock.MatchedBy(func(req *request.ListProductsRequest) bool {
		return req.EstablishmentID != nil && *req.EstablishmentID == 3 &&
			!req.ActiveOnly &&
			req.Category != nil && *req.Category == "comida" &&
			req.SearchTerm != nil && *req.SearchTerm == "arepa" &&
			req.MinPrice != nil && *req.MinPrice == 1000 &&
			req.MaxPrice == nil
	})).Return([]response.ProductResponse{{ID: 1}, {ID: 2}}, nil)

	rec := httptest.NewRecorder()
	newProductRouter(t, svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/products?establecimiento_id=3&solo_activos=false&categoria=comida&busqueda=arepa&min_price=1000", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(2), body["total"])
	svc.AssertExpectations(t)
}

func TestProductHandler_ListProducts_BadPrice(t *testing.T) {
	svc := new(mockCatalogService)

	rec := httptest.NewRecorder()
	newProductRouter(t, svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products?max_price=cheap", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
