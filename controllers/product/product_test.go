package productcontroller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aurelia-labs/velora-api/models"
	"github.com/aurelia-labs/velora-api/testdb"
)

func newCatalogRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/products", GetProducts(db))
	r.GET("/products/:id", GetProductByID(db, nil))
	r.POST("/admin/products", CreateProduct(db))
	r.DELETE("/admin/products/:id", DeleteProduct(db, nil))
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type listResponse struct {
	Success    bool             `json:"success"`
	Data       []models.Product `json:"data"`
	Pagination struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int   `json:"total_pages"`
	} `json:"pagination"`
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) listResponse {
	t.Helper()
	var resp listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	electronics := models.Category{Name: "Electronics", Slug: "electronics"}
	require.NoError(t, db.Create(&electronics).Error)
	acme := models.Brand{Name: "Acme", Slug: "acme"}
	require.NoError(t, db.Create(&acme).Error)

	products := []models.Product{
		{Name: "Wireless Mouse", Slug: "wireless-mouse", Price: 25, Stock: 10, BrandID: &acme.ID, Categories: []models.Category{electronics}},
		{Name: "Mechanical Keyboard", Slug: "mechanical-keyboard", Price: 120, Stock: 5, Categories: []models.Category{electronics}},
		{Name: "Coffee Mug", Slug: "coffee-mug", Price: 8, Stock: 50},
	}
	for i := range products {
		require.NoError(t, db.Create(&products[i]).Error)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Wireless Mouse 2":  "wireless-mouse-2",
		"  Déjà Vu!  ":      "d-j-vu",
		"UPPER":             "upper",
		"already-slugged":   "already-slugged",
		"trailing symbols!": "trailing-symbols",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "Slugify(%q)", in)
	}
}

func TestGetProductsFilters(t *testing.T) {
	db := testdb.New(t)
	seedCatalog(t, db)
	r := newCatalogRouter(db)

	// Case-insensitive search over name and description.
	resp := decodeList(t, get(r, "/products?search=MOUSE"))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Wireless Mouse", resp.Data[0].Name)

	// Price range.
	resp = decodeList(t, get(r, "/products?min_price=10&max_price=100"))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Wireless Mouse", resp.Data[0].Name)

	// Category membership.
	resp = decodeList(t, get(r, "/products?category_id=1"))
	assert.Len(t, resp.Data, 2)

	// Brand.
	resp = decodeList(t, get(r, "/products?brand_id=1"))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Wireless Mouse", resp.Data[0].Name)

	assert.Equal(t, http.StatusBadRequest, get(r, "/products?min_price=abc").Code)
}

func TestGetProductsSortingAndPagination(t *testing.T) {
	db := testdb.New(t)
	seedCatalog(t, db)
	r := newCatalogRouter(db)

	resp := decodeList(t, get(r, "/products?sort_by=price&order=asc"))
	require.Len(t, resp.Data, 3)
	assert.Equal(t, "Coffee Mug", resp.Data[0].Name)
	assert.Equal(t, "Mechanical Keyboard", resp.Data[2].Name)

	resp = decodeList(t, get(r, "/products?sort_by=price&order=asc&page=2&limit=2"))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, 2, resp.Pagination.Page)
	assert.Equal(t, int64(3), resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.TotalPages)

	// Unknown sort columns fall back instead of erroring.
	assert.Equal(t, http.StatusOK, get(r, "/products?sort_by=evil;drop").Code)
}

func TestCreateProductSlugHandling(t *testing.T) {
	db := testdb.New(t)
	r := newCatalogRouter(db)

	body, _ := json.Marshal(gin.H{"name": "Desk Lamp", "price": 30, "stock": 4})
	req := httptest.NewRequest(http.MethodPost, "/admin/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var product models.Product
	require.NoError(t, db.Where("slug = ?", "desk-lamp").First(&product).Error)

	// Same derived slug → conflict.
	req = httptest.NewRequest(http.MethodPost, "/admin/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteProductSoftDeletes(t *testing.T) {
	db := testdb.New(t)
	seedCatalog(t, db)
	r := newCatalogRouter(db)

	req := httptest.NewRequest(http.MethodDelete, "/admin/products/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// Hidden from normal reads, still present for order history.
	assert.Equal(t, http.StatusNotFound, get(r, "/products/1").Code)
	var count int64
	require.NoError(t, db.Unscoped().Model(&models.Product{}).Where("id = ?", 1).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	req = httptest.NewRequest(http.MethodDelete, "/admin/products/999", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
