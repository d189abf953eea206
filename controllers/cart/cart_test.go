package cartControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
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

// newCartRouter mounts the cart handlers behind a stub that injects the
// authenticated user id, the way the token middleware would.
func newCartRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", userID) })
	r.GET("/user/cart", GetUserCart(db))
	r.POST("/user/cart/items", UpsertCartItem(db))
	r.DELETE("/user/cart/items/:productID", DeleteCartItem(db))
	r.DELETE("/user/cart", ClearUserCart(db))
	return r
}

func doJSON(r *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedCartUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{Email: fmt.Sprintf("cart-%p@example.com", t), PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedCartProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Product {
	t.Helper()
	product := models.Product{Name: name, Slug: name, Price: price, Stock: stock}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func TestGetCartCreatesLazily(t *testing.T) {
	db := testdb.New(t)
	user := seedCartUser(t, db)
	r := newCartRouter(db, user.ID)

	w := doJSON(r, http.MethodGet, "/user/cart", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var cart models.Cart
	assert.NoError(t, db.Where("user_id = ?", user.ID).First(&cart).Error)
}

func TestUpsertCartItem(t *testing.T) {
	db := testdb.New(t)
	user := seedCartUser(t, db)
	product := seedCartProduct(t, db, "mug", 10, 5)
	r := newCartRouter(db, user.ID)

	w := doJSON(r, http.MethodPost, "/user/cart/items", gin.H{"product_id": product.ID, "quantity": 2})
	require.Equal(t, http.StatusCreated, w.Code)

	// Posting again replaces the quantity instead of adding a row.
	w = doJSON(r, http.MethodPost, "/user/cart/items", gin.H{"product_id": product.ID, "quantity": 4})
	require.Equal(t, http.StatusOK, w.Code)

	var items []models.CartItem
	require.NoError(t, db.Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)
}

func TestUpsertCartItemRejectsExcessQuantity(t *testing.T) {
	db := testdb.New(t)
	user := seedCartUser(t, db)
	product := seedCartProduct(t, db, "mug", 10, 3)
	r := newCartRouter(db, user.ID)

	w := doJSON(r, http.MethodPost, "/user/cart/items", gin.H{"product_id": product.ID, "quantity": 4})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/user/cart/items", gin.H{"product_id": product.ID, "quantity": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/user/cart/items", gin.H{"product_id": 9999, "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteCartItem(t *testing.T) {
	db := testdb.New(t)
	user := seedCartUser(t, db)
	product := seedCartProduct(t, db, "mug", 10, 5)
	r := newCartRouter(db, user.ID)

	doJSON(r, http.MethodPost, "/user/cart/items", gin.H{"product_id": product.ID, "quantity": 1})

	w := doJSON(r, http.MethodDelete, fmt.Sprintf("/user/cart/items/%d", product.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/user/cart/items/%d", product.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClearCart(t *testing.T) {
	db := testdb.New(t)
	user := seedCartUser(t, db)
	mug := seedCartProduct(t, db, "mug", 10, 5)
	tee := seedCartProduct(t, db, "tee", 20, 5)
	r := newCartRouter(db, user.ID)

	doJSON(r, http.MethodPost, "/user/cart/items", gin.H{"product_id": mug.ID, "quantity": 1})
	doJSON(r, http.MethodPost, "/user/cart/items", gin.H{"product_id": tee.ID, "quantity": 2})

	w := doJSON(r, http.MethodDelete, "/user/cart", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	assert.Zero(t, count)
}
