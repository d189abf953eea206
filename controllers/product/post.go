package productcontroller

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aurelia-labs/velora-api/models"
	"github.com/aurelia-labs/velora-api/response"
)

type ProductInput struct {
	Name        string  `json:"name" binding:"required"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	SalePrice   float64 `json:"sale_price"`
	Image       string  `json:"image"`
	Stock       int     `json:"stock" binding:"min=0"`
	BrandID     *uint   `json:"brand_id"`
	CategoryIDs []uint  `json:"category_ids"`
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns "Wireless Mouse 2" into "wireless-mouse-2".
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugCleaner.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func loadCategories(db *gorm.DB, ids []uint) ([]models.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var categories []models.Category
	if err := db.Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// POST /admin/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		slug := input.Slug
		if slug == "" {
			slug = Slugify(input.Name)
		}

		categories, err := loadCategories(db, input.CategoryIDs)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch categories")
			return
		}

		product := models.Product{
			Name:        input.Name,
			Slug:        slug,
			Description: input.Description,
			Price:       input.Price,
			SalePrice:   input.SalePrice,
			Image:       input.Image,
			Stock:       input.Stock,
			BrandID:     input.BrandID,
			Categories:  categories,
		}

		if err := db.Create(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				response.Error(c, http.StatusConflict, "A product with this slug already exists")
				return
			}
			response.Error(c, http.StatusInternalServerError, "Failed to create product")
			return
		}

		response.OK(c, http.StatusCreated, product)
	}
}
