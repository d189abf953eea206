package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/aurelia-labs/velora-api/models"
	"github.com/aurelia-labs/velora-api/response"
)

// GET /admin/products/export-excel
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Preload("Categories").Find(&products).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch products")
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to create Excel sheet")
			return
		}

		headers := []string{
			"ID", "Name", "Slug", "Description", "Price", "SalePrice",
			"Stock", "Image", "BrandID", "CategoryIDs", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Name)
			row.AddCell().SetValue(p.Slug)
			row.AddCell().SetValue(p.Description)
			row.AddCell().SetValue(p.Price)
			row.AddCell().SetValue(p.SalePrice)
			row.AddCell().SetValue(p.Stock)
			row.AddCell().SetValue(p.Image)
			if p.BrandID != nil {
				row.AddCell().SetValue(*p.BrandID)
			} else {
				row.AddCell().SetValue("")
			}

			var catIDs []string
			for _, cat := range p.Categories {
				catIDs = append(catIDs, strconv.Itoa(int(cat.ID)))
			}
			row.AddCell().SetValue(strings.Join(catIDs, ","))
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to write Excel file")
			return
		}
	}
}

// POST /admin/products/import-excel
//
// Rows with a matching slug update the existing product, everything else
// is inserted. Malformed rows are counted and skipped, never fatal.
func ImportProductsFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Excel file is required")
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to open Excel file")
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to parse Excel file")
			return
		}
		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			response.Error(c, http.StatusBadRequest, "Excel file is empty or missing header row")
			return
		}

		sheet := xlFile.Sheets[0]
		created, updated, skipped := 0, 0, 0

		// Columns: Name, Slug, Description, Price, SalePrice, Stock, Image
		for i := 1; i < sheet.MaxRow; i++ {
			row := sheet.Rows[i]

			get := func(index int) string {
				if index < len(row.Cells) {
					return strings.TrimSpace(row.Cells[index].String())
				}
				return ""
			}

			name := get(0)
			slug := get(1)
			description := get(2)
			price, errPrice := strconv.ParseFloat(get(3), 64)
			salePrice, _ := strconv.ParseFloat(get(4), 64)
			stock, _ := strconv.Atoi(get(5))
			image := get(6)

			if name == "" || errPrice != nil || price <= 0 {
				skipped++
				continue
			}
			if slug == "" {
				slug = Slugify(name)
			}

			var existing models.Product
			if err := db.Where("slug = ?", slug).First(&existing).Error; err == nil {
				existing.Name = name
				existing.Description = description
				existing.Price = price
				existing.SalePrice = salePrice
				existing.Stock = stock
				if image != "" {
					existing.Image = image
				}
				if err := db.Save(&existing).Error; err == nil {
					updated++
				} else {
					skipped++
				}
				continue
			}

			product := models.Product{
				Name:        name,
				Slug:        slug,
				Description: description,
				Price:       price,
				SalePrice:   salePrice,
				Stock:       stock,
				Image:       image,
			}
			if err := db.Create(&product).Error; err == nil {
				created++
			} else {
				skipped++
			}
		}

		response.OK(c, http.StatusOK, gin.H{
			"message":       "Import completed",
			"created_count": created,
			"updated_count": updated,
			"skipped_count": skipped,
		})
	}
}
