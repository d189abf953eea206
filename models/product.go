package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Description string         `json:"description"`
	Price       float64        `gorm:"not null" json:"price"`
	SalePrice   float64        `json:"sale_price"`
	Stock       int            `gorm:"not null;default:0" json:"stock"`
	Image       string         `json:"image"`
	BrandID     *uint          `gorm:"index" json:"brand_id"`
	Brand       *Brand         `json:"brand,omitempty"`
	Categories  []Category     `gorm:"many2many:product_categories" json:"categories"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// EffectivePrice is what the customer actually pays: the sale price when
// one is set below the regular price, the regular price otherwise.
func (p *Product) EffectivePrice() float64 {
	if p.SalePrice > 0 && p.SalePrice < p.Price {
		return p.SalePrice
	}
	return p.Price
}
