package models

import "time"

type Banner struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `json:"title"`
	Image     string    `gorm:"not null" json:"image"`
	LinkURL   string    `json:"link_url"`
	Position  int       `gorm:"default:0" json:"position"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
